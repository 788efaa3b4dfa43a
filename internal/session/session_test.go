package session_test

import (
	"context"
	"errors"
	"testing"

	"releasedesk/internal/api"
	"releasedesk/internal/draft"
	"releasedesk/internal/services"
	"releasedesk/internal/session"
	"releasedesk/internal/steps"
	"releasedesk/internal/territory"
)

type stubBackend struct{}

func (stubBackend) CreateDraft(ctx context.Context, category draft.Category) (string, error) {
	return "rel-1", nil
}

func (stubBackend) PersistStep(ctx context.Context, releaseID string, step int, payload api.StepPayload) error {
	return nil
}

func (stubBackend) Finalize(ctx context.Context, releaseID string) error {
	return nil
}

func newSession(t *testing.T, category draft.Category) *session.Session {
	t.Helper()
	coord := steps.NewCoordinator(stubBackend{}, nil, nil)
	sess, err := session.New(category, coord, nil, nil, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("start session: %v", err)
	}
	return sess
}

func TestApplyRequiresCreatedDraft(t *testing.T) {
	coord := steps.NewCoordinator(stubBackend{}, nil, nil)
	sess, err := session.New(draft.CategoryAlbum, coord, nil, nil, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	cmd := session.SetReleaseField{Field: session.FieldReleaseName, Value: "Early"}
	if err := sess.Apply(cmd); !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected precondition error before start, got %v", err)
	}
	if got := sess.Draft().ReleaseInfo.ReleaseName; got != "" {
		t.Fatalf("release name = %q, want empty before start", got)
	}

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := sess.Apply(cmd); err != nil {
		t.Fatalf("apply after start: %v", err)
	}
}

func TestNewRejectsUnknownCategory(t *testing.T) {
	coord := steps.NewCoordinator(stubBackend{}, nil, nil)
	_, err := session.New(draft.Category("mixtape"), coord, nil, nil, nil)
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestSetReleaseFields(t *testing.T) {
	sess := newSession(t, draft.CategoryAlbum)

	commands := []session.Command{
		session.SetReleaseField{Field: session.FieldReleaseName, Value: "Night Shift"},
		session.SetReleaseField{Field: session.FieldLabel, Value: "Indie Works"},
		session.SetReleaseField{Field: session.FieldGenre, Value: "Pop"},
		session.SetReleaseField{Field: session.FieldReleaseDate, Value: "2026-10-01"},
	}
	for _, cmd := range commands {
		if err := sess.Apply(cmd); err != nil {
			t.Fatalf("apply %+v: %v", cmd, err)
		}
	}

	info := sess.Draft().ReleaseInfo
	if info.ReleaseName != "Night Shift" || info.Label != "Indie Works" {
		t.Fatalf("unexpected release info %+v", info)
	}
	if info.Genre.Genre != "Pop" || info.ReleaseDate != "2026-10-01" {
		t.Fatalf("unexpected release info %+v", info)
	}
}

func TestAddTrackHonorsCategoryCap(t *testing.T) {
	album := newSession(t, draft.CategoryAlbum)
	if err := album.Apply(session.AddTrack{}); err != nil {
		t.Fatalf("album should accept a second track: %v", err)
	}
	if got := album.Draft().Tracks.Len(); got != 2 {
		t.Fatalf("album track count = %d, want 2", got)
	}

	for _, category := range []draft.Category{draft.CategorySingle, draft.CategoryRingtone} {
		sess := newSession(t, category)
		err := sess.Apply(session.AddTrack{})
		if !errors.Is(err, services.ErrPrecondition) {
			t.Fatalf("%s: expected precondition error, got %v", category, err)
		}
		if got := sess.Draft().Tracks.Len(); got != 1 {
			t.Fatalf("%s track count = %d, want 1", category, got)
		}
	}
}

func TestRemoveTrackKeepsLastOne(t *testing.T) {
	sess := newSession(t, draft.CategoryAlbum)
	trackID := sess.Draft().Tracks.LastID()

	err := sess.Apply(session.RemoveTrack{TrackID: trackID})
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected precondition error, got %v", err)
	}

	if err := sess.Apply(session.AddTrack{}); err != nil {
		t.Fatalf("add track: %v", err)
	}
	if err := sess.Apply(session.RemoveTrack{TrackID: trackID}); err != nil {
		t.Fatalf("remove track: %v", err)
	}
	if got := sess.Draft().Tracks.Len(); got != 1 {
		t.Fatalf("track count = %d, want 1", got)
	}
}

func TestVocalsFlagClearsLanguage(t *testing.T) {
	sess := newSession(t, draft.CategorySingle)
	trackID := sess.Draft().Tracks.LastID()

	if err := sess.Apply(session.SetTrackField{TrackID: trackID, Field: session.TrackFieldAudioLanguage, Value: "hi"}); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if err := sess.Apply(session.SetTrackFlag{TrackID: trackID, Flag: session.FlagVocalsPresent, On: false}); err != nil {
		t.Fatalf("clear vocals: %v", err)
	}

	track, _ := sess.Draft().Tracks.Get(trackID)
	if track.Value.AudioLanguage != "" {
		t.Fatalf("language should be cleared, got %q", track.Value.AudioLanguage)
	}

	err := sess.Apply(session.SetTrackField{TrackID: trackID, Field: session.TrackFieldAudioLanguage, Value: "hi"})
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected gated language write to fail, got %v", err)
	}
}

func TestISRCNeededClearsCode(t *testing.T) {
	sess := newSession(t, draft.CategorySingle)
	trackID := sess.Draft().Tracks.LastID()

	if err := sess.Apply(session.SetTrackFlag{TrackID: trackID, Flag: session.FlagISRCNeeded, On: false}); err != nil {
		t.Fatalf("disable isrc request: %v", err)
	}
	if err := sess.Apply(session.SetTrackField{TrackID: trackID, Field: session.TrackFieldISRC, Value: "usrc17607839"}); err != nil {
		t.Fatalf("set isrc: %v", err)
	}

	track, _ := sess.Draft().Tracks.Get(trackID)
	if track.Value.ISRC != "USRC17607839" {
		t.Fatalf("isrc = %q, want USRC17607839", track.Value.ISRC)
	}

	if err := sess.Apply(session.SetTrackFlag{TrackID: trackID, Flag: session.FlagISRCNeeded, On: true}); err != nil {
		t.Fatalf("enable isrc request: %v", err)
	}
	track, _ = sess.Draft().Tracks.Get(trackID)
	if track.Value.ISRC != "" {
		t.Fatalf("isrc should be cleared, got %q", track.Value.ISRC)
	}

	err := sess.Apply(session.SetTrackField{TrackID: trackID, Field: session.TrackFieldISRC, Value: "USRC17607839"})
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected gated isrc write to fail, got %v", err)
	}
}

func TestWorldwideClearsTerritories(t *testing.T) {
	sess := newSession(t, draft.CategorySingle)

	if err := sess.Apply(session.ToggleMember{Set: territory.SetTerritories, Member: "IN", Included: true}); err != nil {
		t.Fatalf("toggle member: %v", err)
	}
	if err := sess.Apply(session.SetDistributionFlag{Flag: session.FlagWorldwideRelease, On: true}); err != nil {
		t.Fatalf("enable worldwide: %v", err)
	}
	if got := sess.Draft().Sets.Members(territory.SetTerritories); len(got) != 0 {
		t.Fatalf("territories should be cleared, got %v", got)
	}

	// Turning worldwide back off does not resurrect the selection.
	if err := sess.Apply(session.SetDistributionFlag{Flag: session.FlagWorldwideRelease, On: false}); err != nil {
		t.Fatalf("disable worldwide: %v", err)
	}
	if got := sess.Draft().Sets.Members(territory.SetTerritories); len(got) != 0 {
		t.Fatalf("territories should stay empty, got %v", got)
	}
}

func TestCallerTuneOffClearsPartners(t *testing.T) {
	sess := newSession(t, draft.CategorySingle)

	if err := sess.Apply(session.SetDistributionFlag{Flag: session.FlagCallerTune, On: true}); err != nil {
		t.Fatalf("enable caller tune: %v", err)
	}
	if err := sess.Apply(session.ToggleMember{Set: territory.SetCallerTunePartners, Member: "Airtel", Included: true}); err != nil {
		t.Fatalf("toggle partner: %v", err)
	}
	if err := sess.Apply(session.SetDistributionFlag{Flag: session.FlagCallerTune, On: false}); err != nil {
		t.Fatalf("disable caller tune: %v", err)
	}
	if got := sess.Draft().Sets.Members(territory.SetCallerTunePartners); len(got) != 0 {
		t.Fatalf("partners should be cleared, got %v", got)
	}
}

func TestConditionalTextFieldsAreGated(t *testing.T) {
	sess := newSession(t, draft.CategorySingle)

	err := sess.Apply(session.SetDistributionField{Field: session.FieldFundsAmount, Value: "5000"})
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected gated funds write to fail, got %v", err)
	}

	if err := sess.Apply(session.SetDistributionFlag{Flag: session.FlagPersonalFunds, On: true}); err != nil {
		t.Fatalf("enable personal funds: %v", err)
	}
	if err := sess.Apply(session.SetDistributionField{Field: session.FieldFundsAmount, Value: "5000"}); err != nil {
		t.Fatalf("set funds amount: %v", err)
	}
	if err := sess.Apply(session.SetDistributionFlag{Flag: session.FlagPersonalFunds, On: false}); err != nil {
		t.Fatalf("disable personal funds: %v", err)
	}
	if got := sess.Draft().Distribution.FundsAmount; got != "" {
		t.Fatalf("funds amount should be cleared, got %q", got)
	}
}

func TestSelectAllDerivesFromMembership(t *testing.T) {
	sess := newSession(t, draft.CategorySingle)
	sets := sess.Draft().Sets

	if err := sess.Apply(session.ToggleSelectAll{Set: territory.SetDomesticStores, Included: true}); err != nil {
		t.Fatalf("select all: %v", err)
	}
	if !sets.IsAllSelected(territory.SetDomesticStores) {
		t.Fatal("select-all should be derived as on")
	}

	members := sets.Members(territory.SetDomesticStores)
	if err := sess.Apply(session.ToggleMember{Set: territory.SetDomesticStores, Member: members[0], Included: false}); err != nil {
		t.Fatalf("deselect member: %v", err)
	}
	if sets.IsAllSelected(territory.SetDomesticStores) {
		t.Fatal("removing a member must de-derive select-all")
	}
}

func TestArtistListEditing(t *testing.T) {
	sess := newSession(t, draft.CategoryAlbum)
	artists := sess.Draft().ReleaseInfo.PrimaryArtists

	firstID := artists.LastID()
	if err := sess.Apply(session.UpdateListItem{List: session.ListPrimaryArtists, ItemID: firstID, Value: "Asha Sharma"}); err != nil {
		t.Fatalf("update artist: %v", err)
	}
	if err := sess.Apply(session.AddListItem{List: session.ListPrimaryArtists}); err != nil {
		t.Fatalf("add artist: %v", err)
	}
	secondID := artists.LastID()
	if err := sess.Apply(session.UpdateListItem{List: session.ListPrimaryArtists, ItemID: secondID, Value: "Rohan Mehta"}); err != nil {
		t.Fatalf("update artist: %v", err)
	}

	values := artists.Values()
	if len(values) != 2 || values[0] != "Asha Sharma" || values[1] != "Rohan Mehta" {
		t.Fatalf("unexpected artists %v", values)
	}

	if err := sess.Apply(session.RemoveListItem{List: session.ListPrimaryArtists, ItemID: secondID}); err != nil {
		t.Fatalf("remove artist: %v", err)
	}
	err := sess.Apply(session.RemoveListItem{List: session.ListPrimaryArtists, ItemID: firstID})
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected last-element removal to fail, got %v", err)
	}
}

func TestContributorEditing(t *testing.T) {
	sess := newSession(t, draft.CategorySingle)
	trackID := sess.Draft().Tracks.LastID()
	track, _ := sess.Draft().Tracks.Get(trackID)

	entryID := track.Value.SoundRecordingContributors.LastID()
	cmd := session.UpdateContributor{
		List:       session.ListSoundRecordingContributors,
		TrackID:    trackID,
		ItemID:     entryID,
		Profession: "Mixing Engineer",
		Names:      []string{"Priya Nair"},
	}
	if err := sess.Apply(cmd); err != nil {
		t.Fatalf("update contributor: %v", err)
	}

	track, _ = sess.Draft().Tracks.Get(trackID)
	entry, ok := track.Value.SoundRecordingContributors.Get(entryID)
	if !ok {
		t.Fatal("contributor entry missing")
	}
	if entry.Value.Profession != "Mixing Engineer" || len(entry.Value.Names) != 1 {
		t.Fatalf("unexpected contributor %+v", entry.Value)
	}

	err := sess.Apply(session.UpdateContributor{List: session.ListPrimaryArtists, TrackID: trackID, ItemID: entryID})
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected wrong-list update to fail, got %v", err)
	}
	err = sess.Apply(session.AddListItem{List: session.ListMusicalWorkContributors})
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected track-less contributor add to fail, got %v", err)
	}
}
