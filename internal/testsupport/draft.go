package testsupport

import (
	"testing"

	"releasedesk/internal/draft"
	"releasedesk/internal/territory"
)

// ValidDraft builds a created single-track draft that passes local
// validation for every step, together with matching completed uploads.
func ValidDraft(t testing.TB) (*draft.Draft, map[string]draft.UploadState) {
	t.Helper()

	d := draft.New(draft.CategorySingle)
	d.ReleaseID = "rel-test-1"

	d.ReleaseInfo.ReleaseName = "Midnight Sessions"
	d.ReleaseInfo.Label = "Indie Works"
	d.ReleaseInfo.Genre = draft.GenrePair{Genre: "Pop", Subgenre: "Indie Pop"}
	d.ReleaseInfo.ReleaseDate = "2026-10-01"
	setFirst(t, d.ReleaseInfo.PrimaryArtists, "Asha Sharma")

	trackID := d.Tracks.LastID()
	err := d.Tracks.Update(trackID, func(track *draft.Track) {
		track.Name = "Midnight Drive"
		track.Genre = draft.GenrePair{Genre: "Pop"}
		track.AudioLanguage = "hi"
		setFirst(t, track.PrimaryArtists, "Asha Sharma")
	})
	if err != nil {
		t.Fatalf("seed track: %v", err)
	}

	d.Distribution.WorldwideRelease = true
	if err := d.Sets.ToggleMember(territory.SetInternationalStores, "Spotify", true); err != nil {
		t.Fatalf("select store: %v", err)
	}
	if err := d.Sets.ToggleMember(territory.SetDomesticStores, "JioSaavn", true); err != nil {
		t.Fatalf("select store: %v", err)
	}

	uploads := map[string]draft.UploadState{
		draft.SlotCoverArt: {
			Status:      draft.UploadDone,
			URL:         "https://cdn.example/cover.png",
			SizeBytes:   1 << 20,
			MimeSubtype: "png",
		},
		draft.TrackSlot(trackID): {
			Status:      draft.UploadDone,
			URL:         "https://cdn.example/master.wav",
			SizeBytes:   10 << 20,
			MimeSubtype: "wav",
		},
	}
	return d, uploads
}

func setFirst[T any](t testing.TB, list interface {
	LastID() string
	Update(id string, patch func(*T)) error
}, value T) {
	t.Helper()
	if err := list.Update(list.LastID(), func(v *T) { *v = value }); err != nil {
		t.Fatalf("seed list value: %v", err)
	}
}
