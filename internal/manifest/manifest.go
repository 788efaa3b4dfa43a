package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"releasedesk/internal/draft"
	"releasedesk/internal/language"
	"releasedesk/internal/session"
	"releasedesk/internal/territory"
)

// SelectAll marks a whole set selected instead of naming every member.
const SelectAll = "all"

// Contributor credits one profession with its people.
type Contributor struct {
	Profession string   `toml:"profession"`
	Names      []string `toml:"names"`
}

// Track maps one [[tracks]] table. Asset paths are relative to the
// manifest file.
type Track struct {
	Name             string   `toml:"name"`
	MixVersion       string   `toml:"mix_version"`
	PrimaryArtists   []string `toml:"primary_artists"`
	FeaturingArtists []string `toml:"featuring_artists"`

	SoundRecordingContributors []Contributor `toml:"sound_recording_contributors"`
	MusicalWorkContributors    []Contributor `toml:"musical_work_contributors"`

	// ISRC left empty requests a platform-assigned code.
	ISRC string `toml:"isrc"`

	Genre    string `toml:"genre"`
	Subgenre string `toml:"subgenre"`

	Explicit     bool `toml:"explicit"`
	Instrumental bool `toml:"instrumental"`

	Language string `toml:"language"`

	Downloadable        *bool `toml:"downloadable"`
	PreviewStartSeconds int   `toml:"preview_start_seconds"`

	Audio string `toml:"audio"`
}

// Release maps the [release] table.
type Release struct {
	Name             string   `toml:"name"`
	MixVersion       string   `toml:"mix_version"`
	Label            string   `toml:"label"`
	Genre            string   `toml:"genre"`
	Subgenre         string   `toml:"subgenre"`
	Date             string   `toml:"date"`
	PrimaryArtists   []string `toml:"primary_artists"`
	FeaturingArtists []string `toml:"featuring_artists"`

	CoverArt          string `toml:"cover_art"`
	CopyrightDocument string `toml:"copyright_document"`
}

// Distribution maps the [distribution] table. Sets accept the literal
// "all" in place of a member list.
type Distribution struct {
	Worldwide   bool     `toml:"worldwide"`
	Territories []string `toml:"territories"`

	DomesticStores      []string `toml:"domestic_stores"`
	InternationalStores []string `toml:"international_stores"`

	CallerTune         bool     `toml:"caller_tune"`
	CallerTunePartners []string `toml:"caller_tune_partners"`

	PersonalFunds bool   `toml:"personal_funds"`
	FundsAmount   string `toml:"funds_amount"`

	BrandTieIn       bool   `toml:"brand_tie_in"`
	BrandDescription string `toml:"brand_description"`

	CustomLocation     bool   `toml:"custom_location"`
	CustomLocationText string `toml:"custom_location_text"`
}

// Manifest is the declarative form of one release, the input of the
// submit command.
type Manifest struct {
	Category     draft.Category `toml:"category"`
	Release      Release        `toml:"release"`
	Tracks       []Track        `toml:"tracks"`
	Distribution Distribution   `toml:"distribution"`

	dir string
}

// Load reads and decodes a manifest file. Asset paths stay relative
// until Apply resolves them against the manifest directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if !m.Category.Valid() {
		return nil, fmt.Errorf("manifest: unknown category %q", m.Category)
	}
	if len(m.Tracks) == 0 {
		return nil, fmt.Errorf("manifest: at least one track is required")
	}
	if max := m.Category.MaxTracks(); max > 0 && len(m.Tracks) > max {
		return nil, fmt.Errorf("manifest: category %s allows at most %d track", m.Category, max)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest path: %w", err)
	}
	m.dir = filepath.Dir(abs)
	return &m, nil
}

// Apply translates the manifest into session commands. It returns the
// upload slots the manifest references, keyed by slot and mapped to
// absolute file paths.
func (m *Manifest) Apply(sess *session.Session) (map[string]string, error) {
	if err := m.applyRelease(sess); err != nil {
		return nil, err
	}
	trackIDs, err := m.applyTracks(sess)
	if err != nil {
		return nil, err
	}
	if err := m.applyDistribution(sess); err != nil {
		return nil, err
	}

	slots := map[string]string{}
	if m.Release.CoverArt != "" {
		slots[draft.SlotCoverArt] = m.resolve(m.Release.CoverArt)
	}
	if m.Release.CopyrightDocument != "" {
		slots[draft.SlotCopyrightDocument] = m.resolve(m.Release.CopyrightDocument)
	}
	for i, track := range m.Tracks {
		if track.Audio != "" {
			slots[draft.TrackSlot(trackIDs[i])] = m.resolve(track.Audio)
		}
	}
	return slots, nil
}

func (m *Manifest) applyRelease(sess *session.Session) error {
	fields := []session.Command{
		session.SetReleaseField{Field: session.FieldReleaseName, Value: m.Release.Name},
		session.SetReleaseField{Field: session.FieldMixVersion, Value: m.Release.MixVersion},
		session.SetReleaseField{Field: session.FieldLabel, Value: m.Release.Label},
		session.SetReleaseField{Field: session.FieldGenre, Value: m.Release.Genre},
		session.SetReleaseField{Field: session.FieldSubgenre, Value: m.Release.Subgenre},
		session.SetReleaseField{Field: session.FieldReleaseDate, Value: m.Release.Date},
	}
	for _, cmd := range fields {
		if err := sess.Apply(cmd); err != nil {
			return err
		}
	}

	if err := fillList(sess, session.ListPrimaryArtists, "", sess.Draft().ReleaseInfo.PrimaryArtists.LastID, m.Release.PrimaryArtists); err != nil {
		return err
	}
	return fillList(sess, session.ListFeaturingArtists, "", sess.Draft().ReleaseInfo.FeaturingArtists.LastID, m.Release.FeaturingArtists)
}

func (m *Manifest) applyTracks(sess *session.Session) ([]string, error) {
	ids := make([]string, len(m.Tracks))
	for i := range m.Tracks {
		if i > 0 {
			if err := sess.Apply(session.AddTrack{}); err != nil {
				return nil, err
			}
		}
		ids[i] = sess.Draft().Tracks.LastID()
		if err := m.applyTrack(sess, ids[i], m.Tracks[i]); err != nil {
			return nil, fmt.Errorf("tracks[%d]: %w", i, err)
		}
	}
	return ids, nil
}

func (m *Manifest) applyTrack(sess *session.Session, trackID string, track Track) error {
	commands := []session.Command{
		session.SetTrackField{TrackID: trackID, Field: session.TrackFieldName, Value: track.Name},
		session.SetTrackField{TrackID: trackID, Field: session.TrackFieldMixVersion, Value: track.MixVersion},
		session.SetTrackField{TrackID: trackID, Field: session.TrackFieldGenre, Value: track.Genre},
		session.SetTrackField{TrackID: trackID, Field: session.TrackFieldSubgenre, Value: track.Subgenre},
	}
	if track.Explicit {
		commands = append(commands, session.SetTrackExplicit{TrackID: trackID, Value: draft.ExplicitExplicit})
	}
	if track.Instrumental {
		commands = append(commands, session.SetTrackFlag{TrackID: trackID, Flag: session.FlagVocalsPresent, On: false})
	} else if track.Language != "" {
		// Unresolvable input passes through so validation names it.
		lang := track.Language
		if tag, ok := language.Normalize(lang); ok {
			lang = tag
		}
		commands = append(commands, session.SetTrackField{TrackID: trackID, Field: session.TrackFieldAudioLanguage, Value: lang})
	}
	if isrc := strings.TrimSpace(track.ISRC); isrc != "" {
		commands = append(commands,
			session.SetTrackFlag{TrackID: trackID, Flag: session.FlagISRCNeeded, On: false},
			session.SetTrackField{TrackID: trackID, Field: session.TrackFieldISRC, Value: isrc},
		)
	}
	if track.Downloadable != nil {
		commands = append(commands, session.SetTrackFlag{TrackID: trackID, Flag: session.FlagDownloadable, On: *track.Downloadable})
	}
	if track.PreviewStartSeconds > 0 {
		commands = append(commands, session.SetPreviewStart{TrackID: trackID, Seconds: track.PreviewStartSeconds})
	}
	for _, cmd := range commands {
		if err := sess.Apply(cmd); err != nil {
			return err
		}
	}

	value, _ := sess.Draft().Tracks.Get(trackID)
	if err := fillList(sess, session.ListPrimaryArtists, trackID, value.Value.PrimaryArtists.LastID, track.PrimaryArtists); err != nil {
		return err
	}
	if err := fillList(sess, session.ListFeaturingArtists, trackID, value.Value.FeaturingArtists.LastID, track.FeaturingArtists); err != nil {
		return err
	}
	if err := fillContributors(sess, session.ListSoundRecordingContributors, trackID, value.Value.SoundRecordingContributors.LastID, track.SoundRecordingContributors); err != nil {
		return err
	}
	return fillContributors(sess, session.ListMusicalWorkContributors, trackID, value.Value.MusicalWorkContributors.LastID, track.MusicalWorkContributors)
}

func (m *Manifest) applyDistribution(sess *session.Session) error {
	dist := m.Distribution

	flags := []session.Command{
		session.SetDistributionFlag{Flag: session.FlagWorldwideRelease, On: dist.Worldwide},
		session.SetDistributionFlag{Flag: session.FlagCallerTune, On: dist.CallerTune},
		session.SetDistributionFlag{Flag: session.FlagPersonalFunds, On: dist.PersonalFunds},
		session.SetDistributionFlag{Flag: session.FlagBrandTieIn, On: dist.BrandTieIn},
		session.SetDistributionFlag{Flag: session.FlagCustomLocation, On: dist.CustomLocation},
	}
	for _, cmd := range flags {
		if err := sess.Apply(cmd); err != nil {
			return err
		}
	}

	texts := []struct {
		field session.DistributionField
		value string
		on    bool
	}{
		{session.FieldFundsAmount, dist.FundsAmount, dist.PersonalFunds},
		{session.FieldBrandDescription, dist.BrandDescription, dist.BrandTieIn},
		{session.FieldCustomLocationText, dist.CustomLocationText, dist.CustomLocation},
	}
	for _, text := range texts {
		if !text.on {
			continue
		}
		if err := sess.Apply(session.SetDistributionField{Field: text.field, Value: text.value}); err != nil {
			return err
		}
	}

	sets := []struct {
		name    string
		members []string
	}{
		{territory.SetTerritories, dist.Territories},
		{territory.SetDomesticStores, dist.DomesticStores},
		{territory.SetInternationalStores, dist.InternationalStores},
		{territory.SetCallerTunePartners, dist.CallerTunePartners},
	}
	for _, set := range sets {
		if err := fillSet(sess, set.name, set.members); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.dir, path)
}

// fillList writes values into a seeded collection: the first value
// overwrites the seed element, the rest are appended.
func fillList(sess *session.Session, key session.ListKey, trackID string, lastID func() string, values []string) error {
	for i, value := range values {
		if i > 0 {
			if err := sess.Apply(session.AddListItem{List: key, TrackID: trackID}); err != nil {
				return err
			}
		}
		cmd := session.UpdateListItem{List: key, TrackID: trackID, ItemID: lastID(), Value: value}
		if err := sess.Apply(cmd); err != nil {
			return err
		}
	}
	return nil
}

func fillContributors(sess *session.Session, key session.ListKey, trackID string, lastID func() string, values []Contributor) error {
	for i, value := range values {
		if i > 0 {
			if err := sess.Apply(session.AddListItem{List: key, TrackID: trackID}); err != nil {
				return err
			}
		}
		cmd := session.UpdateContributor{
			List:       key,
			TrackID:    trackID,
			ItemID:     lastID(),
			Profession: value.Profession,
			Names:      value.Names,
		}
		if err := sess.Apply(cmd); err != nil {
			return err
		}
	}
	return nil
}

// fillSet toggles members into a named set; the literal "all" selects
// the whole universe.
func fillSet(sess *session.Session, setName string, members []string) error {
	for _, member := range members {
		if strings.EqualFold(member, SelectAll) {
			return sess.Apply(session.ToggleSelectAll{Set: setName, Included: true})
		}
	}
	for _, member := range members {
		if err := sess.Apply(session.ToggleMember{Set: setName, Member: member, Included: true}); err != nil {
			return err
		}
	}
	return nil
}
