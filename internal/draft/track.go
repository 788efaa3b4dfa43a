package draft

import "releasedesk/internal/collection"

// ExplicitStatus marks a track's lyrical content rating.
type ExplicitStatus string

const (
	ExplicitClean    ExplicitStatus = "clean"
	ExplicitExplicit ExplicitStatus = "explicit"
)

// Contributor is one credited contributor on a track, either to the sound
// recording (performers, engineers) or the musical work (composers,
// lyricists).
type Contributor struct {
	Profession string
	Names      []string
}

// Track is a child entity of the draft. Multi-track categories hold many;
// single and ringtone drafts hold exactly one.
type Track struct {
	Name       string
	MixVersion string

	PrimaryArtists   *collection.List[string]
	FeaturingArtists *collection.List[string]

	SoundRecordingContributors *collection.List[Contributor]
	MusicalWorkContributors    *collection.List[Contributor]

	// ISRCNeeded means the platform assigns a code; when false the user
	// must supply a valid ISRC of their own.
	ISRCNeeded bool
	ISRC       string

	Genre    GenrePair
	Explicit ExplicitStatus

	// VocalsPresent gates AudioLanguage: instrumentals carry no language.
	VocalsPresent bool
	AudioLanguage string

	Downloadable        bool
	PreviewStartSeconds int
}

// NewTrack builds a track with every repeatable list seeded.
func NewTrack() Track {
	return Track{
		PrimaryArtists:             collection.NewList(func() string { return "" }),
		FeaturingArtists:           collection.NewList(func() string { return "" }),
		SoundRecordingContributors: collection.NewList(func() Contributor { return Contributor{} }),
		MusicalWorkContributors:    collection.NewList(func() Contributor { return Contributor{} }),
		ISRCNeeded:                 true,
		Explicit:                   ExplicitClean,
		VocalsPresent:              true,
		Downloadable:               true,
	}
}
