package draft

import (
	"releasedesk/internal/collection"
	"releasedesk/internal/territory"
)

// Step ordinals. Each step is independently validated and persisted;
// CurrentStep counts acknowledged steps.
const (
	StepReleaseInfo  = 0
	StepTracks       = 1
	StepDistribution = 2
	StepCount        = 3
)

// StepName returns the wire name for a step ordinal (step1..stepN).
func StepName(step int) string {
	switch step {
	case StepReleaseInfo:
		return "step1"
	case StepTracks:
		return "step2"
	case StepDistribution:
		return "step3"
	default:
		return ""
	}
}

// GenrePair is a primary genre with its subgenre.
type GenrePair struct {
	Genre    string
	Subgenre string
}

// ReleaseInfo is the step 1 payload: release-level metadata plus the cover
// art and copyright document slots.
type ReleaseInfo struct {
	ReleaseName string
	MixVersion  string
	Label       string
	Genre       GenrePair
	ReleaseDate string // YYYY-MM-DD

	PrimaryArtists   *collection.List[string]
	FeaturingArtists *collection.List[string]
}

// Distribution is the step 3 payload: where and how the release goes out.
// Set membership lives in the territory model; the flags and conditional
// fields live here.
type Distribution struct {
	// WorldwideRelease makes the explicit territory selection irrelevant;
	// the policy clears it when this flips on.
	WorldwideRelease bool

	CallerTuneEnabled bool

	// PersonalFunds gates FundsAmount.
	PersonalFunds bool
	FundsAmount   string

	// BrandTieIn gates BrandDescription.
	BrandTieIn       bool
	BrandDescription string

	// CustomLocation gates CustomLocationText ("other" shoot location).
	CustomLocation     bool
	CustomLocationText string
}

// Draft is the aggregate root of one authoring session.
type Draft struct {
	// ReleaseID is assigned by the distribution service on creation.
	// Empty means the draft is unusable.
	ReleaseID string
	Category  Category

	// CurrentStep advances by exactly one on each successful persistence
	// and never moves backward; editing earlier steps does not touch it.
	CurrentStep int

	ReleaseInfo  ReleaseInfo
	Tracks       *collection.List[Track]
	Distribution Distribution

	// Sets holds the territory and partner selections for step 3.
	Sets *territory.Model
}

// New builds a draft for the given category with every list seeded. The
// draft stays unusable until a release id is assigned.
func New(category Category) *Draft {
	return &Draft{
		Category: category,
		ReleaseInfo: ReleaseInfo{
			PrimaryArtists:   collection.NewList(func() string { return "" }),
			FeaturingArtists: collection.NewList(func() string { return "" }),
		},
		Tracks: collection.NewListOf(func() Track { return NewTrack() }, NewTrack()),
		Sets:   territory.NewModel(),
	}
}

// Created reports whether the distribution service has assigned an id.
func (d *Draft) Created() bool {
	return d != nil && d.ReleaseID != ""
}

// CanAddTrack reports whether the category permits another track.
func (d *Draft) CanAddTrack() bool {
	max := d.Category.MaxTracks()
	return max == 0 || d.Tracks.Len() < max
}

// RequiredSlots returns the upload slot keys a step needs completed before
// it may be persisted.
func (d *Draft) RequiredSlots(step int) []string {
	switch step {
	case StepReleaseInfo:
		return []string{SlotCoverArt}
	case StepTracks:
		slots := make([]string, 0, d.Tracks.Len())
		for _, item := range d.Tracks.Items() {
			slots = append(slots, TrackSlot(item.ID))
		}
		return slots
	default:
		return nil
	}
}
