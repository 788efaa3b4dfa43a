package session

import (
	"fmt"
	"strings"

	"releasedesk/internal/collection"
	"releasedesk/internal/draft"
	"releasedesk/internal/policy"
	"releasedesk/internal/services"
)

// Command is one typed mutation of the draft.
type Command interface {
	apply(s *Session) error
}

// ReleaseField names a scalar field of the release info step.
type ReleaseField string

const (
	FieldReleaseName ReleaseField = "releaseName"
	FieldMixVersion  ReleaseField = "mixVersion"
	FieldLabel       ReleaseField = "label"
	FieldGenre       ReleaseField = "genre"
	FieldSubgenre    ReleaseField = "subgenre"
	FieldReleaseDate ReleaseField = "releaseDate"
)

// SetReleaseField updates one scalar of the release info.
type SetReleaseField struct {
	Field ReleaseField
	Value string
}

func (c SetReleaseField) apply(s *Session) error {
	info := &s.draft.ReleaseInfo
	switch c.Field {
	case FieldReleaseName:
		info.ReleaseName = c.Value
	case FieldMixVersion:
		info.MixVersion = c.Value
	case FieldLabel:
		info.Label = c.Value
	case FieldGenre:
		info.Genre.Genre = c.Value
	case FieldSubgenre:
		info.Genre.Subgenre = c.Value
	case FieldReleaseDate:
		info.ReleaseDate = c.Value
	default:
		return commandError(fmt.Sprintf("unknown release field %q", c.Field))
	}
	return nil
}

// AddTrack appends a fresh track when the category permits another.
type AddTrack struct{}

func (AddTrack) apply(s *Session) error {
	if !s.draft.CanAddTrack() {
		return commandError(fmt.Sprintf("category %s allows at most %d track", s.draft.Category, s.draft.Category.MaxTracks()))
	}
	s.draft.Tracks.Add()
	return nil
}

// RemoveTrack drops a track. The last remaining track cannot be removed.
type RemoveTrack struct {
	TrackID string
}

func (c RemoveTrack) apply(s *Session) error {
	if !s.draft.Tracks.Remove(c.TrackID) {
		return commandError("a release keeps at least one track")
	}
	if s.pipeline != nil {
		s.pipeline.Reset(draft.TrackSlot(c.TrackID))
	}
	return nil
}

// TrackField names a scalar string field of a track.
type TrackField string

const (
	TrackFieldName          TrackField = "name"
	TrackFieldMixVersion    TrackField = "mixVersion"
	TrackFieldISRC          TrackField = "isrc"
	TrackFieldGenre         TrackField = "genre"
	TrackFieldSubgenre      TrackField = "subgenre"
	TrackFieldAudioLanguage TrackField = "audioLanguage"
)

// SetTrackField updates one scalar of a track.
type SetTrackField struct {
	TrackID string
	Field   TrackField
	Value   string
}

func (c SetTrackField) apply(s *Session) error {
	return s.patchTrack(c.TrackID, func(track *draft.Track) error {
		switch c.Field {
		case TrackFieldName:
			track.Name = c.Value
		case TrackFieldMixVersion:
			track.MixVersion = c.Value
		case TrackFieldISRC:
			if track.ISRCNeeded {
				return commandError("platform assigns the ISRC for this track")
			}
			track.ISRC = strings.ToUpper(strings.TrimSpace(c.Value))
		case TrackFieldGenre:
			track.Genre.Genre = c.Value
		case TrackFieldSubgenre:
			track.Genre.Subgenre = c.Value
		case TrackFieldAudioLanguage:
			if !track.VocalsPresent {
				return commandError("instrumental tracks carry no language")
			}
			track.AudioLanguage = c.Value
		default:
			return commandError(fmt.Sprintf("unknown track field %q", c.Field))
		}
		return nil
	})
}

// TrackFlag names a boolean preference of a track.
type TrackFlag string

const (
	FlagISRCNeeded    TrackFlag = "isrcNeeded"
	FlagVocalsPresent TrackFlag = "vocalsPresent"
	FlagDownloadable  TrackFlag = "downloadable"
)

// SetTrackFlag flips one track preference, clearing any field the flag
// gates.
type SetTrackFlag struct {
	TrackID string
	Flag    TrackFlag
	On      bool
}

func (c SetTrackFlag) apply(s *Session) error {
	return s.patchTrack(c.TrackID, func(track *draft.Track) error {
		switch c.Flag {
		case FlagISRCNeeded:
			policy.SetISRCNeeded(track, c.On)
		case FlagVocalsPresent:
			policy.SetVocalsPresent(track, c.On)
		case FlagDownloadable:
			track.Downloadable = c.On
		default:
			return commandError(fmt.Sprintf("unknown track flag %q", c.Flag))
		}
		return nil
	})
}

// SetTrackExplicit sets the content rating of a track.
type SetTrackExplicit struct {
	TrackID string
	Value   draft.ExplicitStatus
}

func (c SetTrackExplicit) apply(s *Session) error {
	return s.patchTrack(c.TrackID, func(track *draft.Track) error {
		switch c.Value {
		case draft.ExplicitClean, draft.ExplicitExplicit:
			track.Explicit = c.Value
			return nil
		default:
			return commandError(fmt.Sprintf("unknown explicit status %q", c.Value))
		}
	})
}

// SetPreviewStart sets the preview offset of a track in seconds.
type SetPreviewStart struct {
	TrackID string
	Seconds int
}

func (c SetPreviewStart) apply(s *Session) error {
	if c.Seconds < 0 {
		return commandError("preview offset must not be negative")
	}
	return s.patchTrack(c.TrackID, func(track *draft.Track) error {
		track.PreviewStartSeconds = c.Seconds
		return nil
	})
}

// ListKey names a repeatable collection. Artist lists exist both on the
// release (empty TrackID) and on tracks; contributor lists are track-only.
type ListKey string

const (
	ListPrimaryArtists             ListKey = "primaryArtists"
	ListFeaturingArtists           ListKey = "featuringArtists"
	ListSoundRecordingContributors ListKey = "soundRecordingContributors"
	ListMusicalWorkContributors    ListKey = "musicalWorkContributors"
)

// AddListItem appends an empty element to a repeatable collection.
type AddListItem struct {
	List    ListKey
	TrackID string
}

func (c AddListItem) apply(s *Session) error {
	return s.withList(c.List, c.TrackID,
		func(list *collection.List[string]) error {
			list.Add()
			return nil
		},
		func(list *collection.List[draft.Contributor]) error {
			list.Add()
			return nil
		})
}

// RemoveListItem drops one element. Collections keep at least one element.
type RemoveListItem struct {
	List    ListKey
	TrackID string
	ItemID  string
}

func (c RemoveListItem) apply(s *Session) error {
	return s.withList(c.List, c.TrackID,
		func(list *collection.List[string]) error {
			if !list.Remove(c.ItemID) {
				return commandError("a collection keeps at least one element")
			}
			return nil
		},
		func(list *collection.List[draft.Contributor]) error {
			if !list.Remove(c.ItemID) {
				return commandError("a collection keeps at least one element")
			}
			return nil
		})
}

// UpdateListItem sets the value of one element of a string collection.
type UpdateListItem struct {
	List    ListKey
	TrackID string
	ItemID  string
	Value   string
}

func (c UpdateListItem) apply(s *Session) error {
	return s.withList(c.List, c.TrackID,
		func(list *collection.List[string]) error {
			return wrapListErr(list.Update(c.ItemID, func(v *string) { *v = c.Value }))
		},
		func(*collection.List[draft.Contributor]) error {
			return commandError("contributor entries take UpdateContributor")
		})
}

// UpdateContributor sets profession and names of one contributor entry.
type UpdateContributor struct {
	List       ListKey
	TrackID    string
	ItemID     string
	Profession string
	Names      []string
}

func (c UpdateContributor) apply(s *Session) error {
	return s.withList(c.List, c.TrackID,
		func(*collection.List[string]) error {
			return commandError("artist entries take UpdateListItem")
		},
		func(list *collection.List[draft.Contributor]) error {
			return wrapListErr(list.Update(c.ItemID, func(v *draft.Contributor) {
				v.Profession = c.Profession
				v.Names = append([]string(nil), c.Names...)
			}))
		})
}

// DistributionFlag names a boolean preference of the distribution step.
type DistributionFlag string

const (
	FlagWorldwideRelease DistributionFlag = "worldwideRelease"
	FlagCallerTune       DistributionFlag = "callerTune"
	FlagPersonalFunds    DistributionFlag = "personalFunds"
	FlagBrandTieIn       DistributionFlag = "brandTieIn"
	FlagCustomLocation   DistributionFlag = "customLocation"
)

// SetDistributionFlag flips one distribution preference, clearing the
// selections or text the flag gates.
type SetDistributionFlag struct {
	Flag DistributionFlag
	On   bool
}

func (c SetDistributionFlag) apply(s *Session) error {
	d := s.draft
	switch c.Flag {
	case FlagWorldwideRelease:
		policy.SetWorldwideRelease(d, c.On)
	case FlagCallerTune:
		policy.SetCallerTuneEnabled(d, c.On)
	case FlagPersonalFunds:
		policy.SetPersonalFunds(&d.Distribution, c.On)
	case FlagBrandTieIn:
		policy.SetBrandTieIn(&d.Distribution, c.On)
	case FlagCustomLocation:
		policy.SetCustomLocation(&d.Distribution, c.On)
	default:
		return commandError(fmt.Sprintf("unknown distribution flag %q", c.Flag))
	}
	return nil
}

// DistributionField names a conditional text field of the distribution
// step.
type DistributionField string

const (
	FieldFundsAmount        DistributionField = "fundsAmount"
	FieldBrandDescription   DistributionField = "brandDescription"
	FieldCustomLocationText DistributionField = "customLocationText"
)

// SetDistributionField updates one conditional text field. Writing a
// field whose gate is off is a command error.
type SetDistributionField struct {
	Field DistributionField
	Value string
}

func (c SetDistributionField) apply(s *Session) error {
	dist := &s.draft.Distribution
	switch c.Field {
	case FieldFundsAmount:
		if !dist.PersonalFunds {
			return commandError("personal funds are not enabled")
		}
		dist.FundsAmount = c.Value
	case FieldBrandDescription:
		if !dist.BrandTieIn {
			return commandError("brand tie-in is not enabled")
		}
		dist.BrandDescription = c.Value
	case FieldCustomLocationText:
		if !dist.CustomLocation {
			return commandError("custom location is not enabled")
		}
		dist.CustomLocationText = c.Value
	default:
		return commandError(fmt.Sprintf("unknown distribution field %q", c.Field))
	}
	return nil
}

// ToggleMember includes or excludes one member of a named set.
type ToggleMember struct {
	Set      string
	Member   string
	Included bool
}

func (c ToggleMember) apply(s *Session) error {
	if err := s.draft.Sets.ToggleMember(c.Set, c.Member, c.Included); err != nil {
		return commandError(err.Error())
	}
	return nil
}

// ToggleSelectAll selects or clears a whole named set.
type ToggleSelectAll struct {
	Set      string
	Included bool
}

func (c ToggleSelectAll) apply(s *Session) error {
	if err := s.draft.Sets.ToggleSelectAll(c.Set, c.Included); err != nil {
		return commandError(err.Error())
	}
	return nil
}

func commandError(msg string) error {
	return services.Wrap(services.ErrPrecondition, "", "apply", msg, nil)
}

func wrapListErr(err error) error {
	if err == nil {
		return nil
	}
	return commandError(err.Error())
}
