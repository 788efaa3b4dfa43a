package draft

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"releasedesk/internal/language"
	"releasedesk/internal/services"
	"releasedesk/internal/territory"
)

var isrcPattern = regexp.MustCompile(`^[A-Z]{2}[0-9A-Z]{3}[0-9]{7}$`)

// ValidISRC reports whether code is a well-formed ISRC
// (country, registrant, year, designation).
func ValidISRC(code string) bool {
	return isrcPattern.MatchString(code)
}

// ValidateStep runs local validation for one step against the current
// upload states. A non-nil return wraps services.ErrValidation with
// field-scoped details; nothing is sent to the server when it fails.
func (d *Draft) ValidateStep(step int, uploads map[string]UploadState) error {
	var details *services.ValidationDetails
	switch step {
	case StepReleaseInfo:
		details = d.validateReleaseInfo(uploads)
	case StepTracks:
		details = d.validateTracks(uploads)
	case StepDistribution:
		details = d.validateDistribution()
	default:
		return services.Wrap(services.ErrPrecondition, StepName(step), "validate", fmt.Sprintf("unknown step %d", step), nil)
	}
	if details != nil {
		return services.Wrap(services.ErrValidation, StepName(step), "validate", "payload failed local checks", details)
	}
	return nil
}

func (d *Draft) validateReleaseInfo(uploads map[string]UploadState) *services.ValidationDetails {
	fields := map[string]string{}
	info := d.ReleaseInfo

	if strings.TrimSpace(info.ReleaseName) == "" {
		fields["releaseName"] = "release name is required"
	}
	if !hasNonBlank(info.PrimaryArtists.Values()) {
		fields["primaryArtists"] = "at least one primary artist is required"
	}
	if strings.TrimSpace(info.Genre.Genre) == "" {
		fields["genre"] = "genre is required"
	}
	if date := strings.TrimSpace(info.ReleaseDate); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			fields["releaseDate"] = "release date must be YYYY-MM-DD"
		}
	}
	if !uploads[SlotCoverArt].Complete() {
		fields["coverArt"] = "cover art upload must be completed"
	}

	return detailsOrNil(fields)
}

func (d *Draft) validateTracks(uploads map[string]UploadState) *services.ValidationDetails {
	fields := map[string]string{}

	items := d.Tracks.Items()
	if max := d.Category.MaxTracks(); max > 0 && len(items) > max {
		fields["tracks"] = fmt.Sprintf("category %s allows at most %d track", d.Category, max)
	}

	for i, item := range items {
		track := item.Value
		prefix := fmt.Sprintf("tracks[%d].", i)

		if strings.TrimSpace(track.Name) == "" {
			fields[prefix+"name"] = "track name is required"
		}
		if !hasNonBlank(track.PrimaryArtists.Values()) {
			fields[prefix+"primaryArtists"] = "at least one primary artist is required"
		}
		if !track.ISRCNeeded {
			if !ValidISRC(strings.TrimSpace(track.ISRC)) {
				fields[prefix+"isrc"] = "a valid ISRC is required when not requesting one"
			}
		}
		if strings.TrimSpace(track.Genre.Genre) == "" {
			fields[prefix+"genre"] = "genre is required"
		}
		switch track.Explicit {
		case ExplicitClean, ExplicitExplicit:
		default:
			fields[prefix+"explicit"] = "explicit status must be clean or explicit"
		}
		if track.VocalsPresent {
			tag := strings.TrimSpace(track.AudioLanguage)
			if tag == "" {
				fields[prefix+"audioLanguage"] = "language is required when vocals are present"
			} else if !language.Valid(tag) {
				fields[prefix+"audioLanguage"] = fmt.Sprintf("unrecognized language %q", tag)
			}
		}
		if track.PreviewStartSeconds < 0 {
			fields[prefix+"previewStartSeconds"] = "preview offset must not be negative"
		}
		if !uploads[TrackSlot(item.ID)].Complete() {
			fields[prefix+"audio"] = "audio upload must be completed"
		}
	}

	return detailsOrNil(fields)
}

func (d *Draft) validateDistribution() *services.ValidationDetails {
	fields := map[string]string{}
	dist := d.Distribution

	if !dist.WorldwideRelease && len(d.Sets.Members(territory.SetTerritories)) == 0 {
		fields["territories"] = "select at least one territory or choose worldwide release"
	}
	domestic := len(d.Sets.Members(territory.SetDomesticStores))
	international := len(d.Sets.Members(territory.SetInternationalStores))
	if domestic+international == 0 {
		fields["stores"] = "select at least one store"
	}
	if dist.CallerTuneEnabled && len(d.Sets.Members(territory.SetCallerTunePartners)) == 0 {
		fields["callerTunePartners"] = "select at least one caller tune partner"
	}
	if dist.PersonalFunds && strings.TrimSpace(dist.FundsAmount) == "" {
		fields["fundsAmount"] = "funds amount is required"
	}
	if dist.BrandTieIn && strings.TrimSpace(dist.BrandDescription) == "" {
		fields["brandDescription"] = "brand tie-in description is required"
	}
	if dist.CustomLocation && strings.TrimSpace(dist.CustomLocationText) == "" {
		fields["customLocationText"] = "custom location is required"
	}

	return detailsOrNil(fields)
}

func hasNonBlank(values []string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

func detailsOrNil(fields map[string]string) *services.ValidationDetails {
	if len(fields) == 0 {
		return nil
	}
	return &services.ValidationDetails{Fields: fields}
}
