package api

import (
	"strings"

	"releasedesk/internal/draft"
	"releasedesk/internal/territory"
)

// PayloadForStep converts one step of the draft into its wire payload.
// The switch is exhaustive over the step ordinals the workflow defines.
func PayloadForStep(d *draft.Draft, step int, uploads map[string]draft.UploadState) (StepPayload, bool) {
	switch step {
	case draft.StepReleaseInfo:
		return FromReleaseInfo(d, uploads), true
	case draft.StepTracks:
		return FromTracks(d, uploads), true
	case draft.StepDistribution:
		return FromDistribution(d), true
	default:
		return nil, false
	}
}

// FromReleaseInfo builds the step 1 payload.
func FromReleaseInfo(d *draft.Draft, uploads map[string]draft.UploadState) Step1Payload {
	info := d.ReleaseInfo
	return Step1Payload{
		ReleaseName:      strings.TrimSpace(info.ReleaseName),
		MixVersion:       strings.TrimSpace(info.MixVersion),
		Label:            strings.TrimSpace(info.Label),
		Genre:            strings.TrimSpace(info.Genre.Genre),
		Subgenre:         strings.TrimSpace(info.Genre.Subgenre),
		ReleaseDate:      strings.TrimSpace(info.ReleaseDate),
		PrimaryArtists:   compactStrings(info.PrimaryArtists.Values()),
		FeaturingArtists: compactStrings(info.FeaturingArtists.Values()),
		CoverArt:         assetRef(uploads[draft.SlotCoverArt]),
		CopyrightProof:   assetRef(uploads[draft.SlotCopyrightDocument]),
	}
}

// FromTracks builds the step 2 payload in track order.
func FromTracks(d *draft.Draft, uploads map[string]draft.UploadState) Step2Payload {
	items := d.Tracks.Items()
	tracks := make([]TrackPayload, 0, len(items))
	for _, item := range items {
		track := item.Value
		tracks = append(tracks, TrackPayload{
			Name:                       strings.TrimSpace(track.Name),
			MixVersion:                 strings.TrimSpace(track.MixVersion),
			PrimaryArtists:             compactStrings(track.PrimaryArtists.Values()),
			FeaturingArtists:           compactStrings(track.FeaturingArtists.Values()),
			SoundRecordingContributors: contributors(track.SoundRecordingContributors.Values()),
			MusicalWorkContributors:    contributors(track.MusicalWorkContributors.Values()),
			IsrcNeeded:                 track.ISRCNeeded,
			Isrc:                       strings.TrimSpace(track.ISRC),
			Genre:                      strings.TrimSpace(track.Genre.Genre),
			Subgenre:                   strings.TrimSpace(track.Genre.Subgenre),
			Explicit:                   string(track.Explicit),
			VocalsPresent:              track.VocalsPresent,
			AudioLanguage:              strings.TrimSpace(track.AudioLanguage),
			Downloadable:               track.Downloadable,
			PreviewStartSeconds:        track.PreviewStartSeconds,
			Audio:                      assetRef(uploads[draft.TrackSlot(item.ID)]),
		})
	}
	return Step2Payload{Tracks: tracks}
}

// FromDistribution builds the step 3 payload. A worldwide release carries no
// explicit territory list.
func FromDistribution(d *draft.Draft) Step3Payload {
	dist := d.Distribution
	payload := Step3Payload{
		WorldwideRelease:    dist.WorldwideRelease,
		CallerTuneEnabled:   dist.CallerTuneEnabled,
		DomesticStores:      d.Sets.Members(territory.SetDomesticStores),
		InternationalStores: d.Sets.Members(territory.SetInternationalStores),
		PersonalFunds:       dist.PersonalFunds,
		FundsAmount:         strings.TrimSpace(dist.FundsAmount),
		BrandTieIn:          dist.BrandTieIn,
		BrandDescription:    strings.TrimSpace(dist.BrandDescription),
		CustomLocation:      dist.CustomLocation,
		CustomLocationText:  strings.TrimSpace(dist.CustomLocationText),
	}
	if !dist.WorldwideRelease {
		payload.Territories = d.Sets.Members(territory.SetTerritories)
	}
	if dist.CallerTuneEnabled {
		payload.CallerTunePartners = d.Sets.Members(territory.SetCallerTunePartners)
	}
	return payload
}

func assetRef(state draft.UploadState) *AssetRef {
	if !state.Complete() {
		return nil
	}
	return &AssetRef{
		URL:         state.URL,
		SizeBytes:   state.SizeBytes,
		MimeSubtype: state.MimeSubtype,
	}
}

func contributors(values []draft.Contributor) []ContributorPayload {
	out := make([]ContributorPayload, 0, len(values))
	for _, value := range values {
		profession := strings.TrimSpace(value.Profession)
		names := compactStrings(value.Names)
		if profession == "" && len(names) == 0 {
			continue
		}
		out = append(out, ContributorPayload{Profession: profession, Names: names})
	}
	return out
}

func compactStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
