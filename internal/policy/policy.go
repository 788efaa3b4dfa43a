package policy

import (
	"releasedesk/internal/draft"
	"releasedesk/internal/territory"
)

// SetVocalsPresent flips the vocals flag; instrumentals carry no language.
func SetVocalsPresent(track *draft.Track, present bool) {
	track.VocalsPresent = present
	if !present {
		track.AudioLanguage = ""
	}
}

// SetISRCNeeded flips the ISRC request flag. When the platform assigns the
// code any user-supplied value is cleared.
func SetISRCNeeded(track *draft.Track, needed bool) {
	track.ISRCNeeded = needed
	if needed {
		track.ISRC = ""
	}
}

// SetWorldwideRelease flips the worldwide flag; an explicit territory
// selection is meaningless alongside it and is cleared.
func SetWorldwideRelease(d *draft.Draft, worldwide bool) {
	d.Distribution.WorldwideRelease = worldwide
	if worldwide {
		d.Sets.Clear(territory.SetTerritories)
	}
}

// SetCallerTuneEnabled flips caller tune distribution; partner selections
// are cleared when it goes off.
func SetCallerTuneEnabled(d *draft.Draft, enabled bool) {
	d.Distribution.CallerTuneEnabled = enabled
	if !enabled {
		d.Sets.Clear(territory.SetCallerTunePartners)
	}
}

// SetPersonalFunds flips the personal funds flag and clears the amount when
// no contribution applies.
func SetPersonalFunds(dist *draft.Distribution, enabled bool) {
	dist.PersonalFunds = enabled
	if !enabled {
		dist.FundsAmount = ""
	}
}

// SetBrandTieIn flips the brand tie-in flag and clears its description when
// no tie-in applies.
func SetBrandTieIn(dist *draft.Distribution, enabled bool) {
	dist.BrandTieIn = enabled
	if !enabled {
		dist.BrandDescription = ""
	}
}

// SetCustomLocation flips the "other location" preference and clears the
// free-text location when unchecked.
func SetCustomLocation(dist *draft.Distribution, enabled bool) {
	dist.CustomLocation = enabled
	if !enabled {
		dist.CustomLocationText = ""
	}
}
