package territory

// Set names used by the distribution step.
const (
	SetTerritories         = "territories"
	SetCallerTunePartners  = "callerTunePartners"
	SetDomesticStores      = "domesticStores"
	SetInternationalStores = "internationalStores"
)

// Group is a display-only partition of a universe. Membership semantics
// operate over the flattened union of all groups.
type Group struct {
	Name    string
	Members []string
}

// Universe is the full set of selectable members for one named set.
type Universe struct {
	Name   string
	Groups []Group
}

// Flatten returns every member in universe order.
func (u Universe) Flatten() []string {
	var out []string
	for _, group := range u.Groups {
		out = append(out, group.Members...)
	}
	return out
}

func territoryUniverse() Universe {
	return Universe{
		Name: SetTerritories,
		Groups: []Group{
			{Name: "Asia", Members: []string{"IN", "JP", "KR", "ID", "TH", "VN", "PH", "MY", "SG"}},
			{Name: "Europe", Members: []string{"GB", "DE", "FR", "IT", "ES", "NL", "SE", "PL"}},
			{Name: "Americas", Members: []string{"US", "CA", "MX", "BR", "AR", "CO"}},
			{Name: "Oceania & Africa", Members: []string{"AU", "NZ", "ZA", "NG", "EG"}},
		},
	}
}

func callerTuneUniverse() Universe {
	return Universe{
		Name: SetCallerTunePartners,
		Groups: []Group{
			{Name: "Caller tune partners", Members: []string{"Airtel", "Jio", "Vi", "BSNL"}},
		},
	}
}

func domesticStoreUniverse() Universe {
	return Universe{
		Name: SetDomesticStores,
		Groups: []Group{
			{Name: "Domestic stores", Members: []string{"JioSaavn", "Gaana", "Wynk", "Hungama"}},
		},
	}
}

func internationalStoreUniverse() Universe {
	return Universe{
		Name: SetInternationalStores,
		Groups: []Group{
			{Name: "Streaming", Members: []string{"Spotify", "Apple Music", "Amazon Music", "YouTube Music", "Deezer", "Tidal", "Pandora"}},
			{Name: "Social & short video", Members: []string{"TikTok", "Instagram", "Snap"}},
			{Name: "Download", Members: []string{"iTunes", "Beatport"}},
		},
	}
}

// DefaultUniverses returns the universes for every set the distribution
// step renders, in display order.
func DefaultUniverses() []Universe {
	return []Universe{
		territoryUniverse(),
		callerTuneUniverse(),
		domesticStoreUniverse(),
		internationalStoreUniverse(),
	}
}
