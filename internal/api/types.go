package api

// StepPayload is the tagged union of per-step wire payloads.
type StepPayload interface {
	Step() int
}

// AssetRef points at an uploaded binary in object storage.
type AssetRef struct {
	URL         string `json:"url"`
	SizeBytes   int64  `json:"sizeBytes"`
	MimeSubtype string `json:"mimeSubtype"`
}

// Step1Payload carries release-level metadata and cover assets.
type Step1Payload struct {
	ReleaseName      string    `json:"releaseName"`
	MixVersion       string    `json:"mixVersion,omitempty"`
	Label            string    `json:"label,omitempty"`
	Genre            string    `json:"genre"`
	Subgenre         string    `json:"subgenre,omitempty"`
	ReleaseDate      string    `json:"releaseDate,omitempty"`
	PrimaryArtists   []string  `json:"primaryArtists"`
	FeaturingArtists []string  `json:"featuringArtists,omitempty"`
	CoverArt         *AssetRef `json:"coverArt,omitempty"`
	CopyrightProof   *AssetRef `json:"copyrightProof,omitempty"`
}

func (Step1Payload) Step() int { return 0 }

// ContributorPayload credits one contributor with a profession.
type ContributorPayload struct {
	Profession string   `json:"profession"`
	Names      []string `json:"contributorNames"`
}

// TrackPayload is one track inside the step 2 payload.
type TrackPayload struct {
	Name                       string               `json:"name"`
	MixVersion                 string               `json:"mixVersion,omitempty"`
	PrimaryArtists             []string             `json:"primaryArtists"`
	FeaturingArtists           []string             `json:"featuringArtists,omitempty"`
	SoundRecordingContributors []ContributorPayload `json:"soundRecordingContributors,omitempty"`
	MusicalWorkContributors    []ContributorPayload `json:"musicalWorkContributors,omitempty"`
	IsrcNeeded                 bool                 `json:"isrcNeeded"`
	Isrc                       string               `json:"isrc,omitempty"`
	Genre                      string               `json:"genre"`
	Subgenre                   string               `json:"subgenre,omitempty"`
	Explicit                   string               `json:"explicit"`
	VocalsPresent              bool                 `json:"vocalsPresent"`
	AudioLanguage              string               `json:"audioLanguage,omitempty"`
	Downloadable               bool                 `json:"downloadable"`
	PreviewStartSeconds        int                  `json:"previewStartSeconds"`
	Audio                      *AssetRef            `json:"audio,omitempty"`
}

// Step2Payload carries the ordered track list.
type Step2Payload struct {
	Tracks []TrackPayload `json:"tracks"`
}

func (Step2Payload) Step() int { return 1 }

// Step3Payload carries distribution targets and rights metadata. Territory
// and partner selections are always the flattened member lists; no
// select-all flag travels on the wire.
type Step3Payload struct {
	WorldwideRelease    bool     `json:"worldwideRelease"`
	Territories         []string `json:"territories,omitempty"`
	CallerTuneEnabled   bool     `json:"callerTuneEnabled"`
	CallerTunePartners  []string `json:"callerTunePartners,omitempty"`
	DomesticStores      []string `json:"domesticStores,omitempty"`
	InternationalStores []string `json:"internationalStores,omitempty"`
	PersonalFunds       bool     `json:"personalFunds"`
	FundsAmount         string   `json:"fundsAmount,omitempty"`
	BrandTieIn          bool     `json:"brandTieIn"`
	BrandDescription    string   `json:"brandDescription,omitempty"`
	CustomLocation      bool     `json:"customLocation"`
	CustomLocationText  string   `json:"customLocationText,omitempty"`
}

func (Step3Payload) Step() int { return 2 }

// Release is the read-only projection of a release the dashboard consumes.
type Release struct {
	ReleaseID string        `json:"releaseId"`
	Category  string        `json:"category"`
	Status    string        `json:"status"`
	Step1     *Step1Payload `json:"step1,omitempty"`
	Step2     *Step2Payload `json:"step2,omitempty"`
	Step3     *Step3Payload `json:"step3,omitempty"`
	CreatedAt string        `json:"createdAt,omitempty"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
}
