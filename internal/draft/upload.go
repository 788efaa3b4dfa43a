package draft

// UploadStatus is the lifecycle of a single upload slot.
type UploadStatus string

const (
	UploadIdle      UploadStatus = "idle"
	UploadUploading UploadStatus = "uploading"
	UploadDone      UploadStatus = "done"
	UploadFailed    UploadStatus = "failed"
)

// Well-known upload slot keys. Track audio slots are derived from the
// owning track's id via TrackSlot.
const (
	SlotCoverArt          = "coverArt"
	SlotCopyrightDocument = "copyrightDocument"

	trackSlotPrefix = "track:"
)

// TrackSlot returns the upload slot key for a track's audio master.
func TrackSlot(trackID string) string {
	return trackSlotPrefix + trackID
}

// UploadState is the observable state of one slot. URL and the metadata
// fields are only populated when Status is UploadDone.
type UploadState struct {
	Status      UploadStatus
	URL         string
	SizeBytes   int64
	MimeSubtype string
}

// Complete reports whether the slot holds a finished upload.
func (s UploadState) Complete() bool {
	return s.Status == UploadDone && s.URL != ""
}
