package uploads

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// SlotKind selects the validation rules for an upload slot.
type SlotKind string

const (
	KindCover    SlotKind = "cover"
	KindAudio    SlotKind = "audio"
	KindDocument SlotKind = "document"
)

var allowedTypes = map[SlotKind][]string{
	KindCover:    {"image/jpeg", "image/png", "image/webp"},
	KindAudio:    {"audio/wav", "audio/x-wav", "audio/flac", "audio/mpeg", "audio/aiff"},
	KindDocument: {"application/pdf", "image/jpeg", "image/png"},
}

// sniff detects the content type of data and checks it against the allow
// list for the slot kind. It returns the detected MIME subtype.
func sniff(kind SlotKind, data []byte) (string, error) {
	detected := mimetype.Detect(data)
	for _, allowed := range allowedTypes[kind] {
		if detected.Is(allowed) {
			return subtype(detected.String()), nil
		}
	}
	return "", fmt.Errorf("file type %s is not allowed for %s uploads", detected.String(), kind)
}

// checkCoverDimensions decodes the image header and enforces the minimum
// edge length. Runs entirely locally; no bytes leave the client on failure.
func checkCoverDimensions(data []byte, minPixels int) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image dimensions: %w", err)
	}
	if cfg.Width < minPixels || cfg.Height < minPixels {
		return fmt.Errorf("cover art is %dx%d, minimum is %dx%d", cfg.Width, cfg.Height, minPixels, minPixels)
	}
	return nil
}

func subtype(mimeType string) string {
	if idx := strings.IndexByte(mimeType, '/'); idx >= 0 {
		sub := mimeType[idx+1:]
		if semi := strings.IndexByte(sub, ';'); semi >= 0 {
			sub = sub[:semi]
		}
		return strings.TrimPrefix(strings.TrimSpace(sub), "x-")
	}
	return mimeType
}
