package uploads

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"releasedesk/internal/config"
	"releasedesk/internal/draft"
	"releasedesk/internal/logging"
	"releasedesk/internal/services"
	"releasedesk/internal/services/assets"
)

// Uploader stores one binary and returns its location. Satisfied by
// *assets.Client.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (*assets.Result, error)
}

// Pipeline tracks upload state per slot and enforces per-slot mutual
// exclusion. Uploads for different slots may run concurrently.
type Pipeline struct {
	uploader    Uploader
	constraints config.Uploads
	logger      *slog.Logger

	mu     sync.Mutex
	states map[string]draft.UploadState
}

// NewPipeline builds a pipeline over the given uploader.
func NewPipeline(uploader Uploader, constraints config.Uploads, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		uploader:    uploader,
		constraints: constraints,
		logger:      logger.With(logging.String(logging.FieldComponent, "uploads")),
		states:      make(map[string]draft.UploadState),
	}
}

// KindForSlot maps an upload slot key to its validation kind.
func KindForSlot(slotKey string) SlotKind {
	switch {
	case slotKey == draft.SlotCoverArt:
		return KindCover
	case slotKey == draft.SlotCopyrightDocument:
		return KindDocument
	case strings.HasPrefix(slotKey, "track:"):
		return KindAudio
	default:
		return KindDocument
	}
}

// State returns the current state of one slot. Unknown slots are idle.
func (p *Pipeline) State(slotKey string) draft.UploadState {
	p.mu.Lock()
	defer p.mu.Unlock()
	state, ok := p.states[slotKey]
	if !ok {
		state.Status = draft.UploadIdle
	}
	return state
}

// States returns a snapshot of every tracked slot.
func (p *Pipeline) States() map[string]draft.UploadState {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]draft.UploadState, len(p.states))
	for key, state := range p.states {
		out[key] = state
	}
	return out
}

// Uploading reports whether any of the given slots has an upload in flight.
func (p *Pipeline) Uploading(slotKeys ...string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, key := range slotKeys {
		if p.states[key].Status == draft.UploadUploading {
			return true
		}
	}
	return false
}

// Begin validates and uploads one file for a slot, blocking until the
// upload resolves. Starting a second upload while the slot is uploading
// fails with services.ErrBusy and leaves the running upload untouched.
func (p *Pipeline) Begin(ctx context.Context, slotKey, filename string, data []byte) (draft.UploadState, error) {
	kind := KindForSlot(slotKey)

	// Claim the slot before validating so a rejected file can never
	// overwrite the state of an upload already in flight.
	p.mu.Lock()
	if p.states[slotKey].Status == draft.UploadUploading {
		p.mu.Unlock()
		return draft.UploadState{Status: draft.UploadUploading},
			services.Wrap(services.ErrBusy, "", slotKey, "upload already in flight", nil)
	}
	p.states[slotKey] = draft.UploadState{Status: draft.UploadUploading}
	p.mu.Unlock()

	mimeSubtype, err := p.validate(kind, slotKey, data)
	if err != nil {
		p.setState(slotKey, draft.UploadState{Status: draft.UploadFailed})
		return p.State(slotKey), err
	}

	ctx = services.WithSlot(ctx, slotKey)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("upload started",
		logging.String(logging.FieldEventType, "upload_start"),
		logging.String("filename", filename),
		logging.Int("size_bytes", len(data)),
	)

	contentType := "application/octet-stream"
	if mimeSubtype != "" {
		contentType = kindMediaClass(kind) + "/" + mimeSubtype
	}
	result, err := p.uploader.Upload(ctx, filename, contentType, data)
	if err != nil {
		p.setState(slotKey, draft.UploadState{Status: draft.UploadFailed})
		logger.Warn("upload failed", logging.Error(err))
		return p.State(slotKey), err
	}

	done := draft.UploadState{
		Status:      draft.UploadDone,
		URL:         result.URL,
		SizeBytes:   result.SizeBytes,
		MimeSubtype: result.Format,
	}
	if done.MimeSubtype == "" {
		done.MimeSubtype = mimeSubtype
	}
	if done.SizeBytes == 0 {
		done.SizeBytes = int64(len(data))
	}
	p.setState(slotKey, done)
	logger.Info("upload completed",
		logging.String(logging.FieldEventType, "upload_done"),
		logging.String("url", done.URL),
	)
	return done, nil
}

// Reset returns a slot to idle so the user can pick a new file after a
// failure.
func (p *Pipeline) Reset(slotKey string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.states[slotKey].Status != draft.UploadUploading {
		delete(p.states, slotKey)
	}
}

func (p *Pipeline) validate(kind SlotKind, slotKey string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", services.Wrap(services.ErrUpload, "", slotKey, "file is empty", nil)
	}
	if max := p.maxBytes(kind); max > 0 && int64(len(data)) > max {
		return "", services.Wrap(services.ErrUpload, "", slotKey,
			fmt.Sprintf("file is %d bytes, limit is %d", len(data), max), nil)
	}
	mimeSubtype, err := sniff(kind, data)
	if err != nil {
		return "", services.Wrap(services.ErrUpload, "", slotKey, "file type rejected", err)
	}
	if kind == KindCover {
		if err := checkCoverDimensions(data, p.constraints.CoverMinPixels); err != nil {
			return "", services.Wrap(services.ErrUpload, "", slotKey, "cover art rejected", err)
		}
	}
	return mimeSubtype, nil
}

func (p *Pipeline) maxBytes(kind SlotKind) int64 {
	switch kind {
	case KindCover:
		return p.constraints.CoverMaxBytes
	case KindAudio:
		return p.constraints.AudioMaxBytes
	default:
		return p.constraints.DocumentMaxBytes
	}
}

func (p *Pipeline) setState(slotKey string, state draft.UploadState) {
	p.mu.Lock()
	p.states[slotKey] = state
	p.mu.Unlock()
}

func kindMediaClass(kind SlotKind) string {
	switch kind {
	case KindCover:
		return "image"
	case KindAudio:
		return "audio"
	default:
		return "application"
	}
}
