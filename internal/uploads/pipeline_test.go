package uploads

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"releasedesk/internal/config"
	"releasedesk/internal/draft"
	"releasedesk/internal/services"
	"releasedesk/internal/services/assets"
	"releasedesk/internal/testsupport"
)

type fakeUploader struct {
	mu      sync.Mutex
	calls   int
	result  *assets.Result
	err     error
	release chan struct{}
}

func (f *fakeUploader) Upload(ctx context.Context, filename, contentType string, data []byte) (*assets.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeUploader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConstraints() config.Uploads {
	return config.Uploads{
		CoverMinPixels:   3000,
		CoverMaxBytes:    20 << 20,
		AudioMaxBytes:    200 << 20,
		DocumentMaxBytes: 10 << 20,
	}
}

func TestKindForSlot(t *testing.T) {
	cases := []struct {
		slot string
		want SlotKind
	}{
		{draft.SlotCoverArt, KindCover},
		{draft.SlotCopyrightDocument, KindDocument},
		{draft.TrackSlot("abc-123"), KindAudio},
	}
	for _, tc := range cases {
		if got := KindForSlot(tc.slot); got != tc.want {
			t.Fatalf("KindForSlot(%q) = %q, want %q", tc.slot, got, tc.want)
		}
	}
}

func TestBeginCoverSuccess(t *testing.T) {
	uploader := &fakeUploader{result: &assets.Result{URL: "https://cdn.example/cover.png", SizeBytes: 42, Format: "png"}}
	pipe := NewPipeline(uploader, testConstraints(), nil)

	data := testsupport.PNGHeader(3000, 3000)
	state, err := pipe.Begin(context.Background(), draft.SlotCoverArt, "cover.png", data)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if state.Status != draft.UploadDone {
		t.Fatalf("status = %q, want done", state.Status)
	}
	if state.URL != "https://cdn.example/cover.png" {
		t.Fatalf("unexpected URL %q", state.URL)
	}
	if !pipe.State(draft.SlotCoverArt).Complete() {
		t.Fatal("slot should report complete")
	}
}

func TestBeginCoverTooSmall(t *testing.T) {
	uploader := &fakeUploader{}
	pipe := NewPipeline(uploader, testConstraints(), nil)

	data := testsupport.PNGHeader(640, 480)
	_, err := pipe.Begin(context.Background(), draft.SlotCoverArt, "cover.png", data)
	if !errors.Is(err, services.ErrUpload) {
		t.Fatalf("expected upload error, got %v", err)
	}
	if uploader.callCount() != 0 {
		t.Fatal("rejected file must not reach the uploader")
	}
	if got := pipe.State(draft.SlotCoverArt).Status; got != draft.UploadFailed {
		t.Fatalf("status = %q, want failed", got)
	}
}

func TestBeginEnforcesSizeCap(t *testing.T) {
	constraints := testConstraints()
	constraints.AudioMaxBytes = 64

	uploader := &fakeUploader{}
	pipe := NewPipeline(uploader, constraints, nil)

	data := testsupport.WAVHeader(1024)
	_, err := pipe.Begin(context.Background(), draft.TrackSlot("t1"), "master.wav", data)
	if !errors.Is(err, services.ErrUpload) {
		t.Fatalf("expected upload error, got %v", err)
	}
	if uploader.callCount() != 0 {
		t.Fatal("oversized file must not reach the uploader")
	}
}

func TestBeginRejectsConcurrentSameSlot(t *testing.T) {
	release := make(chan struct{})
	uploader := &fakeUploader{
		result:  &assets.Result{URL: "https://cdn.example/master.wav"},
		release: release,
	}
	pipe := NewPipeline(uploader, testConstraints(), nil)

	slot := draft.TrackSlot("t1")
	data := testsupport.WAVHeader(256)

	errCh := make(chan error, 1)
	go func() {
		_, err := pipe.Begin(context.Background(), slot, "master.wav", data)
		errCh <- err
	}()

	waitForStatus(t, pipe, slot, draft.UploadUploading)

	_, err := pipe.Begin(context.Background(), slot, "master.wav", data)
	if !errors.Is(err, services.ErrBusy) {
		t.Fatalf("expected busy error, got %v", err)
	}

	close(release)
	if err := <-errCh; err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	if got := pipe.State(slot).Status; got != draft.UploadDone {
		t.Fatalf("status = %q, want done", got)
	}
	if uploader.callCount() != 1 {
		t.Fatalf("uploader called %d times, want 1", uploader.callCount())
	}
}

func TestBeginRejectedFileKeepsSlotUploading(t *testing.T) {
	release := make(chan struct{})
	uploader := &fakeUploader{
		result:  &assets.Result{URL: "https://cdn.example/master.wav"},
		release: release,
	}
	pipe := NewPipeline(uploader, testConstraints(), nil)

	slot := draft.TrackSlot("t1")

	errCh := make(chan error, 1)
	go func() {
		_, err := pipe.Begin(context.Background(), slot, "master.wav", testsupport.WAVHeader(256))
		errCh <- err
	}()

	waitForStatus(t, pipe, slot, draft.UploadUploading)

	// A second file that would fail validation must not stomp the slot.
	_, err := pipe.Begin(context.Background(), slot, "master.wav", []byte("not audio"))
	if !errors.Is(err, services.ErrBusy) {
		t.Fatalf("expected busy error, got %v", err)
	}
	if got := pipe.State(slot).Status; got != draft.UploadUploading {
		t.Fatalf("status = %q while first upload is in flight, want uploading", got)
	}

	// With the slot still claimed, a third start is rejected too.
	if _, err := pipe.Begin(context.Background(), slot, "master.wav", testsupport.WAVHeader(256)); !errors.Is(err, services.ErrBusy) {
		t.Fatalf("expected busy error, got %v", err)
	}

	close(release)
	if err := <-errCh; err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	if got := pipe.State(slot).Status; got != draft.UploadDone {
		t.Fatalf("status = %q, want done", got)
	}
	if uploader.callCount() != 1 {
		t.Fatalf("uploader called %d times, want 1", uploader.callCount())
	}
}

func TestBeginDifferentSlotsRunConcurrently(t *testing.T) {
	release := make(chan struct{})
	uploader := &fakeUploader{
		result:  &assets.Result{URL: "https://cdn.example/file"},
		release: release,
	}
	pipe := NewPipeline(uploader, testConstraints(), nil)

	first := draft.TrackSlot("t1")
	second := draft.TrackSlot("t2")
	data := testsupport.WAVHeader(256)

	errCh := make(chan error, 2)
	go func() {
		_, err := pipe.Begin(context.Background(), first, "a.wav", data)
		errCh <- err
	}()
	go func() {
		_, err := pipe.Begin(context.Background(), second, "b.wav", data)
		errCh <- err
	}()

	waitForStatus(t, pipe, first, draft.UploadUploading)
	waitForStatus(t, pipe, second, draft.UploadUploading)

	close(release)
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			t.Fatalf("upload failed: %v", err)
		}
	}
}

func TestBeginUploaderFailureLeavesNoURL(t *testing.T) {
	uploader := &fakeUploader{err: services.Wrap(services.ErrNetwork, "", "upload", "backend unreachable", nil)}
	pipe := NewPipeline(uploader, testConstraints(), nil)

	slot := draft.TrackSlot("t1")
	_, err := pipe.Begin(context.Background(), slot, "master.wav", testsupport.WAVHeader(256))
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	state := pipe.State(slot)
	if state.Status != draft.UploadFailed {
		t.Fatalf("status = %q, want failed", state.Status)
	}
	if state.URL != "" {
		t.Fatalf("failed slot must not keep a URL, got %q", state.URL)
	}
}

func TestResetReturnsSlotToIdle(t *testing.T) {
	uploader := &fakeUploader{}
	pipe := NewPipeline(uploader, testConstraints(), nil)

	slot := draft.SlotCoverArt
	if _, err := pipe.Begin(context.Background(), slot, "cover.png", []byte("not an image")); err == nil {
		t.Fatal("expected rejection")
	}
	pipe.Reset(slot)
	if got := pipe.State(slot).Status; got != draft.UploadIdle {
		t.Fatalf("status = %q, want idle", got)
	}
}

func waitForStatus(t *testing.T, pipe *Pipeline, slot string, want draft.UploadStatus) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pipe.State(slot).Status == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("slot %q never reached %q", slot, want)
}
