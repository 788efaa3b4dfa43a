package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"releasedesk/internal/collection"
	"releasedesk/internal/draft"
	"releasedesk/internal/logging"
	"releasedesk/internal/notifications"
	"releasedesk/internal/services"
	"releasedesk/internal/steps"
	"releasedesk/internal/uploads"
)

// Session is the editing scope of one release draft.
type Session struct {
	mu sync.Mutex

	draft    *draft.Draft
	coord    *steps.Coordinator
	pipeline *uploads.Pipeline
	notifier notifications.Service
	logger   *slog.Logger

	terminal bool
}

// New builds a session for a fresh draft of the given category. The
// category cannot change afterwards.
func New(category draft.Category, coord *steps.Coordinator, pipeline *uploads.Pipeline, notifier notifications.Service, logger *slog.Logger) (*Session, error) {
	if !category.Valid() {
		return nil, services.Wrap(services.ErrPrecondition, "", "session", fmt.Sprintf("unknown category %q", category), nil)
	}
	if notifier == nil {
		notifier = notifications.NewNop()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{
		draft:    draft.New(category),
		coord:    coord,
		pipeline: pipeline,
		notifier: notifier,
		logger:   logger.With(logging.String(logging.FieldComponent, "session")),
	}, nil
}

// Start registers the draft with the distribution service. Until it
// succeeds nothing can be persisted or uploaded.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard("start"); err != nil {
		return err
	}
	return s.coord.CreateDraft(ctx, s.draft)
}

// Apply runs one command through the reducer. Nothing is editable until
// Start has registered the draft.
func (s *Session) Apply(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard("apply"); err != nil {
		return err
	}
	if !s.draft.Created() {
		return services.Wrap(services.ErrPrecondition, "", "apply", "draft has no release id", nil)
	}
	return cmd.apply(s)
}

// Upload pushes one file into the slot's upload pipeline and blocks
// until it resolves.
func (s *Session) Upload(ctx context.Context, slotKey, filename string, data []byte) (draft.UploadState, error) {
	s.mu.Lock()
	if err := s.guard("upload"); err != nil {
		s.mu.Unlock()
		return draft.UploadState{}, err
	}
	if !s.draft.Created() {
		s.mu.Unlock()
		return draft.UploadState{}, services.Wrap(services.ErrPrecondition, "", "upload", "draft has no release id", nil)
	}
	releaseID := s.draft.ReleaseID
	s.mu.Unlock()

	state, err := s.pipeline.Begin(ctx, slotKey, filename, data)
	if err != nil {
		return state, err
	}
	_ = s.notifier.NotifyUploadCompleted(ctx, releaseID, slotKey)
	return state, nil
}

// SaveStep validates and persists one step. It refuses while any upload
// the step depends on is still running.
func (s *Session) SaveStep(ctx context.Context, step int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard("persist"); err != nil {
		return err
	}
	if s.pipeline != nil && s.pipeline.Uploading(s.draft.RequiredSlots(step)...) {
		return services.Wrap(services.ErrBusy, draft.StepName(step), "persist", "an upload for this step is still running", nil)
	}
	return s.coord.PersistStep(ctx, s.draft, step, s.uploadStates())
}

// Submit finalizes the release. On success the session becomes terminal.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard("finalize"); err != nil {
		return err
	}
	if err := s.coord.Finalize(ctx, s.draft); err != nil {
		return err
	}
	s.terminal = true
	s.logger.Info("session closed",
		logging.String(logging.FieldReleaseID, s.draft.ReleaseID),
	)
	return nil
}

// Draft exposes the aggregate for reads. Callers mutate through Apply.
func (s *Session) Draft() *draft.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// ReleaseID returns the assigned release id, empty before Start.
func (s *Session) ReleaseID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.ReleaseID
}

// CurrentStep returns the number of acknowledged steps.
func (s *Session) CurrentStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.CurrentStep
}

// Terminal reports whether the release was submitted and the session
// closed.
func (s *Session) Terminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal
}

// UploadStates returns a snapshot of every tracked slot.
func (s *Session) UploadStates() map[string]draft.UploadState {
	return s.uploadStates()
}

func (s *Session) uploadStates() map[string]draft.UploadState {
	if s.pipeline == nil {
		return nil
	}
	return s.pipeline.States()
}

func (s *Session) guard(operation string) error {
	if s.terminal {
		return services.Wrap(services.ErrPrecondition, "", operation, "release already submitted, session is closed", nil)
	}
	return nil
}

// patchTrack applies a scalar mutation to one track.
func (s *Session) patchTrack(trackID string, patch func(*draft.Track) error) error {
	var patchErr error
	err := s.draft.Tracks.Update(trackID, func(track *draft.Track) {
		patchErr = patch(track)
	})
	if err != nil {
		return commandError(fmt.Sprintf("track %s not found", trackID))
	}
	return patchErr
}

// withList resolves a collection key to the owning list and dispatches on
// its element type.
func (s *Session) withList(key ListKey, trackID string, strFn func(*collection.List[string]) error, contribFn func(*collection.List[draft.Contributor]) error) error {
	switch key {
	case ListPrimaryArtists, ListFeaturingArtists:
		if trackID == "" {
			return strFn(s.releaseArtists(key))
		}
		track, ok := s.draft.Tracks.Get(trackID)
		if !ok {
			return commandError(fmt.Sprintf("track %s not found", trackID))
		}
		if key == ListPrimaryArtists {
			return strFn(track.Value.PrimaryArtists)
		}
		return strFn(track.Value.FeaturingArtists)
	case ListSoundRecordingContributors, ListMusicalWorkContributors:
		if trackID == "" {
			return commandError("contributor lists belong to a track")
		}
		track, ok := s.draft.Tracks.Get(trackID)
		if !ok {
			return commandError(fmt.Sprintf("track %s not found", trackID))
		}
		if key == ListSoundRecordingContributors {
			return contribFn(track.Value.SoundRecordingContributors)
		}
		return contribFn(track.Value.MusicalWorkContributors)
	default:
		return commandError(fmt.Sprintf("unknown collection %q", key))
	}
}

func (s *Session) releaseArtists(key ListKey) *collection.List[string] {
	if key == ListPrimaryArtists {
		return s.draft.ReleaseInfo.PrimaryArtists
	}
	return s.draft.ReleaseInfo.FeaturingArtists
}
