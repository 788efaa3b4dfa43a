package steps

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"releasedesk/internal/api"
	"releasedesk/internal/draft"
	"releasedesk/internal/logging"
	"releasedesk/internal/notifications"
	"releasedesk/internal/services"
)

// Backend is the slice of the distribution client the coordinator needs.
// Satisfied by *distribution.Client.
type Backend interface {
	CreateDraft(ctx context.Context, category draft.Category) (string, error)
	PersistStep(ctx context.Context, releaseID string, step int, payload api.StepPayload) error
	Finalize(ctx context.Context, releaseID string) error
}

// Coordinator serializes draft lifecycle calls against the backend.
type Coordinator struct {
	backend  Backend
	notifier notifications.Service
	logger   *slog.Logger

	mu        sync.Mutex
	inFlight  bool
	submitted bool
}

// NewCoordinator builds a coordinator. A nil notifier is replaced with a
// noop service.
func NewCoordinator(backend Backend, notifier notifications.Service, logger *slog.Logger) *Coordinator {
	if notifier == nil {
		notifier = notifications.NewNop()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coordinator{
		backend:  backend,
		notifier: notifier,
		logger:   logger.With(logging.String(logging.FieldComponent, "steps")),
	}
}

// Submitted reports whether Finalize has succeeded. A submitted release
// accepts no further edits or persistence.
func (c *Coordinator) Submitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

// CreateDraft registers the draft with the distribution service and stores
// the assigned release id on it. Creating an already created draft is a
// precondition failure, not a retry.
func (c *Coordinator) CreateDraft(ctx context.Context, d *draft.Draft) error {
	if d.Created() {
		return services.Wrap(services.ErrPrecondition, "", "create", "draft already has a release id", nil)
	}
	release, err := c.begin("")
	if err != nil {
		return err
	}
	defer release()

	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, c.logger)

	releaseID, err := c.backend.CreateDraft(ctx, d.Category)
	if err != nil {
		logger.Error("draft creation failed", logging.Error(err))
		_ = c.notifier.NotifyError(ctx, err, "draft creation")
		return err
	}
	d.ReleaseID = releaseID
	logger.Info("draft created",
		logging.String(logging.FieldReleaseID, releaseID),
		logging.String("category", string(d.Category)),
	)
	_ = c.notifier.NotifyDraftCreated(ctx, releaseID, d.Category)
	return nil
}

// PersistStep validates one step locally, sends it to the backend and
// advances the acknowledged step count when this was the frontier step.
// Re-persisting an earlier step leaves the count alone.
func (c *Coordinator) PersistStep(ctx context.Context, d *draft.Draft, step int, uploads map[string]draft.UploadState) error {
	if step < 0 || step >= draft.StepCount {
		return services.Wrap(services.ErrPrecondition, "", "persist", fmt.Sprintf("unknown step %d", step), nil)
	}
	if !d.Created() {
		return services.Wrap(services.ErrPrecondition, draft.StepName(step), "persist", "draft has no release id", nil)
	}
	if c.Submitted() {
		return services.Wrap(services.ErrPrecondition, draft.StepName(step), "persist", "release already submitted", nil)
	}
	if step > d.CurrentStep {
		return services.Wrap(services.ErrPrecondition, draft.StepName(step), "persist",
			fmt.Sprintf("step %s is not reachable yet", draft.StepName(step)), nil)
	}
	if err := d.ValidateStep(step, uploads); err != nil {
		return err
	}

	release, err := c.begin(draft.StepName(step))
	if err != nil {
		return err
	}
	defer release()

	payload, ok := api.PayloadForStep(d, step, uploads)
	if !ok {
		return services.Wrap(services.ErrPrecondition, draft.StepName(step), "persist", "no payload for step", nil)
	}

	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithReleaseID(ctx, d.ReleaseID)
	ctx = services.WithStep(ctx, step)
	logger := logging.WithContext(ctx, c.logger)

	if err := c.backend.PersistStep(ctx, d.ReleaseID, step, payload); err != nil {
		logger.Warn("step persistence failed", logging.Error(err))
		// Rejected fields are routine editing feedback, not an alert.
		if _, isValidation := services.Details(err); !isValidation {
			_ = c.notifier.NotifyError(ctx, err, "step save")
		}
		return err
	}
	if step == d.CurrentStep {
		d.CurrentStep++
	}
	logger.Info("step persisted", logging.Int("acknowledged_steps", d.CurrentStep))
	_ = c.notifier.NotifyStepSaved(ctx, d.ReleaseID, step)
	return nil
}

// Finalize submits the release once every step has been acknowledged.
// After a successful submit the coordinator refuses further work.
func (c *Coordinator) Finalize(ctx context.Context, d *draft.Draft) error {
	if !d.Created() {
		return services.Wrap(services.ErrPrecondition, "", "finalize", "draft has no release id", nil)
	}
	if c.Submitted() {
		return services.Wrap(services.ErrPrecondition, "", "finalize", "release already submitted", nil)
	}
	if d.CurrentStep < draft.StepCount {
		return services.Wrap(services.ErrPrecondition, "", "finalize",
			fmt.Sprintf("only %d of %d steps saved", d.CurrentStep, draft.StepCount), nil)
	}

	release, err := c.begin("")
	if err != nil {
		return err
	}
	defer release()

	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithReleaseID(ctx, d.ReleaseID)
	logger := logging.WithContext(ctx, c.logger)

	if err := c.backend.Finalize(ctx, d.ReleaseID); err != nil {
		logger.Error("finalize failed", logging.Error(err))
		_ = c.notifier.NotifyError(ctx, err, "finalize")
		return err
	}
	c.mu.Lock()
	c.submitted = true
	c.mu.Unlock()
	logger.Info("release submitted")
	_ = c.notifier.NotifyReleaseSubmitted(ctx, d.ReleaseID, d.ReleaseInfo.ReleaseName)
	return nil
}

// begin claims the single in-flight slot. The returned func releases it.
func (c *Coordinator) begin(step string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return nil, services.Wrap(services.ErrBusy, step, "persist", "another request is in flight", nil)
	}
	c.inFlight = true
	return func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}, nil
}
