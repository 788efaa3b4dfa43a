package logging

import (
	"context"
	"log/slog"

	"releasedesk/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldReleaseID is the standardized structured logging key for release identifiers.
	FieldReleaseID = "release_id"
	// FieldStep is the standardized structured logging key for workflow step ordinals.
	FieldStep = "step"
	// FieldSlot is the standardized structured logging key for upload slot keys.
	FieldSlot = "slot"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType tags lifecycle events (draft_created, step_saved, upload_done).
	FieldEventType = "event_type"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if id, ok := services.ReleaseIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldReleaseID, id))
	}
	if step, ok := services.StepFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldStep, step))
	}
	if slot, ok := services.SlotFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSlot, slot))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
