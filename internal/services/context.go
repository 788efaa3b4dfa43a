package services

import "context"

type contextKey string

const (
	releaseIDKey contextKey = "release_id"
	stepKey      contextKey = "step"
	slotKey      contextKey = "slot"
	requestIDKey contextKey = "request_id"
)

// WithReleaseID annotates context with the draft's release identifier.
func WithReleaseID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, releaseIDKey, id)
}

// ReleaseIDFromContext extracts the release identifier if present.
func ReleaseIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(releaseIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStep annotates context with the workflow step ordinal.
func WithStep(ctx context.Context, step int) context.Context {
	return context.WithValue(ctx, stepKey, step)
}

// StepFromContext returns the step ordinal if present.
func StepFromContext(ctx context.Context) (int, bool) {
	switch v := ctx.Value(stepKey).(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// WithSlot annotates context with an upload slot key.
func WithSlot(ctx context.Context, slot string) context.Context {
	if slot == "" {
		return ctx
	}
	return context.WithValue(ctx, slotKey, slot)
}

// SlotFromContext returns the upload slot key if present.
func SlotFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(slotKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
