package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDraftCreation marks failures that abort the whole authoring
	// workflow before a draft exists. Not recoverable within a session.
	ErrDraftCreation = errors.New("draft creation error")
	// ErrValidation marks payloads rejected by local checks or by the
	// distribution service. Recoverable; fields stay editable.
	ErrValidation = errors.New("validation error")
	// ErrUpload marks files rejected locally or by asset storage.
	// Recoverable; the slot reverts and the user re-selects a file.
	ErrUpload = errors.New("upload error")
	// ErrNetwork marks transient transport failures. The same step may be
	// retried as-is.
	ErrNetwork = errors.New("network error")
	// ErrFinalization marks a rejected submit. Recoverable by revisiting
	// earlier steps or retrying.
	ErrFinalization = errors.New("finalization error")
	// ErrPrecondition marks programmer errors such as persisting a step
	// before the draft exists or skipping a step. These indicate a bug in
	// the caller, not a condition to retry.
	ErrPrecondition = errors.New("precondition violation")
	// ErrBusy marks an operation refused because another one is already in
	// flight for the same draft or upload slot.
	ErrBusy = errors.New("operation in flight")
)

// Wrap builds an error message that includes workflow context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, step, operation, message string, err error) error {
	detail := buildDetail(step, operation, message)
	if marker == nil {
		marker = ErrNetwork
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether the user can continue the current authoring
// session after the error. Draft-creation and precondition failures cannot
// be recovered in place.
func Recoverable(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrDraftCreation), errors.Is(err, ErrPrecondition):
		return false
	default:
		return true
	}
}

// ValidationDetails carries field-scoped messages from a rejected payload.
// Keys are wire field names; the empty key holds the step-level message when
// the collaborator did not identify a field.
type ValidationDetails struct {
	Fields map[string]string
}

// Error renders the details with fields in deterministic order.
func (d *ValidationDetails) Error() string {
	if d == nil || len(d.Fields) == 0 {
		return "payload rejected"
	}
	keys := make([]string, 0, len(d.Fields))
	for key := range d.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			parts = append(parts, d.Fields[key])
			continue
		}
		parts = append(parts, key+": "+d.Fields[key])
	}
	return strings.Join(parts, "; ")
}

// FieldMessage returns the message attached to a wire field, if any.
func (d *ValidationDetails) FieldMessage(field string) (string, bool) {
	if d == nil {
		return "", false
	}
	msg, ok := d.Fields[field]
	return msg, ok
}

// Details extracts ValidationDetails from an error chain.
func Details(err error) (*ValidationDetails, bool) {
	var details *ValidationDetails
	if errors.As(err, &details) {
		return details, true
	}
	return nil, false
}

func buildDetail(step, operation, message string) string {
	parts := make([]string, 0, 3)
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "workflow failure"
	}
	return strings.Join(parts, ": ")
}
