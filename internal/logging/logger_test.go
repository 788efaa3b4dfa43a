package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"releasedesk/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestJSONHandlerNormalizesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("step saved", String(FieldReleaseID, "rel-1"), Int(FieldStep, 2))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if record["msg"] != "step saved" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("level = %v", record["level"])
	}
	if record[FieldReleaseID] != "rel-1" {
		t.Fatalf("release_id = %v", record[FieldReleaseID])
	}
}

func TestConsoleHandlerIncludesComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.With(String(FieldComponent, "coordinator")).Warn("persist retried", Int(FieldStep, 1))

	line := buf.String()
	if !strings.Contains(line, "[coordinator]") {
		t.Fatalf("expected component marker in %q", line)
	}
	if !strings.Contains(line, "persist retried") {
		t.Fatalf("expected message in %q", line)
	}
	if !strings.Contains(line, "step=1") {
		t.Fatalf("expected step attr in %q", line)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := services.WithReleaseID(context.Background(), "rel-9")
	ctx = services.WithSlot(ctx, "coverArt")
	WithContext(ctx, logger).Info("upload started")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if record[FieldReleaseID] != "rel-9" {
		t.Fatalf("release_id = %v", record[FieldReleaseID])
	}
	if record[FieldSlot] != "coverArt" {
		t.Fatalf("slot = %v", record[FieldSlot])
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("ignored", Error(nil))
}
