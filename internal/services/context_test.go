package services

import (
	"context"
	"testing"
)

func TestContextRoundTrips(t *testing.T) {
	ctx := context.Background()
	ctx = WithReleaseID(ctx, "rel-42")
	ctx = WithStep(ctx, 2)
	ctx = WithSlot(ctx, "coverArt")
	ctx = WithRequestID(ctx, "req-1")

	if id, ok := ReleaseIDFromContext(ctx); !ok || id != "rel-42" {
		t.Fatalf("ReleaseIDFromContext = %q, %v", id, ok)
	}
	if step, ok := StepFromContext(ctx); !ok || step != 2 {
		t.Fatalf("StepFromContext = %d, %v", step, ok)
	}
	if slot, ok := SlotFromContext(ctx); !ok || slot != "coverArt" {
		t.Fatalf("SlotFromContext = %q, %v", slot, ok)
	}
	if rid, ok := RequestIDFromContext(ctx); !ok || rid != "req-1" {
		t.Fatalf("RequestIDFromContext = %q, %v", rid, ok)
	}
}

func TestContextMissingValues(t *testing.T) {
	ctx := context.Background()
	if _, ok := ReleaseIDFromContext(ctx); ok {
		t.Fatal("expected missing release id")
	}
	if _, ok := StepFromContext(ctx); ok {
		t.Fatal("expected missing step")
	}
	if same := WithReleaseID(ctx, ""); same != ctx {
		t.Fatal("empty release id should not allocate a new context")
	}
	if same := WithSlot(ctx, ""); same != ctx {
		t.Fatal("empty slot should not allocate a new context")
	}
}
