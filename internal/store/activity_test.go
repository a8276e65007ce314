package store

import (
	"context"
	"testing"
)

func TestActivityLogAppendAndRecent(t *testing.T) {
	t.Parallel()

	log := ActivityLog{Dir: t.TempDir()}
	ctx := context.Background()

	if err := log.Append(ctx, "Webapp", 1, ActionCreated, "Build login"); err != nil {
		t.Fatalf("append 1: %v", err)
	}
	if err := log.Append(ctx, "Webapp", 1, ActionCompleted, "Build login"); err != nil {
		t.Fatalf("append 2: %v", err)
	}
	if err := log.Append(ctx, "Api", 9, ActionDeleted, "Spike"); err != nil {
		t.Fatalf("append 3: %v", err)
	}

	evs, err := log.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(evs) != 3 {
		t.Fatalf("expected 3 events, got %d", len(evs))
	}
	// Newest first.
	if evs[0].Action != ActionDeleted || evs[0].Project != "Api" || evs[0].TaskID != 9 {
		t.Fatalf("newest = %+v", evs[0])
	}
	if evs[2].Action != ActionCreated || evs[2].Title != "Build login" {
		t.Fatalf("oldest = %+v", evs[2])
	}

	limited, err := log.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent limited: %v", err)
	}
	if len(limited) != 2 || limited[0].Action != ActionDeleted {
		t.Fatalf("limited = %+v", limited)
	}
	if limited[0].At.IsZero() {
		t.Fatalf("timestamp not recorded")
	}
}
