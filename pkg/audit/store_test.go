package audit

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"medallion/pkg/silver"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	first.Close()

	// Migrations must not re-apply on the second open.
	second, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	second.Close()
}

func TestRecordRunAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	runID := NewRunID()
	stats := map[string]int{"finalCount": 3}
	if err := store.RecordRun(ctx, runID, "silver", started, started.Add(time.Second), true, stats); err != nil {
		t.Fatalf("record run: %v", err)
	}

	later := NewRunID()
	if err := store.RecordRun(ctx, later, "gold", started.Add(time.Minute), started.Add(2*time.Minute), false, nil); err != nil {
		t.Fatalf("record second run: %v", err)
	}

	runs, err := store.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].ID != later || runs[0].Stage != "gold" || runs[0].Succeeded {
		t.Fatalf("unexpected first run: %+v", runs[0])
	}
	if runs[1].ID != runID || !runs[1].Succeeded {
		t.Fatalf("unexpected second run: %+v", runs[1])
	}
	if !runs[1].StartedAt.Equal(started) {
		t.Fatalf("started at = %v, want %v", runs[1].StartedAt, started)
	}
	if !strings.Contains(runs[1].StatsJSON, "\"finalCount\":3") {
		t.Fatalf("stats not persisted: %q", runs[1].StatsJSON)
	}
}

func TestRecordRunRequiresID(t *testing.T) {
	store := openTestStore(t)
	err := store.RecordRun(context.Background(), "", "silver", time.Now(), time.Now(), true, nil)
	if err == nil {
		t.Fatal("expected error for blank run id")
	}
}

func TestRecordCleaning(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	runID := NewRunID()

	// The detail tables reference pipeline_runs, so the run row goes first.
	now := time.Now()
	if err := store.RecordRun(ctx, runID, "silver", now, now, true, nil); err != nil {
		t.Fatalf("record run: %v", err)
	}

	result := &silver.Result{
		Stats: silver.CleanStats{
			MissingValuesFilled: map[string]int{"salary": 2, "city": 1},
		},
		CoercionDrops: []silver.CoercionDrop{
			{Row: 4, Column: "age", RawValue: "forty"},
		},
		Rejections: []silver.Rejection{
			{
				Row: 7, EmployeeID: 9, Name: "Kid",
				Violations: []silver.RuleViolation{
					{Rule: silver.RuleMinimumAge, Value: 15},
					{Rule: silver.RulePositiveSalary, Value: 0},
				},
			},
		},
	}

	if err := store.RecordCleaning(ctx, runID, result); err != nil {
		t.Fatalf("record cleaning: %v", err)
	}

	// One row per violated rule.
	count, err := store.RejectionCount(ctx, runID)
	if err != nil {
		t.Fatalf("count rejections: %v", err)
	}
	if count != 2 {
		t.Fatalf("rejection count = %d, want 2", count)
	}

	if count, err := store.RejectionCount(ctx, "other-run"); err != nil || count != 0 {
		t.Fatalf("foreign run should have 0 rejections, got %d (%v)", count, err)
	}
}

func TestStoreRejectsCancelledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.RecordRun(ctx, NewRunID(), "silver", time.Now(), time.Now(), true, nil); err == nil {
		t.Fatal("expected context error")
	}
	if _, err := store.Runs(ctx, 1); err == nil {
		t.Fatal("expected context error")
	}
}
