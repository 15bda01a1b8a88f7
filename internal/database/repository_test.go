package database

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository(setupTestDB(t))

	if _, err := repo.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first run, got %v", err)
	}

	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	first := RunRecord{
		ID:                 "run-1",
		StartedAt:          base,
		FinishedAt:         base.Add(1500 * time.Millisecond),
		PrimaryCount:       10,
		SecondaryCount:     8,
		ExactCount:         6,
		ApproximateCount:   2,
		MissingCount:       2,
		CoveragePercentage: 80,
		IndexHash:          "idx1",
		MappingHash:        "map1",
		PrimaryRevision:    "main@abc",
	}
	second := first
	second.ID = "run-2"
	second.StartedAt = base.Add(time.Hour)
	second.FinishedAt = base.Add(time.Hour + time.Second)
	second.PlanHash = "plan2"

	for _, run := range []RunRecord{first, second} {
		if err := repo.Insert(ctx, run); err != nil {
			t.Fatalf("Insert(%s) error: %v", run.ID, err)
		}
	}

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest error: %v", err)
	}
	if latest.ID != "run-2" || latest.PlanHash != "plan2" {
		t.Fatalf("unexpected latest run %#v", latest)
	}

	byID, err := repo.FindByID(ctx, "run-1")
	if err != nil || byID == nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if !byID.StartedAt.Equal(base) || byID.Duration() != 1500*time.Millisecond {
		t.Fatalf("unexpected timestamps %v %v", byID.StartedAt, byID.Duration())
	}
	if byID.PlanHash != "" || byID.PrimaryRevision != "main@abc" || byID.SecondaryRevision != "" {
		t.Fatalf("unexpected optional columns %#v", byID)
	}

	missing, err := repo.FindByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown run, got %#v (%v)", missing, err)
	}

	runs, err := repo.List(ctx, 1)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run-2" {
		t.Fatalf("expected newest run only, got %#v", runs)
	}

	all, err := repo.List(ctx, 0)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected all runs, got %d (%v)", len(all), err)
	}
}

func TestPruneRunsKeepsNewest(t *testing.T) {
	ctx := context.Background()
	dbCtx := setupTestDB(t)
	repo := NewRunRepository(dbCtx)

	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		run := RunRecord{ID: id, StartedAt: base.Add(time.Duration(i) * time.Hour), IndexHash: "i", MappingHash: "m"}
		run.FinishedAt = run.StartedAt
		if err := repo.Insert(ctx, run); err != nil {
			t.Fatalf("Insert(%s) error: %v", id, err)
		}
	}

	deleted, err := dbCtx.Queries.PruneRuns(ctx, 2)
	if err != nil || deleted != 1 {
		t.Fatalf("expected one pruned run, got %d (%v)", deleted, err)
	}
	if run, err := repo.FindByID(ctx, "old"); err != nil || run != nil {
		t.Fatalf("expected oldest run to be pruned, got %#v (%v)", run, err)
	}
	assertCount(t, dbCtx.DB, "rebuild_runs", 2)
}

func TestProgressRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository(setupTestDB(t))

	got, err := repo.Get(ctx, "arrays_0")
	if err != nil || got != nil {
		t.Fatalf("expected no progress yet, got %#v (%v)", got, err)
	}

	done := time.Date(2024, 1, 16, 20, 30, 0, 0, time.UTC)
	if err := repo.Complete(ctx, ProgressRecord{TaskID: "arrays_0", Title: "Arrays", CompletedAt: done, MinutesSpent: 45}); err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if err := repo.Complete(ctx, ProgressRecord{TaskID: "arrays_0", Title: "Arrays", CompletedAt: done.Add(time.Hour), MinutesSpent: 50, Notes: "redo"}); err != nil {
		t.Fatalf("second Complete error: %v", err)
	}
	if err := repo.Complete(ctx, ProgressRecord{TaskID: "basics_0", Title: "Basics", CompletedAt: done.Add(-time.Hour)}); err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	got, err = repo.Get(ctx, "arrays_0")
	if err != nil || got == nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.MinutesSpent != 50 || got.Notes != "redo" || !got.CompletedAt.Equal(done.Add(time.Hour)) {
		t.Fatalf("expected completion to be replaced, got %#v", got)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 || list[0].TaskID != "basics_0" {
		t.Fatalf("expected progress ordered by completion time, got %#v", list)
	}

	removed, err := repo.Reopen(ctx, "arrays_0")
	if err != nil || !removed {
		t.Fatalf("expected Reopen to remove record, got %v (%v)", removed, err)
	}
	removed, err = repo.Reopen(ctx, "arrays_0")
	if err != nil || removed {
		t.Fatalf("expected second Reopen to be a no-op, got %v (%v)", removed, err)
	}
}

func TestRepositoriesRequireContext(t *testing.T) {
	ctx := context.Background()
	if err := NewRunRepository(nil).Insert(ctx, RunRecord{}); !errors.Is(err, ErrNoConnection) {
		t.Fatalf("expected ErrNoConnection, got %v", err)
	}
	if _, err := NewProgressRepository(nil).List(ctx); !errors.Is(err, ErrNoConnection) {
		t.Fatalf("expected error without database context")
	}
}
