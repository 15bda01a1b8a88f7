package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/database"
)

func setupServiceDB(t *testing.T) *database.Context {
	t.Helper()
	t.Setenv("ATLAS_DIR", t.TempDir())

	ctx, err := database.CreateDatabase("")
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}

	t.Cleanup(func() {
		if err := database.CloseDatabase(ctx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})

	return ctx
}

func TestHistoryServiceAssignsIDs(t *testing.T) {
	ctx := context.Background()
	svc := NewHistoryService(setupServiceDB(t))

	latest, err := svc.Latest(ctx)
	if err != nil || latest != nil {
		t.Fatalf("expected no runs yet, got %#v (%v)", latest, err)
	}

	start := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	run, err := svc.Record(ctx, database.RunRecord{StartedAt: start, FinishedAt: start.Add(time.Second), IndexHash: "i", MappingHash: "m"})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if _, err := uuid.Parse(run.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", run.ID)
	}

	explicit, err := svc.Record(ctx, database.RunRecord{ID: "fixed", StartedAt: start.Add(time.Minute), FinishedAt: start.Add(time.Minute), IndexHash: "i", MappingHash: "m"})
	if err != nil || explicit.ID != "fixed" {
		t.Fatalf("expected explicit id to be kept, got %q (%v)", explicit.ID, err)
	}

	latest, err = svc.Latest(ctx)
	if err != nil || latest == nil || latest.ID != "fixed" {
		t.Fatalf("unexpected latest %#v (%v)", latest, err)
	}

	runs, err := svc.List(ctx, 10)
	if err != nil || len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d (%v)", len(runs), err)
	}
}

func TestProgressServiceComplete(t *testing.T) {
	ctx := context.Background()
	svc := NewProgressService(setupServiceDB(t))
	task := atlas.StudyTask{ID: "arrays_0", Title: "Arrays - Part 1", EstimatedMinutes: 45}
	at := time.Date(2024, 1, 15, 21, 0, 0, 0, time.UTC)

	record, err := svc.Complete(ctx, task, at, 0, "")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if record.MinutesSpent != 45 {
		t.Fatalf("expected estimate to be recorded, got %d", record.MinutesSpent)
	}

	if _, err := svc.Complete(ctx, task, at, -1, ""); err == nil {
		t.Fatalf("expected error for negative minutes")
	}

	done, err := svc.Completed(ctx)
	if err != nil {
		t.Fatalf("Completed error: %v", err)
	}
	if _, ok := done["arrays_0"]; !ok || len(done) != 1 {
		t.Fatalf("unexpected completed set %v", done)
	}

	reopened, err := svc.Reopen(ctx, "arrays_0")
	if err != nil || !reopened {
		t.Fatalf("expected Reopen to succeed, got %v (%v)", reopened, err)
	}
	list, err := svc.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected no progress after reopen, got %d (%v)", len(list), err)
	}
}

func TestAnnotateDoesNotMutateInput(t *testing.T) {
	plan := atlas.StudyPlan{Days: []atlas.DayPlan{{
		Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		DayName: "Monday",
		Tasks:   []atlas.StudyTask{{ID: "a"}, {ID: "b"}},
	}}}

	annotated := Annotate(plan, map[string]struct{}{"b": {}})
	if annotated.Days[0].Tasks[0].Completed || !annotated.Days[0].Tasks[1].Completed {
		t.Fatalf("unexpected completion flags %#v", annotated.Days[0].Tasks)
	}
	if plan.Days[0].Tasks[1].Completed {
		t.Fatalf("expected input plan to be left unchanged")
	}
}
