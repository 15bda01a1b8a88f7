package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/database"
	"github.com/a2zdsa/atlas/internal/planner"
	"github.com/a2zdsa/atlas/internal/services"
	"github.com/a2zdsa/atlas/internal/store"
)

// PlanOptions override the configured plan shape. Zero values use settings.
type PlanOptions struct {
	Days               int
	DailyBudgetMinutes int
	// Seed makes review placement reproducible.
	Seed *uint64
}

// Plan returns the stored study plan, generating and saving one first if
// none exists. Completed tasks are flagged.
func (a *Atlas) Plan(ctx context.Context) (atlas.StudyPlan, error) {
	plan, err := a.store.ReadPlan(ctx)
	if errors.Is(err, store.ErrMissing) {
		plan, err = a.GeneratePlan(ctx, PlanOptions{})
	}
	if err != nil {
		return atlas.StudyPlan{}, err
	}
	return a.annotate(ctx, plan)
}

// GeneratePlan builds a fresh plan from the index and mappings, which must
// both exist, and saves it over any previous plan.
func (a *Atlas) GeneratePlan(ctx context.Context, opts PlanOptions) (atlas.StudyPlan, error) {
	entries, err := a.readIndex(ctx, true)
	if err != nil {
		return atlas.StudyPlan{}, err
	}
	records, err := a.readMappings(ctx, true)
	if err != nil {
		return atlas.StudyPlan{}, err
	}

	a.mu.Lock()
	plan, oversized := a.generate(entries, records, opts)
	a.mu.Unlock()

	if _, err := a.store.WritePlan(ctx, plan); err != nil {
		return atlas.StudyPlan{}, fmt.Errorf("failed to write study plan: %w", err)
	}
	for _, task := range oversized {
		a.log.Warn("task exceeds daily budget and blocks the backlog", "task_id", task.ID, "minutes", task.EstimatedMinutes)
	}
	summary := plan.Summary()
	a.log.Info("study plan generated", "days", len(plan.Days), "tasks", summary.TotalTasks, "minutes", summary.TotalMinutes)
	return plan, nil
}

// TodayPlan returns the plan day for the current date.
func (a *Atlas) TodayPlan(ctx context.Context) (atlas.DayPlan, error) {
	plan, err := a.Plan(ctx)
	if err != nil {
		return atlas.DayPlan{}, err
	}
	today := a.now()
	day, ok := plan.Day(today)
	if !ok {
		return atlas.DayPlan{}, fmt.Errorf("no plan for %s: %w", today.Format(atlas.DateLayout), ErrNotFound)
	}
	return day, nil
}

// generate must be called with a.mu held; the jitter source is not safe for
// concurrent use.
func (a *Atlas) generate(entries []atlas.TopicIndexEntry, records []atlas.MatchRecord, opts PlanOptions) (atlas.StudyPlan, []atlas.StudyTask) {
	days := opts.Days
	if days <= 0 {
		days = a.settings.PlanDays
	}
	budget := opts.DailyBudgetMinutes
	if budget <= 0 {
		budget = a.settings.DailyBudgetMinutes
	}

	var rng *rand.Rand
	switch {
	case opts.Seed != nil:
		rng = planner.NewRand(*opts.Seed)
	case a.rand != nil:
		rng = a.rand
	}

	tasks := planner.Synthesize(entries, records)
	plan := planner.Generate(tasks, planner.Options{
		Days:               days,
		DailyBudgetMinutes: budget,
		Start:              a.now(),
		Rand:               rng,
	})
	return plan, planner.Oversized(tasks, budget)
}

func (a *Atlas) annotate(ctx context.Context, plan atlas.StudyPlan) (atlas.StudyPlan, error) {
	done, err := a.progress.Completed(ctx)
	if err != nil {
		return atlas.StudyPlan{}, err
	}
	return services.Annotate(plan, done), nil
}

// CompleteTask records a planned task as done. A zero minutes value records
// the task's estimate.
func (a *Atlas) CompleteTask(ctx context.Context, taskID string, minutes int, notes string) (*database.ProgressRecord, error) {
	if minutes < 0 {
		return nil, fmt.Errorf("%w: minutes must not be negative", ErrInvalidInput)
	}
	task, err := a.task(ctx, taskID)
	if err != nil {
		return nil, err
	}
	record, err := a.progress.Complete(ctx, task, a.now(), minutes, notes)
	if err != nil {
		return nil, err
	}
	a.log.Info("task completed", "task_id", taskID, "minutes", record.MinutesSpent)
	return &record, nil
}

// ReopenTask clears a task's completion. ErrNotFound means it was not completed.
func (a *Atlas) ReopenTask(ctx context.Context, taskID string) error {
	removed, err := a.progress.Reopen(ctx, taskID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("task %q is not completed: %w", taskID, ErrNotFound)
	}
	a.log.Info("task reopened", "task_id", taskID)
	return nil
}

// Progress lists completed tasks in completion order.
func (a *Atlas) Progress(ctx context.Context) ([]database.ProgressRecord, error) {
	return a.progress.List(ctx)
}

func (a *Atlas) task(ctx context.Context, taskID string) (atlas.StudyTask, error) {
	plan, err := a.store.ReadPlan(ctx)
	if errors.Is(err, store.ErrMissing) {
		return atlas.StudyTask{}, fmt.Errorf("task %q: %w", taskID, ErrNotFound)
	}
	if err != nil {
		return atlas.StudyTask{}, err
	}
	task, ok := plan.Task(taskID)
	if !ok {
		return atlas.StudyTask{}, fmt.Errorf("task %q: %w", taskID, ErrNotFound)
	}
	return task, nil
}
