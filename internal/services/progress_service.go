package services

import (
	"context"
	"fmt"
	"time"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/database"
)

// ProgressService tracks completed study tasks.
type ProgressService struct {
	progress *database.ProgressRepository
}

func NewProgressService(ctx *database.Context) *ProgressService {
	return &ProgressService{progress: database.NewProgressRepository(ctx)}
}

// Complete marks task done at the given time. A zero minutes value records
// the task's own estimate.
func (s *ProgressService) Complete(ctx context.Context, task atlas.StudyTask, at time.Time, minutes int, notes string) (database.ProgressRecord, error) {
	if minutes < 0 {
		return database.ProgressRecord{}, fmt.Errorf("minutes must not be negative, got %d", minutes)
	}
	if minutes == 0 {
		minutes = task.EstimatedMinutes
	}

	record := database.ProgressRecord{
		TaskID:       task.ID,
		Title:        task.Title,
		CompletedAt:  at,
		MinutesSpent: minutes,
		Notes:        notes,
	}
	if err := s.progress.Complete(ctx, record); err != nil {
		return database.ProgressRecord{}, fmt.Errorf("failed to complete task %s: %w", task.ID, err)
	}
	return record, nil
}

// Reopen reports whether the task had been completed.
func (s *ProgressService) Reopen(ctx context.Context, taskID string) (bool, error) {
	return s.progress.Reopen(ctx, taskID)
}

func (s *ProgressService) List(ctx context.Context) ([]database.ProgressRecord, error) {
	return s.progress.List(ctx)
}

// Completed returns the completed task ids.
func (s *ProgressService) Completed(ctx context.Context) (map[string]struct{}, error) {
	records, err := s.progress.List(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]struct{}, len(records))
	for _, record := range records {
		done[record.TaskID] = struct{}{}
	}
	return done, nil
}

// Annotate returns a copy of plan with Completed set on finished tasks.
func Annotate(plan atlas.StudyPlan, done map[string]struct{}) atlas.StudyPlan {
	days := make([]atlas.DayPlan, len(plan.Days))
	for i, day := range plan.Days {
		tasks := make([]atlas.StudyTask, len(day.Tasks))
		for j, task := range day.Tasks {
			_, task.Completed = done[task.ID]
			tasks[j] = task
		}
		day.Tasks = tasks
		days[i] = day
	}
	return atlas.StudyPlan{Days: days}
}
