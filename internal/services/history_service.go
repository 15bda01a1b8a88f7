package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/a2zdsa/atlas/internal/database"
)

// HistoryService records rebuild runs.
type HistoryService struct {
	runs *database.RunRepository
}

func NewHistoryService(ctx *database.Context) *HistoryService {
	return &HistoryService{runs: database.NewRunRepository(ctx)}
}

// Record stores run, assigning a random UUID when it has no id yet.
func (s *HistoryService) Record(ctx context.Context, run database.RunRecord) (database.RunRecord, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := s.runs.Insert(ctx, run); err != nil {
		return database.RunRecord{}, fmt.Errorf("failed to record rebuild %s: %w", run.ID, err)
	}
	return run, nil
}

// Latest returns the most recent run, or nil before the first rebuild.
func (s *HistoryService) Latest(ctx context.Context) (*database.RunRecord, error) {
	run, err := s.runs.Latest(ctx)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return run, err
}

func (s *HistoryService) List(ctx context.Context, limit int) ([]database.RunRecord, error) {
	return s.runs.List(ctx, limit)
}
