package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/a2zdsa/atlas/internal/database/sqlc"
)

// ProgressRepository tracks which study tasks have been completed.
type ProgressRepository struct {
	ctx *Context
}

func NewProgressRepository(dbCtx *Context) *ProgressRepository {
	return &ProgressRepository{ctx: dbCtx}
}

// Complete marks a task done. Completing it again replaces the earlier record.
func (r *ProgressRepository) Complete(ctx context.Context, record ProgressRecord) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("progress repository: %w", ErrNoConnection)
	}

	return queries.UpsertProgress(ctx, sqldb.UpsertProgressParams{
		TaskID:       record.TaskID,
		Title:        record.Title,
		CompletedAt:  formatTime(record.CompletedAt),
		MinutesSpent: int64(record.MinutesSpent),
		Notes:        nullString(record.Notes),
	})
}

// Reopen clears the completion of a task. It reports whether a record existed.
func (r *ProgressRepository) Reopen(ctx context.Context, taskID string) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("progress repository: %w", ErrNoConnection)
	}

	affected, err := queries.DeleteProgress(ctx, taskID)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *ProgressRepository) Get(ctx context.Context, taskID string) (*ProgressRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("progress repository: %w", ErrNoConnection)
	}

	row, err := queries.FindProgress(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record, err := mapProgressRow(row)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ProgressRepository) List(ctx context.Context) ([]ProgressRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("progress repository: %w", ErrNoConnection)
	}

	rows, err := queries.ListProgress(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ProgressRecord, 0, len(rows))
	for _, row := range rows {
		record, err := mapProgressRow(row)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, nil
}

func mapProgressRow(row sqldb.TaskProgress) (ProgressRecord, error) {
	completed, err := parseTime(row.CompletedAt)
	if err != nil {
		return ProgressRecord{}, err
	}
	return ProgressRecord{
		TaskID:       row.TaskID,
		Title:        row.Title,
		CompletedAt:  completed,
		MinutesSpent: int(row.MinutesSpent),
		Notes:        optionalString(row.Notes),
	}, nil
}
