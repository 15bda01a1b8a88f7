package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/a2zdsa/atlas/internal/database/sqlc"
)

// RunRepository records rebuild outcomes.
type RunRepository struct {
	ctx *Context
}

func NewRunRepository(dbCtx *Context) *RunRepository {
	return &RunRepository{ctx: dbCtx}
}

// MaxRuns is how many rebuilds the history keeps.
const MaxRuns = 500

// Insert stores run and drops the oldest runs beyond MaxRuns.
func (r *RunRepository) Insert(ctx context.Context, run RunRecord) error {
	if queriesFromContext(r.ctx) == nil {
		return fmt.Errorf("run repository: %w", ErrNoConnection)
	}

	return r.ctx.InTx(ctx, func(q *sqldb.Queries) error {
		err := q.InsertRun(ctx, sqldb.InsertRunParams{
			ID:                run.ID,
			StartedAt:         formatTime(run.StartedAt),
			FinishedAt:        formatTime(run.FinishedAt),
			PrimaryCount:      int64(run.PrimaryCount),
			SecondaryCount:    int64(run.SecondaryCount),
			ExactCount:        int64(run.ExactCount),
			ApproximateCount:  int64(run.ApproximateCount),
			MissingCount:      int64(run.MissingCount),
			Coverage:          run.CoveragePercentage,
			IndexHash:         run.IndexHash,
			MappingHash:       run.MappingHash,
			PlanHash:          nullString(run.PlanHash),
			PrimaryRevision:   nullString(run.PrimaryRevision),
			SecondaryRevision: nullString(run.SecondaryRevision),
		})
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}
		if _, err := q.PruneRuns(ctx, MaxRuns); err != nil {
			return fmt.Errorf("failed to prune run history: %w", err)
		}
		return nil
	})
}

// Latest returns the most recent run, or ErrNotFound before the first rebuild.
func (r *RunRepository) Latest(ctx context.Context) (*RunRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("run repository: %w", ErrNoConnection)
	}

	row, err := queries.LatestRun(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	record, err := mapRunRow(row)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *RunRepository) FindByID(ctx context.Context, id string) (*RunRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("run repository: %w", ErrNoConnection)
	}

	row, err := queries.FindRunByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record, err := mapRunRow(row)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns up to limit runs, newest first. A non-positive limit means no limit.
func (r *RunRepository) List(ctx context.Context, limit int) ([]RunRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("run repository: %w", ErrNoConnection)
	}

	n := int64(limit)
	if n <= 0 {
		n = -1
	}
	rows, err := queries.ListRuns(ctx, n)
	if err != nil {
		return nil, err
	}

	result := make([]RunRecord, 0, len(rows))
	for _, row := range rows {
		record, err := mapRunRow(row)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, nil
}

func mapRunRow(row sqldb.RebuildRun) (RunRecord, error) {
	started, err := parseTime(row.StartedAt)
	if err != nil {
		return RunRecord{}, err
	}
	finished, err := parseTime(row.FinishedAt)
	if err != nil {
		return RunRecord{}, err
	}
	return RunRecord{
		ID:                 row.ID,
		StartedAt:          started,
		FinishedAt:         finished,
		PrimaryCount:       int(row.PrimaryCount),
		SecondaryCount:     int(row.SecondaryCount),
		ExactCount:         int(row.ExactCount),
		ApproximateCount:   int(row.ApproximateCount),
		MissingCount:       int(row.MissingCount),
		CoveragePercentage: row.Coverage,
		IndexHash:          row.IndexHash,
		MappingHash:        row.MappingHash,
		PlanHash:           optionalString(row.PlanHash),
		PrimaryRevision:    optionalString(row.PrimaryRevision),
		SecondaryRevision:  optionalString(row.SecondaryRevision),
	}, nil
}
