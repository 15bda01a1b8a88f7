package sqldb

import (
	"context"
	"database/sql"
)

const insertRun = `INSERT INTO rebuild_runs (
    id, started_at, finished_at, primary_count, secondary_count,
    exact_count, approximate_count, missing_count, coverage,
    index_hash, mapping_hash, plan_hash, primary_revision, secondary_revision
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type InsertRunParams struct {
	ID                string
	StartedAt         string
	FinishedAt        string
	PrimaryCount      int64
	SecondaryCount    int64
	ExactCount        int64
	ApproximateCount  int64
	MissingCount      int64
	Coverage          float64
	IndexHash         string
	MappingHash       string
	PlanHash          sql.NullString
	PrimaryRevision   sql.NullString
	SecondaryRevision sql.NullString
}

func (q *Queries) InsertRun(ctx context.Context, arg InsertRunParams) error {
	_, err := q.db.ExecContext(ctx, insertRun,
		arg.ID,
		arg.StartedAt,
		arg.FinishedAt,
		arg.PrimaryCount,
		arg.SecondaryCount,
		arg.ExactCount,
		arg.ApproximateCount,
		arg.MissingCount,
		arg.Coverage,
		arg.IndexHash,
		arg.MappingHash,
		arg.PlanHash,
		arg.PrimaryRevision,
		arg.SecondaryRevision,
	)
	return err
}

const runColumns = `id, started_at, finished_at, primary_count, secondary_count,
    exact_count, approximate_count, missing_count, coverage,
    index_hash, mapping_hash, plan_hash, primary_revision, secondary_revision`

const latestRun = `SELECT ` + runColumns + `
FROM rebuild_runs
ORDER BY started_at DESC, rowid DESC
LIMIT 1`

func (q *Queries) LatestRun(ctx context.Context) (RebuildRun, error) {
	row := q.db.QueryRowContext(ctx, latestRun)
	return scanRun(row)
}

const findRunByID = `SELECT ` + runColumns + `
FROM rebuild_runs
WHERE id = ?`

func (q *Queries) FindRunByID(ctx context.Context, id string) (RebuildRun, error) {
	row := q.db.QueryRowContext(ctx, findRunByID, id)
	return scanRun(row)
}

const listRuns = `SELECT ` + runColumns + `
FROM rebuild_runs
ORDER BY started_at DESC, rowid DESC
LIMIT ?`

func (q *Queries) ListRuns(ctx context.Context, limit int64) ([]RebuildRun, error) {
	rows, err := q.db.QueryContext(ctx, listRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []RebuildRun
	for rows.Next() {
		i, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const pruneRuns = `DELETE FROM rebuild_runs
WHERE rowid NOT IN (
    SELECT rowid FROM rebuild_runs
    ORDER BY started_at DESC, rowid DESC
    LIMIT ?
)`

// PruneRuns keeps the newest keep runs and reports how many were deleted.
func (q *Queries) PruneRuns(ctx context.Context, keep int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, pruneRuns, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAllRuns = `DELETE FROM rebuild_runs`

func (q *Queries) DeleteAllRuns(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllRuns)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RebuildRun, error) {
	var i RebuildRun
	err := s.Scan(
		&i.ID,
		&i.StartedAt,
		&i.FinishedAt,
		&i.PrimaryCount,
		&i.SecondaryCount,
		&i.ExactCount,
		&i.ApproximateCount,
		&i.MissingCount,
		&i.Coverage,
		&i.IndexHash,
		&i.MappingHash,
		&i.PlanHash,
		&i.PrimaryRevision,
		&i.SecondaryRevision,
	)
	return i, err
}
