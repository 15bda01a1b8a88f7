package sqldb

import (
	"context"
	"database/sql"
)

const upsertProgress = `INSERT INTO task_progress (task_id, title, completed_at, minutes_spent, notes)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(task_id) DO UPDATE SET
    title = excluded.title,
    completed_at = excluded.completed_at,
    minutes_spent = excluded.minutes_spent,
    notes = excluded.notes`

type UpsertProgressParams struct {
	TaskID       string
	Title        string
	CompletedAt  string
	MinutesSpent int64
	Notes        sql.NullString
}

func (q *Queries) UpsertProgress(ctx context.Context, arg UpsertProgressParams) error {
	_, err := q.db.ExecContext(ctx, upsertProgress,
		arg.TaskID,
		arg.Title,
		arg.CompletedAt,
		arg.MinutesSpent,
		arg.Notes,
	)
	return err
}

const findProgress = `SELECT task_id, title, completed_at, minutes_spent, notes
FROM task_progress
WHERE task_id = ?`

func (q *Queries) FindProgress(ctx context.Context, taskID string) (TaskProgress, error) {
	row := q.db.QueryRowContext(ctx, findProgress, taskID)
	var i TaskProgress
	err := row.Scan(&i.TaskID, &i.Title, &i.CompletedAt, &i.MinutesSpent, &i.Notes)
	return i, err
}

const listProgress = `SELECT task_id, title, completed_at, minutes_spent, notes
FROM task_progress
ORDER BY completed_at, task_id`

func (q *Queries) ListProgress(ctx context.Context) ([]TaskProgress, error) {
	rows, err := q.db.QueryContext(ctx, listProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TaskProgress
	for rows.Next() {
		var i TaskProgress
		if err := rows.Scan(&i.TaskID, &i.Title, &i.CompletedAt, &i.MinutesSpent, &i.Notes); err != nil {
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

const deleteProgress = `DELETE FROM task_progress WHERE task_id = ?`

func (q *Queries) DeleteProgress(ctx context.Context, taskID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteProgress, taskID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAllProgress = `DELETE FROM task_progress`

func (q *Queries) DeleteAllProgress(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllProgress)
	return err
}
