package sqldb

import "database/sql"

type RebuildRun struct {
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

type TaskProgress struct {
	TaskID       string
	Title        string
	CompletedAt  string
	MinutesSpent int64
	Notes        sql.NullString
}
