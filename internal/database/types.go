package database

import "time"

// RunRecord is one row of rebuild_runs: the outcome of a rebuild and the
// fingerprints of the artifacts it wrote.
type RunRecord struct {
	ID                 string    `json:"id"`
	StartedAt          time.Time `json:"started_at"`
	FinishedAt         time.Time `json:"finished_at"`
	PrimaryCount       int       `json:"primary_count"`
	SecondaryCount     int       `json:"secondary_count"`
	ExactCount         int       `json:"exact_count"`
	ApproximateCount   int       `json:"approximate_count"`
	MissingCount       int       `json:"missing_count"`
	CoveragePercentage float64   `json:"coverage_percentage"`
	IndexHash          string    `json:"index_hash"`
	MappingHash        string    `json:"mapping_hash"`
	PlanHash           string    `json:"plan_hash,omitempty"`
	PrimaryRevision    string    `json:"primary_revision,omitempty"`
	SecondaryRevision  string    `json:"secondary_revision,omitempty"`
}

// Duration is how long the rebuild took.
func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ProgressRecord marks a study task as done.
type ProgressRecord struct {
	TaskID       string    `json:"task_id"`
	Title        string    `json:"title"`
	CompletedAt  time.Time `json:"completed_at"`
	MinutesSpent int       `json:"minutes_spent"`
	Notes        string    `json:"notes,omitempty"`
}
