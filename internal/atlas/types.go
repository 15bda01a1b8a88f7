// Package atlas provides the data types shared by the matcher, index builder,
// coverage evaluator and study scheduler.
package atlas

import (
	"encoding/json"
	"time"
)

// RawRecord is one solution file as found by the scanner.
type RawRecord struct {
	Path       string
	SectionKey string
	Subsection string
	FileName   string
	// RawName is the file name without its extension, used for matching.
	RawName string
	// Title is the human-readable problem name.
	Title string
}

// Metadata is scraped from the comments of secondary-collection files.
type Metadata struct {
	Question        string
	Approach        string
	TimeComplexity  string
	SpaceComplexity string
}

// SecondaryRecord is a secondary-collection file with its comment metadata.
type SecondaryRecord struct {
	RawRecord
	Metadata
}

// MatchStatus classifies how a primary record was paired.
type MatchStatus string

const (
	MatchExact       MatchStatus = "exact"
	MatchApproximate MatchStatus = "approximate"
	MatchMissing     MatchStatus = "missing"
)

// Valid reports whether s is a known match status.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchExact, MatchApproximate, MatchMissing:
		return true
	}
	return false
}

// MatchRecord is the cross-reference between at most one primary and at most
// one secondary file. Empty optional strings are encoded as JSON null.
type MatchRecord struct {
	ProblemID         string
	Title             string
	SectionPath       string
	Subsection        string
	PrimaryFilePath   string
	SecondaryFilePath string
	Status            MatchStatus
	ApproachSummary   string
	TimeComplexity    string
	SpaceComplexity   string
	Links             []string
	Tags              []string
}

// HasPrimary reports whether the record carries a primary-collection file.
func (m MatchRecord) HasPrimary() bool { return m.PrimaryFilePath != "" }

// HasSecondary reports whether the record carries a secondary-collection file.
func (m MatchRecord) HasSecondary() bool { return m.SecondaryFilePath != "" }

type matchRecordJSON struct {
	ProblemID         string      `json:"problem_id"`
	Title             string      `json:"title"`
	SectionPath       string      `json:"section_path"`
	Subsection        string      `json:"subsection,omitempty"`
	Links             []string    `json:"links"`
	PrimaryFilePath   *string     `json:"primary_file_path"`
	SecondaryFilePath *string     `json:"secondary_file_path"`
	Status            MatchStatus `json:"status"`
	ApproachSummary   *string     `json:"approach_summary"`
	TimeComplexity    *string     `json:"time_complexity"`
	SpaceComplexity   *string     `json:"space_complexity"`
	Tags              []string    `json:"tags"`
}

// MarshalJSON encodes the record in its line-delimited wire form.
func (m MatchRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(matchRecordJSON{
		ProblemID:         m.ProblemID,
		Title:             m.Title,
		SectionPath:       m.SectionPath,
		Subsection:        m.Subsection,
		Links:             nonNil(m.Links),
		PrimaryFilePath:   stringPtr(m.PrimaryFilePath),
		SecondaryFilePath: stringPtr(m.SecondaryFilePath),
		Status:            m.Status,
		ApproachSummary:   stringPtr(m.ApproachSummary),
		TimeComplexity:    stringPtr(m.TimeComplexity),
		SpaceComplexity:   stringPtr(m.SpaceComplexity),
		Tags:              nonNil(m.Tags),
	})
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (m *MatchRecord) UnmarshalJSON(data []byte) error {
	var wire matchRecordJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*m = MatchRecord{
		ProblemID:         wire.ProblemID,
		Title:             wire.Title,
		SectionPath:       wire.SectionPath,
		Subsection:        wire.Subsection,
		PrimaryFilePath:   derefString(wire.PrimaryFilePath),
		SecondaryFilePath: derefString(wire.SecondaryFilePath),
		Status:            wire.Status,
		ApproachSummary:   derefString(wire.ApproachSummary),
		TimeComplexity:    derefString(wire.TimeComplexity),
		SpaceComplexity:   derefString(wire.SpaceComplexity),
		Links:             wire.Links,
		Tags:              wire.Tags,
	}
	return nil
}

// TopicStatus is the availability of a course section across collections.
type TopicStatus string

const (
	TopicAvailable TopicStatus = "available"
	TopicPartial   TopicStatus = "partial"
	TopicMissing   TopicStatus = "missing"
)

// Valid reports whether s is a known topic status.
func (s TopicStatus) Valid() bool {
	switch s {
	case TopicAvailable, TopicPartial, TopicMissing:
		return true
	}
	return false
}

// TopicIndexEntry is one course section (or subsection placeholder) of the
// derived topic index.
type TopicIndexEntry struct {
	ID                string      `json:"id"`
	ParentID          string      `json:"parent_id,omitempty"`
	Title             string      `json:"title"`
	Path              string      `json:"path"`
	StepNumber        int         `json:"step_number"`
	Tags              []string    `json:"tags"`
	SourceLinks       []string    `json:"source_links"`
	RelatedProblemIDs []string    `json:"related_problems"`
	LocalFilePaths    []string    `json:"local_files"`
	PrimaryCount      int         `json:"primary_count"`
	SecondaryCount    int         `json:"secondary_count"`
	Notes             string      `json:"notes"`
	Status            TopicStatus `json:"status"`
}

// IsSubsection reports whether the entry is a subsection placeholder row.
func (e TopicIndexEntry) IsSubsection() bool { return e.ParentID != "" }

// SectionCoverage is the per-section part of a coverage report.
type SectionCoverage struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	StepNumber   int         `json:"step_number"`
	Status       TopicStatus `json:"status"`
	ProblemCount int         `json:"problem_count"`
	FileCount    int         `json:"file_count"`
	Score        int         `json:"coverage_score"`
}

// CoverageStatistics aggregates the mapping file.
type CoverageStatistics struct {
	TotalProblems          int     `json:"total_problems"`
	ExactMatches           int     `json:"exact_matches"`
	ApproximateMatches     int     `json:"approximate_matches"`
	MissingImplementations int     `json:"missing_implementations"`
	CoveragePercentage     float64 `json:"coverage_percentage"`
}

// CoverageGaps lists the titles of sections and problems needing work.
type CoverageGaps struct {
	MissingSections  []string `json:"missing_sections"`
	LowCoverage      []string `json:"low_coverage"`
	MissingPrimary   []string `json:"missing_primary"`
	MissingSecondary []string `json:"missing_secondary"`
}

// Criterion is one pass/fail completeness check.
type Criterion struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// CoverageReport is the result of evaluating the index against the mappings.
type CoverageReport struct {
	TotalSections   int                `json:"total_sections"`
	Sections        []SectionCoverage  `json:"sections"`
	Statistics      CoverageStatistics `json:"statistics"`
	Gaps            CoverageGaps       `json:"gaps"`
	Recommendations []string           `json:"recommendations"`
	Criteria        []Criterion        `json:"criteria"`
	Passed          bool               `json:"passed"`
	// CriticalGaps is set when a section has no problems, coverage is below
	// the minimum, or too few problems are mapped. The section-count
	// criterion is advisory and does not set it.
	CriticalGaps bool `json:"critical_gaps"`
}

// HasCriticalGaps reports whether the report should fail a completeness check.
func (r CoverageReport) HasCriticalGaps() bool {
	return r.CriticalGaps
}

// Stats is the summary served by the stats endpoint.
type Stats struct {
	TotalSections      int     `json:"total_sections"`
	TotalProblems      int     `json:"total_problems"`
	PrimarySolutions   int     `json:"primary_solutions"`
	SecondarySolutions int     `json:"secondary_solutions"`
	ExactMatches       int     `json:"exact_matches"`
	ApproximateMatches int     `json:"approximate_matches"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	CompletedTasks     int     `json:"completed_tasks"`
}

// TaskKind is the role of a study task in the schedule.
type TaskKind string

const (
	KindNewTopic TaskKind = "new_topic"
	KindPractice TaskKind = "practice"
	KindReview   TaskKind = "review"
)

// Priority orders tasks in the backlog.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns 3 for high, 2 for medium and 1 for anything else.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	}
	return 1
}

// Difficulty is the estimated difficulty of a task.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Rank returns 1 for easy, 2 for medium and 3 for hard.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return 3
	}
	return 2
}

// StudyTask is a unit of scheduled work.
type StudyTask struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Kind             TaskKind   `json:"type"`
	Section          string     `json:"section"`
	Problems         []string   `json:"problems"`
	EstimatedMinutes int        `json:"estimated_time"`
	Priority         Priority   `json:"priority"`
	Files            []string   `json:"files"`
	Notes            string     `json:"notes"`
	Difficulty       Difficulty `json:"difficulty"`
	Completed        bool       `json:"completed,omitempty"`
}

// DateLayout formats the calendar part of a plan day key.
const DateLayout = "2006-01-02"

// DayPlan is the ordered task list for one calendar day.
type DayPlan struct {
	Date    time.Time   `json:"-"`
	DayName string      `json:"-"`
	Tasks   []StudyTask `json:"tasks"`
}

// Key returns the plan document key, e.g. "2024-01-15 (Monday)".
func (d DayPlan) Key() string {
	return d.Date.Format(DateLayout) + " (" + d.DayName + ")"
}

// Minutes sums the estimated time of the day's tasks.
func (d DayPlan) Minutes() int {
	total := 0
	for _, task := range d.Tasks {
		total += task.EstimatedMinutes
	}
	return total
}

// PlanSummary is derived from the days of a plan.
type PlanSummary struct {
	TotalMinutes        int     `json:"total_study_time"`
	TotalTasks          int     `json:"total_tasks"`
	AverageDailyMinutes int     `json:"average_daily_time"`
	AverageTasksPerDay  float64 `json:"average_tasks_per_day"`
}

// StudyPlan is a fixed-horizon schedule.
type StudyPlan struct {
	Days []DayPlan
}

// Summary recomputes the plan totals from its days.
func (p StudyPlan) Summary() PlanSummary {
	var summary PlanSummary
	for _, day := range p.Days {
		summary.TotalMinutes += day.Minutes()
		summary.TotalTasks += len(day.Tasks)
	}
	if n := len(p.Days); n > 0 {
		summary.AverageDailyMinutes = summary.TotalMinutes / n
		summary.AverageTasksPerDay = float64(summary.TotalTasks) / float64(n)
	}
	return summary
}

// Day returns the plan day falling on the calendar date of t.
func (p StudyPlan) Day(t time.Time) (DayPlan, bool) {
	want := t.Format(DateLayout)
	for _, day := range p.Days {
		if day.Date.Format(DateLayout) == want {
			return day, true
		}
	}
	return DayPlan{}, false
}

// Task looks up a task by id anywhere in the plan.
func (p StudyPlan) Task(id string) (StudyTask, bool) {
	for _, day := range p.Days {
		for _, task := range day.Tasks {
			if task.ID == id {
				return task, true
			}
		}
	}
	return StudyTask{}, false
}

func stringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
