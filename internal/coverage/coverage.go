// Package coverage scores the topic index and mapping file for completeness.
package coverage

import (
	"fmt"
	"strings"

	"github.com/a2zdsa/atlas/internal/atlas"
)

// Scores per topic status.
const (
	ScoreAvailable = 100
	ScorePartial   = 50
	ScoreMissing   = 0
)

// Thresholds used for gaps, recommendations and success criteria.
const (
	lowCoverageScore      = 50
	priorityScore         = 70
	targetCoverage        = 90.0
	missingPrimaryLimit   = 50
	recommendationListLen = 3

	minSections = 15
	minCoverage = 80.0
	minProblems = 300
)

// Score maps a topic status to its coverage score.
func Score(status atlas.TopicStatus) int {
	switch status {
	case atlas.TopicAvailable:
		return ScoreAvailable
	case atlas.TopicPartial:
		return ScorePartial
	default:
		return ScoreMissing
	}
}

// Evaluate builds the coverage report. Subsection placeholder rows are
// excluded from section-level analysis.
func Evaluate(index []atlas.TopicIndexEntry, matches []atlas.MatchRecord) atlas.CoverageReport {
	report := atlas.CoverageReport{
		Sections: []atlas.SectionCoverage{},
		Gaps: atlas.CoverageGaps{
			MissingSections:  []string{},
			LowCoverage:      []string{},
			MissingPrimary:   []string{},
			MissingSecondary: []string{},
		},
		Recommendations: []string{},
	}

	var priority []string
	for _, entry := range index {
		if entry.IsSubsection() {
			continue
		}
		sc := atlas.SectionCoverage{
			ID:           entry.ID,
			Title:        entry.Title,
			StepNumber:   entry.StepNumber,
			Status:       entry.Status,
			ProblemCount: len(entry.RelatedProblemIDs),
			FileCount:    len(entry.LocalFilePaths),
			Score:        Score(entry.Status),
		}
		report.Sections = append(report.Sections, sc)

		if sc.ProblemCount == 0 {
			report.Gaps.MissingSections = append(report.Gaps.MissingSections, sc.Title)
		}
		if sc.Score < lowCoverageScore {
			report.Gaps.LowCoverage = append(report.Gaps.LowCoverage, sc.Title)
		}
		if sc.Score < priorityScore {
			priority = append(priority, sc.Title)
		}
	}
	report.TotalSections = len(report.Sections)

	report.Statistics = statistics(matches)
	for _, m := range matches {
		if !m.HasPrimary() {
			report.Gaps.MissingPrimary = append(report.Gaps.MissingPrimary, m.Title)
		}
		if !m.HasSecondary() {
			report.Gaps.MissingSecondary = append(report.Gaps.MissingSecondary, m.Title)
		}
	}
	report.Statistics.MissingImplementations = len(report.Gaps.MissingPrimary)

	report.Recommendations = recommendations(report, priority)
	report.Criteria = []atlas.Criterion{
		{Name: fmt.Sprintf("At least %d sections represented", minSections), Passed: report.TotalSections >= minSections},
		{Name: "Every section has problems linked", Passed: len(report.Gaps.MissingSections) == 0},
		{Name: fmt.Sprintf("Coverage above %.0f%%", minCoverage), Passed: report.Statistics.CoveragePercentage >= minCoverage},
		{Name: fmt.Sprintf("At least %d problems mapped", minProblems), Passed: report.Statistics.TotalProblems >= minProblems},
	}
	report.Passed = true
	for _, c := range report.Criteria {
		if !c.Passed {
			report.Passed = false
		}
	}
	report.CriticalGaps = len(report.Gaps.MissingSections) > 0 ||
		report.Statistics.CoveragePercentage < minCoverage ||
		report.Statistics.TotalProblems < minProblems
	return report
}

func statistics(matches []atlas.MatchRecord) atlas.CoverageStatistics {
	stats := atlas.CoverageStatistics{TotalProblems: len(matches)}
	filled := 0
	for _, m := range matches {
		switch m.Status {
		case atlas.MatchExact:
			stats.ExactMatches++
		case atlas.MatchApproximate:
			stats.ApproximateMatches++
		}
		if m.HasPrimary() {
			filled++
		}
		if m.HasSecondary() {
			filled++
		}
	}
	stats.CoveragePercentage = Percentage(filled, len(matches))
	return stats
}

// Percentage returns filled / (records × 2) × 100, or 0 when there are no
// records.
func Percentage(filled, records int) float64 {
	if records == 0 {
		return 0
	}
	return float64(filled) / float64(records*2) * 100
}

func recommendations(report atlas.CoverageReport, priority []string) []string {
	recs := []string{}

	if pct := report.Statistics.CoveragePercentage; pct < targetCoverage {
		recs = append(recs, fmt.Sprintf("Overall coverage is %.1f%%. Focus on completing missing implementations.", pct))
	}
	if n := len(report.Gaps.MissingPrimary); n > missingPrimaryLimit {
		recs = append(recs, fmt.Sprintf("%d problems missing primary implementations. Prioritize these for practice.", n))
	}
	if len(report.Gaps.MissingSections) > 0 {
		recs = append(recs, "Sections with no mapped problems: "+joinFirst(report.Gaps.MissingSections, recommendationListLen))
	}
	if len(priority) > 0 {
		recs = append(recs, "Priority sections needing attention: "+joinFirst(priority, recommendationListLen))
	}
	return recs
}

func joinFirst(values []string, n int) string {
	if len(values) > n {
		values = values[:n]
	}
	return strings.Join(values, ", ")
}

// Summarize computes the headline numbers served by the stats endpoint.
func Summarize(index []atlas.TopicIndexEntry, matches []atlas.MatchRecord) atlas.Stats {
	stats := atlas.Stats{TotalProblems: len(matches)}
	for _, entry := range index {
		if !entry.IsSubsection() {
			stats.TotalSections++
		}
	}

	filled := 0
	for _, m := range matches {
		if m.HasPrimary() {
			stats.PrimarySolutions++
			filled++
		}
		if m.HasSecondary() {
			stats.SecondarySolutions++
			filled++
		}
		switch m.Status {
		case atlas.MatchExact:
			stats.ExactMatches++
		case atlas.MatchApproximate:
			stats.ApproximateMatches++
		}
	}
	stats.CoveragePercentage = Percentage(filled, len(matches))
	return stats
}
