package coverage

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/a2zdsa/atlas/internal/atlas"
)

func entry(id, title string, status atlas.TopicStatus, related ...string) atlas.TopicIndexEntry {
	return atlas.TopicIndexEntry{ID: id, Title: title, Status: status, RelatedProblemIDs: related}
}

func TestEvaluateSections(t *testing.T) {
	index := []atlas.TopicIndexEntry{
		entry("s1", "Arrays", atlas.TopicAvailable, "a"),
		{ID: "s1_sub1", ParentID: "s1", Title: "Arrays - Easy", Status: atlas.TopicAvailable},
		entry("s2", "Sorting", atlas.TopicPartial, "b"),
		entry("s3", "Graphs", atlas.TopicMissing),
	}
	matches := []atlas.MatchRecord{
		{ProblemID: "a", Title: "Two Sum", PrimaryFilePath: "p/a.py", SecondaryFilePath: "s/a.cpp", Status: atlas.MatchExact},
		{ProblemID: "b", Title: "Bubble Sort", PrimaryFilePath: "p/b.py", Status: atlas.MatchMissing},
		{ProblemID: "c", Title: "N Queens", SecondaryFilePath: "s/c.cpp", Status: atlas.MatchMissing},
	}

	report := Evaluate(index, matches)

	if report.TotalSections != 3 {
		t.Fatalf("expected subsections to be excluded, got %d sections", report.TotalSections)
	}
	scores := []int{report.Sections[0].Score, report.Sections[1].Score, report.Sections[2].Score}
	if scores[0] != 100 || scores[1] != 50 || scores[2] != 0 {
		t.Fatalf("unexpected scores %v", scores)
	}

	if got := report.Gaps.MissingSections; len(got) != 1 || got[0] != "Graphs" {
		t.Fatalf("unexpected missing sections %v", got)
	}
	if got := report.Gaps.LowCoverage; len(got) != 1 || got[0] != "Graphs" {
		t.Fatalf("unexpected low coverage %v", got)
	}
	if got := report.Gaps.MissingPrimary; len(got) != 1 || got[0] != "N Queens" {
		t.Fatalf("unexpected missing primary %v", got)
	}
	if got := report.Gaps.MissingSecondary; len(got) != 1 || got[0] != "Bubble Sort" {
		t.Fatalf("unexpected missing secondary %v", got)
	}

	// 4 filled slots out of 6.
	want := 4.0 / 6.0 * 100
	if math.Abs(report.Statistics.CoveragePercentage-want) > 1e-9 {
		t.Fatalf("coverage = %v, want %v", report.Statistics.CoveragePercentage, want)
	}
	if report.Statistics.ExactMatches != 1 || report.Statistics.ApproximateMatches != 0 {
		t.Fatalf("unexpected match counts %#v", report.Statistics)
	}
	if report.Statistics.MissingImplementations != 1 {
		t.Fatalf("expected 1 missing implementation, got %d", report.Statistics.MissingImplementations)
	}

	recs := strings.Join(report.Recommendations, "\n")
	for _, fragment := range []string{
		"Overall coverage is 66.7%",
		"Sections with no mapped problems: Graphs",
		"Priority sections needing attention: Sorting, Graphs",
	} {
		if !strings.Contains(recs, fragment) {
			t.Fatalf("expected recommendations to contain %q, got:\n%s", fragment, recs)
		}
	}
	if report.Passed {
		t.Fatalf("expected small catalog to fail criteria")
	}
}

func TestEvaluateEmpty(t *testing.T) {
	report := Evaluate(nil, nil)
	if report.Statistics.CoveragePercentage != 0 {
		t.Fatalf("expected 0 coverage, got %v", report.Statistics.CoveragePercentage)
	}
	if report.Sections == nil || report.Gaps.MissingPrimary == nil || report.Recommendations == nil {
		t.Fatalf("expected non-nil slices for JSON output")
	}
}

func TestEvaluateMissingPrimaryRecommendation(t *testing.T) {
	var matches []atlas.MatchRecord
	for i := 0; i < 51; i++ {
		matches = append(matches, atlas.MatchRecord{
			ProblemID:         fmt.Sprintf("cpp_%d", i),
			Title:             fmt.Sprintf("P%d", i),
			SecondaryFilePath: fmt.Sprintf("s/%d.cpp", i),
			Status:            atlas.MatchMissing,
		})
	}

	report := Evaluate(nil, matches)
	found := false
	for _, rec := range report.Recommendations {
		if strings.HasPrefix(rec, "51 problems missing primary implementations") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing primary recommendation, got %v", report.Recommendations)
	}
}

func TestEvaluateCriteriaPass(t *testing.T) {
	var index []atlas.TopicIndexEntry
	for i := 0; i < 15; i++ {
		index = append(index, entry(fmt.Sprintf("s%d", i), fmt.Sprintf("Section %d", i), atlas.TopicAvailable, "x"))
	}
	var matches []atlas.MatchRecord
	for i := 0; i < 300; i++ {
		matches = append(matches, atlas.MatchRecord{
			ProblemID:         fmt.Sprintf("p%d", i),
			PrimaryFilePath:   fmt.Sprintf("p/%d.py", i),
			SecondaryFilePath: fmt.Sprintf("s/%d.cpp", i),
			Status:            atlas.MatchExact,
		})
	}

	report := Evaluate(index, matches)
	if !report.Passed || report.HasCriticalGaps() {
		t.Fatalf("expected criteria to pass, got %#v", report.Criteria)
	}
	if len(report.Recommendations) != 0 {
		t.Fatalf("expected no recommendations, got %v", report.Recommendations)
	}
}

func TestSectionCountIsNotCritical(t *testing.T) {
	var index []atlas.TopicIndexEntry
	for i := 0; i < 14; i++ {
		index = append(index, entry(fmt.Sprintf("s%d", i), fmt.Sprintf("Section %d", i), atlas.TopicAvailable, "x"))
	}
	var matches []atlas.MatchRecord
	for i := 0; i < 300; i++ {
		matches = append(matches, atlas.MatchRecord{
			ProblemID:         fmt.Sprintf("p%d", i),
			PrimaryFilePath:   fmt.Sprintf("p/%d.py", i),
			SecondaryFilePath: fmt.Sprintf("s/%d.cpp", i),
			Status:            atlas.MatchExact,
		})
	}

	report := Evaluate(index, matches)
	if report.Passed {
		t.Fatalf("expected the section-count criterion to fail with 14 sections")
	}
	if report.HasCriticalGaps() {
		t.Fatalf("expected no critical gaps, got %#v", report.Criteria)
	}

	report = Evaluate(index, matches[:299])
	if !report.HasCriticalGaps() {
		t.Fatalf("expected fewer than 300 problems to be critical")
	}
}

func TestSummarize(t *testing.T) {
	index := []atlas.TopicIndexEntry{
		entry("s1", "Arrays", atlas.TopicAvailable),
		{ID: "s1_sub1", ParentID: "s1"},
	}
	matches := []atlas.MatchRecord{
		{PrimaryFilePath: "a.py", SecondaryFilePath: "a.cpp", Status: atlas.MatchApproximate},
		{PrimaryFilePath: "b.py", Status: atlas.MatchMissing},
	}

	stats := Summarize(index, matches)
	if stats.TotalSections != 1 || stats.TotalProblems != 2 {
		t.Fatalf("unexpected totals %#v", stats)
	}
	if stats.PrimarySolutions != 2 || stats.SecondarySolutions != 1 || stats.ApproximateMatches != 1 {
		t.Fatalf("unexpected counts %#v", stats)
	}
	if stats.CoveragePercentage != 75 {
		t.Fatalf("expected 75%% coverage, got %v", stats.CoveragePercentage)
	}
}
