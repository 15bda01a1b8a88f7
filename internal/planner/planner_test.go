package planner

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/matcher"
)

func TestEstimateDifficulty(t *testing.T) {
	cases := []struct {
		section, sub string
		want         atlas.Difficulty
	}{
		{"Learn the basics", "Hard", atlas.DifficultyEasy},
		{"Intro to Recursion", "", atlas.DifficultyEasy},
		{"Arrays", "Easy", atlas.DifficultyEasy},
		{"Arrays", "Medium Problems", atlas.DifficultyMedium},
		{"Dynamic Programming", "Hard", atlas.DifficultyHard},
		{"Dynamic Programming", "", atlas.DifficultyHard},
		{"Graphs", "Medium", atlas.DifficultyMedium},
		{"Binary Trees", "", atlas.DifficultyHard},
		{"Strings [Advanced]", "", atlas.DifficultyHard},
		{"Strings", "", atlas.DifficultyMedium},
		{"Heaps", "", atlas.DifficultyMedium},
	}
	for _, tc := range cases {
		if got := EstimateDifficulty(tc.section, tc.sub); got != tc.want {
			t.Fatalf("EstimateDifficulty(%q, %q) = %s, want %s", tc.section, tc.sub, got, tc.want)
		}
	}
}

func TestMinutesPerProblem(t *testing.T) {
	cases := []struct {
		d    atlas.Difficulty
		kind atlas.TaskKind
		want int
	}{
		{atlas.DifficultyEasy, atlas.KindNewTopic, 22},
		{atlas.DifficultyMedium, atlas.KindNewTopic, 45},
		{atlas.DifficultyHard, atlas.KindNewTopic, 67},
		{atlas.DifficultyEasy, atlas.KindReview, 10},
		{atlas.DifficultyMedium, atlas.KindReview, 21},
		{atlas.DifficultyHard, atlas.KindPractice, 45},
		{"unknown", "unknown", 30},
	}
	for _, tc := range cases {
		if got := MinutesPerProblem(tc.d, tc.kind); got != tc.want {
			t.Fatalf("MinutesPerProblem(%s, %s) = %d, want %d", tc.d, tc.kind, got, tc.want)
		}
	}
}

func TestChunkSize(t *testing.T) {
	cases := map[int]int{1: 1, 2: 1, 3: 1, 6: 2, 9: 3, 15: 5, 40: 5}
	for n, want := range cases {
		if got := ChunkSize(n); got != want {
			t.Fatalf("ChunkSize(%d) = %d, want %d", n, got, want)
		}
	}
}

func sectionFixture(id, title string, n int) (atlas.TopicIndexEntry, []atlas.MatchRecord) {
	entry := atlas.TopicIndexEntry{ID: id, Title: title}
	var matches []atlas.MatchRecord
	for i := 0; i < n; i++ {
		pid := fmt.Sprintf("%s_p%d", id, i)
		entry.RelatedProblemIDs = append(entry.RelatedProblemIDs, pid)
		matches = append(matches, atlas.MatchRecord{
			ProblemID:         pid,
			Title:             fmt.Sprintf("Problem %d", i),
			PrimaryFilePath:   fmt.Sprintf("%s/%d.py", id, i),
			SecondaryFilePath: fmt.Sprintf("%s/%d.cpp", id, i),
			Status:            atlas.MatchExact,
		})
	}
	return entry, matches
}

func TestSynthesize(t *testing.T) {
	entry, matches := sectionFixture("step03_arrays", "Arrays", 9)
	orphan := atlas.MatchRecord{ProblemID: "cpp_only", Title: "Orphan", SecondaryFilePath: "x.cpp", Status: atlas.MatchMissing}
	entry.RelatedProblemIDs = append(entry.RelatedProblemIDs, orphan.ProblemID)
	matches = append(matches, orphan)

	sub := atlas.TopicIndexEntry{ID: "step03_arrays_sub1", ParentID: "step03_arrays", Title: "Arrays - Easy"}
	empty := atlas.TopicIndexEntry{ID: "step04_empty", Title: "Empty"}

	tasks := Synthesize([]atlas.TopicIndexEntry{entry, sub, empty}, matches)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks (9 problems in chunks of 3), got %d", len(tasks))
	}

	kinds := []atlas.TaskKind{tasks[0].Kind, tasks[1].Kind, tasks[2].Kind}
	wantKinds := []atlas.TaskKind{atlas.KindNewTopic, atlas.KindPractice, atlas.KindReview}
	if !reflect.DeepEqual(kinds, wantKinds) {
		t.Fatalf("kinds = %v, want %v", kinds, wantKinds)
	}
	if tasks[0].Priority != atlas.PriorityHigh || tasks[1].Priority != atlas.PriorityMedium || tasks[2].Priority != atlas.PriorityMedium {
		t.Fatalf("unexpected priorities %s %s %s", tasks[0].Priority, tasks[1].Priority, tasks[2].Priority)
	}

	first := tasks[0]
	if first.ID != "step03_arrays_task_1" || first.Title != "Arrays - Part 1" {
		t.Fatalf("unexpected id/title %q %q", first.ID, first.Title)
	}
	if first.Notes != "3 problems, medium difficulty" {
		t.Fatalf("unexpected notes %q", first.Notes)
	}
	if first.EstimatedMinutes != 45*3 {
		t.Fatalf("expected 135 minutes, got %d", first.EstimatedMinutes)
	}
	if len(first.Files) != 6 {
		t.Fatalf("expected primary and secondary files, got %v", first.Files)
	}
	for _, task := range tasks {
		for _, p := range task.Problems {
			if p == "Orphan" {
				t.Fatalf("task %s includes a problem without a primary file", task.ID)
			}
		}
	}
}

func TestSynthesizeSingleChunkIsNewTopic(t *testing.T) {
	entry, matches := sectionFixture("s", "Learn the basics", 2)
	tasks := Synthesize([]atlas.TopicIndexEntry{entry}, matches)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 single-problem tasks, got %d", len(tasks))
	}
	if tasks[0].Kind != atlas.KindNewTopic || tasks[1].Kind != atlas.KindReview {
		t.Fatalf("unexpected kinds %s %s", tasks[0].Kind, tasks[1].Kind)
	}

	entry, matches = sectionFixture("t", "Learn the basics", 1)
	tasks = Synthesize([]atlas.TopicIndexEntry{entry}, matches)
	if len(tasks) != 1 || tasks[0].Kind != atlas.KindNewTopic {
		t.Fatalf("expected single new-topic task, got %#v", tasks)
	}
	if tasks[0].EstimatedMinutes != 22 {
		t.Fatalf("expected 22 minutes for one easy new topic, got %d", tasks[0].EstimatedMinutes)
	}
}

func task(id string, kind atlas.TaskKind, priority atlas.Priority, d atlas.Difficulty, minutes int) atlas.StudyTask {
	return atlas.StudyTask{
		ID:               id,
		Title:            id,
		Kind:             kind,
		Section:          "S",
		Problems:         []string{"a", "b", "c"},
		EstimatedMinutes: minutes,
		Priority:         priority,
		Difficulty:       d,
	}
}

func TestSortTasks(t *testing.T) {
	tasks := []atlas.StudyTask{
		task("low", atlas.KindPractice, atlas.PriorityLow, atlas.DifficultyEasy, 10),
		task("med-hard", atlas.KindPractice, atlas.PriorityMedium, atlas.DifficultyHard, 10),
		task("high-long", atlas.KindNewTopic, atlas.PriorityHigh, atlas.DifficultyMedium, 90),
		task("high-short", atlas.KindNewTopic, atlas.PriorityHigh, atlas.DifficultyMedium, 45),
		task("med-easy", atlas.KindPractice, atlas.PriorityMedium, atlas.DifficultyEasy, 60),
	}

	var ids []string
	for _, tk := range SortTasks(tasks) {
		ids = append(ids, tk.ID)
	}
	want := []string{"high-short", "high-long", "med-easy", "med-hard", "low"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("order = %v, want %v", ids, want)
	}
	if tasks[0].ID != "low" {
		t.Fatalf("SortTasks must not reorder its input")
	}
}

func testStart() time.Time {
	return time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)
}

func TestGenerateDayKeysAndBudget(t *testing.T) {
	var tasks []atlas.StudyTask
	for i := 0; i < 40; i++ {
		tasks = append(tasks, task(fmt.Sprintf("t%02d", i), atlas.KindPractice, atlas.PriorityMedium, atlas.DifficultyMedium, 30))
	}

	plan := Generate(tasks, Options{Start: testStart(), Rand: NewRand(1)})
	if len(plan.Days) != DefaultDays {
		t.Fatalf("expected %d days, got %d", DefaultDays, len(plan.Days))
	}
	if got := plan.Days[0].Key(); got != "2024-01-15 (Monday)" {
		t.Fatalf("unexpected first key %q", got)
	}
	if got := plan.Days[13].Key(); got != "2024-01-28 (Sunday)" {
		t.Fatalf("unexpected last key %q", got)
	}

	for _, day := range plan.Days {
		if day.Minutes() > DefaultDailyBudgetMinutes {
			t.Fatalf("day %s exceeds budget: %d", day.Key(), day.Minutes())
		}
	}
	if len(plan.Days[0].Tasks) != 4 {
		t.Fatalf("expected four 30-minute tasks on the first day, got %d", len(plan.Days[0].Tasks))
	}

	summary := plan.Summary()
	if summary.TotalTasks != 40 || summary.TotalMinutes != 1200 {
		t.Fatalf("unexpected summary %#v", summary)
	}
	if summary.AverageDailyMinutes != 1200/14 {
		t.Fatalf("unexpected average daily minutes %d", summary.AverageDailyMinutes)
	}
}

func TestGenerateStopsAtFirstOverflow(t *testing.T) {
	tasks := []atlas.StudyTask{
		task("a", atlas.KindPractice, atlas.PriorityHigh, atlas.DifficultyEasy, 60),
		task("big", atlas.KindPractice, atlas.PriorityHigh, atlas.DifficultyEasy, 100),
		task("small", atlas.KindPractice, atlas.PriorityLow, atlas.DifficultyEasy, 10),
	}

	plan := Generate(tasks, Options{Days: 2, Start: testStart(), Rand: NewRand(1)})
	day0 := plan.Days[0].Tasks
	if len(day0) != 1 || day0[0].ID != "a" {
		t.Fatalf("expected only the first task on day 0, got %v", ids(day0))
	}
	day1 := plan.Days[1].Tasks
	if len(day1) != 2 || day1[0].ID != "big" || day1[1].ID != "small" {
		t.Fatalf("expected big then small on day 1, got %v", ids(day1))
	}
}

func TestGenerateReviewWindow(t *testing.T) {
	var tasks []atlas.StudyTask
	for i := 0; i < 20; i++ {
		tasks = append(tasks, task(fmt.Sprintf("n%02d", i), atlas.KindNewTopic, atlas.PriorityHigh, atlas.DifficultyEasy, 20))
	}

	for seed := uint64(0); seed < 25; seed++ {
		plan := Generate(tasks, Options{Start: testStart(), Rand: NewRand(seed)})

		placedOn := map[string]int{}
		for d, day := range plan.Days {
			reviewMinutes := 0
			for _, tk := range day.Tasks {
				placedOn[tk.ID] = d
				if tk.Kind == atlas.KindReview {
					reviewMinutes += tk.EstimatedMinutes
				}
			}
			if float64(reviewMinutes) > float64(DefaultDailyBudgetMinutes)*DefaultReviewShare {
				t.Fatalf("seed %d: day %d review minutes %d exceed review budget", seed, d, reviewMinutes)
			}
			if day.Minutes() > DefaultDailyBudgetMinutes {
				t.Fatalf("seed %d: day %d exceeds budget", seed, d)
			}
		}

		reviews := 0
		for id, d := range placedOn {
			if !strings.HasSuffix(id, "_review") {
				continue
			}
			reviews++
			source, ok := placedOn[strings.TrimSuffix(id, "_review")]
			if !ok {
				t.Fatalf("seed %d: review %s without a placed source task", seed, id)
			}
			if offset := d - source; offset < MinReviewOffset || offset > MaxReviewOffset {
				t.Fatalf("seed %d: review %s placed %d days after its source", seed, id, offset)
			}
		}
		if reviews == 0 {
			t.Fatalf("seed %d: expected some reviews to be scheduled", seed)
		}
	}
}

func TestGenerateReviewShape(t *testing.T) {
	tasks := []atlas.StudyTask{task("n", atlas.KindNewTopic, atlas.PriorityHigh, atlas.DifficultyEasy, 40)}
	tasks[0].Files = []string{"a.py", "a.cpp"}

	plan := Generate(tasks, Options{Start: testStart(), Rand: NewRand(7)})
	var review *atlas.StudyTask
	for _, day := range plan.Days {
		for i := range day.Tasks {
			if day.Tasks[i].ID == "n_review" {
				review = &day.Tasks[i]
			}
		}
	}
	if review == nil {
		t.Fatalf("expected review of n to be scheduled")
	}
	if review.Title != "n (Review)" || review.Kind != atlas.KindReview || review.Priority != atlas.PriorityLow {
		t.Fatalf("unexpected review %#v", review)
	}
	// 40 * 0.5 = 20 when derived, 20 * 0.7 = 14 when placed.
	if review.EstimatedMinutes != 14 {
		t.Fatalf("expected 14 minutes, got %d", review.EstimatedMinutes)
	}
	if !reflect.DeepEqual(review.Problems, []string{"a", "b"}) {
		t.Fatalf("expected first two problems, got %v", review.Problems)
	}
	if review.Notes != "Review of S" {
		t.Fatalf("unexpected notes %q", review.Notes)
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	var tasks []atlas.StudyTask
	for i := 0; i < 12; i++ {
		tasks = append(tasks, task(fmt.Sprintf("n%02d", i), atlas.KindNewTopic, atlas.PriorityHigh, atlas.DifficultyEasy, 25))
	}

	a := Generate(tasks, Options{Start: testStart(), Rand: NewRand(42)})
	b := Generate(tasks, Options{Start: testStart(), Rand: NewRand(42)})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical plans for identical seeds")
	}
}

func TestGenerateEmpty(t *testing.T) {
	plan := Generate(nil, Options{Days: 3, Start: testStart(), Rand: NewRand(1)})
	if len(plan.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(plan.Days))
	}
	for _, day := range plan.Days {
		if day.Tasks == nil || len(day.Tasks) != 0 {
			t.Fatalf("expected empty non-nil task list, got %#v", day.Tasks)
		}
	}
	if s := plan.Summary(); s.TotalTasks != 0 || s.AverageTasksPerDay != 0 {
		t.Fatalf("unexpected summary %#v", s)
	}
}

func TestOversized(t *testing.T) {
	tasks := []atlas.StudyTask{
		task("fits", atlas.KindPractice, atlas.PriorityHigh, atlas.DifficultyEasy, 120),
		task("too-big", atlas.KindPractice, atlas.PriorityHigh, atlas.DifficultyEasy, 121),
	}
	got := Oversized(tasks, 120)
	if len(got) != 1 || got[0].ID != "too-big" {
		t.Fatalf("unexpected oversized tasks %v", ids(got))
	}
}

func ids(tasks []atlas.StudyTask) []string {
	out := make([]string, 0, len(tasks))
	for _, tk := range tasks {
		out = append(out, tk.ID)
	}
	return out
}

func TestSynthesizeKeepsSameNamedProblemsInDifferentSubsections(t *testing.T) {
	primary := []atlas.RawRecord{
		{Path: "S/Easy/01.py", SectionKey: "S", Subsection: "Easy", FileName: "01.py", RawName: "01", Title: "Two Sum"},
		{Path: "S/Hard/01.py", SectionKey: "S", Subsection: "Hard", FileName: "01.py", RawName: "01", Title: "Median"},
	}
	matches := matcher.Match(primary, nil)

	entry := atlas.TopicIndexEntry{ID: "s", Title: "Sorting"}
	for _, m := range matches {
		entry.RelatedProblemIDs = append(entry.RelatedProblemIDs, m.ProblemID)
	}

	var scheduled []string
	for _, task := range Synthesize([]atlas.TopicIndexEntry{entry}, matches) {
		scheduled = append(scheduled, task.Problems...)
	}
	if !reflect.DeepEqual(scheduled, []string{"Two Sum", "Median"}) {
		t.Fatalf("expected both problems to be scheduled once, got %v", scheduled)
	}
}
