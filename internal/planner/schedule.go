package planner

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/a2zdsa/atlas/internal/atlas"
)

// Defaults for Generate.
const (
	DefaultDays               = 14
	DefaultDailyBudgetMinutes = 120
	DefaultReviewShare        = 0.3
	MinReviewOffset           = 3
	MaxReviewOffset           = 7
)

const (
	reviewDerivedShare = 0.5
	reviewPlacedShare  = 0.7
	reviewProblemLimit = 2
	reviewTitleSuffix  = " (Review)"
)

// Options configures Generate. Zero values take the defaults above; a nil
// Rand is seeded from the clock.
type Options struct {
	Days               int
	DailyBudgetMinutes int
	ReviewShare        float64
	Start              time.Time
	Rand               *rand.Rand
}

func (o Options) withDefaults() Options {
	if o.Days <= 0 {
		o.Days = DefaultDays
	}
	if o.DailyBudgetMinutes <= 0 {
		o.DailyBudgetMinutes = DefaultDailyBudgetMinutes
	}
	if o.ReviewShare <= 0 || o.ReviewShare > 1 {
		o.ReviewShare = DefaultReviewShare
	}
	if o.Start.IsZero() {
		o.Start = time.Now()
	}
	if o.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		o.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return o
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type pendingReview struct {
	task     atlas.StudyTask
	due      int
	deadline int
}

// SortTasks orders tasks by priority (high first), then difficulty (easy
// first), then estimated minutes (short first). Equal tasks keep input order.
func SortTasks(tasks []atlas.StudyTask) []atlas.StudyTask {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b atlas.StudyTask) int {
		if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Difficulty.Rank(), b.Difficulty.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.EstimatedMinutes, b.EstimatedMinutes)
	})
	return sorted
}

// Generate lays tasks out over opts.Days consecutive days starting at
// opts.Start.
//
// Each day first drains due reviews in queue order while they fit within
// ReviewShare of the budget, then takes backlog tasks in sorted order until
// the next one would exceed the budget. Placing a new-topic task queues a
// review 3 to 7 days later; reviews falling outside the window are dropped,
// as are reviews that could not be placed by their deadline.
func Generate(tasks []atlas.StudyTask, opts Options) atlas.StudyPlan {
	opts = opts.withDefaults()
	budget := opts.DailyBudgetMinutes
	reviewBudget := float64(budget) * opts.ReviewShare

	backlog := SortTasks(tasks)
	next := 0
	var queue []pendingReview

	start := time.Date(opts.Start.Year(), opts.Start.Month(), opts.Start.Day(), 0, 0, 0, 0, opts.Start.Location())
	plan := atlas.StudyPlan{Days: make([]atlas.DayPlan, 0, opts.Days)}

	for day := 0; day < opts.Days; day++ {
		date := start.AddDate(0, 0, day)
		placed := []atlas.StudyTask{}
		used := 0

		kept := queue[:0]
		blocked := false
		for _, r := range queue {
			if r.due > day || blocked {
				kept = append(kept, r)
				continue
			}
			review := r.task
			review.EstimatedMinutes = int(float64(review.EstimatedMinutes) * reviewPlacedShare)
			review.Title += reviewTitleSuffix
			if float64(used+review.EstimatedMinutes) <= reviewBudget {
				placed = append(placed, review)
				used += review.EstimatedMinutes
				continue
			}
			blocked = true
			kept = append(kept, r)
		}
		queue = slices.DeleteFunc(kept, func(r pendingReview) bool {
			return r.due <= day && r.deadline <= day
		})

		for next < len(backlog) && used < budget {
			task := backlog[next]
			if used+task.EstimatedMinutes > budget {
				break
			}
			placed = append(placed, task)
			used += task.EstimatedMinutes
			next++

			if task.Kind != atlas.KindNewTopic {
				continue
			}
			due := day + MinReviewOffset + opts.Rand.IntN(MaxReviewOffset-MinReviewOffset+1)
			if due < opts.Days {
				queue = append(queue, pendingReview{
					task:     deriveReview(task),
					due:      due,
					deadline: day + MaxReviewOffset,
				})
			}
		}

		plan.Days = append(plan.Days, atlas.DayPlan{
			Date:    date,
			DayName: date.Weekday().String(),
			Tasks:   placed,
		})
	}

	return plan
}

func deriveReview(task atlas.StudyTask) atlas.StudyTask {
	problems := task.Problems
	if len(problems) > reviewProblemLimit {
		problems = problems[:reviewProblemLimit]
	}
	return atlas.StudyTask{
		ID:               task.ID + "_review",
		Title:            task.Title,
		Kind:             atlas.KindReview,
		Section:          task.Section,
		Problems:         slices.Clone(problems),
		EstimatedMinutes: int(float64(task.EstimatedMinutes) * reviewDerivedShare),
		Priority:         atlas.PriorityLow,
		Files:            slices.Clone(task.Files),
		Notes:            "Review of " + task.Section,
		Difficulty:       task.Difficulty,
	}
}

// Oversized returns the tasks whose estimate alone exceeds the daily budget.
// Such a task stops backlog placement for the rest of the window.
func Oversized(tasks []atlas.StudyTask, dailyBudgetMinutes int) []atlas.StudyTask {
	if dailyBudgetMinutes <= 0 {
		dailyBudgetMinutes = DefaultDailyBudgetMinutes
	}
	var out []atlas.StudyTask
	for _, t := range tasks {
		if t.EstimatedMinutes > dailyBudgetMinutes {
			out = append(out, t)
		}
	}
	return out
}
