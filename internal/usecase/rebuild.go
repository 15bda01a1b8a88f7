package usecase

import (
	"context"
	"fmt"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/coverage"
	"github.com/a2zdsa/atlas/internal/database"
	"github.com/a2zdsa/atlas/internal/git"
	"github.com/a2zdsa/atlas/internal/index"
	"github.com/a2zdsa/atlas/internal/matcher"
	"github.com/a2zdsa/atlas/internal/scan"
)

// RebuildOptions controls a rebuild.
type RebuildOptions struct {
	// RegeneratePlan also writes a fresh study plan from the new index.
	RegeneratePlan bool
	Plan           PlanOptions
}

// RebuildResult summarizes what a rebuild wrote.
type RebuildResult struct {
	Run       database.RunRecord `json:"run"`
	Stats     atlas.Stats        `json:"stats"`
	Topics    int                `json:"topics"`
	Plan      *atlas.PlanSummary `json:"plan,omitempty"`
	Oversized []atlas.StudyTask  `json:"oversized_tasks,omitempty"`
}

// Rebuild scans both collections, matches them, and rewrites the topic index
// and mapping file. Concurrent rebuilds are serialized.
func (a *Atlas) Rebuild(ctx context.Context, opts RebuildOptions) (*RebuildResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	started := a.now()
	log := a.log.With("primary_root", a.settings.PrimaryRoot, "secondary_root", a.settings.SecondaryRoot)
	log.Info("rebuild started")

	scanner := scan.Scanner{
		PrimaryRoot:   a.settings.PrimaryRoot,
		SecondaryRoot: a.settings.SecondaryRoot,
		PrimaryExt:    a.settings.PrimaryExt,
		SecondaryExt:  a.settings.SecondaryExt,
	}
	scanned, err := scanner.Scan(ctx)
	if err != nil {
		if scan.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w", ErrMissingInput, err)
		}
		return nil, err
	}
	log.Debug("collections scanned", "primary", len(scanned.Primary), "secondary", len(scanned.Secondary))

	matches := matcher.Match(scanned.Primary, scanned.Secondary, matcher.WithOrphanPrefix(a.settings.OrphanPrefix))
	if err := atlas.ValidateMatches(scanned.Primary, scanned.Secondary, matches); err != nil {
		return nil, fmt.Errorf("mapping failed validation: %w", err)
	}

	sections := index.CountSections(a.catalog.Sections, scanned.Primary, scanned.Secondary)
	entries := index.Build(sections, matches, index.Options{
		PrimaryLabel:   a.settings.PrimaryLabel,
		SecondaryLabel: a.settings.SecondaryLabel,
		Subsections:    a.settings.IncludeSubsections(),
	})

	indexHash, err := a.store.WriteIndex(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to write topic index: %w", err)
	}
	mappingHash, err := a.store.WriteMappings(ctx, matches)
	if err != nil {
		return nil, fmt.Errorf("failed to write mappings: %w", err)
	}

	stats := coverage.Summarize(entries, matches)
	result := &RebuildResult{Stats: stats, Topics: len(entries)}

	run := database.RunRecord{
		StartedAt:          started,
		PrimaryCount:       len(scanned.Primary),
		SecondaryCount:     len(scanned.Secondary),
		ExactCount:         stats.ExactMatches,
		ApproximateCount:   stats.ApproximateMatches,
		MissingCount:       countStatus(matches, atlas.MatchMissing),
		CoveragePercentage: stats.CoveragePercentage,
		IndexHash:          indexHash,
		MappingHash:        mappingHash,
		PrimaryRevision:    revision(a.settings.PrimaryRoot),
		SecondaryRevision:  revision(a.settings.SecondaryRoot),
	}

	if opts.RegeneratePlan {
		plan, oversized := a.generate(entries, matches, opts.Plan)
		planHash, err := a.store.WritePlan(ctx, plan)
		if err != nil {
			return nil, fmt.Errorf("failed to write study plan: %w", err)
		}
		summary := plan.Summary()
		result.Plan = &summary
		result.Oversized = oversized
		run.PlanHash = planHash
	}

	run.FinishedAt = a.now()
	recorded, err := a.history.Record(ctx, run)
	if err != nil {
		return nil, err
	}
	result.Run = recorded

	log.Info("rebuild finished",
		"run_id", recorded.ID,
		"topics", len(entries),
		"problems", stats.TotalProblems,
		"exact", stats.ExactMatches,
		"approximate", stats.ApproximateMatches,
		"coverage", stats.CoveragePercentage,
	)
	return result, nil
}

// LastRebuild returns the most recent rebuild, or ErrNotFound before the first one.
func (a *Atlas) LastRebuild(ctx context.Context) (*database.RunRecord, error) {
	run, err := a.history.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrNotFound
	}
	return run, nil
}

// History lists past rebuilds, newest first.
func (a *Atlas) History(ctx context.Context, limit int) ([]database.RunRecord, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	return a.history.List(ctx, limit)
}

func countStatus(matches []atlas.MatchRecord, status atlas.MatchStatus) int {
	n := 0
	for _, m := range matches {
		if m.Status == status {
			n++
		}
	}
	return n
}

func revision(dir string) string {
	if dir == "" {
		return ""
	}
	info, err := git.GetRepoInfo(dir)
	if err != nil {
		return ""
	}
	return info.Revision()
}
