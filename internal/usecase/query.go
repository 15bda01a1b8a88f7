package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/coverage"
	"github.com/a2zdsa/atlas/internal/search"
)

// TopicFilter narrows Topics. Section is a case-insensitive substring of the
// topic title; Status must be a known topic status when set.
type TopicFilter struct {
	Section            string
	Status             atlas.TopicStatus
	IncludeSubsections bool
}

// Topics lists index entries sorted by step number. A missing index reads as empty.
func (a *Atlas) Topics(ctx context.Context, filter TopicFilter) ([]atlas.TopicIndexEntry, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown topic status %q", ErrInvalidInput, filter.Status)
	}

	entries, err := a.readIndex(ctx, false)
	if err != nil {
		return nil, err
	}

	section := strings.ToLower(filter.Section)
	out := []atlas.TopicIndexEntry{}
	for _, entry := range entries {
		if entry.IsSubsection() && !filter.IncludeSubsections {
			continue
		}
		if section != "" && !strings.Contains(strings.ToLower(entry.Title), section) {
			continue
		}
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StepNumber < out[j].StepNumber
	})
	return out, nil
}

// Topic returns the index entry with the given id.
func (a *Atlas) Topic(ctx context.Context, id string) (*atlas.TopicIndexEntry, error) {
	entries, err := a.readIndex(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.ID == id {
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("topic %q: %w", id, ErrNotFound)
}

// MappingFilter narrows Mappings. Section is a case-insensitive substring of
// the section path.
type MappingFilter struct {
	Status  atlas.MatchStatus
	Section string
}

// Mappings lists match records in file order. A missing mapping file reads as empty.
func (a *Atlas) Mappings(ctx context.Context, filter MappingFilter) ([]atlas.MatchRecord, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown match status %q", ErrInvalidInput, filter.Status)
	}

	records, err := a.readMappings(ctx, false)
	if err != nil {
		return nil, err
	}

	section := strings.ToLower(filter.Section)
	out := []atlas.MatchRecord{}
	for _, record := range records {
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		if section != "" && !strings.Contains(strings.ToLower(record.SectionPath), section) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// Mapping returns the match record with the given problem id.
func (a *Atlas) Mapping(ctx context.Context, id string) (*atlas.MatchRecord, error) {
	records, err := a.readMappings(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.ProblemID == id {
			return &record, nil
		}
	}
	return nil, fmt.Errorf("problem %q: %w", id, ErrNotFound)
}

// Coverage evaluates the index against the mappings. Both must exist.
func (a *Atlas) Coverage(ctx context.Context) (*atlas.CoverageReport, error) {
	entries, err := a.readIndex(ctx, true)
	if err != nil {
		return nil, err
	}
	records, err := a.readMappings(ctx, true)
	if err != nil {
		return nil, err
	}

	report := coverage.Evaluate(entries, records)
	return &report, nil
}

// Stats summarizes the artifacts and the completed task count. Missing
// artifacts count as empty.
func (a *Atlas) Stats(ctx context.Context) (*atlas.Stats, error) {
	entries, err := a.readIndex(ctx, false)
	if err != nil {
		return nil, err
	}
	records, err := a.readMappings(ctx, false)
	if err != nil {
		return nil, err
	}

	stats := coverage.Summarize(entries, records)
	done, err := a.progress.List(ctx)
	if err != nil {
		return nil, err
	}
	stats.CompletedTasks = len(done)
	return &stats, nil
}

// Search finds problems by stemmed keywords in their titles, approach
// summaries and section paths.
func (a *Atlas) Search(ctx context.Context, query string, limit int) ([]search.Hit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}
	records, err := a.readMappings(ctx, false)
	if err != nil {
		return nil, err
	}
	return search.New(records).Query(query, limit), nil
}
