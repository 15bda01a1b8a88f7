// Package index builds the topic index: one entry per course section with
// the problems and files mapped to it.
package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/catalog"
)

// Section is a catalog section with the number of files found for it in
// each collection.
type Section struct {
	catalog.Section
	PrimaryCount   int
	SecondaryCount int
}

// Options controls index construction.
type Options struct {
	PrimaryLabel   string
	SecondaryLabel string
	// Subsections adds a placeholder row after each section for every
	// catalog subsection.
	Subsections bool
}

// DefaultOptions labels the collections Python and C++ and emits subsection rows.
func DefaultOptions() Options {
	return Options{PrimaryLabel: "Python", SecondaryLabel: "C++", Subsections: true}
}

// CountSections attaches per-collection file counts to the catalog sections.
// Primary records are counted by SectionKey == PrimaryKey and secondary
// records by SectionKey == SecondaryKey.
func CountSections(catalogSections []catalog.Section, primary []atlas.RawRecord, secondary []atlas.SecondaryRecord) []Section {
	primaryCounts := make(map[string]int)
	for _, rec := range primary {
		primaryCounts[rec.SectionKey]++
	}
	secondaryCounts := make(map[string]int)
	for _, rec := range secondary {
		secondaryCounts[rec.SectionKey]++
	}

	sections := make([]Section, 0, len(catalogSections))
	for _, cs := range catalogSections {
		s := Section{Section: cs, PrimaryCount: primaryCounts[cs.PrimaryKey]}
		if cs.SecondaryKey != "" {
			s.SecondaryCount = secondaryCounts[cs.SecondaryKey]
		}
		sections = append(sections, s)
	}
	return sections
}

// Build produces the topic index sorted by step number. Matches are grouped by
// the first segment of their section path and attached to the section whose
// PrimaryKey equals that segment.
func Build(sections []Section, matches []atlas.MatchRecord, opts Options) []atlas.TopicIndexEntry {
	bySection := make(map[string][]atlas.MatchRecord)
	for _, m := range matches {
		key, _, _ := strings.Cut(m.SectionPath, "/")
		bySection[key] = append(bySection[key], m)
	}

	entries := make([]atlas.TopicIndexEntry, 0, len(sections))
	for _, s := range sections {
		related := []string{}
		files := []string{}
		for _, m := range bySection[s.PrimaryKey] {
			related = append(related, m.ProblemID)
			if m.HasPrimary() {
				files = append(files, m.PrimaryFilePath)
			}
			if m.HasSecondary() {
				files = append(files, m.SecondaryFilePath)
			}
		}

		path := fmt.Sprintf("Step %02d - %s", s.Step, s.Title)
		status := Status(s.PrimaryCount, s.SecondaryCount)
		entries = append(entries, atlas.TopicIndexEntry{
			ID:                s.ID,
			Title:             s.Title,
			Path:              path,
			StepNumber:        s.Step,
			Tags:              nonNil(s.Topics),
			SourceLinks:       sourceLinks(s.SourceURL),
			RelatedProblemIDs: related,
			LocalFilePaths:    files,
			PrimaryCount:      s.PrimaryCount,
			SecondaryCount:    s.SecondaryCount,
			Notes:             fmt.Sprintf("%s: %d files, %s: %d files", opts.PrimaryLabel, s.PrimaryCount, opts.SecondaryLabel, s.SecondaryCount),
			Status:            status,
		})

		if !opts.Subsections {
			continue
		}
		for i, sub := range s.Subsections {
			entries = append(entries, atlas.TopicIndexEntry{
				ID:                fmt.Sprintf("%s_sub%d", s.ID, i+1),
				ParentID:          s.ID,
				Title:             s.Title + " - " + sub,
				Path:              path + "/" + sub,
				StepNumber:        s.Step,
				Tags:              nonNil(s.Topics),
				SourceLinks:       sourceLinks(s.SourceURL),
				RelatedProblemIDs: []string{},
				LocalFilePaths:    []string{},
				Notes:             "Subsection of " + s.Title,
				Status:            status,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StepNumber < entries[j].StepNumber
	})
	return entries
}

// Status derives a section's availability from its per-collection counts.
func Status(primaryCount, secondaryCount int) atlas.TopicStatus {
	switch {
	case primaryCount > 0 && secondaryCount > 0:
		return atlas.TopicAvailable
	case primaryCount > 0 || secondaryCount > 0:
		return atlas.TopicPartial
	default:
		return atlas.TopicMissing
	}
}

func sourceLinks(url string) []string {
	if url == "" {
		return []string{}
	}
	return []string{url}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
