// Package planner turns the topic index into study tasks and lays them out
// over a fixed calendar window with spaced-repetition reviews.
package planner

import (
	"fmt"

	"github.com/a2zdsa/atlas/internal/atlas"
)

const maxChunk = 5

// ChunkSize returns how many problems go into each task of a section with n
// problems: n/3, clamped to [1, 5].
func ChunkSize(n int) int {
	return min(maxChunk, max(1, n/3))
}

// Synthesize builds tasks for every top-level index entry that has at least
// one related problem with a primary-collection file. The first chunk of a
// section is a new topic, the last is a review and the rest are practice.
func Synthesize(index []atlas.TopicIndexEntry, matches []atlas.MatchRecord) []atlas.StudyTask {
	byID := make(map[string]atlas.MatchRecord, len(matches))
	for _, m := range matches {
		if _, dup := byID[m.ProblemID]; !dup {
			byID[m.ProblemID] = m
		}
	}

	var tasks []atlas.StudyTask
	for _, entry := range index {
		if entry.IsSubsection() {
			continue
		}

		var problems []atlas.MatchRecord
		for _, id := range entry.RelatedProblemIDs {
			if m, ok := byID[id]; ok && m.HasPrimary() {
				problems = append(problems, m)
			}
		}
		if len(problems) == 0 {
			continue
		}

		size := ChunkSize(len(problems))
		var chunks [][]atlas.MatchRecord
		for start := 0; start < len(problems); start += size {
			chunks = append(chunks, problems[start:min(start+size, len(problems))])
		}

		for i, chunk := range chunks {
			kind, priority := atlas.KindPractice, atlas.PriorityMedium
			switch {
			case i == 0:
				kind, priority = atlas.KindNewTopic, atlas.PriorityHigh
			case i == len(chunks)-1:
				kind = atlas.KindReview
			}

			difficulty := EstimateDifficulty(entry.Title, chunk[0].Subsection)

			titles := make([]string, 0, len(chunk))
			files := make([]string, 0, len(chunk)*2)
			for _, m := range chunk {
				titles = append(titles, m.Title)
				files = append(files, m.PrimaryFilePath)
				if m.HasSecondary() {
					files = append(files, m.SecondaryFilePath)
				}
			}

			tasks = append(tasks, atlas.StudyTask{
				ID:               fmt.Sprintf("%s_task_%d", entry.ID, i+1),
				Title:            fmt.Sprintf("%s - Part %d", entry.Title, i+1),
				Kind:             kind,
				Section:          entry.Title,
				Problems:         titles,
				EstimatedMinutes: MinutesPerProblem(difficulty, kind) * len(chunk),
				Priority:         priority,
				Files:            files,
				Notes:            fmt.Sprintf("%d problems, %s difficulty", len(chunk), difficulty),
				Difficulty:       difficulty,
			})
		}
	}
	return tasks
}
