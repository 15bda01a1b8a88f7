package planner

import (
	"strings"

	"github.com/a2zdsa/atlas/internal/atlas"
)

var (
	easySectionWords = []string{"basic", "learn", "intro"}
	advancedSections = []string{"dynamic programming", "graphs", "trees", "tries", "strings [advanced]"}
)

// EstimateDifficulty guesses a difficulty from a section title and an
// optional subsection name. Introductory sections are easy, an explicit
// easy/medium/hard subsection wins next, advanced topics are hard, and
// everything else is medium.
func EstimateDifficulty(section, subsection string) atlas.Difficulty {
	title := strings.ToLower(section)
	if containsAny(title, easySectionWords) {
		return atlas.DifficultyEasy
	}

	sub := strings.ToLower(subsection)
	switch {
	case strings.Contains(sub, "easy"):
		return atlas.DifficultyEasy
	case strings.Contains(sub, "medium"):
		return atlas.DifficultyMedium
	case strings.Contains(sub, "hard"):
		return atlas.DifficultyHard
	}

	if containsAny(title, advancedSections) {
		return atlas.DifficultyHard
	}
	return atlas.DifficultyMedium
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

var baseMinutes = map[atlas.Difficulty]float64{
	atlas.DifficultyEasy:   15,
	atlas.DifficultyMedium: 30,
	atlas.DifficultyHard:   45,
}

var kindMultiplier = map[atlas.TaskKind]float64{
	atlas.KindNewTopic: 1.5,
	atlas.KindReview:   0.7,
	atlas.KindPractice: 1.0,
}

// MinutesPerProblem is the truncated per-problem estimate for a difficulty
// and task kind. Unknown values fall back to medium and a multiplier of 1.
func MinutesPerProblem(d atlas.Difficulty, kind atlas.TaskKind) int {
	base, ok := baseMinutes[d]
	if !ok {
		base = baseMinutes[atlas.DifficultyMedium]
	}
	mult, ok := kindMultiplier[kind]
	if !ok {
		mult = 1.0
	}
	return int(base * mult)
}
