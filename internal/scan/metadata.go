package scan

import (
	"regexp"
	"strings"

	"github.com/a2zdsa/atlas/internal/atlas"
)

var (
	questionPattern = regexp.MustCompile(`(?s)/\*\s*QUESTION:-\s*(.*?)\*/`)
	approachPattern = regexp.MustCompile(`(?s)/\*\s*APPROACH:-\s*(.*?)\*/`)
	timePattern     = regexp.MustCompile(`//\s*TIME COMPLEXITY\s*=\s*(.+)`)
	spacePattern    = regexp.MustCompile(`//\s*SPACE COMPLEXITY\s*=\s*(.+)`)
)

// ExtractMetadata reads the structured comments at the top of a solution:
//
//	/* QUESTION:- ... */
//	/* APPROACH:- ... */
//	// TIME COMPLEXITY = ...
//	// SPACE COMPLEXITY = ...
//
// Missing comments leave the matching field empty.
func ExtractMetadata(contents string) atlas.Metadata {
	return atlas.Metadata{
		Question:        firstGroup(questionPattern, contents),
		Approach:        firstGroup(approachPattern, contents),
		TimeComplexity:  firstGroup(timePattern, contents),
		SpaceComplexity: firstGroup(spacePattern, contents),
	}
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
