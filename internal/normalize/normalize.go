// Package normalize canonicalizes problem titles so that equivalent names
// from different collections compare equal.
package normalize

import (
	"regexp"
	"strings"
)

var leadingOrdinal = regexp.MustCompile(`^\d+\.?\s*`)

// Extensions lists the source-file suffixes stripped from titles.
var Extensions = []string{".py", ".cpp", ".cc", ".c", ".hpp", ".h", ".java", ".js", ".ts", ".go", ".rs", ".kt"}

var separators = strings.NewReplacer("_", " ", "-", " ")

// Title lower-cases raw, strips a leading ordinal and a trailing source-file
// extension, replaces '_' and '-' with spaces and collapses whitespace.
// The steps are repeated until the value is stable, so
// Title(Title(x)) == Title(x) for every x.
func Title(raw string) string {
	current := raw
	for {
		next := pass(current)
		if next == current {
			return next
		}
		current = next
	}
}

func pass(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = leadingOrdinal.ReplaceAllString(s, "")
	s = trimExtension(s)
	s = separators.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func trimExtension(s string) string {
	for _, ext := range Extensions {
		if strings.HasSuffix(s, ext) {
			return strings.TrimSuffix(s, ext)
		}
	}
	return s
}

// Tokens splits a normalized title into its distinct words, keeping the
// order of first occurrence.
func Tokens(normalized string) []string {
	fields := strings.Fields(normalized)
	seen := make(map[string]struct{}, len(fields))
	tokens := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}
