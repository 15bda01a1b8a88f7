package atlas

import (
	"fmt"
)

// ValidateMatches checks the matcher output against its inputs: every primary
// record appears exactly once, every secondary path is referenced exactly
// once, and statuses are consistent with the attached files.
func ValidateMatches(primary []RawRecord, secondary []SecondaryRecord, matches []MatchRecord) error {
	primaryPaths := make(map[string]int, len(primary))
	for _, rec := range primary {
		primaryPaths[rec.Path]++
	}
	secondaryPaths := make(map[string]int, len(secondary))
	for _, rec := range secondary {
		secondaryPaths[rec.Path]++
	}

	seenPrimary := make(map[string]int, len(primary))
	seenSecondary := make(map[string]int, len(secondary))

	for _, m := range matches {
		if !m.Status.Valid() {
			return fmt.Errorf("match %s: invalid status %q", m.ProblemID, m.Status)
		}
		if !m.HasPrimary() && !m.HasSecondary() {
			return fmt.Errorf("match %s: no files attached", m.ProblemID)
		}
		if m.Status != MatchMissing && (!m.HasPrimary() || !m.HasSecondary()) {
			return fmt.Errorf("match %s: status %s requires both files", m.ProblemID, m.Status)
		}
		if m.HasPrimary() {
			seenPrimary[m.PrimaryFilePath]++
		}
		if m.HasSecondary() {
			seenSecondary[m.SecondaryFilePath]++
			if seenSecondary[m.SecondaryFilePath] > 1 {
				return fmt.Errorf("secondary file %s claimed more than once", m.SecondaryFilePath)
			}
		}
	}

	for path, want := range primaryPaths {
		if got := seenPrimary[path]; got != want {
			return fmt.Errorf("primary file %s: expected %d records, got %d", path, want, got)
		}
	}
	for path := range secondaryPaths {
		if seenSecondary[path] != 1 {
			return fmt.Errorf("secondary file %s: expected exactly one record, got %d", path, seenSecondary[path])
		}
	}
	return nil
}
