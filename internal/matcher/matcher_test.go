package matcher

import (
	"math"
	"testing"

	"github.com/a2zdsa/atlas/internal/atlas"
)

func primaryRec(section, file, name string) atlas.RawRecord {
	return atlas.RawRecord{
		Path:       section + "/" + file,
		SectionKey: section,
		FileName:   file,
		RawName:    name,
		Title:      name,
	}
}

func secondaryRec(section, sub, file, name string) atlas.SecondaryRecord {
	return atlas.SecondaryRecord{
		RawRecord: atlas.RawRecord{
			Path:       section + "/" + sub + "/" + file,
			SectionKey: section,
			Subsection: sub,
			FileName:   file,
			RawName:    name,
			Title:      name,
		},
		Metadata: atlas.Metadata{Approach: "approach of " + name, TimeComplexity: "O(n)"},
	}
}

func TestMatchExact(t *testing.T) {
	primary := []atlas.RawRecord{primaryRec("Step 03 - Arrays", "01_two_sum.py", "01_two_sum")}
	secondary := []atlas.SecondaryRecord{secondaryRec("01.Arrays", "Easy", "1.two-sum.cpp", "1.two-sum")}

	got := Match(primary, secondary)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d: %#v", len(got), got)
	}

	m := got[0]
	if m.Status != atlas.MatchExact {
		t.Fatalf("expected exact match, got %s", m.Status)
	}
	if m.SecondaryFilePath != secondary[0].Path {
		t.Fatalf("expected secondary %s, got %s", secondary[0].Path, m.SecondaryFilePath)
	}
	if m.ApproachSummary != "approach of 1.two-sum" || m.TimeComplexity != "O(n)" {
		t.Fatalf("expected metadata to be copied, got %#v", m)
	}
	if m.ProblemID != "step_03_-_arrays_01_two_sum" {
		t.Fatalf("unexpected problem id %q", m.ProblemID)
	}
	if m.SectionPath != "Step 03 - Arrays" {
		t.Fatalf("unexpected section path %q", m.SectionPath)
	}
}

func TestMatchApproximate(t *testing.T) {
	primary := []atlas.RawRecord{primaryRec("S", "a.py", "merge sorted array")}
	secondary := []atlas.SecondaryRecord{
		secondaryRec("X", "Easy", "b.cpp", "merge two sorted arrays"),
	}

	got := Match(primary, secondary)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Status != atlas.MatchApproximate {
		t.Fatalf("expected approximate, got %s", got[0].Status)
	}
}

func TestMatchBelowThresholdIsMissing(t *testing.T) {
	primary := []atlas.RawRecord{primaryRec("S", "a.py", "two sum")}
	secondary := []atlas.SecondaryRecord{secondaryRec("X", "Easy", "b.cpp", "three sum closest")}

	got := Match(primary, secondary)
	if len(got) != 2 {
		t.Fatalf("expected primary record plus orphan, got %d", len(got))
	}
	if got[0].Status != atlas.MatchMissing || got[0].HasSecondary() {
		t.Fatalf("expected unmatched primary, got %#v", got[0])
	}
	orphan := got[1]
	if orphan.HasPrimary() || orphan.Status != atlas.MatchMissing {
		t.Fatalf("expected orphan secondary record, got %#v", orphan)
	}
	if orphan.SectionPath != "X/Easy" {
		t.Fatalf("expected orphan section path X/Easy, got %q", orphan.SectionPath)
	}
	if orphan.ProblemID != "cpp_x_b" {
		t.Fatalf("unexpected orphan id %q", orphan.ProblemID)
	}
}

func TestMatchThresholdIsStrict(t *testing.T) {
	// Three shared tokens out of ten distinct tokens score exactly 0.3.
	primary := []atlas.RawRecord{primaryRec("S", "a.py", "s1 s2 s3 a1 a2 a3")}
	secondary := []atlas.SecondaryRecord{secondaryRec("X", "Y", "b.cpp", "s1 s2 s3 b1 b2 b3 b4")}

	if score := Jaccard([]string{"s1", "s2", "s3", "a1", "a2", "a3"}, []string{"s1", "s2", "s3", "b1", "b2", "b3", "b4"}); score != Threshold {
		t.Fatalf("expected score %v at the boundary, got %v", Threshold, score)
	}

	got := Match(primary, secondary)
	if got[0].Status != atlas.MatchMissing {
		t.Fatalf("expected missing at exactly the threshold, got %s", got[0].Status)
	}
}

func TestMatchClaimsEachSecondaryOnce(t *testing.T) {
	primary := []atlas.RawRecord{
		primaryRec("S", "1.py", "two sum"),
		primaryRec("S", "2.py", "two sum"),
		primaryRec("S", "3.py", "two sum"),
	}
	secondary := []atlas.SecondaryRecord{
		secondaryRec("X", "Easy", "a.cpp", "two sum"),
		secondaryRec("X", "Medium", "b.cpp", "two sum"),
	}

	got := Match(primary, secondary)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].SecondaryFilePath != secondary[0].Path || got[1].SecondaryFilePath != secondary[1].Path {
		t.Fatalf("expected candidates in encounter order, got %q and %q", got[0].SecondaryFilePath, got[1].SecondaryFilePath)
	}
	if got[2].Status != atlas.MatchMissing {
		t.Fatalf("expected third primary to be missing, got %s", got[2].Status)
	}

	if err := atlas.ValidateMatches(primary, secondary, got); err != nil {
		t.Fatalf("ValidateMatches: %v", err)
	}
}

func TestMatchApproximateClaimsOnlyWinner(t *testing.T) {
	// The first bucket scores above threshold but lower than the second.
	// Only the second bucket's candidate may be claimed.
	primary := []atlas.RawRecord{
		primaryRec("S", "1.py", "longest common prefix"),
		primaryRec("S", "2.py", "longest common subsequence"),
	}
	secondary := []atlas.SecondaryRecord{
		secondaryRec("X", "Easy", "a.cpp", "longest common subsequence"),
		secondaryRec("X", "Easy", "b.cpp", "longest common prefix string"),
	}

	got := Match(primary, secondary)
	if got[0].SecondaryFilePath != secondary[1].Path {
		t.Fatalf("expected best bucket to win, got %q", got[0].SecondaryFilePath)
	}
	if got[1].SecondaryFilePath != secondary[0].Path || got[1].Status != atlas.MatchExact {
		t.Fatalf("expected lower-scoring bucket to stay available, got %q (%s)", got[1].SecondaryFilePath, got[1].Status)
	}
	if err := atlas.ValidateMatches(primary, secondary, got); err != nil {
		t.Fatalf("ValidateMatches: %v", err)
	}
}

func TestMatchApproximateTieKeepsEncounterOrder(t *testing.T) {
	primary := []atlas.RawRecord{primaryRec("S", "1.py", "reverse list")}
	secondary := []atlas.SecondaryRecord{
		secondaryRec("X", "Easy", "a.cpp", "reverse array"),
		secondaryRec("X", "Easy", "b.cpp", "sort list"),
	}

	got := Match(primary, secondary)
	if got[0].SecondaryFilePath != secondary[0].Path {
		t.Fatalf("expected first bucket on tie, got %q", got[0].SecondaryFilePath)
	}
}

func TestMatchEmptyInputs(t *testing.T) {
	if got := Match(nil, nil); len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}

	secondary := []atlas.SecondaryRecord{secondaryRec("X", "Easy", "a.cpp", "two sum")}
	got := Match(nil, secondary)
	if len(got) != 1 || got[0].HasPrimary() {
		t.Fatalf("expected single orphan record, got %#v", got)
	}
}

func TestMatchOrphanPrefixOption(t *testing.T) {
	secondary := []atlas.SecondaryRecord{secondaryRec("01.Arrays", "Easy", "1.two sum.cpp", "two sum")}
	got := Match(nil, secondary, WithOrphanPrefix("java"))
	if got[0].ProblemID != "java_01_arrays_1.two sum" {
		t.Fatalf("unexpected orphan id %q", got[0].ProblemID)
	}
}

func TestMatchTotality(t *testing.T) {
	primary := []atlas.RawRecord{
		primaryRec("S", "1.py", "two sum"),
		primaryRec("S", "2.py", "valid parentheses"),
		primaryRec("S", "3.py", "kth largest element"),
	}
	secondary := []atlas.SecondaryRecord{
		secondaryRec("X", "Easy", "a.cpp", "Two Sum"),
		secondaryRec("X", "Easy", "b.cpp", "kth largest element in array"),
		secondaryRec("X", "Hard", "c.cpp", "n queens"),
	}

	got := Match(primary, secondary)
	if err := atlas.ValidateMatches(primary, secondary, got); err != nil {
		t.Fatalf("ValidateMatches: %v", err)
	}

	withPrimary := 0
	for _, m := range got {
		if m.HasPrimary() {
			withPrimary++
		}
	}
	if withPrimary != len(primary) {
		t.Fatalf("expected %d records with primary files, got %d", len(primary), withPrimary)
	}
}

func TestMatchProblemIDsAreUnique(t *testing.T) {
	easy := primaryRec("S", "01.py", "01")
	easy.Path, easy.Subsection, easy.Title = "S/Easy/01.py", "Easy", "Two Sum"
	hard := primaryRec("S", "01.py", "01")
	hard.Path, hard.Subsection, hard.Title = "S/Hard/01.py", "Hard", "Median"
	flat := primaryRec("S", "01.py", "01")
	secondary := []atlas.SecondaryRecord{
		secondaryRec("X", "Easy", "b.cpp", "zzz"),
		secondaryRec("X", "Hard", "b.cpp", "yyy"),
	}

	got := Match([]atlas.RawRecord{easy, hard, flat}, secondary)
	want := []string{"s_easy_01", "s_hard_01", "s_01", "cpp_x_b", "cpp_x_b_2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ProblemID != id {
			t.Fatalf("record %d: expected id %q, got %q", i, id, got[i].ProblemID)
		}
	}
}

func TestUniqueIDsSuffixesRepeats(t *testing.T) {
	ids := make(uniqueIDs)
	got := []string{ids.take("a"), ids.take("a"), ids.take("a_2"), ids.take("a")}
	want := []string{"a", "a_2", "a_2_2", "a_3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("take %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestJaccard(t *testing.T) {
	cases := []struct {
		a, b []string
		want float64
	}{
		{[]string{"two", "sum"}, []string{"two", "sum"}, 1},
		{[]string{"two", "sum"}, []string{"three", "sum"}, 1.0 / 3.0},
		{nil, nil, 0},
		{[]string{"a"}, nil, 0},
		{[]string{"a", "b"}, []string{"b", "b", "c"}, 1.0 / 3.0},
	}
	for _, tc := range cases {
		if got := Jaccard(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Jaccard(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
