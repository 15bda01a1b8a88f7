// Package matcher pairs primary-collection solutions with secondary-collection
// solutions by normalized title.
package matcher

import (
	"fmt"
	"path"
	"strings"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/normalize"
)

// Threshold is the Jaccard score an approximate match must exceed.
const Threshold = 0.3

// DefaultOrphanPrefix prefixes the ids of unclaimed secondary records.
const DefaultOrphanPrefix = "cpp"

type options struct {
	orphanPrefix string
}

// Option customizes Match.
type Option func(*options)

// WithOrphanPrefix sets the id prefix used for unclaimed secondary records.
func WithOrphanPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.orphanPrefix = prefix
		}
	}
}

type bucket struct {
	key        string
	tokens     []string
	candidates []atlas.SecondaryRecord
}

type claims map[string]struct{}

func (c claims) has(p string) bool {
	_, ok := c[p]
	return ok
}

func (c claims) claim(p string) {
	if c.has(p) {
		panic(fmt.Sprintf("matcher: secondary file %s claimed twice", p))
	}
	c[p] = struct{}{}
}

// Match produces one record per primary input, in input order, followed by
// one orphan record per secondary input that no primary claimed. The result
// depends on input order: earlier primaries get first pick of candidates.
func Match(primary []atlas.RawRecord, secondary []atlas.SecondaryRecord, opts ...Option) []atlas.MatchRecord {
	o := options{orphanPrefix: DefaultOrphanPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	buckets, byKey := buildBuckets(secondary)
	claimed := make(claims, len(secondary))
	ids := make(uniqueIDs, len(primary)+len(secondary))
	matches := make([]atlas.MatchRecord, 0, len(primary)+len(secondary))

	for _, rec := range primary {
		title := normalize.Title(rec.RawName)

		var (
			best   *atlas.SecondaryRecord
			status = atlas.MatchMissing
		)

		if b, ok := byKey[title]; ok {
			if c := firstUnclaimed(b, claimed); c != nil {
				best = c
				status = atlas.MatchExact
			}
		}

		if best == nil {
			if c := bestApproximate(normalize.Tokens(title), buckets, claimed); c != nil {
				best = c
				status = atlas.MatchApproximate
			}
		}

		m := atlas.MatchRecord{
			ProblemID:       ids.take(PrimaryID(rec.SectionKey, rec.Subsection, rec.FileName)),
			Title:           rec.Title,
			SectionPath:     rec.SectionKey,
			Subsection:      rec.Subsection,
			PrimaryFilePath: rec.Path,
			Status:          status,
			Links:           []string{},
			Tags:            []string{},
		}
		if best != nil {
			claimed.claim(best.Path)
			m.SecondaryFilePath = best.Path
			m.ApproachSummary = best.Approach
			m.TimeComplexity = best.TimeComplexity
			m.SpaceComplexity = best.SpaceComplexity
		}
		matches = append(matches, m)
	}

	for _, rec := range secondary {
		if claimed.has(rec.Path) {
			continue
		}
		claimed.claim(rec.Path)
		matches = append(matches, atlas.MatchRecord{
			ProblemID:         ids.take(SecondaryID(o.orphanPrefix, rec.SectionKey, rec.FileName)),
			Title:             rec.Title,
			SectionPath:       rec.SectionKey + "/" + rec.Subsection,
			Subsection:        rec.Subsection,
			SecondaryFilePath: rec.Path,
			Status:            atlas.MatchMissing,
			ApproachSummary:   rec.Approach,
			TimeComplexity:    rec.TimeComplexity,
			SpaceComplexity:   rec.SpaceComplexity,
			Links:             []string{},
			Tags:              []string{},
		})
	}

	return matches
}

// buildBuckets groups secondary records by normalized title. The slice keeps
// buckets in the order their titles were first seen.
func buildBuckets(secondary []atlas.SecondaryRecord) ([]*bucket, map[string]*bucket) {
	var ordered []*bucket
	byKey := make(map[string]*bucket)
	for _, rec := range secondary {
		key := normalize.Title(rec.RawName)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{key: key, tokens: normalize.Tokens(key)}
			byKey[key] = b
			ordered = append(ordered, b)
		}
		b.candidates = append(b.candidates, rec)
	}
	return ordered, byKey
}

func firstUnclaimed(b *bucket, claimed claims) *atlas.SecondaryRecord {
	for i := range b.candidates {
		if !claimed.has(b.candidates[i].Path) {
			return &b.candidates[i]
		}
	}
	return nil
}

// bestApproximate returns the first unclaimed candidate of the highest
// scoring bucket above Threshold. Ties keep the earlier bucket.
func bestApproximate(tokens []string, buckets []*bucket, claimed claims) *atlas.SecondaryRecord {
	var (
		best      *atlas.SecondaryRecord
		bestScore float64
	)
	for _, b := range buckets {
		score := Jaccard(tokens, b.tokens)
		if score <= Threshold || score <= bestScore {
			continue
		}
		if c := firstUnclaimed(b, claimed); c != nil {
			best = c
			bestScore = score
		}
	}
	return best
}

// Jaccard returns |a ∩ b| / |a ∪ b| over the two token sets, or 0 when both
// are empty.
func Jaccard(a, b []string) float64 {
	set := make(map[string]struct{}, len(a))
	for _, tok := range a {
		set[tok] = struct{}{}
	}

	union := len(set)
	intersection := 0
	seen := make(map[string]struct{}, len(b))
	for _, tok := range b {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := set[tok]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// PrimaryID derives the problem id of a primary record from its section key,
// subsection and file name, e.g. "step_03_-_arrays_01_two_sum" or
// "step_03_-_arrays_easy_01_two_sum".
func PrimaryID(sectionKey, subsection, fileName string) string {
	id := slug(sectionKey, " ") + "_"
	if subsection != "" {
		id += slug(subsection, " ") + "_"
	}
	return id + stem(fileName)
}

// SecondaryID derives the id of an unclaimed secondary record.
func SecondaryID(prefix, sectionKey, fileName string) string {
	return prefix + "_" + slug(sectionKey, ".", " ") + "_" + stem(fileName)
}

// uniqueIDs hands out each id once; repeats get "_2", "_3", ... in the
// order they are taken.
type uniqueIDs map[string]int

func (u uniqueIDs) take(id string) string {
	n := u[id] + 1
	u[id] = n
	if n == 1 {
		return id
	}
	candidate := fmt.Sprintf("%s_%d", id, n)
	for u[candidate] > 0 {
		n++
		u[id] = n
		candidate = fmt.Sprintf("%s_%d", id, n)
	}
	u[candidate] = 1
	return candidate
}

func slug(s string, replace ...string) string {
	pairs := make([]string, 0, len(replace)*2)
	for _, r := range replace {
		pairs = append(pairs, r, "_")
	}
	return strings.ToLower(strings.NewReplacer(pairs...).Replace(s))
}

func stem(fileName string) string {
	return strings.TrimSuffix(fileName, path.Ext(fileName))
}
