// Package search is a small in-memory full-text index over problem mappings.
// Titles, approach summaries and section paths are tokenized and stemmed
// with the Snowball english stemmer.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"

	"github.com/a2zdsa/atlas/internal/atlas"
)

// Field weights: a query term found in the title counts more than one found
// in the approach text or section path.
const (
	titleWeight    = 3
	approachWeight = 1
	sectionWeight  = 1
)

// DefaultLimit caps results when the caller passes a non-positive limit.
const DefaultLimit = 20

// Hit is one ranked search result.
type Hit struct {
	Record  atlas.MatchRecord `json:"record"`
	Matched int               `json:"matched_terms"`
	Score   int               `json:"score"`
}

type document struct {
	record atlas.MatchRecord
	terms  map[string]int
}

// Index answers keyword queries over a fixed set of mappings.
type Index struct {
	docs []document
}

// New indexes the given records.
func New(records []atlas.MatchRecord) *Index {
	idx := &Index{docs: make([]document, 0, len(records))}
	for _, record := range records {
		terms := make(map[string]int)
		addTerms(terms, record.Title, titleWeight)
		addTerms(terms, record.ApproachSummary, approachWeight)
		addTerms(terms, record.SectionPath, sectionWeight)
		idx.docs = append(idx.docs, document{record: record, terms: terms})
	}
	return idx
}

// Len returns the number of indexed records.
func (idx *Index) Len() int { return len(idx.docs) }

// Query ranks records by how many distinct query terms they contain, then by
// weighted term frequency, then by title. Records matching no term are
// omitted and an empty query returns nothing.
func (idx *Index) Query(q string, limit int) []Hit {
	if limit <= 0 {
		limit = DefaultLimit
	}
	queryTerms := Terms(q)
	if len(queryTerms) == 0 {
		return []Hit{}
	}

	hits := []Hit{}
	for _, doc := range idx.docs {
		hit := Hit{Record: doc.record}
		for _, term := range queryTerms {
			if weight, ok := doc.terms[term]; ok {
				hit.Matched++
				hit.Score += weight
			}
		}
		if hit.Matched > 0 {
			hits = append(hits, hit)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Matched != hits[j].Matched {
			return hits[i].Matched > hits[j].Matched
		}
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Record.Title < hits[j].Record.Title
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// Terms splits text into distinct lower-case stemmed terms.
func Terms(text string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, token := range tokenize(text) {
		term := stem(token)
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

func addTerms(terms map[string]int, text string, weight int) {
	for _, token := range tokenize(text) {
		if term := stem(token); term != "" {
			terms[term] += weight
		}
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}
