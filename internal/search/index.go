package search

import (
	"math"
	"sort"
	"strings"

	"github.com/huffmanks/movie-picker/internal/domain"
)

// Field weights. Title dominates; prose and people fields contribute less.
const (
	weightTitle       = 0.7
	weightDescription = 0.2
	weightActors      = 0.1
	weightGenre       = 0.1
)

// DefaultThreshold is the per-field acceptance cutoff on the 0-1 scale
// (0 = perfect match). Matches scoring above it are treated as noise.
const DefaultThreshold = 0.3

// scoreEpsilon floors normalized field scores so weighting stays meaningful
// on perfect matches (an exact hit on a low-weight field must not tie an
// exact title hit).
const scoreEpsilon = 0.001

// Match pairs an item with its relevance score. Lower is better; 0 is a
// perfect match.
type Match struct {
	Item  *domain.MediaItem
	Score float64
}

// document holds the pre-tokenized searchable fields of one item
type document struct {
	title       []token
	description []token
	actors      []token
	genre       []token
}

// Index is an immutable fuzzy index over one catalog snapshot. The catalog
// is static per session, so there are no incremental updates: switching
// catalogs means building a fresh Index.
type Index struct {
	items     []*domain.MediaItem
	docs      []document
	threshold float64
}

// NewIndex builds an index over items. A threshold <= 0 selects
// DefaultThreshold.
func NewIndex(items []*domain.MediaItem, threshold float64) *Index {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	docs := make([]document, len(items))
	for i, item := range items {
		docs[i] = document{
			title:       tokenize(item.Title),
			description: tokenize(item.Description),
			actors:      tokenize(strings.Join(item.Actors, " ")),
			genre:       tokenize(strings.Join(item.Genre, " ")),
		}
	}

	return &Index{items: items, docs: docs, threshold: threshold}
}

// Len returns the number of indexed items
func (idx *Index) Len() int { return len(idx.items) }

// Query returns items matching the query ranked by relevance, best first.
// An item is included when at least one field clears the threshold; its
// score combines every matching field weighted by importance. Ties keep
// catalog order (stable).
func (idx *Index) Query(query string) []Match {
	queryTokens := tokenize(strings.TrimSpace(query))
	if len(queryTokens) == 0 {
		return nil
	}

	var matches []Match
	for i, doc := range idx.docs {
		score, ok := idx.scoreDocument(queryTokens, doc)
		if !ok {
			continue
		}
		matches = append(matches, Match{Item: idx.items[i], Score: score})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score < matches[b].Score
	})
	return matches
}

// scoreDocument combines per-field match scores into one 0-1 relevance
// score using a weighted product: score = Π normalized^weight over matching
// fields. Non-matching fields contribute nothing; if no field clears the
// threshold the item is dropped.
func (idx *Index) scoreDocument(queryTokens []token, doc document) (float64, bool) {
	fields := []struct {
		tokens        []token
		weight        float64
		penalizeExtra bool
	}{
		{doc.title, weightTitle, true},
		{doc.description, weightDescription, false},
		{doc.actors, weightActors, false},
		{doc.genre, weightGenre, false},
	}

	score := 1.0
	accepted := false

	for _, f := range fields {
		if len(f.tokens) == 0 {
			continue
		}
		raw, ok := matchText(queryTokens, f.tokens, f.penalizeExtra)
		if !ok {
			continue
		}
		n := normalizeScore(raw)
		if n <= idx.threshold {
			accepted = true
		}
		score *= math.Pow(n, f.weight)
	}

	if !accepted {
		return 0, false
	}
	return score, true
}

// normalizeScore maps a raw token score onto the 0-1 scale. The curve keeps
// prefix and substring matches comfortably under the default threshold and
// pushes multi-typo matches toward it.
func normalizeScore(raw int) float64 {
	n := float64(raw) / (float64(raw) + 900)
	if n < scoreEpsilon {
		n = scoreEpsilon
	}
	return n
}
