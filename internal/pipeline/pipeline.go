package pipeline

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/huffmanks/movie-picker/internal/domain"
	"github.com/huffmanks/movie-picker/internal/search"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Pipeline composes free-text relevance search, exact genre filtering and
// an explicit sort order into one ordered result list for a single catalog.
// The catalog snapshot and its index are injected at construction; the dual
// catalog switch is just a selector of which Pipeline is active.
type Pipeline struct {
	items    []*domain.MediaItem // catalog in load order
	index    *search.Index
	collator *collate.Collator
	logger   *slog.Logger
}

// New creates a pipeline over one catalog snapshot and its search index.
func New(items []*domain.MediaItem, index *search.Index, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		items:    items,
		index:    index,
		collator: collate.New(language.Und, collate.IgnoreCase),
		logger:   logger,
	}
}

// ranked carries an item with its relevance score through the stages
type ranked struct {
	item  *domain.MediaItem
	score float64
}

// Evaluate runs one full pass:
//
//  1. Non-empty query -> ranked index search; empty query -> the whole
//     catalog in load order with neutral rank.
//  2. Non-empty genre -> drop items whose genre set lacks it (exact,
//     case-sensitive).
//  3. liveInput forces relevance ordering regardless of key; otherwise the
//     explicit sort key applies.
//  4. Sort: relevance ascending, title locale-aware ascending, year and
//     rating descending, none passes through. All sorts are stable.
//
// Scores are discarded from the returned list.
func (p *Pipeline) Evaluate(query, genre string, key domain.SortKey, liveInput bool) []*domain.MediaItem {
	var results []ranked

	if strings.TrimSpace(query) != "" {
		matches := p.index.Query(query)
		results = make([]ranked, 0, len(matches))
		for _, m := range matches {
			results = append(results, ranked{item: m.Item, score: m.Score})
		}
	} else {
		results = make([]ranked, 0, len(p.items))
		for _, item := range p.items {
			results = append(results, ranked{item: item})
		}
	}

	if genre != "" {
		kept := results[:0]
		for _, r := range results {
			if r.item.HasGenre(genre) {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	if liveInput {
		// Relevance mode overrides the sort control while the user types.
		sort.SliceStable(results, func(a, b int) bool {
			return results[a].score < results[b].score
		})
	} else {
		switch key {
		case domain.SortTitle:
			sort.SliceStable(results, func(a, b int) bool {
				return p.collator.CompareString(results[a].item.Title, results[b].item.Title) < 0
			})
		case domain.SortYear:
			sort.SliceStable(results, func(a, b int) bool {
				return results[a].item.Year > results[b].item.Year
			})
		case domain.SortRating:
			sort.SliceStable(results, func(a, b int) bool {
				return results[a].item.Rating > results[b].item.Rating
			})
		default:
			// none or unrecognized: pass through
		}
	}

	p.logger.Debug("pipeline evaluated",
		"query", query, "genre", genre, "sort", key.String(), "live", liveInput, "results", len(results))

	items := make([]*domain.MediaItem, len(results))
	for i, r := range results {
		items[i] = r.item
	}
	return items
}

// Items returns the underlying catalog snapshot in load order
func (p *Pipeline) Items() []*domain.MediaItem {
	return p.items
}
