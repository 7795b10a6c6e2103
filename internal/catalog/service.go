package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/huffmanks/movie-picker/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Service seeds and serves the persisted catalogs.
type Service struct {
	store     domain.Store
	seedFiles map[domain.ContentType]string
	logger    *slog.Logger

	// Per-session snapshot, loaded once per content type
	items map[domain.ContentType][]*domain.MediaItem
}

// NewService creates a catalog service. seedFiles maps each content type to
// its bundled dataset path; a missing entry means that catalog is never
// seeded.
func NewService(store domain.Store, seedFiles map[domain.ContentType]string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		seedFiles: seedFiles,
		logger:    logger,
		items:     make(map[domain.ContentType][]*domain.MediaItem),
	}
}

// LoadFile reads a catalog file: a JSON array of media items.
func LoadFile(path string) ([]*domain.MediaItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var items []*domain.MediaItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return items, nil
}

// EnsureSeeded bulk-inserts the bundled dataset into every empty catalog.
// A populated catalog is left untouched, so re-running is a no-op gate.
// Seed failures are logged and skipped; the app continues with whatever
// state resulted.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	for _, ct := range domain.ContentTypes() {
		if err := ctx.Err(); err != nil {
			return err
		}

		path, ok := s.seedFiles[ct]
		if !ok || path == "" {
			continue
		}

		count, err := s.store.CountItems(ct)
		if err != nil {
			s.logger.Error("failed to count catalog items", "error", err, "catalog", ct.String())
			continue
		}
		if count > 0 {
			s.logger.Debug("catalog already seeded", "catalog", ct.String(), "count", count)
			continue
		}

		items, err := LoadFile(path)
		if err != nil {
			s.logger.Error("failed to load seed dataset", "error", err, "catalog", ct.String(), "path", path)
			continue
		}

		// Load-time order is alphabetical by title; the empty-query,
		// no-sort pipeline pass returns the catalog in this order.
		sortByTitle(items)

		if err := s.store.BulkInsertItems(ct, items); err != nil {
			s.logger.Error("failed to seed catalog", "error", err, "catalog", ct.String())
			continue
		}
		s.logger.Info("seeded catalog", "catalog", ct.String(), "count", len(items))
	}
	return nil
}

// Items returns the catalog snapshot for ct, reading the store on first use.
func (s *Service) Items(ct domain.ContentType) ([]*domain.MediaItem, error) {
	if items, ok := s.items[ct]; ok {
		return items, nil
	}

	items, err := s.store.GetItems(ct)
	if err != nil {
		return nil, err
	}
	s.items[ct] = items
	return items, nil
}

// Genres returns the distinct genre labels of a catalog, sorted
// alphabetically, for populating the genre filter control.
func (s *Service) Genres(ct domain.ContentType) ([]string, error) {
	items, err := s.Items(ct)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var genres []string
	for _, item := range items {
		for _, g := range item.Genre {
			if g == "" || seen[g] {
				continue
			}
			seen[g] = true
			genres = append(genres, g)
		}
	}
	sort.Strings(genres)
	return genres, nil
}

func sortByTitle(items []*domain.MediaItem) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(items, func(a, b int) bool {
		return c.CompareString(items[a].Title, items[b].Title) < 0
	})
}
