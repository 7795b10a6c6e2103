package domain

import "fmt"

// ContentType identifies which catalog is active.
type ContentType int

const (
	ContentTypeMovies ContentType = iota
	ContentTypeShows
)

// String returns a human-readable name for the content type
func (c ContentType) String() string {
	switch c {
	case ContentTypeMovies:
		return "Movies"
	case ContentTypeShows:
		return "Shows"
	default:
		return "Unknown"
	}
}

// ContentTypes returns all catalogs in display order
func ContentTypes() []ContentType {
	return []ContentType{ContentTypeMovies, ContentTypeShows}
}

// MediaItem represents one catalog entry (a movie or a show).
// The two catalogs share the same shape and live in disjoint id spaces.
type MediaItem struct {
	ID          string   `json:"id"`          // External identifier from source metadata
	Title       string   `json:"title"`       // Display title
	Year        int      `json:"year"`        // Release year
	Description string   `json:"description"` // Plot synopsis
	Image       string   `json:"image,omitempty"`
	Runtime     string   `json:"runtime,omitempty"`
	Premiered   string   `json:"premiered,omitempty"`
	Genre       []string `json:"genre"`
	Tag         []string `json:"tag,omitempty"`
	Rating      float64  `json:"rating"` // 0-10 scale
	Actors      []string `json:"actors,omitempty"`
}

// HasGenre reports whether the item carries the given genre label.
// Matching is case-sensitive against the labels as loaded.
func (m *MediaItem) HasGenre(genre string) bool {
	for _, g := range m.Genre {
		if g == genre {
			return true
		}
	}
	return false
}

// Label returns the display form "Title (Year)", or just the title when
// the year is unknown.
func (m *MediaItem) Label() string {
	if m.Year == 0 {
		return m.Title
	}
	return fmt.Sprintf("%s (%d)", m.Title, m.Year)
}

// Selection is one shortlist entry. Title and Year are copied from the
// catalog item at toggle time and never re-synced afterwards, so shortlist
// rendering and export do not need the catalog.
type Selection struct {
	ID    uint64 `json:"id"`    // Store-assigned surrogate key
	RefID string `json:"refId"` // MediaItem.ID in either catalog
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// Label returns the display form "Title (Year)", or just the title when
// the year is unknown.
func (s *Selection) Label() string {
	if s.Year == 0 {
		return s.Title
	}
	return fmt.Sprintf("%s (%d)", s.Title, s.Year)
}

// SortKey selects the explicit result ordering.
type SortKey int

const (
	SortNone SortKey = iota
	SortTitle
	SortYear
	SortRating
)

// String returns the display name for the sort key
func (k SortKey) String() string {
	switch k {
	case SortNone:
		return "Default"
	case SortTitle:
		return "Title"
	case SortYear:
		return "Year"
	case SortRating:
		return "Rating"
	default:
		return "Unknown"
	}
}

// SortOptions returns the sort keys offered by the sort control
func SortOptions() []SortKey {
	return []SortKey{SortNone, SortTitle, SortYear, SortRating}
}
