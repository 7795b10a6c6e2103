package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huffmanks/movie-picker/internal/domain"
)

func openTestStore(t *testing.T) *PickerStore {
	t.Helper()

	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCatalogRoundTrip(t *testing.T) {
	require := require.New(t)

	s := openTestStore(t)

	count, err := s.CountItems(domain.ContentTypeMovies)
	require.NoError(err)
	require.Zero(count)

	items := []*domain.MediaItem{
		{ID: "tt0133093", Title: "The Matrix", Year: 1999, Genre: []string{"Sci-Fi"}},
		{ID: "tt0110912", Title: "Pulp Fiction", Year: 1994, Genre: []string{"Crime"}},
	}
	require.NoError(s.BulkInsertItems(domain.ContentTypeMovies, items))

	count, err = s.CountItems(domain.ContentTypeMovies)
	require.NoError(err)
	require.Equal(2, count)

	got, err := s.GetItems(domain.ContentTypeMovies)
	require.NoError(err)
	require.Len(got, 2)
	require.Equal("The Matrix", got[0].Title)
	require.Equal("Pulp Fiction", got[1].Title)

	// Shows bucket is independent
	count, err = s.CountItems(domain.ContentTypeShows)
	require.NoError(err)
	require.Zero(count)
}

func TestBulkInsertReplaces(t *testing.T) {
	require := require.New(t)

	s := openTestStore(t)

	first := []*domain.MediaItem{{ID: "a", Title: "First"}}
	require.NoError(s.BulkInsertItems(domain.ContentTypeShows, first))

	second := []*domain.MediaItem{
		{ID: "b", Title: "Second"},
		{ID: "c", Title: "Third"},
	}
	require.NoError(s.BulkInsertItems(domain.ContentTypeShows, second))

	got, err := s.GetItems(domain.ContentTypeShows)
	require.NoError(err)
	require.Len(got, 2)
	require.Equal("b", got[0].ID)
}

func TestUnknownContentType(t *testing.T) {
	require := require.New(t)

	s := openTestStore(t)

	_, err := s.GetItems(domain.ContentType(99))
	require.ErrorIs(err, domain.ErrUnknownContentType)

	_, err = s.CountItems(domain.ContentType(99))
	require.ErrorIs(err, domain.ErrUnknownContentType)

	err = s.BulkInsertItems(domain.ContentType(99), nil)
	require.ErrorIs(err, domain.ErrUnknownContentType)
}

func TestSelectionsInsertionOrder(t *testing.T) {
	require := require.New(t)

	s := openTestStore(t)

	dune := &domain.Selection{RefID: "tt1160419", Title: "Dune", Year: 2021}
	arrival := &domain.Selection{RefID: "tt2543164", Title: "Arrival", Year: 2016}

	require.NoError(s.AddSelection(dune))
	require.NoError(s.AddSelection(arrival))
	require.Equal(uint64(1), dune.ID)
	require.Equal(uint64(2), arrival.ID)

	selections, err := s.GetSelections()
	require.NoError(err)
	require.Len(selections, 2)
	require.Equal("Dune", selections[0].Title)
	require.Equal("Arrival", selections[1].Title)
}

func TestFindSelectionByRef(t *testing.T) {
	require := require.New(t)

	s := openTestStore(t)

	require.NoError(s.AddSelection(&domain.Selection{RefID: "tt0113277", Title: "Heat", Year: 1995}))

	sel, ok, err := s.FindSelectionByRef("tt0113277")
	require.NoError(err)
	require.True(ok)
	require.Equal("Heat", sel.Title)

	sel, ok, err = s.FindSelectionByRef("missing")
	require.NoError(err)
	require.False(ok)
	require.Nil(sel)
}

func TestDeleteSelectionByRef(t *testing.T) {
	require := require.New(t)

	s := openTestStore(t)

	require.NoError(s.AddSelection(&domain.Selection{RefID: "keep", Title: "Keeper"}))
	require.NoError(s.AddSelection(&domain.Selection{RefID: "drop", Title: "Goner"}))

	removed, err := s.DeleteSelectionByRef("drop")
	require.NoError(err)
	require.True(removed)

	removed, err = s.DeleteSelectionByRef("drop")
	require.NoError(err)
	require.False(removed)

	selections, err := s.GetSelections()
	require.NoError(err)
	require.Len(selections, 1)
	require.Equal("keep", selections[0].RefID)
}

func TestDeleteAllSelections(t *testing.T) {
	require := require.New(t)

	s := openTestStore(t)

	require.NoError(s.AddSelection(&domain.Selection{RefID: "a"}))
	require.NoError(s.AddSelection(&domain.Selection{RefID: "b"}))
	require.NoError(s.DeleteAllSelections())

	selections, err := s.GetSelections()
	require.NoError(err)
	require.Empty(selections)

	// Sequence keeps advancing, ids never repeat
	next := &domain.Selection{RefID: "c"}
	require.NoError(s.AddSelection(next))
	require.Equal(uint64(3), next.ID)
}

func TestSelectionsPersistAcrossReopen(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(err)
	require.NoError(s.AddSelection(&domain.Selection{RefID: "tt1160419", Title: "Dune", Year: 2021}))
	require.NoError(s.Close())

	s, err = Open(dir)
	require.NoError(err)
	defer s.Close()

	selections, err := s.GetSelections()
	require.NoError(err)
	require.Len(selections, 1)
	require.Equal("Dune", selections[0].Title)
}
