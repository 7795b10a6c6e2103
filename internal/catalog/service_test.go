package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huffmanks/movie-picker/internal/domain"
	"github.com/huffmanks/movie-picker/internal/log"
	"github.com/huffmanks/movie-picker/internal/store"
)

const moviesSeed = `[
	{"id": "tt0113277", "title": "Heat", "year": 1995, "genre": ["Crime", "Drama"], "rating": 8.3},
	{"id": "tt2543164", "title": "Arrival", "year": 2016, "genre": ["Sci-Fi", "Drama"], "rating": 7.9},
	{"id": "tt1160419", "title": "Dune", "year": 2021, "genre": ["Sci-Fi", "Adventure"], "rating": 8.0}
]`

const showsSeed = `[
	{"id": "tt4158110", "title": "Mr. Robot", "year": 2015, "genre": ["Drama", "Thriller"], "rating": 8.5}
]`

func writeSeed(t *testing.T, name, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func newTestService(t *testing.T, seedFiles map[domain.ContentType]string) (*Service, *store.PickerStore) {
	t.Helper()

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewService(st, seedFiles, log.NullLogger()), st
}

func TestLoadFile(t *testing.T) {
	require := require.New(t)

	path := writeSeed(t, "movies.json", moviesSeed)

	items, err := LoadFile(path)
	require.NoError(err)
	require.Len(items, 3)
	require.Equal("Heat", items[0].Title)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(err)

	bad := writeSeed(t, "bad.json", "{not json")
	_, err = LoadFile(bad)
	require.Error(err)
}

func TestEnsureSeededSortsByTitle(t *testing.T) {
	require := require.New(t)

	svc, st := newTestService(t, map[domain.ContentType]string{
		domain.ContentTypeMovies: writeSeed(t, "movies.json", moviesSeed),
	})

	require.NoError(svc.EnsureSeeded(context.Background()))

	items, err := st.GetItems(domain.ContentTypeMovies)
	require.NoError(err)
	require.Len(items, 3)
	require.Equal("Arrival", items[0].Title)
	require.Equal("Dune", items[1].Title)
	require.Equal("Heat", items[2].Title)
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	require := require.New(t)

	moviesPath := writeSeed(t, "movies.json", moviesSeed)
	svc, st := newTestService(t, map[domain.ContentType]string{
		domain.ContentTypeMovies: moviesPath,
	})

	require.NoError(svc.EnsureSeeded(context.Background()))

	// A changed seed file must not overwrite a populated catalog
	require.NoError(os.WriteFile(moviesPath, []byte(`[{"id": "x", "title": "Other"}]`), 0644))
	require.NoError(svc.EnsureSeeded(context.Background()))

	count, err := st.CountItems(domain.ContentTypeMovies)
	require.NoError(err)
	require.Equal(3, count)
}

func TestEnsureSeededSkipsMissingSeedFile(t *testing.T) {
	require := require.New(t)

	svc, st := newTestService(t, map[domain.ContentType]string{
		domain.ContentTypeMovies: filepath.Join(t.TempDir(), "missing.json"),
		domain.ContentTypeShows:  writeSeed(t, "shows.json", showsSeed),
	})

	// Bad movie seed is logged and skipped, shows still land
	require.NoError(svc.EnsureSeeded(context.Background()))

	count, err := st.CountItems(domain.ContentTypeMovies)
	require.NoError(err)
	require.Zero(count)

	count, err = st.CountItems(domain.ContentTypeShows)
	require.NoError(err)
	require.Equal(1, count)
}

func TestEnsureSeededHonorsContext(t *testing.T) {
	require := require.New(t)

	svc, _ := newTestService(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(svc.EnsureSeeded(ctx), context.Canceled)
}

func TestItemsCached(t *testing.T) {
	require := require.New(t)

	svc, st := newTestService(t, map[domain.ContentType]string{
		domain.ContentTypeMovies: writeSeed(t, "movies.json", moviesSeed),
	})
	require.NoError(svc.EnsureSeeded(context.Background()))

	first, err := svc.Items(domain.ContentTypeMovies)
	require.NoError(err)
	require.Len(first, 3)

	// The snapshot survives store mutation until a new session
	require.NoError(st.BulkInsertItems(domain.ContentTypeMovies, nil))
	second, err := svc.Items(domain.ContentTypeMovies)
	require.NoError(err)
	require.Len(second, 3)
}

func TestGenresDistinctSorted(t *testing.T) {
	require := require.New(t)

	svc, _ := newTestService(t, map[domain.ContentType]string{
		domain.ContentTypeMovies: writeSeed(t, "movies.json", moviesSeed),
	})
	require.NoError(svc.EnsureSeeded(context.Background()))

	genres, err := svc.Genres(domain.ContentTypeMovies)
	require.NoError(err)
	require.Equal([]string{"Adventure", "Crime", "Drama", "Sci-Fi"}, genres)
}
