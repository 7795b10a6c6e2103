package ingest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huffmanks/movie-picker/internal/log"
)

// Minimal JPEG: SOI marker plus a JFIF APP0 segment, enough for sniffing
var jpegBytes = []byte{
	0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00,
	0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0xFF, 0xD9,
}

func posterServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/w500/poster.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write(jpegBytes)
		case "/w500/lies.jpg":
			// Claims to be an image, serves HTML
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("<html><body>not found</body></html>"))
		case "/w500/page.html":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRewritePosterURL(t *testing.T) {
	require := require.New(t)

	require.Equal(
		"https://image.tmdb.org/t/p/w500/abc.jpg",
		RewritePosterURL("https://image.tmdb.org/t/p/original/abc.jpg"))

	// No original segment: left alone
	require.Equal(
		"https://image.tmdb.org/t/p/w342/abc.jpg",
		RewritePosterURL("https://image.tmdb.org/t/p/w342/abc.jpg"))
}

func TestFetchSavesPoster(t *testing.T) {
	require := require.New(t)

	srv := posterServer(t)
	dir := t.TempDir()
	var failLog bytes.Buffer

	d := NewDownloader(dir, &failLog, log.NullLogger())

	filename, err := d.Fetch(context.Background(), srv.URL+"/original/poster.jpg", "Face/Off", 1997)
	require.NoError(err)
	require.Equal("Face-Off (1997).jpg", filename)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(err)
	require.Equal(jpegBytes, data)
	require.Empty(failLog.String())
}

func TestFetchRejectsNonImageContentType(t *testing.T) {
	require := require.New(t)

	srv := posterServer(t)
	var failLog bytes.Buffer

	d := NewDownloader(t.TempDir(), &failLog, log.NullLogger())

	_, err := d.Fetch(context.Background(), srv.URL+"/w500/page.html", "Heat", 1995)
	require.Error(err)
	require.Contains(failLog.String(), "Heat (1995) - ")
	require.Contains(failLog.String(), "not an image")
}

func TestFetchSniffsPayload(t *testing.T) {
	require := require.New(t)

	srv := posterServer(t)
	var failLog bytes.Buffer

	d := NewDownloader(t.TempDir(), &failLog, log.NullLogger())

	_, err := d.Fetch(context.Background(), srv.URL+"/w500/lies.jpg", "Heat", 1995)
	require.Error(err)
	require.Contains(failLog.String(), "not an image")
}

func TestFetchStatusAndMissingURL(t *testing.T) {
	require := require.New(t)

	srv := posterServer(t)
	var failLog bytes.Buffer

	d := NewDownloader(t.TempDir(), &failLog, log.NullLogger())

	_, err := d.Fetch(context.Background(), srv.URL+"/w500/gone.jpg", "Gone", 2000)
	require.Error(err)

	_, err = d.Fetch(context.Background(), "", "Nothing", 2001)
	require.Error(err)

	lines := bytes.Count(failLog.Bytes(), []byte("\n"))
	require.Equal(2, lines)
}
