package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// posterWidth is the fixed lower-resolution variant fetched instead of the
// original asset.
const posterWidth = "w500"

// Downloader fetches poster images best-effort. Failures are appended to a
// log file and never abort the run.
type Downloader struct {
	client  *http.Client
	destDir string
	failLog io.Writer
	logger  *slog.Logger
}

// NewDownloader creates a poster downloader writing into destDir. failLog
// receives one line per failed title.
func NewDownloader(destDir string, failLog io.Writer, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		client:  &http.Client{Timeout: 30 * time.Second},
		destDir: destDir,
		failLog: failLog,
		logger:  logger,
	}
}

// RewritePosterURL swaps the original-resolution path segment for the fixed
// lower-resolution variant.
func RewritePosterURL(rawURL string) string {
	return strings.Replace(rawURL, "/original/", "/"+posterWidth+"/", 1)
}

// Fetch downloads the poster for a title and saves it as
// "<sanitized title> (<year>).jpg" under the destination directory.
// Returns the saved filename. On any failure it appends
// "<title> (<year>) - <error>)" to the failure log and returns the error.
func (d *Downloader) Fetch(ctx context.Context, posterURL, title string, year int) (string, error) {
	filename, err := d.fetch(ctx, posterURL, title, year)
	if err != nil {
		d.recordFailure(title, year, err)
		return "", err
	}
	return filename, nil
}

func (d *Downloader) fetch(ctx context.Context, posterURL, title string, year int) (string, error) {
	if posterURL == "" {
		return "", fmt.Errorf("no poster url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, RewritePosterURL(posterURL), nil)
	if err != nil {
		return "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("not an image: content type %q", ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// Sniff the payload too; servers lie about content types.
	if mt := mimetype.Detect(data); !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("not an image: payload is %s", mt.String())
	}

	filename := fmt.Sprintf("%s (%d).jpg", SanitizeTitle(title), year)
	path := filepath.Join(d.destDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	d.logger.Debug("saved poster", "file", filename, "bytes", len(data))
	return filename, nil
}

// recordFailure appends "<title> (<year>) - <error>)" to the failure log,
// trailing paren included.
func (d *Downloader) recordFailure(title string, year int, err error) {
	if d.failLog == nil {
		return
	}
	fmt.Fprintf(d.failLog, "%s (%d) - %v)\n", title, year, err)
}
