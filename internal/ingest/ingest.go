package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/huffmanks/movie-picker/internal/domain"
)

// defaultDelay spaces out poster downloads so the image host is not hammered
const defaultDelay = 50 * time.Millisecond

// Options configures one ingestion run.
type Options struct {
	NFODir      string        // Directory of per-title .nfo files
	OutFile     string        // Catalog JSON output path
	PostersDir  string        // Where downloaded posters land
	FailLogFile string        // Failure log path (default: failed.txt next to OutFile)
	Delay       time.Duration // Between downloads (default 50ms)
}

// Run converts a directory of NFO files into one catalog JSON file,
// downloading each title's poster along the way. Poster failures are
// logged and the catalog entry is emitted anyway, with its image path
// pointing at the file that would have been written.
func Run(ctx context.Context, opts Options, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Delay <= 0 {
		opts.Delay = defaultDelay
	}
	if opts.FailLogFile == "" {
		opts.FailLogFile = filepath.Join(filepath.Dir(opts.OutFile), "failed.txt")
	}

	entries, err := os.ReadDir(opts.NFODir)
	if err != nil {
		return fmt.Errorf("failed to read nfo directory: %w", err)
	}

	if err := os.MkdirAll(opts.PostersDir, 0755); err != nil {
		return fmt.Errorf("failed to create posters directory: %w", err)
	}

	failLog, err := os.OpenFile(opts.FailLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open failure log: %w", err)
	}
	defer failLog.Close()

	downloader := NewDownloader(opts.PostersDir, failLog, logger)

	var items []*domain.MediaItem
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".nfo") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		item, posterURL, err := parseFile(filepath.Join(opts.NFODir, name))
		if err != nil {
			logger.Warn("skipping nfo", "file", name, "error", err)
			continue
		}

		// The image path is recorded whether or not the download works;
		// a failed download leaves a dangling reference, recorded in the
		// failure log for manual follow-up.
		filename := fmt.Sprintf("%s (%d).jpg", SanitizeTitle(item.Title), item.Year)
		item.Image = filepath.ToSlash(filepath.Join(filepath.Base(opts.PostersDir), filename))

		if _, err := downloader.Fetch(ctx, posterURL, item.Title, item.Year); err != nil {
			logger.Warn("poster download failed", "title", item.Title, "error", err)
		}

		items = append(items, item)

		if i < len(names)-1 {
			select {
			case <-time.After(opts.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(opts.OutFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	logger.Info("ingestion complete", "titles", len(items), "out", opts.OutFile)
	return nil
}

func parseFile(path string) (*domain.MediaItem, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return ParseNFO(f)
}
