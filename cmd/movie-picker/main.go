package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/huffmanks/movie-picker/internal/catalog"
	"github.com/huffmanks/movie-picker/internal/config"
	"github.com/huffmanks/movie-picker/internal/domain"
	"github.com/huffmanks/movie-picker/internal/log"
	"github.com/huffmanks/movie-picker/internal/pipeline"
	"github.com/huffmanks/movie-picker/internal/search"
	"github.com/huffmanks/movie-picker/internal/selection"
	"github.com/huffmanks/movie-picker/internal/store"
	"github.com/huffmanks/movie-picker/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("movie-picker %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("movie-picker needs an interactive terminal")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting movie-picker", "version", Version)

	st, err := store.Open(cfg.Catalog.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	catalogSvc := catalog.NewService(st, map[domain.ContentType]string{
		domain.ContentTypeMovies: cfg.Catalog.MoviesFile,
		domain.ContentTypeShows:  cfg.Catalog.ShowsFile,
	}, logger)

	if err := catalogSvc.EnsureSeeded(context.Background()); err != nil {
		return fmt.Errorf("seeding interrupted: %w", err)
	}

	// One pipeline per catalog; the content-type toggle just selects which
	// one is active.
	pipelines := make(map[domain.ContentType]*pipeline.Pipeline)
	genres := make(map[domain.ContentType][]string)
	for _, ct := range domain.ContentTypes() {
		items, err := catalogSvc.Items(ct)
		if err != nil {
			// Missing or unreadable catalog: run with an empty one
			logger.Error("failed to load catalog", "error", err, "catalog", ct.String())
			items = nil
		}
		pipelines[ct] = pipeline.New(items, search.NewIndex(items, cfg.Search.Threshold), logger)
		g, err := catalogSvc.Genres(ct)
		if err != nil {
			logger.Error("failed to build genre options", "error", err, "catalog", ct.String())
		}
		genres[ct] = g
	}

	selectionSvc := selection.NewService(st, logger)

	model := tui.NewModel(pipelines, genres, selectionSvc, tui.Options{
		Debounce:  time.Duration(cfg.UI.DebounceMs) * time.Millisecond,
		IdleAfter: time.Duration(cfg.UI.BlurAfterMs) * time.Millisecond,
	}, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
