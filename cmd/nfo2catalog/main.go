package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/huffmanks/movie-picker/internal/ingest"
)

func main() {
	var (
		nfoDir  = flag.String("dir", "", "directory of .nfo metadata files (required)")
		outFile = flag.String("out", "catalog.json", "catalog JSON output path")
		posters = flag.String("posters", "posters", "directory for downloaded poster images")
		failLog = flag.String("faillog", "", "failure log path (default: failed.txt next to -out)")
		delayMs = flag.Int("delay", 50, "milliseconds between poster downloads")
		verbose = flag.Bool("verbose", false, "debug logging")
	)
	flag.Parse()

	if *nfoDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: nfo2catalog -dir <nfo-directory> [-out catalog.json] [-posters posters]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := ingest.Run(ctx, ingest.Options{
		NFODir:      *nfoDir,
		OutFile:     *outFile,
		PostersDir:  *posters,
		FailLogFile: *failLog,
		Delay:       time.Duration(*delayMs) * time.Millisecond,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
