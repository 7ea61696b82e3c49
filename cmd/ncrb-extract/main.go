// Command ncrb-extract walks a folder tree of downloaded NCRB report PDFs,
// extracts the state-level and city-level suicide incidence tables, and
// writes the cleaned datasets as CSV files.
//
// Per-document and per-file failures are logged and skipped; the command
// exits non-zero only when the input tree cannot be enumerated or the
// configuration is invalid.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/ncrbdata/ncrb-extract/internal/clean"
	"github.com/ncrbdata/ncrb-extract/internal/config"
	"github.com/ncrbdata/ncrb-extract/internal/extract"
	"github.com/ncrbdata/ncrb-extract/internal/pipeline"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

func main() {
	start := time.Now()
	log.SetOutput(os.Stderr)

	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			fmt.Printf("ncrb-extract %s (built %s)\n", version, buildTime)
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}
	folder := pflag.Arg(0)

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	backend := extract.NewStreamBackend(cfg.MaxFileSize)
	p := pipeline.New(cfg, backend)

	if err := p.Run(folder); err != nil {
		log.Fatalf("Extraction run failed: %v", err)
	}

	cleaner := clean.NewCleaner(cfg.CleanedDir)
	cleanFile(cleaner, cfg.StateFile, clean.StateColumns)
	cleanFile(cleaner, cfg.CityFile, clean.CityColumns)

	fmt.Printf("\nTotal time taken: %.2f seconds\n", time.Since(start).Seconds())
}

// cleanFile runs the schema cleaner on one intermediate file. A missing
// intermediate just means that category had no usable data this run.
func cleanFile(cleaner *clean.Cleaner, path string, columns []string) {
	out, err := cleaner.Clean(path, columns)
	if err != nil {
		if errors.Is(err, clean.ErrNotFound) {
			log.Printf("%s does not exist, nothing to clean", path)
		} else {
			log.Printf("Error processing %s: %v", path, err)
		}
		return
	}
	fmt.Printf("Saved cleaned file: %s\n", out)
}
