// Package pipeline runs the extraction pass: discover candidate documents,
// extract their tables, normalize the rows, and accumulate everything into
// the two intermediate datasets.
package pipeline

import (
	"errors"
	"fmt"
	"log"

	"github.com/ncrbdata/ncrb-extract/internal/config"
	"github.com/ncrbdata/ncrb-extract/internal/dataset"
	"github.com/ncrbdata/ncrb-extract/internal/extract"
	"github.com/ncrbdata/ncrb-extract/internal/normalize"
	"github.com/ncrbdata/ncrb-extract/internal/scan"
)

// Pipeline drives one extraction run. Documents are processed strictly one
// at a time; the two accumulators have a single writer, so no locking is
// needed.
type Pipeline struct {
	backend  extract.Backend
	maxPages int

	stateFile string
	cityFile  string
}

// New creates a pipeline using the given extraction backend.
func New(cfg *config.Config, backend extract.Backend) *Pipeline {
	return &Pipeline{
		backend:   backend,
		maxPages:  cfg.MaxPages,
		stateFile: cfg.StateFile,
		cityFile:  cfg.CityFile,
	}
}

// Run scans root for candidate documents and accumulates their state-level
// and city-level tables into the intermediate CSV files. Per-document
// failures are logged and skipped; only a failure to enumerate the tree
// itself is returned. An accumulator that stays empty writes no file.
func (p *Pipeline) Run(root string) error {
	candidates, err := scan.FindCandidates(root)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	var stateData, cityData dataset.Dataset

	for _, candidate := range candidates {
		stateTable, cityTable, err := p.processDocument(candidate)
		if err != nil {
			log.Printf("skipping %s: %v", candidate.Path, err)
			continue
		}

		stateData.Append(stateTable)
		cityData.Append(cityTable)

		fmt.Printf("Processed: %s\n", candidate.Path)
	}

	if !stateData.Empty() {
		if err := stateData.WriteCSV(p.stateFile); err != nil {
			return err
		}
		fmt.Printf("Saved: %s\n", p.stateFile)
	}
	if !cityData.Empty() {
		if err := cityData.WriteCSV(p.cityFile); err != nil {
			return err
		}
		fmt.Printf("Saved: %s\n", p.cityFile)
	}

	return nil
}

// processDocument extracts and normalizes one candidate. The first detected
// table is state-level, the second city-level; either may come back empty.
// A document with no detectable tables is not an error, just a skip.
func (p *Pipeline) processDocument(candidate scan.Candidate) (normalize.Table, normalize.Table, error) {
	grids, err := p.backend.ExtractTables(candidate.Path, p.maxPages)
	if err != nil {
		if errors.Is(err, extract.ErrNoTables) {
			fmt.Printf("No tables found in %s\n", candidate.Path)
			return normalize.Table{}, normalize.Table{}, nil
		}
		return normalize.Table{}, normalize.Table{}, err
	}

	stateTable := normalize.Normalize(grids[0], candidate.Name)

	var cityTable normalize.Table
	if len(grids) > 1 {
		cityTable = normalize.Normalize(grids[1], candidate.Name)
	}

	return stateTable, cityTable, nil
}
