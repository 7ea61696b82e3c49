package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/ncrbdata/ncrb-extract/internal/clean"
	"github.com/ncrbdata/ncrb-extract/internal/dataset"
	"github.com/ncrbdata/ncrb-extract/internal/extract"
)

// fullGrid builds an extraction-shaped grid whose normalized form carries
// exactly the eight columns the cleaner expects (seven extracted plus year).
func fullGrid(region, name string) extract.Grid {
	return extract.Grid{
		Header: []string{
			"Sl. No.", region, "Number of Suicides", "Percentage Share",
			"Population", "Rate", "Rank",
		},
		Rows: [][]string{
			{"1", name, "6465", "4.6", "529.0", "12.2", "9"},
		},
	}
}

func TestExtractThenCleanEndToEnd(t *testing.T) {
	root := testTree(t)
	cfg := testConfig(t)

	backend := &fakeBackend{
		grids: []extract.Grid{
			fullGrid("State/UT", "Andhra Pradesh"),
			fullGrid("Cities", "Chennai"),
		},
	}

	if err := New(cfg, backend).Run(root); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	cleanedDir := filepath.Join(filepath.Dir(cfg.StateFile), "cleaned_data")
	cleaner := clean.NewCleaner(cleanedDir)

	stateOut, err := cleaner.Clean(cfg.StateFile, clean.StateColumns)
	if err != nil {
		t.Fatalf("cleaning state file failed: %v", err)
	}
	cityOut, err := cleaner.Clean(cfg.CityFile, clean.CityColumns)
	if err != nil {
		t.Fatalf("cleaning city file failed: %v", err)
	}

	for _, tc := range []struct {
		path   string
		region string
		value  string
	}{
		{stateOut, "State/UT", "Andhra Pradesh"},
		{cityOut, "Cities", "Chennai"},
	} {
		d, err := dataset.ReadCSV(tc.path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", tc.path, err)
		}
		if len(d.Columns) != 7 {
			t.Errorf("%s: expected 7 final columns, got %v", tc.path, d.Columns)
		}
		if d.Columns[0] != tc.region {
			t.Errorf("%s: first column = %q, want %q (serial number dropped)", tc.path, d.Columns[0], tc.region)
		}
		if len(d.Rows) != 1 || d.Rows[0][0] != tc.value {
			t.Errorf("%s: unexpected rows %v", tc.path, d.Rows)
		}
		if year := d.Rows[0][6]; year != "2020" {
			t.Errorf("%s: year = %q, want 2020", tc.path, year)
		}
	}
}
