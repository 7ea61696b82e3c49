// Package clean post-processes the intermediate CSV files into the final
// published artifacts. The pipeline is strictly linear and fail-closed: a
// column-count mismatch against the expected schema rejects the whole file
// rather than coercing it, since silent schema drift would corrupt
// comparability across report years.
package clean

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/ncrbdata/ncrb-extract/internal/dataset"
	"github.com/ncrbdata/ncrb-extract/internal/normalize"
)

// DefaultRowGapThreshold is the proportion of a row that may be missing
// before the proportional filter drops it.
const DefaultRowGapThreshold = 0.5

// serialColumn is dropped from the final artifact after renaming.
const serialColumn = "Sl. No."

var (
	// ErrNotFound means the intermediate file does not exist.
	ErrNotFound = errors.New("file does not exist")
	// ErrEmpty means no data rows were present at load or survived cleaning.
	ErrEmpty = errors.New("no valid data")
)

// SchemaMismatchError reports a cleaned table whose column count does not
// match the expected schema. The file is rejected; nothing is written.
type SchemaMismatchError struct {
	File string
	Got  int
	Want int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("column mismatch in %s: data has %d columns, expected %d", e.File, e.Got, e.Want)
}

// StateColumns is the fixed schema for the state-level dataset.
var StateColumns = []string{
	"Sl. No.",
	"State/UT",
	"Number of Suicides",
	"Percentage Share in Total Suicides",
	"Estimated Mid–Year Population (in Lakh)",
	"Rate of Suicides (Col.3/Col.5)",
	"Rank for State/UT",
	"Year",
}

// CityColumns is the fixed schema for the city-level dataset.
var CityColumns = []string{
	"Sl. No.",
	"Cities",
	"Number of Suicides",
	"Percentage Share in Total Suicides",
	"Estimated Mid–Year Population (in Lakh)",
	"Rate of Suicides (Col.3/Col.5)",
	"Rank for Cities",
	"Year",
}

// Cleaner reconciles intermediate files against their expected schemas and
// publishes the cleaned artifacts.
type Cleaner struct {
	outputDir string
	threshold float64
}

// NewCleaner creates a cleaner that writes finished files under outputDir
// using the default row gap threshold.
func NewCleaner(outputDir string) *Cleaner {
	return &Cleaner{outputDir: outputDir, threshold: DefaultRowGapThreshold}
}

// Clean loads the intermediate file at path, applies the filter pipeline,
// reconciles the result against expectedColumns, writes the finished file
// under the output directory with a "cleaned_" prefix, and deletes the
// intermediate. Returns the path of the cleaned file. Any stage failure
// aborts this file only: the error wraps ErrNotFound, ErrEmpty, or is a
// *SchemaMismatchError.
func (c *Cleaner) Clean(path string, expectedColumns []string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	d, err := dataset.ReadCSV(path)
	if err != nil {
		return "", err
	}
	if d.Empty() {
		return "", fmt.Errorf("%s is empty: %w", path, ErrEmpty)
	}

	dropEmptyColumns(d)
	truncateAfterYear(d)
	dropSparseRows(d, c.threshold)
	dropGappyRows(d)
	dropBlankRows(d)

	if len(d.Columns) != len(expectedColumns) {
		return "", &SchemaMismatchError{File: path, Got: len(d.Columns), Want: len(expectedColumns)}
	}

	d.Columns = append([]string(nil), expectedColumns...)
	dropColumn(d, serialColumn)

	if d.Empty() {
		return "", fmt.Errorf("after cleaning, %s has no valid data: %w", path, ErrEmpty)
	}

	if err := os.MkdirAll(c.outputDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(c.outputDir, "cleaned_"+filepath.Base(path))
	if err := d.WriteCSV(cleanedPath); err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to delete intermediate %s: %w", path, err)
	}

	return cleanedPath, nil
}

// dropEmptyColumns removes columns that are empty in every row.
func dropEmptyColumns(d *dataset.Dataset) {
	var keep []int
	for col := range d.Columns {
		for _, row := range d.Rows {
			if row[col] != "" {
				keep = append(keep, col)
				break
			}
		}
	}
	selectColumns(d, keep)
}

// truncateAfterYear drops every column after the year column, if one is
// present. Extraction noise occasionally produces spurious trailing columns.
func truncateAfterYear(d *dataset.Dataset) {
	for i, name := range d.Columns {
		if name == normalize.YearColumn {
			keep := make([]int, i+1)
			for j := range keep {
				keep[j] = j
			}
			selectColumns(d, keep)
			return
		}
	}
}

// dropSparseRows keeps rows that have at least
// ncols - floor(ncols*threshold) non-missing values.
func dropSparseRows(d *dataset.Dataset, threshold float64) {
	required := len(d.Columns) - int(math.Floor(float64(len(d.Columns))*threshold))
	filterRows(d, func(row []string) bool {
		return nonMissing(row) >= required
	})
}

// dropGappyRows drops rows with more than two missing values. This hard cap
// applies independently of the proportional filter.
func dropGappyRows(d *dataset.Dataset) {
	filterRows(d, func(row []string) bool {
		return len(row)-nonMissing(row) <= 2
	})
}

// dropBlankRows drops rows that are empty in every column.
func dropBlankRows(d *dataset.Dataset) {
	filterRows(d, func(row []string) bool {
		return nonMissing(row) > 0
	})
}

// dropColumn removes the named column if present.
func dropColumn(d *dataset.Dataset, name string) {
	var keep []int
	for i, col := range d.Columns {
		if col != name {
			keep = append(keep, i)
		}
	}
	if len(keep) != len(d.Columns) {
		selectColumns(d, keep)
	}
}

func nonMissing(row []string) int {
	n := 0
	for _, cell := range row {
		if cell != "" {
			n++
		}
	}
	return n
}

func filterRows(d *dataset.Dataset, keep func([]string) bool) {
	rows := d.Rows[:0]
	for _, row := range d.Rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	d.Rows = rows
}

func selectColumns(d *dataset.Dataset, keep []int) {
	columns := make([]string, len(keep))
	for i, idx := range keep {
		columns[i] = d.Columns[idx]
	}
	d.Columns = columns

	for r, row := range d.Rows {
		next := make([]string, len(keep))
		for i, idx := range keep {
			next[i] = row[idx]
		}
		d.Rows[r] = next
	}
}
