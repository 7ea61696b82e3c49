// Package normalize turns raw extracted grids into records ready for
// accumulation: canonical column keys, a year derived from the source
// filename, and only rows that look like numbered data rows.
package normalize

import (
	"regexp"
	"strings"

	"github.com/ncrbdata/ncrb-extract/internal/extract"
)

// YearColumn is the canonical key of the derived period attribute.
const YearColumn = "year"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	yearPattern   = regexp.MustCompile(`\d{4}`)
	serialPattern = regexp.MustCompile(`^\d+$`)
)

// Table is a normalized header-plus-rows pair. Every row has exactly
// len(Columns) cells, the last of which is the derived year (possibly "").
type Table struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table holds no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// CanonicalColumn converts a column name to its canonical key: trimmed,
// lowercased, with internal whitespace runs collapsed to single underscores.
// Canonical names pass through unchanged.
func CanonicalColumn(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// YearFromFilename returns the first four-digit run in the filename, or
// false when none is present. A missing year never fails the record.
func YearFromFilename(filename string) (string, bool) {
	match := yearPattern.FindString(filename)
	return match, match != ""
}

// ValidRow reports whether the row's first cell is a pure run of digits,
// the serial-number shape that separates data rows from stray headers,
// footers, and note lines.
func ValidRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	return serialPattern.MatchString(row[0])
}

// Normalize canonicalizes the grid's column names, appends a year column
// derived from the source filename, and keeps only valid data rows. Grids
// with fewer than two columns cannot be validated reliably and pass through
// unfiltered.
func Normalize(grid extract.Grid, sourceName string) Table {
	columns := make([]string, 0, len(grid.Header)+1)
	for _, name := range grid.Header {
		columns = append(columns, CanonicalColumn(name))
	}
	columns = append(columns, YearColumn)

	year, _ := YearFromFilename(sourceName)
	width := len(grid.Header)
	filter := width >= 2

	rows := make([][]string, 0, len(grid.Rows))
	for _, raw := range grid.Rows {
		if filter && !ValidRow(raw) {
			continue
		}
		row := make([]string, width+1)
		copy(row, raw)
		row[width] = year
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}
}
