// Package extract turns report PDFs into raw table grids.
//
// The source documents publish border-less tables, so detection works from
// text positioning alone: fragments are clustered into rows by their Y
// coordinate and into columns by X alignment across rows, in the manner of
// stream-style table parsers.
package extract

import "errors"

// ErrNoTables is returned when a document yields no detectable table.
var ErrNoTables = errors.New("no tables found")

// Grid is one raw table: a header row plus data rows of string cells.
// Header names may be duplicated or empty; nothing is cleaned at this stage.
type Grid struct {
	Header []string
	Rows   [][]string
}

// Columns returns the number of columns in the grid.
func (g Grid) Columns() int {
	return len(g.Header)
}

// Empty reports whether the grid holds no data rows.
func (g Grid) Empty() bool {
	return len(g.Rows) == 0
}

// Backend extracts raw table grids from the first maxPages pages of a
// document. Implementations return ErrNoTables when nothing tabular is
// found. The pipeline depends only on this interface so that normalization
// and cleaning stay testable with synthetic grids.
type Backend interface {
	ExtractTables(path string, maxPages int) ([]Grid, error)
}
