package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Detection tolerances, in PDF points. The reports use inconsistent spacing,
// so row and column clustering are deliberately generous.
const (
	defaultRowTolerance  = 3.0  // Y drift allowed within one visual row
	defaultColTolerance  = 12.0 // X drift allowed within one column
	defaultJoinTolerance = 4.0  // gap below which adjacent fragments are one cell
	wordGapThreshold     = 1.0  // gap above which joined fragments get a space

	minGridColumns = 2
	minGridRows    = 2
)

// fragment is one positioned run of text on a page.
type fragment struct {
	x, y, w float64
	text    string
}

// StreamBackend detects border-less tables from positioned text. It
// implements Backend.
type StreamBackend struct {
	validator *Validator
	rowTol    float64
	colTol    float64
	joinTol   float64
}

// NewStreamBackend creates a stream-style extraction backend. Documents
// larger than maxFileSize are rejected before parsing.
func NewStreamBackend(maxFileSize int64) *StreamBackend {
	return &StreamBackend{
		validator: NewValidator(maxFileSize),
		rowTol:    defaultRowTolerance,
		colTol:    defaultColTolerance,
		joinTol:   defaultJoinTolerance,
	}
}

// ExtractTables returns one grid per page that holds something table-shaped,
// restricted to the first maxPages pages (all pages when maxPages <= 0).
// Returns ErrNoTables when no page qualifies.
func (b *StreamBackend) ExtractTables(path string, maxPages int) (grids []Grid, err error) {
	// Malformed content streams can panic inside the parser; one bad
	// document must not take down the whole run.
	defer func() {
		if r := recover(); r != nil {
			grids = nil
			err = fmt.Errorf("panic while parsing %s: %v", path, r)
		}
	}()

	if err := b.validator.Validate(path); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	lastPage := reader.NumPage()
	if maxPages > 0 && lastPage > maxPages {
		lastPage = maxPages
	}

	for pageNum := 1; pageNum <= lastPage; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		if grid, ok := b.buildGrid(pageFragments(page)); ok {
			grids = append(grids, grid)
		}
	}

	if len(grids) == 0 {
		return nil, ErrNoTables
	}
	return grids, nil
}

// pageFragments collects the non-blank positioned text runs of a page.
func pageFragments(page pdf.Page) []fragment {
	content := page.Content()
	frags := make([]fragment, 0, len(content.Text))
	for _, text := range content.Text {
		if strings.TrimSpace(text.S) == "" {
			continue
		}
		frags = append(frags, fragment{x: text.X, y: text.Y, w: text.W, text: text.S})
	}
	return frags
}

// buildGrid clusters fragments into a row/column grid. The first detected
// row becomes the header. Returns false when the page holds fewer than two
// aligned columns or two rows.
func (b *StreamBackend) buildGrid(frags []fragment) (Grid, bool) {
	rows := b.groupRows(frags)
	for i := range rows {
		rows[i] = b.joinCells(rows[i])
	}

	centers := b.columnCenters(rows)
	if len(centers) < minGridColumns || len(rows) < minGridRows {
		return Grid{}, false
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = b.assignColumns(row, centers)
	}

	return Grid{Header: cells[0], Rows: cells[1:]}, true
}

// groupRows buckets fragments into visual rows by Y coordinate, top of the
// page first.
func (b *StreamBackend) groupRows(frags []fragment) [][]fragment {
	if len(frags) == 0 {
		return nil
	}

	sorted := make([]fragment, len(frags))
	copy(sorted, frags)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].y > sorted[j].y
	})

	var rows [][]fragment
	current := []fragment{sorted[0]}
	currentY := sorted[0].y

	for _, frag := range sorted[1:] {
		if currentY-frag.y <= b.rowTol {
			current = append(current, frag)
			continue
		}
		rows = append(rows, current)
		current = []fragment{frag}
		currentY = frag.y
	}
	rows = append(rows, current)

	return rows
}

// joinCells sorts a row left to right and merges fragments whose horizontal
// gap is within the join tolerance, so word-level runs become whole cells.
func (b *StreamBackend) joinCells(row []fragment) []fragment {
	if len(row) == 0 {
		return row
	}

	sort.Slice(row, func(i, j int) bool {
		return row[i].x < row[j].x
	})

	merged := []fragment{row[0]}
	for _, frag := range row[1:] {
		last := &merged[len(merged)-1]
		gap := frag.x - (last.x + last.w)
		if gap > b.joinTol {
			merged = append(merged, frag)
			continue
		}
		if gap > wordGapThreshold {
			last.text += " " + frag.text
		} else {
			last.text += frag.text
		}
		last.w = frag.x + frag.w - last.x
	}

	return merged
}

// columnCenters clusters cell start positions across all rows into column
// anchors, left to right.
func (b *StreamBackend) columnCenters(rows [][]fragment) []float64 {
	var starts []float64
	for _, row := range rows {
		for _, frag := range row {
			starts = append(starts, frag.x)
		}
	}
	if len(starts) == 0 {
		return nil
	}
	sort.Float64s(starts)

	var centers []float64
	clusterStart := 0
	for i := 1; i <= len(starts); i++ {
		if i < len(starts) && starts[i]-starts[i-1] <= b.colTol {
			continue
		}
		sum := 0.0
		for _, x := range starts[clusterStart:i] {
			sum += x
		}
		centers = append(centers, sum/float64(i-clusterStart))
		clusterStart = i
	}

	return centers
}

// assignColumns places each cell of a row into the column whose anchor is
// nearest to the cell's start position. Collisions are joined with a space;
// columns with no cell stay empty strings.
func (b *StreamBackend) assignColumns(row []fragment, centers []float64) []string {
	cells := make([]string, len(centers))
	for _, frag := range row {
		idx := nearestCenter(frag.x, centers)
		if cells[idx] == "" {
			cells[idx] = frag.text
		} else {
			cells[idx] += " " + frag.text
		}
	}
	return cells
}

func nearestCenter(x float64, centers []float64) int {
	best := 0
	bestDist := abs(x - centers[0])
	for i, c := range centers[1:] {
		if d := abs(x - c); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
