package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ncrbdata/ncrb-extract/internal/normalize"
)

func TestAppendPreservesInsertionOrder(t *testing.T) {
	var d Dataset

	d.Append(normalize.Table{
		Columns: []string{"sl._no.", "state/ut", "year"},
		Rows: [][]string{
			{"1", "Andhra Pradesh", "2019"},
			{"2", "Assam", "2019"},
		},
	})
	d.Append(normalize.Table{
		Columns: []string{"sl._no.", "state/ut", "year"},
		Rows: [][]string{
			{"1", "Bihar", "2020"},
		},
	})

	if len(d.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(d.Rows))
	}
	if d.Rows[2][1] != "Bihar" || d.Rows[2][2] != "2020" {
		t.Errorf("unexpected last row: %v", d.Rows[2])
	}
}

func TestAppendAlignsYearAcrossWidths(t *testing.T) {
	var d Dataset

	d.Append(normalize.Table{
		Columns: []string{"sl._no.", "state/ut", "year"},
		Rows:    [][]string{{"1", "Goa", "2019"}},
	})
	// A wider table from a later report: the year values must land in the
	// existing year column, not a positional slot.
	d.Append(normalize.Table{
		Columns: []string{"sl._no.", "state/ut", "rank", "year"},
		Rows:    [][]string{{"1", "Kerala", "7", "2020"}},
	})

	want := []string{"sl._no.", "state/ut", "year", "rank"}
	if !reflect.DeepEqual(d.Columns, want) {
		t.Fatalf("columns = %v, want %v", d.Columns, want)
	}

	if !reflect.DeepEqual(d.Rows[0], []string{"1", "Goa", "2019", ""}) {
		t.Errorf("first row not padded: %v", d.Rows[0])
	}
	if !reflect.DeepEqual(d.Rows[1], []string{"1", "Kerala", "2020", "7"}) {
		t.Errorf("second row misaligned: %v", d.Rows[1])
	}
}

func TestAppendDuplicateColumnNames(t *testing.T) {
	var d Dataset

	d.Append(normalize.Table{
		Columns: []string{"", "", "year"},
		Rows:    [][]string{{"a", "b", "2001"}},
	})
	d.Append(normalize.Table{
		Columns: []string{"", "", "year"},
		Rows:    [][]string{{"c", "d", "2002"}},
	})

	if len(d.Columns) != 3 {
		t.Fatalf("duplicate names should reuse columns, got header %v", d.Columns)
	}
	if !reflect.DeepEqual(d.Rows[1], []string{"c", "d", "2002"}) {
		t.Errorf("unexpected second row: %v", d.Rows[1])
	}
}

func TestAppendSkipsEmptyTable(t *testing.T) {
	var d Dataset
	d.Append(normalize.Table{Columns: []string{"a", "year"}})
	if !d.Empty() {
		t.Error("appending an empty table should leave the dataset empty")
	}
	if len(d.Columns) != 0 {
		t.Errorf("empty table should not define columns, got %v", d.Columns)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	d := &Dataset{
		Columns: []string{"sl._no.", "state/ut", "year"},
		Rows: [][]string{
			{"1", "Andhra Pradesh", "2020"},
			{"2", "", "2020"},
		},
	}

	path := filepath.Join(t.TempDir(), "state_data.csv")
	if err := d.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if !reflect.DeepEqual(got.Columns, d.Columns) {
		t.Errorf("columns = %v, want %v", got.Columns, d.Columns)
	}
	if !reflect.DeepEqual(got.Rows, d.Rows) {
		t.Errorf("rows = %v, want %v", got.Rows, d.Rows)
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	d, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if !d.Empty() || len(d.Columns) != 0 {
		t.Errorf("expected empty dataset, got %+v", d)
	}
}
