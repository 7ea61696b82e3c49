package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteCSV writes the dataset to path as a header row followed by one line
// per record.
func (d *Dataset) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(d.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range d.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	return f.Close()
}

// ReadCSV loads a dataset previously written by WriteCSV. Short records are
// padded to the header width so the result is always rectangular.
func ReadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Dataset{}, nil
	}

	d := &Dataset{Columns: records[0]}
	for _, record := range records[1:] {
		row := make([]string, len(d.Columns))
		copy(row, record)
		d.Rows = append(d.Rows, row)
	}

	return d, nil
}
