// Package batch drives the geocoding resolver over tabular license data.
package batch

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Table is an ordered tabular dataset: one header row plus data rows.
// Columns the runner does not recognize pass through untouched.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadCSV loads a CSV file into a Table.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "batch: open csv")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "batch: read csv")
	}
	if len(records) == 0 {
		return nil, eris.Errorf("batch: %s is empty", path)
	}

	header := records[0]
	rows := records[1:]
	// The header defines the schema. Stray trailing cells on a row would
	// alias columns appended later, so clip them here.
	for i, row := range rows {
		if len(row) > len(header) {
			rows[i] = row[:len(header)]
		}
	}

	return &Table{Header: header, Rows: rows}, nil
}

// WriteCSV writes the table, creating missing parent directories.
func (t *Table) WriteCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "batch: create output dir")
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "batch: create csv")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return eris.Wrap(err, "batch: write header")
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "batch: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "batch: flush csv")
	}
	return nil
}

// ColumnIndex returns the index of a header column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// AddColumn appends a column with empty values on every row and returns its
// index. Existing short rows are padded first so all rows stay rectangular.
func (t *Table) AddColumn(name string) int {
	t.Header = append(t.Header, name)
	width := len(t.Header)
	for i, row := range t.Rows {
		for len(row) < width {
			row = append(row, "")
		}
		t.Rows[i] = row
	}
	return width - 1
}
