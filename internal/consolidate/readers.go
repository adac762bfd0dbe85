package consolidate

import (
	"bytes"
	"encoding/csv"
	"os"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/charmap"
)

// readCSV reads a registry CSV export, returning the header row and data
// rows. State registry exports are occasionally Windows-1252 encoded, so
// invalid UTF-8 gets decoded through that charset.
func readCSV(path string) ([]string, [][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "consolidate: read csv")
	}

	if !utf8.Valid(data) {
		decoded, decErr := charmap.Windows1252.NewDecoder().Bytes(data)
		if decErr != nil {
			return nil, nil, eris.Wrap(decErr, "consolidate: decode csv charset")
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrap(err, "consolidate: parse csv")
	}
	if len(records) == 0 {
		return nil, nil, eris.New("consolidate: empty csv")
	}
	return records[0], records[1:], nil
}

// readXLSX reads the first sheet of a registry XLSX export.
func readXLSX(path string) ([]string, [][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "consolidate: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, nil, eris.New("consolidate: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil, nil, eris.New("consolidate: empty xlsx sheet")
	}
	return rows[0], rows[1:], nil
}
