// Package consolidate merges heterogeneous license-registry exports into a
// single unified CSV for geocoding.
package consolidate

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/greatlakes-gis/licensemap/internal/batch"
)

// Unified output schema, in column order.
var outputColumns = []string{
	"record_number",
	"record_type",
	"business_name",
	"address",
	"expiration_date",
	"status",
	"notes",
	"home_delivery",
	"disciplinary_action",
	"program_type",
	"license_category",
	"license_class",
	"source_file",
}

// columnMappings translates program-specific registry headings to the
// unified schema. The adult-use and medical exports disagree on the
// licensee column name, and only the medical files carry Home Delivery.
var columnMappings = map[string]map[string]string{
	"AU": {
		"Record Number":       "record_number",
		"Record Type":         "record_type",
		"License Name":        "business_name",
		"Address":             "address",
		"Expiration Date":     "expiration_date",
		"Status":              "status",
		"Notes":               "notes",
		"Disciplinary Action": "disciplinary_action",
	},
	"MED": {
		"Record Number":       "record_number",
		"Record Type":         "record_type",
		"Licensee Name":       "business_name",
		"Address":             "address",
		"Expiration Date":     "expiration_date",
		"Status":              "status",
		"Home Delivery":       "home_delivery",
		"Disciplinary Action": "disciplinary_action",
	},
}

// licenseInfo is the category/class metadata derived from a source filename.
type licenseInfo struct {
	Category string
	Class    string
}

// Consolidator reads every registry export in a directory and produces the
// unified table.
type Consolidator struct {
	sourceDir string
	state     string
}

// New creates a Consolidator. state is the regional abbreviation used by the
// address validation check.
func New(sourceDir, state string) *Consolidator {
	return &Consolidator{sourceDir: sourceDir, state: state}
}

// Consolidate loads all CSV and XLSX files under the source directory,
// normalizes them to the unified schema, and writes the result to outFile.
// A file that fails to parse is logged and skipped; no source files at all
// is an error.
func (c *Consolidator) Consolidate(ctx context.Context, outFile string) (*batch.Table, error) {
	paths, err := c.sourceFiles()
	if err != nil {
		return nil, err
	}
	zap.L().Info("consolidating registry exports",
		zap.String("dir", c.sourceDir),
		zap.Int("files", len(paths)),
	)

	// Files load concurrently; geocoding is the sequential part of the
	// pipeline, not this.
	perFile := make([][][]string, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return eris.Wrap(err, "consolidate: cancelled")
			}
			rows, loadErr := c.loadFile(path)
			if loadErr != nil {
				zap.L().Error("skipping unparseable source file",
					zap.String("file", filepath.Base(path)),
					zap.Error(loadErr),
				)
				return nil
			}
			perFile[i] = rows
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	table := &batch.Table{Header: append([]string(nil), outputColumns...)}
	for _, rows := range perFile {
		table.Rows = append(table.Rows, rows...)
	}
	if len(table.Rows) == 0 {
		return nil, eris.Errorf("consolidate: no usable records in %s", c.sourceDir)
	}

	c.validate(table)

	if err := table.WriteCSV(outFile); err != nil {
		return nil, err
	}
	zap.L().Info("consolidation complete",
		zap.Int("records", len(table.Rows)),
		zap.String("out", outFile),
	)
	return table, nil
}

// sourceFiles lists registry exports in deterministic order.
func (c *Consolidator) sourceFiles() ([]string, error) {
	entries, err := os.ReadDir(c.sourceDir)
	if err != nil {
		return nil, eris.Wrap(err, "consolidate: read source dir")
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
			paths = append(paths, filepath.Join(c.sourceDir, e.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, eris.Errorf("consolidate: no CSV or XLSX files in %s", c.sourceDir)
	}
	return paths, nil
}

// loadFile reads one export and maps it onto the unified schema.
func (c *Consolidator) loadFile(path string) ([][]string, error) {
	name := filepath.Base(path)
	program := programType(name)
	info := parseFilename(name)

	var header []string
	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		header, rows, err = readXLSX(path)
	} else {
		header, rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	mapping := columnMappings[program]

	// Source column index for each unified column.
	srcIdx := make(map[string]int)
	for i, h := range header {
		if unified, ok := mapping[strings.TrimSpace(h)]; ok {
			srcIdx[unified] = i
		}
	}
	if _, ok := srcIdx["address"]; !ok {
		return nil, eris.Errorf("consolidate: %s has no Address column", name)
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		unified := make([]string, len(outputColumns))
		for i, col := range outputColumns {
			switch col {
			case "program_type":
				unified[i] = program
			case "license_category":
				unified[i] = info.Category
			case "license_class":
				unified[i] = info.Class
			case "source_file":
				unified[i] = name
			default:
				if idx, ok := srcIdx[col]; ok && idx < len(row) {
					unified[i] = strings.TrimSpace(row[idx])
				}
			}
		}
		out = append(out, unified)
	}

	zap.L().Info("loaded source file",
		zap.String("file", name),
		zap.String("program", program),
		zap.String("category", info.Category),
		zap.Int("records", len(out)),
	)
	return out, nil
}

// programType derives the licensing program from the filename prefix.
func programType(name string) string {
	if strings.HasPrefix(name, "AU") {
		return "AU"
	}
	return "MED"
}

// parseFilename extracts license category and class from a registry export
// filename such as "AU - Class A Grower.csv".
func parseFilename(name string) licenseInfo {
	switch {
	case strings.Contains(name, "Grower"):
		info := licenseInfo{Category: "Grower"}
		switch {
		case strings.Contains(name, "Microbusiness"):
			info.Class = "Microbusiness"
		case strings.Contains(name, "Class A"):
			info.Class = "A"
		case strings.Contains(name, "Class B"):
			info.Class = "B"
		case strings.Contains(name, "Class C"):
			info.Class = "C"
		case strings.Contains(name, "Excess"):
			info.Class = "Excess"
		}
		return info
	case strings.Contains(name, "Processor"):
		return licenseInfo{Category: "Processor"}
	case strings.Contains(name, "Retailer"):
		return licenseInfo{Category: "Retailer"}
	case strings.Contains(name, "Transporter"):
		return licenseInfo{Category: "Transporter"}
	default:
		return licenseInfo{Category: "Unknown"}
	}
}

// validate runs data quality checks and logs what it finds. Nothing here is
// fatal; the geocoder copes with bad rows individually.
func (c *Consolidator) validate(t *batch.Table) {
	addrIdx := t.ColumnIndex("address")
	nameIdx := t.ColumnIndex("business_name")
	statusIdx := t.ColumnIndex("status")

	var missingAddr, missingName, badAddr int
	statusCounts := make(map[string]int)
	for _, row := range t.Rows {
		if strings.TrimSpace(row[addrIdx]) == "" {
			missingAddr++
		} else if !strings.Contains(row[addrIdx], c.state) {
			badAddr++
		}
		if strings.TrimSpace(row[nameIdx]) == "" {
			missingName++
		}
		statusCounts[row[statusIdx]]++
	}

	if missingAddr > 0 {
		zap.L().Warn("records missing addresses", zap.Int("count", missingAddr))
	}
	if missingName > 0 {
		zap.L().Warn("records missing business names", zap.Int("count", missingName))
	}
	if badAddr > 0 {
		zap.L().Warn("addresses missing state token",
			zap.String("state", c.state),
			zap.Int("count", badAddr),
		)
	}
	zap.L().Info("status distribution", zap.Any("counts", statusCounts))
}
