package mapgen

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/greatlakes-gis/licensemap/internal/batch"
)

// Options controls map rendering.
type Options struct {
	CenterLat               float64
	CenterLon               float64
	ZoomStart               int
	MaxClusterRadius        int
	DisableClusteringAtZoom int
	PrecisionDecimalPlaces  int
}

// Marker is one license placed on the map.
type Marker struct {
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Status       string  `json:"status"`
	Category     string  `json:"category"`
	Market       string  `json:"market"`
	Class        string  `json:"class,omitempty"`
	RecordNumber string  `json:"record_number,omitempty"`
	Expiration   string  `json:"expiration,omitempty"`
	Precision    string  `json:"precision,omitempty"`
	Layer        string  `json:"layer"`
	Color        string  `json:"color"`
	Icon         string  `json:"icon"`
	Opacity      float64 `json:"opacity"`
	Stacked      int     `json:"stacked"`
}

// layerDef is one toggleable overlay in the layer control.
type layerDef struct {
	Key  string
	Name string
}

// Layer keys follow CATEGORY_MARKET, plus one shared inactive layer.
var layers = []layerDef{
	{"Grower_AU", "Growers (AU)"},
	{"Grower_MED", "Growers (MED)"},
	{"Processor_AU", "Processors (AU)"},
	{"Processor_MED", "Processors (MED)"},
	{"Retailer_AU", "Retailers (AU)"},
	{"Retailer_MED", "Retailers (MED)"},
	{"Transporter_AU", "Transporters (AU)"},
	{"Transporter_MED", "Transporters (MED)"},
	{"inactive", "Inactive Licenses (All Types)"},
}

// legendEntry is one row of the on-map legend.
type legendEntry struct {
	Label string
	Color string
}

type templateData struct {
	Title                   string
	CenterLat               float64
	CenterLon               float64
	ZoomStart               int
	MaxClusterRadius        int
	DisableClusteringAtZoom int
	MarkersJSON             template.JS
	LayersJSON              template.JS
	LegendEntries           []legendEntry
	BoundaryJSON            template.JS
	HasBoundary             bool
}

// Generate renders the geocoded table to a self-contained HTML map at
// outFile. Only rows with a successful geocode status are plotted. The
// optional boundaryGeoJSON is drawn as an outline overlay.
func Generate(t *batch.Table, opts Options, boundaryGeoJSON []byte, outFile string) error {
	markers, skipped := buildMarkers(t, opts)
	if len(markers) == 0 {
		return eris.New("mapgen: no successfully geocoded rows to plot")
	}

	zap.L().Info("generating map",
		zap.Int("markers", len(markers)),
		zap.Int("skipped", skipped),
	)

	markersJSON, err := json.Marshal(markers)
	if err != nil {
		return eris.Wrap(err, "mapgen: marshal markers")
	}
	layersJSON, err := json.Marshal(layers)
	if err != nil {
		return eris.Wrap(err, "mapgen: marshal layers")
	}

	data := templateData{
		Title:                   "License Map",
		CenterLat:               opts.CenterLat,
		CenterLon:               opts.CenterLon,
		ZoomStart:               opts.ZoomStart,
		MaxClusterRadius:        opts.MaxClusterRadius,
		DisableClusteringAtZoom: opts.DisableClusteringAtZoom,
		MarkersJSON:             template.JS(markersJSON),            //nolint:gosec // marshalled from typed data
		LayersJSON:              template.JS(layersJSON),             //nolint:gosec
		LegendEntries:           buildLegend(),
		HasBoundary:             len(boundaryGeoJSON) > 0,
		BoundaryJSON:            template.JS(boundaryGeoJSON), //nolint:gosec
	}

	tpl, err := template.New("map").Parse(mapTemplate)
	if err != nil {
		return eris.Wrap(err, "mapgen: parse template")
	}

	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return eris.Wrap(err, "mapgen: create output dir")
	}
	f, err := os.Create(outFile)
	if err != nil {
		return eris.Wrap(err, "mapgen: create output file")
	}
	defer f.Close() //nolint:errcheck

	if err := tpl.Execute(f, data); err != nil {
		return eris.Wrap(err, "mapgen: render map")
	}

	zap.L().Info("map written", zap.String("out", outFile))
	return nil
}

// buildMarkers converts successful rows into styled markers, counting
// duplicates stacked at the same rounded coordinate.
func buildMarkers(t *batch.Table, opts Options) ([]Marker, int) {
	col := func(name string) int { return t.ColumnIndex(name) }
	cell := func(row []string, idx int) string {
		if idx >= 0 && idx < len(row) {
			return row[idx]
		}
		return ""
	}

	statusGeoIdx := col(batch.ColStatus)
	latIdx := col(batch.ColLatitude)
	lonIdx := col(batch.ColLongitude)
	precIdx := col(batch.ColPrecision)
	nameIdx := col("business_name")
	addrIdx := col("address")
	licStatusIdx := col("status")
	categoryIdx := col("license_category")
	classIdx := col("license_class")
	marketIdx := col("program_type")
	recordIdx := col("record_number")
	expIdx := col("expiration_date")

	decimals := opts.PrecisionDecimalPlaces
	if decimals <= 0 {
		decimals = 6
	}

	var markers []Marker
	var skipped int
	stacks := make(map[string]int)
	for _, row := range t.Rows {
		if cell(row, statusGeoIdx) != "success" {
			skipped++
			continue
		}
		lat, latErr := strconv.ParseFloat(cell(row, latIdx), 64)
		lon, lonErr := strconv.ParseFloat(cell(row, lonIdx), 64)
		if latErr != nil || lonErr != nil {
			skipped++
			continue
		}

		category := cell(row, categoryIdx)
		market := cell(row, marketIdx)
		licStatus := cell(row, licStatusIdx)
		active := IsActiveStatus(licStatus)

		layer := category + "_" + market
		if !active {
			layer = "inactive"
		}

		key := fmt.Sprintf("%.*f,%.*f", decimals, lat, decimals, lon)
		stacks[key]++

		markers = append(markers, Marker{
			Lat:          lat,
			Lon:          lon,
			Name:         cell(row, nameIdx),
			Address:      cell(row, addrIdx),
			Status:       licStatus,
			Category:     category,
			Market:       market,
			Class:        cell(row, classIdx),
			RecordNumber: cell(row, recordIdx),
			Expiration:   cell(row, expIdx),
			Precision:    cell(row, precIdx),
			Layer:        layer,
			Color:        MarkerColor(category, market, active),
			Icon:         MarkerIcon(category, cell(row, classIdx)),
			Opacity:      MarkerOpacity(active),
			Stacked:      stacks[key],
		})
	}
	return markers, skipped
}

func buildLegend() []legendEntry {
	entries := make([]legendEntry, 0, len(layers))
	for _, l := range layers {
		if l.Key == "inactive" {
			entries = append(entries, legendEntry{Label: l.Name, Color: inactiveColor})
			continue
		}
		// Color table keys are upper-cased layer keys.
		entries = append(entries, legendEntry{
			Label: l.Name,
			Color: markerColors[strings.ToUpper(l.Key)],
		})
	}
	return entries
}
