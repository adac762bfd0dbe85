package batch

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/greatlakes-gis/licensemap/pkg/geocode"
)

// Output columns appended to the input table.
const (
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
	ColStatus    = "geocode_status"
	ColPrecision = "geocode_precision"
	ColSource    = "geocode_source"
)

// Runner resolves every row of a table through the geocoding resolver,
// preserving row order. It holds no durable state of its own: crash safety
// comes entirely from the resolver's cache checkpointing.
type Runner struct {
	resolver *geocode.Resolver
	pricing  geocode.Pricing
	progress bool
}

// NewRunner creates a Runner over the given resolver.
func NewRunner(resolver *geocode.Resolver, pricing geocode.Pricing, showProgress bool) *Runner {
	return &Runner{resolver: resolver, pricing: pricing, progress: showProgress}
}

// Run geocodes the table's address column in place, appending the five
// output columns. One result per input row, in input order; rows with a
// blank address short-circuit to no_address without touching the resolver.
// Test mode truncates to the first testLimit rows.
//
// On cancellation the returned error wraps the context error, the report
// covers the completed prefix, and the cache has already been flushed.
func (r *Runner) Run(ctx context.Context, t *Table, testMode bool, testLimit int) (*Report, error) {
	addrIdx := t.ColumnIndex("address")
	if addrIdx < 0 {
		return nil, eris.New("batch: input has no address column")
	}

	if testMode && testLimit > 0 && len(t.Rows) > testLimit {
		zap.L().Info("test mode: truncating input", zap.Int("limit", testLimit))
		t.Rows = t.Rows[:testLimit]
	}

	latIdx := t.AddColumn(ColLatitude)
	lonIdx := t.AddColumn(ColLongitude)
	statusIdx := t.AddColumn(ColStatus)
	precIdx := t.AddColumn(ColPrecision)
	sourceIdx := t.AddColumn(ColSource)

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	var bar *progressbar.ProgressBar
	if r.progress {
		bar = progressbar.NewOptions(len(t.Rows),
			progressbar.OptionSetDescription("Geocoding"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	zap.L().Info("starting geocoding run",
		zap.String("run_id", report.RunID),
		zap.Int("rows", len(t.Rows)),
	)

	defer r.resolver.Flush()

	results := make([]geocode.Result, 0, len(t.Rows))
	for _, row := range t.Rows {
		address := strings.TrimSpace(row[addrIdx])

		var res geocode.Result
		if address == "" {
			res = geocode.Result{Status: geocode.StatusNoAddress, Precision: geocode.PrecisionFailed}
		} else {
			var err error
			res, err = r.resolver.Resolve(ctx, address)
			if err != nil {
				report.Interrupted = true
				report.FinishedAt = time.Now().UTC()
				report.Rows = len(results)
				report.Stats = geocode.Summarize(results, r.pricing)
				return report, eris.Wrap(err, "batch: run interrupted")
			}
		}

		row[statusIdx] = string(res.Status)
		row[precIdx] = string(res.Precision)
		row[sourceIdx] = res.Source
		if res.Status == geocode.StatusSuccess {
			row[latIdx] = strconv.FormatFloat(*res.Latitude, 'f', -1, 64)
			row[lonIdx] = strconv.FormatFloat(*res.Longitude, 'f', -1, 64)
		}

		results = append(results, res)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	report.FinishedAt = time.Now().UTC()
	report.Rows = len(results)
	report.Stats = geocode.Summarize(results, r.pricing)
	report.Stats.Log()

	return report, nil
}
