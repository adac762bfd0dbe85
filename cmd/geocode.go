package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/greatlakes-gis/licensemap/internal/batch"
	"github.com/greatlakes-gis/licensemap/pkg/geocode"
)

var (
	geocodeIn     string
	geocodeOut    string
	geocodeReport string
	geocodeTest   bool
	geocodeLimit  int
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Geocode the consolidated license table",
	Long:  "Resolves every address in the input CSV through the provider cascade, appending latitude, longitude, and geocode metadata columns. Interrupting the run is safe: the cache checkpoints keep all completed resolutions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		table, err := batch.ReadCSV(geocodeIn)
		if err != nil {
			return err
		}

		gcCfg := cfg.Geocode.ToGeocode()
		hc := &http.Client{Timeout: gcCfg.Timeout}
		resolver := geocode.NewResolver(gcCfg, geocode.DefaultProviders(gcCfg, hc))
		runner := batch.NewRunner(resolver, geocode.Pricing{GooglePerCall: gcCfg.GooglePerCall}, true)

		report, runErr := runner.Run(ctx, table, geocodeTest, geocodeLimit)
		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			return runErr
		}

		if err := table.WriteCSV(geocodeOut); err != nil {
			return err
		}
		if geocodeReport != "" && report != nil {
			if err := report.WriteYAML(geocodeReport); err != nil {
				return err
			}
		}

		if runErr != nil {
			// Operator cancellation is a normal stop, not a failure.
			zap.L().Info("geocoding interrupted by operator",
				zap.Int("completed_rows", report.Rows),
			)
			fmt.Fprintln(cmd.OutOrStdout(), "Interrupted. The geocode cache retains every completed resolution; rerun to resume where you left off.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Geocoded %d rows -> %s\n", report.Rows, geocodeOut)
		return nil
	},
}

func init() {
	geocodeCmd.Flags().StringVar(&geocodeIn, "in", "data/processed/consolidated_licenses.csv", "input CSV with an address column")
	geocodeCmd.Flags().StringVar(&geocodeOut, "out", "data/processed/geocoded_licenses.csv", "output CSV path")
	geocodeCmd.Flags().StringVar(&geocodeReport, "report", "", "optional YAML run-report path")
	geocodeCmd.Flags().BoolVar(&geocodeTest, "test", false, "test mode: only geocode the first --limit rows")
	geocodeCmd.Flags().IntVar(&geocodeLimit, "limit", 100, "row limit for test mode")
	rootCmd.AddCommand(geocodeCmd)
}
