package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greatlakes-gis/licensemap/internal/batch"
	"github.com/greatlakes-gis/licensemap/internal/mapgen"
)

var (
	mapgenIn       string
	mapgenOut      string
	mapgenBoundary string
)

var mapgenCmd = &cobra.Command{
	Use:   "mapgen",
	Short: "Render the geocoded license table as an interactive map",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := batch.ReadCSV(mapgenIn)
		if err != nil {
			return err
		}

		var boundary []byte
		if mapgenBoundary != "" {
			boundary, err = mapgen.LoadBoundary(mapgenBoundary)
			if err != nil {
				return err
			}
		}

		opts := mapgen.Options{
			CenterLat:               cfg.Map.CenterLat,
			CenterLon:               cfg.Map.CenterLon,
			ZoomStart:               cfg.Map.ZoomStart,
			MaxClusterRadius:        cfg.Map.MaxClusterRadius,
			DisableClusteringAtZoom: cfg.Map.DisableClusteringAtZoom,
			PrecisionDecimalPlaces:  cfg.Map.PrecisionDecimalPlaces,
		}
		if err := mapgen.Generate(table, opts, boundary, mapgenOut); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Map written to %s\n", mapgenOut)
		return nil
	},
}

func init() {
	mapgenCmd.Flags().StringVar(&mapgenIn, "in", "data/processed/geocoded_licenses.csv", "geocoded CSV input")
	mapgenCmd.Flags().StringVar(&mapgenOut, "out", "output/license_map.html", "output HTML path")
	mapgenCmd.Flags().StringVar(&mapgenBoundary, "boundary", "", "optional boundary shapefile to overlay")
	rootCmd.AddCommand(mapgenCmd)
}
