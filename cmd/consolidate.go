package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greatlakes-gis/licensemap/internal/consolidate"
)

var (
	consolidateSource string
	consolidateOut    string
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Merge registry spreadsheet exports into one unified CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		source := consolidateSource
		if source == "" {
			source = cfg.Consolidate.SourceDir
		}
		out := consolidateOut
		if out == "" {
			out = cfg.Consolidate.OutFile
		}

		c := consolidate.New(source, cfg.Geocode.State)
		table, err := c.Consolidate(cmd.Context(), out)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Consolidated %d records -> %s\n", len(table.Rows), out)
		return nil
	},
}

func init() {
	consolidateCmd.Flags().StringVar(&consolidateSource, "source", "", "directory of registry CSV/XLSX exports (default from config)")
	consolidateCmd.Flags().StringVar(&consolidateOut, "out", "", "output CSV path (default from config)")
	rootCmd.AddCommand(consolidateCmd)
}
