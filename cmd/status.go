package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/greatlakes-gis/licensemap/pkg/geocode"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the geocode cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := geocode.NewStore(cfg.Geocode.CacheFile)
		cache := store.Load()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Cache: %s\n", cfg.Geocode.CacheFile)
		fmt.Fprintf(out, "Entries: %d\n", len(cache))
		if len(cache) == 0 {
			return nil
		}

		results := make([]geocode.Result, 0, len(cache))
		for _, r := range cache {
			results = append(results, r)
		}
		stats := geocode.Summarize(results, geocode.Pricing{GooglePerCall: cfg.Geocode.Pricing.GooglePerCall})

		fmt.Fprintln(out, "\nBy status:")
		printCounts(out, stats.ByStatus)
		fmt.Fprintln(out, "\nBy precision:")
		printCounts(out, stats.ByPrecision)
		fmt.Fprintln(out, "\nBy source:")
		printCounts(out, stats.BySource)
		return nil
	},
}

func printCounts(out io.Writer, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %-14s %d\n", k, counts[k])
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
