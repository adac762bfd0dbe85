package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/greatlakes-gis/licensemap/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "licensemap",
	Short: "License registry geocoding and mapping pipeline",
	Long:  "Consolidates state license-registry spreadsheets, geocodes each record through a cached multi-provider resolver, and renders the results as an interactive layered map.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "cmd: load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "cmd: init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
