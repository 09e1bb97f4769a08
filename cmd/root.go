package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "corridors",
	Short: "High-speed rail corridor identification pipeline",
	Long:  "Loads rail, station, airport, and metro-area datasets, anchors each metro at its population-weighted centroid, scores metro pairs with a gravity model, and writes ranked corridor tables and an interactive map.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
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
