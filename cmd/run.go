package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/config"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the corridor identification pipeline",
	Long: `Loads the configured datasets, joins ACS populations, anchors each
metro area, scores every metro pair inside the distance band, and writes
the ranked corridors as GeoJSON, CSV, XLSX, KML, an interactive HTML map,
and a plain-text log.

Examples:
  # Full run with config.yaml settings
  corridors run

  # Widen the band and keep the top 50
  corridors run --min-distance 75 --max-distance 600 --top-n 50

  # Fully offline, using saved ACS tables
  CORRIDORS_CENSUS_PLACE_CSV=Data/acs_places.csv \
  CORRIDORS_CENSUS_CBSA_CSV=Data/acs_cbsa.csv corridors run`,
	RunE: runCorridors,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("min-distance", 0, "minimum corridor distance in miles (overrides config)")
	f.Float64("max-distance", 0, "maximum corridor distance in miles (overrides config)")
	f.Int("top-n", 0, "number of corridors to keep (overrides config)")
	f.String("data-dir", "", "input data directory (overrides config)")
	f.String("output-dir", "", "output directory (overrides config)")
}

func runCorridors(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runCfg := applyRunOverrides(cmd, *cfg)
	if err := runCfg.Validate("run"); err != nil {
		return err
	}

	sum, err := pipeline.Run(ctx, &runCfg)
	if err != nil {
		return eris.Wrap(err, "corridor run")
	}

	zap.L().Info("corridor run complete",
		zap.String("run_id", sum.RunID),
		zap.Int("ranked", sum.Ranked),
	)

	printRunSummary(os.Stdout, sum)
	return nil
}

// applyRunOverrides returns a copy of the base config with CLI flag
// overrides applied.
func applyRunOverrides(cmd *cobra.Command, base config.Config) config.Config {
	c := base

	if v, _ := cmd.Flags().GetFloat64("min-distance"); v > 0 {
		c.Corridor.MinDistanceMi = v
	}
	if v, _ := cmd.Flags().GetFloat64("max-distance"); v > 0 {
		c.Corridor.MaxDistanceMi = v
	}
	if v, _ := cmd.Flags().GetInt("top-n"); v > 0 {
		c.Corridor.TopN = v
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		c.Data.Dir = v
	}
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		c.Data.OutputDir = v
	}

	return c
}

func printRunSummary(out io.Writer, sum *pipeline.Summary) {
	fmt.Fprintf(out, "\n--- Summary ---\n")
	fmt.Fprintf(out, "Run ID:          %s\n", sum.RunID)
	fmt.Fprintf(out, "Metros anchored: %d of %d loaded (%d without population)\n",
		sum.MetrosAnchored, sum.MetrosLoaded, sum.MetrosSkipped)
	fmt.Fprintf(out, "Pairs evaluated: %d\n", sum.PairsEvaluated)
	fmt.Fprintf(out, "Within band:     %d\n", sum.PairsWithinBand)
	fmt.Fprintf(out, "Ranked:          %d\n", sum.Ranked)
	fmt.Fprintf(out, "Duration:        %s\n", sum.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "\nOutputs:\n")
	for _, p := range sum.Outputs {
		fmt.Fprintf(out, "  %s\n", p)
	}
}
