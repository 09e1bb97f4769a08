// Package pipeline wires dataset loading, population joins, anchor
// construction, corridor scoring, and export into a single run.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/anchor"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/config"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/corridor"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/dataset"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/export"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/geo"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/pkg/census"
)

// Inputs carries everything a run consumes, already loaded. Execute
// never touches the filesystem except to write outputs, so tests can
// drive it with synthetic data.
type Inputs struct {
	Metros   []model.MetroArea
	Places   []model.Place
	Stations []model.Station
	Airports []model.Airport
	Freight  []model.RailLine
	Amtrak   []model.RailLine
	States   []model.StateBoundary

	PlacePops []census.PopulationRow
	MetroPops []census.PopulationRow
}

// Summary reports what a run did.
type Summary struct {
	RunID           string
	MetrosLoaded    int
	MetrosAnchored  int
	MetrosScored    int
	MetrosSkipped   int
	PairsEvaluated  int
	PairsWithinBand int
	Ranked          int
	Outputs         []string
	Duration        time.Duration
}

// Run loads the configured datasets and population tables, then
// executes the corridor pipeline.
func Run(ctx context.Context, cfg *config.Config) (*Summary, error) {
	inputs, err := loadInputs(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Execute(inputs, cfg)
}

// Execute joins populations, anchors the metros, scores and ranks the
// corridors, densifies the ranked geometry, and writes every output.
func Execute(in *Inputs, cfg *config.Config) (*Summary, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := zap.L().With(zap.String("run_id", runID))

	log.Info("pipeline: starting corridor run",
		zap.Int("metros", len(in.Metros)),
		zap.Int("places", len(in.Places)),
		zap.Float64("min_distance_mi", cfg.Corridor.MinDistanceMi),
		zap.Float64("max_distance_mi", cfg.Corridor.MaxDistanceMi),
		zap.Int("top_n", cfg.Corridor.TopN),
	)

	anchor.JoinPlacePopulations(in.Places, in.PlacePops)
	anchor.JoinMetroPopulations(in.Metros, in.MetroPops)

	metros := anchor.ComputeAnchors(in.Metros, in.Places)
	log.Info("pipeline: anchors computed",
		zap.Int("anchored", len(metros)),
		zap.Int("dropped", len(in.Metros)-len(metros)),
	)

	res := corridor.Score(metros, cfg.Corridor)
	ranked := corridor.Rank(res.Corridors, cfg.Corridor.TopN)

	for i := range ranked {
		ranked[i].Path = geo.Densify(ranked[i].From.Anchor, ranked[i].To.Anchor, cfg.Corridor.DensifyIntervalMi)
	}

	if err := os.MkdirAll(cfg.Data.OutputDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "pipeline: create output dir %s", cfg.Data.OutputDir)
	}

	outputs, err := writeOutputs(ranked, res, in, cfg)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		RunID:           runID,
		MetrosLoaded:    len(in.Metros),
		MetrosAnchored:  len(metros),
		MetrosScored:    res.MetrosScored,
		MetrosSkipped:   res.MetrosSkipped,
		PairsEvaluated:  res.PairsEvaluated,
		PairsWithinBand: res.PairsWithinBand,
		Ranked:          len(ranked),
		Outputs:         outputs,
		Duration:        time.Since(start),
	}
	log.Info("pipeline: run complete",
		zap.Int("pairs_within_band", sum.PairsWithinBand),
		zap.Int("ranked", sum.Ranked),
		zap.Duration("duration", sum.Duration),
	)
	return sum, nil
}

// writeOutputs writes the ranking exports, the map, and the text log
// into the output directory, returning the paths in write order.
func writeOutputs(ranked []model.Corridor, res *corridor.Result, in *Inputs, cfg *config.Config) ([]string, error) {
	stem := fmt.Sprintf("corridors_top%d", cfg.Corridor.TopN)
	outDir := cfg.Data.OutputDir

	geojsonPath := filepath.Join(outDir, stem+".geojson")
	if err := export.WriteGeoJSON(geojsonPath, ranked); err != nil {
		return nil, err
	}

	csvPath := filepath.Join(outDir, stem+".csv")
	if err := export.WriteCSV(csvPath, ranked); err != nil {
		return nil, err
	}

	xlsxPath := filepath.Join(outDir, stem+".xlsx")
	if err := export.WriteXLSX(xlsxPath, ranked); err != nil {
		return nil, err
	}

	kmlPath := filepath.Join(outDir, stem+".kml")
	if err := export.WriteKML(kmlPath, ranked); err != nil {
		return nil, err
	}

	mapPath := filepath.Join(outDir, "corridor_map.html")
	mapData := export.MapData{
		Corridors: ranked,
		States:    in.States,
		Freight:   in.Freight,
		Amtrak:    in.Amtrak,
		Stations:  in.Stations,
		Airports:  dataset.FilterClassI(in.Airports),
		TopN:      cfg.Corridor.TopN,
	}
	if err := export.WriteMapHTML(mapPath, mapData, cfg.Map); err != nil {
		return nil, err
	}

	logPath := filepath.Join(outDir, "corridor_output_log.txt")
	if err := export.WriteCorridorLog(logPath, res, cfg.Corridor, len(ranked)); err != nil {
		return nil, err
	}

	return []string{geojsonPath, csvPath, xlsxPath, kmlPath, mapPath, logPath}, nil
}
