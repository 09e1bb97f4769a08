package pipeline

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/config"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/dataset"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/store"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/pkg/census"
)

// loadInputs reads every configured dataset plus the population tables.
// An empty states path hides the state layer rather than failing.
func loadInputs(ctx context.Context, cfg *config.Config) (*Inputs, error) {
	dir := cfg.Data.Dir
	var in Inputs
	var err error

	if in.Metros, err = dataset.LoadMetroAreas(dataset.Resolve(dir, cfg.Data.CBSA)); err != nil {
		return nil, err
	}
	if in.Places, err = dataset.LoadPlaces(dataset.Resolve(dir, cfg.Data.PlacesGPKG), cfg.Data.PlacesLayer); err != nil {
		return nil, err
	}
	if in.Stations, err = dataset.LoadStations(dataset.Resolve(dir, cfg.Data.AmtrakStations)); err != nil {
		return nil, err
	}
	if in.Airports, err = dataset.LoadAirports(dataset.Resolve(dir, cfg.Data.Airports)); err != nil {
		return nil, err
	}
	if in.Freight, err = dataset.LoadRailLines(dataset.Resolve(dir, cfg.Data.FreightLines)); err != nil {
		return nil, err
	}
	if in.Amtrak, err = dataset.LoadRailLines(dataset.Resolve(dir, cfg.Data.AmtrakRoutes)); err != nil {
		return nil, err
	}
	if cfg.Data.States != "" {
		if in.States, err = dataset.LoadStates(dataset.Resolve(dir, cfg.Data.States)); err != nil {
			return nil, err
		}
	}

	zap.L().Info("pipeline: datasets loaded",
		zap.Int("metros", len(in.Metros)),
		zap.Int("places", len(in.Places)),
		zap.Int("stations", len(in.Stations)),
		zap.Int("airports", len(in.Airports)),
		zap.Int("freight_lines", len(in.Freight)),
		zap.Int("amtrak_routes", len(in.Amtrak)),
		zap.Int("states", len(in.States)),
	)

	in.PlacePops, in.MetroPops, err = populations(ctx, cfg.Census)
	if err != nil {
		return nil, err
	}
	zap.L().Info("pipeline: populations loaded",
		zap.Int("place_rows", len(in.PlacePops)),
		zap.Int("metro_rows", len(in.MetroPops)),
	)

	return &in, nil
}

// populations returns the place and CBSA population tables, from local
// CSV files when both are configured, otherwise from the Census API.
func populations(ctx context.Context, cfg config.CensusConfig) (places, metros []census.PopulationRow, err error) {
	if cfg.PlaceCSV != "" && cfg.CBSACSV != "" {
		zap.L().Info("pipeline: loading populations from CSV",
			zap.String("place_csv", cfg.PlaceCSV),
			zap.String("cbsa_csv", cfg.CBSACSV),
		)
		if places, err = census.LoadPlaceCSV(cfg.PlaceCSV); err != nil {
			return nil, nil, err
		}
		if metros, err = census.LoadMetroCSV(cfg.CBSACSV); err != nil {
			return nil, nil, err
		}
		return places, metros, nil
	}

	opts := []census.Option{
		census.WithBaseURL(cfg.BaseURL),
		census.WithYear(cfg.Year),
		census.WithDatasets(cfg.PlaceDataset, cfg.CBSADataset),
		census.WithVariable(cfg.Variable),
		census.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second}),
		census.WithRateLimit(float64(cfg.RateLimit)),
	}
	if cfg.APIKey != "" {
		opts = append(opts, census.WithAPIKey(cfg.APIKey))
	}
	if cfg.CachePath != "" {
		cache, cerr := store.OpenResponseCache(cfg.CachePath)
		if cerr != nil {
			return nil, nil, cerr
		}
		defer func() { _ = cache.Close() }()
		if merr := cache.Migrate(ctx); merr != nil {
			return nil, nil, merr
		}
		opts = append(opts, census.WithCache(cache, time.Duration(cfg.CacheTTLHours)*time.Hour))
	}

	client := census.NewClient(opts...)
	if places, err = client.PlacePopulations(ctx); err != nil {
		return nil, nil, err
	}
	if metros, err = client.MetroPopulations(ctx); err != nil {
		return nil, nil, err
	}
	return places, metros, nil
}
