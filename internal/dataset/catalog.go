package dataset

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/config"
)

// Descriptor describes one input dataset: where it lives on disk and,
// when it can be fetched automatically, where it comes from.
type Descriptor struct {
	Key      string // short name used in logs and on the CLI
	Path     string // resolved on-disk path
	URL      string // zip source; empty means manual download
	Note     string // hint shown for manual datasets
	Layer    string // feature table, GeoPackage datasets only
	Required bool
}

// Catalog resolves the configured dataset paths against the data
// directory. TIGER layers carry census.gov download URLs; the NTAD
// layers are exported interactively from the BTS open data portal and
// the places GeoPackage is assembled from per-state TIGER files, so
// both are manual.
func Catalog(cfg config.DataConfig) []Descriptor {
	catalog := []Descriptor{
		{
			Key:      "cbsa",
			Path:     Resolve(cfg.Dir, cfg.CBSA),
			URL:      "https://www2.census.gov/geo/tiger/TIGER2023/CBSA/tl_2023_us_cbsa.zip",
			Required: true,
		},
		{
			Key:  "states",
			Path: Resolve(cfg.Dir, cfg.States),
			URL:  "https://www2.census.gov/geo/tiger/TIGER2023/STATE/tl_2023_us_state.zip",
		},
		{
			Key:      "freight_lines",
			Path:     Resolve(cfg.Dir, cfg.FreightLines),
			Note:     "export from https://geodata.bts.gov (North American Rail Network Lines)",
			Required: true,
		},
		{
			Key:      "amtrak_routes",
			Path:     Resolve(cfg.Dir, cfg.AmtrakRoutes),
			Note:     "export from https://geodata.bts.gov (Amtrak Routes)",
			Required: true,
		},
		{
			Key:      "amtrak_stations",
			Path:     Resolve(cfg.Dir, cfg.AmtrakStations),
			Note:     "export from https://geodata.bts.gov (Amtrak Stations)",
			Required: true,
		},
		{
			Key:      "airports",
			Path:     Resolve(cfg.Dir, cfg.Airports),
			Note:     "export from https://geodata.bts.gov (Aviation Facilities)",
			Required: true,
		},
		{
			Key:      "places_gpkg",
			Path:     Resolve(cfg.Dir, cfg.PlacesGPKG),
			Note:     "merge TIGER place shapefiles into a GeoPackage (layer \"places\")",
			Layer:    cfg.PlacesLayer,
			Required: true,
		},
	}

	// An empty states path hides the layer entirely.
	if cfg.States == "" {
		catalog[1].Path = ""
	}
	return catalog
}

// Resolve joins a dataset path to the data directory unless it is
// already absolute.
func Resolve(dir, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Status reports whether a dataset file is present and its size.
func (d Descriptor) Status() (present bool, sizeBytes int64) {
	if d.Path == "" {
		return false, 0
	}
	info, err := os.Stat(d.Path)
	if err != nil {
		return false, 0
	}
	return true, info.Size()
}

// Records counts the features in a present dataset without loading
// geometry. Shapefile counts come from the fixed-width .shx index and
// GeoPackage layers are counted with SQL.
func (d Descriptor) Records() (int64, error) {
	switch {
	case strings.HasSuffix(d.Path, ".shp"):
		return shapefileRecords(d.Path)
	case strings.HasSuffix(d.Path, ".gpkg") && d.Layer != "":
		return gpkgRecords(d.Path, d.Layer)
	default:
		return 0, eris.Errorf("dataset: no record counter for %s", d.Path)
	}
}

// shapefileRecords derives the record count from the .shx companion
// file: a 100-byte header followed by one 8-byte entry per record.
func shapefileRecords(path string) (int64, error) {
	shx := strings.TrimSuffix(path, ".shp") + ".shx"
	info, err := os.Stat(shx)
	if err != nil {
		return 0, eris.Wrapf(err, "dataset: stat %s", shx)
	}
	if info.Size() < 100 || (info.Size()-100)%8 != 0 {
		return 0, eris.Errorf("dataset: malformed shx index %s", shx)
	}
	return (info.Size() - 100) / 8, nil
}

func gpkgRecords(path, layer string) (int64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, eris.Wrapf(err, "dataset: stat %s", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, eris.Wrapf(err, "dataset: open geopackage %s", path)
	}
	defer func() { _ = db.Close() }()

	var n int64
	if err := db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %q`, layer)).Scan(&n); err != nil {
		return 0, eris.Wrapf(err, "dataset: count %q features", layer)
	}
	return n, nil
}
