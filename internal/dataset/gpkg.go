package dataset

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/geo"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// LoadPlaces reads census places from a GeoPackage feature layer. A
// place's point is its geometry directly for point layers, or the
// polygon centroid otherwise. Population fields stay unset; the ACS
// join happens downstream.
func LoadPlaces(path, layer string) ([]model.Place, error) {
	// sql.Open would create an empty database at a missing path.
	if _, err := os.Stat(path); err != nil {
		return nil, eris.Wrapf(err, "dataset: places geopackage %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open geopackage %s", path)
	}
	defer func() { _ = db.Close() }()

	geomCol, err := geometryColumn(db, layer)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT "STATEFP", "GEOID", "NAME", "%s" FROM "%s"`, geomCol, layer)
	rows, err := db.Query(query)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: query places layer %s", layer)
	}
	defer rows.Close()

	var places []model.Place
	var skipped int

	for rows.Next() {
		var stateFIPS, geoid, name sql.NullString
		var blob []byte
		if err := rows.Scan(&stateFIPS, &geoid, &name, &blob); err != nil {
			return nil, eris.Wrap(err, "dataset: scan place row")
		}

		g, err := parseGPKGGeometry(blob)
		if err != nil || g == nil {
			skipped++
			continue
		}
		pt, ok := placePoint(g)
		if !ok {
			skipped++
			continue
		}

		places = append(places, model.Place{
			GEOID:     geoid.String,
			Name:      name.String,
			StateFIPS: stateFIPS.String,
			Point:     pt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "dataset: iterate place rows")
	}

	if skipped > 0 {
		zap.L().Debug("dataset: skipped places without usable geometry", zap.Int("skipped", skipped))
	}
	return places, nil
}

// geometryColumn resolves the geometry column of a GeoPackage layer via
// gpkg_geometry_columns, erroring with the available feature layers when
// the layer is unknown.
func geometryColumn(db *sql.DB, layer string) (string, error) {
	var col string
	err := db.QueryRow(
		`SELECT column_name FROM gpkg_geometry_columns WHERE table_name = ?`, layer,
	).Scan(&col)
	if err == sql.ErrNoRows {
		available, listErr := featureLayers(db)
		if listErr != nil {
			return "", listErr
		}
		return "", eris.Errorf("dataset: geopackage layer %q not found (available: %v)", layer, available)
	}
	if err != nil {
		return "", eris.Wrap(err, "dataset: read gpkg_geometry_columns")
	}
	return col, nil
}

func featureLayers(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT table_name FROM gpkg_contents WHERE data_type = 'features' ORDER BY table_name`)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read gpkg_contents")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, eris.Wrap(err, "dataset: scan gpkg_contents row")
		}
		names = append(names, n)
	}
	return names, eris.Wrap(rows.Err(), "dataset: iterate gpkg_contents")
}

// parseGPKGGeometry decodes a GeoPackage geometry blob: the "GP" binary
// header followed by standard WKB. Returns nil for the empty-geometry
// flag.
func parseGPKGGeometry(blob []byte) (geom.T, error) {
	if len(blob) < 8 {
		return nil, eris.New("dataset: gpkg geometry blob too short")
	}
	if blob[0] != 'G' || blob[1] != 'P' {
		return nil, eris.New("dataset: bad gpkg geometry magic")
	}

	flags := blob[3]
	if flags&0x20 != 0 {
		return nil, eris.New("dataset: extended gpkg geometry not supported")
	}
	if flags&0x10 != 0 {
		return nil, nil // empty geometry
	}

	envSize, err := envelopeSize((flags >> 1) & 0x07)
	if err != nil {
		return nil, err
	}
	offset := 8 + envSize
	if len(blob) < offset {
		return nil, eris.New("dataset: gpkg geometry blob truncated")
	}

	g, err := wkb.Unmarshal(blob[offset:])
	if err != nil {
		return nil, eris.Wrap(err, "dataset: decode gpkg wkb")
	}
	return g, nil
}

// envelopeSize maps the header's envelope contents indicator to its
// byte length.
func envelopeSize(indicator byte) (int, error) {
	switch indicator {
	case 0:
		return 0, nil
	case 1:
		return 32, nil // minx, maxx, miny, maxy
	case 2, 3:
		return 48, nil // + z or m range
	case 4:
		return 64, nil // + z and m ranges
	default:
		return 0, eris.Errorf("dataset: invalid gpkg envelope indicator %d", indicator)
	}
}

func placePoint(g geom.T) (model.LatLon, bool) {
	switch t := g.(type) {
	case *geom.Point:
		return model.LatLon{Lon: t.X(), Lat: t.Y()}, true
	case *geom.MultiPolygon:
		return geo.MultiPolygonCentroid(t), true
	case *geom.Polygon:
		mp := geom.NewMultiPolygon(geom.XY)
		if err := mp.Push(t); err != nil {
			return model.LatLon{}, false
		}
		return geo.MultiPolygonCentroid(mp), true
	default:
		return model.LatLon{}, false
	}
}
