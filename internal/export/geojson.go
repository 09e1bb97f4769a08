package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// WriteGeoJSON writes ranked corridors as a FeatureCollection, one
// LineString feature per corridor carrying the scoring attributes.
func WriteGeoJSON(path string, corridors []model.Corridor) error {
	data, err := json.Marshal(corridorFeatureCollection(corridors))
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "export: write geojson")
	}

	zap.L().Info("export: geojson written",
		zap.String("path", path),
		zap.Int("corridors", len(corridors)),
	)
	return nil
}

func corridorFeatureCollection(corridors []model.Corridor) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(corridors))}
	for i := range corridors {
		c := &corridors[i]
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: corridorLineString(c),
			Properties: map[string]interface{}{
				"from":         c.From.ShortName(),
				"to":           c.To.ShortName(),
				"population_a": c.From.Population,
				"population_b": c.To.Population,
				"distance_mi":  c.DistanceMi,
				"score":        c.Score,
				"rank":         c.Rank,
			},
		})
	}
	return fc
}

func corridorLineString(c *model.Corridor) *geom.LineString {
	path := corridorPath(c)
	coords := make([]geom.Coord, len(path))
	for i, p := range path {
		coords[i] = geom.Coord{p.Lon, p.Lat}
	}
	return geom.NewLineString(geom.XY).MustSetCoords(coords)
}
