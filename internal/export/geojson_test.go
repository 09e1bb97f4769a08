package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

func TestWriteGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridors_top100.geojson")

	require.NoError(t, WriteGeoJSON(path, corridorFixture()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fc geojson.FeatureCollection
	require.NoError(t, json.Unmarshal(data, &fc))
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	assert.Equal(t, "Chicago-Naperville-Elgin", f.Properties["from"])
	assert.Equal(t, "Detroit-Warren-Dearborn", f.Properties["to"])
	assert.EqualValues(t, 9_400_000, f.Properties["population_a"])
	assert.EqualValues(t, 4_300_000, f.Properties["population_b"])
	assert.InDelta(t, 238.3, f.Properties["distance_mi"].(float64), 1e-9)
	assert.InDelta(t, 712_000_000, f.Properties["score"].(float64), 1e-3)
	assert.EqualValues(t, 1, f.Properties["rank"])

	line, ok := f.Geometry.(*geom.LineString)
	require.True(t, ok)
	require.Equal(t, 3, line.NumCoords())
	assert.InDelta(t, -87.65, line.Coord(0).X(), 1e-9)
	assert.InDelta(t, 41.85, line.Coord(0).Y(), 1e-9)
	assert.InDelta(t, -83.0458, line.Coord(2).X(), 1e-9)
}

func TestWriteGeoJSON_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.geojson")

	require.NoError(t, WriteGeoJSON(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fc geojson.FeatureCollection
	require.NoError(t, json.Unmarshal(data, &fc))
	assert.Empty(t, fc.Features)
}
