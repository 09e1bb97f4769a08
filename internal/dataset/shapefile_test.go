package dataset

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeShapefile creates a shapefile with the given fields and records.
// Each record pairs a shape with its attribute values in field order.
func writeShapefile(t *testing.T, path string, shapeType shp.ShapeType, fields []shp.Field, shapes []shp.Shape, attrs [][]interface{}) {
	t.Helper()

	w, err := shp.Create(path, shapeType)
	require.NoError(t, err)
	require.NoError(t, w.SetFields(fields))

	for row, shape := range shapes {
		w.Write(shape)
		for col, val := range attrs[row] {
			require.NoError(t, w.WriteAttribute(row, col, val))
		}
	}
	require.NoError(t, w.Close())
}

func squarePolygon(minLon, minLat, maxLon, maxLat float64) *shp.Polygon {
	ring := []shp.Point{
		{X: minLon, Y: minLat},
		{X: minLon, Y: maxLat},
		{X: maxLon, Y: maxLat},
		{X: maxLon, Y: minLat},
		{X: minLon, Y: minLat},
	}
	p := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
	return &p
}

func TestLoadMetroAreas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cbsa.shp")
	writeShapefile(t, path, shp.POLYGON,
		[]shp.Field{
			shp.StringField("GEOID", 5),
			shp.StringField("NAME", 100),
			shp.StringField("LSAD", 2),
		},
		[]shp.Shape{
			squarePolygon(-88.5, 41.0, -87.5, 42.0),
			squarePolygon(-90.5, 38.0, -89.5, 39.0),
		},
		[][]interface{}{
			{"16980", "Chicago-Naperville-Elgin, IL-IN-WI", "M1"},
			{"41180", "St. Louis, MO-IL", "M1"},
		},
	)

	metros, err := LoadMetroAreas(path)
	require.NoError(t, err)
	require.Len(t, metros, 2)

	assert.Equal(t, "16980", metros[0].GEOID)
	assert.Equal(t, "Chicago-Naperville-Elgin, IL-IN-WI", metros[0].Name)
	assert.Equal(t, "M1", metros[0].LSAD)
	require.NotNil(t, metros[0].Boundary)
	assert.Equal(t, 1, metros[0].Boundary.NumPolygons())

	assert.Equal(t, "St. Louis, MO-IL", metros[1].Name)
}

func TestLoadMetroAreas_MissingFile(t *testing.T) {
	_, err := LoadMetroAreas(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}

func TestLoadStations_NameFieldVariants(t *testing.T) {
	for _, field := range []string{"StationNam", "Name", "NAME", "STATION"} {
		path := filepath.Join(t.TempDir(), "stations.shp")
		writeShapefile(t, path, shp.POINT,
			[]shp.Field{shp.StringField(field, 50)},
			[]shp.Shape{&shp.Point{X: -87.6398, Y: 41.8789}},
			[][]interface{}{{"Chicago Union Station"}},
		)

		stations, err := LoadStations(path)
		require.NoError(t, err, "field %s", field)
		require.Len(t, stations, 1)
		assert.Equal(t, "Chicago Union Station", stations[0].Name)
		assert.InDelta(t, 41.8789, stations[0].Point.Lat, 1e-9)
		assert.InDelta(t, -87.6398, stations[0].Point.Lon, 1e-9)
	}
}

func TestLoadStations_FallbackNameWhenNoKnownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.shp")
	writeShapefile(t, path, shp.POINT,
		[]shp.Field{shp.StringField("OBJECTID", 10)},
		[]shp.Shape{&shp.Point{X: -75.0, Y: 40.0}},
		[][]interface{}{{"1"}},
	)

	stations, err := LoadStations(path)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "Station", stations[0].Name)
}

func TestLoadAirports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.shp")
	writeShapefile(t, path, shp.POINT,
		[]shp.Field{
			shp.StringField("ARPT_ID", 4),
			shp.StringField("ARPT_NAME", 50),
			shp.StringField("FAR_139_TY", 20),
		},
		[]shp.Shape{
			&shp.Point{X: -87.9073, Y: 41.9744},
			&shp.Point{X: -88.1, Y: 41.5},
		},
		[][]interface{}{
			{"ORD", "CHICAGO O'HARE INTL", "I A S 05/1973"},
			{"1C5", "BOLINGBROOK'S CLOW INTL", ""},
		},
	)

	airports, err := LoadAirports(path)
	require.NoError(t, err)
	require.Len(t, airports, 2)
	assert.Equal(t, "ORD", airports[0].LocationID)
	assert.Equal(t, "CHICAGO O'HARE INTL", airports[0].Name)
	assert.Equal(t, "I A S 05/1973", airports[0].Certification)

	classI := FilterClassI(airports)
	require.Len(t, classI, 1)
	assert.Equal(t, "ORD", classI[0].LocationID)
}

func TestLoadRailLines_MultiPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rail.shp")
	line := shp.NewPolyLine([][]shp.Point{
		{{X: -88, Y: 41}, {X: -87, Y: 41.5}},
		{{X: -90, Y: 38}, {X: -89, Y: 38.5}, {X: -88.5, Y: 39}},
	})
	writeShapefile(t, path, shp.POLYLINE,
		[]shp.Field{shp.StringField("ID", 4)},
		[]shp.Shape{line},
		[][]interface{}{{"1"}},
	)

	lines, err := LoadRailLines(path)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Geometry)
	assert.Equal(t, 2, lines[0].Geometry.NumLineStrings())
	assert.Equal(t, 2, lines[0].Geometry.LineString(0).NumCoords())
	assert.Equal(t, 3, lines[0].Geometry.LineString(1).NumCoords())
}

func TestLoadStates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.shp")
	writeShapefile(t, path, shp.POLYGON,
		[]shp.Field{shp.StringField("STUSPS", 2)},
		[]shp.Shape{squarePolygon(-91, 36, -87, 42)},
		[][]interface{}{{"IL"}},
	)

	states, err := LoadStates(path)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "IL", states[0].STUSPS)
	require.NotNil(t, states[0].Geometry)
}
