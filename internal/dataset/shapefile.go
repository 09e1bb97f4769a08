// Package dataset reads the corridor pipeline's geographic inputs:
// TIGER/Line and NTAD shapefiles plus the TIGER places GeoPackage.
package dataset

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// fieldIndex builds a lowercase field name → column index map for a
// shapefile reader. DBF field names are fixed-width and NUL padded.
func fieldIndex(reader *shp.Reader) map[string]int {
	fields := reader.Fields()
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		idx[strings.ToLower(name)] = i
	}
	return idx
}

// attribute returns the named attribute of the current record, trimmed,
// or "" when the field is absent.
func attribute(reader *shp.Reader, idx map[string]int, name string) string {
	i, ok := idx[strings.ToLower(name)]
	if !ok {
		return ""
	}
	val := strings.TrimRight(reader.Attribute(i), "\x00")
	return strings.TrimSpace(val)
}

// LoadMetroAreas reads the TIGER CBSA shapefile. Records without usable
// polygon geometry are skipped.
func LoadMetroAreas(path string) ([]model.MetroArea, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open CBSA shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	idx := fieldIndex(reader)
	var metros []model.MetroArea
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()
		boundary := shapeMultiPolygon(shape)
		if boundary == nil {
			skipped++
			continue
		}

		metros = append(metros, model.MetroArea{
			GEOID:    attribute(reader, idx, "GEOID"),
			Name:     attribute(reader, idx, "NAME"),
			LSAD:     attribute(reader, idx, "LSAD"),
			Boundary: boundary,
		})
	}

	if skipped > 0 {
		zap.L().Debug("dataset: skipped CBSA records without geometry", zap.Int("skipped", skipped))
	}
	return metros, nil
}

// LoadStates reads the TIGER state boundary shapefile.
func LoadStates(path string) ([]model.StateBoundary, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open state shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	idx := fieldIndex(reader)
	var states []model.StateBoundary

	for reader.Next() {
		_, shape := reader.Shape()
		boundary := shapeMultiPolygon(shape)
		if boundary == nil {
			continue
		}
		states = append(states, model.StateBoundary{
			STUSPS:   attribute(reader, idx, "STUSPS"),
			Geometry: boundary,
		})
	}
	return states, nil
}

// LoadRailLines reads a rail network shapefile, keeping geometry only.
func LoadRailLines(path string) ([]model.RailLine, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open rail shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	var lines []model.RailLine
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()
		mls := shapeMultiLineString(shape)
		if mls == nil {
			skipped++
			continue
		}
		lines = append(lines, model.RailLine{Geometry: mls})
	}

	if skipped > 0 {
		zap.L().Debug("dataset: skipped rail records without geometry",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return lines, nil
}

// stationNameFields are tried in order; NTAD has shipped the station
// name under different column names over the years.
var stationNameFields = []string{"StationNam", "Name", "NAME", "STATION"}

// LoadStations reads the Amtrak stations shapefile.
func LoadStations(path string) ([]model.Station, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open stations shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	idx := fieldIndex(reader)
	nameField := ""
	for _, f := range stationNameFields {
		if _, ok := idx[strings.ToLower(f)]; ok {
			nameField = f
			break
		}
	}

	var stations []model.Station
	for reader.Next() {
		_, shape := reader.Shape()
		pt, ok := shapePoint(shape)
		if !ok {
			continue
		}

		name := "Station"
		if nameField != "" {
			if v := attribute(reader, idx, nameField); v != "" {
				name = v
			}
		}
		stations = append(stations, model.Station{Name: name, Point: pt})
	}
	return stations, nil
}

// LoadAirports reads the FAA aviation facilities shapefile. All records
// with point geometry are returned; use FilterClassI for the corridor
// map's airport layer.
func LoadAirports(path string) ([]model.Airport, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open airports shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	idx := fieldIndex(reader)
	var airports []model.Airport

	for reader.Next() {
		_, shape := reader.Shape()
		pt, ok := shapePoint(shape)
		if !ok {
			continue
		}
		airports = append(airports, model.Airport{
			LocationID:    attribute(reader, idx, "ARPT_ID"),
			Name:          attribute(reader, idx, "ARPT_NAME"),
			Certification: attribute(reader, idx, "FAR_139_TY"),
			Point:         pt,
		})
	}
	return airports, nil
}
