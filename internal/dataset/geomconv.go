package dataset

import (
	"github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// shapePoint extracts the XY coordinate from a point shape. The bool is
// false for nil or non-point shapes.
func shapePoint(shape shp.Shape) (model.LatLon, bool) {
	switch s := shape.(type) {
	case *shp.Point:
		return model.LatLon{Lat: s.Y, Lon: s.X}, true
	case *shp.PointM:
		return model.LatLon{Lat: s.Y, Lon: s.X}, true
	case *shp.PointZ:
		return model.LatLon{Lat: s.Y, Lon: s.X}, true
	default:
		return model.LatLon{}, false
	}
}

// shapeMultiLineString converts a polyline shape (2D, M, or Z) to a
// MultiLineString. Returns nil for unsupported or empty shapes.
func shapeMultiLineString(shape shp.Shape) *geom.MultiLineString {
	switch s := shape.(type) {
	case *shp.PolyLine:
		return multiLineString(s.Parts, s.Points)
	case *shp.PolyLineM:
		return multiLineString(s.Parts, s.Points)
	case *shp.PolyLineZ:
		return multiLineString(s.Parts, s.Points)
	default:
		return nil
	}
}

// shapeMultiPolygon converts a polygon shape (2D, M, or Z) to a
// MultiPolygon. Returns nil for unsupported or empty shapes.
func shapeMultiPolygon(shape shp.Shape) *geom.MultiPolygon {
	switch s := shape.(type) {
	case *shp.Polygon:
		return multiPolygon(s.Parts, s.Points)
	case *shp.PolygonM:
		return multiPolygon(s.Parts, s.Points)
	case *shp.PolygonZ:
		return multiPolygon(s.Parts, s.Points)
	default:
		return nil
	}
}

func multiLineString(parts []int32, points []shp.Point) *geom.MultiLineString {
	if len(parts) == 0 || len(points) == 0 {
		return nil
	}

	mls := geom.NewMultiLineString(geom.XY).SetSRID(4326)
	for i := range parts {
		ls := geom.NewLineStringFlat(geom.XY, partFlatCoords(parts, points, i))
		if err := mls.Push(ls); err != nil {
			zap.L().Debug("dataset: skipping malformed linestring part", zap.Int("part", i), zap.Error(err))
			continue
		}
	}

	if mls.NumLineStrings() == 0 {
		return nil
	}
	return mls
}

func multiPolygon(parts []int32, points []shp.Point) *geom.MultiPolygon {
	if len(parts) == 0 || len(points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	for i := range parts {
		ring := geom.NewLinearRingFlat(geom.XY, partFlatCoords(parts, points, i))
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("dataset: skipping malformed polygon ring", zap.Int("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("dataset: skipping malformed polygon part", zap.Int("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// partFlatCoords returns the flat XY coordinates of part i of a
// shapefile part array.
func partFlatCoords(parts []int32, points []shp.Point, i int) []float64 {
	start := parts[i]
	end := int32(len(points))
	if i+1 < len(parts) {
		end = parts[i+1]
	}

	flat := make([]float64, 0, (end-start)*2)
	for j := start; j < end && j < int32(len(points)); j++ {
		flat = append(flat, points[j].X, points[j].Y)
	}
	return flat
}
