package geo

import (
	"github.com/twpayne/go-geom"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// WeightedMean returns the weighted average of points, longitude and
// latitude averaged independently. Entries with weight <= 0 are skipped.
// The bool is false when no entry carried a positive weight.
func WeightedMean(points []model.LatLon, weights []float64) (model.LatLon, bool) {
	var sumW, sumLat, sumLon float64
	for i, pt := range points {
		w := weights[i]
		if w <= 0 {
			continue
		}
		sumW += w
		sumLat += pt.Lat * w
		sumLon += pt.Lon * w
	}
	if sumW == 0 {
		return model.LatLon{}, false
	}
	return model.LatLon{Lat: sumLat / sumW, Lon: sumLon / sumW}, true
}

// Mean returns the unweighted average of points. The bool is false for
// an empty slice.
func Mean(points []model.LatLon) (model.LatLon, bool) {
	if len(points) == 0 {
		return model.LatLon{}, false
	}
	var sumLat, sumLon float64
	for _, pt := range points {
		sumLat += pt.Lat
		sumLon += pt.Lon
	}
	n := float64(len(points))
	return model.LatLon{Lat: sumLat / n, Lon: sumLon / n}, true
}

// MultiPolygonCentroid returns the area-weighted centroid of mp on the
// lon/lat plane. Rings wound opposite the outer ring (holes, in
// shapefile convention) subtract their area. Degenerate geometry falls
// back to the mean of the vertices.
func MultiPolygonCentroid(mp *geom.MultiPolygon) model.LatLon {
	var cross, sumX, sumY float64

	for _, polygon := range mp.Coords() {
		for _, ring := range polygon {
			n := len(ring)
			for i := 0; i < n; i++ {
				j := (i + 1) % n
				c := ring[i][0]*ring[j][1] - ring[j][0]*ring[i][1]
				cross += c
				sumX += (ring[i][0] + ring[j][0]) * c
				sumY += (ring[i][1] + ring[j][1]) * c
			}
		}
	}

	if cross != 0 {
		return model.LatLon{Lon: sumX / (3 * cross), Lat: sumY / (3 * cross)}
	}
	return vertexMean(mp)
}

func vertexMean(mp *geom.MultiPolygon) model.LatLon {
	var n int
	var sumLon, sumLat float64
	for _, polygon := range mp.Coords() {
		for _, ring := range polygon {
			for _, c := range ring {
				sumLon += c[0]
				sumLat += c[1]
				n++
			}
		}
	}
	if n == 0 {
		return model.LatLon{}
	}
	return model.LatLon{Lon: sumLon / float64(n), Lat: sumLat / float64(n)}
}
