// Package geo provides the spherical geometry used by corridor scoring:
// great-circle distances, path densification, and centroid math.
package geo

import (
	"math"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// EarthRadiusMi is the mean Earth radius in statute miles.
const EarthRadiusMi = 3958.7613

// DistanceMi returns the haversine great-circle distance between a and b
// in statute miles.
func DistanceMi(a, b model.LatLon) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if h > 1 {
		h = 1 // rounding can push antipodal pairs past 1
	}
	return 2 * EarthRadiusMi * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
