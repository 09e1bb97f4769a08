package geo

import (
	"math"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// Densify returns the great-circle path from a to b with intermediate
// points spaced at most intervalMi apart. The first and last points are
// exactly a and b, and the result always has at least two points.
func Densify(a, b model.LatLon, intervalMi float64) []model.LatLon {
	total := DistanceMi(a, b)
	if intervalMi <= 0 || total <= intervalMi {
		return []model.LatLon{a, b}
	}

	// Angular distance between the endpoints.
	delta := total / EarthRadiusMi
	sinDelta := math.Sin(delta)
	if sinDelta == 0 {
		return []model.LatLon{a, b}
	}

	lat1, lon1 := radians(a.Lat), radians(a.Lon)
	lat2, lon2 := radians(b.Lat), radians(b.Lon)

	segments := int(math.Ceil(total / intervalMi))
	path := make([]model.LatLon, 0, segments+1)
	path = append(path, a)
	for i := 1; i < segments; i++ {
		f := float64(i) / float64(segments)
		p := math.Sin((1-f)*delta) / sinDelta
		q := math.Sin(f*delta) / sinDelta

		x := p*math.Cos(lat1)*math.Cos(lon1) + q*math.Cos(lat2)*math.Cos(lon2)
		y := p*math.Cos(lat1)*math.Sin(lon1) + q*math.Cos(lat2)*math.Sin(lon2)
		z := p*math.Sin(lat1) + q*math.Sin(lat2)

		path = append(path, model.LatLon{
			Lat: degrees(math.Atan2(z, math.Hypot(x, y))),
			Lon: degrees(math.Atan2(y, x)),
		})
	}
	return append(path, b)
}
