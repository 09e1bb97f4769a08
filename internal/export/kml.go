package export

import (
	"fmt"
	"image/color"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-kml"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// WriteKML writes the ranked corridors as a KML overlay. Line color and
// width follow the same score ramp as the HTML map.
func WriteKML(path string, corridors []model.Corridor) error {
	max := maxScore(corridors)

	placemarks := make([]kml.Element, 0, len(corridors))
	for i := range corridors {
		c := &corridors[i]

		rel := 0.0
		if max > 0 {
			rel = c.Score / max
		}
		rgb := scoreColor(rel)

		var coords []kml.Coordinate
		for _, p := range corridorPath(c) {
			coords = append(coords, kml.Coordinate{Lon: p.Lon, Lat: p.Lat})
		}

		placemarks = append(placemarks, kml.Placemark(
			kml.Name(fmt.Sprintf("%s - %s", c.From.ShortName(), c.To.ShortName())),
			kml.Description(fmt.Sprintf("Rank %d, %.1f mi, score %s",
				c.Rank, c.DistanceMi, groupDigits(fmt.Sprintf("%.0f", c.Score)))),
			kml.Style(
				kml.LineStyle(
					kml.Color(color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 204}),
					kml.Width(1+6*rel),
				),
			),
			kml.LineString(kml.Coordinates(coords...)),
		))
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create kml")
	}
	defer f.Close()

	if err := kml.KML(kml.Document(placemarks...)).WriteIndent(f, "", "  "); err != nil {
		return eris.Wrap(err, "export: write kml")
	}
	return nil
}
