// Package export writes the pipeline outputs: the GeoJSON, CSV, XLSX
// and KML corridor tables, the verbose corridor log, and the
// interactive HTML map.
package export

import (
	"image/color"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// corridorPath returns the densified path, or the two anchors when the
// densifier has not run.
func corridorPath(c *model.Corridor) []model.LatLon {
	if len(c.Path) > 0 {
		return c.Path
	}
	return []model.LatLon{c.From.Anchor, c.To.Anchor}
}

// maxScore returns the highest corridor score, 0 for an empty slice.
func maxScore(corridors []model.Corridor) float64 {
	var max float64
	for i := range corridors {
		if corridors[i].Score > max {
			max = corridors[i].Score
		}
	}
	return max
}

// scoreColor maps a relative score in [0,1] onto the yellow-orange-red
// ramp used for corridor lines.
func scoreColor(rel float64) color.RGBA {
	if rel < 0 {
		rel = 0
	} else if rel > 1 {
		rel = 1
	}
	g := 255 - 180*rel
	if rel > 0.5 {
		g = 165 - 330*(rel-0.5)
	}
	return color.RGBA{R: 0xFF, G: uint8(g + 0.5), B: 0, A: 0xFF}
}

// groupDigits inserts thousands separators into a decimal integer
// literal: "12500000" becomes "12,500,000".
func groupDigits(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	if neg {
		return "-" + string(result)
	}
	return string(result)
}
