// Package anchor places each metro area's representative point. A CBSA
// title names its principal cities; their place centroids, weighted by
// ACS population, average into the anchor the corridor scoring runs on.
package anchor

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/dataset"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/geo"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// BuildPlaceLookup indexes places by normalized name and state FIPS.
// Later rows win on key collisions.
func BuildPlaceLookup(places []model.Place) map[string]model.Place {
	lookup := make(map[string]model.Place, len(places))
	for _, p := range places {
		lookup[PlaceKey(p.Name, p.StateFIPS)] = p
	}
	return lookup
}

// principalCities splits a CBSA title like
// "Chicago-Naperville-Elgin, IL-IN-WI" into normalized city tokens and
// candidate state abbreviations.
func principalCities(title string) (cities []string, states []string, ok bool) {
	namePart, statePart, found := strings.Cut(title, ",")
	if !found {
		return nil, nil, false
	}

	for _, c := range strings.Split(namePart, "-") {
		cities = append(cities, Normalize(c))
	}

	fields := strings.Fields(statePart)
	if len(fields) == 0 {
		return nil, nil, false
	}
	for _, s := range strings.Split(fields[0], "-") {
		states = append(states, strings.TrimSpace(s))
	}
	return cities, states, true
}

// ComputeAnchors resolves an anchor for every metro and returns the
// metros that could be anchored. A metro is dropped only when its title
// matched no places and it carries no boundary geometry to fall back on.
func ComputeAnchors(metros []model.MetroArea, places []model.Place) []model.MetroArea {
	lookup := BuildPlaceLookup(places)
	caser := cases.Title(language.English)

	anchored := make([]model.MetroArea, 0, len(metros))
	for _, m := range metros {
		if !computeAnchor(&m, lookup, caser) {
			zap.L().Warn("anchor: skipping metro with no matched places and no boundary",
				zap.String("geoid", m.GEOID),
				zap.String("name", m.Name),
			)
			continue
		}
		anchored = append(anchored, m)
	}
	return anchored
}

func computeAnchor(m *model.MetroArea, lookup map[string]model.Place, caser cases.Caser) bool {
	cities, states, ok := principalCities(m.Name)
	if !ok {
		zap.L().Warn("anchor: unparseable CBSA title", zap.String("geoid", m.GEOID), zap.String("name", m.Name))
		return boundaryAnchor(m)
	}

	var matched []model.AnchorCity
	for _, city := range cities {
		// First state with a matching place claims the city.
		for _, st := range states {
			fips, ok := dataset.StateFIPS[st]
			if !ok {
				continue
			}
			place, ok := lookup[city+"|"+fips]
			if !ok {
				continue
			}
			matched = append(matched, model.AnchorCity{
				City:          caser.String(city),
				State:         st,
				Point:         place.Point,
				Population:    place.Population,
				HasPopulation: place.HasPopulation,
			})
			break
		}
	}

	if len(matched) == 0 {
		return boundaryAnchor(m)
	}

	m.AnchorCities = matched

	points := make([]model.LatLon, len(matched))
	weights := make([]float64, len(matched))
	for i, c := range matched {
		points[i] = c.Point
		if c.HasPopulation {
			weights[i] = float64(c.Population)
		}
	}

	if anchor, ok := geo.WeightedMean(points, weights); ok {
		m.Anchor = anchor
		m.AnchorSource = model.AnchorSourceWeighted
		return true
	}

	// Matched cities but no usable population: average them evenly.
	anchor, _ := geo.Mean(points)
	m.Anchor = anchor
	m.AnchorSource = model.AnchorSourceUnweighted
	return true
}

func boundaryAnchor(m *model.MetroArea) bool {
	if m.Boundary == nil {
		return false
	}
	m.Anchor = geo.MultiPolygonCentroid(m.Boundary)
	m.AnchorSource = model.AnchorSourceBoundary
	m.AnchorCities = nil
	return true
}
