package anchor

import (
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/pkg/census"
)

// JoinPlacePopulations copies ACS place populations onto the places
// whose normalized name and state FIPS match. Later ACS rows win on key
// collisions. Places without a matching usable estimate keep
// HasPopulation false.
func JoinPlacePopulations(places []model.Place, rows []census.PopulationRow) {
	pops := make(map[string]census.PopulationRow, len(rows))
	for _, r := range rows {
		pops[ACSPlaceKey(r.Name, r.StateFIPS)] = r
	}

	for i := range places {
		r, ok := pops[PlaceKey(places[i].Name, places[i].StateFIPS)]
		if !ok || !r.HasPopulation {
			continue
		}
		places[i].Population = r.Population
		places[i].HasPopulation = true
	}
}

// JoinMetroPopulations copies CBSA populations onto metros by GEOID.
// Metros without a usable estimate keep HasPopulation false and are
// excluded from scoring downstream.
func JoinMetroPopulations(metros []model.MetroArea, rows []census.PopulationRow) {
	byGeoID := make(map[string]census.PopulationRow, len(rows))
	for _, r := range rows {
		byGeoID[r.GeoID] = r
	}

	for i := range metros {
		r, ok := byGeoID[metros[i].GEOID]
		if !ok || !r.HasPopulation {
			continue
		}
		metros[i].Population = r.Population
		metros[i].HasPopulation = true
	}
}
