package model

import "github.com/twpayne/go-geom"

// LatLon is a WGS84 coordinate pair in decimal degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AnchorSource records how a metro anchor was derived.
type AnchorSource string

const (
	AnchorSourceWeighted   AnchorSource = "pop_weighted" // population-weighted mean of principal cities
	AnchorSourceUnweighted AnchorSource = "unweighted"   // matched cities had no usable population
	AnchorSourceBoundary   AnchorSource = "boundary"     // geometric centroid of the CBSA polygon
)

// MetroArea is a CBSA metropolitan or micropolitan statistical area.
type MetroArea struct {
	GEOID string `json:"geoid"`
	Name  string `json:"name"` // census title, e.g. "Chicago-Naperville-Elgin, IL-IN-WI"
	LSAD  string `json:"lsad"` // "M1" metro, "M2" micro

	// Population is the ACS total population for the CBSA. HasPopulation
	// is false when the ACS had no usable row for this GEOID; such metros
	// are excluded from corridor scoring.
	Population    int64 `json:"population"`
	HasPopulation bool  `json:"has_population"`

	// Anchor is the representative point used for corridor distances.
	Anchor       LatLon       `json:"anchor"`
	AnchorSource AnchorSource `json:"anchor_source"`

	// AnchorCities is the per-city breakdown behind a weighted or
	// unweighted anchor. Empty for boundary-centroid anchors.
	AnchorCities []AnchorCity `json:"anchor_cities,omitempty"`

	// Boundary is the CBSA polygon in lon/lat order, as read from the
	// TIGER shapefile.
	Boundary *geom.MultiPolygon `json:"-"`
}

// ShortName returns the city part of the CBSA title, up to the first comma.
func (m *MetroArea) ShortName() string {
	for i := 0; i < len(m.Name); i++ {
		if m.Name[i] == ',' {
			return m.Name[:i]
		}
	}
	return m.Name
}

// AnchorCity is one principal city matched while building a metro anchor.
type AnchorCity struct {
	City          string `json:"city"`  // city name as written in the CBSA title
	State         string `json:"state"` // USPS abbreviation that resolved the match
	Point         LatLon `json:"point"`
	Population    int64  `json:"population"`
	HasPopulation bool   `json:"has_population"`
}

// Place is a census designated place with a representative point.
type Place struct {
	GEOID     string `json:"geoid"`
	Name      string `json:"name"` // TIGER NAME, with or without the LSAD suffix
	StateFIPS string `json:"state_fips"`

	Population    int64 `json:"population"`
	HasPopulation bool  `json:"has_population"`

	Point LatLon `json:"point"`
}
