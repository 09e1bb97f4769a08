package model

import "github.com/twpayne/go-geom"

// Station is an Amtrak station point for the map overlay.
type Station struct {
	Name  string `json:"name"`
	Point LatLon `json:"point"`
}

// Airport is a public airport from the FAA facilities layer.
type Airport struct {
	LocationID    string `json:"location_id"` // FAA identifier, e.g. "ORD"
	Name          string `json:"name"`
	Certification string `json:"certification"` // FAR Part 139 class, e.g. "I E S 05/1973"
	Point         LatLon `json:"point"`
}

// RailLine is one record from a rail network shapefile.
type RailLine struct {
	Geometry *geom.MultiLineString `json:"-"`
}

// StateBoundary is one state polygon for the map backdrop.
type StateBoundary struct {
	STUSPS   string             `json:"stusps"`
	Geometry *geom.MultiPolygon `json:"-"`
}
