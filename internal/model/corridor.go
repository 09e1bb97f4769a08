package model

// Corridor is a scored metro pair within the distance band.
type Corridor struct {
	From *MetroArea `json:"-"`
	To   *MetroArea `json:"-"`

	// Seq is the pair's position in enumeration order and the tie-break
	// key when scores are equal.
	Seq int `json:"seq"`

	DistanceMi float64 `json:"distance_mi"`

	// Score is the gravity score popA*popB/distance^2.
	Score float64 `json:"score"`

	// Rank is 1-based, assigned after sorting. Zero until ranked.
	Rank int `json:"rank"`

	// Path is the densified great-circle geometry between the anchors.
	// Nil until the densifier runs.
	Path []LatLon `json:"path,omitempty"`
}
