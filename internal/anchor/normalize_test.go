package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Chicago city", "chicago"},
		{"Shorewood village", "shorewood"},
		{"Normal town", "normal"},
		{"Towson CDP", "towson"},
		{"The Villages CDP", "the villages"},
		{"  Naperville  ", "naperville"},
		{"Española city", "espanola"},
		{"St. Louis city", "st. louis"},
		{"Cityville", "cityville"},
		{"Oklahoma City city", "oklahoma city"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestPlaceKey(t *testing.T) {
	assert.Equal(t, "chicago|17", PlaceKey("Chicago city", "17"))
	assert.Equal(t, "espanola|35", PlaceKey("Española city", "35"))
}

func TestACSPlaceKey_StripsStateSegment(t *testing.T) {
	assert.Equal(t, "chicago|17", ACSPlaceKey("Chicago city, Illinois", "17"))
	assert.Equal(t, "chicago|17", ACSPlaceKey("Chicago city", "17"))
}
