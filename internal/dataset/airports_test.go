package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

func TestIsClassI(t *testing.T) {
	tests := []struct {
		name          string
		certification string
		locationID    string
		want          bool
	}{
		{"class I with date", "I A S 05/1973", "ORD", true},
		{"class II also starts with I", "II B S", "MDW", true},
		{"lowercase id is alpha", "I A S", "ord", true},
		{"whitespace trimmed", "  i c s  ", " ATL ", true},
		{"empty certification", "", "ORD", false},
		{"certification without I prefix", "B S", "ORD", false},
		{"id with digit", "I A S", "1C5", false},
		{"id too long", "I A S", "KORD", false},
		{"id too short", "I A S", "OR", false},
		{"both empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsClassI(tt.certification, tt.locationID))
		})
	}
}

func TestFilterClassI_PreservesOrder(t *testing.T) {
	airports := []model.Airport{
		{LocationID: "ORD", Certification: "I A S 05/1973"},
		{LocationID: "1C5", Certification: ""},
		{LocationID: "MDW", Certification: "I B S 05/1973"},
		{LocationID: "DPA", Certification: "IV"},
	}

	got := FilterClassI(airports)
	ids := make([]string, len(got))
	for i, a := range got {
		ids[i] = a.LocationID
	}
	assert.Equal(t, []string{"ORD", "MDW", "DPA"}, ids)
}
