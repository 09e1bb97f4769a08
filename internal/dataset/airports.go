package dataset

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// IsClassI reports whether an FAA facility is a Class I certificated
// airport (FAR Part 139 certification starting with "I") with a
// three-letter alphabetic location identifier.
func IsClassI(certification, locationID string) bool {
	cert := strings.ToUpper(strings.TrimSpace(certification))
	if !strings.HasPrefix(cert, "I") {
		return false
	}

	code := strings.TrimSpace(locationID)
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// FilterClassI returns the Class I airports in input order.
func FilterClassI(airports []model.Airport) []model.Airport {
	var out []model.Airport
	for _, a := range airports {
		if IsClassI(a.Certification, a.LocationID) {
			out = append(out, a)
		}
	}
	zap.L().Info("dataset: class-i airports filtered",
		zap.Int("kept", len(out)),
		zap.Int("total", len(airports)))
	return out
}
