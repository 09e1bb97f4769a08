package export

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LineStyle is the Leaflet styling for one polyline overlay.
type LineStyle struct {
	Color   string  `yaml:"color"`
	Weight  float64 `yaml:"weight"`
	Opacity float64 `yaml:"opacity"`
}

// LayerStyles collects the styling of the static map overlays. Fields
// omitted from a YAML override file keep their defaults.
type LayerStyles struct {
	States       LineStyle `yaml:"states"`
	Freight      LineStyle `yaml:"freight"`
	Amtrak       LineStyle `yaml:"amtrak"`
	AirportColor string    `yaml:"airport_color"`
}

// DefaultStyles returns the built-in overlay styling.
func DefaultStyles() LayerStyles {
	return LayerStyles{
		States:       LineStyle{Color: "black", Weight: 1, Opacity: 1},
		Freight:      LineStyle{Color: "#8B4513", Weight: 1, Opacity: 0.7},
		Amtrak:       LineStyle{Color: "#008000", Weight: 2, Opacity: 0.9},
		AirportColor: "purple",
	}
}

// LoadStyles returns the default styling overlaid with any YAML
// overrides read from path. An empty path means defaults only.
func LoadStyles(path string) (LayerStyles, error) {
	styles := DefaultStyles()
	if path == "" {
		return styles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return styles, eris.Wrap(err, "export: read styles file")
	}
	if err := yaml.Unmarshal(data, &styles); err != nil {
		return styles, eris.Wrap(err, "export: parse styles file")
	}
	return styles, nil
}
