package export

import (
	"encoding/json"
	"html/template"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/config"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/model"
)

// MapData carries the layers drawn on the interactive map. Nil slices
// simply leave their layer off the map.
type MapData struct {
	Corridors []model.Corridor
	States    []model.StateBoundary
	Freight   []model.RailLine
	Amtrak    []model.RailLine
	Stations  []model.Station
	Airports  []model.Airport
	TopN      int
}

// mapPage is the template payload. Layer data arrives pre-marshaled so
// the template can splice it straight into the script block.
type mapPage struct {
	Title     string
	CenterLat float64
	CenterLon float64
	Zoom      int
	TopN      int
	MaxScore  float64
	Styles    LayerStyles
	States    template.JS
	Freight   template.JS
	Amtrak    template.JS
	Corridors template.JS
	Stations  template.JS
	Airports  template.JS
}

// pointMarker is the JSON shape consumed by the marker layers.
type pointMarker struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// WriteMapHTML renders the self-contained interactive map. Styling
// defaults match the shipped map and can be overridden per layer via
// cfg.StylesPath.
func WriteMapHTML(path string, data MapData, cfg config.MapConfig) error {
	styles, err := LoadStyles(cfg.StylesPath)
	if err != nil {
		return err
	}

	page := mapPage{
		Title:     cfg.Title,
		CenterLat: cfg.CenterLat,
		CenterLon: cfg.CenterLon,
		Zoom:      cfg.Zoom,
		TopN:      data.TopN,
		MaxScore:  maxScore(data.Corridors),
		Styles:    styles,
	}

	if page.Corridors, err = marshalJS(corridorFeatureCollection(data.Corridors)); err != nil {
		return eris.Wrap(err, "export: marshal corridor layer")
	}
	if page.States, err = stateLayerJS(data.States); err != nil {
		return eris.Wrap(err, "export: marshal state layer")
	}
	if page.Freight, err = lineLayerJS(data.Freight); err != nil {
		return eris.Wrap(err, "export: marshal freight layer")
	}
	if page.Amtrak, err = lineLayerJS(data.Amtrak); err != nil {
		return eris.Wrap(err, "export: marshal amtrak layer")
	}

	stations := make([]pointMarker, 0, len(data.Stations))
	for _, s := range data.Stations {
		stations = append(stations, pointMarker{Name: s.Name, Lat: s.Point.Lat, Lon: s.Point.Lon})
	}
	if page.Stations, err = marshalJS(stations); err != nil {
		return eris.Wrap(err, "export: marshal station layer")
	}

	airports := make([]pointMarker, 0, len(data.Airports))
	for _, a := range data.Airports {
		airports = append(airports, pointMarker{Name: a.Name, Lat: a.Point.Lat, Lon: a.Point.Lon})
	}
	if page.Airports, err = marshalJS(airports); err != nil {
		return eris.Wrap(err, "export: marshal airport layer")
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create map html")
	}
	defer f.Close()

	if err := mapTemplate.Execute(f, page); err != nil {
		return eris.Wrap(err, "export: render map html")
	}

	zap.L().Info("export: map written",
		zap.String("path", path),
		zap.Int("corridors", len(data.Corridors)),
		zap.Int("stations", len(stations)),
		zap.Int("airports", len(airports)),
	)
	return nil
}

// stateLayerJS marshals state polygons into a FeatureCollection, or ""
// when the layer is hidden.
func stateLayerJS(states []model.StateBoundary) (template.JS, error) {
	if len(states) == 0 {
		return "", nil
	}
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(states))}
	for i := range states {
		if states[i].Geometry == nil {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   states[i].Geometry,
			Properties: map[string]interface{}{"stusps": states[i].STUSPS},
		})
	}
	return marshalJS(fc)
}

// lineLayerJS marshals rail lines into a FeatureCollection, or "" when
// the layer is empty.
func lineLayerJS(lines []model.RailLine) (template.JS, error) {
	if len(lines) == 0 {
		return "", nil
	}
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(lines))}
	for i := range lines {
		if lines[i].Geometry == nil {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{Geometry: lines[i].Geometry})
	}
	return marshalJS(fc)
}

func marshalJS(v interface{}) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}

var mapTemplate = template.Must(template.New("map").Parse(mapTemplateText))

const mapTemplateText = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.css"/>
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
.legend {
  position: fixed; bottom: 10px; right: 10px; z-index: 9999;
  font-size: 13px; background: white; border: 2px solid #444;
  border-radius: 4px; padding: 6px 10px;
  box-shadow: 0 0 8px rgba(0,0,0,0.3);
}
.legend .swatch { width: 10px; height: 10px; display: inline-block; border-radius: 50%; }
.legend .ramp { background: linear-gradient(to right, yellow, orange, red); height: 8px; width: 130px; margin-top: 4px; }
</style>
</head>
<body>
<div id="map"></div>
<div class="legend">
  <b>Layer Legend</b><br>
  <span style="border-bottom:4px solid {{.Styles.Freight.Color}};">&nbsp;&nbsp;&nbsp;</span>&nbsp;Freight Rail<br>
  <span style="border-bottom:4px solid {{.Styles.Amtrak.Color}};">&nbsp;&nbsp;&nbsp;</span>&nbsp;Amtrak Routes<br>
  <span class="swatch" style="background:{{.Styles.AirportColor}};"></span>&nbsp;Class‑I Airport<br>
  <span class="swatch" style="background:blue;"></span>&nbsp;Amtrak Station<br>
  <div class="ramp"></div>Corridor Score
</div>
<script>
var map = L.map('map', {preferCanvas: true}).setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png', {
  attribution: '&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>',
  subdomains: 'abcd',
  maxZoom: 20
}).addTo(map);

var overlays = {};

{{if .States}}
var stateLayer = L.geoJSON({{.States}}, {
  style: function () {
    return {color: {{.Styles.States.Color}}, weight: {{.Styles.States.Weight}}, opacity: {{.Styles.States.Opacity}}, fillOpacity: 0};
  }
}).addTo(map);
overlays['States'] = stateLayer;
{{end}}

{{if .Freight}}
var freightLayer = L.geoJSON({{.Freight}}, {
  style: function () {
    return {color: {{.Styles.Freight.Color}}, weight: {{.Styles.Freight.Weight}}, opacity: {{.Styles.Freight.Opacity}}};
  }
}).addTo(map);
overlays['Freight Rail'] = freightLayer;
{{end}}

{{if .Amtrak}}
var amtrakLayer = L.geoJSON({{.Amtrak}}, {
  style: function () {
    return {color: {{.Styles.Amtrak.Color}}, weight: {{.Styles.Amtrak.Weight}}, opacity: {{.Styles.Amtrak.Opacity}}};
  }
}).addTo(map);
overlays['Amtrak Routes'] = amtrakLayer;
{{end}}

var stationCluster = L.markerClusterGroup();
var stationData = {{.Stations}};
stationData.forEach(function (s) {
  L.marker([s.lat, s.lon]).bindPopup(s.name).addTo(stationCluster);
});
stationCluster.addTo(map);
overlays['Amtrak Stations'] = stationCluster;

var airportLayer = L.featureGroup();
var airportData = {{.Airports}};
airportData.forEach(function (a) {
  L.circleMarker([a.lat, a.lon], {
    radius: 6, color: {{.Styles.AirportColor}}, fill: true, fillOpacity: 0.6
  }).bindPopup(a.name).addTo(airportLayer);
});
airportLayer.addTo(map);
overlays['Airports (Class‑I)'] = airportLayer;

var maxScore = {{.MaxScore}};
function corridorColor(score) {
  var rel = maxScore > 0 ? score / maxScore : 0;
  var g = rel <= 0.5 ? Math.round(255 - 180 * rel) : Math.round(165 - 330 * (rel - 0.5));
  return 'rgb(255,' + g + ',0)';
}
var corridorLayer = L.geoJSON({{.Corridors}}, {
  style: function (f) {
    var rel = maxScore > 0 ? f.properties.score / maxScore : 0;
    return {color: corridorColor(f.properties.score), weight: 1 + 6 * rel, opacity: 0.8};
  },
  onEachFeature: function (f, layer) {
    layer.bindTooltip('From: ' + f.properties.from + '<br>To: ' + f.properties.to);
  }
}).addTo(map);
overlays['Top {{.TopN}} Corridors'] = corridorLayer;

L.control.layers(null, overlays, {collapsed: false}).addTo(map);
</script>
</body>
</html>
`
