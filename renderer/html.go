package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
)

// Discrete level colors, matching the legend on the DFA site.
var levelColors = map[string]string{
	"1": "green",
	"2": "yellow",
	"3": "orange",
	"4": "red",
}

// noDataColor fills countries the snapshot could not place or level.
const noDataColor = "#c8c8c8"

// worldGeoJSONURL serves the country polygons the page paints. Features are
// matched by properties.name against the canonical names in the embedded
// data.
const worldGeoJSONURL = "https://raw.githubusercontent.com/johan/world.geo.json/master/countries.geo.json"

type legendItem struct {
	Label string
	Color string
}

type pageData struct {
	Title      string
	Entries    []Entry
	Colors     map[string]string
	NoData     string
	GeoJSONURL string
	Legend     []legendItem
}

// BuildDocument renders the interactive map page. Output is deterministic
// for a fixed entry list: no timestamps, entries pre-sorted, legend ordered
// by ascending level.
func BuildDocument(entries []Entry, summary *Summary) ([]byte, error) {
	legend := make([]legendItem, 0, len(summary.Levels)+1)
	for _, level := range summary.Levels {
		legend = append(legend, legendItem{
			Label: fmt.Sprintf("Level %s: %s", level.String(), level.Label()),
			Color: levelColors[level.String()],
		})
	}
	if summary.NoData > 0 {
		legend = append(legend, legendItem{Label: "No data", Color: noDataColor})
	}

	data := pageData{
		Title:      "Irish Department of Foreign Affairs Travel Advisory Levels",
		Entries:    entries,
		Colors:     levelColors,
		NoData:     noDataColor,
		GeoJSONURL: worldGeoJSONURL,
		Legend:     legend,
	}

	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute map template: %w", err)
	}
	return buf.Bytes(), nil
}

func toJSON(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

var mapTemplate = template.Must(template.New("map").Funcs(template.FuncMap{
	"toJSON": toJSON,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8"/>
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <style>
    html, body { margin: 0; padding: 0; height: 100%; }
    #map { width: 100%; height: 100%; background: #a5c8e1; }
    .title-box, .legend {
      background: rgba(255, 255, 255, 0.92);
      border-radius: 5px;
      box-shadow: 0 1px 4px rgba(0, 0, 0, 0.3);
      padding: 8px 12px;
      font-family: Arial, sans-serif;
    }
    .title-box { font-size: 1.05em; font-weight: bold; }
    .legend { line-height: 1.6; }
    .legend .swatch {
      display: inline-block;
      width: 14px;
      height: 14px;
      margin-right: 6px;
      vertical-align: middle;
      border: 1px solid #666;
    }
  </style>
</head>
<body>
  <div id="map"></div>
  <script>
    const advisories = {{ toJSON .Entries }};
    const levelColors = {{ toJSON .Colors }};
    const noDataColor = {{ toJSON .NoData }};
    const byName = new Map(advisories.map(a => [a.name, a]));

    const map = L.map('map', {
      center: [25, 10],
      zoom: 2,
      zoomSnap: 0.25,
      worldCopyJump: true,
      attributionControl: false
    });

    const titleBox = L.control({ position: 'topright' });
    titleBox.onAdd = () => {
      const div = L.DomUtil.create('div', 'title-box');
      div.textContent = {{ toJSON .Title }};
      return div;
    };
    titleBox.addTo(map);

    const legend = L.control({ position: 'bottomleft' });
    legend.onAdd = () => {
      const div = L.DomUtil.create('div', 'legend');
      {{ range .Legend }}
      div.insertAdjacentHTML('beforeend',
        '<div><span class="swatch" style="background: {{ .Color }}"></span>{{ .Label }}</div>');
      {{ end }}
      return div;
    };
    legend.addTo(map);

    function styleFor(feature) {
      const entry = byName.get(feature.properties.name);
      const fill = entry && !entry.noData ? levelColors[entry.level] : noDataColor;
      return { color: '#555', weight: 0.5, fillColor: fill, fillOpacity: 0.85 };
    }

    function tooltipFor(feature) {
      const entry = byName.get(feature.properties.name);
      if (entry && !entry.noData) {
        return entry.country + ': ' + entry.label;
      }
      return feature.properties.name + ': No data';
    }

    fetch({{ toJSON .GeoJSONURL }})
      .then(resp => {
        if (!resp.ok) throw new Error('geojson fetch failed: ' + resp.status);
        return resp.json();
      })
      .then(world => {
        L.geoJSON(world, {
          style: styleFor,
          onEachFeature: (feature, layer) => {
            layer.bindTooltip(tooltipFor(feature), { sticky: true });
          }
        }).addTo(map);
        window.__mapReady = true;
      })
      .catch(err => {
        console.error(err);
        window.__mapError = String(err);
      });
  </script>
</body>
</html>
`))
