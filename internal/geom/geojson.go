package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	geojson "github.com/paulmach/go.geojson"
)

// Feature is one GeoJSON feature: its geometry and raw properties.
type Feature struct {
	Properties map[string]any
	Data       Data
}

// Prop returns a property as a string; numbers are formatted without
// trailing zeros so numeric ids (FIPS codes) survive.
func (f Feature) Prop(key string) string {
	switch v := f.Properties[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	}
	return ""
}

// Float returns a numeric property; numeric strings are accepted too.
func (f Feature) Float(key string) (float64, bool) {
	switch v := f.Properties[key].(type) {
	case float64:
		return v, true
	case string:
		x, err := strconv.ParseFloat(v, 64)
		return x, err == nil
	}
	return 0, false
}

// LoadFeatures reads a GeoJSON file (FeatureCollection, Feature or bare
// geometry) into features.
func LoadFeatures(path string) ([]Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFeatures(data)
}

// ParseFeatures decodes GeoJSON bytes into features. Only points and
// polygons are kept; features without either are dropped.
func ParseFeatures(data []byte) ([]Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var out []Feature
	add := func(f *geojson.Feature) {
		var d Data
		collect(&d, f.Geometry)
		if d.Empty() {
			return
		}
		props := f.Properties
		if props == nil {
			props = map[string]any{}
		}
		if _, ok := props["id"]; !ok && f.ID != nil {
			props["id"] = f.ID
		}
		out = append(out, Feature{Properties: props, Data: d})
	}
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		for _, f := range fc.Features {
			add(f)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		add(f)
	case "":
		return nil, errors.New("invalid geojson: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		add(geojson.NewFeature(g))
	}
	if len(out) == 0 {
		return nil, errors.New("no geometries found")
	}
	return out, nil
}

func collect(d *Data, g *geojson.Geometry) {
	if g == nil {
		return
	}
	switch {
	case g.IsPoint():
		if p, ok := toPoint(g.Point); ok {
			d.addPoint(p)
		}
	case g.IsMultiPoint():
		for _, c := range g.MultiPoint {
			if p, ok := toPoint(c); ok {
				d.addPoint(p)
			}
		}
	case g.IsPolygon():
		if poly := toPolygon(g.Polygon); len(poly) > 0 {
			d.addPolygon(poly)
		}
	case g.IsMultiPolygon():
		for _, part := range g.MultiPolygon {
			if poly := toPolygon(part); len(poly) > 0 {
				d.addPolygon(poly)
			}
		}
	case g.IsCollection():
		for _, sub := range g.Geometries {
			collect(d, sub)
		}
	}
}

func toPoint(c []float64) ([2]float64, bool) {
	if len(c) < 2 {
		return [2]float64{}, false
	}
	return [2]float64{c[0], c[1]}, true
}

func toPolygon(rings [][][]float64) Polygon {
	var poly Polygon
	for _, ring := range rings {
		var r Ring
		for _, c := range ring {
			if p, ok := toPoint(c); ok {
				r = append(r, p)
			}
		}
		if len(r) > 0 {
			poly = append(poly, r)
		}
	}
	return poly
}
