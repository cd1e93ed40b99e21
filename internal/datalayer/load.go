package datalayer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"thematicmap/internal/geom"
)

var ErrUnsupportedFormat = errors.New("unsupported data format")

// Load reads items from a CSV, KML or GeoJSON file.
func Load(path string) ([]Item, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		t, err := geom.LoadCSV(path)
		if err != nil {
			return nil, err
		}
		return FromTable(t)
	case ".kml":
		pms, _, err := geom.LoadKML(path)
		if err != nil {
			return nil, err
		}
		return FromPlacemarks(pms), nil
	case ".geojson", ".json":
		fs, err := geom.LoadFeatures(path)
		if err != nil {
			return nil, err
		}
		return FromFeatures(fs), nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// FromTable converts CSV rows. Recognised columns: id, location (or area,
// name), value, label, kind, and lon/lat. Rows with a location default to
// area items, rows with only coordinates to markers. Rows that have
// neither are skipped.
func FromTable(t geom.Table) ([]Item, error) {
	idCol := t.Col("id")
	locCol := t.Col("location", "area", "name")
	valCol := t.Col("value")
	labelCol := t.Col("label")
	kindCol := t.Col("kind", "type")
	lonCol, latCol, hasLonLat := t.LonLatCols()
	if locCol < 0 && !hasLonLat {
		return nil, errors.New("csv needs a location column or lon/lat columns")
	}

	var items []Item
	for n, row := range t.Rows {
		it := Item{
			ID:       t.Cell(row, idCol),
			Location: t.Cell(row, locCol),
			Label:    t.Cell(row, labelCol),
		}
		if v, ok := t.Float(row, valCol); ok {
			it.Value = v
		}
		if hasLonLat {
			lon, okLon := t.Float(row, lonCol)
			lat, okLat := t.Float(row, latCol)
			if okLon && okLat {
				it.Lon, it.Lat, it.HasLonLat = lon, lat, true
			}
		}
		if it.Location == "" && !it.HasLonLat {
			continue
		}
		switch strings.ToLower(t.Cell(row, kindCol)) {
		case "marker", "bubble":
			it.Kind = KindMarker
		case "area":
			it.Kind = KindArea
		default:
			if it.Location == "" {
				it.Kind = KindMarker
			}
		}
		if it.ID == "" {
			it.ID = it.Location
		}
		if it.ID == "" {
			it.ID = "row" + strconv.Itoa(n+1)
		}
		if it.Label == "" {
			it.Label = it.ID
		}
		items = append(items, it)
	}
	return items, nil
}

// FromPlacemarks turns KML placemarks into marker items. The placemark
// name doubles as the location so known cities snap to their catalog
// position.
func FromPlacemarks(pms []geom.Placemark) []Item {
	items := make([]Item, 0, len(pms))
	for i, pm := range pms {
		id := pm.Name
		if id == "" {
			id = "placemark" + strconv.Itoa(i+1)
		}
		items = append(items, Item{
			ID:        id,
			Kind:      KindMarker,
			Location:  pm.Name,
			Lon:       pm.Lon,
			Lat:       pm.Lat,
			HasLonLat: true,
			Value:     1,
			Label:     id,
		})
	}
	return items
}

// FromFeatures turns GeoJSON point features into marker items. Properties:
// id, location, value, label (falling back to name). Polygon features are
// areas, not data, and are skipped.
func FromFeatures(fs []geom.Feature) []Item {
	var items []Item
	for i, f := range fs {
		if len(f.Data.Points) == 0 {
			continue
		}
		p := f.Data.Points[0]
		it := Item{
			ID:        f.Prop("id"),
			Kind:      KindMarker,
			Location:  f.Prop("location"),
			Lon:       p[0],
			Lat:       p[1],
			HasLonLat: true,
			Value:     1,
			Label:     f.Prop("label"),
		}
		if v, ok := f.Float("value"); ok {
			it.Value = v
		}
		if it.Label == "" {
			it.Label = f.Prop("name")
		}
		if it.ID == "" {
			it.ID = it.Label
		}
		if it.ID == "" {
			it.ID = "feature" + strconv.Itoa(i+1)
		}
		if it.Label == "" {
			it.Label = it.ID
		}
		items = append(items, it)
	}
	return items
}
