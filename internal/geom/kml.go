package geom

import (
	"encoding/xml"
	"errors"
	"os"
	"strconv"
	"strings"
)

// Placemark is a named KML point.
type Placemark struct {
	Name string
	Lon  float64
	Lat  float64
}

// LoadKML extracts Point placemarks from a KML file (Placemark > Point > coordinates).
// KML coordinates are "lon,lat[,alt]"; we ignore altitude.
func LoadKML(path string) ([]Placemark, BBox, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, BBox{}, err
	}
	return ParseKML(data)
}

func ParseKML(data []byte) ([]Placemark, BBox, error) {
	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Name  string    `xml:"name"`
		Point *kmlPoint `xml:"Point"`
	}
	type kmlFolder struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Document   struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
			Folders    []kmlFolder    `xml:"Folder"`
		} `xml:"Document"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, BBox{}, err
	}
	all := append([]kmlPlacemark{}, doc.Placemarks...)
	all = append(all, doc.Document.Placemarks...)
	for _, f := range doc.Document.Folders {
		all = append(all, f.Placemarks...)
	}

	var (
		out  []Placemark
		bbox BBox
	)
	for _, pm := range all {
		if pm.Point == nil {
			continue
		}
		// first tuple only; a Point carries one position
		fields := strings.Fields(pm.Point.Coordinates)
		if len(fields) == 0 {
			continue
		}
		vals := strings.Split(fields[0], ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, Placemark{Name: strings.TrimSpace(pm.Name), Lon: lon, Lat: lat})
		bbox.Extend(lon, lat)
	}
	if len(out) == 0 {
		return nil, BBox{}, errors.New("kml: no points found")
	}
	return out, bbox, nil
}
