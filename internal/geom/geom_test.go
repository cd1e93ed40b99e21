package geom

import (
	"strings"
	"testing"
)

func TestParseWKTData(t *testing.T) {
	tests := []struct {
		name     string
		wkt      string
		polygons int
		rings    int
	}{
		{"polygon", "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))", 1, 1},
		{"polygon with hole", "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 1))", 1, 2},
		{"multipolygon", "MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseWKTData(tt.wkt)
			if err != nil {
				t.Fatalf("ParseWKTData(%q): %v", tt.wkt, err)
			}
			if len(d.Polygons) != tt.polygons {
				t.Errorf("polygons = %d; want %d", len(d.Polygons), tt.polygons)
			}
			rings := 0
			for _, p := range d.Polygons {
				rings += len(p)
			}
			if rings != tt.rings {
				t.Errorf("rings = %d; want %d", rings, tt.rings)
			}
		})
	}
}

func TestParseWKTDataErrors(t *testing.T) {
	for _, wkt := range []string{"", "CIRCLE(1 2 3)", "POLYGON((", "POLYGON(())", "POINT(1 2)", "LINESTRING(0 0, 1 1)"} {
		if _, err := ParseWKTData(wkt); err == nil {
			t.Errorf("ParseWKTData(%q) succeeded; want error", wkt)
		}
	}
}

func TestWKTBBox(t *testing.T) {
	d, err := ParseWKTData("POLYGON((-124 32, -114 32, -114 42, -124 42, -124 32))")
	if err != nil {
		t.Fatal(err)
	}
	if d.BBox.MinX != -124 || d.BBox.MaxX != -114 || d.BBox.MinY != 32 || d.BBox.MaxY != 42 {
		t.Errorf("bbox = %+v", d.BBox)
	}
	if c := d.BBox.Center(); c != [2]float64{-119, 37} {
		t.Errorf("center = %v", c)
	}
}

func TestPointInPolygon(t *testing.T) {
	d, err := ParseWKTData("POLYGON((0 0, 10 0, 10 10, 0 10, 0 0), (4 4, 6 4, 6 6, 4 6, 4 4))")
	if err != nil {
		t.Fatal(err)
	}
	poly := d.Polygons[0]
	tests := []struct {
		x, y float64
		want bool
	}{
		{1, 1, true},
		{5, 5, false}, // hole
		{11, 5, false},
		{9, 9, true},
	}
	for _, tt := range tests {
		if got := PointInPolygon(tt.x, tt.y, poly); got != tt.want {
			t.Errorf("PointInPolygon(%v, %v) = %v", tt.x, tt.y, got)
		}
	}
}

func TestBBoxUnion(t *testing.T) {
	var empty BBox
	a := NewBBox(0, 0, 1, 1)
	if got := empty.Union(a); got != a {
		t.Errorf("empty ∪ a = %+v", got)
	}
	u := a.Union(NewBBox(-1, 2, 0.5, 3))
	if u.MinX != -1 || u.MinY != 0 || u.MaxX != 1 || u.MaxY != 3 {
		t.Errorf("union = %+v", u)
	}
	if empty.Contains(0, 0) {
		t.Error("empty box contains a point")
	}
}

func TestParseFeatures(t *testing.T) {
	src := `{"type":"FeatureCollection","features":[
	 {"type":"Feature","properties":{"id":"06037","layer":"counties","parent":"CA"},
	  "geometry":{"type":"Polygon","coordinates":[[[-118.9,33.7],[-117.6,33.7],[-117.6,34.8],[-118.9,34.8],[-118.9,33.7]]]}},
	 {"type":"Feature","properties":{"id":12},
	  "geometry":{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]],[[[2,2],[3,2],[3,3],[2,2]]]]}},
	 {"type":"Feature","properties":{"id":"none"},"geometry":null}
	]}`
	fs, err := ParseFeatures([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 2 {
		t.Fatalf("got %d features; want 2", len(fs))
	}
	if fs[0].Prop("id") != "06037" || fs[0].Prop("parent") != "CA" {
		t.Errorf("props = %v", fs[0].Properties)
	}
	if fs[1].Prop("id") != "12" {
		t.Errorf("numeric id = %q", fs[1].Prop("id"))
	}
	if len(fs[1].Data.Polygons) != 2 {
		t.Errorf("multipolygon parts = %d", len(fs[1].Data.Polygons))
	}
}

func TestParseFeaturesPointsAndLines(t *testing.T) {
	src := `{"type":"FeatureCollection","features":[
	 {"type":"Feature","id":"hou","properties":{"value":"2.3"},"geometry":{"type":"Point","coordinates":[-95.37,29.76]}},
	 {"type":"Feature","properties":{"id":"route"},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}
	]}`
	fs, err := ParseFeatures([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 1 {
		t.Fatalf("got %d features; want the point only", len(fs))
	}
	if fs[0].Prop("id") != "hou" {
		t.Errorf("feature id not carried into properties: %v", fs[0].Properties)
	}
	if v, ok := fs[0].Float("value"); !ok || v != 2.3 {
		t.Errorf("value = %v, %v", v, ok)
	}
	if len(fs[0].Data.Points) != 1 || fs[0].Data.Points[0] != [2]float64{-95.37, 29.76} {
		t.Errorf("points = %v", fs[0].Data.Points)
	}
}

func TestParseFeaturesBareGeometry(t *testing.T) {
	fs, err := ParseFeatures([]byte(`{"type":"Polygon","coordinates":[[[0,0],[2,0],[2,2],[0,0]]]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(fs) != 1 || len(fs[0].Data.Polygons) != 1 || fs[0].Data.BBox.MaxX != 2 {
		t.Errorf("features = %+v", fs)
	}
}

func TestParseFeaturesErrors(t *testing.T) {
	for _, src := range []string{`{}`, `not json`, `{"type":"FeatureCollection","features":[]}`} {
		if _, err := ParseFeatures([]byte(src)); err == nil {
			t.Errorf("ParseFeatures(%s) succeeded", src)
		}
	}
}

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("Name, Latitude, Longitude, value\nLA, 34.05, -118.24, 3.9\nshort\n"))
	if err != nil {
		t.Fatal(err)
	}
	lon, lat, ok := tbl.LonLatCols()
	if !ok || lon != 2 || lat != 1 {
		t.Fatalf("LonLatCols = %d, %d, %v", lon, lat, ok)
	}
	if v, ok := tbl.Float(tbl.Rows[0], tbl.Col("value")); !ok || v != 3.9 {
		t.Errorf("value = %v, %v", v, ok)
	}
	if _, ok := tbl.Float(tbl.Rows[1], lat); ok {
		t.Error("short row parsed a latitude")
	}
	if tbl.Col("missing") != -1 {
		t.Error("Col found a missing header")
	}
}

func TestParseKML(t *testing.T) {
	src := `<?xml version="1.0"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document>
 <Placemark><name>Seattle</name><Point><coordinates>-122.33,47.61,0</coordinates></Point></Placemark>
 <Folder><Placemark><name>Denver</name><Point><coordinates>-104.99,39.74</coordinates></Point></Placemark></Folder>
 <Placemark><name>Route</name><LineString><coordinates>0,0 1,1</coordinates></LineString></Placemark>
</Document></kml>`
	pms, bbox, err := ParseKML([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(pms) != 2 {
		t.Fatalf("got %d placemarks; want 2", len(pms))
	}
	if pms[0].Name != "Seattle" || pms[1].Name != "Denver" {
		t.Errorf("names = %q, %q", pms[0].Name, pms[1].Name)
	}
	if bbox.MinX != -122.33 || bbox.MaxY != 47.61 {
		t.Errorf("bbox = %+v", bbox)
	}
}
