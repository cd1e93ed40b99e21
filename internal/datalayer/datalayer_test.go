package datalayer

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"thematicmap/internal/basemap"
	"thematicmap/internal/geom"
)

func usaStates(t *testing.T) *basemap.Basemap {
	t.Helper()
	c, err := basemap.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Basemap("usa")
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSelectionModes(t *testing.T) {
	tests := []struct {
		mode SelectionMode
		want []string
	}{
		{SelectNone, nil},
		{SelectSingle, []string{"TX"}},
		{SelectMultiple, []string{"CA", "TX"}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			l := New("pop", 0, usaStates(t), tt.mode)
			l.Add(Item{ID: "CA", Value: 39}, Item{ID: "TX", Value: 30})
			l.Select("CA")
			l.Select("TX")
			l.Select("ZZ")
			if got := l.Selected(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Selected = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestSetModeTrimsSelection(t *testing.T) {
	l := New("pop", 0, usaStates(t), SelectMultiple)
	l.Add(Item{ID: "CA"}, Item{ID: "TX"}, Item{ID: "NY"})
	l.Select("CA")
	l.Select("TX")
	l.SetMode(SelectSingle)
	if got := l.Selected(); !reflect.DeepEqual(got, []string{"TX"}) {
		t.Errorf("Selected = %v", got)
	}
	l.SetMode(SelectNone)
	if len(l.Selected()) != 0 {
		t.Errorf("Selected = %v", l.Selected())
	}
}

func TestIsolate(t *testing.T) {
	l := New("pop", 0, usaStates(t), SelectMultiple)
	l.Add(Item{ID: "CA"}, Item{ID: "TX"})
	if l.Isolate("ZZ") {
		t.Error("isolated an unknown item")
	}
	if !l.Isolate("CA") || l.Isolated() != "CA" {
		t.Fatalf("Isolated = %q", l.Isolated())
	}
	if !l.Hidden("TX") || l.Hidden("CA") {
		t.Error("Hidden wrong under isolation")
	}
	l.Isolate("")
	if l.Hidden("TX") {
		t.Error("isolation not cleared")
	}
}

func TestColorRamp(t *testing.T) {
	l := New("pop", 0, usaStates(t), SelectMultiple)
	l.Add(Item{ID: "CA", Value: 10}, Item{ID: "TX", Value: 20})
	if got := l.ColorFor(10); got != rampLow.Hex() {
		t.Errorf("low = %s; want %s", got, rampLow.Hex())
	}
	if got := l.ColorFor(20); got != rampHigh.Hex() {
		t.Errorf("high = %s; want %s", got, rampHigh.Hex())
	}
	if got := l.ColorFor(100); got != rampHigh.Hex() {
		t.Errorf("clamped = %s", got)
	}
	mid := l.ColorFor(15)
	if mid == rampLow.Hex() || mid == rampHigh.Hex() {
		t.Errorf("mid = %s", mid)
	}
}

func TestRadiusFor(t *testing.T) {
	l := New("pop", 0, usaStates(t), SelectMultiple)
	if got := l.RadiusFor(5); got != MinRadius {
		t.Errorf("empty layer radius = %v", got)
	}
	l.Add(Item{ID: "a", Value: 100}, Item{ID: "b", Value: 25})
	if got := l.RadiusFor(100); got != MaxRadius {
		t.Errorf("max radius = %v", got)
	}
	want := MinRadius + (MaxRadius-MinRadius)*0.5
	if got := l.RadiusFor(25); math.Abs(got-want) > 1e-9 {
		t.Errorf("quarter value radius = %v; want %v", got, want)
	}
}

func TestMarkerPlacement(t *testing.T) {
	b := usaStates(t)
	l := New("cities", 0, b, SelectMultiple)
	l.Add(
		Item{ID: "ca", Kind: KindMarker, Location: "CA", Value: 1},
		Item{ID: "hou", Kind: KindMarker, Location: "Houston", Value: 1},
		Item{ID: "den", Kind: KindMarker, Lon: -104.99, Lat: 39.74, HasLonLat: true, Value: 1},
		Item{ID: "lost", Kind: KindMarker, Location: "Atlantis", Value: 1},
		Item{ID: "sea", Kind: KindMarker, Lon: -30, Lat: 40, HasLonLat: true, Value: 1},
		Item{ID: "TX", Value: 3},
	)
	ms := l.Markers()
	var ids []string
	for _, m := range ms {
		ids = append(ids, m.Item.ID)
	}
	if !reflect.DeepEqual(ids, []string{"ca", "hou", "den"}) {
		t.Fatalf("placed %v", ids)
	}
	anchor, _ := b.AreaAnchor(0, "CA")
	if ms[0].Point != anchor {
		t.Errorf("area marker at %+v; want %+v", ms[0].Point, anchor)
	}
	hou, _ := b.City("Houston")
	want, _ := b.Project(hou.Lon, hou.Lat)
	if ms[1].Point != want {
		t.Errorf("city marker at %+v; want %+v", ms[1].Point, want)
	}
}

func TestFitBounds(t *testing.T) {
	b := usaStates(t)
	l := New("pop", 0, b, SelectMultiple)
	l.Add(Item{ID: "CA"}, Item{ID: "NV"}, Item{ID: "m", Kind: KindMarker, Location: "Miami", Value: 1})

	_, ca := b.ProjectArea(0, "CA")
	_, nv := b.ProjectArea(0, "NV")
	got := l.FitBounds([]string{"CA", "NV", "missing"})
	if got != ca.Union(nv) {
		t.Errorf("FitBounds = %+v; want %+v", got, ca.Union(nv))
	}
	withMarker := l.FitBounds([]string{"CA", "m"})
	if withMarker.MaxX <= ca.MaxX {
		t.Errorf("marker did not extend bounds: %+v", withMarker)
	}
	if !l.FitBounds(nil).Empty() {
		t.Error("FitBounds(nil) not empty")
	}
}

func TestFromTable(t *testing.T) {
	src := "location,value,label\nCA,39.5,California\nTX,30.1,\n,4,\n"
	tbl, err := geom.ReadCSV(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	items, err := FromTable(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].ID != "CA" || items[0].Kind != KindArea || items[0].Value != 39.5 || items[0].Label != "California" {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].Label != "TX" {
		t.Errorf("label default = %q", items[1].Label)
	}

	tbl, _ = geom.ReadCSV(strings.NewReader("lat,lon,value\n47.6,-122.3,5\n"))
	items, err = FromTable(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Kind != KindMarker || !items[0].HasLonLat || items[0].ID != "row1" {
		t.Errorf("items = %+v", items)
	}

	tbl, _ = geom.ReadCSV(strings.NewReader("foo,bar\n1,2\n"))
	if _, err := FromTable(tbl); err == nil {
		t.Error("FromTable accepted a table without location")
	}
}

func TestLoadUnsupported(t *testing.T) {
	if _, err := Load("data.xlsx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load err = %v", err)
	}
}

func TestFromPlacemarks(t *testing.T) {
	items := FromPlacemarks([]geom.Placemark{{Name: "Seattle", Lon: -122.33, Lat: 47.61}, {Lon: 1, Lat: 2}})
	if items[0].ID != "Seattle" || items[0].Kind != KindMarker || !items[0].HasLonLat {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].ID != "placemark2" {
		t.Errorf("unnamed id = %q", items[1].ID)
	}
}

func TestLoadGeoJSONPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.geojson")
	src := `{"type":"FeatureCollection","features":[
	 {"type":"Feature","properties":{"id":"den","value":4.5},"geometry":{"type":"Point","coordinates":[-104.99,39.74]}},
	 {"type":"Feature","properties":{"name":"Houston","location":"Houston"},"geometry":{"type":"Point","coordinates":[0,0]}},
	 {"type":"Feature","properties":{"id":"TX"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}
	]}`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items; want 2 markers", len(items))
	}
	if items[0].ID != "den" || items[0].Value != 4.5 || items[0].Kind != KindMarker || items[0].Lon != -104.99 {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].ID != "Houston" || items[1].Value != 1 {
		t.Errorf("item 1 = %+v", items[1])
	}

	// the location wins over the raw coordinate when placing
	l := New("sites", 0, usaStates(t), SelectMultiple)
	l.Add(items...)
	if ms := l.Markers(); len(ms) != 2 {
		t.Errorf("placed %d markers; want 2", len(ms))
	}
}

func TestParseSelectionMode(t *testing.T) {
	for in, want := range map[string]SelectionMode{"single": SelectSingle, "": SelectMultiple, "NONE": SelectNone} {
		if got, err := ParseSelectionMode(in); err != nil || got != want {
			t.Errorf("ParseSelectionMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSelectionMode("all"); err == nil {
		t.Error("ParseSelectionMode(all) succeeded")
	}
}
