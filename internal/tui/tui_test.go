package tui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"thematicmap/internal/basemap"
	"thematicmap/internal/config"
	"thematicmap/internal/datalayer"
	"thematicmap/internal/drill"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	c, err := basemap.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	m := New(config.Config{Basemap: "usa", DrillMode: drill.ModeMultiple, SelectionMode: datalayer.SelectMultiple}, c)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range msgs {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestCanvasRoundTrip(t *testing.T) {
	m := newTestModel(t)
	m.zoom = 2
	m.offsetX, m.offsetY = 3, -2
	c, ok := m.canvas(80, 30)
	if !ok {
		t.Fatal("no canvas")
	}
	x, y := c.fromCell(40, 12)
	cx, cy := c.toCell(x, y)
	if cx != 40 || cy != 12 {
		t.Errorf("toCell(fromCell(40, 12)) = %d, %d", cx, cy)
	}
}

func TestCellToLonLat(t *testing.T) {
	m := newTestModel(t)
	lo := m.layout()
	c, _ := m.canvas(lo.mapW, lo.mapH)
	p, ok := m.bm.Project(-98, 39)
	if !ok {
		t.Fatal("Kansas did not project")
	}
	cx, cy := c.toCell(p.X, p.Y)
	lon, lat, ok := m.cellToLonLat(cx, cy, lo.mapW, lo.mapH)
	if !ok {
		t.Fatal("cellToLonLat failed")
	}
	// one cell is well under two degrees at this size
	if math.Abs(lon+98) > 2 || math.Abs(lat-39) > 2 {
		t.Errorf("lon/lat = %.3f, %.3f", lon, lat)
	}
}

func TestDrillKeys(t *testing.T) {
	m := newTestModel(t)
	m.selectArea(shapeKey{0, "CA"})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.tracker.IsDrilled(0, "CA") {
		t.Fatal("enter did not drill CA")
	}
	if cmd == nil || !m.anim.Running() {
		t.Error("drill did not start a fade")
	}
	if e, ok := m.index.At(m.shapes[shapeKey{1, "06037"}].box.Center()[0], m.shapes[shapeKey{1, "06037"}].box.Center()[1]); !ok || e.Layer != 1 {
		t.Errorf("index hit after drill = %+v, %v", e, ok)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.tracker.IsDrilled(0, "CA") {
		t.Error("backspace did not drill up")
	}
	if !m.tracker.IsSelected(0, "CA") {
		t.Error("drill up did not reselect CA")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("r"))
	if len(m.tracker.Drilled(0)) != 0 || len(m.tracker.Selected(0)) != 0 {
		t.Error("reset left state behind")
	}
}

func TestDrillUpWithNothingSelected(t *testing.T) {
	m := newTestModel(t)
	m.selectArea(shapeKey{0, "CA"})
	m.selectArea(shapeKey{0, "TX"})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.tracker.Drilled(0)) != 0 {
		t.Errorf("drilled after backspace = %v; status %q", m.tracker.Drilled(0), m.status)
	}
}

func TestDrillKeepsDataSelectionInStep(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pop.csv")
	if err := os.WriteFile(path, []byte("location,value\nCA,39\nTX,30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t)
	m.loadPath(path)
	m.selectArea(shapeKey{0, "CA"})
	if !m.data.IsSelected("CA") {
		t.Fatal("data selection not mirrored")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.data.IsSelected("CA") {
		t.Error("drilled CA still selected in the data layer")
	}
	if b := m.selectionBounds(); !b.Empty() {
		t.Errorf("selection bounds after drill = %+v; want empty", b)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if !m.data.IsSelected("CA") {
		t.Error("drill up did not restore the data selection")
	}
}

func TestDrillModeKey(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, runes("m"))
	if m.tracker.Mode() != drill.ModeNone {
		t.Errorf("mode = %v", m.tracker.Mode())
	}
	m.selectArea(shapeKey{0, "CA"})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.tracker.IsDrilled(0, "CA") {
		t.Error("drilled with mode none")
	}
}

func TestCycleAndZoom(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	k, ok := m.focused()
	if !ok || k.id != m.bm.Areas(0)[0] {
		t.Fatalf("focus = %+v, %v", k, ok)
	}
	full := m.view
	m, _ = press(t, m, runes("z"))
	if m.view == full || m.view.Width() >= full.Width() {
		t.Errorf("zoom to selection kept view %+v", m.view)
	}
}

func TestOnScreenSkipsFarAreas(t *testing.T) {
	m := newTestModel(t)
	m.view = m.shapes[shapeKey{0, "CA"}].box
	c, ok := m.canvas(40, 20)
	if !ok {
		t.Fatal("no canvas")
	}
	got := map[string]bool{}
	for _, k := range m.onScreen(m.visibleAreas(), c) {
		got[k.id] = true
	}
	if !got["CA"] || !got["NV"] {
		t.Errorf("on screen = %v; want CA and its neighbour", got)
	}
	if got["NY"] || got["FL"] {
		t.Errorf("on screen = %v; east coast drawn while zoomed on CA", got)
	}
}

func TestInspectNamesChildLayer(t *testing.T) {
	m := newTestModel(t)
	m.selectArea(shapeKey{0, "CA"})
	m, _ = press(t, m, runes("i"))
	if !strings.Contains(m.inspectPopup, "California") || !strings.Contains(m.inspectPopup, "children: 5 counties") {
		t.Errorf("popup = %q", m.inspectPopup)
	}
}

func TestBasemapCycle(t *testing.T) {
	m := newTestModel(t)
	before := m.bm.Name
	m, _ = press(t, m, runes("b"))
	if m.bm.Name == before {
		t.Error("basemap did not change")
	}
	if len(m.tracker.Visible(0)) != len(m.bm.Areas(0)) {
		t.Error("tracker not rebuilt")
	}
}

func TestAnimatorCancel(t *testing.T) {
	var a Animator
	h := drill.Handle{Layer: 1, Area: "06037", Kind: drill.KindArea}
	if a.Start(drill.Delta{FadeIn: []drill.Handle{h}}) == nil {
		t.Fatal("no tick")
	}
	first := frameMsg{gen: a.gen}
	if p := a.Progress(h); p <= 0 || p >= 1 {
		t.Errorf("progress = %v", p)
	}
	a.Start(drill.Delta{})
	if a.Step(first) != nil {
		t.Error("stale tick advanced a cancelled fade")
	}
	if a.Progress(h) != 1 {
		t.Error("cancelled handle still fading")
	}
}

func TestAnimatorRunsOut(t *testing.T) {
	var a Animator
	h := drill.Handle{Area: "CA"}
	a.Start(drill.Delta{FadeIn: []drill.Handle{h}})
	for i := 0; i < fadeFrames; i++ {
		a.Step(frameMsg{gen: a.gen})
	}
	if a.Running() || a.Progress(h) != 1 {
		t.Error("fade did not finish")
	}
}

func TestBrailleBuf(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0, "")
	b.setPixel(3, 3, "")
	b.setPixel(-1, 0, "")
	b.setPixel(4, 0, "")
	lines := b.toLines()
	if got := []rune(lines[0]); len(got) != 2 || got[0] != 0x2801 || got[1] != 0x2880 {
		t.Errorf("lines = %q", lines[0])
	}
	b.putText(1, 0, "X", "")
	if !strings.HasSuffix(b.toLines()[0], "X") {
		t.Errorf("text not drawn: %q", b.toLines()[0])
	}
}

func TestLoadDataFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pop.csv")
	if err := os.WriteFile(path, []byte("location,value\nCA,39\nTX,30\nNV,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t)
	m.loadPath(path)
	if m.data == nil || m.data.Len() != 3 || m.data.Layer != 0 {
		t.Fatalf("data = %+v", m.data)
	}
	if got := m.areaColor(shapeKey{0, "CA"}); got == layerColor(0) {
		t.Error("CA not coloured by data")
	}
	m.showAttrs = true
	m.refreshAttrsFromCurrent()
	if len(m.tbl.Rows()) != 3 {
		t.Errorf("attrs rows = %d", len(m.tbl.Rows()))
	}

	m.selectArea(shapeKey{0, "TX"})
	m.toggleIsolate()
	if m.data.Isolated() != "TX" || !m.isolatedAway(shapeKey{0, "CA"}) {
		t.Errorf("isolated = %q", m.data.Isolated())
	}
}

func TestLoadGeoJSONAreasAndMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.geojson")
	src := `{"type":"FeatureCollection","features":[
	 {"type":"Feature","properties":{"layer":"states","id":"DC","label":"District of Columbia"},
	  "geometry":{"type":"Polygon","coordinates":[[[-77.12,38.8],[-76.9,38.8],[-76.9,39.0],[-77.12,39.0],[-77.12,38.8]]]}},
	 {"type":"Feature","properties":{"id":"den","value":7},"geometry":{"type":"Point","coordinates":[-104.99,39.74]}}
	]}`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t)
	m.loadPath(path)
	if _, ok := m.shapes[shapeKey{0, "DC"}]; !ok {
		t.Errorf("DC not added to the map; status %q", m.status)
	}
	if m.data == nil || len(m.data.Markers()) != 1 {
		t.Fatalf("markers not loaded; status %q", m.status)
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "thematicmap") || !strings.Contains(out, "usa") {
		t.Errorf("header missing from view")
	}
}
