// Package datalayer binds data items to an area layer of a basemap: area
// items colour their area, marker items are drawn as bubbles at an area
// centre, a city or a raw coordinate.
package datalayer

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"thematicmap/internal/basemap"
	"thematicmap/internal/geom"
	"thematicmap/internal/projection"
)

type Kind int

const (
	KindArea Kind = iota
	KindMarker
)

func (k Kind) String() string {
	if k == KindMarker {
		return "marker"
	}
	return "area"
}

// Item is one data-bound value. Location is an area id or a city name;
// Lon/Lat are used when HasLonLat is set and neither resolves.
type Item struct {
	ID        string
	Kind      Kind
	Location  string
	Lon       float64
	Lat       float64
	HasLonLat bool
	Value     float64
	Label     string
}

// Area is the area id an item is bound to.
func (it Item) Area() string {
	if it.Location != "" {
		return it.Location
	}
	return it.ID
}

type SelectionMode int

const (
	SelectNone SelectionMode = iota
	SelectSingle
	SelectMultiple
)

func (m SelectionMode) String() string {
	switch m {
	case SelectSingle:
		return "single"
	case SelectMultiple:
		return "multiple"
	}
	return "none"
}

func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return SelectNone, nil
	case "single":
		return SelectSingle, nil
	case "multiple", "":
		return SelectMultiple, nil
	}
	return SelectNone, fmt.Errorf("unknown selection mode %q", s)
}

// Projector is the part of a basemap a data layer needs.
type Projector interface {
	Project(lon, lat float64) (projection.Point, bool)
	AreaAnchor(layer int, id string) (projection.Point, bool)
	ProjectArea(layer int, id string) ([]geom.Polygon, geom.BBox)
	City(name string) (basemap.City, bool)
}

var _ Projector = (*basemap.Basemap)(nil)

// Bubble radii in basemap units.
const (
	MinRadius = 40.0
	MaxRadius = 240.0
)

var (
	rampLow  = mustHex("#deebf7")
	rampHigh = mustHex("#08306b")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// DataLayer holds the items of one layer and its selection.
type DataLayer struct {
	Name  string
	Layer int // area layer index in the basemap

	bm       Projector
	mode     SelectionMode
	items    []Item
	byID     map[string]int
	selected []string
	isolated string
}

func New(name string, layer int, bm Projector, mode SelectionMode) *DataLayer {
	return &DataLayer{Name: name, Layer: layer, bm: bm, mode: mode, byID: make(map[string]int)}
}

func (l *DataLayer) Mode() SelectionMode { return l.mode }

// SetMode changes the selection mode; switching to single keeps only the
// most recent selection and switching to none clears it.
func (l *DataLayer) SetMode(m SelectionMode) {
	l.mode = m
	switch m {
	case SelectNone:
		l.selected = nil
	case SelectSingle:
		if n := len(l.selected); n > 1 {
			l.selected = l.selected[n-1:]
		}
	}
}

// Add inserts an item or replaces the item with the same id.
func (l *DataLayer) Add(items ...Item) {
	for _, it := range items {
		if i, ok := l.byID[it.ID]; ok {
			l.items[i] = it
			continue
		}
		l.byID[it.ID] = len(l.items)
		l.items = append(l.items, it)
	}
}

func (l *DataLayer) Items() []Item { return append([]Item(nil), l.items...) }

func (l *DataLayer) Len() int { return len(l.items) }

func (l *DataLayer) Item(id string) (Item, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Item{}, false
	}
	return l.items[i], true
}

// ForArea returns the area item bound to an area id.
func (l *DataLayer) ForArea(area string) (Item, bool) {
	for _, it := range l.items {
		if it.Kind == KindArea && it.Area() == area {
			return it, true
		}
	}
	return Item{}, false
}

// Range is the value range over all items.
func (l *DataLayer) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, it := range l.items {
		lo, hi = math.Min(lo, it.Value), math.Max(hi, it.Value)
	}
	if len(l.items) == 0 {
		return 0, 0, false
	}
	return lo, hi, true
}

// ColorFor maps a value onto the choropleth ramp, blending in Lab space.
func (l *DataLayer) ColorFor(v float64) string {
	lo, hi, ok := l.Range()
	t := 1.0
	if ok && hi > lo {
		t = math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
	}
	return rampLow.BlendLab(rampHigh, t).Clamped().Hex()
}

// RadiusFor sizes a bubble so that its area grows with the value.
func (l *DataLayer) RadiusFor(v float64) float64 {
	maxAbs := 0.0
	for _, it := range l.items {
		maxAbs = math.Max(maxAbs, math.Abs(it.Value))
	}
	if maxAbs == 0 {
		return MinRadius
	}
	return MinRadius + (MaxRadius-MinRadius)*math.Sqrt(math.Min(1, math.Abs(v)/maxAbs))
}

// Marker is a placed marker item.
type Marker struct {
	Item   Item
	Point  projection.Point
	Radius float64
}

// Place resolves a marker location: the bound area's centre, then a city
// of that name, then the raw coordinate.
func (l *DataLayer) Place(it Item) (projection.Point, bool) {
	if it.Location != "" {
		if p, ok := l.bm.AreaAnchor(l.Layer, it.Location); ok {
			return p, true
		}
		if c, ok := l.bm.City(it.Location); ok {
			if p, ok := l.bm.Project(c.Lon, c.Lat); ok {
				return p, true
			}
		}
	}
	if it.HasLonLat {
		return l.bm.Project(it.Lon, it.Lat)
	}
	return projection.Point{}, false
}

// Markers places every marker item; items that cannot be placed are
// skipped.
func (l *DataLayer) Markers() []Marker {
	var out []Marker
	for _, it := range l.items {
		if it.Kind != KindMarker {
			continue
		}
		p, ok := l.Place(it)
		if !ok {
			continue
		}
		out = append(out, Marker{Item: it, Point: p, Radius: l.RadiusFor(it.Value)})
	}
	return out
}

// Select adds an item to the selection according to the mode. It reports
// whether the selection changed.
func (l *DataLayer) Select(id string) bool {
	if l.mode == SelectNone {
		return false
	}
	if _, ok := l.byID[id]; !ok {
		return false
	}
	if l.IsSelected(id) {
		return false
	}
	if l.mode == SelectSingle {
		l.selected = l.selected[:0]
	}
	l.selected = append(l.selected, id)
	return true
}

func (l *DataLayer) Deselect(id string) {
	for i, s := range l.selected {
		if s == id {
			l.selected = append(l.selected[:i], l.selected[i+1:]...)
			return
		}
	}
}

func (l *DataLayer) ClearSelection() { l.selected = nil }

func (l *DataLayer) IsSelected(id string) bool {
	for _, s := range l.selected {
		if s == id {
			return true
		}
	}
	return false
}

func (l *DataLayer) Selected() []string { return append([]string(nil), l.selected...) }

// Isolate shows only the given item's area; an empty id clears isolation.
func (l *DataLayer) Isolate(id string) bool {
	if id == "" {
		l.isolated = ""
		return true
	}
	if _, ok := l.byID[id]; !ok {
		return false
	}
	l.isolated = id
	return true
}

func (l *DataLayer) Isolated() string { return l.isolated }

// Hidden reports whether an item is hidden by isolation.
func (l *DataLayer) Hidden(id string) bool { return l.isolated != "" && l.isolated != id }

// FitBounds returns the union of the projected bounds of the given items:
// area shapes for area items, bubble extents for markers.
func (l *DataLayer) FitBounds(ids []string) geom.BBox {
	var bbox geom.BBox
	for _, id := range ids {
		it, ok := l.Item(id)
		if !ok {
			continue
		}
		if it.Kind == KindArea {
			_, b := l.bm.ProjectArea(l.Layer, it.Area())
			bbox = bbox.Union(b)
			continue
		}
		if p, ok := l.Place(it); ok {
			r := l.RadiusFor(it.Value)
			bbox = bbox.Union(geom.NewBBox(p.X-r, p.Y-r, p.X+r, p.Y+r))
		}
	}
	return bbox
}
