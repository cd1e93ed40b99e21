// Package areaindex answers "which area is under this point" for projected
// area shapes.
package areaindex

import (
	"github.com/dhconnelly/rtreego"

	"thematicmap/internal/geom"
)

// Entry is one indexed area shape in basemap coordinates.
type Entry struct {
	Layer    int
	ID       string
	Polygons []geom.Polygon
	Box      geom.BBox

	seq int
}

// Bounds implements rtreego.Spatial.
func (e *Entry) Bounds() rtreego.Rect {
	return rect(e.Box)
}

func rect(b geom.BBox) rtreego.Rect {
	// rtreego rejects zero-length sides
	const epsilon = 1e-6
	w, h := b.Width(), b.Height()
	if w < epsilon {
		w = epsilon
	}
	if h < epsilon {
		h = epsilon
	}
	r, _ := rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, []float64{w, h})
	return r
}

// Shaper yields projected area shapes; *basemap.Basemap implements it.
type Shaper interface {
	ProjectArea(layer int, id string) ([]geom.Polygon, geom.BBox)
}

// Index is an R-tree over area bounding boxes. Hits are confirmed with an
// even-odd point-in-polygon test.
type Index struct {
	tree *rtreego.Rtree
	n    int
}

func New() *Index {
	return &Index{tree: rtreego.NewTree(2, 25, 50)}
}

// Build indexes areas[layer] for each layer, top layer first.
func Build(s Shaper, areas [][]string) *Index {
	idx := New()
	for layer, ids := range areas {
		for _, id := range ids {
			polys, box := s.ProjectArea(layer, id)
			idx.Add(layer, id, polys, box)
		}
	}
	return idx
}

// Add indexes one area. Areas without a shape are ignored.
func (idx *Index) Add(layer int, id string, polys []geom.Polygon, box geom.BBox) {
	if len(polys) == 0 || box.Empty() {
		return
	}
	idx.n++
	idx.tree.Insert(&Entry{Layer: layer, ID: id, Polygons: polys, Box: box, seq: idx.n})
}

func (idx *Index) Len() int { return idx.tree.Size() }

// At returns the area under the point. Overlaps resolve to the deepest
// layer, then to the most recently added area.
func (idx *Index) At(x, y float64) (Entry, bool) {
	var best *Entry
	for _, s := range idx.tree.SearchIntersect(rtreego.Point{x, y}.ToRect(1e-6)) {
		e := s.(*Entry)
		if !e.Box.Contains(x, y) || !e.contains(x, y) {
			continue
		}
		if best == nil || e.Layer > best.Layer || (e.Layer == best.Layer && e.seq > best.seq) {
			best = e
		}
	}
	if best == nil {
		return Entry{}, false
	}
	return *best, true
}

// Search returns the areas whose bounds intersect the box.
func (idx *Index) Search(b geom.BBox) []Entry {
	if b.Empty() {
		return nil
	}
	var out []Entry
	for _, s := range idx.tree.SearchIntersect(rect(b)) {
		out = append(out, *s.(*Entry))
	}
	return out
}

func (e *Entry) contains(x, y float64) bool {
	for _, p := range e.Polygons {
		if geom.PointInPolygon(x, y, p) {
			return true
		}
	}
	return false
}
