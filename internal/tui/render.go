package tui

import (
	"math"
	"sort"
	"strings"

	"thematicmap/internal/drill"
	"thematicmap/internal/geom"
)

// canvas maps basemap coordinates (y down) onto the braille microgrid of a
// w x h cell map, honouring zoom and pan. Micro-pixels are close to square
// on a typical terminal, so one scale serves both axes.
type canvas struct {
	w, h   int
	cx, cy float64 // basemap point at the canvas centre
	scale  float64 // micro-pixels per basemap unit
	offX   int     // pan, in micro-pixels
	offY   int
}

func (m Model) canvas(w, h int) (canvas, bool) {
	if m.view.Empty() || m.view.Width() <= 0 || m.view.Height() <= 0 || w <= 1 || h <= 1 {
		return canvas{}, false
	}
	c := m.view.Center()
	scale := math.Min(float64(w*2)/m.view.Width(), float64(h*4)/m.view.Height()) * m.zoom
	return canvas{w: w, h: h, cx: c[0], cy: c[1], scale: scale, offX: m.offsetX * 2, offY: m.offsetY * 4}, true
}

func (c canvas) toMicro(x, y float64) (int, int) {
	mx := float64(c.w) + (x-c.cx)*c.scale + float64(c.offX)
	my := float64(c.h*2) + (y-c.cy)*c.scale + float64(c.offY)
	return int(math.Floor(mx)), int(math.Floor(my))
}

func (c canvas) toCell(x, y float64) (int, int) {
	mx, my := c.toMicro(x, y)
	return floorDiv(mx, 2), floorDiv(my, 4)
}

// fromCell returns the basemap point under the centre of a cell.
func (c canvas) fromCell(cellX, cellY int) (float64, float64) {
	mx := float64(cellX*2 + 1)
	my := float64(cellY*4 + 2)
	return c.cx + (mx-float64(c.w)-float64(c.offX))/c.scale,
		c.cy + (my-float64(c.h*2)-float64(c.offY))/c.scale
}

// bounds is the basemap box covered by the canvas.
func (c canvas) bounds() geom.BBox {
	var b geom.BBox
	b.Extend(c.cx+(-float64(c.w)-float64(c.offX))/c.scale, c.cy+(-float64(c.h*2)-float64(c.offY))/c.scale)
	b.Extend(c.cx+(float64(c.w)-float64(c.offX))/c.scale, c.cy+(float64(c.h*2)-float64(c.offY))/c.scale)
	return b
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	c, ok := m.canvas(w, h)
	if !ok || m.bm == nil {
		return strings.Join(br.toLines(), "\n")
	}

	m.drawGraticule(br, c)

	areas := m.onScreen(m.visibleAreas(), c)
	// fill first, so that deeper layers and edges paint over it
	for _, k := range areas {
		if m.isolatedAway(k) {
			continue
		}
		s := m.shapes[k]
		fade := m.anim.Progress(drill.Handle{Layer: k.layer, Area: k.id, Kind: drill.KindArea})
		fillShape(br, c, s, m.areaColor(k), fade)
	}
	for _, k := range areas {
		if m.isolatedAway(k) {
			continue
		}
		col := m.areaColor(k)
		switch {
		case m.tracker.IsSelected(k.layer, k.id):
			col = selectedCol
		case m.hoverOnArea && m.hoverArea == k:
			col = hoverCol
		}
		fade := m.anim.Progress(drill.Handle{Layer: k.layer, Area: k.id, Kind: drill.KindArea})
		strokeShape(br, c, m.shapes[k], col, fade)
	}

	if m.data != nil {
		for _, mk := range m.data.Markers() {
			if m.data.Hidden(mk.Item.ID) {
				continue
			}
			mx, my := c.toMicro(mk.Point.X, mk.Point.Y)
			col := markerCol
			if m.data.IsSelected(mk.Item.ID) {
				col = selectedCol
			}
			br.drawCircleMicro(mx, my, int(mk.Radius*c.scale), col)
		}
	}

	// labels last, only where they fit inside their area
	for _, k := range areas {
		if m.isolatedAway(k) {
			continue
		}
		if m.anim.Progress(drill.Handle{Layer: k.layer, Area: k.id, Kind: drill.KindLabel}) < 1 {
			continue
		}
		p, ok := m.bm.AreaAnchor(k.layer, k.id)
		if !ok {
			continue
		}
		s := m.shapes[k]
		widthCells := int(s.box.Width() * c.scale / 2)
		label := k.id
		if len([]rune(label)) > widthCells {
			continue
		}
		cx, cy := c.toCell(p.X, p.Y)
		br.putText(cx-len([]rune(label))/2, cy, label, labelCol)
	}
	return strings.Join(br.toLines(), "\n")
}

// onScreen keeps the areas whose bounds reach into the canvas, in order.
func (m Model) onScreen(areas []shapeKey, c canvas) []shapeKey {
	if m.index == nil {
		return areas
	}
	hit := make(map[shapeKey]bool)
	for _, e := range m.index.Search(c.bounds()) {
		hit[shapeKey{e.Layer, e.ID}] = true
	}
	out := areas[:0]
	for _, k := range areas {
		if hit[k] {
			out = append(out, k)
		}
	}
	return out
}

// areaColor is the choropleth colour of an area, or its layer shade.
func (m Model) areaColor(k shapeKey) string {
	if it, ok := m.dataItemFor(k); ok {
		return m.data.ColorFor(it.Value)
	}
	return layerColor(k.layer)
}

// isolatedAway reports whether isolation hides an area of the data layer.
func (m Model) isolatedAway(k shapeKey) bool {
	if m.data == nil || m.data.Isolated() == "" || m.data.Layer != k.layer {
		return false
	}
	it, ok := m.data.Item(m.data.Isolated())
	return !ok || it.Area() != k.id
}

// fillShape fills polygons with the even-odd rule per micro scanline;
// holes fall out of the crossing count.
func fillShape(br *brailleBuf, c canvas, s shape, col string, opacity float64) {
	hMic := c.h * 4
	for _, poly := range s.polys {
		var rings [][][2]int
		for _, ring := range poly {
			rm := make([][2]int, 0, len(ring))
			for _, p := range ring {
				mx, my := c.toMicro(p[0], p[1])
				rm = append(rm, [2]int{mx, my})
			}
			rings = append(rings, rm)
		}
		y0, y1 := math.MaxInt, math.MinInt
		for _, r := range rings {
			for _, p := range r {
				y0, y1 = min(y0, p[1]), max(y1, p[1])
			}
		}
		for yMic := max(0, y0); yMic <= min(hMic-1, y1); yMic++ {
			var xs []int
			for _, r := range rings {
				for i := 0; i < len(r); i++ {
					a := r[i]
					b := r[(i+1)%len(r)]
					if a[1] == b[1] { // horizontal edge: skip
						continue
					}
					if (yMic >= a[1] && yMic < b[1]) || (yMic >= b[1] && yMic < a[1]) {
						t := float64(yMic-a[1]) / float64(b[1]-a[1])
						xs = append(xs, int(float64(a[0])+t*float64(b[0]-a[0])))
					}
				}
			}
			sort.Ints(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				for xMic := max(0, xs[i]); xMic <= min(c.w*2-1, xs[i+1]); xMic++ {
					br.setPixelFaded(xMic, yMic, col, opacity)
				}
			}
		}
	}
}

func strokeShape(br *brailleBuf, c canvas, s shape, col string, opacity float64) {
	for _, poly := range s.polys {
		for _, ring := range poly {
			for i := range ring {
				a, b := ring[i], ring[(i+1)%len(ring)]
				ax, ay := c.toMicro(a[0], a[1])
				bx, by := c.toMicro(b[0], b[1])
				if !segmentVisible(ax, ay, bx, by, c) {
					continue
				}
				br.drawLineMicro(ax, ay, bx, by, col, opacity)
			}
		}
	}
}

func segmentVisible(ax, ay, bx, by int, c canvas) bool {
	wMic, hMic := c.w*2, c.h*4
	if (ax < 0 && bx < 0) || (ay < 0 && by < 0) || (ax >= wMic && bx >= wMic) || (ay >= hMic && by >= hMic) {
		return false
	}
	// zoomed far in, a single edge can span millions of micro-pixels
	return abs(bx-ax)+abs(by-ay) < 64*(wMic+hMic)
}

// drawGraticule draws 30° meridians and parallels. Segments are only
// joined inside one projection region so insets are not connected.
func (m Model) drawGraticule(br *brailleBuf, c canvas) {
	engine := m.catalog.Engine()
	name := m.bm.Name
	line := func(pts [][2]float64) {
		var prev *[2]int
		prevRegion := ""
		for _, ll := range pts {
			p, ok := m.bm.Project(ll[0], ll[1])
			if !ok {
				prev = nil
				continue
			}
			region, _ := engine.RegionAt(ll[0], ll[1], name)
			mx, my := c.toMicro(p.X, p.Y)
			if prev != nil && region == prevRegion && segmentVisible(prev[0], prev[1], mx, my, c) {
				br.drawLineMicro(prev[0], prev[1], mx, my, graticuleCol, 1)
			}
			prev = &[2]int{mx, my}
			prevRegion = region
		}
	}
	for lon := -180.0; lon <= 180; lon += 30 {
		var pts [][2]float64
		for lat := -80.0; lat <= 80; lat += 2 {
			pts = append(pts, [2]float64{lon, lat})
		}
		line(pts)
	}
	for lat := -60.0; lat <= 60; lat += 30 {
		var pts [][2]float64
		for lon := -180.0; lon <= 180; lon += 2 {
			pts = append(pts, [2]float64{lon, lat})
		}
		line(pts)
	}
}

// cellToLonLat converts a map cell back to lon/lat through the inverse
// projection.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	c, ok := m.canvas(w, h)
	if !ok || m.bm == nil {
		return 0, 0, false
	}
	x, y := c.fromCell(cx, cy)
	if !m.bm.Bounds().Contains(x, y) {
		return 0, 0, false
	}
	p := m.bm.InverseProject(x, y)
	return p.X, p.Y, true
}

// areaAtCell hit-tests the visible areas under a map cell.
func (m Model) areaAtCell(cx, cy, w, h int) (shapeKey, bool) {
	c, ok := m.canvas(w, h)
	if !ok || m.index == nil {
		return shapeKey{}, false
	}
	x, y := c.fromCell(cx, cy)
	e, ok := m.index.At(x, y)
	if !ok {
		return shapeKey{}, false
	}
	return shapeKey{e.Layer, e.ID}, true
}

// selectionBounds is the union of the selected areas' projected bounds.
func (m Model) selectionBounds() geom.BBox {
	var b geom.BBox
	for layer := 0; layer < m.bm.LayerCount(); layer++ {
		for _, id := range m.tracker.Selected(layer) {
			b = b.Union(m.shapes[shapeKey{layer, id}].box)
		}
	}
	if m.data != nil {
		b = b.Union(m.data.FitBounds(m.data.Selected()))
	}
	return b
}
