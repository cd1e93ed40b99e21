package geom

// BBox is an axis-aligned bounding box. The zero value is empty; use
// Extend to grow it.
type BBox struct {
	MinX  float64
	MinY  float64
	MaxX  float64
	MaxY  float64
	valid bool
}

// NewBBox returns the box spanning the two corners.
func NewBBox(minX, minY, maxX, maxY float64) BBox {
	return BBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY, valid: true}
}

func (b BBox) Empty() bool { return !b.valid }

// Extend grows the box to include the point.
func (b *BBox) Extend(x, y float64) {
	if !b.valid {
		*b = NewBBox(x, y, x, y)
		return
	}
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// Union returns the smallest box covering both.
func (b BBox) Union(o BBox) BBox {
	if o.Empty() {
		return b
	}
	if b.Empty() {
		return o
	}
	b.Extend(o.MinX, o.MinY)
	b.Extend(o.MaxX, o.MaxY)
	return b
}

func (b BBox) Center() [2]float64 {
	return [2]float64{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

func (b BBox) Contains(x, y float64) bool {
	return b.valid && x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Ring is a closed sequence of vertices; the closing vertex may be omitted.
type Ring [][2]float64

// Polygon holds rings: first outer, following holes.
type Polygon []Ring

// Data collects the point and polygon geometry of one feature.
type Data struct {
	Points   [][2]float64
	Polygons []Polygon
	BBox     BBox
}

func (d *Data) addPoint(p [2]float64) {
	d.Points = append(d.Points, p)
	d.BBox.Extend(p[0], p[1])
}

func (d *Data) addPolygon(poly Polygon) {
	d.Polygons = append(d.Polygons, poly)
	for _, ring := range poly {
		for _, p := range ring {
			d.BBox.Extend(p[0], p[1])
		}
	}
}

// Empty reports whether no geometry was collected.
func (d Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Polygons) == 0
}

// PointInPolygon applies the even-odd rule: inside the outer ring and
// outside every hole.
func PointInPolygon(x, y float64, poly Polygon) bool {
	if len(poly) == 0 || !pointInRing(x, y, poly[0]) {
		return false
	}
	for _, hole := range poly[1:] {
		if pointInRing(x, y, hole) {
			return false
		}
	}
	return true
}

func pointInRing(x, y float64, ring Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
