package projection

import "math"

// Point is a planar point in basemap or geographic space.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle anchored at its minimum corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Extent is a geographic rectangle in degrees. LonShift is added to the
// longitude of points inside it before projecting, so islands past the
// antimeridian stay contiguous with their region.
type Extent struct {
	Rect
	LonShift float64
}

// Region is one independently fitted part of a basemap: its geographic
// extents, the projection formula with an optional fixed rotation, and the
// window of the viewport it is drawn into.
type Region struct {
	Name     string
	Extents  []Extent
	Formula  Formula
	Rotation float64 // degrees, counter-clockwise
	Window   Rect

	fit viewportFit
}

// viewportFit maps planar bounds into a window, keeping the aspect ratio
// and centring the result. Screen y grows downward.
type viewportFit struct {
	minX, maxY float64
	scale      float64
	ox, oy     float64
}

const (
	fitSamples = 32
	fitPadding = 0.01
)

func (r *Region) prepare() {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, e := range r.Extents {
		for i := 0; i <= fitSamples; i++ {
			lon := e.X + e.W*float64(i)/fitSamples + e.LonShift
			for j := 0; j <= fitSamples; j++ {
				lat := e.Y + e.H*float64(j)/fitSamples
				x, y := r.planar(lon, lat)
				minX, maxX = math.Min(minX, x), math.Max(maxX, x)
				minY, maxY = math.Min(minY, y), math.Max(maxY, y)
			}
		}
	}
	padX, padY := (maxX-minX)*fitPadding, (maxY-minY)*fitPadding
	minX, maxX = minX-padX, maxX+padX
	minY, maxY = minY-padY, maxY+padY
	bw, bh := maxX-minX, maxY-minY
	scale := math.Min(r.Window.W/bw, r.Window.H/bh)
	r.fit = viewportFit{
		minX:  minX,
		maxY:  maxY,
		scale: scale,
		ox:    r.Window.X + (r.Window.W-bw*scale)/2,
		oy:    r.Window.Y + (r.Window.H-bh*scale)/2,
	}
}

// planar applies the formula and rotation to a lon/lat pair in degrees.
func (r *Region) planar(lon, lat float64) (float64, float64) {
	x, y := r.Formula.Forward(ToRadians(lon), ToRadians(lat))
	if r.Rotation != 0 {
		x, y = rotate(x, y, ToRadians(r.Rotation))
	}
	return x, y
}

func (r *Region) contains(lon, lat float64) (Extent, bool) {
	for _, e := range r.Extents {
		if e.Contains(lon, lat) {
			return e, true
		}
	}
	return Extent{}, false
}

func (r *Region) forward(lon, lat float64) Point {
	x, y := r.planar(lon, lat)
	return Point{
		X: r.fit.ox + (x-r.fit.minX)*r.fit.scale,
		Y: r.fit.oy + (r.fit.maxY-y)*r.fit.scale,
	}
}

func (r *Region) inverse(sx, sy float64) Point {
	x := (sx-r.fit.ox)/r.fit.scale + r.fit.minX
	y := r.fit.maxY - (sy-r.fit.oy)/r.fit.scale
	if r.Rotation != 0 {
		x, y = rotate(x, y, -ToRadians(r.Rotation))
	}
	lon, lat := r.Formula.Inverse(x, y)
	return Point{X: normalizeLon(ToDegrees(lon)), Y: ToDegrees(lat)}
}

func rotate(x, y, rad float64) (float64, float64) {
	s, c := math.Sin(rad), math.Cos(rad)
	return x*c - y*s, x*s + y*c
}

func normalizeLon(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
