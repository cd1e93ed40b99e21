package projection

import "sort"

// Scale is the factor between the viewport and basemap coordinates.
const Scale = 10

// Viewport is the target rectangle every basemap is fitted into, before
// scaling.
var Viewport = Rect{X: 0, Y: 0, W: 800, H: 500}

// Definition names a basemap and lists its regions in priority order.
type Definition struct {
	Name    string
	Regions []Region
}

// Engine projects between lon/lat and basemap coordinates for a fixed set
// of basemap definitions. It holds no mutable state after construction.
type Engine struct {
	defs map[string][]*Region
}

// NewEngine fits every region of the given definitions.
func NewEngine(defs ...Definition) *Engine {
	e := &Engine{defs: make(map[string][]*Region, len(defs))}
	for _, d := range defs {
		regions := make([]*Region, 0, len(d.Regions))
		for i := range d.Regions {
			r := d.Regions[i]
			r.Extents = append([]Extent(nil), r.Extents...)
			r.prepare()
			regions = append(regions, &r)
		}
		e.defs[d.Name] = regions
	}
	return e
}

// Default returns an engine over the builtin basemaps.
func Default() *Engine { return NewEngine(Definitions()...) }

// Has reports whether the engine knows the basemap.
func (e *Engine) Has(basemap string) bool {
	_, ok := e.defs[basemap]
	return ok
}

// Names lists the known basemaps, sorted.
func (e *Engine) Names() []string {
	out := make([]string, 0, len(e.defs))
	for name := range e.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Project converts lon/lat in degrees into basemap coordinates. The second
// result is false when the basemap is unknown or the point is not
// representable on it.
func (e *Engine) Project(lon, lat float64, basemap string) (Point, bool) {
	regions, ok := e.defs[basemap]
	if !ok {
		return Point{}, false
	}
	for _, r := range regions {
		ext, ok := r.contains(lon, lat)
		if !ok {
			continue
		}
		p := r.forward(lon+ext.LonShift, lat)
		if !r.Window.Contains(p.X, p.Y) {
			return Point{}, false
		}
		return Point{X: p.X * Scale, Y: p.Y * Scale}, true
	}
	return Point{}, false
}

// InverseProject converts basemap coordinates back to lon/lat. It always
// returns a point: unknown basemaps echo the input, and coordinates outside
// every window are extrapolated through the last region.
//
// Inset windows overlap the main one, so a window hit only counts when the
// region's inverse lands inside its own extents. When no region claims the
// point, the first window containing it extrapolates.
func (e *Engine) InverseProject(x, y float64, basemap string) Point {
	regions, ok := e.defs[basemap]
	if !ok || len(regions) == 0 {
		return Point{X: x, Y: y}
	}
	sx, sy := x/Scale, y/Scale
	var fallback *Region
	for _, r := range regions {
		if !r.Window.Contains(sx, sy) {
			continue
		}
		p := r.inverse(sx, sy)
		if _, ok := r.contains(p.X, p.Y); ok {
			return p
		}
		if fallback == nil {
			fallback = r
		}
	}
	if fallback == nil {
		fallback = regions[len(regions)-1]
	}
	return fallback.inverse(sx, sy)
}

// RegionAt names the region a lon/lat pair falls in, in priority order.
func (e *Engine) RegionAt(lon, lat float64, basemap string) (string, bool) {
	for _, r := range e.defs[basemap] {
		if _, ok := r.contains(lon, lat); ok {
			return r.Name, true
		}
	}
	return "", false
}

// Bounds returns the scaled viewport of a basemap.
func (e *Engine) Bounds(basemap string) (Rect, bool) {
	if !e.Has(basemap) {
		return Rect{}, false
	}
	return Rect{X: Viewport.X * Scale, Y: Viewport.Y * Scale, W: Viewport.W * Scale, H: Viewport.H * Scale}, true
}
