package basemap

import (
	"errors"
	"fmt"

	"thematicmap/internal/geom"
	"thematicmap/internal/projection"
)

var (
	ErrUnknownBasemap = errors.New("unknown basemap")
	ErrUnknownLayer   = errors.New("unknown layer")
	ErrUnknownParent  = errors.New("unknown parent area")
)

// Area is one region of an area layer. Shape and Center are lon/lat.
type Area struct {
	ID       string
	Label    string
	Parent   string
	Children []string
	Shape    []geom.Polygon
	Bounds   geom.BBox
	Center   [2]float64
}

// Layer is one level of the area hierarchy. Its parent layer is the one
// before it in the basemap, its child layer the one after.
type Layer struct {
	Name  string
	Index int

	areas map[string]*Area
	order []string
}

func (l *Layer) Area(id string) (*Area, bool) {
	a, ok := l.areas[id]
	return a, ok
}

// IDs lists area ids in registration order.
func (l *Layer) IDs() []string { return append([]string(nil), l.order...) }

func (l *Layer) Len() int { return len(l.order) }

// City is a named point usable as a marker location.
type City struct {
	Name string
	Lon  float64
	Lat  float64
}

// Basemap is a projection definition plus its area-layer hierarchy.
type Basemap struct {
	Name string

	engine *projection.Engine
	layers []*Layer
	byName map[string]*Layer
	cities map[string]City
}

func newBasemap(name string, engine *projection.Engine) *Basemap {
	return &Basemap{
		Name:   name,
		engine: engine,
		byName: make(map[string]*Layer),
		cities: make(map[string]City),
	}
}

// Layers returns the layers from the top of the hierarchy down.
func (b *Basemap) Layers() []*Layer { return append([]*Layer(nil), b.layers...) }

func (b *Basemap) Layer(name string) (*Layer, error) {
	l, ok := b.byName[name]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", b.Name, name, ErrUnknownLayer)
	}
	return l, nil
}

func (b *Basemap) LayerAt(i int) (*Layer, bool) {
	if i < 0 || i >= len(b.layers) {
		return nil, false
	}
	return b.layers[i], true
}

func (b *Basemap) ChildLayer(l *Layer) (*Layer, bool)  { return b.LayerAt(l.Index + 1) }
func (b *Basemap) ParentLayer(l *Layer) (*Layer, bool) { return b.LayerAt(l.Index - 1) }

// Children returns the static child-layer ids of an area, nil for leaves.
func (b *Basemap) Children(layer int, id string) []string {
	l, ok := b.LayerAt(layer)
	if !ok {
		return nil
	}
	a, ok := l.areas[id]
	if !ok {
		return nil
	}
	return a.Children
}

// AddLayer appends a layer below the existing ones, or returns the layer of
// that name if it already exists.
func (b *Basemap) AddLayer(name string) *Layer {
	if l, ok := b.byName[name]; ok {
		return l
	}
	l := &Layer{Name: name, Index: len(b.layers), areas: make(map[string]*Area)}
	b.layers = append(b.layers, l)
	b.byName[name] = l
	return l
}

// AddArea registers an area. A non-empty Parent must name an area of the
// parent layer; the area is appended to that parent's children. Adding an
// id twice replaces its shape and label but keeps its children.
func (b *Basemap) AddArea(layer string, a Area) error {
	l, err := b.Layer(layer)
	if err != nil {
		return err
	}
	var parent *Area
	if a.Parent != "" {
		pl, ok := b.ParentLayer(l)
		if !ok {
			return fmt.Errorf("%s/%s: area %s: %w %q (top layer)", b.Name, layer, a.ID, ErrUnknownParent, a.Parent)
		}
		if parent, ok = pl.areas[a.Parent]; !ok {
			return fmt.Errorf("%s/%s: area %s: %w %q", b.Name, layer, a.ID, ErrUnknownParent, a.Parent)
		}
	}
	if a.Bounds.Empty() {
		for _, poly := range a.Shape {
			for _, ring := range poly {
				for _, p := range ring {
					a.Bounds.Extend(p[0], p[1])
				}
			}
		}
		a.Center = a.Bounds.Center()
	}
	if old, ok := l.areas[a.ID]; ok {
		a.Children = old.Children
		*old = a
		return nil
	}
	a.Children = nil
	area := a
	l.areas[a.ID] = &area
	l.order = append(l.order, a.ID)
	if parent != nil {
		parent.Children = append(parent.Children, a.ID)
	}
	return nil
}

func (b *Basemap) AddCity(c City) { b.cities[c.Name] = c }

func (b *Basemap) City(name string) (City, bool) {
	c, ok := b.cities[name]
	return c, ok
}

// Project converts lon/lat into this basemap's coordinates.
func (b *Basemap) Project(lon, lat float64) (projection.Point, bool) {
	return b.engine.Project(lon, lat, b.Name)
}

func (b *Basemap) InverseProject(x, y float64) projection.Point {
	return b.engine.InverseProject(x, y, b.Name)
}

// Bounds is the basemap's full extent in basemap coordinates.
func (b *Basemap) Bounds() geom.BBox {
	r, _ := b.engine.Bounds(b.Name)
	return geom.NewBBox(r.X, r.Y, r.MaxX(), r.MaxY())
}

// ProjectArea returns the area's shape in basemap coordinates. Vertices
// that do not project are dropped; rings left with fewer than three
// vertices are dropped too.
func (b *Basemap) ProjectArea(layer int, id string) ([]geom.Polygon, geom.BBox) {
	var bbox geom.BBox
	l, ok := b.LayerAt(layer)
	if !ok {
		return nil, bbox
	}
	a, ok := l.areas[id]
	if !ok {
		return nil, bbox
	}
	out := make([]geom.Polygon, 0, len(a.Shape))
	for _, poly := range a.Shape {
		var sp geom.Polygon
		for _, ring := range poly {
			var sr geom.Ring
			for _, v := range ring {
				p, ok := b.Project(v[0], v[1])
				if !ok {
					continue
				}
				sr = append(sr, [2]float64{p.X, p.Y})
				bbox.Extend(p.X, p.Y)
			}
			if len(sr) >= 3 {
				sp = append(sp, sr)
			}
		}
		if len(sp) > 0 {
			out = append(out, sp)
		}
	}
	return out, bbox
}

// AreaAnchor is the projected label anchor of an area.
func (b *Basemap) AreaAnchor(layer int, id string) (projection.Point, bool) {
	l, ok := b.LayerAt(layer)
	if !ok {
		return projection.Point{}, false
	}
	a, ok := l.areas[id]
	if !ok {
		return projection.Point{}, false
	}
	return b.Project(a.Center[0], a.Center[1])
}

// LayerCount, LayerName and Areas expose the hierarchy to the drill
// tracker.
func (b *Basemap) LayerCount() int { return len(b.layers) }

func (b *Basemap) LayerName(i int) string {
	if l, ok := b.LayerAt(i); ok {
		return l.Name
	}
	return ""
}

func (b *Basemap) Areas(i int) []string {
	if l, ok := b.LayerAt(i); ok {
		return l.IDs()
	}
	return nil
}
