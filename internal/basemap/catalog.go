package basemap

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"thematicmap/internal/geom"
	"thematicmap/internal/projection"
)

//go:embed data/builtin.json
var builtinJSON []byte

// Catalog holds every basemap known to one map instance. It is built once
// and passed to whatever needs basemap metadata.
type Catalog struct {
	engine   *projection.Engine
	basemaps map[string]*Basemap
}

func NewCatalog(engine *projection.Engine) *Catalog {
	return &Catalog{engine: engine, basemaps: make(map[string]*Basemap)}
}

// Builtin returns a catalog over the default projections with the
// embedded area metadata loaded.
func Builtin() (*Catalog, error) {
	c := NewCatalog(projection.Default())
	if err := c.LoadJSON(bytes.NewReader(builtinJSON)); err != nil {
		return nil, fmt.Errorf("builtin basemaps: %w", err)
	}
	return c, nil
}

func (c *Catalog) Engine() *projection.Engine { return c.engine }

// Basemap returns the named basemap. Basemaps the projection engine knows
// but that have no registered areas come back with no layers.
func (c *Catalog) Basemap(name string) (*Basemap, error) {
	if b, ok := c.basemaps[name]; ok {
		return b, nil
	}
	return c.Register(name)
}

// Register returns the basemap of that name, creating it if needed.
func (c *Catalog) Register(name string) (*Basemap, error) {
	if b, ok := c.basemaps[name]; ok {
		return b, nil
	}
	if !c.engine.Has(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBasemap)
	}
	b := newBasemap(name, c.engine)
	c.basemaps[name] = b
	return b, nil
}

// Names lists every basemap the catalog can serve.
func (c *Catalog) Names() []string {
	seen := make(map[string]bool)
	for _, n := range c.engine.Names() {
		seen[n] = true
	}
	for n := range c.basemaps {
		seen[n] = true
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

type jsonCatalog struct {
	Basemaps []struct {
		Name   string `json:"name"`
		Layers []struct {
			Name  string `json:"name"`
			Areas []struct {
				ID     string `json:"id"`
				Label  string `json:"label"`
				Parent string `json:"parent"`
				Path   string `json:"path"`
			} `json:"areas"`
		} `json:"layers"`
		Cities []City `json:"cities"`
	} `json:"basemaps"`
}

// LoadJSON registers basemap metadata: layers from the top down, areas with
// WKT paths in lon/lat, and cities.
func (c *Catalog) LoadJSON(r io.Reader) error {
	var doc jsonCatalog
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return err
	}
	for _, jb := range doc.Basemaps {
		b, err := c.Register(jb.Name)
		if err != nil {
			return err
		}
		for _, jl := range jb.Layers {
			b.AddLayer(jl.Name)
			for _, ja := range jl.Areas {
				a := Area{ID: ja.ID, Label: ja.Label, Parent: ja.Parent}
				if ja.Path != "" {
					d, err := geom.ParseWKTData(ja.Path)
					if err != nil {
						return fmt.Errorf("%s/%s/%s: %w", jb.Name, jl.Name, ja.ID, err)
					}
					a.Shape = d.Polygons
				}
				if err := b.AddArea(jl.Name, a); err != nil {
					return err
				}
			}
		}
		for _, city := range jb.Cities {
			b.AddCity(city)
		}
	}
	return nil
}

// LoadGeoJSON registers the polygon features of a GeoJSON file as areas.
// Feature properties: layer, id, label, parent, optional basemap
// (defaulting to the given one) and level, the 0-based depth used to order
// layers that do not exist yet. It returns the number of areas added.
func (c *Catalog) LoadGeoJSON(path, basemap string) (int, error) {
	fs, err := geom.LoadFeatures(path)
	if err != nil {
		return 0, err
	}
	return c.AddFeatures(fs, basemap)
}

func (c *Catalog) AddFeatures(fs []geom.Feature, basemap string) (int, error) {
	level := func(f geom.Feature) float64 {
		if v, ok := f.Properties["level"].(float64); ok {
			return v
		}
		if f.Prop("parent") == "" {
			return 0
		}
		return math.Inf(1)
	}
	sorted := append([]geom.Feature(nil), fs...)
	sort.SliceStable(sorted, func(i, j int) bool { return level(sorted[i]) < level(sorted[j]) })

	n := 0
	for i, f := range sorted {
		if len(f.Data.Polygons) == 0 {
			continue
		}
		name := f.Prop("basemap")
		if name == "" {
			name = basemap
		}
		b, err := c.Register(name)
		if err != nil {
			return n, err
		}
		layer, id := f.Prop("layer"), f.Prop("id")
		if layer == "" || id == "" {
			return n, fmt.Errorf("feature %d: missing layer or id property", i)
		}
		b.AddLayer(layer)
		label := f.Prop("label")
		if label == "" {
			label = id
		}
		if err := b.AddArea(layer, Area{ID: id, Label: label, Parent: f.Prop("parent"), Shape: f.Data.Polygons}); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
