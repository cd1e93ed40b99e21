package tui

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"thematicmap/internal/areaindex"
	"thematicmap/internal/basemap"
	"thematicmap/internal/config"
	"thematicmap/internal/datalayer"
	"thematicmap/internal/drill"
	"thematicmap/internal/geom"
	"thematicmap/internal/logger"
)

type shapeKey struct {
	layer int
	id    string
}

type shape struct {
	polys []geom.Polygon
	box   geom.BBox
}

// shapeCache holds every area of the current basemap, projected once.
type shapeCache map[shapeKey]shape

func (c shapeCache) ProjectArea(layer int, id string) ([]geom.Polygon, geom.BBox) {
	s := c[shapeKey{layer, id}]
	return s.polys, s.box
}

type Model struct {
	width  int
	height int

	showSidebar bool

	zoom    float64
	offsetX int
	offsetY int

	status string
	log    *slog.Logger

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Map
	cfg     config.Config
	catalog *basemap.Catalog
	bm      *basemap.Basemap
	tracker *drill.Tracker
	shapes  shapeCache
	index   *areaindex.Index
	view    geom.BBox // basemap-space box shown at zoom 1
	anim    Animator
	cycle   int // position of the tab focus among visible areas

	// Data layer; items survive basemap switches
	data      *datalayer.DataLayer
	dataItems []datalayer.Item

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverArea   shapeKey
	hoverOnArea bool

	// attributes table
	showAttrs bool
	tbl       table.Model

	keys keyMap
	help help.Model
}

// New builds the viewer over a catalog. Startup problems (unknown basemap,
// unreadable files) end up in the status line, not in an error.
func New(cfg config.Config, catalog *basemap.Catalog) Model {
	m := Model{
		zoom:    1.0,
		status:  "thematicmap ready",
		log:     logger.L(),
		cfg:     cfg,
		catalog: catalog,
		keys:    defaultKeys(),
		help:    help.New(),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// attributes table setup (columns follow the current data)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()

	if cfg.AreasFile != "" {
		m.loadPath(cfg.AreasFile)
	}
	m.setBasemap(cfg.Basemap)
	if cfg.DataFile != "" {
		m.loadPath(cfg.DataFile)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// setBasemap switches the map to a catalog basemap, resetting drill state
// and rebinding the data layer.
func (m *Model) setBasemap(name string) {
	bm, err := m.catalog.Basemap(name)
	if err != nil {
		m.status = "basemap error: " + err.Error()
		m.log.Error("basemap_load_error", "basemap", name, "err", err)
		if m.bm != nil {
			return
		}
		if bm, err = m.catalog.Basemap("world"); err != nil {
			return
		}
	}
	m.bm = bm
	m.tracker = drill.New(bm, m.cfg.DrillMode)
	m.anim.Cancel()
	m.cycle = -1
	m.zoom, m.offsetX, m.offsetY = 1, 0, 0
	m.view = bm.Bounds()
	m.shapes = make(shapeCache)
	for i := 0; i < bm.LayerCount(); i++ {
		for _, id := range bm.Areas(i) {
			polys, box := bm.ProjectArea(i, id)
			m.shapes[shapeKey{i, id}] = shape{polys: polys, box: box}
		}
	}
	m.bindData()
	m.rebuildIndex()
	m.log.Info("basemap_load", "basemap", bm.Name, "layers", bm.LayerCount(), "areas", len(m.shapes))
}

// bindData attaches the loaded items to the layer of the current basemap
// that matches most of their locations.
func (m *Model) bindData() {
	if len(m.dataItems) == 0 {
		m.data = nil
		return
	}
	best, bestN := 0, -1
	for i := 0; i < m.bm.LayerCount(); i++ {
		n := 0
		for _, it := range m.dataItems {
			if _, ok := m.shapes[shapeKey{i, it.Area()}]; ok {
				n++
			}
		}
		if n > bestN {
			best, bestN = i, n
		}
	}
	m.data = datalayer.New("data", best, m.bm, m.cfg.SelectionMode)
	m.data.Add(m.dataItems...)
}

// rebuildIndex indexes the currently visible areas for hit testing.
func (m *Model) rebuildIndex() {
	visible := make([][]string, m.bm.LayerCount())
	for layer := range visible {
		visible[layer] = m.tracker.Visible(layer)
	}
	m.index = areaindex.Build(m.shapes, visible)
}

// visibleAreas lists drawn areas from the top layer down.
func (m Model) visibleAreas() []shapeKey {
	var out []shapeKey
	for layer := 0; layer < m.bm.LayerCount(); layer++ {
		for _, id := range m.tracker.Visible(layer) {
			out = append(out, shapeKey{layer, id})
		}
	}
	return out
}

// focused is the most recently selected area of the clicked layer.
func (m Model) focused() (shapeKey, bool) {
	layer := m.tracker.ClickedLayer()
	sel := m.tracker.Selected(layer)
	if len(sel) == 0 {
		return shapeKey{}, false
	}
	return shapeKey{layer, sel[len(sel)-1]}, true
}

func (m Model) areaLabel(k shapeKey) string {
	if l, ok := m.bm.LayerAt(k.layer); ok {
		if a, ok := l.Area(k.id); ok && a.Label != "" {
			return a.Label
		}
	}
	return k.id
}

// dataItemFor returns the area item bound to an area, if the data layer
// covers that area's layer.
func (m Model) dataItemFor(k shapeKey) (datalayer.Item, bool) {
	if m.data == nil || m.data.Layer != k.layer {
		return datalayer.Item{}, false
	}
	return m.data.ForArea(k.id)
}
