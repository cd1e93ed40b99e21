package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"thematicmap/internal/datalayer"
	"thematicmap/internal/drill"
)

// layout is the map area inside the window; View and mouse handling must
// agree on it.
type layout struct {
	originX, originY int
	mapW, mapH       int
	contentW         int
	contentH         int
	sidebarW         int
}

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

func (m Model) layout() layout {
	lo := layout{originY: headerHeight}
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
		lo.originX = sidebarWidth + 1
	}
	lo.contentH = max(4, m.height-headerHeight-footerHeight)
	lo.contentW = max(10, m.width)
	lo.mapW = max(10, lo.contentW-lo.sidebarW-1)
	lo.mapH = lo.contentH
	return lo
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case frameMsg:
		return m, m.anim.Step(msg)
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.showAttrs && msg.String() != "a" && msg.String() != "q" && msg.String() != "esc" {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		if m.bm == nil {
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.bm == nil {
			return m, nil
		}
		m.handleMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.inspectPopup = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case msg.String() == "esc":
		m.showAttrs = false
	case key.Matches(msg, m.keys.ZoomIn):
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case key.Matches(msg, m.keys.ZoomOut):
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case msg.String() == "up":
		m.offsetY -= 1
	case msg.String() == "down":
		m.offsetY += 1
	case msg.String() == "left":
		m.offsetX -= 2
	case msg.String() == "right":
		m.offsetX += 2
	case key.Matches(msg, m.keys.DrillDown):
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
			return m, nil
		}
		return m.applyDelta("drill_down", m.tracker.DrillDown())
	case key.Matches(msg, m.keys.DrillUp):
		return m.applyDelta("drill_up", m.tracker.DrillUp())
	case key.Matches(msg, m.keys.Reset):
		if m.data != nil {
			m.data.ClearSelection()
			m.data.Isolate("")
		}
		m.zoom, m.offsetX, m.offsetY = 1, 0, 0
		m.view = m.bm.Bounds()
		m.cycle = -1
		return m.applyDelta("reset", m.tracker.Reset())
	case key.Matches(msg, m.keys.ZoomSel):
		b := m.selectionBounds()
		if b.Empty() {
			m.status = "nothing selected"
			break
		}
		m.view = pad(b, 0.05)
		m.zoom, m.offsetX, m.offsetY = 1, 0, 0
		m.status = "zoomed to selection"
	case key.Matches(msg, m.keys.Isolate):
		m.toggleIsolate()
	case key.Matches(msg, m.keys.Cycle):
		m.cycleFocus()
	case key.Matches(msg, m.keys.DrillMode):
		mode := (m.tracker.Mode() + 1) % 3
		m.tracker.SetMode(mode)
		m.cfg.DrillMode = mode
		m.status = "drill mode: " + mode.String()
	case key.Matches(msg, m.keys.Basemap):
		names := m.catalog.Names()
		next := names[0]
		for i, n := range names {
			if n == m.bm.Name {
				next = names[(i+1)%len(names)]
			}
		}
		m.setBasemap(next)
		m.status = fmt.Sprintf("basemap: %s (%d layers)", m.bm.Name, m.bm.LayerCount())
	case key.Matches(msg, m.keys.Files):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Attrs):
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case key.Matches(msg, m.keys.Inspect):
		m.inspect()
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyDelta refreshes the hit index after a drill operation and hands the
// delta to the animator, cancelling any fade still running.
func (m Model) applyDelta(op string, d drill.Delta) (tea.Model, tea.Cmd) {
	m.rebuildIndex()
	m.syncDataSelection()
	m.cycle = -1
	layer := m.tracker.ClickedLayer()
	m.log.Debug(op, "basemap", m.bm.Name, "layer", layer, "fade_out", len(d.FadeOut), "fade_in", len(d.FadeIn))
	if d.Empty() {
		m.status = op + ": nothing to do"
		return m, nil
	}
	var drilled []string
	for l := 0; l < m.bm.LayerCount(); l++ {
		drilled = append(drilled, m.tracker.Drilled(l)...)
	}
	m.status = fmt.Sprintf("%s  layer: %s  drilled: %s", strings.ReplaceAll(op, "_", " "), m.bm.LayerName(layer), strings.Join(drilled, ","))
	return m, m.anim.Start(d)
}

// selectArea selects an area on the tracker and mirrors the selection
// into the data layer. Clicking a selected area deselects it.
func (m *Model) selectArea(k shapeKey) {
	if m.tracker.IsSelected(k.layer, k.id) {
		m.tracker.Deselect(k.layer, k.id)
		if it, ok := m.dataItemFor(k); ok {
			m.data.Deselect(it.ID)
		}
		m.status = "deselected " + m.areaLabel(k)
		return
	}
	if m.data != nil && m.data.Mode() == datalayer.SelectSingle {
		m.tracker.ClearSelection(k.layer)
	}
	if !m.tracker.Select(k.layer, k.id) {
		return
	}
	if it, ok := m.dataItemFor(k); ok {
		m.data.Select(it.ID)
	}
	m.status = fmt.Sprintf("selected %s (%s)", m.areaLabel(k), m.bm.LayerName(k.layer))
}

// syncDataSelection makes the data layer's area selection follow the
// tracker after a drill: drilled parents drop out, parents restored by a
// drill up come back. Marker selections are left alone.
func (m *Model) syncDataSelection() {
	if m.data == nil {
		return
	}
	for _, id := range m.data.Selected() {
		it, ok := m.data.Item(id)
		if ok && it.Kind == datalayer.KindArea && !m.tracker.IsSelected(m.data.Layer, it.Area()) {
			m.data.Deselect(id)
		}
	}
	for _, area := range m.tracker.Selected(m.data.Layer) {
		if it, ok := m.data.ForArea(area); ok && !m.data.IsSelected(it.ID) {
			m.data.Select(it.ID)
		}
	}
}

// cycleFocus moves the focus to the next visible area and makes it the
// only selection of its layer.
func (m *Model) cycleFocus() {
	areas := m.visibleAreas()
	if len(areas) == 0 {
		return
	}
	m.cycle = (m.cycle + 1) % len(areas)
	k := areas[m.cycle]
	m.tracker.ClearSelection(k.layer)
	if m.data != nil {
		m.data.ClearSelection()
	}
	m.selectArea(k)
}

func (m *Model) toggleIsolate() {
	if m.data == nil {
		m.status = "isolate: no data loaded"
		return
	}
	if m.data.Isolated() != "" {
		m.data.Isolate("")
		m.status = "isolation cleared"
		return
	}
	k, ok := m.focused()
	if !ok {
		m.status = "isolate: nothing selected"
		return
	}
	it, ok := m.dataItemFor(k)
	if !ok || !m.data.Isolate(it.ID) {
		m.status = "isolate: no data for " + m.areaLabel(k)
		return
	}
	m.status = "isolated " + m.areaLabel(k)
}

func (m *Model) inspect() {
	k, ok := m.focused()
	if !ok {
		m.inspectPopup = "nothing selected"
		m.status = m.inspectPopup
		return
	}
	meta := []string{
		fmt.Sprintf("area: %s (%s)", m.areaLabel(k), k.id),
		fmt.Sprintf("layer: %s", m.bm.LayerName(k.layer)),
	}
	if p, ok := m.tracker.Parent(k.layer, k.id); ok {
		meta = append(meta, "parent: "+p)
	}
	if it, ok := m.dataItemFor(k); ok {
		meta = append(meta, fmt.Sprintf("value: %g", it.Value))
	}
	if l, ok := m.bm.LayerAt(k.layer); ok {
		if cl, ok := m.bm.ChildLayer(l); ok {
			meta = append(meta, fmt.Sprintf("children: %d %s", len(m.bm.Children(k.layer, k.id)), cl.Name))
		}
		if a, ok := l.Area(k.id); ok {
			meta = append(meta, fmt.Sprintf("center: lon=%.4f lat=%.4f", a.Center[0], a.Center[1]))
		}
	}
	meta = append(meta, "drill mode: "+m.tracker.Mode().String())
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	lo := m.layout()
	cx, cy := msg.X-lo.originX, msg.Y-lo.originY
	if cx < 0 || cx >= lo.mapW || cy < 0 || cy >= lo.mapH {
		m.hovering = false
		m.hoverOnArea = false
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.zoom < 64 {
			m.zoom *= 1.2
		}
		return
	case tea.MouseButtonWheelDown:
		if m.zoom > 0.05 {
			m.zoom /= 1.2
		}
		return
	}
	m.hovering = true
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(cx, cy, lo.mapW, lo.mapH)
	m.hoverArea, m.hoverOnArea = m.areaAtCell(cx, cy, lo.mapW, lo.mapH)

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.hoverOnArea {
		m.selectArea(m.hoverArea)
	}
}
