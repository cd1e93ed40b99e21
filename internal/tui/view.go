package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Header
	title := " thematicmap "
	if m.bm != nil {
		title = fmt.Sprintf(" thematicmap ─ %s ─ drill %s ", m.bm.Name, m.tracker.Mode())
	}
	header := titleStyle.Render(title)
	header = lipgloss.NewStyle().Width(lo.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		sidebar = lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View())
	}

	var mapView string
	if m.showAttrs {
		// Render attributes table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, lo.contentW-6)
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	} else {
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	}

	// Inspect popup replaces the map column while open
	if m.inspectPopup != "" && !m.showAttrs {
		box := boxStyle.MaxWidth(min(48, lo.mapW)).Render(m.inspectPopup)
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Left, lipgloss.Center, box)
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer: status and hover on the first line, key help on the second
	status := dimStyle.Render(" " + truncate(m.status, max(10, lo.contentW/2)) + " ")
	coords := ""
	if m.hovering && m.hoverOnArea {
		coords = m.areaLabel(m.hoverArea)
		if it, ok := m.dataItemFor(m.hoverArea); ok {
			coords += fmt.Sprintf(" = %g", it.Value)
		}
	}
	if m.hovering && m.hoverHasGeo {
		coords += fmt.Sprintf("  lon=%.4f lat=%.4f", m.hoverLon, m.hoverLat)
	}
	coords = dimStyle.Render(coords + "  ")
	spacerW := max(0, lo.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	statusLine := lipgloss.JoinHorizontal(lipgloss.Bottom, status, right)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(
		lipgloss.JoinVertical(lipgloss.Left, statusLine, " "+m.help.View(m.keys)))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}
