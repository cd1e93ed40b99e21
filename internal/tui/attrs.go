package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromCurrent rebuilds the table from the data layer, or from
// the visible areas when no data is loaded.
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current map"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := min(maxColW, max(len(c)+2, 8))
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(tcols))
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		// Normalize each row to match the number of table columns
		for len(row) < len(tcols) {
			row = append(row, "")
		}
		trows = append(trows, table.Row(row[:len(tcols)]))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes returns (columns, rows) for the attributes table.
func (m *Model) buildAttributes() ([]string, [][]string) {
	if m.data != nil && m.data.Len() > 0 {
		cols := []string{"id", "kind", "location", "value", "label", "selected"}
		var rows [][]string
		for _, it := range m.data.Items() {
			sel := ""
			if m.data.IsSelected(it.ID) {
				sel = "*"
			}
			rows = append(rows, []string{it.ID, it.Kind.String(), it.Location, fmt.Sprintf("%g", it.Value), it.Label, sel})
		}
		return cols, rows
	}
	if m.bm == nil {
		return nil, nil
	}
	cols := []string{"layer", "id", "label", "parent", "children", "selected"}
	var rows [][]string
	for _, k := range m.visibleAreas() {
		parent, _ := m.tracker.Parent(k.layer, k.id)
		sel := ""
		if m.tracker.IsSelected(k.layer, k.id) {
			sel = "*"
		}
		rows = append(rows, []string{
			m.bm.LayerName(k.layer), k.id, m.areaLabel(k), parent,
			fmt.Sprintf("%d", len(m.bm.Children(k.layer, k.id))), sel,
		})
	}
	return cols, rows
}
