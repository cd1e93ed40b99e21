package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"thematicmap/internal/datalayer"
	"thematicmap/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		switch ext {
		case ".geojson", ".json":
			items = append(items, fileItem{title: name, desc: "geojson", path: filepath.Join(m.cwd, name)})
		case ".csv", ".kml":
			items = append(items, fileItem{title: name, desc: "data", path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads GeoJSON polygons as catalog areas and GeoJSON points,
// CSV or KML as the data layer.
func (m *Model) loadPath(p string) {
	m.selPath = p
	ext := strings.ToLower(filepath.Ext(p))
	switch ext {
	case ".geojson", ".json":
		fs, err := geom.LoadFeatures(p)
		if err != nil {
			m.loadFailed(p, err)
			return
		}
		target := m.cfg.Basemap
		if m.bm != nil {
			target = m.bm.Name
		}
		n, err := m.catalog.AddFeatures(fs, target)
		if err != nil {
			m.loadFailed(p, err)
			return
		}
		items := datalayer.FromFeatures(fs)
		if len(items) > 0 {
			m.dataItems = items
		}
		if n > 0 || m.bm == nil {
			m.setBasemap(target)
		} else {
			m.bindData()
		}
		m.status = fmt.Sprintf("loaded: %s  areas: %d  markers: %d", filepath.Base(p), n, len(items))
	case ".csv", ".kml":
		items, err := datalayer.Load(p)
		if err != nil {
			m.loadFailed(p, err)
			return
		}
		if len(items) == 0 {
			m.status = "no items in " + filepath.Base(p)
			return
		}
		m.dataItems = items
		if m.bm != nil {
			m.bindData()
			placed := len(m.data.Markers())
			m.status = fmt.Sprintf("loaded: %s  items: %d  layer: %s  markers placed: %d",
				filepath.Base(p), len(items), m.bm.LayerName(m.data.Layer), placed)
		}
	default:
		m.status = "unsupported file: " + ext
		return
	}
	m.log.Info("file_loaded", "path", p)
	// If attributes are currently shown, refresh them for the new data
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

func (m *Model) loadFailed(p string, err error) {
	m.status = "load error: " + err.Error()
	m.log.Error("load_error", "path", p, "err", err)
}
