package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pan       key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	DrillDown key.Binding
	DrillUp   key.Binding
	Reset     key.Binding
	ZoomSel   key.Binding
	Isolate   key.Binding
	Cycle     key.Binding
	DrillMode key.Binding
	Basemap   key.Binding
	Files     key.Binding
	Attrs     key.Binding
	Inspect   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pan:       key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("↑↓←→", "pan")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		DrillDown: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drill down")),
		DrillUp:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "drill up")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		ZoomSel:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom to selection")),
		Isolate:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "isolate")),
		Cycle:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next area")),
		DrillMode: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "drill mode")),
		Basemap:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "basemap")),
		Files:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "files")),
		Attrs:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attrs")),
		Inspect:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Help:      key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.DrillDown, k.DrillUp, k.Reset, k.Cycle, k.Basemap, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pan, k.ZoomIn, k.ZoomOut, k.ZoomSel},
		{k.DrillDown, k.DrillUp, k.Reset, k.DrillMode},
		{k.Cycle, k.Isolate, k.Inspect, k.Attrs},
		{k.Basemap, k.Files, k.Help, k.Quit},
	}
}
