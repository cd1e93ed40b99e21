package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
)

// Map colours, as hex strings so they can key the per-cell colour buffer.
const (
	graticuleCol = "#243141"
	selectedCol  = "#FFA500"
	hoverCol     = "#FDE68A"
	markerCol    = "#F59E0B"
	labelCol     = "#E6E6E6"
)

// layerCols shade areas without data, top layer first.
var layerCols = []string{"#4B5563", "#6B7280", "#9CA3AF", "#D1D5DB"}

func layerColor(layer int) string {
	if layer >= len(layerCols) {
		return layerCols[len(layerCols)-1]
	}
	return layerCols[layer]
}
