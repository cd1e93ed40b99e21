package tui

import (
	"math"

	"thematicmap/internal/geom"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// pad grows a box by a fraction of its larger side on every edge.
func pad(b geom.BBox, frac float64) geom.BBox {
	if b.Empty() {
		return b
	}
	d := math.Max(b.Width(), b.Height()) * frac
	return geom.NewBBox(b.MinX-d, b.MinY-d, b.MaxX+d, b.MaxY+d)
}

// truncate cuts s to n runes, marking the cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
