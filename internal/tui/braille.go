package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type brailleBuf struct {
	w, h int        // in cells
	m    [][]uint8  // per-cell 8-bit mask
	col  [][]string // per-cell foreground, last writer wins
	text [][]rune   // per-cell glyph overriding the braille mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	col := make([][]string, h)
	text := make([][]rune, h)
	for i := range m {
		m[i] = make([]uint8, w)
		col[i] = make([]string, w)
		text[i] = make([]rune, w)
	}
	return &brailleBuf{w: w, h: h, m: m, col: col, text: text}
}

// brailleBits[ry][rx] is the dot of micro-pixel (rx, ry) within a cell.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, color string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[ry][rx]
	if color != "" {
		b.col[cy][cx] = color
	}
}

// bayer2x4 thresholds for ordered dithering, in eighths.
var bayer2x4 = [4][2]int{{0, 4}, {6, 2}, {1, 5}, {7, 3}}

// setPixelFaded sets the micro-pixel only if it survives dithering at the
// given opacity.
func (b *brailleBuf) setPixelFaded(mx, my int, color string, opacity float64) {
	if opacity < 1 && mx >= 0 && my >= 0 {
		if float64(bayer2x4[my%4][mx%2]) >= opacity*8 {
			return
		}
	}
	b.setPixel(mx, my, color)
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, color string, opacity float64) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixelFaded(x0, y0, color, opacity)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawCircleMicro draws a circle outline (midpoint algorithm).
func (b *brailleBuf) drawCircleMicro(cx, cy, r int, color string) {
	if r <= 0 {
		b.setPixel(cx, cy, color)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			b.setPixel(cx+p[0], cy+p[1], color)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// putText writes s starting at cell (cx, cy), clipped to the buffer.
func (b *brailleBuf) putText(cx, cy int, s, color string) {
	if cy < 0 || cy >= b.h {
		return
	}
	for i, r := range []rune(s) {
		x := cx + i
		if x < 0 || x >= b.w {
			continue
		}
		b.text[cy][x] = r
		b.col[cy][x] = color
	}
}

func (b *brailleBuf) glyph(x, y int) rune {
	if r := b.text[y][x]; r != 0 {
		return r
	}
	if mask := b.m[y][x]; mask != 0 {
		return rune(0x2800 + int(mask))
	}
	return ' '
}

// toLines renders the buffer, styling runs of equally coloured cells.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		runCol := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runCol)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			g := b.glyph(x, y)
			c := b.col[y][x]
			if g == ' ' {
				c = ""
			}
			if c != runCol {
				flush()
				runCol = c
			}
			run = append(run, g)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
