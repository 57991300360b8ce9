package term

import (
	"image/color"
	"math"

	"github.com/iburimskiy/nodefield/internal/field"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Dots fainter than this keep their colour contribution but stay unlit.
const litAlpha = 0.05

type cell struct {
	bits    uint8
	r, g, b float64
	a       float64
}

// grid rasterizes field drawing calls into braille cells. Each cell covers
// cellW x cellH surface units split into a 2x4 dot matrix.
type grid struct {
	cols, rows   int
	cellW, cellH float64
	cells        []cell
}

var _ field.Canvas = (*grid)(nil)

func newGrid(cols, rows int, cellW, cellH float64) *grid {
	g := &grid{cellW: cellW, cellH: cellH}
	g.resize(cols, rows)
	return g
}

func (g *grid) resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == g.cols && rows == g.rows && g.cells != nil {
		return
	}
	g.cols, g.rows = cols, rows
	g.cells = make([]cell, cols*rows)
}

func (g *grid) dot() (w, h float64) { return g.cellW / 2, g.cellH / 4 }

func (g *grid) Clear() {
	clear(g.cells)
}

func (g *grid) plot(x, y float64, c color.NRGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	dw, dh := g.dot()
	dx := int(math.Floor(x / dw))
	dy := int(math.Floor(y / dh))
	if dx < 0 || dy < 0 || dx >= g.cols*2 || dy >= g.rows*4 {
		return
	}

	cl := &g.cells[(dy/4)*g.cols+dx/2]
	if alpha >= litAlpha {
		cl.bits |= 1 << brailleBits[dx%2][dy%4]
	}
	alpha = math.Min(alpha, 1)
	cl.r += (float64(c.R) - cl.r) * alpha
	cl.g += (float64(c.G) - cl.g) * alpha
	cl.b += (float64(c.B) - cl.b) * alpha
	cl.a = math.Max(cl.a, alpha)
}

// eachDot calls fn with the centre of every dot whose centre lies within
// radius of (x, y).
func (g *grid) eachDot(x, y, radius float64, fn func(px, py, dist float64)) {
	dw, dh := g.dot()
	x0 := int(math.Floor((x - radius) / dw))
	x1 := int(math.Floor((x + radius) / dw))
	y0 := int(math.Floor((y - radius) / dh))
	y1 := int(math.Floor((y + radius) / dh))
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			px := (float64(dx) + 0.5) * dw
			py := (float64(dy) + 0.5) * dh
			if d := math.Hypot(px-x, py-y); d <= radius {
				fn(px, py, d)
			}
		}
	}
}

func (g *grid) Glow(x, y, radius float64, gr field.Gradient) {
	if radius <= 0 {
		return
	}
	g.eachDot(x, y, radius, func(px, py, d float64) {
		c := gr.At(d / radius)
		g.plot(px, py, c, float64(c.A)/255)
	})
}

func (g *grid) Disc(x, y, radius float64, c color.NRGBA) {
	alpha := float64(c.A) / 255
	// discs smaller than a dot still light the dot they sit on
	g.plot(x, y, c, alpha)
	g.eachDot(x, y, radius, func(px, py, _ float64) {
		g.plot(px, py, c, alpha)
	})
}

func (g *grid) Line(x1, y1, x2, y2, width float64, c color.NRGBA) {
	if width <= 0 || c.A == 0 {
		return
	}
	alpha := float64(c.A) / 255 * math.Min(width, 1)
	dw, dh := g.dot()
	step := math.Min(dw, dh) / 2
	steps := int(math.Ceil(math.Hypot(x2-x1, y2-y1) / step))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		g.plot(x1+(x2-x1)*t, y1+(y2-y1)*t, c, alpha)
	}
}

// cellAt returns the braille rune and colour of a cell. ok is false for
// cells with no lit dots.
func (g *grid) cellAt(col, row int) (r rune, c color.NRGBA, ok bool) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return ' ', color.NRGBA{}, false
	}
	cl := g.cells[row*g.cols+col]
	if cl.bits == 0 {
		return ' ', color.NRGBA{}, false
	}
	// faint cells are lifted so single thin lines stay readable
	k := 0.35 + 0.65*cl.a
	return rune(0x2800 + int(cl.bits)), color.NRGBA{
		R: uint8(cl.r * k),
		G: uint8(cl.g * k),
		B: uint8(cl.b * k),
		A: 255,
	}, true
}
