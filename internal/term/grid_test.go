package term

import (
	"image/color"
	"testing"
	"time"

	"github.com/iburimskiy/nodefield/internal/field"
)

var teal = color.NRGBA{R: 0, G: 255, B: 200, A: 255}

func litCells(g *grid) int {
	n := 0
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if _, _, ok := g.cellAt(col, row); ok {
				n++
			}
		}
	}
	return n
}

func TestGridDiscLightsItsCell(t *testing.T) {
	g := newGrid(10, 5, 8, 16)

	// dot (1, 0) of cell (3, 2)
	g.Disc(3*8+6, 2*16+2, 1, teal)

	r, c, ok := g.cellAt(3, 2)
	if !ok {
		t.Fatal("cellAt(3, 2) not lit")
	}
	if r != rune(0x2800+1<<3) {
		t.Errorf("rune = %U, want %U", r, rune(0x2800+1<<3))
	}
	if c != teal {
		t.Errorf("colour = %v, want %v", c, teal)
	}
	if n := litCells(g); n != 1 {
		t.Errorf("lit cells = %d, want 1", n)
	}
}

func TestGridLineCrossesCells(t *testing.T) {
	g := newGrid(10, 2, 8, 16)

	g.Line(0, 4, 79, 4, 2, color.NRGBA{R: 0, G: 255, B: 200, A: 128})

	for col := 0; col < 10; col++ {
		if _, _, ok := g.cellAt(col, 0); !ok {
			t.Errorf("cell (%d, 0) not lit", col)
		}
		if _, _, ok := g.cellAt(col, 1); ok {
			t.Errorf("cell (%d, 1) lit, want dark", col)
		}
	}
}

func TestGridSkipsInvisibleLines(t *testing.T) {
	g := newGrid(4, 4, 8, 16)
	g.Line(0, 0, 30, 30, 0, teal)
	g.Line(0, 0, 30, 30, 1, color.NRGBA{})
	if n := litCells(g); n != 0 {
		t.Errorf("lit cells = %d, want 0", n)
	}
}

func TestGridGlowFadesOut(t *testing.T) {
	g := newGrid(20, 10, 8, 16)
	gr := field.NewGradient(
		field.GradientStop{Offset: 0, Color: color.NRGBA{R: 0, G: 255, B: 200, A: 204}},
		field.GradientStop{Offset: 1, Color: color.NRGBA{R: 0, G: 255, B: 200, A: 0}},
	)

	g.Glow(80, 80, 30, gr)

	if _, _, ok := g.cellAt(10, 5); !ok {
		t.Error("centre cell not lit")
	}
	if _, _, ok := g.cellAt(0, 0); ok {
		t.Error("far cell lit")
	}
	g.Glow(80, 80, 0, gr)
}

func TestGridClipsOutside(t *testing.T) {
	g := newGrid(4, 2, 8, 16)
	g.Disc(-50, -50, 5, teal)
	g.Disc(40, 40, 3, teal)
	g.Line(-100, -100, -10, -10, 2, teal)
	if n := litCells(g); n != 0 {
		t.Errorf("lit cells = %d, want 0", n)
	}
	if _, _, ok := g.cellAt(99, 99); ok {
		t.Error("cellAt out of range reported lit")
	}
}

func TestGridClearAndResize(t *testing.T) {
	g := newGrid(4, 4, 8, 16)
	g.Disc(10, 10, 3, teal)
	g.Clear()
	if n := litCells(g); n != 0 {
		t.Errorf("lit cells after Clear = %d, want 0", n)
	}

	g.resize(6, 3)
	if len(g.cells) != 18 {
		t.Errorf("len(cells) = %d, want 18", len(g.cells))
	}
	g.resize(-1, 3)
	if g.cols != 0 || len(g.cells) != 0 {
		t.Errorf("negative resize gave %dx%d", g.cols, g.rows)
	}
	g.Disc(10, 10, 3, teal)
}

func TestGridRendersField(t *testing.T) {
	g := newGrid(40, 12, 8, 16)
	p := field.DefaultParams()
	nodes := []field.Node{
		{X: 40, Y: 40, Radius: 3},
		{X: 140, Y: 40, Radius: 3},
	}
	edges := field.FindEdges(nil, nodes, p.LinkDistance)

	field.Render(g, nodes, edges, p, time.UnixMilli(1000), 1)

	// both end cells and the flow dot half way along
	for _, col := range []int{5, 11, 17} {
		if _, _, ok := g.cellAt(col, 2); !ok {
			t.Errorf("cell (%d, 2) not lit", col)
		}
	}
}
