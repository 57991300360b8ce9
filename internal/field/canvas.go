package field

import (
	"cmp"
	"image/color"
	"slices"
)

// Canvas receives the drawing calls of one frame. Coordinates are surface
// units, the same space nodes live in.
type Canvas interface {
	Clear()
	// Glow fills a disc of the given radius with g, offset 0 at the centre
	// and 1 at the rim.
	Glow(x, y, radius float64, g Gradient)
	Disc(x, y, radius float64, c color.NRGBA)
	Line(x1, y1, x2, y2, width float64, c color.NRGBA)
}

// Presenter is implemented by canvases that buffer a frame and need a flush
// once it is complete.
type Presenter interface {
	Present()
}

type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient stops are kept sorted by Offset.
type Gradient []GradientStop

func NewGradient(stops ...GradientStop) Gradient {
	g := Gradient(stops)
	slices.SortStableFunc(g, func(a, b GradientStop) int { return cmp.Compare(a.Offset, b.Offset) })
	return g
}

// At interpolates the gradient at t in [0, 1].
func (g Gradient) At(t float64) color.NRGBA {
	if len(g) == 0 {
		return color.NRGBA{}
	}
	if t <= g[0].Offset {
		return g[0].Color
	}
	for i := 1; i < len(g); i++ {
		if t > g[i].Offset {
			continue
		}
		a, b := g[i-1], g[i]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
	}
	return g[len(g)-1].Color
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(clamp01(alpha)*255 + 0.5)
	return c
}
