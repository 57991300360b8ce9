package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/nodefield/internal/field"
)

const glowSegments = 24

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// screenCanvas draws field frames onto the ebiten screen.
type screenCanvas struct {
	dst *ebiten.Image
	bg  color.NRGBA

	vertices []ebiten.Vertex
	indices  []uint16
}

func (c *screenCanvas) Clear() {
	c.dst.Fill(c.bg)
}

func (c *screenCanvas) Disc(x, y, radius float64, col color.NRGBA) {
	if radius <= 0 || col.A == 0 {
		return
	}
	vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(radius), col, true)
}

func (c *screenCanvas) Line(x1, y1, x2, y2, width float64, col color.NRGBA) {
	if width <= 0 || col.A == 0 {
		return
	}
	vector.StrokeLine(c.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), col, true)
}

func (c *screenCanvas) Glow(x, y, radius float64, g field.Gradient) {
	if radius <= 0 || len(g) == 0 {
		return
	}
	c.vertices, c.indices = appendGlow(c.vertices[:0], c.indices[:0], x, y, radius, g)
	c.dst.DrawTriangles(c.vertices, c.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
	})
}

// appendGlow builds a triangle mesh for a radial gradient: a centre vertex
// plus one ring of vertices per stop, colours interpolated by the GPU.
func appendGlow(vs []ebiten.Vertex, is []uint16, x, y, radius float64, g field.Gradient) ([]ebiten.Vertex, []uint16) {
	vs = append(vs, glowVertex(x, y, g.At(0)))

	prevRing := -1
	for _, stop := range g {
		off := clamp01(stop.Offset)
		if off <= 0 {
			continue
		}
		ring := len(vs)
		col := g.At(off)
		for s := 0; s < glowSegments; s++ {
			a := 2 * math.Pi * float64(s) / glowSegments
			vs = append(vs, glowVertex(x+math.Cos(a)*radius*off, y+math.Sin(a)*radius*off, col))
		}

		for s := 0; s < glowSegments; s++ {
			next := (s + 1) % glowSegments
			if prevRing < 0 {
				is = append(is, 0, uint16(ring+s), uint16(ring+next))
				continue
			}
			is = append(is,
				uint16(prevRing+s), uint16(ring+s), uint16(ring+next),
				uint16(prevRing+s), uint16(ring+next), uint16(prevRing+next),
			)
		}
		prevRing = ring
	}
	return vs, is
}

func glowVertex(x, y float64, c color.NRGBA) ebiten.Vertex {
	a := float32(c.A) / 255
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255 * a,
		ColorG: float32(c.G) / 255 * a,
		ColorB: float32(c.B) / 255 * a,
		ColorA: a,
	}
}
