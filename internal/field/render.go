package field

import (
	"time"
)

// Glow falloff of a node, as alpha per gradient offset.
var glowStops = [...]struct{ offset, alpha float64 }{
	{0, 0.8},
	{0.5, 0.3},
	{1, 0},
}

const flowDotAlpha = 0.6

// Render draws one frame of nodes and edges onto c. edges must index into
// nodes. opacity scales every alpha and is 1 once the intro is over.
func Render(c Canvas, nodes []Node, edges []Edge, p Params, now time.Time, opacity float64) {
	c.Clear()

	glow := make(Gradient, len(glowStops))
	for i, s := range glowStops {
		glow[i] = GradientStop{Offset: s.offset, Color: withAlpha(p.Color, s.alpha*opacity)}
	}
	core := withAlpha(p.Color, opacity)

	for i := range nodes {
		n := &nodes[i]
		c.Glow(n.X, n.Y, n.Radius*3, glow)
		c.Disc(n.X, n.Y, n.Radius, core)
	}

	for _, e := range edges {
		a, b := &nodes[e.A], &nodes[e.B]
		alpha, width := EdgeStyle(e.Distance, p.LinkDistance)
		c.Line(a.X, a.Y, b.X, b.Y, width, withAlpha(p.Color, alpha*opacity))
	}

	t := FlowProgress(now, p.FlowPeriod)
	dot := withAlpha(p.Color, flowDotAlpha*opacity)
	for _, e := range edges {
		a, b := &nodes[e.A], &nodes[e.B]
		c.Disc(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t, p.FlowDotRadius, dot)
	}

	if pr, ok := c.(Presenter); ok {
		pr.Present()
	}
}
