package field

import (
	"math"
	"math/rand/v2"
)

// Node is one point of the field. Radius is the drawn radius and oscillates
// around BaseRadius with Phase.
type Node struct {
	X, Y       float64
	VX, VY     float64
	BaseRadius float64
	Radius     float64
	Phase      float64
}

// Pointer is the repelling cursor. Present is false while the pointer is
// outside the surface.
type Pointer struct {
	X, Y    float64
	Present bool
	Radius  float64
}

// NodeCount returns how many nodes a width x height surface holds.
func NodeCount(width, height int, p Params) int {
	if width <= 0 || height <= 0 || p.AreaPerNode <= 0 {
		return 0
	}
	n := int(math.Floor(float64(width) * float64(height) / p.AreaPerNode))
	return min(n, p.MaxNodes)
}

func newNode(rng *rand.Rand, width, height float64, p Params) Node {
	r := rng.Float64()*p.RadiusSpread + p.MinRadius
	return Node{
		X:          rng.Float64() * width,
		Y:          rng.Float64() * height,
		VX:         (rng.Float64() - 0.5) * p.Speed,
		VY:         (rng.Float64() - 0.5) * p.Speed,
		BaseRadius: r,
		Radius:     r,
		Phase:      rng.Float64() * 2 * math.Pi,
	}
}

// StepNode advances n by one frame: pointer push, drift, bounce, clamp, pulse.
func StepNode(n *Node, ptr *Pointer, width, height float64, p Params) {
	if ptr != nil && ptr.Present {
		dx := ptr.X - n.X
		dy := ptr.Y - n.Y
		dist := math.Hypot(dx, dy)
		// dist == 0 has no direction to push along
		if dist > 0 && dist < ptr.Radius {
			force := (ptr.Radius - dist) / ptr.Radius
			n.X -= dx / dist * force * p.PushStrength
			n.Y -= dy / dist * force * p.PushStrength
		}
	}

	n.X += n.VX
	n.Y += n.VY

	if n.X < 0 || n.X > width {
		n.VX = -n.VX
	}
	if n.Y < 0 || n.Y > height {
		n.VY = -n.VY
	}

	n.X = clamp(n.X, 0, width)
	n.Y = clamp(n.Y, 0, height)

	n.Phase += p.PulseStep
	n.Radius = n.BaseRadius + math.Sin(n.Phase)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
