// Package field simulates and draws a drifting network of pulsing nodes that
// link up when close and flee the pointer.
package field

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Container is the host element the surface is sized to.
type Container interface {
	Size() (width, height int)
}

// Field owns the surface bound to a container and the nodes living on it.
// It is not safe for concurrent use; hosts call it from one goroutine.
type Field struct {
	params    Params
	container Container
	rng       *rand.Rand

	width, height float64
	nodes         []Node
	edges         []Edge
	pointer       Pointer

	intro      harmonica.Spring
	opacity    float64
	opacityVel float64
}

// Attach creates a field sized to c. A nil container leaves the animation
// inactive: Attach returns nil, false and does nothing else.
func Attach(c Container, p Params) (*Field, bool) {
	if c == nil {
		return nil, false
	}

	seed := p.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	fps := p.FPS
	if fps <= 0 {
		fps = 60
	}

	f := &Field{
		params:    p,
		container: c,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		pointer:   Pointer{Radius: p.InfluenceRadius},
		intro:     harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		opacity:   1,
	}
	if p.IntroFade {
		f.opacity = 0
	}
	f.Resize()
	return f, true
}

// Resize reads the container size and regenerates every node. Previous node
// state is discarded.
func (f *Field) Resize() {
	w, h := f.container.Size()
	w, h = max(w, 0), max(h, 0)
	f.width, f.height = float64(w), float64(h)

	n := NodeCount(w, h, f.params)
	f.nodes = make([]Node, n)
	for i := range f.nodes {
		f.nodes[i] = newNode(f.rng, f.width, f.height, f.params)
	}
	f.edges = f.edges[:0]
}

// Step advances every node by one frame.
func (f *Field) Step() {
	for i := range f.nodes {
		StepNode(&f.nodes[i], &f.pointer, f.width, f.height, f.params)
	}

	if f.params.IntroFade && f.opacity < 1 {
		f.opacity, f.opacityVel = f.intro.Update(f.opacity, f.opacityVel, 1)
		f.opacity = clamp01(f.opacity)
	}
}

// Render draws the current state. Edges are recomputed from current positions.
func (f *Field) Render(c Canvas, now time.Time) {
	f.edges = FindEdges(f.edges[:0], f.nodes, f.params.LinkDistance)
	Render(c, f.nodes, f.edges, f.params, now, f.opacity)
}

func (f *Field) SetPointer(x, y float64) {
	f.pointer.X, f.pointer.Y = x, y
	f.pointer.Present = true
}

func (f *Field) ClearPointer() {
	f.pointer.Present = false
}

func (f *Field) Pointer() Pointer { return f.pointer }

// Nodes returns the live node slice. Callers must not keep it across Resize.
func (f *Field) Nodes() []Node { return f.nodes }

func (f *Field) Size() (width, height float64) { return f.width, f.height }

func (f *Field) Params() Params { return f.params }

func (f *Field) Opacity() float64 { return f.opacity }

// Density is the share of node pairs linked in the last rendered frame.
func (f *Field) Density() float64 {
	n := len(f.nodes)
	if n < 2 {
		return 0
	}
	return float64(len(f.edges)) / float64(n*(n-1)/2)
}
