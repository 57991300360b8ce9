package field

import (
	"math"
	"time"
)

// Edge connects nodes A and B (A < B) for the current frame only.
type Edge struct {
	A, B     int
	Distance float64
}

// FindEdges appends every unordered pair closer than threshold to dst.
func FindEdges(dst []Edge, nodes []Node, threshold float64) []Edge {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			d := math.Hypot(nodes[i].X-nodes[j].X, nodes[i].Y-nodes[j].Y)
			if d < threshold {
				dst = append(dst, Edge{A: i, B: j, Distance: d})
			}
		}
	}
	return dst
}

// EdgeStyle returns line opacity and width. Both fall linearly to zero at threshold.
func EdgeStyle(distance, threshold float64) (opacity, width float64) {
	if threshold <= 0 {
		return 0, 0
	}
	s := clamp01(1 - distance/threshold)
	return s * 0.5, s * 2
}

// FlowProgress is the position in [0, 1) of every pulse dot along its edge.
// All edges share it, so pulses travel in sync.
func FlowProgress(now time.Time, period time.Duration) float64 {
	ms := period.Milliseconds()
	if ms <= 0 {
		return 0
	}
	r := now.UnixMilli() % ms
	if r < 0 {
		r += ms
	}
	return float64(r) / float64(ms)
}
