package field

import (
	"image/color"
	"time"
)

// Params tunes the node field. DefaultParams matches the hero animation of the site.
type Params struct {
	MaxNodes    int
	AreaPerNode float64

	// Pairs closer than LinkDistance are connected.
	LinkDistance    float64
	InfluenceRadius float64
	PushStrength    float64

	// Speed is the spread of the initial velocity on each axis.
	Speed        float64
	MinRadius    float64
	RadiusSpread float64
	PulseStep    float64

	FlowPeriod    time.Duration
	FlowDotRadius float64

	Color color.NRGBA

	// IntroFade springs the global opacity from 0 to 1 after start.
	IntroFade bool
	FPS       int

	// Seed for node placement, 0 picks one from the clock.
	Seed uint64
}

func DefaultParams() Params {
	return Params{
		MaxNodes:        80,
		AreaPerNode:     15000,
		LinkDistance:    150,
		InfluenceRadius: 150,
		PushStrength:    3,
		Speed:           0.8,
		MinRadius:       2,
		RadiusSpread:    3,
		PulseStep:       0.05,
		FlowPeriod:      2 * time.Second,
		FlowDotRadius:   2,
		Color:           color.NRGBA{R: 0, G: 255, B: 200, A: 255},
		FPS:             60,
	}
}
