// Package ambient plays a quiet drone whose loudness follows how densely the
// node field is linked.
package ambient

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const SampleRate = beep.SampleRate(44100)

// Hum is an endless beep.Streamer: a root tone plus a fifth above it. The
// gain glides towards the level set from the render loop so changes do not click.
type Hum struct {
	sr     beep.SampleRate
	freq   float64
	volume float64

	mu    sync.RWMutex
	level float64

	// touched only by the audio goroutine
	gain  float64
	phase float64
	glide float64
}

func NewHum(sr beep.SampleRate, freq, volume float64) *Hum {
	return &Hum{
		sr:     sr,
		freq:   freq,
		volume: volume,
		// reach ~63% of a new level in 250ms
		glide: 1 - math.Exp(-1/(0.25*float64(sr))),
	}
}

// SetLevel sets the target loudness in [0, 1].
func (h *Hum) SetLevel(level float64) {
	level = clamp01(level)
	h.mu.Lock()
	h.level = level
	h.mu.Unlock()
}

func (h *Hum) Level() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.level
}

func (h *Hum) Stream(samples [][2]float64) (int, bool) {
	target := h.Level()
	step := 2 * math.Pi * h.freq / float64(h.sr)
	for i := range samples {
		h.gain += (target - h.gain) * h.glide
		v := (math.Sin(h.phase)*0.7 + math.Sin(h.phase*1.5)*0.3) * h.gain * h.volume
		samples[i][0] = v
		samples[i][1] = v
		h.phase += step
		// a full period of both partials is 4π
		if h.phase > 4*math.Pi {
			h.phase -= 4 * math.Pi
		}
	}
	return len(samples), true
}

func (h *Hum) Err() error { return nil }

// LevelFor maps the share of linked node pairs to a drone level. A calm
// field links well under a quarter of its pairs.
func LevelFor(density float64) float64 {
	return clamp01(density * 4)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Start initializes the speaker and plays h until Close.
func Start(h *Hum) error {
	if err := speaker.Init(h.sr, h.sr.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(h)
	return nil
}

func Close() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	speaker.Close()
}
