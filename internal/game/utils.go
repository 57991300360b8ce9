package game

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// inside reports whether (x, y) lies on a w x h surface.
func inside(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
