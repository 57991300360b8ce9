package game

import (
	"errors"
	"image"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
)

// captureScreen copies the rendered frame out of the GPU.
func captureScreen(screen *ebiten.Image) *image.RGBA {
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)
	return img
}

// saveSnapshotDialog asks where to store img and writes it as PNG.
// Cancelling the dialog is not an error.
func saveSnapshotDialog(img image.Image) error {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename("nodefield.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	path = snapshotPath(path)
	if err := writePNG(path, img); err != nil {
		return err
	}
	log.Printf("saved snapshot %s", path)
	return nil
}

func snapshotPath(path string) string {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}
	return path
}
