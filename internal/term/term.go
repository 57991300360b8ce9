// Package term runs the node field inside a terminal, drawn with braille cells.
package term

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/nodefield/internal/ambient"
	"github.com/iburimskiy/nodefield/internal/config"
	"github.com/iburimskiy/nodefield/internal/field"
)

// screenCanvas is the terminal surface: the field container and its canvas.
type screenCanvas struct {
	*grid
	screen tcell.Screen
	bg     tcell.Style
}

func newScreenCanvas(s tcell.Screen, cellW, cellH int, bg color.NRGBA) *screenCanvas {
	cols, rows := s.Size()
	return &screenCanvas{
		grid:   newGrid(cols, rows, float64(cellW), float64(cellH)),
		screen: s,
		bg:     tcell.StyleDefault.Background(rgb(bg)),
	}
}

// Size reports the terminal in surface units.
func (c *screenCanvas) Size() (int, int) {
	cols, rows := c.screen.Size()
	return cols * int(c.cellW), rows * int(c.cellH)
}

func (c *screenCanvas) Clear() {
	c.resize(c.screen.Size())
	c.grid.Clear()
}

func (c *screenCanvas) Present() {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			r, fg, ok := c.cellAt(col, row)
			if !ok {
				c.screen.SetContent(col, row, ' ', nil, c.bg)
				continue
			}
			c.screen.SetContent(col, row, r, nil, c.bg.Foreground(rgb(fg)))
		}
	}
	c.screen.Show()
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Run takes over the terminal until Esc, q or Ctrl-C, or until ctx ends.
// hum may be nil.
func Run(ctx context.Context, cfg *config.Config, hum *ambient.Hum) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	canvas := newScreenCanvas(screen, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight, cfg.BackgroundColor())
	f, ok := field.Attach(canvas, cfg.Params(cfg.Terminal.FPS))
	if !ok {
		return nil
	}

	var opts []field.DriverOption
	if hum != nil {
		opts = append(opts, field.WithFrameHook(func(f *field.Field) {
			hum.SetLevel(ambient.LevelFor(f.Density()))
		}))
	}
	d := field.NewDriver(f, canvas, opts...)

	go pump(screen, d, canvas)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Terminal.FPS))
	defer ticker.Stop()

	err = d.Run(ctx, ticker.C)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pump forwards terminal events to the driver until the screen is finalized.
func pump(screen tcell.Screen, d *field.Driver, canvas *screenCanvas) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if isQuit(ev) {
				d.Stop()
				return
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			d.Send(field.PointerMove{
				X: (float64(x) + 0.5) * canvas.cellW,
				Y: (float64(y) + 0.5) * canvas.cellH,
			})
		case *tcell.EventFocus:
			if !ev.Focused {
				d.Send(field.PointerLeave{})
			}
		case *tcell.EventResize:
			screen.Sync()
			d.Send(field.HostResize{})
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
