// Package game hosts the node field in an ebiten window.
package game

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/nodefield/internal/ambient"
	"github.com/iburimskiy/nodefield/internal/config"
	"github.com/iburimskiy/nodefield/internal/field"
)

// window is the field container: the logical screen size from Layout.
type window struct {
	w, h int
}

func (w *window) Size() (int, int) { return w.w, w.h }

type Game struct {
	field  *field.Field
	win    *window
	canvas *screenCanvas
	hum    *ambient.Hum
	now    func() time.Time

	// pointer
	cursorX, cursorY int
	touchIDs         []ebiten.TouchID
	touching         bool

	// input edge detection
	prevKey map[ebiten.Key]bool

	// snapshot
	snapshotPending  bool
	snapshotInFlight bool
	snapshotDone     chan error
	saveSnapshot     func(image.Image) error

	// state
	debug   bool
	stopped bool
	lastErr error
}

type Option func(*Game)

// WithHum lets the link density drive an ambient drone.
func WithHum(h *ambient.Hum) Option {
	return func(g *Game) { g.hum = h }
}

// WithDebug prints TPS and node counts over the field.
func WithDebug(on bool) Option {
	return func(g *Game) { g.debug = on }
}

func NewGame(cfg *config.Config, opts ...Option) *Game {
	g := &Game{
		win:          &window{w: cfg.Window.Width, h: cfg.Window.Height},
		canvas:       &screenCanvas{bg: cfg.BackgroundColor()},
		now:          time.Now,
		cursorX:      -1,
		cursorY:      -1,
		prevKey:      map[ebiten.Key]bool{},
		snapshotDone: make(chan error, 1),
		saveSnapshot: saveSnapshotDialog,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.field, _ = field.Attach(g.win, cfg.Params(cfg.Window.TPS))
	return g
}

// Stop ends the loop at the next Update.
func (g *Game) Stop() { g.stopped = true }

func (g *Game) justPressed(k ebiten.Key) bool {
	pressed := ebiten.IsKeyPressed(k)
	jp := pressed && !g.prevKey[k]
	g.prevKey[k] = pressed
	return jp
}

func (g *Game) Update() error {
	if g.justPressed(ebiten.KeyEscape) || g.justPressed(ebiten.KeyQ) {
		g.Stop()
	}
	if g.stopped || g.field == nil {
		return ebiten.Termination
	}
	if g.justPressed(ebiten.KeyS) {
		g.requestSnapshot()
	}
	g.pollSnapshot()

	g.updatePointer()
	g.field.Step()

	if g.hum != nil {
		g.hum.SetLevel(ambient.LevelFor(g.field.Density()))
	}
	return nil
}

// updatePointer mirrors browser pointer events: a touch or a cursor move
// places the pointer, a touch release or the cursor leaving removes it.
func (g *Game) updatePointer() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(g.touchIDs[0])
		g.touching = true
		g.field.SetPointer(float64(x), float64(y))
		return
	}
	if g.touching {
		g.touching = false
		g.field.ClearPointer()
	}

	x, y := ebiten.CursorPosition()
	moved := x != g.cursorX || y != g.cursorY
	g.cursorX, g.cursorY = x, y

	if !ebiten.IsFocused() || !inside(x, y, g.win.w, g.win.h) {
		g.field.ClearPointer()
		return
	}
	if moved || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.field.SetPointer(float64(x), float64(y))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.field == nil {
		return
	}
	g.canvas.dst = screen
	g.field.Render(g.canvas, g.now())

	if g.snapshotPending {
		g.startSnapshot(captureScreen(screen))
	}

	if g.debug {
		w, h := g.field.Size()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  %vx%v  nodes %d  links %.1f%%",
			ebiten.ActualTPS(), w, h, len(g.field.Nodes()), g.field.Density()*100), 12, 12)
	}
	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr.Error(), 12, 28)
	}
}

// requestSnapshot captures the next drawn frame unless a save dialog is
// still open.
func (g *Game) requestSnapshot() {
	if !g.snapshotInFlight {
		g.snapshotPending = true
	}
}

func (g *Game) startSnapshot(img image.Image) {
	g.snapshotPending = false
	if g.snapshotInFlight {
		return
	}
	g.snapshotInFlight = true
	save := g.saveSnapshot
	go func() { g.snapshotDone <- save(img) }()
}

// pollSnapshot collects the result of a finished save and reports whether
// there was one.
func (g *Game) pollSnapshot() bool {
	select {
	case err := <-g.snapshotDone:
		g.snapshotInFlight = false
		g.lastErr = err
		return true
	default:
		return false
	}
}

// Layout tracks the window size. Every change regenerates the field.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.field != nil && (outsideWidth != g.win.w || outsideHeight != g.win.h) {
		g.win.w, g.win.h = outsideWidth, outsideHeight
		g.field.Resize()
	}
	return max(outsideWidth, 1), max(outsideHeight, 1)
}
