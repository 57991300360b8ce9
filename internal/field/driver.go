package field

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

type State int32

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

var ErrAlreadyStarted = errors.New("field: driver already started")

// Input is a host event applied to the field between frames.
type Input interface {
	apply(f *Field)
}

// PointerMove places the pointer in surface coordinates.
type PointerMove struct{ X, Y float64 }

// PointerLeave removes the pointer.
type PointerLeave struct{}

// HostResize makes the field re-read its container size.
type HostResize struct{}

func (in PointerMove) apply(f *Field) { f.SetPointer(in.X, in.Y) }
func (PointerLeave) apply(f *Field)   { f.ClearPointer() }
func (HostResize) apply(f *Field)     { f.Resize() }

type DriverOption func(*Driver)

// WithClock replaces time.Now as the source of pulse dot timing.
func WithClock(now func() time.Time) DriverOption {
	return func(d *Driver) { d.now = now }
}

// WithFrameHook runs fn after each rendered frame, on the driver goroutine.
func WithFrameHook(fn func(*Field)) DriverOption {
	return func(d *Driver) { d.hook = fn }
}

// Driver runs the frame loop of a field: on every tick it steps all nodes and
// renders. Inputs and ticks are handled on the Run goroutine, one at a time.
type Driver struct {
	field  *Field
	canvas Canvas
	now    func() time.Time
	hook   func(*Field)

	inputs chan Input
	stop   chan struct{}
	done   chan struct{}

	stopOnce sync.Once
	doneOnce sync.Once
	state    atomic.Int32
	frames   atomic.Uint64
}

func NewDriver(f *Field, c Canvas, opts ...DriverOption) *Driver {
	d := &Driver{
		field:  f,
		canvas: c,
		now:    time.Now,
		inputs: make(chan Input, 64),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run drives frames from ticks until Stop is called or ctx ends. It returns
// nil after Stop and ctx.Err() on cancellation.
func (d *Driver) Run(ctx context.Context, ticks <-chan time.Time) error {
	if !d.state.CompareAndSwap(int32(Idle), int32(Running)) {
		if d.State() == Stopped {
			d.closeDone()
			return nil
		}
		return ErrAlreadyStarted
	}
	defer d.closeDone()
	defer d.state.Store(int32(Stopped))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.stop:
			return nil
		case in := <-d.inputs:
			in.apply(d.field)
		case <-ticks:
			select {
			case <-d.stop:
				return nil
			default:
			}
			d.Frame()
		}
	}
}

// Frame steps and renders once.
func (d *Driver) Frame() {
	d.field.Step()
	d.field.Render(d.canvas, d.now())
	d.frames.Add(1)
	if d.hook != nil {
		d.hook(d.field)
	}
}

// Send queues an input for the loop. It reports false once the driver is stopped.
func (d *Driver) Send(in Input) bool {
	select {
	case <-d.stop:
		return false
	case <-d.done:
		return false
	default:
	}
	select {
	case d.inputs <- in:
		return true
	case <-d.stop:
		return false
	case <-d.done:
		return false
	}
}

// Stop cancels the pending tick. It does not wait; use Done for that.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
	if d.state.CompareAndSwap(int32(Idle), int32(Stopped)) {
		// no loop will run to close it
		d.closeDone()
	}
}

func (d *Driver) closeDone() {
	d.doneOnce.Do(func() { close(d.done) })
}

// Done is closed when Run returns, or by Stop if Run never started.
func (d *Driver) Done() <-chan struct{} { return d.done }

func (d *Driver) State() State { return State(d.state.Load()) }

func (d *Driver) Frames() uint64 { return d.frames.Load() }
