package gui

import (
	"sync"

	"gioui.org/io/pointer"
	"gioui.org/unit"
	colorize "github.com/c0dexio/Colorize"
)

// canvas is the drawing area of the window, expressed in device independent
// pixels. It is refreshed on every frame from the window metrics.
type canvas struct {
	box   colorize.Rect
	scale float64
}

func (c *canvas) Bounds() colorize.Rect { return c.box }

func (c *canvas) DeviceScale() float64 {
	if c.scale <= 0 {
		return 1
	}
	return c.scale
}

// update stores the new layout and reports whether it changed.
func (c *canvas) update(wpx, hpx int, m unit.Metric) bool {
	scale := float64(m.PxPerDp)
	if scale <= 0 {
		scale = 1
	}
	box := colorize.Rect{W: float64(wpx) / scale, H: float64(hpx) / scale}
	if box == c.box && scale == c.scale {
		return false
	}
	c.box, c.scale = box, scale
	return true
}

// frameQueue runs the callbacks requested by the resize observer at the
// beginning of the next frame.
type frameQueue struct {
	mu         sync.Mutex
	fns        []func()
	invalidate func()
}

func (q *frameQueue) RequestFrame(fn func()) {
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
	if q.invalidate != nil {
		q.invalidate()
	}
}

// flush runs the pending callbacks. Callbacks requested while flushing wait
// for the next frame.
func (q *frameQueue) flush() {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// pointerEvent converts a Gio pointer event, whose position is in pixels
// relative to the canvas, to a session event in device independent pixels.
func pointerEvent(e pointer.Event, pxPerDp float32) (colorize.PointerEvent, bool) {
	if pxPerDp <= 0 {
		pxPerDp = 1
	}
	var kind colorize.PointerKind
	switch e.Kind {
	case pointer.Press:
		kind = colorize.Press
	case pointer.Move, pointer.Drag:
		kind = colorize.Move
	case pointer.Release:
		kind = colorize.Release
	case pointer.Leave:
		kind = colorize.Leave
	case pointer.Cancel:
		kind = colorize.Cancel
	default:
		return colorize.PointerEvent{}, false
	}

	pt := colorize.Point{
		X: float64(e.Position.X / pxPerDp),
		Y: float64(e.Position.Y / pxPerDp),
	}
	ev := colorize.PointerEvent{Kind: kind, Position: pt}
	if e.Source == pointer.Touch {
		ev.Source = colorize.Touch
		ev.Position = colorize.Point{}
		ev.Touches = []colorize.Point{pt}
		ev.ChangedTouches = []colorize.Point{pt}
		if kind == colorize.Release || kind == colorize.Cancel || kind == colorize.Leave {
			ev.Touches = nil
		}
	}
	return ev, true
}
