package colorize

// Container is the layout element a surface is bound to.
type Container interface {
	// Bounds returns the current layout box in client coordinates.
	Bounds() Rect
	// DeviceScale returns the ratio between device pixels and layout units.
	DeviceScale() float64
}

// Scheduler defers work to the next paint opportunity of the host.
type Scheduler interface {
	RequestFrame(fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(fn func())

// RequestFrame calls f(fn).
func (f SchedulerFunc) RequestFrame(fn func()) { f(fn) }

// Immediate runs the requested work right away. Headless renderers use it.
var Immediate Scheduler = SchedulerFunc(func(fn func()) { fn() })

// ResizeObserver watches a container and calls back with its new box once
// per frame, however many layout changes were notified in between.
type ResizeObserver struct {
	container Container
	sched     Scheduler
	onResize  func(box Rect, scale float64)

	pending      bool
	disconnected bool
}

// NewResizeObserver creates an observer for the container.
func NewResizeObserver(c Container, s Scheduler, onResize func(Rect, float64)) *ResizeObserver {
	return &ResizeObserver{
		container: c,
		sched:     s,
		onResize:  onResize,
	}
}

// Notify signals that the layout of the container may have changed.
func (o *ResizeObserver) Notify() {
	if o.disconnected || o.pending {
		return
	}
	o.pending = true
	o.sched.RequestFrame(o.flush)
}

func (o *ResizeObserver) flush() {
	o.pending = false
	if o.disconnected {
		return
	}
	o.onResize(o.container.Bounds(), o.container.DeviceScale())
}

// Disconnect stops observing. A flush already scheduled does nothing.
func (o *ResizeObserver) Disconnect() {
	o.disconnected = true
}

// StaticContainer is a container with a fixed layout box, used for headless
// rendering.
type StaticContainer struct {
	Box   Rect
	Scale float64
}

// Bounds implements Container.
func (c *StaticContainer) Bounds() Rect { return c.Box }

// DeviceScale implements Container.
func (c *StaticContainer) DeviceScale() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}
