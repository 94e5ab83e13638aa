package colorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// frameQueue runs the requested work when the test says a frame happens.
type frameQueue struct {
	pending []func()
}

func (q *frameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

func (q *frameQueue) frame() {
	fns := q.pending
	q.pending = nil
	for _, fn := range fns {
		fn()
	}
}

func TestResizeObserver_CoalescesPerFrame(t *testing.T) {
	box := &StaticContainer{Box: Rect{W: 100, H: 100}}
	q := &frameQueue{}

	var got []Rect
	o := NewResizeObserver(box, q, func(r Rect, scale float64) {
		got = append(got, r)
		assert.Equal(t, 1.0, scale)
	})

	o.Notify()
	box.Box.W = 150
	o.Notify()
	box.Box.W = 200
	o.Notify()
	assert.Len(t, q.pending, 1)
	assert.Empty(t, got)

	q.frame()
	// The flush reads the box at frame time.
	assert.Equal(t, []Rect{{W: 200, H: 100}}, got)

	o.Notify()
	q.frame()
	assert.Len(t, got, 2)
}

func TestResizeObserver_Disconnect(t *testing.T) {
	box := &StaticContainer{Box: Rect{W: 100, H: 100}}
	q := &frameQueue{}

	calls := 0
	o := NewResizeObserver(box, q, func(Rect, float64) { calls++ })

	o.Notify()
	o.Disconnect()
	q.frame()
	o.Notify()
	q.frame()

	assert.Equal(t, 0, calls)
	assert.Empty(t, q.pending)
}

func TestSession_ResizeThroughObserver(t *testing.T) {
	s := NewSession(Options{Sink: DirSink(t.TempDir())})
	box := &StaticContainer{Box: Rect{W: 300, H: 300}, Scale: 2}
	q := &frameQueue{}

	assert.NoError(t, s.BindSurface(box, q))
	pw, ph := s.Surface().PixelSize()
	assert.Equal(t, 600, pw)
	assert.Equal(t, 600, ph)

	box.Box = Rect{W: 600, H: 200}
	s.NotifyResize()
	pw, _ = s.Surface().PixelSize()
	assert.Equal(t, 600, pw, "resize is deferred to the next frame")

	q.frame()
	pw, ph = s.Surface().PixelSize()
	assert.Equal(t, 1200, pw)
	assert.Equal(t, 400, ph)

	s.Back()
	box.Box = Rect{W: 10, H: 10}
	s.NotifyResize()
	q.frame()
	assert.Nil(t, s.Surface())
}
