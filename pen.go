package colorize

import (
	"image"
	"image/color"

	"github.com/c0dexio/Colorize/imop"
)

// PenConfig is the tool and color the next stroke will be drawn with.
type PenConfig struct {
	Tool  ToolKind
	Color color.NRGBA
}

// DefaultPenConfig returns the marker loaded with the first palette color.
func DefaultPenConfig() PenConfig {
	c, _ := ParseHexColor(DefaultColor)
	return PenConfig{Tool: DefaultTool, Color: c}
}

// stroke is the state of the stroke being drawn. The coverage of all its
// segments is accumulated in mask and re-composed over base, the content of
// the surface when the stroke started, so overlapping segments of a
// translucent tool do not build up.
type stroke struct {
	tool       ToolConfig
	color      color.NRGBA
	op         *imop.Composite
	last       Point
	mask       *image.Alpha
	base       *image.NRGBA
	generation uint64
}

// Pen turns pointer events into strokes on a surface.
// It is either idle or drawing; moves received while idle are ignored.
type Pen struct {
	surface   *Surface
	container Container
	cfg       PenConfig
	stroke    *stroke
}

// NewPen returns an idle, unbound pen.
func NewPen(cfg PenConfig) *Pen {
	return &Pen{cfg: cfg}
}

// Bind attaches the pen to a surface and the container it is laid out in.
// Passing nil values unbinds it. Any active stroke is stopped.
func (p *Pen) Bind(s *Surface, c Container) {
	p.Stop()
	p.surface, p.container = s, c
}

// SetConfig replaces the tool and color used from the next stroke on.
func (p *Pen) SetConfig(cfg PenConfig) { p.cfg = cfg }

// Config returns the current configuration.
func (p *Pen) Config() PenConfig { return p.cfg }

// SetTool selects the tool of the next stroke.
func (p *Pen) SetTool(t ToolKind) { p.cfg.Tool = t }

// SetColor selects the color of the next stroke.
func (p *Pen) SetColor(c color.NRGBA) { p.cfg.Color = c }

// Drawing reports whether a stroke is in progress.
func (p *Pen) Drawing() bool { return p.stroke != nil }

// Handle dispatches a pointer event.
func (p *Pen) Handle(ev PointerEvent) {
	switch ev.Kind {
	case Press:
		if pt, ok := ev.ClientPoint(); ok {
			p.Start(pt)
		}
	case Move:
		if pt, ok := ev.ClientPoint(); ok {
			p.Draw(pt)
		}
	case Release, Leave, Cancel:
		p.Stop()
	}
}

// Start begins a stroke at the client position pt. Pressing again while
// drawing restarts the stroke there. Nothing happens on an unbound pen.
func (p *Pen) Start(pt Point) {
	p.stroke = nil
	if p.surface == nil || p.container == nil || p.surface.Empty() {
		return
	}

	tool := p.cfg.Tool.Config()
	op := imop.InitOp()
	src := p.cfg.Color
	if tool.Mode == Erase {
		op.Set(imop.DstOut)
		src = color.NRGBA{A: 0xff}
	}

	buf := p.surface.Image()
	p.stroke = &stroke{
		tool:       tool,
		color:      src,
		op:         op,
		last:       p.local(pt),
		mask:       image.NewAlpha(buf.Bounds()),
		base:       p.surface.Snapshot(),
		generation: p.surface.Generation(),
	}
	Logger().Debug("stroke started", "tool", p.cfg.Tool, "at", p.stroke.last)
}

// Draw extends the active stroke to the client position pt and renders the
// new segment right away.
func (p *Pen) Draw(pt Point) {
	st := p.stroke
	if st == nil {
		return
	}
	if p.surface == nil || p.surface.Generation() != st.generation {
		// The buffer was reallocated or wiped under the stroke.
		p.stroke = nil
		return
	}

	cur := p.local(pt)
	dirty := rasterSegment(st.mask, st.last, cur, st.tool.Width*p.surface.Scale())
	st.last = cur
	if dirty.Empty() {
		return
	}
	buf := p.surface.Image()
	st.op.DrawMask(buf, dirty, st.base, st.color, st.mask, st.tool.Opacity)
}

// Stop ends the active stroke. Calling it while idle does nothing.
func (p *Pen) Stop() {
	if p.stroke == nil {
		return
	}
	p.stroke = nil
	Logger().Debug("stroke stopped")
}

// local converts a client position into device pixels of the surface.
// The container box is read on every call since the layout may move.
func (p *Pen) local(pt Point) Point {
	return p.surface.ToPixel(p.container.Bounds().Local(pt))
}
