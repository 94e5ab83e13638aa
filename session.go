package colorize

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/c0dexio/Colorize/generator"
	"github.com/c0dexio/Colorize/utils"
	"github.com/google/uuid"
)

// State is the screen a session is on.
type State int

const (
	// Selection waits for the user to pick a theme.
	Selection State = iota
	// Loading waits for the line art to be generated.
	Loading
	// Coloring lets the user draw over the line art.
	Coloring
)

func (s State) String() string {
	switch s {
	case Selection:
		return "selection"
	case Loading:
		return "loading"
	case Coloring:
		return "coloring"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result is the outcome of a line art generation, delivered on Results.
type Result struct {
	Theme generator.Theme
	Ref   string
	Err   error

	seq uint64
}

// Options configures a new session. Zero values get defaults.
type Options struct {
	Config    *Config
	Generator generator.Generator
	Loader    *Loader
	Sink      Sink
	Now       func() time.Time
}

// Session owns the drawing screen: the surface, the pen working on it, the
// resize observer watching its container and the line art behind it.
//
// A session is driven by a single goroutine. Line art generation runs on its
// own goroutine and hands its result back through Results; the owner passes
// it to Apply.
type Session struct {
	ID string

	cfg        *Config
	gen        generator.Generator
	loader     *Loader
	exporter   *Exporter
	compositor *Compositor
	now        func() time.Time

	state      State
	theme      generator.Theme
	background *Background

	surface   *Surface
	container Container
	observer  *ResizeObserver
	pen       *Pen

	results   chan Result
	cancelGen context.CancelFunc
	seq       uint64
}

// NewSession creates a session on the theme selection screen.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	gen := opts.Generator
	if gen == nil {
		gen = generator.Placeholder{}
	}
	loader := opts.Loader
	if loader == nil {
		loader = &Loader{Sketch: &cfg.Sketch}
	}
	sink := opts.Sink
	if sink == nil {
		sink = DirSink(cfg.OutputDir)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		ID:         uuid.NewString(),
		cfg:        cfg,
		gen:        gen,
		loader:     loader,
		exporter:   &Exporter{Sink: sink, Format: cfg.Format},
		compositor: NewCompositor(),
		now:        now,
		pen:        NewPen(cfg.PenConfig()),
		results:    make(chan Result, 1),
	}
	s.log().Info("session created")
	return s
}

func (s *Session) log() *slog.Logger {
	return Logger().With("session", s.ID)
}

// State returns the current screen.
func (s *Session) State() State { return s.state }

// Theme returns the selected theme, empty on the selection screen.
func (s *Session) Theme() generator.Theme { return s.theme }

// Background returns the line art of the session, nil if none is set.
func (s *Session) Background() *Background { return s.background }

// Surface returns the bound surface, nil when unbound.
func (s *Session) Surface() *Surface { return s.surface }

// Pen returns the pen of the session.
func (s *Session) Pen() *Pen { return s.pen }

// Config returns the session settings.
func (s *Session) Config() *Config { return s.cfg }

// BindSurface creates the drawing surface for the container, sized right
// away, and starts observing the container for layout changes. Resizes are
// applied on the frames requested from sched.
func (s *Session) BindSurface(c Container, sched Scheduler) error {
	if s.surface != nil {
		return ErrAlreadyBound
	}
	s.surface = NewSurface()
	s.container = c
	s.pen.Bind(s.surface, c)
	s.resize(c.Bounds(), c.DeviceScale())

	s.observer = NewResizeObserver(c, sched, s.resize)
	return nil
}

// NotifyResize tells the session the container layout may have changed.
func (s *Session) NotifyResize() {
	if s.observer != nil {
		s.observer.Notify()
	}
}

func (s *Session) resize(box Rect, scale float64) {
	if s.surface == nil {
		return
	}
	if s.cfg.Scale > 0 {
		scale = s.cfg.Scale
	}
	// The reallocation invalidates the coordinate space of the stroke.
	s.pen.Stop()
	if _, err := s.surface.Resize(box.W, box.H, scale); err != nil {
		s.log().Warn("resize ignored", "box", box, "scale", scale, "error", err)
	}
}

// HandlePointer forwards a pointer event to the pen. Events received while
// no surface is bound are dropped.
func (s *Session) HandlePointer(ev PointerEvent) {
	if s.surface == nil {
		return
	}
	s.pen.Handle(ev)
}

// SetActiveTool selects the tool of the next stroke.
func (s *Session) SetActiveTool(t ToolKind) {
	s.pen.SetTool(t)
}

// SetActiveColor selects the color of the next stroke.
func (s *Session) SetActiveColor(c color.NRGBA) {
	s.pen.SetColor(c)
}

// PickColor selects a palette color. Picking a color while the eraser is
// active switches back to the marker.
func (s *Session) PickColor(hex string) error {
	c, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	s.pen.SetColor(c)
	if s.pen.Config().Tool == Eraser {
		s.pen.SetTool(Marker)
	}
	return nil
}

// Clear wipes the strokes. It does nothing when no surface is bound.
func (s *Session) Clear() {
	if s.surface == nil {
		return
	}
	s.pen.Stop()
	s.surface.Clear()
	s.log().Debug("surface cleared")
}

// SetBackground uses ref as the line art and moves to the coloring screen.
func (s *Session) SetBackground(ref string) {
	s.cancelGeneration()
	s.replaceBackground(NewBackground(ref, s.loader))
	s.state = Coloring
}

func (s *Session) replaceBackground(b *Background) {
	if s.background != nil {
		s.background.Close()
	}
	s.background = b
	if b != nil {
		b.Preload()
	}
}

// SelectTheme starts generating the line art of theme. The outcome is sent
// on Results.
func (s *Session) SelectTheme(ctx context.Context, theme generator.Theme) {
	s.cancelGeneration()
	s.theme = theme
	s.state = Loading
	s.seq++

	ctx, cancel := context.WithCancel(ctx)
	s.cancelGen = cancel

	r := Result{Theme: theme, seq: s.seq}
	s.log().Info("generating line art", "theme", theme)

	go func() {
		start := time.Now()
		r.Ref, r.Err = s.gen.Generate(ctx, theme)
		s.log().Debug("generation finished", "theme", theme, "took", utils.FormatTime(time.Since(start)))
		select {
		case s.results <- r:
		case <-ctx.Done():
		}
	}()
}

// Results delivers the generation outcomes.
func (s *Session) Results() <-chan Result {
	return s.results
}

// Apply moves the session forward with a generation result: to the coloring
// screen on success, back to the theme selection on failure. Outdated
// results are dropped.
func (s *Session) Apply(r Result) error {
	if r.seq != s.seq || s.state != Loading {
		return nil
	}
	s.cancelGeneration()
	if r.Err != nil {
		s.state = Selection
		s.theme = ""
		s.log().Warn("line art generation failed", "theme", r.Theme, "error", r.Err)
		return fmt.Errorf("generating %s line art: %w", r.Theme, r.Err)
	}
	s.replaceBackground(NewBackground(r.Ref, s.loader))
	s.state = Coloring
	s.log().Info("line art ready", "theme", r.Theme)
	return nil
}

// Regenerate tears down the drawing surface and asks for a new line art of
// the same theme. The owner binds a fresh surface once the line art is ready.
func (s *Session) Regenerate(ctx context.Context) error {
	if s.theme == "" {
		return errors.New("no theme selected")
	}
	s.unbindSurface()
	s.replaceBackground(nil)
	s.SelectTheme(ctx, s.theme)
	return nil
}

// Back tears down the drawing screen and returns to the theme selection.
func (s *Session) Back() {
	s.cancelGeneration()
	s.seq++
	s.unbindSurface()
	s.replaceBackground(nil)
	s.theme = ""
	s.state = Selection
}

// unbindSurface stops observing the container and drops the surface with
// its strokes.
func (s *Session) unbindSurface() {
	if s.observer != nil {
		s.observer.Disconnect()
		s.observer = nil
	}
	s.pen.Bind(nil, nil)
	s.surface = nil
	s.container = nil
}

// Close releases the session.
func (s *Session) Close() {
	s.Back()
	s.log().Info("session closed")
}

func (s *Session) cancelGeneration() {
	if s.cancelGen != nil {
		s.cancelGen()
		s.cancelGen = nil
	}
}

// Preview composes the current strokes with the line art if it is already
// decoded. It returns nil when no surface is bound.
func (s *Session) Preview() *image.NRGBA {
	if s.surface == nil {
		return nil
	}
	var bg image.Image
	if s.background != nil {
		if img, ok := s.background.Ready(); ok {
			bg = img
		}
	}
	return s.compositor.Compose(s.surface.Image(), bg)
}

// Composite flattens the strokes and the line art. The strokes are captured
// first, then the line art is awaited for at most the export timeout.
func (s *Session) Composite(ctx context.Context) (*Composite, error) {
	if s.surface == nil {
		return nil, ErrNotBound
	}
	if s.background == nil {
		return nil, ErrNoBackground
	}
	strokes := s.surface.Snapshot()
	createdAt := s.now()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ExportTimeout)
	defer cancel()
	bg, err := s.background.Wait(ctx)
	if err != nil {
		return nil, err
	}

	return &Composite{
		Image:     s.compositor.Compose(strokes, bg),
		CreatedAt: createdAt,
	}, nil
}

// ExportComposite saves the flattened picture and returns its file name.
func (s *Session) ExportComposite(ctx context.Context) (string, error) {
	c, err := s.Composite(ctx)
	if err != nil {
		return "", err
	}
	return s.exporter.Export(c)
}

// ExportPDF saves the flattened picture on a printable page.
func (s *Session) ExportPDF(ctx context.Context) (string, error) {
	c, err := s.Composite(ctx)
	if err != nil {
		return "", err
	}
	return s.exporter.ExportPDF(c)
}
