// Package gui runs a coloring session in a Gio window.
//
// The window shows the theme tiles first, a loading bar while the line art
// is generated, then the canvas with the tool bar at the bottom. Keyboard
// shortcuts:
//
//	1-8      pick a theme (selection screen)
//	1-4      pencil, marker, brush, eraser
//	← →      previous or next palette color
//	C        clear the strokes
//	N        new line art of the same theme
//	S        save the picture
//	P        save the picture as PDF
//	Esc      back to the themes, or quit from the themes
package gui

import (
	"context"
	"fmt"
	"image"
	"strings"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	colorize "github.com/c0dexio/Colorize"
	"github.com/c0dexio/Colorize/generator"
	"github.com/c0dexio/Colorize/utils"
)

// C is the layout context of a frame.
type C = layout.Context

const (
	maxScreenX = 1366
	maxScreenY = 768
)

const appName = "Colorize"

var keyFilters = func() []event.Filter {
	names := []key.Name{
		"1", "2", "3", "4", "5", "6", "7", "8",
		"C", "N", "S", "P",
		key.NameLeftArrow, key.NameRightArrow,
		key.NameEscape, key.NameDeleteBackward,
	}
	filters := make([]event.Filter, len(names))
	for i, n := range names {
		filters[i] = key.Filter{Name: n}
	}
	return filters
}()

// Gui drives a session from the events of a Gio window. All the session
// calls happen on the goroutine running Run.
type Gui struct {
	sess   *colorize.Session
	cfg    *colorize.Config
	ctx    context.Context
	win    *app.Window
	themes []generator.Theme

	frames  frameQueue
	canvas  canvas
	palette int
	title   string
	status  string

	// Tags of the pointer areas.
	canvasTag, barTag, themeTag *int
}

// NewGUI prepares the window of sess.
func NewGUI(sess *colorize.Session, cfg *colorize.Config) *Gui {
	if cfg == nil {
		cfg = sess.Config()
	}
	palette := colorize.PaletteIndex(cfg.Color)
	if palette < 0 {
		palette = 0
	}
	return &Gui{
		sess:      sess,
		cfg:       cfg,
		ctx:       context.Background(),
		themes:    generator.Themes(),
		palette:   palette,
		canvasTag: new(int),
		barTag:    new(int),
		themeTag:  new(int),
	}
}

// windowSize returns the initial window size, shrunk proportionally when it
// exceeds the predefined screen size.
func windowSize(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return maxScreenX, maxScreenY
	}
	if w > maxScreenX || h > maxScreenY {
		r := utils.Min(float64(maxScreenX)/float64(w), float64(maxScreenY)/float64(h))
		w = int(float64(w) * r)
		h = int(float64(h) * r)
	}
	return w, h
}

func scaleAffine(k float32) f32.Affine2D {
	return f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(k, k))
}

// Run opens the window and processes its events until it is closed. It must
// be called on its own goroutine while app.Main runs on the main one.
func (g *Gui) Run(ctx context.Context) error {
	g.ctx = ctx
	w := new(app.Window)
	g.win = w
	g.frames.invalidate = w.Invalidate
	defer g.sess.Close()

	width, height := windowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	g.title = g.windowTitle()
	w.Option(
		app.Title(g.title),
		app.Size(unit.Dp(width), unit.Dp(height)),
	)

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			if quit := g.update(gtx); quit {
				w.Perform(system.ActionClose)
			}
			g.layout(gtx)
			if t := g.windowTitle(); t != g.title {
				g.title = t
				w.Option(app.Title(t))
			}
			e.Frame(gtx.Ops)
		}
	}
}

// update consumes the pending events and reports whether the user asked
// to quit.
func (g *Gui) update(gtx C) bool {
	g.frames.flush()

	select {
	case r := <-g.sess.Results():
		if err := g.sess.Apply(r); err != nil {
			g.status = "la génération a échoué"
			colorize.Logger().Error("line art generation failed", "error", err)
		}
	default:
	}

	for {
		ev, ok := gtx.Event(keyFilters...)
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok && e.State == key.Press {
			if g.onKey(e.Name) {
				return true
			}
		}
	}

	size := gtx.Constraints.Max
	pxPerDp := gtx.Metric.PxPerDp

	switch g.sess.State() {
	case colorize.Selection:
		tiles := themeGrid(size, pxPerDp, len(g.themes))
		for {
			ev, ok := gtx.Event(pointer.Filter{Target: g.themeTag, Kinds: pointer.Press})
			if !ok {
				break
			}
			if e, ok := ev.(pointer.Event); ok {
				if i := hit(tiles, e.Position.Round()); i >= 0 {
					g.selectTheme(g.themes[i])
				}
			}
		}

	case colorize.Coloring:
		tb := barLayout(size, pxPerDp, len(colorize.Tools()), len(colorize.Palette))
		g.syncCanvas(tb.canvas.Size(), gtx.Metric)

		for {
			ev, ok := gtx.Event(pointer.Filter{
				Target: g.canvasTag,
				Kinds:  pointer.Press | pointer.Drag | pointer.Move | pointer.Release | pointer.Leave | pointer.Cancel,
			})
			if !ok {
				break
			}
			if e, ok := ev.(pointer.Event); ok {
				if pe, ok := pointerEvent(e, pxPerDp); ok {
					g.sess.HandlePointer(pe)
				}
			}
		}
		for {
			ev, ok := gtx.Event(pointer.Filter{Target: g.barTag, Kinds: pointer.Press})
			if !ok {
				break
			}
			if e, ok := ev.(pointer.Event); ok {
				g.onBar(tb, e.Position.Round())
			}
		}
	}
	return false
}

// syncCanvas binds the surface on the first coloring frame and reports
// later layout changes to the resize observer.
func (g *Gui) syncCanvas(size image.Point, m unit.Metric) {
	changed := g.canvas.update(size.X, size.Y, m)
	if g.sess.Surface() == nil {
		if err := g.sess.BindSurface(&g.canvas, &g.frames); err != nil {
			colorize.Logger().Error("binding surface", "error", err)
		}
		return
	}
	if changed {
		g.sess.NotifyResize()
	}
}

func (g *Gui) layout(gtx C) {
	size := gtx.Constraints.Max
	pxPerDp := gtx.Metric.PxPerDp

	switch g.sess.State() {
	case colorize.Selection:
		tiles := themeGrid(size, pxPerDp, len(g.themes))
		drawThemes(gtx.Ops, size, tiles, g.themes)
		area := clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops)
		event.Op(gtx.Ops, g.themeTag)
		area.Pop()

	case colorize.Loading:
		drawLoading(gtx.Ops, size, gtx.Now)
		g.win.Invalidate()

	case colorize.Coloring:
		tb := barLayout(size, pxPerDp, len(colorize.Tools()), len(colorize.Palette))

		var k float32 = 1
		if s := g.sess.Surface(); s != nil && s.Scale() > 0 {
			k = pxPerDp / float32(s.Scale())
		}
		drawPreview(gtx.Ops, tb.canvas, g.sess.Preview(), k)
		area := clip.Rect(tb.canvas).Push(gtx.Ops)
		event.Op(gtx.Ops, g.canvasTag)
		area.Pop()

		drawToolbar(gtx.Ops, size, tb, g.sess.Pen().Config(), pxPerDp)
		area = clip.Rect(image.Rect(0, tb.canvas.Max.Y, size.X, size.Y)).Push(gtx.Ops)
		event.Op(gtx.Ops, g.barTag)
		area.Pop()

		// Keep polling until the line art shows up.
		if bg := g.sess.Background(); bg != nil {
			if _, ok := bg.Ready(); !ok {
				g.win.Invalidate()
			}
		}
	}
}

func (g *Gui) onBar(tb toolbar, p image.Point) {
	if i := hit(tb.tools, p); i >= 0 {
		g.sess.SetActiveTool(colorize.ToolKind(i))
		return
	}
	if i := hit(tb.swatches, p); i >= 0 {
		g.pickColor(i)
	}
}

// onKey applies a keyboard shortcut and reports whether the user asked to
// quit.
func (g *Gui) onKey(name key.Name) bool {
	switch g.sess.State() {
	case colorize.Selection:
		if name == key.NameEscape {
			return true
		}
		if i := digit(name); i >= 1 && i <= len(g.themes) {
			g.selectTheme(g.themes[i-1])
		}

	case colorize.Loading:
		if name == key.NameEscape {
			g.sess.Back()
		}

	case colorize.Coloring:
		switch name {
		case key.NameEscape, key.NameDeleteBackward:
			g.sess.Back()
			g.status = ""
		case key.NameLeftArrow:
			g.pickColor(g.palette - 1)
		case key.NameRightArrow:
			g.pickColor(g.palette + 1)
		case "C":
			g.sess.Clear()
		case "N":
			if err := g.sess.Regenerate(g.ctx); err != nil {
				colorize.Logger().Warn("regenerate", "error", err)
			}
		case "S":
			g.export(g.sess.ExportComposite)
		case "P":
			g.export(g.sess.ExportPDF)
		default:
			if i := digit(name); i >= 1 && i <= len(colorize.Tools()) {
				g.sess.SetActiveTool(colorize.ToolKind(i - 1))
			}
		}
	}
	return false
}

func digit(name key.Name) int {
	if len(name) != 1 || name[0] < '0' || name[0] > '9' {
		return -1
	}
	return int(name[0] - '0')
}

func (g *Gui) selectTheme(t generator.Theme) {
	g.status = ""
	g.sess.SelectTheme(g.ctx, t)
}

// pickColor selects the palette color at index i, wrapping around.
func (g *Gui) pickColor(i int) {
	n := len(colorize.Palette)
	g.palette = ((i % n) + n) % n
	if err := g.sess.PickColor(colorize.Palette[g.palette]); err != nil {
		colorize.Logger().Error("picking color", "error", err)
	}
}

func (g *Gui) export(fn func(context.Context) (string, error)) {
	name, err := fn(g.ctx)
	if err != nil {
		g.status = "échec de l'enregistrement"
		colorize.Logger().Error("export failed", "error", err)
		return
	}
	g.status = "enregistré : " + name
}

func (g *Gui) windowTitle() string {
	var parts []string
	switch g.sess.State() {
	case colorize.Selection:
		labels := make([]string, len(g.themes))
		for i, t := range g.themes {
			labels[i] = fmt.Sprintf("%d %s", i+1, t.Label())
		}
		parts = append(parts, "Choisis un thème", strings.Join(labels, ", "))
	case colorize.Loading:
		parts = append(parts, fmt.Sprintf("Création du coloriage %s...", g.sess.Theme().Label()))
	case colorize.Coloring:
		if t := g.sess.Theme(); t != "" {
			parts = append(parts, t.Label())
		}
		parts = append(parts, g.sess.Pen().Config().Tool.Config().Label)
	}
	if g.status != "" {
		parts = append(parts, g.status)
	}
	return appName + " · " + strings.Join(parts, " · ")
}
