package gui

import (
	"image"
	"image/color"
	"time"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	colorize "github.com/c0dexio/Colorize"
	"github.com/c0dexio/Colorize/generator"
	"github.com/c0dexio/Colorize/utils"
)

const (
	barHeightDp = 56
	gapDp       = 6
	themeCols   = 4
)

var (
	bkgColor      = color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	barColor      = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	outlineColor  = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	loadingColor  = color.NRGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff}
	eraserColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	disabledColor = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
)

var themeColors = map[generator.Theme]color.NRGBA{
	generator.Animals:    {R: 0x8b, G: 0x45, B: 0x13, A: 0xff},
	generator.Princesses: {R: 0xff, G: 0x69, B: 0xb4, A: 0xff},
	generator.Buildings:  {R: 0x70, G: 0x80, B: 0x90, A: 0xff},
	generator.Vehicles:   {R: 0xdc, G: 0x14, B: 0x3c, A: 0xff},
	generator.Dinosaurs:  {R: 0x22, G: 0x8b, B: 0x22, A: 0xff},
	generator.Space:      {R: 0x19, G: 0x19, B: 0x70, A: 0xff},
	generator.Robots:     {R: 0xa9, G: 0xa9, B: 0xa9, A: 0xff},
	generator.Ocean:      {R: 0x00, G: 0x7f, B: 0xff, A: 0xff},
}

// toolbar holds the pixel rectangles of the coloring screen.
type toolbar struct {
	canvas   image.Rectangle
	tools    []image.Rectangle
	swatches []image.Rectangle
}

// barLayout splits a window of size pixels into the canvas and the bottom
// bar, which holds the tool buttons followed by the palette swatches.
func barLayout(size image.Point, pxPerDp float32, ntools, ncolors int) toolbar {
	barH := utils.Min(int(barHeightDp*pxPerDp+0.5), size.Y)
	gap := int(gapDp*pxPerDp + 0.5)

	tb := toolbar{canvas: image.Rect(0, 0, size.X, size.Y-barH)}
	n := ntools + ncolors
	if n == 0 {
		return tb
	}
	// One extra gap separates the tools from the palette.
	item := utils.Min(barH-2*gap, (size.X-(n+2)*gap)/n)
	if item <= 0 {
		return tb
	}
	y := size.Y - barH + (barH-item)/2
	x := gap
	for i := 0; i < n; i++ {
		if i == ntools {
			x += gap
		}
		r := image.Rect(x, y, x+item, y+item)
		if i < ntools {
			tb.tools = append(tb.tools, r)
		} else {
			tb.swatches = append(tb.swatches, r)
		}
		x += item + gap
	}
	return tb
}

// themeGrid lays out n theme tiles on rows of themeCols.
func themeGrid(size image.Point, pxPerDp float32, n int) []image.Rectangle {
	if n == 0 {
		return nil
	}
	gap := int(gapDp*pxPerDp+0.5) * 4
	cols := utils.Min(n, themeCols)
	rows := (n + cols - 1) / cols

	w := (size.X - (cols+1)*gap) / cols
	h := (size.Y - (rows+1)*gap) / rows
	if w <= 0 || h <= 0 {
		return nil
	}
	tiles := make([]image.Rectangle, n)
	for i := range tiles {
		x := gap + (i%cols)*(w+gap)
		y := gap + (i/cols)*(h+gap)
		tiles[i] = image.Rect(x, y, x+w, y+h)
	}
	return tiles
}

// hit returns the index of the rectangle containing p, -1 if none does.
func hit(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

func fillRect(ops *op.Ops, r image.Rectangle, c color.NRGBA) {
	paint.FillShape(ops, c, clip.Rect(r).Op())
}

// outlineRect paints a frame of width w around r.
func outlineRect(ops *op.Ops, r image.Rectangle, w int, c color.NRGBA) {
	fillRect(ops, image.Rect(r.Min.X-w, r.Min.Y-w, r.Max.X+w, r.Min.Y), c)
	fillRect(ops, image.Rect(r.Min.X-w, r.Max.Y, r.Max.X+w, r.Max.Y+w), c)
	fillRect(ops, image.Rect(r.Min.X-w, r.Min.Y, r.Min.X, r.Max.Y), c)
	fillRect(ops, image.Rect(r.Max.X, r.Min.Y, r.Max.X+w, r.Max.Y), c)
}

// drawThemes paints the theme selection screen.
func drawThemes(ops *op.Ops, size image.Point, tiles []image.Rectangle, themes []generator.Theme) {
	fillRect(ops, image.Rectangle{Max: size}, bkgColor)
	for i, r := range tiles {
		fillRect(ops, r, themeColors[themes[i]])
	}
}

// drawLoading paints a bar sweeping across the window.
func drawLoading(ops *op.Ops, size image.Point, now time.Time) {
	fillRect(ops, image.Rectangle{Max: size}, bkgColor)

	const period = 1500 * time.Millisecond
	w := size.X / 4
	t := float64(now.UnixNano()%int64(period)) / float64(period)
	x := int(t*float64(size.X+w)) - w
	y := size.Y / 2
	h := utils.Max(size.Y/40, 4)
	fillRect(ops, image.Rect(x, y-h/2, x+w, y+h/2), loadingColor)
}

// drawPreview paints the composed picture in the canvas, scaled from
// surface pixels to window pixels.
func drawPreview(ops *op.Ops, area image.Rectangle, img *image.NRGBA, k float32) {
	defer clip.Rect(area).Push(ops).Pop()
	fillRect(ops, area, eraserColor)
	if img == nil {
		return
	}
	if k > 0 && k != 1 {
		defer op.Affine(scaleAffine(k)).Push(ops).Pop()
	}
	paint.NewImageOp(img).Add(ops)
	paint.PaintOp{}.Add(ops)
}

// drawToolbar paints the tool buttons and the palette, outlining the active
// tool and color.
func drawToolbar(ops *op.Ops, size image.Point, tb toolbar, pen colorize.PenConfig, pxPerDp float32) {
	fillRect(ops, image.Rect(0, tb.canvas.Max.Y, size.X, size.Y), barColor)
	border := utils.Max(int(2*pxPerDp), 1)

	for i, r := range tb.tools {
		kind := colorize.ToolKind(i)
		cfg := kind.Config()
		if kind == pen.Tool {
			outlineRect(ops, r, border, outlineColor)
		}
		fillRect(ops, r, disabledColor)

		// The dot grows with the stroke width of the tool.
		d := utils.Clamp(int(cfg.Width*float64(pxPerDp)), border*2, r.Dx())
		c := r.Min.Add(image.Pt((r.Dx()-d)/2, (r.Dy()-d)/2))
		dot := image.Rectangle{Min: c, Max: c.Add(image.Pt(d, d))}
		col := pen.Color
		if cfg.Mode == colorize.Erase {
			col = eraserColor
		} else {
			col.A = uint8(float64(col.A) * cfg.Opacity)
		}
		paint.FillShape(ops, col, clip.Ellipse(dot).Op(ops))
	}

	active := pen.Color
	for i, r := range tb.swatches {
		c, err := colorize.ParseHexColor(colorize.Palette[i])
		if err != nil {
			continue
		}
		if c == active && pen.Tool != colorize.Eraser {
			outlineRect(ops, r, border, outlineColor)
		}
		fillRect(ops, r, c)
	}
}
