package imop

import (
	"fmt"
	"image"

	"github.com/c0dexio/Colorize/utils"
)

// Separable blend modes.
const (
	Normal   = "normal"
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activate one of the supported blend mode.
func (o *Blend) Set(opType string) error {
	switch opType {
	case Normal, Darken, Lighten, Multiply, Screen, Overlay:
		o.OpType = opType
		return nil
	}
	return fmt.Errorf("unsupported blend mode: %q", opType)
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// Mix returns the blended value of a single channel, where cb is the backdrop
// and cs the source channel.
func (o *Blend) Mix(cb, cs float64) float64 {
	switch o.OpType {
	case Darken:
		return utils.Min(cb, cs)
	case Lighten:
		return utils.Max(cb, cs)
	case Multiply:
		return cb * cs
	case Screen:
		return cb + cs - cb*cs
	case Overlay:
		// Overlay is hard-light with the layers swapped.
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	}
	return cs
}

// Apply blends the source color with the backdrop and composes the result
// with source-over.
func (o *Blend) Apply(src, dst Color) Color {
	as, ab := src.A, dst.A

	mixed := Color{
		R: (1-ab)*src.R + ab*o.Mix(dst.R, src.R),
		G: (1-ab)*src.G + ab*o.Mix(dst.G, src.G),
		B: (1-ab)*src.B + ab*o.Mix(dst.B, src.B),
		A: as,
	}

	ao := as + ab*(1-as)
	if ao <= 0 {
		return Color{}
	}
	return Color{
		R: (as*mixed.R + ab*(1-as)*dst.R) / ao,
		G: (as*mixed.G + ab*(1-as)*dst.G) / ao,
		B: (as*mixed.B + ab*(1-as)*dst.B) / ao,
		A: ao,
	}
}

// Draw blends src over dst in place. Both images are aligned on their
// top-left corner; only the overlapping area is touched.
func (o *Blend) Draw(dst, src *image.NRGBA) {
	sb, db := src.Bounds(), dst.Bounds()
	w := utils.Min(sb.Dx(), db.Dx())
	h := utils.Min(sb.Dy(), db.Dy())

	for y := 0; y < h; y++ {
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := dst.PixOffset(db.Min.X, db.Min.Y+y)
		for x := 0; x < w; x, si, di = x+1, si+4, di+4 {
			if src.Pix[si+3] == 0 {
				continue
			}
			s := Color{
				R: float64(src.Pix[si+0]) / 255,
				G: float64(src.Pix[si+1]) / 255,
				B: float64(src.Pix[si+2]) / 255,
				A: float64(src.Pix[si+3]) / 255,
			}
			d := Color{
				R: float64(dst.Pix[di+0]) / 255,
				G: float64(dst.Pix[di+1]) / 255,
				B: float64(dst.Pix[di+2]) / 255,
				A: float64(dst.Pix[di+3]) / 255,
			}
			c := o.Apply(s, d).NRGBA()
			dst.Pix[di+0] = c.R
			dst.Pix[di+1] = c.G
			dst.Pix[di+2] = c.B
			dst.Pix[di+3] = c.A
		}
	}
}
