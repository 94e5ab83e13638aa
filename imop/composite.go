// Package imop implements the Porter-Duff composition operations and the
// separable blend modes used for mixing a graphic element with its backdrop.
// The image/draw core package only ships source-over-destination and source,
// which is not enough for erasing (destination-out) or for coloring line art
// (multiply), so the missing operations live here.
//
// All the images handled by this package are non premultiplied *image.NRGBA.
package imop

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/c0dexio/Colorize/utils"
)

// Porter-Duff composition operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Color is a non premultiplied color with its channels normalized to [0, 1].
type Color struct {
	R, G, B, A float64
}

// NewColor converts an 8 bit non premultiplied color.
func NewColor(c color.NRGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// NRGBA converts the color back to its 8 bit representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(utils.Clamp(v, 0, 1) * 255))
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp initializes a new composition operation, SrcOver being the default one.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set changes the active composition operation.
func (op *Composite) Set(cop string) error {
	for _, o := range op.ops {
		if o == cop {
			op.current = cop
			return nil
		}
	}
	return fmt.Errorf("unsupported composite operation: %q", cop)
}

// Get returns the active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// Apply composes the source color over the backdrop color.
func (op *Composite) Apply(src, dst Color) Color {
	as, ab := src.A, dst.A

	// Fs and Fd are the Porter-Duff fractions of source and backdrop.
	var fs, fd float64
	switch op.current {
	case Clear:
		fs, fd = 0, 0
	case Copy:
		fs, fd = 1, 0
	case Dst:
		fs, fd = 0, 1
	case SrcOver:
		fs, fd = 1, 1-as
	case DstOver:
		fs, fd = 1-ab, 1
	case SrcIn:
		fs, fd = ab, 0
	case DstIn:
		fs, fd = 0, as
	case SrcOut:
		fs, fd = 1-ab, 0
	case DstOut:
		fs, fd = 0, 1-as
	case SrcAtop:
		fs, fd = ab, 1-as
	case DstAtop:
		fs, fd = 1-ab, as
	case Xor:
		fs, fd = 1-ab, 1-as
	}

	ao := as*fs + ab*fd
	if ao <= 0 {
		return Color{}
	}
	return Color{
		R: (as*fs*src.R + ab*fd*dst.R) / ao,
		G: (as*fs*src.G + ab*fd*dst.G) / ao,
		B: (as*fs*src.B + ab*fd*dst.B) / ao,
		A: ao,
	}
}

// DrawMask composes a solid source color into dst over the rectangle r.
// The source alpha of every pixel is scaled by the mask coverage and by
// opacity, and the result is composed with the matching pixel of backdrop.
// Pixels not covered by the mask keep the backdrop value.
// backdrop and dst may be the same image.
func (op *Composite) DrawMask(
	dst *image.NRGBA,
	r image.Rectangle,
	backdrop *image.NRGBA,
	src color.NRGBA,
	mask *image.Alpha,
	opacity float64,
) {
	r = r.Intersect(dst.Bounds()).Intersect(backdrop.Bounds()).Intersect(mask.Bounds())
	if r.Empty() {
		return
	}

	sc := NewColor(src)
	alpha := sc.A * utils.Clamp(opacity, 0, 1)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m := mask.Pix[mask.PixOffset(x, y)]
			bi := backdrop.PixOffset(x, y)
			di := dst.PixOffset(x, y)

			if m == 0 {
				copy(dst.Pix[di:di+4], backdrop.Pix[bi:bi+4])
				continue
			}
			s := sc
			s.A = alpha * float64(m) / 255

			b := NewColor(color.NRGBA{
				R: backdrop.Pix[bi+0],
				G: backdrop.Pix[bi+1],
				B: backdrop.Pix[bi+2],
				A: backdrop.Pix[bi+3],
			})
			c := op.Apply(s, b).NRGBA()
			dst.Pix[di+0] = c.R
			dst.Pix[di+1] = c.G
			dst.Pix[di+2] = c.B
			dst.Pix[di+3] = c.A
		}
	}
}
