package colorize

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Surface is the raster buffer accumulating the user strokes.
// Its pixel dimensions follow the logical size of the bound container
// multiplied by the device scale factor.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	buf    *image.NRGBA
	width  float64
	height float64
	scale  float64

	// generation is bumped every time the buffer is reallocated or wiped,
	// which invalidates any stroke started before.
	generation uint64
}

// NewSurface returns an empty, zero sized surface.
func NewSurface() *Surface {
	return &Surface{
		buf:   image.NewNRGBA(image.Rectangle{}),
		scale: 1,
	}
}

// Resize reallocates the buffer for a container of w×h logical units at the
// given device scale. The current content is stretched over the new buffer.
// It reports false when the pixel size differs by less than one pixel from
// the current one, or when the new size has no area, in which case nothing
// changes.
func (s *Surface) Resize(w, h, scale float64) (bool, error) {
	if !validDim(w) || !validDim(h) || !validDim(scale) || scale == 0 {
		return false, ErrInvalidSize
	}

	pw, ph := s.PixelSize()
	if math.Abs(float64(pw)-w*scale) < 1 && math.Abs(float64(ph)-h*scale) < 1 {
		return false, nil
	}

	nw, nh := int(w*scale), int(h*scale)
	if nw == 0 || nh == 0 {
		// A collapsed container keeps the current strokes for when it grows back.
		Logger().Debug("empty surface size ignored", "width", w, "height", h, "scale", scale)
		return false, nil
	}

	old := s.buf
	buf := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	if !old.Bounds().Empty() && !buf.Bounds().Empty() {
		draw.BiLinear.Scale(buf, buf.Bounds(), old, old.Bounds(), draw.Src, nil)
	}

	s.buf = buf
	s.width, s.height, s.scale = w, h, scale
	s.generation++

	Logger().Debug("surface resized",
		"from", old.Bounds().Size(),
		"to", buf.Bounds().Size(),
		"scale", scale,
	)
	return true, nil
}

// Clear wipes the buffer to transparent.
func (s *Surface) Clear() {
	clear(s.buf.Pix)
	s.generation++
}

// Image returns the live buffer. It stays valid until the next Resize.
func (s *Surface) Image() *image.NRGBA {
	return s.buf
}

// Snapshot returns a copy of the buffer.
func (s *Surface) Snapshot() *image.NRGBA {
	dst := image.NewNRGBA(s.buf.Bounds())
	copy(dst.Pix, s.buf.Pix)
	return dst
}

// Size returns the logical size of the surface.
func (s *Surface) Size() (float64, float64) {
	return s.width, s.height
}

// Scale returns the device scale factor.
func (s *Surface) Scale() float64 {
	return s.scale
}

// PixelSize returns the dimensions of the buffer in device pixels.
func (s *Surface) PixelSize() (int, int) {
	b := s.buf.Bounds()
	return b.Dx(), b.Dy()
}

// Generation returns the current buffer generation.
func (s *Surface) Generation() uint64 {
	return s.generation
}

// ToPixel converts a logical position into device pixels.
func (s *Surface) ToPixel(p Point) Point {
	return Point{X: p.X * s.scale, Y: p.Y * s.scale}
}

// Empty reports whether the buffer has no pixels.
func (s *Surface) Empty() bool {
	return s.buf.Bounds().Empty()
}

func validDim(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
