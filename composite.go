package colorize

import (
	"image"
	"image/color"
	"math"

	"github.com/c0dexio/Colorize/imop"
	"github.com/c0dexio/Colorize/utils"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Compositor flattens the strokes and the line art into a single image:
// a white backdrop, the line art fitted and centered, and the strokes
// multiplied on top so the outlines stay visible through the color.
type Compositor struct {
	blend *imop.Blend

	// last scaled background, reused while neither the source nor the
	// output size change.
	cacheSrc  *image.NRGBA
	cacheSize image.Point
	cacheImg  *image.NRGBA
	cacheRect image.Rectangle
}

// NewCompositor returns a compositor using the multiply blend mode.
func NewCompositor() *Compositor {
	b := imop.NewBlend()
	b.Set(imop.Multiply)
	return &Compositor{blend: b}
}

// Compose builds the composite at the size of strokes. bg may be nil.
func (c *Compositor) Compose(strokes *image.NRGBA, bg image.Image) *image.NRGBA {
	size := strokes.Bounds().Size()
	out := image.NewNRGBA(image.Rectangle{Max: size})
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if bg != nil {
		if scaled, r := c.fit(imgToNRGBA(bg), size); scaled != nil {
			draw.Draw(out, r, scaled, image.Point{}, draw.Over)
		}
	}
	c.blend.Draw(out, strokes)

	return out
}

// fit returns the background scaled to fit within size and the rectangle it
// must be drawn at.
func (c *Compositor) fit(src *image.NRGBA, size image.Point) (*image.NRGBA, image.Rectangle) {
	if c.cacheSrc == src && c.cacheSize == size {
		return c.cacheImg, c.cacheRect
	}

	r := FitRect(src.Bounds().Size(), size)
	if r.Empty() || src.Bounds().Empty() {
		return nil, r
	}
	scaled := imaging.Resize(src, r.Dx(), r.Dy(), imaging.Lanczos)
	Logger().Debug("background scaled", "from", src.Bounds().Size(), "to", r)

	c.cacheSrc, c.cacheSize = src, size
	c.cacheImg, c.cacheRect = scaled, r
	return scaled, r
}

// FitRect returns the largest rectangle with the aspect ratio of src that
// fits within dst, centered. Zero source dimensions count as one.
func FitRect(src, dst image.Point) image.Rectangle {
	sw := float64(utils.Max(src.X, 1))
	sh := float64(utils.Max(src.Y, 1))
	scale := math.Min(float64(dst.X)/sw, float64(dst.Y)/sh)

	w := int(math.Round(sw * scale))
	h := int(math.Round(sh * scale))
	x := (dst.X - w) / 2
	y := (dst.Y - h) / 2
	return image.Rect(x, y, x+w, y+h)
}
