package colorize

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// rasterSegment strokes the segment a→b with round caps into mask, keeping
// the highest coverage of every pixel, and returns the touched rectangle.
// Positions and width are in device pixels.
func rasterSegment(mask *image.Alpha, a, b Point, width float64) image.Rectangle {
	half := width / 2
	r := image.Rect(
		int(math.Floor(math.Min(a.X, b.X)-half))-1,
		int(math.Floor(math.Min(a.Y, b.Y)-half))-1,
		int(math.Ceil(math.Max(a.X, b.X)+half))+1,
		int(math.Ceil(math.Max(a.Y, b.Y)+half))+1,
	).Intersect(mask.Bounds())
	if r.Empty() || width <= 0 {
		return image.Rectangle{}
	}

	dc := gg.NewContext(r.Dx(), r.Dy())
	defer dc.Close()

	dc.SetColor(color.White)
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.Translate(-float64(r.Min.X), -float64(r.Min.Y))

	var err error
	if a == b {
		// A zero length segment with round caps is a dot.
		dc.DrawCircle(a.X, a.Y, half)
		err = dc.Fill()
	} else {
		dc.MoveTo(a.X, a.Y)
		dc.LineTo(b.X, b.Y)
		err = dc.Stroke()
	}
	if err != nil {
		Logger().Warn("segment rasterization failed", "error", err)
		return image.Rectangle{}
	}

	cov, ok := dc.Image().(*image.RGBA)
	if !ok {
		return image.Rectangle{}
	}
	for y := 0; y < r.Dy(); y++ {
		ci := cov.PixOffset(0, y)
		mi := mask.PixOffset(r.Min.X, r.Min.Y+y)
		for x := 0; x < r.Dx(); x, ci, mi = x+1, ci+4, mi+1 {
			if c := cov.Pix[ci+3]; c > mask.Pix[mi] {
				mask.Pix[mi] = c
			}
		}
	}
	return r
}
