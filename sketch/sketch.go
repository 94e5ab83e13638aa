// Package sketch turns a photo into line art suitable for coloring: the
// picture is desaturated and smoothed, its edges are detected with the Sobel
// operator and drawn as black lines on a white page.
package sketch

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Options controls the conversion.
type Options struct {
	Enabled bool `toml:"enabled"`
	// Blur is the sigma of the gaussian smoothing applied before the edge
	// detection. Larger values keep only the main outlines.
	Blur float64 `toml:"blur"`
	// Threshold is the minimum gradient magnitude, in [0, 255], drawn as a line.
	Threshold float64 `toml:"threshold"`
}

// DefaultOptions returns the settings used for the placeholder photos.
func DefaultOptions() Options {
	return Options{Blur: 2, Threshold: 60}
}

var (
	kernelX = [3][3]int32{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	kernelY = [3][3]int32{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Sobel returns the gradient magnitude of a grayscale image as an opaque
// gray image. Only the red channel of img is read. Magnitudes not above
// threshold are zeroed. The one pixel border is left black.
// See https://en.wikipedia.org/wiki/Sobel_operator
func Sobel(img *image.NRGBA, threshold float64) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := 1; y < b.Dy()-1; y++ {
		for x := 1; x < b.Dx()-1; x++ {
			var sumX, sumY int32
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					i := img.PixOffset(b.Min.X+x+kx-1, b.Min.Y+y+ky-1)
					v := int32(img.Pix[i])
					sumX += v * kernelX[ky][kx]
					sumY += v * kernelY[ky][kx]
				}
			}
			m := math.Min(math.Sqrt(float64(sumX*sumX+sumY*sumY)), 255)
			if m > threshold {
				dst.Pix[dst.PixOffset(x, y)] = uint8(m)
			}
		}
	}
	return dst
}

// LineArt converts img into black lines over a white background.
func LineArt(img image.Image, opts Options) *image.NRGBA {
	gray := imaging.Grayscale(img)
	if opts.Blur > 0 {
		gray = imaging.Blur(gray, opts.Blur)
	}
	edges := Sobel(gray, opts.Threshold)

	b := edges.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if edges.GrayAt(x, y).Y > 0 {
				c = color.NRGBA{A: 255}
			}
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}
