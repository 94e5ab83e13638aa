package sketch

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// halves returns a picture with a dark left half and a light right half.
func halves(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 20, G: 30, B: 40, A: 255}
			if x >= w/2 {
				c = color.NRGBA{R: 230, G: 220, B: 210, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSobel_DetectsVerticalEdge(t *testing.T) {
	img := halves(20, 10)
	edges := Sobel(img, 10)
	require.Equal(t, image.Rect(0, 0, 20, 10), edges.Bounds())

	assert.Equal(t, uint8(255), edges.GrayAt(10, 5).Y)
	assert.Equal(t, uint8(255), edges.GrayAt(9, 5).Y)
	assert.Zero(t, edges.GrayAt(4, 5).Y)
	assert.Zero(t, edges.GrayAt(15, 5).Y)
	assert.Zero(t, edges.GrayAt(0, 5).Y)
}

func TestSobel_FlatImageHasNoEdges(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	edges := Sobel(img, 0)
	for _, v := range edges.Pix {
		assert.Zero(t, v)
	}
}

func TestLineArt(t *testing.T) {
	art := LineArt(halves(40, 20), Options{Threshold: 60})
	require.Equal(t, image.Rect(0, 0, 40, 20), art.Bounds())

	assert.Equal(t, color.NRGBA{A: 255}, art.NRGBAAt(20, 10))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, art.NRGBAAt(5, 10))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, art.NRGBAAt(35, 10))

	blurred := LineArt(halves(40, 20), DefaultOptions())
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, blurred.NRGBAAt(2, 10))
}
