package colorize

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black = color.NRGBA{A: 0xff}
)

// newBoundSession returns a session bound to a w×h container at the given
// scale, resizing synchronously.
func newBoundSession(t *testing.T, w, h, scale float64) (*Session, *StaticContainer) {
	t.Helper()
	s := NewSession(Options{Sink: DirSink(t.TempDir())})
	box := &StaticContainer{Box: Rect{W: w, H: h}, Scale: scale}
	require.NoError(t, s.BindSurface(box, Immediate))
	t.Cleanup(s.Close)
	return s, box
}

// drawStroke draws a polyline with press, moves and release events.
func drawStroke(s *Session, pts ...Point) {
	for i, p := range pts {
		kind := Move
		if i == 0 {
			kind = Press
		}
		s.HandlePointer(PointerEvent{Kind: kind, Position: p})
	}
	s.HandlePointer(PointerEvent{Kind: Release})
}

func isBlank(img *image.NRGBA) bool {
	for _, v := range img.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

func filled(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// lineArt returns a white picture with a black square in its center.
func lineArt(size int) *image.NRGBA {
	img := filled(size, size, white)
	q := size / 4
	draw.Draw(img, image.Rect(q, q, size-q, size-q), image.NewUniform(black), image.Point{}, draw.Src)
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngDataURI(t *testing.T, img image.Image) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, img))
}
