package colorize

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositor_FitRect(t *testing.T) {
	cases := []struct {
		name     string
		src, dst image.Point
		want     image.Rectangle
	}{
		{"square into square", image.Pt(1, 1), image.Pt(800, 800), image.Rect(0, 0, 800, 800)},
		{"pillarbox", image.Pt(1, 1), image.Pt(800, 400), image.Rect(200, 0, 600, 400)},
		{"letterbox", image.Pt(200, 100), image.Pt(400, 400), image.Rect(0, 100, 400, 300)},
		{"downscale", image.Pt(1600, 800), image.Pt(400, 400), image.Rect(0, 100, 400, 300)},
		{"zero source", image.Pt(0, 0), image.Pt(50, 100), image.Rect(0, 25, 50, 75)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FitRect(tc.src, tc.dst))
		})
	}
}

func TestCompositor_OnePixelBackgroundIsLetterboxed(t *testing.T) {
	c := NewCompositor()
	strokes := image.NewNRGBA(image.Rect(0, 0, 80, 40))
	out := c.Compose(strokes, filled(1, 1, black))

	assert.Equal(t, image.Rect(0, 0, 80, 40), out.Bounds())
	assert.Equal(t, white, out.NRGBAAt(5, 20))
	assert.Equal(t, white, out.NRGBAAt(19, 20))
	assert.Equal(t, black, out.NRGBAAt(20, 0))
	assert.Equal(t, black, out.NRGBAAt(40, 20))
	assert.Equal(t, black, out.NRGBAAt(59, 39))
	assert.Equal(t, white, out.NRGBAAt(60, 20))
}

func TestCompositor_MultiplyKeepsOutlines(t *testing.T) {
	c := NewCompositor()
	strokes := filled(40, 40, red)
	out := c.Compose(strokes, lineArt(40))

	assert.Equal(t, red, out.NRGBAAt(2, 2))
	assert.Equal(t, black, out.NRGBAAt(20, 20))
}

func TestCompositor_NoBackground(t *testing.T) {
	c := NewCompositor()
	strokes := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	strokes.SetNRGBA(3, 3, blue)

	out := c.Compose(strokes, nil)
	assert.Equal(t, blue, out.NRGBAAt(3, 3))
	assert.Equal(t, white, out.NRGBAAt(4, 4))
}

func TestCompositor_CachesScaledBackground(t *testing.T) {
	c := NewCompositor()
	bg := lineArt(20)

	c.Compose(image.NewNRGBA(image.Rect(0, 0, 40, 40)), bg)
	first := c.cacheImg
	require.NotNil(t, first)

	c.Compose(image.NewNRGBA(image.Rect(0, 0, 40, 40)), bg)
	assert.Same(t, first, c.cacheImg)

	c.Compose(image.NewNRGBA(image.Rect(0, 0, 60, 40)), bg)
	assert.NotSame(t, first, c.cacheImg)
}

func TestExport_ClearThenExportShowsLineArtOnly(t *testing.T) {
	s, _ := newBoundSession(t, 100, 100, 1)
	art := lineArt(40)
	s.SetBackground(pngDataURI(t, art))

	drawStroke(s, Point{X: 10, Y: 10}, Point{X: 90, Y: 90})
	s.Clear()

	got, err := s.Composite(context.Background())
	require.NoError(t, err)

	want := NewCompositor().Compose(image.NewNRGBA(image.Rect(0, 0, 100, 100)), art)
	assert.Equal(t, want.Pix, got.Image.Pix)

	for i := 0; i < len(got.Image.Pix); i += 4 {
		p := got.Image.Pix[i : i+4]
		if p[0] != p[1] || p[1] != p[2] {
			t.Fatalf("unexpected colored pixel %v at offset %d", p, i)
		}
	}
}

func TestExport_ErasedAreaIsWhite(t *testing.T) {
	s, _ := newBoundSession(t, 100, 100, 1)
	s.SetBackground(pngDataURI(t, filled(10, 10, white)))

	drawStroke(s, Point{X: 10, Y: 50}, Point{X: 90, Y: 50})
	s.SetActiveTool(Eraser)
	drawStroke(s, Point{X: 30, Y: 50}, Point{X: 70, Y: 50})

	c, err := s.Composite(context.Background())
	require.NoError(t, err)

	assert.Equal(t, white, c.Image.NRGBAAt(50, 50))
	assert.Equal(t, white, c.Image.NRGBAAt(40, 45))
	assert.Equal(t, red, c.Image.NRGBAAt(5, 50))
	assert.Equal(t, white, c.Image.NRGBAAt(50, 80))
}
