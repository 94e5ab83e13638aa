package colorize

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComposite() *Composite {
	return &Composite{
		Image:     lineArt(20),
		CreatedAt: time.UnixMilli(1700000000123),
	}
}

func TestComposite_Name(t *testing.T) {
	c := testComposite()
	assert.Equal(t, "coloriage-1700000000123.png", c.Name("png"))
	assert.Equal(t, "coloriage-1700000000123.pdf", c.Name(".pdf"))
}

func TestComposite_DataURI(t *testing.T) {
	c := testComposite()
	uri, err := c.DataURI()
	require.NoError(t, err)

	payload, ok := strings.CutPrefix(uri, "data:image/png;base64,")
	require.True(t, ok)
	data, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, c.Image.Bounds(), img.Bounds())
}

func TestComposite_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testComposite().WritePDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExporter_DirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pictures")
	e := &Exporter{Sink: DirSink(dir)}

	name, err := e.Export(testComposite())
	require.NoError(t, err)
	assert.Equal(t, "coloriage-1700000000123.png", name)

	f, err := os.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())

	name, err = e.ExportPDF(testComposite())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, name))
}

func TestExporter_Formats(t *testing.T) {
	var buf bytes.Buffer
	e := &Exporter{Sink: WriterSink{W: &buf}, Format: FormatBMP}

	name, err := e.Export(testComposite())
	require.NoError(t, err)
	assert.Equal(t, "coloriage-1700000000123.bmp", name)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("BM")))

	dir := t.TempDir()
	e = &Exporter{Sink: DirSink(dir), Format: "tiff"}
	_, err = e.Export(testComposite())
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed export leaves no file behind")
}

type failingSink struct{}

func (failingSink) Create(string) (io.WriteCloser, error) {
	return nil, errors.New("disk full")
}

func TestExporter_SinkError(t *testing.T) {
	e := &Exporter{Sink: failingSink{}}
	_, err := e.Export(testComposite())
	assert.ErrorContains(t, err, "disk full")
}
