package colorize

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Composite is a flattened picture ready to be saved.
type Composite struct {
	Image     *image.NRGBA
	CreatedAt time.Time
}

// Name returns the timestamped file name of the composite for the given
// extension, e.g. "coloriage-1700000000000.png".
func (c *Composite) Name(ext string) string {
	return fmt.Sprintf("coloriage-%d.%s", c.CreatedAt.UnixMilli(), strings.TrimPrefix(ext, "."))
}

// EncodePNG writes the composite as a PNG image.
func (c *Composite) EncodePNG(w io.Writer) error {
	return encodeImage(w, c.Image, FormatPNG)
}

// DataURI returns the composite as a base64 encoded PNG data URI.
func (c *Composite) DataURI() (string, error) {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// pdfMargin is the page margin of the printable export, in millimeters.
const pdfMargin = 10.0

// WritePDF writes an A4 document holding the composite, fitted within the
// page margins and centered.
func (c *Composite) WritePDF(w io.Writer) error {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Coloriage", true)
	pdf.SetCreationDate(c.CreatedAt)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	name := c.Name("png")
	pdf.RegisterImageOptionsReader(name, opts, &buf)

	pageW, pageH := pdf.GetPageSize()
	size := c.Image.Bounds().Size()
	r := FitRect(size, image.Pt(int((pageW-2*pdfMargin)*100), int((pageH-2*pdfMargin)*100)))
	x := pdfMargin + float64(r.Min.X)/100
	y := pdfMargin + float64(r.Min.Y)/100
	pdf.ImageOptions(name, x, y, float64(r.Dx())/100, float64(r.Dy())/100, false, opts, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("could not build the pdf document: %w", err)
	}
	return pdf.Output(w)
}

// Sink receives the exported files.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
}

// DirSink writes the exported files into a directory, creating it if needed.
type DirSink string

// Create implements Sink.
func (d DirSink) Create(name string) (io.WriteCloser, error) {
	if err := os.MkdirAll(string(d), 0755); err != nil {
		return nil, fmt.Errorf("unable to create the output directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(string(d), name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, nil
}

// WriterSink sends every exported file to the same writer, stdout typically.
type WriterSink struct {
	W io.Writer
}

// Create implements Sink.
func (s WriterSink) Create(string) (io.WriteCloser, error) {
	return nopCloser{s.W}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Exporter writes composites to a sink.
type Exporter struct {
	Sink Sink
	// Format of the raster export: png (default), jpg or bmp.
	Format string
}

// Export encodes the composite and returns the name it was saved under.
func (e *Exporter) Export(c *Composite) (string, error) {
	format := e.Format
	if format == "" {
		format = FormatPNG
	}
	return e.write(c.Name(format), func(w io.Writer) error {
		return encodeImage(w, c.Image, format)
	})
}

// ExportPDF writes the printable version of the composite.
func (e *Exporter) ExportPDF(c *Composite) (string, error) {
	return e.write(c.Name("pdf"), c.WritePDF)
}

func (e *Exporter) write(name string, encode func(io.Writer) error) (string, error) {
	w, err := e.Sink.Create(name)
	if err != nil {
		return "", err
	}
	if err := encode(w); err != nil {
		w.Close()
		if d, ok := e.Sink.(DirSink); ok {
			os.Remove(filepath.Join(string(d), name))
		}
		return "", fmt.Errorf("unable to encode %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("could not close the exported file: %w", err)
	}
	Logger().Info("composite exported", "name", name)
	return name, nil
}
