package colorize

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/c0dexio/Colorize/sketch"
	"github.com/c0dexio/Colorize/utils"
)

// Loader fetches and decodes line art images. The source can be an http(s)
// URL, a data URI or a local file path.
type Loader struct {
	Client *http.Client
	// Sketch, when enabled, converts the decoded picture into line art.
	Sketch *sketch.Options
}

// Load fetches src and decodes it.
func (l *Loader) Load(ctx context.Context, src string) (*image.NRGBA, error) {
	data, err := l.fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	if l != nil && l.Sketch != nil && l.Sketch.Enabled {
		img = sketch.LineArt(img, *l.Sketch)
	}
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return parseDataURI(src)
	case utils.IsValidUrl(src):
		var client *http.Client
		if l != nil {
			client = l.Client
		}
		return utils.DownloadImage(ctx, client, src)
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("could not open the background file: %w", err)
		}
		return data, nil
	}
}

// parseDataURI returns the payload of a data:[<mediatype>][;base64],<data> URI.
func parseDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed base64 data URI: %w", err)
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return []byte(data), nil
}

// Background is the line art of a session. It is loaded at most once, in
// the background, and the decoded image is kept for later exports.
type Background struct {
	src    string
	loader *Loader

	once   sync.Once
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	img *image.NRGBA
	err error
}

// NewBackground creates a background for src. Nothing is fetched until
// Preload or Wait is called.
func NewBackground(src string, loader *Loader) *Background {
	ctx, cancel := context.WithCancel(context.Background())
	return &Background{
		src:    src,
		loader: loader,
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// NewBackgroundImage wraps an already decoded image.
func NewBackgroundImage(img image.Image) *Background {
	b := NewBackground("", nil)
	b.once.Do(func() {
		b.img = imgToNRGBA(img)
		close(b.done)
	})
	return b
}

// Source returns the image reference the background was created with.
func (b *Background) Source() string {
	return b.src
}

// Preload starts fetching the image if it is not already.
func (b *Background) Preload() {
	b.once.Do(func() {
		go func() {
			defer close(b.done)
			b.img, b.err = b.loader.Load(b.ctx, b.src)
			if b.err != nil {
				Logger().Warn("background load failed", "src", truncate(b.src), "error", b.err)
				return
			}
			Logger().Debug("background loaded", "src", truncate(b.src), "size", b.img.Bounds().Size())
		}()
	})
}

// Wait blocks until the image is decoded or ctx is done. An expired
// deadline is reported as ErrBackgroundTimeout.
func (b *Background) Wait(ctx context.Context) (*image.NRGBA, error) {
	b.Preload()
	select {
	case <-b.done:
		if b.err != nil {
			return nil, fmt.Errorf("loading background: %w", b.err)
		}
		return b.img, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrBackgroundTimeout, ctx.Err())
		}
		return nil, ctx.Err()
	}
}

// Ready returns the decoded image without waiting.
func (b *Background) Ready() (*image.NRGBA, bool) {
	select {
	case <-b.done:
		return b.img, b.err == nil
	default:
		return nil, false
	}
}

// Close aborts a pending load.
func (b *Background) Close() {
	b.cancel()
}

// truncate shortens data URIs in log lines.
func truncate(s string) string {
	if len(s) > 64 {
		return s[:64] + "…"
	}
	return s
}
