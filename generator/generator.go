// Package generator provides the line art sources of the coloring pages.
// A generator returns an opaque image reference: an http(s) URL, a data URI
// or a local file path.
package generator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Generator produces the line art of a coloring page for a theme.
type Generator interface {
	Generate(ctx context.Context, theme Theme) (string, error)
}

// Func adapts a function to the Generator interface.
type Func func(ctx context.Context, theme Theme) (string, error)

// Generate calls f(ctx, theme).
func (f Func) Generate(ctx context.Context, theme Theme) (string, error) {
	return f(ctx, theme)
}

// Static always returns the same image reference.
type Static string

// Generate implements Generator.
func (s Static) Generate(context.Context, Theme) (string, error) {
	if s == "" {
		return "", errors.New("empty image reference")
	}
	return string(s), nil
}

// DefaultPlaceholderURL is the image service used when generation fails.
const DefaultPlaceholderURL = "https://picsum.photos"

// Placeholder returns a random grayscale picture seeded with the theme and
// the current time.
type Placeholder struct {
	BaseURL string
	Now     func() time.Time
}

// Generate implements Generator.
func (p Placeholder) Generate(_ context.Context, theme Theme) (string, error) {
	base := p.BaseURL
	if base == "" {
		base = DefaultPlaceholderURL
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	seed := url.PathEscape(fmt.Sprintf("%s-%d", theme, now().UnixMilli()))
	return fmt.Sprintf("%s/seed/%s/800/800?grayscale", strings.TrimSuffix(base, "/"), seed), nil
}

type chain struct {
	primary, fallback Generator
}

// Chain returns a generator asking primary first and falling back on
// fallback when it fails. A cancelled context is not retried.
func Chain(primary, fallback Generator) Generator {
	return &chain{primary: primary, fallback: fallback}
}

func (c *chain) Generate(ctx context.Context, theme Theme) (string, error) {
	ref, err := c.primary.Generate(ctx, theme)
	if err == nil {
		return ref, nil
	}
	if errors.Is(err, context.Canceled) {
		return "", err
	}
	logger().Warn("line art generation failed, using fallback", "theme", theme, "error", err)

	ref, ferr := c.fallback.Generate(ctx, theme)
	if ferr != nil {
		return "", fmt.Errorf("generation failed: %w (fallback: %v)", err, ferr)
	}
	return ref, nil
}

// Settings configures the generator built by New.
type Settings struct {
	Provider string        `toml:"provider"`
	Model    string        `toml:"model"`
	APIKey   string        `toml:"api_key"`
	BaseURL  string        `toml:"base_url"`
	Size     string        `toml:"size"`
	Timeout  time.Duration `toml:"timeout"`
	// Fallback is the base URL of the placeholder image service.
	Fallback string `toml:"fallback_url"`
}

// Supported providers.
const (
	ProviderOpenAI      = "openai"
	ProviderPlaceholder = "placeholder"
)

// New builds the generator described by the settings. Remote providers are
// chained with the placeholder service.
func New(cfg *Settings) (Generator, error) {
	if cfg == nil {
		return nil, errors.New("generator settings are nil")
	}
	placeholder := Placeholder{BaseURL: cfg.Fallback}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderPlaceholder:
		return placeholder, nil
	case ProviderOpenAI:
		o, err := NewOpenAIFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		return Chain(o, placeholder), nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}
