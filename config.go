package colorize

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/c0dexio/Colorize/generator"
	"github.com/c0dexio/Colorize/sketch"
)

// Config holds the settings of the application.
type Config struct {
	// OutputDir is where the exported pictures are written.
	OutputDir string `toml:"output_dir"`
	// Format of the raster export: png, jpg or bmp.
	Format string `toml:"format"`
	// ExportTimeout bounds the wait for the line art during an export.
	ExportTimeout time.Duration `toml:"export_timeout"`
	// Scale overrides the device scale factor reported by the window when set.
	Scale float64 `toml:"scale"`

	Window struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"window"`

	Tool  string `toml:"tool"`
	Color string `toml:"color"`

	Generator generator.Settings `toml:"generator"`
	// Sketch turns the fetched pictures into line art.
	Sketch sketch.Options `toml:"sketch"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	c := &Config{
		OutputDir:     ".",
		Format:        FormatPNG,
		ExportTimeout: 10 * time.Second,
		Tool:          DefaultTool.String(),
		Color:         DefaultColor,
		Sketch:        sketch.DefaultOptions(),
	}
	c.Window.Width = 1024
	c.Window.Height = 768
	c.Generator.Provider = generator.ProviderPlaceholder
	c.Generator.Timeout = time.Minute
	return c
}

// LoadConfig reads a TOML file over the default settings. An empty path
// returns the defaults. The OPENAI_API_KEY environment variable fills an
// empty generator API key.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, c)
		if err != nil {
			return nil, fmt.Errorf("could not read the config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			Logger().Warn("unknown config keys", "keys", fmt.Sprint(undecoded))
		}
	}
	if c.Generator.APIKey == "" {
		c.Generator.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the consistency of the settings.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseTool(c.Tool); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseHexColor(c.Color); err != nil {
		errs = append(errs, err)
	}
	if c.ExportTimeout <= 0 {
		errs = append(errs, errors.New("export_timeout must be positive"))
	}
	if c.Sketch.Blur < 0 || c.Sketch.Threshold < 0 || c.Sketch.Threshold > 255 {
		errs = append(errs, errors.New("sketch blur must not be negative and threshold must be in [0, 255]"))
	}
	if c.Scale < 0 {
		errs = append(errs, errors.New("scale must not be negative"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, errors.New("window size must be positive"))
	}
	switch c.Format {
	case FormatPNG, FormatJPEG, FormatBMP:
	default:
		errs = append(errs, fmt.Errorf("unsupported export format %q", c.Format))
	}
	return errors.Join(errs...)
}

// PenConfig returns the initial pen configuration. Call Validate first.
func (c *Config) PenConfig() PenConfig {
	cfg := DefaultPenConfig()
	if t, err := ParseTool(c.Tool); err == nil {
		cfg.Tool = t
	}
	if col, err := ParseHexColor(c.Color); err == nil {
		cfg.Color = col
	}
	return cfg
}
