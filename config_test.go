package colorize

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c0dexio/Colorize/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
output_dir = "pictures"
export_timeout = "3s"
tool = "brush"
color = "#00FF00"

[window]
width = 800
height = 600

[generator]
provider = "openai"
model = "dall-e-3"
size = "1024x1024"
timeout = "30s"

[sketch]
enabled = true
blur = 1.5
`

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 10*time.Second, cfg.ExportTimeout)
	assert.Equal(t, DefaultPenConfig(), cfg.PenConfig())
	assert.Equal(t, "placeholder", cfg.Generator.Provider)
}

func TestConfig_LoadFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	path := filepath.Join(t.TempDir(), "colorize.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "pictures", cfg.OutputDir)
	assert.Equal(t, 3*time.Second, cfg.ExportTimeout)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "openai", cfg.Generator.Provider)
	assert.Equal(t, "dall-e-3", cfg.Generator.Model)
	assert.Equal(t, 30*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, "sk-env", cfg.Generator.APIKey)
	assert.True(t, cfg.Sketch.Enabled)
	assert.Equal(t, 1.5, cfg.Sketch.Blur)
	assert.Equal(t, sketch.DefaultOptions().Threshold, cfg.Sketch.Threshold)

	pen := cfg.PenConfig()
	assert.Equal(t, Brush, pen.Tool)
	assert.Equal(t, uint8(0xff), pen.Color.G)
}

func TestConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"tool":    `tool = "crayon"`,
		"color":   `color = "green"`,
		"timeout": `export_timeout = "-1s"`,
		"format":  `format = "gif"`,
		"sketch":  "[sketch]\nthreshold = 300",
		"syntax":  `tool = `,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
