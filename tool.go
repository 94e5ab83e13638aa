package colorize

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/c0dexio/Colorize/imop"
	"github.com/gogpu/gg"
)

// ToolKind identifies one of the drawing tools.
type ToolKind int

// The available tools, in the order they are presented to the user.
const (
	Pencil ToolKind = iota
	Marker
	Brush
	Eraser
)

// Mode is the way a stroke combines with the content already on the surface.
type Mode int

const (
	// Paint draws the stroke color over the existing content.
	Paint Mode = iota
	// Erase removes the existing content under the stroke.
	Erase
)

// ToolConfig holds the fixed stroke parameters of a tool.
// Width is expressed in logical units, the surface scales it to device pixels.
type ToolConfig struct {
	Width   float64
	Opacity float64
	Mode    Mode
	Icon    string
	Label   string
}

var tools = [...]ToolConfig{
	Pencil: {Width: 4, Opacity: 1, Mode: Paint, Icon: "✏️", Label: "Crayon"},
	Marker: {Width: 12, Opacity: 1, Mode: Paint, Icon: "🖊️", Label: "Feutre"},
	Brush:  {Width: 24, Opacity: 0.6, Mode: Paint, Icon: "🖌️", Label: "Pinceau"},
	Eraser: {Width: 40, Opacity: 1, Mode: Erase, Icon: "🧽", Label: "Gomme"},
}

// toolNames are the identifiers used in the configuration file.
var toolNames = [...]string{
	Pencil: "pencil",
	Marker: "marker",
	Brush:  "brush",
	Eraser: "eraser",
}

// Tools returns every tool kind, in presentation order.
func Tools() []ToolKind {
	return []ToolKind{Pencil, Marker, Brush, Eraser}
}

// Config returns the stroke parameters of the tool.
// Unknown kinds fall back to the marker.
func (t ToolKind) Config() ToolConfig {
	if t < 0 || int(t) >= len(tools) {
		return tools[Marker]
	}
	return tools[t]
}

func (t ToolKind) String() string {
	if t < 0 || int(t) >= len(tools) {
		return fmt.Sprintf("ToolKind(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool returns the tool kind matching name or label, case insensitive.
func ParseTool(name string) (ToolKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Tools() {
		if t.String() == name || strings.ToLower(tools[t].Label) == name {
			return t, nil
		}
	}
	return Marker, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Palette is the list of colors offered to the user, as CSS hex strings.
var Palette = []string{
	"#FF0000", "#FF4500", "#FF7F00", "#FFA500", "#FFFF00", "#FFD700", "#ADFF2F",
	"#7FFF00", "#00FF00", "#32CD32", "#008000", "#00FA9A", "#00FFFF", "#00CED1",
	"#00BFFF", "#1E90FF", "#0000FF", "#00008B", "#4B0082", "#8B00FF", "#9932CC",
	"#FF00FF", "#FF1493", "#FFC0CB", "#F5DEB3", "#8B4513", "#A0522D", "#000000",
}

const (
	// DefaultTool is the tool selected when a session starts.
	DefaultTool = Marker
	// DefaultColor is the color selected when a session starts.
	DefaultColor = "#FF0000"
)

// ParseHexColor converts a "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" string
// into a non premultiplied color.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	for _, c := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
	}
	return imop.Color(gg.Hex(hex)).NRGBA(), nil
}

// PaletteIndex returns the position of the color in the palette, or -1.
func PaletteIndex(hex string) int {
	for i, c := range Palette {
		if strings.EqualFold(c, hex) {
			return i
		}
	}
	return -1
}
