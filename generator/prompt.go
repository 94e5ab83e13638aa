package generator

import (
	"fmt"
	"strings"
	"time"
)

// Prompt builds the image generation prompt for a theme. The timestamp is
// part of the prompt so two requests for the same theme get different scenes.
func Prompt(theme Theme, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("Create a brand new coloring page for a 4 year old child.\n")
	fmt.Fprintf(&sb, "THEME: %s.\n", theme.Label())
	sb.WriteString("STYLE: very thick black outlines on a pure white background. No fill, no shading, no gray.\n")
	sb.WriteString("CONSTRAINTS: a single large central subject that is easy to color. No text, no signature, no small details.\n")
	fmt.Fprintf(&sb, "VARIATION: %d - make it different from the previous scene.", now.UnixMilli())
	return sb.String()
}
