package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat_DecorateText(t *testing.T) {
	assert.Equal(t, SuccessColor+"done"+DefaultColor, DecorateText("done", SuccessMessage))
	assert.Equal(t, ErrorColor+"fail"+DefaultColor, DecorateText("fail", ErrorMessage))
	assert.Equal(t, "plain", DecorateText("plain", MessageType(42)))
	assert.Contains(t, Banner("saved", SuccessMessage), "COLORIZE")
}

func TestFormat_FormatTime(t *testing.T) {
	assert.Equal(t, "250ms", FormatTime(250*time.Millisecond))
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 5.00s", FormatTime(125*time.Second))
	assert.Equal(t, "1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "waiting", time.Millisecond, false)
	s.StopMsg = "stopped\n"
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()
	s.Stop()

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Equal(t, 1, strings.Count(buf.String(), "stopped"))
}
