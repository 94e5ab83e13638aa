package main

import (
	"strings"
	"testing"

	colorize "github.com/c0dexio/Colorize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplay_Decode(t *testing.T) {
	events, err := decodeReplay(strings.NewReader(`[
		{"kind": "down", "pos": {"x": 10, "y": 20}},
		{"kind": "move", "pos": {"x": 30, "y": 20}},
		{"kind": "end", "source": "touch", "changed": [{"x": 30, "y": 20}]}
	]`))
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, colorize.Press, events[0].Kind)
	assert.Equal(t, colorize.Point{X: 10, Y: 20}, events[0].Position)
	assert.Equal(t, colorize.Move, events[1].Kind)
	assert.Equal(t, colorize.Release, events[2].Kind)
	assert.Equal(t, colorize.Touch, events[2].Source)

	pt, ok := events[2].ClientPoint()
	require.True(t, ok)
	assert.Equal(t, colorize.Point{X: 30, Y: 20}, pt)
}

func TestReplay_DecodeInvalid(t *testing.T) {
	_, err := decodeReplay(strings.NewReader(`[{"kind": "hover"}]`))
	assert.ErrorContains(t, err, "decoding pointer events")

	_, err = readReplay("does-not-exist.json")
	assert.ErrorContains(t, err, "unable to open the replay file")
}
