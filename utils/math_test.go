package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMath_MinMax(t *testing.T) {
	assert.Equal(t, 2, Min(2, 5))
	assert.Equal(t, 2, Min(5, 2))
	assert.Equal(t, 5, Max(2, 5))
	assert.Equal(t, 0.5, Max(0.5, -1.0))
}

func TestMath_AbsClamp(t *testing.T) {
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 1.5, Abs(1.5))
	assert.Equal(t, 255, Clamp(300, 0, 255))
	assert.Equal(t, 0, Clamp(-4, 0, 255))
	assert.Equal(t, 0.6, Clamp(0.6, 0.0, 1.0))
}
