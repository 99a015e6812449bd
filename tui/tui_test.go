package tui

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameMeanSkipsMissing(t *testing.T) {
	mean := frameMean([]float64{1, math.NaN(), 3})
	assert.Equal(t, 2.0, mean)
}

func TestFrameMeanAllMissing(t *testing.T) {
	assert.Equal(t, 0.0, frameMean([]float64{math.NaN(), math.NaN()}))
	assert.Equal(t, 0.0, frameMean(nil))
}

func TestProgressLineEmpty(t *testing.T) {
	// no frames loaded renders an inert bar, no division by zero
	line := progressLine(0, 0, "")
	assert.NotEmpty(t, line)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", indent("a\nb", "  "))
}
