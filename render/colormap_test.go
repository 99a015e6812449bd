package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorOfMonotonicAndClamped(t *testing.T) {
	cm := NewColorMap(Rainbow)
	rng := Range{Min: 0, Max: 10}

	// Position moves monotonically along the palette axis within range
	prev := -1.0
	for v := 0.0; v <= 10.0; v += 0.5 {
		p := cm.Position(v, rng)
		assert.Greater(t, p, prev, "position must increase at v=%g", v)
		prev = p
	}

	// Outside values clamp to the endpoint colors, not extrapolate
	assert.Equal(t, cm.ColorOf(0, rng), cm.ColorOf(-100, rng))
	assert.Equal(t, cm.ColorOf(10, rng), cm.ColorOf(1e9, rng))
}

func TestColorOfDeterministic(t *testing.T) {
	cm := NewColorMap(Rainbow)
	rng := Range{Min: -1, Max: 1}
	assert.Equal(t, cm.ColorOf(0.3, rng), cm.ColorOf(0.3, rng))
}

func TestColorOfEndpoints(t *testing.T) {
	// Low end is blue, high end is red for both palettes
	for _, p := range []Palette{Rainbow, Abaqus} {
		cm := NewColorMap(p)
		rng := Range{Min: 0, Max: 1}
		lo := cm.ColorOf(0, rng)
		hi := cm.ColorOf(1, rng)
		assert.Greater(t, lo.B, lo.R, "%s low end should be blue", p)
		assert.Greater(t, hi.R, hi.B, "%s high end should be red", p)
	}
}

func TestColorOfMissingSentinel(t *testing.T) {
	cm := NewColorMap(Rainbow)
	rng := Range{Min: 0, Max: 1}
	assert.Equal(t, SentinelColor, cm.ColorOf(math.NaN(), rng))
}

func TestColorOfDegenerateRange(t *testing.T) {
	cm := NewColorMap(Rainbow)
	rng := Range{Min: 5, Max: 5}
	// Constant fields collapse to the low endpoint instead of dividing
	// by zero
	assert.Equal(t, cm.ColorOf(5, Range{Min: 0, Max: 10}), cm.ColorOf(5, rng))

	lo := cm.ColorOf(0, Range{Min: 0, Max: 1})
	assert.Equal(t, lo, cm.ColorOf(123.0, rng))
}

func TestAbaqusBands(t *testing.T) {
	cm := NewColorMap(Abaqus)
	rng := Range{Min: 0, Max: 12}
	// Values within one band share a color; adjacent bands differ
	assert.Equal(t, cm.ColorOf(0.1, rng), cm.ColorOf(0.9, rng))
	assert.NotEqual(t, cm.ColorOf(0.5, rng), cm.ColorOf(1.5, rng))
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette("abaqus")
	assert.NoError(t, err)
	assert.Equal(t, Abaqus, p)
	p, err = ParsePalette("")
	assert.NoError(t, err)
	assert.Equal(t, Rainbow, p)
	_, err = ParsePalette("viridis")
	assert.Error(t, err)
}
