package render

import (
	"fmt"
	"image/color"
	"math"
)

// Range is the (min,max) scalar interval mapped onto the palette
type Range struct {
	Min, Max float64
}

// Span is zero for degenerate ranges, which map everything to Min's color
func (r Range) Span() float64 { return r.Max - r.Min }

type Palette int

const (
	// Rainbow is a 256-step HSV ramp, blue through red
	Rainbow Palette = iota
	// Abaqus is the classic 12-band contour palette
	Abaqus
)

func (p Palette) String() string {
	return [...]string{"rainbow", "abaqus"}[p]
}

func ParsePalette(s string) (Palette, error) {
	switch s {
	case "rainbow", "":
		return Rainbow, nil
	case "abaqus":
		return Abaqus, nil
	}
	return 0, fmt.Errorf("unknown palette %q (want rainbow or abaqus)", s)
}

// SentinelColor marks nodes with no field data. Mid-gray sits outside
// both palettes, which are fully saturated.
var SentinelColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// ColorMap maps scalars through a palette table against an active range.
// Pure and deterministic: same value, range and palette always yield the
// same color.
type ColorMap struct {
	table  []color.RGBA
	banded bool // band lookup instead of interpolation (Abaqus style)
}

func NewColorMap(p Palette) *ColorMap {
	switch p {
	case Abaqus:
		return &ColorMap{table: abaqusTable(), banded: true}
	default:
		return &ColorMap{table: rainbowTable(256)}
	}
}

// Position normalizes v into [0,1] against rng, clamping outside values
func (cm *ColorMap) Position(v float64, rng Range) float64 {
	if rng.Span() <= 0 {
		return 0
	}
	t := (v - rng.Min) / rng.Span()
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// ColorOf maps a scalar to RGB. NaN (missing data) yields SentinelColor.
func (cm *ColorMap) ColorOf(v float64, rng Range) color.RGBA {
	if math.IsNaN(v) {
		return SentinelColor
	}
	t := cm.Position(v, rng)
	n := len(cm.table)
	if cm.banded {
		i := int(t * float64(n))
		if i >= n {
			i = n - 1
		}
		return cm.table[i]
	}
	// Piecewise-linear interpolation between adjacent table entries
	f := t * float64(n-1)
	i := int(f)
	if i >= n-1 {
		return cm.table[n-1]
	}
	w := f - float64(i)
	a, b := cm.table[i], cm.table[i+1]
	return color.RGBA{
		R: lerp8(a.R, b.R, w),
		G: lerp8(a.G, b.G, w),
		B: lerp8(a.B, b.B, w),
		A: 255,
	}
}

func lerp8(a, b uint8, w float64) uint8 {
	return uint8(float64(a) + w*(float64(b)-float64(a)) + 0.5)
}

// rainbowTable samples an HSV sweep from hue 240 (blue) down to 0 (red)
// at full saturation and value
func rainbowTable(n int) []color.RGBA {
	table := make([]color.RGBA, n)
	for i := range table {
		h := 240.0 * (1.0 - float64(i)/float64(n-1))
		table[i] = hsvToRGB(h, 1, 1)
	}
	return table
}

// abaqusTable is the 12-color contour ramp, low blue to high red
func abaqusTable() []color.RGBA {
	rgb := [12][3]float64{
		{0, 0, 1}, {0, 0.3647, 1}, {0, 0.725, 1}, {0, 1, 0.910},
		{0, 1, 0.545}, {0, 1, 0.180}, {0.176, 1, 0}, {0.545, 1, 0},
		{0.9098, 1, 0}, {1, 0.7255, 0}, {1, 0.3647, 0}, {1, 0, 0},
	}
	table := make([]color.RGBA, len(rgb))
	for i, c := range rgb {
		table[i] = color.RGBA{
			R: uint8(c[0]*255 + 0.5),
			G: uint8(c[1]*255 + 0.5),
			B: uint8(c[2]*255 + 0.5),
			A: 255,
		}
	}
	return table
}

func hsvToRGB(h, s, v float64) color.RGBA {
	c := v * s
	hp := h / 60.0
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := v - c
	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}
