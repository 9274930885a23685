package lut

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Clamps(t *testing.T) {
	in := Adjustments{
		BaseStyle:   "loud",
		Temperature: 250,
		Tint:        -101,
		Exposure:    math.Inf(1),
		Contrast:    math.Inf(-1),
		Saturation:  42,
		Wheels:      ColorWheels{Shadows: Wheel{2, -3, 0.5}},
	}
	out, err := in.Normalize()
	require.NoError(t, err)

	assert.Equal(t, "loud", out.BaseStyle)
	assert.Equal(t, 100.0, out.Temperature)
	assert.Equal(t, -100.0, out.Tint)
	assert.Equal(t, 2.0, out.Exposure)
	assert.Equal(t, -100.0, out.Contrast)
	assert.Equal(t, 42.0, out.Saturation)
	assert.Equal(t, Wheel{1, -1, 0.5}, out.Wheels.Shadows)
	assert.True(t, out.IsNormalized())

	// the receiver is a copy
	assert.Equal(t, 250.0, in.Temperature)
	assert.False(t, in.IsNormalized())
}

func TestNormalize_InRange(t *testing.T) {
	in := Adjustments{BaseStyle: "mild", Temperature: 100, Exposure: -2, Vibrance: 35,
		Wheels: ColorWheels{Highlights: Wheel{R: 1, G: -1}}}
	require.True(t, in.IsNormalized())
	out, err := in.Normalize()
	require.NoError(t, err)
	assert.Equal(t, in, out)

	assert.False(t, Adjustments{Saturation: math.NaN()}.IsNormalized())
	assert.False(t, Adjustments{Exposure: math.Inf(1)}.IsNormalized())
}

func TestNormalize_NaN(t *testing.T) {
	_, err := Adjustments{Vibrance: math.NaN()}.Normalize()
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Contains(t, err.Error(), "vibrance")

	_, err = Adjustments{Wheels: ColorWheels{Highlights: Wheel{B: math.NaN()}}}.Normalize()
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Contains(t, err.Error(), "color_wheels.highlights.b")
}

func TestIsNeutral(t *testing.T) {
	assert.True(t, Neutral().IsNeutral())
	assert.True(t, Adjustments{BaseStyle: "label only"}.IsNeutral())
	assert.False(t, Adjustments{Wheels: ColorWheels{Midtones: Wheel{G: 0.01}}}.IsNeutral())
}

func TestAdjustmentsID(t *testing.T) {
	a := Adjustments{Contrast: 20}
	assert.Equal(t, a.ID(), Adjustments{Contrast: 20}.ID())
	assert.NotEqual(t, a.ID(), Adjustments{Contrast: 21}.ID())
	assert.Len(t, a.ID(), 36)
}

func TestRGBHelpers(t *testing.T) {
	c := RGB{1.5, -0.2, 0.4}
	assert.Equal(t, RGB{1, 0, 0.4}, c.Clamp())
	assert.Equal(t, 1.5, c.Max())
	assert.Equal(t, -0.2, c.Min())
	assert.True(t, c.IsFinite())
	assert.False(t, RGB{math.NaN(), 0, 0}.IsFinite())
	assert.InDelta(t, 1, Luminance(Gray(1)), 1e-12)
}
