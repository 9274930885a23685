package lut

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridColors walks an n×n×n grid of the unit cube
func gridColors(n int) []RGB {
	var out []RGB
	for b := 0; b < n; b++ {
		for g := 0; g < n; g++ {
			for r := 0; r < n; r++ {
				out = append(out, RGB{
					float64(r) / float64(n-1),
					float64(g) / float64(n-1),
					float64(b) / float64(n-1),
				})
			}
		}
	}
	return out
}

func extremeRecords() map[string]Adjustments {
	return map[string]Adjustments{
		"all max": {
			Temperature: 100, Tint: 100, Exposure: 2, Contrast: 100,
			Highlights: 100, Shadows: 100, Whites: 100, Blacks: 100,
			Saturation: 100, Vibrance: 100,
			Wheels: ColorWheels{Shadows: Wheel{1, 1, 1}, Midtones: Wheel{1, 1, 1}, Highlights: Wheel{1, 1, 1}},
		},
		"all min": {
			Temperature: -100, Tint: -100, Exposure: -2, Contrast: -100,
			Highlights: -100, Shadows: -100, Whites: -100, Blacks: -100,
			Saturation: -100, Vibrance: -100,
			Wheels: ColorWheels{Shadows: Wheel{-1, -1, -1}, Midtones: Wheel{-1, -1, -1}, Highlights: Wheel{-1, -1, -1}},
		},
		"mixed": {
			Temperature: 100, Tint: -100, Exposure: 2, Contrast: -50,
			Highlights: -100, Shadows: 100, Whites: -100, Blacks: 100,
			Saturation: 100, Vibrance: -100,
			Wheels: ColorWheels{Shadows: Wheel{1, -1, 0}, Midtones: Wheel{0, 1, -1}, Highlights: Wheel{-1, 0, 1}},
		},
	}
}

func TestTransform_Identity(t *testing.T) {
	for _, c := range gridColors(9) {
		out := Transform(c, Neutral())
		assert.Equal(t, c, out, "neutral record must not change %v", c)
	}
}

func TestTransform_Finite(t *testing.T) {
	for name, adj := range extremeRecords() {
		t.Run(name, func(t *testing.T) {
			for _, c := range gridColors(7) {
				out := Transform(c, adj)
				require.True(t, out.IsFinite(), "non-finite output %v for %v", out, c)
			}
		})
	}
}

func TestTransform_ContrastPivot(t *testing.T) {
	mid := Gray(0.5)
	for _, amount := range []float64{-100, -60, -1, 0, 1, 33, 100} {
		out := Transform(mid, Adjustments{Contrast: amount})
		assert.InDelta(t, 0.5, out.R, 1e-12, "contrast %v", amount)
		assert.InDelta(t, 0.5, out.G, 1e-12, "contrast %v", amount)
		assert.InDelta(t, 0.5, out.B, 1e-12, "contrast %v", amount)
	}
}

func TestTransform_ContrastSpreadsAroundPivot(t *testing.T) {
	out := Transform(Gray(0.25), Adjustments{Contrast: 20})
	assert.InDelta(t, 0.2, out.R, 1e-12)
	out = Transform(Gray(0.75), Adjustments{Contrast: 20})
	assert.InDelta(t, 0.8, out.R, 1e-12)
}

func TestTransform_FullDesaturation(t *testing.T) {
	adj := Adjustments{Saturation: -100, Temperature: 30, Contrast: 15, Wheels: ColorWheels{Midtones: Wheel{0.2, -0.1, 0.05}}}
	for _, c := range gridColors(6) {
		out := Transform(c, adj)
		assert.Equal(t, out.R, out.G, "input %v", c)
		assert.Equal(t, out.G, out.B, "input %v", c)
	}
}

func TestTransform_DesaturationKeepsLuminance(t *testing.T) {
	c := RGB{0.9, 0.3, 0.1}
	out := Transform(c, Adjustments{Saturation: -100})
	assert.InDelta(t, Luminance(c), out.R, 1e-12)
}

func TestTransform_Saturation(t *testing.T) {
	c := RGB{0.6, 0.4, 0.3}
	out := Transform(c, Adjustments{Saturation: 50})
	l := Luminance(c)
	assert.InDelta(t, l, Luminance(out), 1e-12, "chroma blend preserves luminance")
	assert.Greater(t, out.Max()-out.Min(), c.Max()-c.Min())
}

func TestTransform_VibranceProtectsSaturated(t *testing.T) {
	muted := RGB{0.55, 0.5, 0.45}
	vivid := RGB{0.95, 0.3, 0.1}
	adj := Adjustments{Vibrance: 100}

	mutedGain := spread(Transform(muted, adj)) / spread(muted)
	vividGain := spread(Transform(vivid, adj)) / spread(vivid)
	assert.Greater(t, mutedGain, vividGain)

	// uniform saturation treats both the same
	sat := Adjustments{Saturation: 100}
	assert.InDelta(t, spread(Transform(muted, sat))/spread(muted), spread(Transform(vivid, sat))/spread(vivid), 1e-9)
}

func spread(c RGB) float64 {
	return c.Max() - c.Min()
}

func TestTransform_Exposure(t *testing.T) {
	out := Transform(Gray(0.2), Adjustments{Exposure: 1})
	assert.InDelta(t, 0.4, out.R, 1e-12)
	out = Transform(Gray(0.2), Adjustments{Exposure: -2})
	assert.InDelta(t, 0.05, out.G, 1e-12)
}

func TestTransform_WhiteBalance(t *testing.T) {
	tests := []struct {
		name  string
		adj   Adjustments
		check func(t *testing.T, in, out RGB)
	}{
		{"warm", Adjustments{Temperature: 100}, func(t *testing.T, in, out RGB) {
			assert.InDelta(t, in.R*1.25, out.R, 1e-12)
			assert.InDelta(t, in.B*0.75, out.B, 1e-12)
			assert.Equal(t, in.G, out.G)
		}},
		{"cool", Adjustments{Temperature: -100}, func(t *testing.T, in, out RGB) {
			assert.Less(t, out.R, in.R)
			assert.Greater(t, out.B, in.B)
		}},
		{"magenta", Adjustments{Tint: 100}, func(t *testing.T, in, out RGB) {
			assert.InDelta(t, in.G*0.75, out.G, 1e-12)
			assert.Greater(t, out.R, in.R)
			assert.Greater(t, out.B, in.B)
		}},
		{"green", Adjustments{Tint: -100}, func(t *testing.T, in, out RGB) {
			assert.Greater(t, out.G, in.G)
			assert.Less(t, out.R, in.R)
		}},
	}
	in := Gray(0.6)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, in, Transform(in, tt.adj))
		})
	}
}

func TestTransform_WhiteBalanceKeepsBlack(t *testing.T) {
	out := Transform(RGB{}, Adjustments{Temperature: 100, Tint: -100, Exposure: 2})
	assert.Equal(t, RGB{}, out)
}

func TestTransform_ToneRegionsAreLocal(t *testing.T) {
	dark := Gray(0.05)
	bright := Gray(0.95)

	blacks := Adjustments{Blacks: 100}
	assert.Greater(t, Transform(dark, blacks).R, dark.R)
	assert.InDelta(t, bright.R, Transform(bright, blacks).R, 1e-12, "blacks has no weight at high luminance")

	whites := Adjustments{Whites: -100}
	assert.Less(t, Transform(bright, whites).R, bright.R)
	assert.InDelta(t, dark.R, Transform(dark, whites).R, 1e-12, "whites has no weight at low luminance")

	// shadows act fully at their centre and leave black untouched
	shadows := Adjustments{Shadows: 100}
	assert.InDelta(t, 0.5, Transform(Gray(0.25), shadows).R, 1e-12)
	assert.Greater(t, Transform(Gray(0.25), shadows).R-0.25, Transform(Gray(0.35), shadows).R-0.35)
	assert.Equal(t, RGB{}, Transform(RGB{}, shadows))

	highlights := Adjustments{Highlights: -100}
	assert.InDelta(t, 0.5, Transform(Gray(0.75), highlights).R, 1e-12)
	assert.InDelta(t, 1, Transform(Gray(1), highlights).B, 1e-12)
}

func TestTransform_ColorWheels(t *testing.T) {
	adj := Adjustments{Wheels: ColorWheels{
		Shadows:    Wheel{0, 0, 0.2},
		Highlights: Wheel{0.2, 0, 0},
	}}
	black := Transform(RGB{}, adj)
	assert.InDelta(t, 0.2, black.B, 1e-12, "shadow wheel has full weight at black")
	assert.InDelta(t, 0, black.R, 1e-12)

	white := Transform(Gray(1), adj)
	assert.InDelta(t, 1.2, white.R, 1e-12, "output is not clamped inside the pipeline")
	assert.InDelta(t, 1, white.B, 1e-12)

	mid := Transform(Gray(0.5), Adjustments{Wheels: ColorWheels{Midtones: Wheel{-0.1, 0.1, 0}}})
	assert.InDelta(t, 0.4, mid.R, 1e-12)
	assert.InDelta(t, 0.6, mid.G, 1e-12)
}

func TestTransform_StageOrder(t *testing.T) {
	// exposure runs before contrast; the other order lands somewhere else
	c := RGB{0.7, 0.4, 0.2}
	adj := Adjustments{Exposure: 1, Contrast: 50}
	got := Transform(c, adj)
	assert.Equal(t, contrast(exposure(c, 1), 50), got)
	swapped := exposure(contrast(c, 50), 1)
	assert.InDelta(t, 1.85, got.R, 1e-12)
	assert.InDelta(t, 1.6, swapped.R, 1e-12)
}

func TestTransform_WarmExample(t *testing.T) {
	adj := Adjustments{Temperature: 25, Contrast: 20}

	white := Transform(Gray(1), adj)
	assert.Greater(t, white.R, 1.0, "red pushed up")
	assert.Less(t, white.B, white.R, "blue pulled down against red")
	assert.InDelta(t, 0.5+(1.0625-0.5)*1.2, white.R, 1e-12)
	assert.InDelta(t, 0.5+(0.9375-0.5)*1.2, white.B, 1e-12)

	black := Transform(RGB{}, adj).Clamp()
	assert.InDelta(t, 0, black.R, 1e-12)
	assert.InDelta(t, 0, black.G, 1e-12)
	assert.InDelta(t, 0, black.B, 1e-12)
}

func TestPipeline(t *testing.T) {
	p, err := NewPipeline(Adjustments{Exposure: 9, Contrast: -300})
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Adjustments().Exposure)
	assert.Equal(t, -100.0, p.Adjustments().Contrast)

	out := p.Apply(Gray(0.9))
	assert.Equal(t, Gray(0.5), out, "contrast -100 collapses to the pivot")
	assert.Contains(t, p.String(), p.Adjustments().ID())

	_, err = NewPipeline(Adjustments{Tint: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestPipeline_ApplyClamps(t *testing.T) {
	p, err := NewPipeline(Adjustments{Exposure: 2})
	require.NoError(t, err)
	assert.Equal(t, Gray(1), p.Apply(Gray(0.8)))
	assert.Equal(t, p.Transform(Gray(0.8)), Gray(3.2))
}
