package lattice

import (
	"math"
	"testing"

	"github.com/jpfielding/lut.go/pkg/lut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_NeutralIsIdentity(t *testing.T) {
	got, err := Sample(17, lut.Neutral(), nil)
	require.NoError(t, err)
	want, err := Identity(17)
	require.NoError(t, err)
	assert.Zero(t, want.MaxDeviation(got))
}

func TestSample_SizeBounds(t *testing.T) {
	_, err := Sample(1, lut.Neutral(), nil)
	assert.ErrorIs(t, err, lut.ErrInvalidParameter)

	_, err = Sample(40, lut.Neutral(), &Options{MaxSize: 33})
	assert.ErrorIs(t, err, lut.ErrResourceExceeded)
	assert.ErrorIs(t, err, lut.ErrInvalidParameter)

	_, err = Sample(MaxSize+1, lut.Neutral(), nil)
	assert.ErrorIs(t, err, lut.ErrResourceExceeded)
}

func TestSample_RejectsNaN(t *testing.T) {
	_, err := Sample(4, lut.Adjustments{Exposure: math.NaN()}, nil)
	assert.ErrorIs(t, err, lut.ErrInvalidParameter)
}

func TestSample_WorkerCountDoesNotMatter(t *testing.T) {
	adj := lut.Adjustments{
		Temperature: -35, Tint: 12, Exposure: 0.4, Contrast: 30,
		Shadows: 20, Highlights: -40, Saturation: 15, Vibrance: 25,
		Wheels: lut.ColorWheels{Shadows: lut.Wheel{R: 0, G: 0.03, B: 0.08}, Highlights: lut.Wheel{R: 0.06, G: 0.02, B: 0}},
	}
	serial, err := Sample(21, adj, &Options{Workers: 1})
	require.NoError(t, err)
	for _, workers := range []int{2, 3, 8, 64} {
		parallel, err := Sample(21, adj, &Options{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, serial.Data, parallel.Data, "workers=%d", workers)
	}
}

func TestSample_MatchesPipeline(t *testing.T) {
	adj := lut.Adjustments{Temperature: 60, Exposure: -0.5, Blacks: 30, Saturation: 40}
	l, err := Sample(6, adj, nil)
	require.NoError(t, err)
	for i := 0; i < l.Len(); i++ {
		want := lut.Transform(l.Input(i), adj).Clamp()
		got := l.Node(i)
		assert.InDelta(t, want.R, got.R, 1e-7)
		assert.InDelta(t, want.G, got.G, 1e-7)
		assert.InDelta(t, want.B, got.B, 1e-7)
	}
}

func TestSample_Clamped(t *testing.T) {
	adj := lut.Adjustments{Exposure: 2, Contrast: 100, Saturation: 100, Wheels: lut.ColorWheels{Highlights: lut.Wheel{R: 1, G: -1, B: 1}}}
	l, err := Sample(9, adj, nil)
	require.NoError(t, err)
	for _, v := range l.Data {
		require.GreaterOrEqual(t, v, float32(0))
		require.LessOrEqual(t, v, float32(1))
	}
}

func TestSample_WarmContrastExample(t *testing.T) {
	adj := lut.Adjustments{Temperature: 25, Contrast: 20}
	l, err := Sample(2, adj, nil)
	require.NoError(t, err)

	black := l.At(0, 0, 0)
	assert.InDelta(t, 0, black.R, 1e-9)
	assert.InDelta(t, 0, black.G, 1e-9)
	assert.InDelta(t, 0, black.B, 1e-9)

	white := l.At(1, 1, 1)
	assert.GreaterOrEqual(t, white.R, white.B)

	// without contrast the warm shift is visible below the clip
	warm, err := Sample(2, lut.Adjustments{Temperature: 25}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, warm.At(1, 1, 1).R)
	assert.InDelta(t, 0.9375, warm.At(1, 1, 1).B, 1e-7)
}

func TestSampleFunc(t *testing.T) {
	invert := func(c lut.RGB) lut.RGB { return lut.RGB{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B} }
	l, err := SampleFunc(3, invert, nil)
	require.NoError(t, err)
	assert.Equal(t, lut.Gray(1), l.At(0, 0, 0))
	assert.Equal(t, lut.RGB{R: 0, G: 0.5, B: 1}, l.At(2, 1, 0))
}
