package lut

import "math"

// Rec. 709 luma coefficients
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

// RGB is a colour with channels nominally in [0,1]. Pipeline stages may push
// channels outside that range; Clamp brings them back.
type RGB struct {
	R, G, B float64
}

// Gray returns an RGB with all channels set to v
func Gray(v float64) RGB {
	return RGB{v, v, v}
}

// Luminance returns the Rec. 709 weighted sum of the channels
func Luminance(c RGB) float64 {
	return LumaR*c.R + LumaG*c.G + LumaB*c.B
}

// Clamp limits every channel to [0,1]
func (c RGB) Clamp() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Add returns the channel-wise sum
func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale multiplies every channel by s
func (c RGB) Scale(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Max returns the largest channel
func (c RGB) Max() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// Min returns the smallest channel
func (c RGB) Min() float64 {
	return math.Min(c.R, math.Min(c.G, c.B))
}

// IsFinite reports whether no channel is NaN or infinite
func (c RGB) IsFinite() bool {
	return isFinite(c.R) && isFinite(c.G) && isFinite(c.B)
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
