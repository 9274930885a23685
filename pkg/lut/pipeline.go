package lut

import (
	"fmt"
	"math"
)

const (
	whiteBalanceScale = 0.25 // channel gain at temperature/tint = ±100
	toneScale         = 0.25 // offset at a tone slider of ±100 and full region weight
)

// Transform maps one colour through the grade. Stages run in a fixed order:
// white balance, exposure, tone regions, contrast, colour wheels, saturation,
// vibrance. The result is not clamped so wheel offsets keep their headroom;
// callers storing or displaying the colour clamp it.
func Transform(c RGB, adj Adjustments) RGB {
	c = whiteBalance(c, adj.Temperature, adj.Tint)
	c = exposure(c, adj.Exposure)
	c = toneRegions(c, adj)
	c = contrast(c, adj.Contrast)
	c = colorWheels(c, adj.Wheels)
	c = saturation(c, adj.Saturation)
	c = vibrance(c, adj.Vibrance)
	return c
}

func whiteBalance(c RGB, temperature, tint float64) RGB {
	if temperature == 0 && tint == 0 {
		return c
	}
	t := whiteBalanceScale * temperature / MaxSlider
	m := whiteBalanceScale * tint / MaxSlider
	// warm pushes red up and blue down; magenta pulls green against red+blue
	c.R *= (1 + t) * (1 + m/2)
	c.G *= 1 - m
	c.B *= (1 - t) * (1 + m/2)
	return c
}

func exposure(c RGB, stops float64) RGB {
	if stops == 0 {
		return c
	}
	return c.Scale(math.Pow(2, stops))
}

func toneRegions(c RGB, adj Adjustments) RGB {
	w := ToneWeights(Luminance(c))
	offset := toneScale / MaxSlider * (w[0]*adj.Blacks + w[1]*adj.Shadows + w[2]*adj.Highlights + w[3]*adj.Whites)
	return c.Add(Gray(offset))
}

func contrast(c RGB, amount float64) RGB {
	if amount == 0 {
		return c
	}
	k := 1 + amount/MaxSlider
	return RGB{
		0.5 + (c.R-0.5)*k,
		0.5 + (c.G-0.5)*k,
		0.5 + (c.B-0.5)*k,
	}
}

func colorWheels(c RGB, wheels ColorWheels) RGB {
	w := WheelWeights(Luminance(c))
	c = c.Add(wheels.Shadows.RGB().Scale(w[0]))
	c = c.Add(wheels.Midtones.RGB().Scale(w[1]))
	c = c.Add(wheels.Highlights.RGB().Scale(w[2]))
	return c
}

func saturation(c RGB, amount float64) RGB {
	if amount == 0 {
		return c
	}
	return chromaBlend(c, 1+amount/MaxSlider)
}

func vibrance(c RGB, amount float64) RGB {
	if amount == 0 {
		return c
	}
	est := clamp01(c.Max() - c.Min())
	return chromaBlend(c, 1+amount/MaxSlider*(1-est))
}

// chromaBlend scales the distance of each channel from the luminance
func chromaBlend(c RGB, k float64) RGB {
	l := Luminance(c)
	return RGB{
		l + (c.R-l)*k,
		l + (c.G-l)*k,
		l + (c.B-l)*k,
	}
}

// Pipeline binds a normalized record to the transform. It is the single entry
// point shared by the lattice sampler and the preview renderer.
type Pipeline struct {
	adj Adjustments
}

// NewPipeline normalizes adj and binds it
func NewPipeline(adj Adjustments) (*Pipeline, error) {
	n, err := adj.Normalize()
	if err != nil {
		return nil, err
	}
	return &Pipeline{adj: n}, nil
}

// Adjustments returns the normalized record
func (p *Pipeline) Adjustments() Adjustments {
	return p.adj
}

// Transform returns the unclamped result for c
func (p *Pipeline) Transform(c RGB) RGB {
	return Transform(c, p.adj)
}

// Apply returns the result for c clamped to [0,1]. A non-finite result cannot
// happen for a normalized record; it is mapped to the clamped input instead.
func (p *Pipeline) Apply(c RGB) RGB {
	out := Transform(c, p.adj)
	if !out.IsFinite() {
		return c.Clamp()
	}
	return out.Clamp()
}

func (p *Pipeline) String() string {
	return fmt.Sprintf("pipeline(%s)", p.adj.ID())
}
