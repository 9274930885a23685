package lut

import (
	"fmt"
	"math"

	"github.com/jpfielding/lut.go/pkg/util"
)

// Documented ranges for the adjustment fields
const (
	MaxSlider   = 100.0 // temperature, tint, contrast, tone regions, saturation, vibrance
	MaxExposure = 2.0   // stops
	MaxWheel    = 1.0   // colour wheel channel offset
)

// Wheel is an additive RGB offset applied to one tone region
type Wheel struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGB returns the wheel offset as a colour
func (w Wheel) RGB() RGB {
	return RGB{w.R, w.G, w.B}
}

// ColorWheels holds the shadow, midtone and highlight offsets
type ColorWheels struct {
	Shadows    Wheel `json:"shadows"`
	Midtones   Wheel `json:"midtones"`
	Highlights Wheel `json:"highlights"`
}

// Adjustments is the grading record consumed by the colour pipeline.
// It is passed by value so the pipeline can never modify the caller's copy.
// Construct through Normalize (or Document.Record) so every field is
// inside its documented range.
type Adjustments struct {
	BaseStyle   string      `json:"base_style,omitempty"`
	Temperature float64     `json:"temperature"`
	Tint        float64     `json:"tint"`
	Exposure    float64     `json:"exposure"`
	Contrast    float64     `json:"contrast"`
	Highlights  float64     `json:"highlights"`
	Shadows     float64     `json:"shadows"`
	Whites      float64     `json:"whites"`
	Blacks      float64     `json:"blacks"`
	Saturation  float64     `json:"saturation"`
	Vibrance    float64     `json:"vibrance"`
	Wheels      ColorWheels `json:"color_wheels"`
}

// Neutral returns the identity record
func Neutral() Adjustments {
	return Adjustments{}
}

// fields lists every numeric field with its name and limit, in declaration order
func (a *Adjustments) fields() []struct {
	name  string
	v     *float64
	limit float64
} {
	type field = struct {
		name  string
		v     *float64
		limit float64
	}
	return []field{
		{"temperature", &a.Temperature, MaxSlider},
		{"tint", &a.Tint, MaxSlider},
		{"exposure", &a.Exposure, MaxExposure},
		{"contrast", &a.Contrast, MaxSlider},
		{"highlights", &a.Highlights, MaxSlider},
		{"shadows", &a.Shadows, MaxSlider},
		{"whites", &a.Whites, MaxSlider},
		{"blacks", &a.Blacks, MaxSlider},
		{"saturation", &a.Saturation, MaxSlider},
		{"vibrance", &a.Vibrance, MaxSlider},
		{"color_wheels.shadows.r", &a.Wheels.Shadows.R, MaxWheel},
		{"color_wheels.shadows.g", &a.Wheels.Shadows.G, MaxWheel},
		{"color_wheels.shadows.b", &a.Wheels.Shadows.B, MaxWheel},
		{"color_wheels.midtones.r", &a.Wheels.Midtones.R, MaxWheel},
		{"color_wheels.midtones.g", &a.Wheels.Midtones.G, MaxWheel},
		{"color_wheels.midtones.b", &a.Wheels.Midtones.B, MaxWheel},
		{"color_wheels.highlights.r", &a.Wheels.Highlights.R, MaxWheel},
		{"color_wheels.highlights.g", &a.Wheels.Highlights.G, MaxWheel},
		{"color_wheels.highlights.b", &a.Wheels.Highlights.B, MaxWheel},
	}
}

// Normalize returns a copy with every field clamped to its documented range.
// Out of range values, infinities included, are clamped. NaN has no sensible
// clamp target and is rejected with ErrInvalidParameter.
func (a Adjustments) Normalize() (Adjustments, error) {
	if a.IsNormalized() {
		return a, nil
	}
	out := a
	for _, f := range out.fields() {
		if math.IsNaN(*f.v) {
			return Adjustments{}, fmt.Errorf("%w: %s is NaN", ErrInvalidParameter, f.name)
		}
		*f.v = clamp(*f.v, -f.limit, f.limit)
	}
	return out, nil
}

// IsNormalized reports whether every field is finite and within range
func (a Adjustments) IsNormalized() bool {
	for _, f := range a.fields() {
		if !isFinite(*f.v) || *f.v < -f.limit || *f.v > f.limit {
			return false
		}
	}
	return true
}

// IsNeutral reports whether the record leaves every colour unchanged
func (a Adjustments) IsNeutral() bool {
	for _, f := range a.fields() {
		if *f.v != 0 {
			return false
		}
	}
	return true
}

// ID is a stable identifier derived from the record content
func (a Adjustments) ID() string {
	return util.HashUUID(a)
}
