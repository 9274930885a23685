package lut

import "math"

// Tone region centres on the luminance axis, in ascending order. Each
// region's weight is 1 at its own centre and fades to 0 at the neighbouring
// centres, so no weight reaches further than two quartiles (0.5).
var (
	toneCenters  = [4]float64{0, 0.25, 0.75, 1} // blacks, shadows, highlights, whites
	wheelCenters = [3]float64{0, 0.5, 1}        // shadows, midtones, highlights
)

// ToneWeights returns the blacks, shadows, highlights and whites weights for
// luminance l. The weights sum to 1 for every l.
func ToneWeights(l float64) [4]float64 {
	var w [4]float64
	regionWeights(l, toneCenters[:], w[:])
	return w
}

// WheelWeights returns the shadows, midtones and highlights weights for
// luminance l. The weights sum to 1 for every l.
func WheelWeights(l float64) [3]float64 {
	var w [3]float64
	regionWeights(l, wheelCenters[:], w[:])
	return w
}

// regionWeights cross-fades between the two centres bracketing l. Only those
// two regions get weight; below the first or above the last centre the
// outermost region takes all of it.
func regionWeights(l float64, centers, out []float64) {
	l = clamp01(l)
	for i := range out {
		out[i] = 0
	}
	last := len(centers) - 1
	switch {
	case l <= centers[0]:
		out[0] = 1
		return
	case l >= centers[last]:
		out[last] = 1
		return
	}
	k := 0
	for k < last-1 && l >= centers[k+1] {
		k++
	}
	s := cosineEase((l - centers[k]) / (centers[k+1] - centers[k]))
	out[k] = 1 - s
	out[k+1] = s
}

// cosineEase rises smoothly from 0 at t=0 to 1 at t=1 with zero slope at both ends
func cosineEase(t float64) float64 {
	t = clamp01(t)
	return 0.5 * (1 - math.Cos(math.Pi*t))
}
