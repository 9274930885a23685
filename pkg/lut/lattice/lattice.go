// Package lattice holds the N×N×N colour lattice behind a 3D LUT and the
// sampler that fills it from the colour pipeline.
package lattice

import (
	"fmt"
	"math"

	"github.com/jpfielding/lut.go/pkg/lut"
)

// Size limits
const (
	MinSize     = 2   // below this there is no interpolation grid
	DefaultSize = 32  // typical export size
	ProSize     = 65  // common professional size
	MaxSize     = 256 // 256³ nodes × 3 × float32 ≈ 200MB
)

// Lattice is an N×N×N grid of RGB nodes stored as float32 triples.
// Node i lives at Data[3i:3i+3] with i = r + g*N + b*N², red varying fastest.
// This is the order of the .cube format and must not change.
type Lattice struct {
	Size int
	Data []float32
}

// New allocates a zeroed lattice of the given size
func New(size int) (*Lattice, error) {
	if err := CheckSize(size, MaxSize); err != nil {
		return nil, err
	}
	return &Lattice{
		Size: size,
		Data: make([]float32, 3*size*size*size),
	}, nil
}

// CheckSize validates size against MinSize and the ceiling
func CheckSize(size, ceiling int) error {
	if size < MinSize {
		return fmt.Errorf("%w: lattice size %d is below %d", lut.ErrInvalidParameter, size, MinSize)
	}
	if ceiling <= 0 || ceiling > MaxSize {
		ceiling = MaxSize
	}
	if size > ceiling {
		return fmt.Errorf("%w: %w: lattice size %d exceeds %d", lut.ErrInvalidParameter, lut.ErrResourceExceeded, size, ceiling)
	}
	return nil
}

// Identity returns the lattice whose node (r,g,b) holds (r,g,b)/(N-1)
func Identity(size int) (*Lattice, error) {
	l, err := New(size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < l.Len(); i++ {
		l.SetNode(i, l.Input(i))
	}
	return l, nil
}

// Len returns the number of nodes, N³
func (l *Lattice) Len() int {
	return l.Size * l.Size * l.Size
}

// Index returns the node index of lattice coordinates (r,g,b)
func (l *Lattice) Index(r, g, b int) int {
	return r + g*l.Size + b*l.Size*l.Size
}

// Coords splits a node index into lattice coordinates
func (l *Lattice) Coords(i int) (r, g, b int) {
	n := l.Size
	return i % n, (i / n) % n, i / (n * n)
}

// Input returns the identity colour of node i, the colour the node maps from
func (l *Lattice) Input(i int) lut.RGB {
	r, g, b := l.Coords(i)
	n := float64(l.Size - 1)
	return lut.RGB{R: float64(r) / n, G: float64(g) / n, B: float64(b) / n}
}

// Node returns the colour stored at node i
func (l *Lattice) Node(i int) lut.RGB {
	d := l.Data[3*i : 3*i+3]
	return lut.RGB{R: float64(d[0]), G: float64(d[1]), B: float64(d[2])}
}

// SetNode stores c at node i
func (l *Lattice) SetNode(i int, c lut.RGB) {
	d := l.Data[3*i : 3*i+3]
	d[0], d[1], d[2] = float32(c.R), float32(c.G), float32(c.B)
}

// At returns the colour at lattice coordinates (r,g,b)
func (l *Lattice) At(r, g, b int) lut.RGB {
	return l.Node(l.Index(r, g, b))
}

// Set stores c at lattice coordinates (r,g,b)
func (l *Lattice) Set(r, g, b int, c lut.RGB) {
	l.SetNode(l.Index(r, g, b), c)
}

// Lookup maps c through the lattice with trilinear interpolation, the way
// editors consume a .cube file. Inputs outside [0,1] are clamped.
func (l *Lattice) Lookup(c lut.RGB) lut.RGB {
	c = c.Clamp()
	scale := float64(l.Size - 1)
	r0, fr := split(c.R*scale, l.Size)
	g0, fg := split(c.G*scale, l.Size)
	b0, fb := split(c.B*scale, l.Size)

	lerp := func(a, b lut.RGB, t float64) lut.RGB {
		return lut.RGB{R: a.R + (b.R-a.R)*t, G: a.G + (b.G-a.G)*t, B: a.B + (b.B-a.B)*t}
	}
	c00 := lerp(l.At(r0, g0, b0), l.At(r0+1, g0, b0), fr)
	c10 := lerp(l.At(r0, g0+1, b0), l.At(r0+1, g0+1, b0), fr)
	c01 := lerp(l.At(r0, g0, b0+1), l.At(r0+1, g0, b0+1), fr)
	c11 := lerp(l.At(r0, g0+1, b0+1), l.At(r0+1, g0+1, b0+1), fr)
	return lerp(lerp(c00, c10, fg), lerp(c01, c11, fg), fb)
}

// split returns the lower cell index and the fraction into the cell, keeping
// the upper neighbour inside the lattice
func split(v float64, size int) (int, float64) {
	i := int(math.Floor(v))
	if i >= size-1 {
		i = size - 2
	}
	if i < 0 {
		i = 0
	}
	return i, v - float64(i)
}

// MaxDeviation returns the largest channel difference between l and o.
// Lattices of different sizes report +Inf.
func (l *Lattice) MaxDeviation(o *Lattice) float64 {
	if l.Size != o.Size || len(l.Data) != len(o.Data) {
		return math.Inf(1)
	}
	worst := 0.0
	for i := range l.Data {
		worst = math.Max(worst, math.Abs(float64(l.Data[i])-float64(o.Data[i])))
	}
	return worst
}

// Stats summarizes a lattice for inspection
type Stats struct {
	Min, Max      lut.RGB
	MeanDeviation float64 // mean absolute distance from the identity lattice, per channel
}

// Stats computes per-channel extremes and the mean distance from identity
func (l *Lattice) Stats() Stats {
	s := Stats{
		Min: lut.Gray(math.Inf(1)),
		Max: lut.Gray(math.Inf(-1)),
	}
	sum := 0.0
	for i := 0; i < l.Len(); i++ {
		c, in := l.Node(i), l.Input(i)
		s.Min = lut.RGB{R: math.Min(s.Min.R, c.R), G: math.Min(s.Min.G, c.G), B: math.Min(s.Min.B, c.B)}
		s.Max = lut.RGB{R: math.Max(s.Max.R, c.R), G: math.Max(s.Max.G, c.G), B: math.Max(s.Max.B, c.B)}
		sum += math.Abs(c.R-in.R) + math.Abs(c.G-in.G) + math.Abs(c.B-in.B)
	}
	s.MeanDeviation = sum / float64(3*l.Len())
	return s
}
