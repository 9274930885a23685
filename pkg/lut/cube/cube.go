// Package cube reads and writes 3D LUTs in the .cube text format:
//
//	# optional comments
//	TITLE "Warm film"
//	LUT_3D_SIZE 33
//
//	0.000000 0.000000 0.000000
//	...
//
// Data lines follow the lattice order, red varying fastest and blue slowest.
package cube

import (
	"fmt"
	"strings"

	"github.com/jpfielding/lut.go/pkg/lut"
	"github.com/jpfielding/lut.go/pkg/lut/lattice"
)

// Keywords understood by the reader
const (
	KeyTitle      = "TITLE"
	KeySize3D     = "LUT_3D_SIZE"
	KeySize1D     = "LUT_1D_SIZE"
	KeyDomainMin  = "DOMAIN_MIN"
	KeyDomainMax  = "DOMAIN_MAX"
	KeyInputRange = "LUT_3D_INPUT_RANGE"
)

// Precision is the number of decimals written per channel
const Precision = 6

// Document is a parsed or to-be-written .cube file
type Document struct {
	Title   string
	Lattice *lattice.Lattice
	// Input domain; nil means the default [0,1] cube
	DomainMin *lut.RGB
	DomainMax *lut.RGB
}

// NewDocument pairs a lattice with a title
func NewDocument(title string, l *lattice.Lattice) *Document {
	return &Document{Title: title, Lattice: l}
}

// Domain returns the input domain, defaulting to [0,1]
func (d *Document) Domain() (lo, hi lut.RGB) {
	lo, hi = lut.Gray(0), lut.Gray(1)
	if d.DomainMin != nil {
		lo = *d.DomainMin
	}
	if d.DomainMax != nil {
		hi = *d.DomainMax
	}
	return lo, hi
}

// HasDefaultDomain reports whether the domain is the [0,1] cube
func (d *Document) HasDefaultDomain() bool {
	lo, hi := d.Domain()
	return lo == lut.Gray(0) && hi == lut.Gray(1)
}

// validateTitle rejects titles the quoted TITLE line cannot carry
func validateTitle(title string) error {
	if strings.ContainsAny(title, "\"\r\n") {
		return fmt.Errorf("%w: title %q must not contain quotes or line breaks", lut.ErrInvalidParameter, title)
	}
	return nil
}

// ParseError reports a malformed line. It matches lut.ErrMalformedDocument.
type ParseError struct {
	Line int // 1-based, 0 when the problem is not tied to a line
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cube: line %d: %s", e.Line, e.Msg)
	}
	return "cube: " + e.Msg
}

// Unwrap lets errors.Is match lut.ErrMalformedDocument
func (e *ParseError) Unwrap() error {
	return lut.ErrMalformedDocument
}

func malformed(line int, format string, args ...any) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
