package cube

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jpfielding/lut.go/pkg/lut"
	"github.com/jpfielding/lut.go/pkg/lut/lattice"
)

const maxLineLength = 1 << 20

// Reader reads .cube documents
type Reader struct {
	sc      *bufio.Scanner
	line    int
	MaxSize int // largest LUT_3D_SIZE accepted (default: lattice.MaxSize)
}

// NewReader creates a new .cube reader
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &Reader{sc: sc, MaxSize: lattice.MaxSize}
}

// Read parses a complete .cube document
func Read(r io.Reader) (*Document, error) {
	return NewReader(r).ReadDocument()
}

// Parse parses .cube text held in memory
func Parse(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data))
}

// ReadFile parses the .cube file at path
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cube file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// ReadDocument reads header keywords, then exactly LUT_3D_SIZE³ data lines.
// Comments (#), blank lines and trailing whitespace are ignored.
func (r *Reader) ReadDocument() (*Document, error) {
	doc := &Document{}
	var (
		l        *lattice.Lattice
		titled   bool
		node     int
		inData   bool
		lastLine int
	)
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if vals, ok := parseTriple(fields); ok {
			if l == nil {
				return nil, malformed(r.line, "data before %s", KeySize3D)
			}
			if !finite(vals) {
				return nil, malformed(r.line, "non-finite value %q", text)
			}
			if node >= l.Len() {
				return nil, malformed(r.line, "more than %d data lines for %s %d", l.Len(), KeySize3D, l.Size)
			}
			l.SetNode(node, lut.RGB{R: vals[0], G: vals[1], B: vals[2]})
			node++
			inData = true
			lastLine = r.line
			continue
		}

		if _, err := strconv.ParseFloat(fields[0], 64); inData || err == nil {
			return nil, malformed(r.line, "expected three numbers, got %q", text)
		}
		switch key := fields[0]; key {
		case KeyTitle:
			if titled {
				return nil, malformed(r.line, "duplicate %s", KeyTitle)
			}
			titled = true
			doc.Title = parseTitle(strings.TrimSpace(strings.TrimPrefix(text, KeyTitle)))
		case KeySize3D:
			if l != nil {
				return nil, malformed(r.line, "duplicate %s", KeySize3D)
			}
			size, err := r.parseSize(fields)
			if err != nil {
				return nil, err
			}
			if l, err = lattice.New(size); err != nil {
				return nil, fmt.Errorf("cube: line %d: %w", r.line, err)
			}
		case KeyDomainMin, KeyDomainMax:
			if len(fields) != 4 {
				return nil, malformed(r.line, "%s needs three numbers", key)
			}
			vals, ok := parseTriple(fields[1:])
			if !ok || !finite(vals) {
				return nil, malformed(r.line, "%s needs three numbers", key)
			}
			c := lut.RGB{R: vals[0], G: vals[1], B: vals[2]}
			if key == KeyDomainMin {
				doc.DomainMin = &c
			} else {
				doc.DomainMax = &c
			}
		case KeyInputRange:
			lo, hi, err := r.parseRange(fields)
			if err != nil {
				return nil, err
			}
			doc.DomainMin, doc.DomainMax = &lo, &hi
		case KeySize1D:
			return nil, malformed(r.line, "1D LUTs are not supported")
		default:
			return nil, malformed(r.line, "unknown keyword %q", key)
		}
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("cube: reading line %d: %w", r.line+1, err)
	}

	if l == nil {
		return nil, malformed(0, "missing %s", KeySize3D)
	}
	if node != l.Len() {
		return nil, malformed(lastLine, "%s %d needs %d data lines, found %d", KeySize3D, l.Size, l.Len(), node)
	}
	lo, hi := doc.Domain()
	if lo.R >= hi.R || lo.G >= hi.G || lo.B >= hi.B {
		return nil, malformed(0, "empty domain %v..%v", lo, hi)
	}
	doc.Lattice = l
	return doc, nil
}

func (r *Reader) parseSize(fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, malformed(r.line, "%s needs one integer", KeySize3D)
	}
	size, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, malformed(r.line, "%s %q is not an integer", KeySize3D, fields[1])
	}
	if size < lattice.MinSize {
		return 0, malformed(r.line, "%s %d is below %d", KeySize3D, size, lattice.MinSize)
	}
	if err := lattice.CheckSize(size, r.MaxSize); err != nil {
		return 0, fmt.Errorf("cube: line %d: %w", r.line, err)
	}
	return size, nil
}

func (r *Reader) parseRange(fields []string) (lut.RGB, lut.RGB, error) {
	if len(fields) != 3 {
		return lut.RGB{}, lut.RGB{}, malformed(r.line, "%s needs two numbers", KeyInputRange)
	}
	lo, err1 := strconv.ParseFloat(fields[1], 64)
	hi, err2 := strconv.ParseFloat(fields[2], 64)
	if err := errors.Join(err1, err2); err != nil || !finite([3]float64{lo, hi, 0}) {
		return lut.RGB{}, lut.RGB{}, malformed(r.line, "%s needs two numbers", KeyInputRange)
	}
	return lut.Gray(lo), lut.Gray(hi), nil
}

// parseTitle strips the surrounding quotes; unquoted titles are taken as is
func parseTitle(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// parseTriple parses exactly three float fields
func parseTriple(fields []string) ([3]float64, bool) {
	var vals [3]float64
	if len(fields) != 3 {
		return vals, false
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vals, false
		}
		vals[i] = v
	}
	return vals, true
}

func finite(vals [3]float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
