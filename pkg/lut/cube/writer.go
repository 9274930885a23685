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

	"github.com/jpfielding/lut.go/pkg/lut"
)

// Writer writes .cube documents
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a new .cube writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes doc to w
func Write(w io.Writer, doc *Document) error {
	return NewWriter(w).WriteDocument(doc)
}

// Encode returns doc as .cube text
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes doc to path
func WriteFile(path string, doc *Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cube file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return Write(f, doc)
}

// WriteDocument writes the header, a blank line and one line per node
func (w *Writer) WriteDocument(doc *Document) error {
	if doc == nil || doc.Lattice == nil {
		return fmt.Errorf("%w: cube document has no lattice", lut.ErrInvalidParameter)
	}
	if err := validateTitle(doc.Title); err != nil {
		return err
	}
	l := doc.Lattice
	if len(l.Data) != 3*l.Len() {
		return fmt.Errorf("%w: lattice of size %d holds %d values", lut.ErrInvalidParameter, l.Size, len(l.Data))
	}

	fmt.Fprintf(w.w, "%s \"%s\"\n", KeyTitle, doc.Title)
	fmt.Fprintf(w.w, "%s %d\n", KeySize3D, l.Size)
	if !doc.HasDefaultDomain() {
		lo, hi := doc.Domain()
		w.writeTriple(KeyDomainMin+" ", lo.R, lo.G, lo.B)
		w.writeTriple(KeyDomainMax+" ", hi.R, hi.G, hi.B)
	}
	w.w.WriteByte('\n')

	for i := 0; i < len(l.Data); i += 3 {
		w.writeTriple("", float64(l.Data[i]), float64(l.Data[i+1]), float64(l.Data[i+2]))
	}
	return w.w.Flush()
}

func (w *Writer) writeTriple(prefix string, a, b, c float64) {
	buf := make([]byte, 0, 64)
	buf = append(buf, prefix...)
	buf = appendValue(buf, a)
	buf = append(buf, ' ')
	buf = appendValue(buf, b)
	buf = append(buf, ' ')
	buf = appendValue(buf, c)
	buf = append(buf, '\n')
	w.w.Write(buf)
}

// appendValue formats v with fixed precision, never producing "-0.000000"
func appendValue(buf []byte, v float64) []byte {
	if math.Abs(v) < 0.5e-6 {
		v = 0
	}
	return strconv.AppendFloat(buf, v, 'f', Precision, 64)
}
