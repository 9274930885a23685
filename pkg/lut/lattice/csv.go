package lattice

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
)

// NodeRecord is one CSV row of a lattice dump
type NodeRecord struct {
	Index int     `csv:"index"`
	R     int     `csv:"r"`
	G     int     `csv:"g"`
	B     int     `csv:"b"`
	InR   float64 `csv:"in_r"`
	InG   float64 `csv:"in_g"`
	InB   float64 `csv:"in_b"`
	OutR  float64 `csv:"out_r"`
	OutG  float64 `csv:"out_g"`
	OutB  float64 `csv:"out_b"`
}

// Record returns the CSV row for node i
func (l *Lattice) Record(i int) NodeRecord {
	r, g, b := l.Coords(i)
	in, out := l.Input(i), l.Node(i)
	return NodeRecord{
		Index: i, R: r, G: g, B: b,
		InR: in.R, InG: in.G, InB: in.B,
		OutR: out.R, OutG: out.G, OutB: out.B,
	}
}

// WriteCSV dumps every node, in file order, with its coordinates, identity
// input and stored output
func WriteCSV(w io.Writer, l *Lattice) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	for i := 0; i < l.Len(); i++ {
		if err := enc.Encode(l.Record(i)); err != nil {
			return fmt.Errorf("encoding node %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads the rows written by WriteCSV
func ReadCSV(r io.Reader) ([]NodeRecord, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	var rows []NodeRecord
	if err := dec.Decode(&rows); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding csv rows: %w", err)
	}
	return rows, nil
}
