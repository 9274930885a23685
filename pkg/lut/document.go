package lut

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value is a number that also accepts signed numeric strings ("+5", "-2.5")
// as emitted by the upstream analysis service
type Value float64

func parseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "+"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: not a number: %q", ErrInvalidParameter, s)
	}
	return Value(v), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		pv, err := parseValue(s)
		if err != nil {
			return err
		}
		*v = pv
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	*v = Value(f)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a number", ErrInvalidParameter, node.Line)
	}
	if node.ShortTag() == "!!null" {
		return nil
	}
	pv, err := parseValue(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = pv
	return nil
}

// WheelValue is a colour wheel offset, written as [r, g, b] or {r, g, b}
type WheelValue struct {
	R, G, B Value
}

type wheelMap struct {
	R Value `json:"r" yaml:"r"`
	G Value `json:"g" yaml:"g"`
	B Value `json:"b" yaml:"b"`
}

func (w *WheelValue) fromSlice(vals []Value) error {
	if len(vals) != 3 {
		return fmt.Errorf("%w: colour wheel needs 3 values, got %d", ErrInvalidParameter, len(vals))
	}
	w.R, w.G, w.B = vals[0], vals[1], vals[2]
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (w *WheelValue) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	switch {
	case trimmed == "null":
		return nil
	case strings.HasPrefix(trimmed, "["):
		var vals []Value
		if err := json.Unmarshal(b, &vals); err != nil {
			return err
		}
		return w.fromSlice(vals)
	default:
		var m wheelMap
		if err := json.Unmarshal(b, &m); err != nil {
			return err
		}
		*w = WheelValue(m)
		return nil
	}
}

// UnmarshalYAML implements yaml.Unmarshaler
func (w *WheelValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var vals []Value
		if err := node.Decode(&vals); err != nil {
			return err
		}
		return w.fromSlice(vals)
	case yaml.MappingNode:
		var m wheelMap
		if err := node.Decode(&m); err != nil {
			return err
		}
		*w = WheelValue(m)
		return nil
	default:
		return fmt.Errorf("%w: line %d: colour wheel must be a list or a map", ErrInvalidParameter, node.Line)
	}
}

func (w WheelValue) wheel() Wheel {
	return Wheel{R: float64(w.R), G: float64(w.G), B: float64(w.B)}
}

// WheelsDocument groups the three wheel offsets
type WheelsDocument struct {
	Shadows    WheelValue `json:"shadows" yaml:"shadows"`
	Midtones   WheelValue `json:"midtones" yaml:"midtones"`
	Highlights WheelValue `json:"highlights" yaml:"highlights"`
}

// AdjustmentsDocument is the "adjustments" object of an instruction document
type AdjustmentsDocument struct {
	Temperature Value          `json:"temperature" yaml:"temperature"`
	Tint        Value          `json:"tint" yaml:"tint"`
	Exposure    Value          `json:"exposure" yaml:"exposure"`
	Contrast    Value          `json:"contrast" yaml:"contrast"`
	Highlights  Value          `json:"highlights" yaml:"highlights"`
	Shadows     Value          `json:"shadows" yaml:"shadows"`
	Whites      Value          `json:"whites" yaml:"whites"`
	Blacks      Value          `json:"blacks" yaml:"blacks"`
	Saturation  Value          `json:"saturation" yaml:"saturation"`
	Vibrance    Value          `json:"vibrance" yaml:"vibrance"`
	ColorWheels WheelsDocument `json:"color_wheels" yaml:"color_wheels"`
}

// Document is the grading instruction document produced upstream:
//
//	{"base_style": "Warm film", "adjustments": {"temperature": "+5", "contrast": -2,
//	  "color_wheels": {"shadows": [0, 0.02, 0.05]}}}
type Document struct {
	BaseStyle   string              `json:"base_style" yaml:"base_style"`
	Adjustments AdjustmentsDocument `json:"adjustments" yaml:"adjustments"`
}

// ParseDocument decodes a JSON or YAML instruction document
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) == 0 {
		return doc, fmt.Errorf("%w: empty adjustment document", ErrInvalidParameter)
	}
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("%w: parsing adjustment document: %v", ErrInvalidParameter, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%w: parsing adjustment document: %v", ErrInvalidParameter, err)
	}
	return doc, nil
}

// ReadDocumentFile reads and parses an instruction document from disk
func ReadDocumentFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading adjustment document: %w", err)
	}
	return ParseDocument(data)
}

// Record converts the document into a normalized record
func (d Document) Record() (Adjustments, error) {
	a := d.Adjustments
	adj := Adjustments{
		BaseStyle:   d.BaseStyle,
		Temperature: float64(a.Temperature),
		Tint:        float64(a.Tint),
		Exposure:    float64(a.Exposure),
		Contrast:    float64(a.Contrast),
		Highlights:  float64(a.Highlights),
		Shadows:     float64(a.Shadows),
		Whites:      float64(a.Whites),
		Blacks:      float64(a.Blacks),
		Saturation:  float64(a.Saturation),
		Vibrance:    float64(a.Vibrance),
		Wheels: ColorWheels{
			Shadows:    a.ColorWheels.Shadows.wheel(),
			Midtones:   a.ColorWheels.Midtones.wheel(),
			Highlights: a.ColorWheels.Highlights.wheel(),
		},
	}
	return adj.Normalize()
}

// LoadAdjustments reads a document from disk and returns its normalized record
func LoadAdjustments(path string) (Adjustments, error) {
	doc, err := ReadDocumentFile(path)
	if err != nil {
		return Adjustments{}, err
	}
	return doc.Record()
}
