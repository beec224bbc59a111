package spha

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// Text formats (JSON, YAML) write finite floats as the shortest decimal that
// parses back to the same bits and non-finite floats as "0x" followed by the
// 16 hex digits of their bit pattern. Decoders accept numbers, decimal
// strings and bit-pattern strings.

type textFloat float64

type vec3Record struct {
	X textFloat `json:"x" yaml:"x"`
	Y textFloat `json:"y" yaml:"y"`
	Z textFloat `json:"z" yaml:"z"`
}

type paramsRecord struct {
	Point      vec3Record `json:"point"      yaml:"point"`
	Axis       vec3Record `json:"axis"       yaml:"axis"`
	Iterations uint32     `json:"iterations" yaml:"iterations"`
	Strength   textFloat  `json:"strength"   yaml:"strength"`
}

func (p Params) record() paramsRecord {
	return paramsRecord{
		Point:      vec3Record{X: textFloat(p.point.X), Y: textFloat(p.point.Y), Z: textFloat(p.point.Z)},
		Axis:       vec3Record{X: textFloat(p.axis.X), Y: textFloat(p.axis.Y), Z: textFloat(p.axis.Z)},
		Iterations: p.iterations,
		Strength:   textFloat(p.strength),
	}
}

func (r paramsRecord) params() Params {
	return NewParams(
		Point{X: float64(r.Point.X), Y: float64(r.Point.Y), Z: float64(r.Point.Z)},
		Axis{X: float64(r.Axis.X), Y: float64(r.Axis.Y), Z: float64(r.Axis.Z)},
		r.Iterations,
		float64(r.Strength),
	)
}

// MarshalJSON implements json.Marshaler.
func (p Params) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.record())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Params) UnmarshalJSON(data []byte) error {
	var rec paramsRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedParams, err)
	}

	*p = rec.params()

	return nil
}

// MarshalYAML implements the goccy/go-yaml InterfaceMarshaler.
func (p Params) MarshalYAML() (any, error) {
	return p.record(), nil
}

// UnmarshalYAML implements the goccy/go-yaml InterfaceUnmarshaler.
func (p *Params) UnmarshalYAML(unmarshal func(any) error) error {
	var rec paramsRecord
	if err := unmarshal(&rec); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedParams, err)
	}

	*p = rec.params()

	return nil
}

func (f textFloat) String() string {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("0x%016x", math.Float64bits(v))
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f textFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(f.String())
	}

	return []byte(f.String()), nil
}

func (f *textFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		return f.parse(s)
	}

	return f.parse(string(data))
}

// MarshalYAML always emits a string: YAML number parsing would drop the
// sign of -0 and cannot express NaN payloads.
func (f textFloat) MarshalYAML() (any, error) {
	return f.String(), nil
}

// UnmarshalYAML implements the goccy/go-yaml BytesUnmarshaler. It reads the
// scalar's source text so that -0 and bit patterns keep their exact bits.
func (f *textFloat) UnmarshalYAML(data []byte) error {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return fmt.Errorf("parsing float: %w", err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil
	}

	switch node := file.Docs[0].Body.(type) {
	case *ast.NullNode:
		return nil
	case *ast.StringNode:
		return f.parse(node.Value)
	case *ast.IntegerNode, *ast.FloatNode:
		return f.parse(node.GetToken().Value)
	case *ast.InfinityNode:
		*f = textFloat(node.Value)
	case *ast.NanNode:
		*f = textFloat(math.NaN())
	default:
		return fmt.Errorf("unsupported float value %q", strings.TrimSpace(string(data)))
	}

	return nil
}

func (f *textFloat) parse(s string) error {
	s = strings.TrimSpace(s)

	if len(s) == 18 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		if bits, err := strconv.ParseUint(s[2:], 16, 64); err == nil {
			*f = textFloat(math.Float64frombits(bits))

			return nil
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing float %q: %w", s, err)
	}

	*f = textFloat(v)

	return nil
}

// FormatFloat renders f the way the text codecs do: the shortest exact
// decimal for finite values, "0x" and 16 hex digits of the bits otherwise.
func FormatFloat(f float64) string {
	return textFloat(f).String()
}

// ParseFloat parses a decimal float or a "0x"-prefixed 16-digit bit pattern.
func ParseFloat(s string) (float64, error) {
	var f textFloat
	if err := f.parse(s); err != nil {
		return 0, err
	}

	return float64(f), nil
}
