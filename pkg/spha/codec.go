package spha

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Binary record layout, protobuf-compatible:
//
//	message Params { Vec3 point = 1; Vec3 axis = 2; uint32 iterations = 3; double strength = 4; }
//	message Vec3   { double x = 1; double y = 2; double z = 3; }
//
// Doubles travel as fixed64 bit patterns, so NaN payloads and -0 survive.
const (
	fieldPoint      protowire.Number = 1
	fieldAxis       protowire.Number = 2
	fieldIterations protowire.Number = 3
	fieldStrength   protowire.Number = 4

	fieldX protowire.Number = 1
	fieldY protowire.Number = 2
	fieldZ protowire.Number = 3
)

// MarshalBinary encodes p as a field-tagged protobuf record.
// Every field is written, including zero values.
func (p Params) MarshalBinary() ([]byte, error) {
	var b []byte

	b = protowire.AppendTag(b, fieldPoint, protowire.BytesType)
	b = protowire.AppendBytes(b, appendVec3(nil, p.point.X, p.point.Y, p.point.Z))

	b = protowire.AppendTag(b, fieldAxis, protowire.BytesType)
	b = protowire.AppendBytes(b, appendVec3(nil, p.axis.X, p.axis.Y, p.axis.Z))

	b = protowire.AppendTag(b, fieldIterations, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.iterations))

	b = protowire.AppendTag(b, fieldStrength, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(p.strength))

	return b, nil
}

// UnmarshalBinary decodes a record written by MarshalBinary.
// Missing fields decode as zero and unknown fields are skipped.
//
//nolint:cyclop
func (p *Params) UnmarshalBinary(data []byte) error {
	var out Params

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformedParams, protowire.ParseError(n))
		}

		data = data[n:]

		if want, known := paramsWireTypes[num]; known && want != typ {
			return fmt.Errorf("%w: field %d has wire type %d, want %d", ErrMalformedParams, num, typ, want)
		}

		switch num {
		case fieldPoint, fieldAxis:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrMalformedParams, num, protowire.ParseError(n))
			}

			x, y, z, err := consumeVec3(raw)
			if err != nil {
				return fmt.Errorf("field %d: %w", num, err)
			}

			if num == fieldPoint {
				out.point = Point{X: x, Y: y, Z: z}
			} else {
				out.axis = Axis{X: x, Y: y, Z: z}
			}

			data = data[n:]
		case fieldIterations:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("%w: iterations: %w", ErrMalformedParams, protowire.ParseError(n))
			}

			if v > math.MaxUint32 {
				return fmt.Errorf("%w: iterations %d overflows uint32", ErrMalformedParams, v)
			}

			out.iterations = uint32(v)
			data = data[n:]
		case fieldStrength:
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return fmt.Errorf("%w: strength: %w", ErrMalformedParams, protowire.ParseError(n))
			}

			out.strength = math.Float64frombits(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrMalformedParams, num, protowire.ParseError(n))
			}

			data = data[n:]
		}
	}

	*p = out

	return nil
}

//nolint:gochecknoglobals
var paramsWireTypes = map[protowire.Number]protowire.Type{
	fieldPoint:      protowire.BytesType,
	fieldAxis:       protowire.BytesType,
	fieldIterations: protowire.VarintType,
	fieldStrength:   protowire.Fixed64Type,
}

func appendVec3(b []byte, x, y, z float64) []byte {
	for i, v := range [3]float64{x, y, z} {
		b = protowire.AppendTag(b, fieldX+protowire.Number(i), protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(v))
	}

	return b
}

func consumeVec3(data []byte) (x, y, z float64, err error) {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return 0, 0, 0, fmt.Errorf("%w: %w", ErrMalformedParams, protowire.ParseError(n))
		}

		data = data[n:]

		if num < fieldX || num > fieldZ {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return 0, 0, 0, fmt.Errorf("%w: %w", ErrMalformedParams, protowire.ParseError(n))
			}

			data = data[n:]

			continue
		}

		if typ != protowire.Fixed64Type {
			return 0, 0, 0, fmt.Errorf("%w: component %d has wire type %d", ErrMalformedParams, num, typ)
		}

		bits, n := protowire.ConsumeFixed64(data)
		if n < 0 {
			return 0, 0, 0, fmt.Errorf("%w: %w", ErrMalformedParams, protowire.ParseError(n))
		}

		data = data[n:]

		switch num {
		case fieldX:
			x = math.Float64frombits(bits)
		case fieldY:
			y = math.Float64frombits(bits)
		case fieldZ:
			z = math.Float64frombits(bits)
		}
	}

	return x, y, z, nil
}
