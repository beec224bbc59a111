package spha

import "fmt"

// Point is a location in 3D space.
type Point struct {
	X, Y, Z float64
}

// Axis is a direction in 3D space.
// It is kept distinct from Point so the two cannot be swapped by accident.
type Axis struct {
	X, Y, Z float64
}

// Params is the immutable parameter set that seeds key derivation.
//
// No validation is performed: NaN, infinities, negative zero and any uint32
// are accepted as-is and hashed by their bit patterns. Choosing sensible
// values is the caller's responsibility.
type Params struct {
	point      Point
	axis       Axis
	iterations uint32
	strength   float64
}

// NewParams returns the parameter set for the given values.
func NewParams(point Point, axis Axis, iterations uint32, strength float64) Params {
	return Params{
		point:      point,
		axis:       axis,
		iterations: iterations,
		strength:   strength,
	}
}

// Point returns the point component.
func (p Params) Point() Point { return p.point }

// Axis returns the axis component.
func (p Params) Axis() Axis { return p.axis }

// Iterations returns the iteration count. It is hash input only.
func (p Params) Iterations() uint32 { return p.iterations }

// Strength returns the strength scalar. It is hash input only.
func (p Params) Strength() float64 { return p.strength }

// Equal reports whether both parameter sets have identical bit patterns,
// which is exactly when they derive the same key.
// Unlike ==, NaN fields compare equal to themselves and 0 differs from -0.
func (p Params) Equal(other Params) bool {
	return p.Encode() == other.Encode()
}

// String renders the parameters for diagnostics.
func (p Params) String() string {
	return fmt.Sprintf("point=(%v, %v, %v) axis=(%v, %v, %v) iterations=%d strength=%v",
		p.point.X, p.point.Y, p.point.Z,
		p.axis.X, p.axis.Y, p.axis.Z,
		p.iterations, p.strength)
}

// floats lists the float fields in derivation order.
func (p Params) floats() [7]float64 {
	return [7]float64{
		p.point.X, p.point.Y, p.point.Z,
		p.axis.X, p.axis.Y, p.axis.Z,
		p.strength,
	}
}
