package models

import (
	"fmt"
	"math"
)

// Vector3f is a three component vector used for positions, sizes and colors.
type Vector3f struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

var (
	// Origin is the zero vector. The importer treats it as "unset".
	Origin = Vector3f{}
	// Unit is the vector (1, 1, 1), the default wall color.
	Unit = Vector3f{X: 1, Y: 1, Z: 1}
)

// NewVector3f creates a vector from its components
func NewVector3f(x, y, z float64) Vector3f {
	return Vector3f{X: x, Y: y, Z: z}
}

// IsNaN reports whether any component is NaN
func (v Vector3f) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// IsUnset reports whether v carries one of the "not provided" sentinels:
// a NaN component or the origin.
func (v Vector3f) IsUnset() bool {
	return v.IsNaN() || v == Origin
}

// Equal compares component-wise. NaN components never compare equal.
func (v Vector3f) Equal(o Vector3f) bool {
	return v == o
}

func (v Vector3f) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Ptr returns a pointer to a copy of v, for optional vector fields.
func (v Vector3f) Ptr() *Vector3f {
	return &v
}

func vectorPtrEqual(a, b *Vector3f) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
