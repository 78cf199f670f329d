// Package geom provides the axis-aligned bounding volumes and directions used by
// the spatial index and the geometry comparator.
package geom

import (
	"fmt"
	"math"
)

// Vector is a point or displacement in model units.
type Vector struct {
	X, Y, Z float64
}

// Vec is shorthand for Vector{x, y, z}.
func Vec(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Min returns the component-wise minimum.
func (v Vector) Min(o Vector) Vector {
	return Vector{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum.
func (v Vector) Max(o Vector) Vector {
	return Vector{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// String implements fmt.Stringer.
func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
