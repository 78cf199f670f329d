package geom

import (
	"fmt"
	"math"
)

// Box is an axis-aligned bounding box. A box whose Min exceeds its Max on any
// axis is empty; Empty returns the canonical empty box, which is the identity
// for Union.
type Box struct {
	Min, Max Vector
}

// NewBox returns the box spanning the two corners in any order.
func NewBox(a, b Vector) Box {
	return Box{Min: a.Min(b), Max: a.Max(b)}
}

// Cube returns the cube with the given centre and edge length.
func Cube(centre Vector, size float64) Box {
	half := Vec(size/2, size/2, size/2)
	return Box{Min: centre.Sub(half), Max: centre.Add(half)}
}

// Empty returns the canonical empty box.
func Empty() Box {
	inf := math.Inf(1)
	return Box{Min: Vec(inf, inf, inf), Max: Vec(-inf, -inf, -inf)}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// IsFinite reports whether the box is non-empty with finite corners.
func (b Box) IsFinite() bool {
	return !b.IsEmpty() && b.Min.IsFinite() && b.Max.IsFinite()
}

// Size returns the extent along each axis.
func (b Box) Size() Vector {
	return b.Max.Sub(b.Min)
}

// MaxExtent returns the largest extent over the three axes.
func (b Box) MaxExtent() float64 {
	s := b.Size()
	return math.Max(s.X, math.Max(s.Y, s.Z))
}

// Centre returns the centre point.
func (b Box) Centre() Vector {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Union returns the smallest box containing both boxes.
// Empty boxes contribute nothing.
func (b Box) Union(o Box) Box {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Inflate grows the box by d on every side. A negative d shrinks it and may
// produce an empty box.
func (b Box) Inflate(d float64) Box {
	v := Vec(d, d, d)
	return Box{Min: b.Min.Sub(v), Max: b.Max.Add(v)}
}

// AlmostEqual reports whether the Min corners and the Max corners of the two
// boxes are each no further apart than tolerance.
func (b Box) AlmostEqual(o Box, tolerance float64) bool {
	if b.Min.Sub(o.Min).Length() > tolerance {
		return false
	}
	return b.Max.Sub(o.Max).Length() <= tolerance
}

// Disjoint reports whether the boxes are separated by more than tolerance on some axis.
func (b Box) Disjoint(o Box, tolerance float64) bool {
	return b.Min.X > o.Max.X+tolerance || o.Min.X > b.Max.X+tolerance ||
		b.Min.Y > o.Max.Y+tolerance || o.Min.Y > b.Max.Y+tolerance ||
		b.Min.Z > o.Max.Z+tolerance || o.Min.Z > b.Max.Z+tolerance
}

// Intersects reports whether the boxes share any point, within tolerance.
func (b Box) Intersects(o Box, tolerance float64) bool {
	return !b.Disjoint(o, tolerance)
}

// Contains reports whether o lies inside b, within tolerance.
func (b Box) Contains(o Box, tolerance float64) bool {
	return o.Min.X >= b.Min.X-tolerance && o.Max.X <= b.Max.X+tolerance &&
		o.Min.Y >= b.Min.Y-tolerance && o.Max.Y <= b.Max.Y+tolerance &&
		o.Min.Z >= b.Min.Z-tolerance && o.Max.Z <= b.Max.Z+tolerance
}

// ContainsPoint reports whether p lies inside b, within tolerance.
func (b Box) ContainsPoint(p Vector, tolerance float64) bool {
	return b.Contains(Box{Min: p, Max: p}, tolerance)
}

// Touches reports whether the boxes meet on a face, edge or corner without
// overlapping in volume.
func (b Box) Touches(o Box, tolerance float64) bool {
	if b.Disjoint(o, tolerance) {
		return false
	}
	overlap := b.Max.Min(o.Max).Sub(b.Min.Max(o.Min))
	return overlap.X <= tolerance || overlap.Y <= tolerance || overlap.Z <= tolerance
}

// BorderDirections returns the directions in which inner lies on the boundary
// of b, within tolerance. An empty result means inner does not reach any face.
func (b Box) BorderDirections(inner Box, tolerance float64) []Direction {
	var dirs []Direction
	if math.Abs(inner.Min.X-b.Min.X) <= tolerance {
		dirs = append(dirs, West)
	}
	if math.Abs(inner.Min.Y-b.Min.Y) <= tolerance {
		dirs = append(dirs, South)
	}
	if math.Abs(inner.Min.Z-b.Min.Z) <= tolerance {
		dirs = append(dirs, Down)
	}
	if math.Abs(inner.Max.X-b.Max.X) <= tolerance {
		dirs = append(dirs, East)
	}
	if math.Abs(inner.Max.Y-b.Max.Y) <= tolerance {
		dirs = append(dirs, North)
	}
	if math.Abs(inner.Max.Z-b.Max.Z) <= tolerance {
		dirs = append(dirs, Up)
	}
	return dirs
}

// ExtendsPast reports whether b reaches strictly beyond o's face in direction d.
func (b Box) ExtendsPast(o Box, d Direction, tolerance float64) bool {
	switch d {
	case West:
		return b.Min.X < o.Min.X-tolerance
	case East:
		return b.Max.X > o.Max.X+tolerance
	case South:
		return b.Min.Y < o.Min.Y-tolerance
	case North:
		return b.Max.Y > o.Max.Y+tolerance
	case Down:
		return b.Min.Z < o.Min.Z-tolerance
	case Up:
		return b.Max.Z > o.Max.Z+tolerance
	}
	return false
}

// String implements fmt.Stringer.
func (b Box) String() string {
	if b.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%s - %s]", b.Min, b.Max)
}
