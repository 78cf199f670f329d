package octree

import (
	"slices"

	"github.com/agentstation/bimdiff/pkg/geom"
)

// Node is a cubic cell of the tree.
type Node[T comparable] struct {
	bounds   geom.Box
	centre   geom.Vector
	parent   *Node[T]
	children [8]*Node[T]
	content  []T
	depth    int
}

func newNode[T comparable](bounds geom.Box, parent *Node[T]) *Node[T] {
	n := &Node[T]{
		bounds: bounds,
		centre: bounds.Centre(),
		parent: parent,
	}
	if parent != nil {
		n.depth = parent.depth + 1
	}
	return n
}

// Bounds returns the cell's cube.
func (n *Node[T]) Bounds() geom.Box {
	return n.bounds
}

// Size returns the cell's edge length.
func (n *Node[T]) Size() float64 {
	return n.bounds.Max.X - n.bounds.Min.X
}

// Depth returns the distance from the root.
func (n *Node[T]) Depth() int {
	return n.depth
}

// Parent returns the enclosing node, nil for the root.
func (n *Node[T]) Parent() *Node[T] {
	return n.parent
}

// IsRoot reports whether n has no parent.
func (n *Node[T]) IsRoot() bool {
	return n.parent == nil
}

// Content returns the items bound directly to this node.
func (n *Node[T]) Content() []T {
	return slices.Clone(n.content)
}

// Children returns the children created so far.
func (n *Node[T]) Children() []*Node[T] {
	var out []*Node[T]
	for _, c := range n.children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// CommonParentInDirection walks up from n to the first ancestor whose bounds
// extend past n's face in direction d. That ancestor is the smallest node
// able to hold items sitting across that face. When no ancestor extends past,
// a strict lookup returns nil and a non-strict one returns the root. The root
// itself has no such parent.
func (n *Node[T]) CommonParentInDirection(d geom.Direction, strict bool) *Node[T] {
	if n.parent == nil {
		return nil
	}
	var top *Node[T]
	for a := n.parent; a != nil; a = a.parent {
		if a.bounds.ExtendsPast(n.bounds, d, 0) {
			return a
		}
		top = a
	}
	if strict {
		return nil
	}
	return top
}

// octant returns the index of the child that fully contains box, or false if
// box straddles a split plane.
func (n *Node[T]) octant(box geom.Box) (int, bool) {
	idx := 0
	for axis, bit := range [3]int{1, 2, 4} {
		lo, hi, c := component(box.Min, axis), component(box.Max, axis), component(n.centre, axis)
		switch {
		case hi <= c:
		case lo >= c:
			idx |= bit
		default:
			return 0, false
		}
	}
	return idx, true
}

// child returns the child at idx, creating it on first use. Child corners are
// taken from the parent's corners and centre so shared faces compare exactly.
func (n *Node[T]) child(idx int) *Node[T] {
	if c := n.children[idx]; c != nil {
		return c
	}
	lo, hi := n.bounds.Min, n.centre
	if idx&1 != 0 {
		lo.X, hi.X = n.centre.X, n.bounds.Max.X
	}
	if idx&2 != 0 {
		lo.Y, hi.Y = n.centre.Y, n.bounds.Max.Y
	}
	if idx&4 != 0 {
		lo.Z, hi.Z = n.centre.Z, n.bounds.Max.Z
	}
	c := newNode(geom.Box{Min: lo, Max: hi}, n)
	n.children[idx] = c
	return c
}

func (n *Node[T]) walk(fn func(*Node[T]) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.walk(fn)
		}
	}
}

func component(v geom.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
