// Package octree provides a loose spatial index over axis-aligned bounding boxes.
//
// Items are bound to the deepest node whose octant fully contains their box.
// A box that straddles a split plane stays at the node where it straddles, so
// every node holds both the items that fit nowhere deeper and up to eight
// lazily created children. The tree is built once and never rebalanced; after
// construction it is safe for concurrent readers.
package octree

import (
	"slices"

	"github.com/agentstation/bimdiff/pkg/constants"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/geom"
)

// Tree is an octree of comparable items.
type Tree[T comparable] struct {
	root    *Node[T]
	minSize float64
	index   map[T]*Node[T]
	boxes   map[T]geom.Box
}

// New creates an empty tree whose root is the cube of the given edge length
// centred on centre. Nodes are not split below minSize.
func New[T comparable](size, minSize float64, centre geom.Vector) (*Tree[T], error) {
	if !(size > 0) {
		return nil, &errors.ValidationError{Field: "size", Value: size, Message: "must be positive"}
	}
	if !(minSize > 0) {
		return nil, &errors.ValidationError{Field: "minSize", Value: minSize, Message: "must be positive"}
	}
	if !centre.IsFinite() {
		return nil, &errors.ValidationError{Field: "centre", Value: centre, Message: "must be finite"}
	}
	return &Tree[T]{
		root:    newNode[T](geom.Cube(centre, size), nil),
		minSize: minSize,
		index:   make(map[T]*Node[T]),
		boxes:   make(map[T]geom.Box),
	}, nil
}

// ForWorld creates an empty tree enclosing world, where unit is the length of
// one model unit. The cube edge is the largest extent of world plus half a
// unit, the padding is split evenly on both sides of world, and the minimum
// cell size is one unit. An empty or non-finite world yields a one unit cube
// at the origin.
func ForWorld[T comparable](world geom.Box, unit float64) (*Tree[T], error) {
	if !(unit > 0) {
		return nil, &errors.ValidationError{Field: "unit", Value: unit, Message: "must be positive"}
	}
	if !world.IsFinite() {
		return New[T](unit, unit, geom.Vector{})
	}

	size := world.MaxExtent() + unit*constants.OctreePadding
	shift := unit * constants.OctreePadding / 2
	offset := size/2 - shift
	centre := world.Min.Add(geom.Vec(offset, offset, offset))
	return New[T](size, unit, centre)
}

// Root returns the root node.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// MinSize returns the minimum cell edge length.
func (t *Tree[T]) MinSize() float64 {
	return t.minSize
}

// Len returns the number of inserted items.
func (t *Tree[T]) Len() int {
	return len(t.index)
}

// Insert binds item to the deepest node that fully contains box.
// Empty, non-finite and out-of-bounds boxes bind at the root. Inserting an
// item again moves it.
func (t *Tree[T]) Insert(item T, box geom.Box) *Node[T] {
	if old, ok := t.index[item]; ok {
		old.remove(item)
	}

	node := t.root
	if box.IsFinite() && t.root.bounds.Contains(box, 0) {
		node = t.place(box)
	}

	node.content = append(node.content, item)
	t.index[item] = node
	t.boxes[item] = box
	return node
}

// place descends from the root while box fits in a single octant and the
// octant is not smaller than the minimum cell size.
func (t *Tree[T]) place(box geom.Box) *Node[T] {
	node := t.root
	for node.Size()/2 >= t.minSize {
		idx, ok := node.octant(box)
		if !ok {
			break
		}
		node = node.child(idx)
	}
	return node
}

// Find returns the node item is bound to, or nil if it was never inserted.
func (t *Tree[T]) Find(item T) *Node[T] {
	return t.index[item]
}

// Box returns the box item was inserted with.
func (t *Tree[T]) Box(item T) (geom.Box, bool) {
	box, ok := t.boxes[item]
	return box, ok
}

// Query returns every item whose box intersects region within tolerance.
func (t *Tree[T]) Query(region geom.Box, tolerance float64) []T {
	var out []T
	t.root.walk(func(n *Node[T]) bool {
		if n != t.root && !n.bounds.Intersects(region, tolerance) {
			return false
		}
		for _, item := range n.content {
			if box := t.boxes[item]; box.IsFinite() && box.Intersects(region, tolerance) {
				out = append(out, item)
			}
		}
		return true
	})
	return out
}

// QueryPoint returns every item whose box contains p within tolerance.
func (t *Tree[T]) QueryPoint(p geom.Vector, tolerance float64) []T {
	return t.Query(geom.Box{Min: p, Max: p}, tolerance)
}

// Walk visits nodes depth first. Returning false from fn skips the node's children.
func (t *Tree[T]) Walk(fn func(*Node[T]) bool) {
	t.root.walk(fn)
}

// Items returns all inserted items in traversal order.
func (t *Tree[T]) Items() []T {
	out := make([]T, 0, len(t.index))
	t.root.walk(func(n *Node[T]) bool {
		out = append(out, n.content...)
		return true
	})
	return out
}

func (n *Node[T]) remove(item T) {
	if i := slices.Index(n.content, item); i >= 0 {
		n.content = slices.Delete(n.content, i, i+1)
	}
}
