package comparator

import (
	"fmt"
	"math"

	"github.com/agentstation/bimdiff/pkg/constants"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/geom"
	"github.com/agentstation/bimdiff/pkg/model"
	"github.com/agentstation/bimdiff/pkg/octree"
)

// entry is an octree item. The side flag keeps an object that occurs in
// both models distinct.
type entry struct {
	obj      model.Object
	revision bool
}

// SpatialIndex is the octree shared by geometry comparators of one session.
// It holds every baseline and revision object that has a bounding box and is
// read-only once built.
type SpatialIndex struct {
	tree      *octree.Tree[entry]
	revision  []model.Object
	precision float64
	metre     float64
}

// BuildSpatialIndex indexes both models. The models must use the same length
// unit; when their precisions differ the coarser one is used.
func BuildSpatialIndex(baseline, revision model.Model, geometry model.GeometryProvider) (*SpatialIndex, error) {
	if baseline == nil || revision == nil {
		return nil, &errors.ValidationError{Field: "models", Message: "baseline and revision are required"}
	}
	if geometry == nil {
		return nil, &errors.ValidationError{Field: "geometry", Message: "cannot be nil"}
	}

	bu, ru := baseline.Units().Normalize(), revision.Units().Normalize()
	if math.Abs(bu.Metre-ru.Metre) > constants.UnitTolerance*math.Max(bu.Metre, ru.Metre) {
		return nil, errors.NewConfigError("geometry",
			fmt.Sprintf("models use different length units: %g and %g units per metre", bu.Metre, ru.Metre), nil)
	}

	type boxed struct {
		entry
		box geom.Box
	}
	var items []boxed
	world := geom.Empty()
	collect := func(m model.Model, revision bool) {
		for _, obj := range m.Objects() {
			box, ok := geometry.BoundingBox(obj)
			if !ok {
				continue
			}
			items = append(items, boxed{entry{obj, revision}, box})
			if box.IsFinite() {
				world = world.Union(box)
			}
		}
	}
	collect(baseline, false)
	collect(revision, true)

	tree, err := octree.ForWorld[entry](world, bu.Metre)
	if err != nil {
		return nil, err
	}

	idx := &SpatialIndex{
		tree:      tree,
		precision: math.Max(bu.Precision, ru.Precision),
		metre:     bu.Metre,
	}
	for _, it := range items {
		tree.Insert(it.entry, it.box)
		if it.revision {
			idx.revision = append(idx.revision, it.obj)
		}
	}
	return idx, nil
}

// Precision returns the tolerance used for box comparisons.
func (s *SpatialIndex) Precision() float64 {
	return s.precision
}

// Metre returns the length of one metre in model units.
func (s *SpatialIndex) Metre() float64 {
	return s.metre
}

// Len returns the number of indexed objects over both models.
func (s *SpatialIndex) Len() int {
	return s.tree.Len()
}

// Box returns the indexed box of a baseline or revision object.
func (s *SpatialIndex) Box(obj model.Object, revision bool) (geom.Box, bool) {
	return s.tree.Box(entry{obj, revision})
}

// RevisionObjects returns the indexed revision objects in model order.
func (s *SpatialIndex) RevisionObjects() []model.Object {
	return s.revision
}

// Near returns the revision objects whose boxes are within tolerance of the
// baseline object's box. ok is false when the baseline object has no finite
// box in the index.
//
// The search looks at the baseline's own node, the common parent in every
// direction where the baseline box lies on the node's border (a revision box
// shifted across that face is bound there), and the descendants whose cells
// could hold a slightly shrunken copy of the box.
func (s *SpatialIndex) Near(baseline model.Object, tolerance float64) ([]model.Object, bool) {
	key := entry{baseline, false}
	node := s.tree.Find(key)
	box, _ := s.tree.Box(key)
	if node == nil || !box.IsFinite() {
		return nil, false
	}

	nodes := []*octree.Node[entry]{node}
	for _, d := range node.Bounds().BorderDirections(box, tolerance) {
		if parent := node.CommonParentInDirection(d, false); parent != nil {
			nodes = append(nodes, parent)
		}
	}
	for _, child := range node.Children() {
		collectContaining(child, box, tolerance, &nodes)
	}

	var out []model.Object
	seen := make(map[model.Object]struct{})
	visited := make(map[*octree.Node[entry]]struct{}, len(nodes))
	for _, n := range nodes {
		if _, ok := visited[n]; ok {
			continue
		}
		visited[n] = struct{}{}
		for _, e := range n.Content() {
			if !e.revision {
				continue
			}
			if _, ok := seen[e.obj]; ok {
				continue
			}
			other, _ := s.tree.Box(e)
			if other.IsFinite() && box.AlmostEqual(other, tolerance) {
				seen[e.obj] = struct{}{}
				out = append(out, e.obj)
			}
		}
	}
	return out, true
}

// collectContaining adds n and its descendants whose cells contain box
// within tolerance.
func collectContaining(n *octree.Node[entry], box geom.Box, tolerance float64, out *[]*octree.Node[entry]) {
	if !n.Bounds().Contains(box, tolerance) {
		return
	}
	*out = append(*out, n)
	for _, c := range n.Children() {
		collectContaining(c, box, tolerance, out)
	}
}
