package comparator

import (
	"context"

	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/logging"
	"github.com/agentstation/bimdiff/pkg/model"
)

// ShapeMatcher decides whether two objects with near-equal bounding boxes
// have the same precise shape.
type ShapeMatcher interface {
	SameShape(baseline, revision model.Object) (bool, error)
}

// ShapeMatcherFunc adapts a function to ShapeMatcher.
type ShapeMatcherFunc func(baseline, revision model.Object) (bool, error)

// SameShape implements ShapeMatcher.
func (f ShapeMatcherFunc) SameShape(baseline, revision model.Object) (bool, error) {
	return f(baseline, revision)
}

// HashShapes returns a ShapeMatcher comparing shape hashes. Objects without
// a hash on either side are not rejected.
func HashShapes(hasher model.ShapeHasher) ShapeMatcher {
	return ShapeMatcherFunc(func(baseline, revision model.Object) (bool, error) {
		a, ok := hasher.ShapeHash(baseline)
		if !ok {
			return true, nil
		}
		b, ok := hasher.ShapeHash(revision)
		if !ok {
			return true, nil
		}
		return a == b, nil
	})
}

// Geometry matches objects whose bounding boxes are equal within the models'
// precision. An optional ShapeMatcher refines the bounding box match.
type Geometry struct {
	Base
	provider  model.GeometryProvider
	shapes    ShapeMatcher
	index     *SpatialIndex
	shared    bool
	tolerance float64
}

// NewGeometry creates a geometry comparator.
func NewGeometry(provider model.GeometryProvider, opts ...Option) (*Geometry, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if provider == nil && o.index == nil {
		return nil, &errors.ValidationError{Field: "provider", Message: "cannot be nil"}
	}
	return &Geometry{
		Base:      o.base("geometry", "Matches objects with near-equal bounding boxes", CategoryGeometry),
		provider:  provider,
		shapes:    o.shapes,
		index:     o.index,
		shared:    o.index != nil,
		tolerance: o.tolerance,
	}, nil
}

// Prepare binds the comparator to the session and builds the spatial index
// over both models unless a shared one was supplied.
func (g *Geometry) Prepare(ctx context.Context, session *Session) error {
	if session == nil {
		return &errors.ValidationError{Field: "session", Message: "cannot be nil"}
	}
	if err := g.Bind(session.ID); err != nil {
		return err
	}
	if g.shared {
		return nil
	}

	index, err := BuildSpatialIndex(session.Baseline, session.Revision, g.provider)
	if err != nil {
		return err
	}
	g.index = index

	logging.FromContext(ctx).Debug().
		Str("comparator", g.Name()).
		Int("indexed", index.Len()).
		Float64("precision", index.Precision()).
		Msg("Spatial index built")
	return nil
}

// Index returns the spatial index, nil before Prepare.
func (g *Geometry) Index() *SpatialIndex {
	return g.index
}

// Tolerance returns the box comparison tolerance in effect.
func (g *Geometry) Tolerance() float64 {
	if g.tolerance > 0 || g.index == nil {
		return g.tolerance
	}
	return g.index.Precision()
}

// Compare returns the revision objects whose boxes match baseline's.
// Objects without geometry are not compared.
func (g *Geometry) Compare(baseline model.Object, _ model.Model) (*Result, error) {
	if g.index == nil {
		return nil, errors.NewStateError(g.Name(), "spatial index not built; Prepare must run before Compare")
	}

	near, ok := g.index.Near(baseline, g.Tolerance())
	if !ok {
		return nil, nil
	}

	var found []model.Object
	for _, candidate := range near {
		if g.shapes != nil {
			same, err := g.shapes.SameShape(baseline, candidate)
			if err != nil {
				return nil, err
			}
			if !same {
				continue
			}
		}
		found = append(found, candidate)
	}

	result := NewResult(g, baseline)
	for _, candidate := range found {
		result.Add(candidate)
	}
	g.Claim(found...)
	return result, nil
}

// Residuals returns the revision objects with geometry that were never claimed.
func (g *Geometry) Residuals(_ model.Model) (*Result, error) {
	if g.index == nil {
		return nil, errors.NewStateError(g.Name(), "spatial index not built; Prepare must run before Residuals")
	}
	result := NewResult(g, nil)
	for _, obj := range g.index.RevisionObjects() {
		if !g.IsClaimed(obj) {
			result.Add(obj)
		}
	}
	return result, nil
}

// Reset clears the session binding and the claimed set. A privately built
// spatial index is dropped; a shared one is kept.
func (g *Geometry) Reset() {
	g.Base.Reset()
	if !g.shared {
		g.index = nil
	}
}
