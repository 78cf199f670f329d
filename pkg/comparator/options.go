package comparator

import (
	"github.com/agentstation/bimdiff/pkg/errors"
)

type options struct {
	name        string
	description string
	weight      *int
	shapes      ShapeMatcher
	index       *SpatialIndex
	tolerance   float64
	all         bool
}

// Option configures a built-in comparator. Options that do not apply to a
// comparator are ignored by it.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// base builds the comparator's Base, applying name, description and weight overrides.
func (o *options) base(name, description string, category Category) Base {
	if o.name != "" {
		name = o.name
	}
	if o.description != "" {
		description = o.description
	}
	b := NewBase(name, description, category)
	if o.weight != nil {
		b.weight = *o.weight
	}
	return b
}

// WithWeight overrides the category's default weight.
func WithWeight(weight int) Option {
	return func(o *options) error {
		if weight < 0 {
			return &errors.ValidationError{Field: "weight", Value: weight, Message: "cannot be negative"}
		}
		o.weight = &weight
		return nil
	}
}

// WithName overrides the comparator name.
func WithName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return &errors.ValidationError{Field: "name", Message: "cannot be empty"}
		}
		o.name = name
		return nil
	}
}

// WithDescription overrides the comparator description.
func WithDescription(description string) Option {
	return func(o *options) error {
		o.description = description
		return nil
	}
}

// WithShapeMatcher refines geometry matches with an exact shape check.
func WithShapeMatcher(m ShapeMatcher) Option {
	return func(o *options) error {
		if m == nil {
			return &errors.ValidationError{Field: "shapes", Message: "cannot be nil"}
		}
		o.shapes = m
		return nil
	}
}

// WithSpatialIndex makes the geometry comparator reuse a prebuilt index
// instead of building its own during Prepare.
func WithSpatialIndex(index *SpatialIndex) Option {
	return func(o *options) error {
		if index == nil {
			return &errors.ValidationError{Field: "index", Message: "cannot be nil"}
		}
		o.index = index
		return nil
	}
}

// WithTolerance overrides the geometric tolerance otherwise taken from the models' precision.
func WithTolerance(tolerance float64) Option {
	return func(o *options) error {
		if !(tolerance > 0) {
			return &errors.ValidationError{Field: "tolerance", Value: tolerance, Message: "must be positive"}
		}
		o.tolerance = tolerance
		return nil
	}
}

// WithAllResiduals makes a keyed comparator report every unclaimed revision
// object as residual, including objects it cannot derive a key for.
func WithAllResiduals() Option {
	return func(o *options) error {
		o.all = true
		return nil
	}
}
