package reconciler

import (
	"fmt"
	"maps"

	"github.com/agentstation/bimdiff/internal/matcher"
	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/constants"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/metrics"
)

// Options configures a reconciler.
type options struct {
	workers int
	types   *matcher.TypeFilter
	passes  int
	weights map[comparator.Category]int
	metrics *metrics.Metrics
}

func defaultOptions() *options {
	return &options{
		workers: constants.DefaultWorkers,
		passes:  constants.DefaultResolvePasses,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithWorkers sets the number of comparators run concurrently.
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n < 1 || n > constants.MaxWorkers {
			return &errors.ValidationError{
				Field:   "workers",
				Value:   n,
				Message: fmt.Sprintf("must be between 1 and %d", constants.MaxWorkers),
			}
		}
		o.workers = n
		return nil
	}
}

// WithTargetTypes restricts reconciliation to objects whose type matches one
// of the glob or regex patterns. Without patterns every object is compared.
func WithTargetTypes(patterns ...string) Option {
	return func(o *options) error {
		filter, err := matcher.NewTypeFilter(patterns...)
		if err != nil {
			return errors.WrapValidation("types", err)
		}
		o.types = filter
		return nil
	}
}

// WithResolvePasses sets how many conflict resolution passes may run. Passes
// stop early once one changes nothing.
func WithResolvePasses(n int) Option {
	return func(o *options) error {
		if n < 1 || n > constants.MaxResolvePasses {
			return &errors.ValidationError{
				Field:   "passes",
				Value:   n,
				Message: fmt.Sprintf("must be between 1 and %d", constants.MaxResolvePasses),
			}
		}
		o.passes = n
		return nil
	}
}

// WithWeights overrides the weight of every comparator of the given
// categories for each session.
func WithWeights(weights map[comparator.Category]int) Option {
	return func(o *options) error {
		for cat, w := range weights {
			if w < 0 {
				return &errors.ValidationError{Field: "weights." + cat.String(), Value: w, Message: "cannot be negative"}
			}
		}
		o.weights = maps.Clone(weights)
		return nil
	}
}

// WithMetrics records session metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) error {
		if m == nil {
			return &errors.ValidationError{Field: "metrics", Message: "cannot be nil"}
		}
		o.metrics = m
		return nil
	}
}
