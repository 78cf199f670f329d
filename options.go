package bimdiff

import (
	"github.com/agentstation/bimdiff/pkg/config"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/metrics"
	"github.com/agentstation/bimdiff/pkg/model"
)

// options holds the settings New applies.
type options struct {
	config    *config.Config
	profile   *config.Profile
	providers providers
	metrics   *metrics.Metrics
	logging   bool
}

// Option is a function that configures a Differ.
type Option func(*options) error

func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// WithConfig uses settings loaded by config.Load instead of config.Default.
// The configuration's logging settings replace the default logger for
// sessions whose context carries none.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.config = cfg
		o.logging = true
		return nil
	}
}

// WithProfile sets the comparators to build. It takes precedence over the
// configuration's profile path.
func WithProfile(p *config.Profile) Option {
	return func(o *options) error {
		if p == nil {
			return &errors.ValidationError{Field: "profile", Message: "cannot be nil"}
		}
		if err := p.Validate(); err != nil {
			return err
		}
		o.profile = p
		return nil
	}
}

// WithGeometry sets the bounding box source instead of detecting it on the models.
func WithGeometry(g model.GeometryProvider) Option {
	return func(o *options) error {
		if g == nil {
			return &errors.ValidationError{Field: "geometry", Message: "cannot be nil"}
		}
		o.providers.geometry = g
		return nil
	}
}

// WithShapeHasher sets the shape hash source used by profiles with shape_hash.
func WithShapeHasher(h model.ShapeHasher) Option {
	return func(o *options) error {
		if h == nil {
			return &errors.ValidationError{Field: "shapes", Message: "cannot be nil"}
		}
		o.providers.shapes = h
		return nil
	}
}

// WithProperties sets the property set source.
func WithProperties(p model.PropertyProvider) Option {
	return func(o *options) error {
		if p == nil {
			return &errors.ValidationError{Field: "properties", Message: "cannot be nil"}
		}
		o.providers.properties = p
		return nil
	}
}

// WithMaterials sets the material source.
func WithMaterials(m model.MaterialProvider) Option {
	return func(o *options) error {
		if m == nil {
			return &errors.ValidationError{Field: "materials", Message: "cannot be nil"}
		}
		o.providers.materials = m
		return nil
	}
}

// WithAttributes sets the attribute reader.
func WithAttributes(r model.AttributeReader) Option {
	return func(o *options) error {
		if r == nil {
			return &errors.ValidationError{Field: "attributes", Message: "cannot be nil"}
		}
		o.providers.attributes = r
		return nil
	}
}

// WithMetrics records every session on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) error {
		if m == nil {
			return &errors.ValidationError{Field: "metrics", Message: "cannot be nil"}
		}
		o.metrics = m
		return nil
	}
}
