// Package bimdiff reconciles two snapshots of an engineering object graph.
//
// A Differ builds the comparators a profile lists, wires them to the data
// sources the models provide and runs a reconciliation session:
//
//	d, err := bimdiff.New()
//	if err != nil {
//		return err
//	}
//	res, err := d.Compare(ctx, baseline, revision)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Summary())
//
// The result set in res.Set holds one weighted group per baseline object
// and exposes the deleted, added, one-to-one and ambiguous views.
package bimdiff

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/config"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/logging"
	"github.com/agentstation/bimdiff/pkg/model"
	"github.com/agentstation/bimdiff/pkg/reconciler"
)

// Differ compares model snapshots with a fixed profile
type Differ interface {
	// Compare reconciles revision against baseline with freshly built comparators
	Compare(ctx context.Context, baseline, revision model.Model) (*reconciler.Result, error)

	// Comparators builds the profile's comparators for one session
	Comparators(baseline, revision model.Model) ([]comparator.Comparator, error)

	// Differences lists attribute-level differences of two matched objects. It is not supported.
	Differences(baseline, revision model.Object) ([]comparator.Difference, error)

	// Profile returns the comparator profile in use
	Profile() *config.Profile

	// OnMatched registers a callback for one-to-one matches
	OnMatched(MatchedHook)

	// OnAmbiguous registers a callback for ambiguous groups
	OnAmbiguous(AmbiguousHook)

	// OnDeleted registers a callback for deleted objects
	OnDeleted(DeletedHook)

	// OnAdded registers a callback for added objects
	OnAdded(AddedHook)
}

// differ is the internal implementation of the Differ interface
type differ struct {
	*hooks
	config     *config.Config
	profile    *config.Profile
	providers  providers
	reconciler reconciler.Reconciler
	logger     *zerolog.Logger
}

// New creates a Differ. Without options it uses config.Default and the
// default profile.
func New(opts ...Option) (Differ, error) {
	o := &options{}
	if err := o.apply(opts...); err != nil {
		return nil, err
	}
	if o.config == nil {
		o.config = config.Default()
	}
	if o.profile == nil {
		p, err := o.config.Profile()
		if err != nil {
			return nil, err
		}
		o.profile = p
	}

	types := o.profile.TargetTypes
	if len(types) == 0 {
		types = o.config.TargetTypes
	}
	recOpts := []reconciler.Option{
		reconciler.WithWorkers(o.config.Workers),
		reconciler.WithResolvePasses(o.config.ResolvePasses),
		reconciler.WithTargetTypes(types...),
	}
	if o.metrics != nil {
		recOpts = append(recOpts, reconciler.WithMetrics(o.metrics))
	}
	rec, err := reconciler.New(recOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating reconciler: %w", err)
	}

	d := &differ{
		hooks:      newHooks(),
		config:     o.config,
		profile:    o.profile,
		providers:  o.providers,
		reconciler: rec,
	}
	if o.logging {
		logger := logging.NewLoggerFromConfig(&o.config.Logging)
		d.logger = &logger
	}
	return d, nil
}

// Compare builds the comparators, reconciles and calls the hooks.
func (d *differ) Compare(ctx context.Context, baseline, revision model.Model) (*reconciler.Result, error) {
	if d.logger != nil && !logging.HasLogger(ctx) {
		ctx = logging.WithLogger(ctx, d.logger)
	}

	comparators, err := d.Comparators(baseline, revision)
	if err != nil {
		return nil, err
	}
	res, err := d.reconciler.Reconcile(ctx, baseline, revision, comparators...)
	if err != nil {
		return nil, err
	}
	d.trigger(res)
	return res, nil
}

// Differences is not supported.
func (d *differ) Differences(baseline, revision model.Object) ([]comparator.Difference, error) {
	return d.reconciler.Differences(baseline, revision)
}

// Profile returns the comparator profile in use.
func (d *differ) Profile() *config.Profile {
	return d.profile
}

// Comparators builds every comparator of the profile. Providers not set
// with options are detected on the two models.
func (d *differ) Comparators(baseline, revision model.Model) ([]comparator.Comparator, error) {
	if baseline == nil || revision == nil {
		return nil, &errors.ValidationError{Field: "models", Message: "baseline and revision are required"}
	}
	p := d.providers.detect(baseline, revision)

	out := make([]comparator.Comparator, 0, len(d.profile.Comparators))
	for i, spec := range d.profile.Comparators {
		c, err := d.build(spec, p)
		if err != nil {
			return nil, fmt.Errorf("building comparators[%d] %s: %w", i, spec.ComparatorName(), err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (d *differ) build(spec config.ComparatorSpec, p providers) (comparator.Comparator, error) {
	cat, err := spec.ParsedCategory()
	if err != nil {
		return nil, errors.WrapConfig("profile", err)
	}

	weight := cat.DefaultWeight()
	if w, ok := d.config.Weights[cat]; ok {
		weight = w
	}
	if spec.Weight != nil {
		weight = *spec.Weight
	}
	opts := []comparator.Option{comparator.WithWeight(weight)}
	if spec.Name != "" {
		opts = append(opts, comparator.WithName(spec.Name))
	}

	switch cat {
	case comparator.CategoryIdentity:
		return built(comparator.NewGUID(opts...))
	case comparator.CategoryName:
		return built(comparator.NewName(opts...))
	case comparator.CategoryAttribute:
		if p.attributes == nil {
			return nil, missing(cat, "model.AttributeReader")
		}
		return built(comparator.NewAttribute(spec.Attribute, p.attributes, opts...))
	case comparator.CategoryMaterial:
		if p.materials == nil {
			return nil, missing(cat, "model.MaterialProvider")
		}
		return built(comparator.NewMaterial(p.materials, opts...))
	case comparator.CategoryPropertySet:
		if p.properties == nil {
			return nil, missing(cat, "model.PropertyProvider")
		}
		return built(comparator.NewPropertySet(p.properties, opts...))
	case comparator.CategoryGeometry:
		if p.geometry == nil {
			return nil, missing(cat, "model.GeometryProvider")
		}
		tolerance := spec.Tolerance
		if tolerance == 0 {
			tolerance = d.config.GeometryTolerance
		}
		if tolerance > 0 {
			opts = append(opts, comparator.WithTolerance(tolerance))
		}
		if spec.ShapeHash {
			if p.shapes == nil {
				return nil, missing(cat, "model.ShapeHasher")
			}
			opts = append(opts, comparator.WithShapeMatcher(comparator.HashShapes(p.shapes)))
		}
		return built(comparator.NewGeometry(p.geometry, opts...))
	}
	return nil, errors.NewConfigError("profile", fmt.Sprintf("%s comparators cannot be built from a profile", cat), nil)
}

// built drops the typed nil a failed constructor returns.
func built(c comparator.Comparator, err error) (comparator.Comparator, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

func missing(cat comparator.Category, provider string) error {
	return errors.NewConfigError("profile",
		fmt.Sprintf("%s comparator needs a %s and neither the models nor the options provide one", cat, provider), nil)
}
