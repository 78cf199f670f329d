// Package reconciler runs comparators over two snapshots of an object graph
// and merges their verdicts into a weighted result set.
//
// A session prepares every comparator in turn, runs the comparators on a
// bounded worker pool (each comparator walks the baseline sequentially), and
// finally resolves conflicts between the groups single-threaded.
package reconciler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/bimdiff/internal/matcher"
	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/logging"
	"github.com/agentstation/bimdiff/pkg/metrics"
	"github.com/agentstation/bimdiff/pkg/model"
	"github.com/agentstation/bimdiff/pkg/results"
)

// Reconciler is the main interface for reconciling two snapshots.
type Reconciler interface {
	// Reconcile compares every target baseline object against the revision
	// with the given comparators.
	Reconcile(ctx context.Context, baseline, revision model.Model, comparators ...comparator.Comparator) (*Result, error)

	// Differences lists attribute-level differences between two matched
	// objects. It is not supported.
	Differences(baseline, revision model.Object) ([]comparator.Difference, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	workers int
	types   *matcher.TypeFilter
	passes  int
	weights map[comparator.Category]int
	metrics *metrics.Metrics
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		workers: options.workers,
		types:   options.types,
		passes:  options.passes,
		weights: options.weights,
		metrics: options.metrics,
	}, nil
}

// session holds shared state for one reconciliation.
type session struct {
	*comparator.Session
	result *Result
	logger *zerolog.Logger

	mu sync.Mutex
}

func (s *session) recordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result.Errors = append(s.result.Errors, err)
}

// Reconcile performs reconciliation with a clean step-by-step flow.
func (r *reconciler) Reconcile(ctx context.Context, baseline, revision model.Model, comparators ...comparator.Comparator) (*Result, error) {
	// Step 1: Validate inputs
	if err := validate(baseline, revision, comparators); err != nil {
		return nil, err
	}

	// Step 2: Open the session
	ctx, s, err := r.open(ctx, baseline, revision, comparators)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Int("baseline_objects", s.result.Metadata.Stats.BaselineObjects).
		Int("revision_objects", s.result.Metadata.Stats.RevisionObjects).
		Int("comparators", len(comparators)).
		Msg("Reconciliation started")

	// Step 3: Prepare comparators, single-threaded
	if err := r.prepare(ctx, s, comparators); err != nil {
		return nil, r.fail(s, err)
	}

	// Step 4: Run comparators on the worker pool
	if err := r.compare(ctx, s, comparators); err != nil {
		return nil, r.fail(s, err)
	}

	// Step 5: Resolve conflicts
	r.resolve(s)

	// Step 6: Finalize
	s.result.finalize()
	r.record(s)
	s.logger.Info().
		Dur("duration", s.result.Metadata.Duration).
		Int("errors", len(s.result.Errors)).
		Msg(s.result.Summary())
	return s.result, nil
}

// Differences is not supported.
func (r *reconciler) Differences(_, _ model.Object) ([]comparator.Difference, error) {
	return nil, errors.NewUnsupportedError("differences", "reconciler")
}

func validate(baseline, revision model.Model, comparators []comparator.Comparator) error {
	if baseline == nil || revision == nil {
		return &errors.ValidationError{Field: "models", Message: "baseline and revision are required"}
	}
	if len(comparators) == 0 {
		return errors.NewConfigError("reconciler", "no comparators configured", nil)
	}
	seen := make(map[string]int, len(comparators))
	for i, c := range comparators {
		if c == nil {
			return errors.NewConfigError("reconciler", fmt.Sprintf("comparator %d is nil", i), nil)
		}
		if j, dup := seen[c.Name()]; dup {
			return errors.NewConfigError("reconciler",
				fmt.Sprintf("comparators %d and %d are both named %s", j, i, c.Name()), nil)
		}
		seen[c.Name()] = i
	}
	return nil
}

// open creates the session, filters both models by target type and applies
// weight overrides. A comparator rejecting its override is a configuration error.
func (r *reconciler) open(ctx context.Context, baseline, revision model.Model, comparators []comparator.Comparator) (context.Context, *session, error) {
	id := uuid.NewString()
	ctx = logging.WithSession(ctx, id)

	if r.types != nil && !r.types.IsEmpty() {
		logging.FromContext(ctx).Debug().Strs("target_types", r.types.Patterns()).Msg("Filtering models by type")
		keep := func(obj model.Object) bool { return r.types.Match(obj.Type()) }
		baseline = model.Filter(baseline, keep)
		revision = model.Filter(revision, keep)
	}

	result := newResult(id)
	result.Metadata.Workers = r.workers
	result.Metadata.Stats.BaselineObjects = len(baseline.Objects())
	result.Metadata.Stats.RevisionObjects = len(revision.Objects())
	for _, c := range comparators {
		result.Metadata.Comparators = append(result.Metadata.Comparators, c.Name())
		if w, ok := r.weights[c.Category()]; ok {
			if err := c.SetWeight(w); err != nil {
				return nil, nil, errors.NewConfigError("reconciler",
					fmt.Sprintf("comparator %s rejected weight %d", c.Name(), w), err)
			}
		}
	}

	return ctx, &session{
		Session: &comparator.Session{ID: id, Baseline: baseline, Revision: revision},
		result:  result,
		logger:  logging.FromContext(ctx),
	}, nil
}

func (r *reconciler) prepare(ctx context.Context, s *session, comparators []comparator.Comparator) error {
	ctx = logging.WithOperation(ctx, "prepare")
	for _, c := range comparators {
		p, ok := c.(comparator.Preparer)
		if !ok {
			continue
		}
		start := time.Now()
		if err := p.Prepare(ctx, s.Session); err != nil {
			return err
		}
		s.logger.Debug().
			Str("comparator", c.Name()).
			Dur("duration", time.Since(start)).
			Msg("Comparator prepared")
	}
	return nil
}

// compare runs each comparator as one task of the worker pool. Only fatal
// errors stop the pool.
func (r *reconciler) compare(ctx context.Context, s *session, comparators []comparator.Comparator) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, c := range comparators {
		g.Go(func() error {
			return r.run(gctx, s, c)
		})
	}
	return g.Wait()
}

// run compares every baseline object with c, then collects c's residuals.
func (r *reconciler) run(ctx context.Context, s *session, c comparator.Comparator) error {
	ctx = logging.WithComparator(ctx, c.Name(), c.Category())
	logger := logging.FromContext(ctx)
	start := time.Now()
	candidates, failures := 0, 0

	for _, obj := range s.Baseline.Objects() {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := compareOne(c, obj, s.Revision)
		if err != nil {
			if errors.IsInvalidState(err) {
				return err
			}
			failures++
			s.recordError(err)
			logging.FromContext(logging.WithObject(ctx, model.Describe(obj))).Warn().
				Err(err).
				Msg("Comparator failed on object")
			continue
		}
		if res == nil {
			continue
		}
		candidates += res.Len()
		if err := s.result.Set.Add(res); err != nil {
			return errors.NewStateError(c.Name(), err.Error())
		}
	}

	residuals, err := residualsOf(c, s.Revision)
	switch {
	case err != nil && errors.IsInvalidState(err):
		return err
	case err != nil:
		failures++
		s.recordError(err)
		logger.Warn().Err(err).Msg("Comparator failed on residuals")
	case residuals != nil:
		if err := s.result.Set.Add(residuals); err != nil {
			return errors.NewStateError(c.Name(), err.Error())
		}
	}

	elapsed := time.Since(start)
	r.metrics.RecordComparator(c.Name(), c.Category().String(), elapsed, candidates, failures)
	logger.Debug().
		Int("candidates", candidates).
		Int("failures", failures).
		Dur("duration", elapsed).
		Msg("Comparator finished")
	return nil
}

// compareOne calls Compare, turning failures and panics into comparator errors.
func compareOne(c comparator.Comparator, obj model.Object, revision model.Model) (res *comparator.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, errors.NewComparatorError(c.Name(), obj.Label().String(), fmt.Errorf("panic: %v", p))
		}
	}()
	res, err = c.Compare(obj, revision)
	if err != nil {
		return nil, errors.WrapComparator(c.Name(), obj.Label().String(), err)
	}
	if res != nil && res.Baseline != obj {
		return nil, errors.NewComparatorError(c.Name(), obj.Label().String(),
			fmt.Errorf("result is for %s", model.Describe(res.Baseline)))
	}
	return res, nil
}

func residualsOf(c comparator.Comparator, revision model.Model) (res *comparator.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, errors.NewComparatorError(c.Name(), "", fmt.Errorf("panic: %v", p))
		}
	}()
	res, err = c.Residuals(revision)
	if err != nil {
		return nil, errors.WrapComparator(c.Name(), "", err)
	}
	if res != nil && !res.IsResidual() {
		return nil, errors.NewComparatorError(c.Name(), "", fmt.Errorf("residual result has a baseline"))
	}
	return res, nil
}

// resolve runs the configured conflict resolution passes.
func (r *reconciler) resolve(s *session) {
	var total results.ResolveStats
	passes := 0
	for passes < r.passes {
		stats := s.result.Set.Resolve()
		passes++
		total = total.Add(stats)
		if !stats.Changed() {
			break
		}
	}
	s.result.Metadata.Stats.ResolvePasses = passes
	s.result.Metadata.Stats.ConflictsResolved = total.Residual + total.Ambiguous
	r.metrics.RecordConflicts("residual", total.Residual)
	r.metrics.RecordConflicts("ambiguous", total.Ambiguous)

	s.logger.Debug().
		Int("passes", passes).
		Int("residual_removed", total.Residual).
		Int("ambiguous_removed", total.Ambiguous).
		Msg("Conflicts resolved")
}

func (r *reconciler) record(s *session) {
	stats := s.result.Metadata.Stats
	r.metrics.RecordSession(metrics.StatusSuccess, s.result.Metadata.Duration)
	for v, n := range map[results.Verdict]int{
		results.Unchanged: stats.Unchanged,
		results.Modified:  stats.Modified,
		results.Deleted:   stats.Deleted,
		results.Ambiguous: stats.Ambiguous,
		results.Added:     stats.Added,
	} {
		r.metrics.RecordVerdict(v.String(), n)
	}
}

func (r *reconciler) fail(s *session, err error) error {
	r.metrics.RecordSession(metrics.StatusFailed, time.Since(s.result.Metadata.StartTime))
	s.logger.Error().Err(err).Msg("Reconciliation failed")
	return err
}
