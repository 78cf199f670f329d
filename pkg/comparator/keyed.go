package comparator

import (
	"context"

	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/logging"
	"github.com/agentstation/bimdiff/pkg/model"
)

// KeyFunc derives the lookup key of an object. ok is false when the object
// carries nothing this comparator can use.
type KeyFunc[K comparable] func(obj model.Object) (key K, ok bool, err error)

// AcceptFunc confirms that a revision object sharing the baseline's key is a
// real match. It guards against hash collisions and kind mismatches.
type AcceptFunc func(baseline, revision model.Object) (bool, error)

// Keyed is a comparator that indexes revision objects by a key and proposes
// the revision objects sharing the baseline object's key. The identity,
// name, attribute, material and property-set comparators are Keyed.
type Keyed[K comparable] struct {
	Base
	key    KeyFunc[K]
	accept AcceptFunc

	index   map[K][]model.Object
	members []model.Object
	all     bool
}

// NewKeyed creates a keyed comparator. accept may be nil.
func NewKeyed[K comparable](name, description string, category Category, key KeyFunc[K], accept AcceptFunc, opts ...Option) (*Keyed[K], error) {
	if key == nil {
		return nil, &errors.ValidationError{Field: "key", Message: "cannot be nil"}
	}
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Keyed[K]{
		Base:   o.base(name, description, category),
		key:    key,
		accept: accept,
		all:    o.all,
	}, nil
}

// Prepare binds the comparator to the session and indexes the revision.
func (k *Keyed[K]) Prepare(ctx context.Context, session *Session) error {
	if session == nil || session.Revision == nil {
		return &errors.ValidationError{Field: "session", Message: "revision model is required"}
	}
	if err := k.Bind(session.ID); err != nil {
		return err
	}
	k.build(ctx, session.Revision)
	return nil
}

// build indexes every revision object that has a key. Objects whose key
// cannot be computed are skipped and logged. members holds the residual
// candidates: the keyed objects, or every object with WithAllResiduals.
func (k *Keyed[K]) build(ctx context.Context, revision model.Model) {
	k.index = make(map[K][]model.Object)
	k.members = k.members[:0]

	skipped := 0
	for _, obj := range revision.Objects() {
		key, ok, err := k.key(obj)
		if k.all {
			k.members = append(k.members, obj)
		}
		if err != nil {
			skipped++
			logging.FromContext(ctx).Warn().
				Err(err).
				Str("comparator", k.Name()).
				Str("object", model.Describe(obj)).
				Msg("Skipping revision object")
			continue
		}
		if !ok {
			continue
		}
		k.index[key] = append(k.index[key], obj)
		if !k.all {
			k.members = append(k.members, obj)
		}
	}

	logging.FromContext(ctx).Debug().
		Str("comparator", k.Name()).
		Int("members", len(k.members)).
		Int("keys", len(k.index)).
		Int("skipped", skipped).
		Msg("Revision index built")
}

// Compare returns the revision objects sharing baseline's key. An
// unprepared comparator indexes revision on first use.
func (k *Keyed[K]) Compare(baseline model.Object, revision model.Model) (*Result, error) {
	if k.index == nil {
		if revision == nil {
			return nil, &errors.ValidationError{Field: "revision", Message: "cannot be nil"}
		}
		k.build(context.Background(), revision)
	}

	key, ok, err := k.key(baseline)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var found []model.Object
	for _, candidate := range k.index[key] {
		if k.accept != nil {
			match, err := k.accept(baseline, candidate)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		found = append(found, candidate)
	}

	result := NewResult(k, baseline)
	for _, candidate := range found {
		result.Add(candidate)
	}
	k.Claim(found...)
	return result, nil
}

// Residuals returns the residual candidates that were never claimed.
func (k *Keyed[K]) Residuals(revision model.Model) (*Result, error) {
	if k.index == nil && revision != nil {
		k.build(context.Background(), revision)
	}
	result := NewResult(k, nil)
	for _, obj := range k.members {
		if !k.IsClaimed(obj) {
			result.Add(obj)
		}
	}
	return result, nil
}

// Reset clears the session binding, the claimed set and the revision index.
func (k *Keyed[K]) Reset() {
	k.Base.Reset()
	k.index = nil
	k.members = nil
}
