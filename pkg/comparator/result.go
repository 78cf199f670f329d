package comparator

import (
	"slices"

	"github.com/agentstation/bimdiff/pkg/model"
)

// ResultType classifies a single comparator result.
type ResultType int

// Result types.
const (
	// Match is a baseline with exactly one candidate.
	Match ResultType = iota
	// OnlyBaseline is a baseline with no candidates.
	OnlyBaseline
	// OnlyRevision is a residual result.
	OnlyRevision
	// Ambiguous is a baseline with several candidates.
	Ambiguous
)

// String returns the result type name.
func (t ResultType) String() string {
	switch t {
	case Match:
		return "match"
	case OnlyBaseline:
		return "only-baseline"
	case OnlyRevision:
		return "only-revision"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Result is what one comparator found for one baseline object. A nil
// Baseline marks a residual result. Candidates keep insertion order and hold
// no duplicates.
type Result struct {
	Baseline   model.Object
	Comparator Comparator

	// Weight is the comparator's weight when the result was created. Results
	// keep it when the comparator is later reweighted for another session.
	Weight int

	candidates []model.Object
	seen       map[model.Object]struct{}
}

// NewResult creates an empty result.
func NewResult(c Comparator, baseline model.Object) *Result {
	r := &Result{
		Baseline:   baseline,
		Comparator: c,
		seen:       make(map[model.Object]struct{}),
	}
	if c != nil {
		r.Weight = c.Weight()
	}
	return r
}

// Add appends obj unless already present.
func (r *Result) Add(obj model.Object) bool {
	if _, ok := r.seen[obj]; ok {
		return false
	}
	r.seen[obj] = struct{}{}
	r.candidates = append(r.candidates, obj)
	return true
}

// Remove drops obj, keeping the order of the rest.
func (r *Result) Remove(obj model.Object) bool {
	if _, ok := r.seen[obj]; !ok {
		return false
	}
	delete(r.seen, obj)
	r.candidates = slices.DeleteFunc(r.candidates, func(o model.Object) bool { return o == obj })
	return true
}

// Contains reports whether obj is a candidate.
func (r *Result) Contains(obj model.Object) bool {
	_, ok := r.seen[obj]
	return ok
}

// Candidates returns a copy of the candidates.
func (r *Result) Candidates() []model.Object {
	return slices.Clone(r.candidates)
}

// Len returns the number of candidates.
func (r *Result) Len() int {
	return len(r.candidates)
}

// IsResidual reports whether the result has no baseline.
func (r *Result) IsResidual() bool {
	return r.Baseline == nil
}

// Type classifies the result.
func (r *Result) Type() ResultType {
	switch {
	case r.IsResidual():
		return OnlyRevision
	case len(r.candidates) == 0:
		return OnlyBaseline
	case len(r.candidates) == 1:
		return Match
	default:
		return Ambiguous
	}
}
