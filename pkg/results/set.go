// Package results holds the weighted outcome of a reconciliation.
//
// Comparator results are grouped by baseline object. Within a group every
// candidate accumulates the weights of the comparators that proposed it; the
// heaviest candidates are the group's best match. The views Deleted, Added,
// MatchOneToOne and Ambiguity are computed from the groups on demand, so they
// always reflect the current state, including after Resolve.
package results

import (
	"fmt"
	"slices"
	"sync"

	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/model"
)

// Match is a baseline object paired with a single revision object.
type Match struct {
	Baseline      model.Object
	Revision      model.Object
	Weight        int
	MaximalWeight int
	Verdict       Verdict
}

// Set is the collection of groups of one reconciliation. Add is safe for
// concurrent use; views take a read lock.
type Set struct {
	mu       sync.RWMutex
	groups   map[model.Object]*Group
	residual *Group
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{groups: make(map[model.Object]*Group)}
}

// Add files a comparator result under its baseline's group, or under the
// residual group when it has no baseline. A comparator may report once per
// group.
func (s *Set) Add(r *comparator.Result) error {
	if r == nil {
		return &errors.ValidationError{Field: "result", Message: "cannot be nil"}
	}
	if r.Comparator == nil {
		return &errors.ValidationError{Field: "result.comparator", Message: "cannot be nil"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.groupFor(r.Baseline)
	if !g.insert(r) {
		target := "residuals"
		if r.Baseline != nil {
			target = model.Describe(r.Baseline)
		}
		return &errors.ValidationError{
			Field:   "result",
			Value:   r.Comparator.Name(),
			Message: fmt.Sprintf("comparator %s already reported for %s", r.Comparator.Name(), target),
		}
	}
	return nil
}

func (s *Set) groupFor(baseline model.Object) *Group {
	if baseline == nil {
		if s.residual == nil {
			s.residual = newGroup(nil)
		}
		return s.residual
	}
	g, ok := s.groups[baseline]
	if !ok {
		g = newGroup(baseline)
		s.groups[baseline] = g
	}
	return g
}

// Len returns the number of baseline groups.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.groups)
}

// Group returns the group of a baseline object.
func (s *Set) Group(baseline model.Object) (*Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[baseline]
	return g, ok
}

// Groups returns the baseline groups ordered by baseline label.
func (s *Set) Groups() []*Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedGroups()
}

func (s *Set) sortedGroups() []*Group {
	out := make([]*Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b *Group) int { return byLabel(a.baseline, b.baseline) })
	return out
}

// Residual returns the residual group, nil when no comparator reported residuals.
func (s *Set) Residual() *Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.residual
}

// Deleted returns the baseline objects without any weighted candidate.
func (s *Set) Deleted() []model.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Object
	for _, g := range s.sortedGroups() {
		if g.Verdict() == Deleted {
			out = append(out, g.baseline)
		}
	}
	return out
}

// Added returns the revision objects reported as residual by some comparator
// that are not the best match of any baseline object, ordered by label.
func (s *Set) Added() []model.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.added()
}

func (s *Set) added() []model.Object {
	if s.residual == nil {
		return nil
	}
	matched := s.bestMatched()
	var out []model.Object
	for _, obj := range s.residual.Candidates() {
		if _, ok := matched[obj]; !ok {
			out = append(out, obj)
		}
	}
	return out
}

// bestMatched returns every revision object that is in some baseline
// group's best match.
func (s *Set) bestMatched() map[model.Object]struct{} {
	matched := make(map[model.Object]struct{})
	for _, g := range s.groups {
		for _, obj := range g.BestMatch() {
			matched[obj] = struct{}{}
		}
	}
	return matched
}

// MatchOneToOne returns the baseline objects with exactly one best match,
// ordered by baseline label.
func (s *Set) MatchOneToOne() []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matches(func(Verdict) bool { return true })
}

// Unchanged returns the one-to-one matches that every applicable comparator confirmed.
func (s *Set) Unchanged() []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matches(func(v Verdict) bool { return v == Unchanged })
}

// Modified returns the one-to-one matches that some applicable comparator rejected.
func (s *Set) Modified() []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matches(func(v Verdict) bool { return v == Modified })
}

func (s *Set) matches(keep func(Verdict) bool) []Match {
	var out []Match
	for _, g := range s.sortedGroups() {
		v := g.Verdict()
		if !v.IsMatch() || !keep(v) {
			continue
		}
		out = append(out, Match{
			Baseline:      g.baseline,
			Revision:      g.BestMatch()[0],
			Weight:        g.BestMatchWeight(),
			MaximalWeight: g.MaximalWeight(),
			Verdict:       v,
		})
	}
	return out
}

// Ambiguity returns the groups with more than one best match, ordered by baseline label.
func (s *Set) Ambiguity() []*Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambiguous()
}

func (s *Set) ambiguous() []*Group {
	var out []*Group
	for _, g := range s.sortedGroups() {
		if g.Verdict() == Ambiguous {
			out = append(out, g)
		}
	}
	return out
}

// Counts returns the number of baseline objects per verdict and the number
// of added revision objects.
func (s *Set) Counts() map[Verdict]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[Verdict]int, len(Verdicts))
	for _, v := range Verdicts {
		counts[v] = 0
	}
	for _, g := range s.groups {
		counts[g.Verdict()]++
	}
	counts[Added] = len(s.added())
	return counts
}
