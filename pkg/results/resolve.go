package results

import (
	"github.com/agentstation/bimdiff/pkg/model"
)

// ResolveStats counts the candidate removals of one Resolve pass.
type ResolveStats struct {
	// Residual counts removals from residual results.
	Residual int
	// Ambiguous counts removals from ambiguous groups.
	Ambiguous int
}

// Changed reports whether the pass removed anything.
func (s ResolveStats) Changed() bool {
	return s.Residual > 0 || s.Ambiguous > 0
}

// Add sums two stats.
func (s ResolveStats) Add(o ResolveStats) ResolveStats {
	return ResolveStats{Residual: s.Residual + o.Residual, Ambiguous: s.Ambiguous + o.Ambiguous}
}

// Resolve removes candidates that conflict with matches elsewhere in the set.
// It applies two rules in rounds until a round removes nothing:
//
//  1. A revision object in the best match of any baseline object, one-to-one
//     or ambiguous, is removed from every residual result.
//  2. In every ambiguous group, best matches that are another baseline
//     object's one-to-one match are removed from all of the group's results.
//
// Narrowing an ambiguous group can create a one-to-one match that conflicts
// with other groups, so the rules are repeated on the new state. Calling
// Resolve on a resolved set changes nothing. Resolve only removes
// candidates; maximal weights are unaffected.
func (s *Set) Resolve() ResolveStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats ResolveStats
	for {
		round := s.resolveRound()
		stats = stats.Add(round)
		if !round.Changed() {
			return stats
		}
	}
}

// resolveRound applies each rule once, against the state as it stands when
// the rule starts.
func (s *Set) resolveRound() ResolveStats {
	var stats ResolveStats

	if s.residual != nil {
		for obj := range s.bestMatched() {
			stats.Residual += s.residual.remove(obj)
		}
	}

	oneToOne := make(map[model.Object]model.Object)
	for _, g := range s.groups {
		if g.Verdict().IsMatch() {
			oneToOne[g.BestMatch()[0]] = g.baseline
		}
	}
	for _, g := range s.ambiguous() {
		for _, obj := range g.BestMatch() {
			if owner, ok := oneToOne[obj]; ok && owner != g.baseline {
				stats.Ambiguous += g.remove(obj)
			}
		}
	}
	return stats
}
