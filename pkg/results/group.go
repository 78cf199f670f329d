package results

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/constants"
	"github.com/agentstation/bimdiff/pkg/model"
)

// WeightedCandidate is a revision object with the accumulated weight of
// every comparator in a group that proposed it.
type WeightedCandidate struct {
	Candidate model.Object
	Weight    int
}

// Evidence tells whether one comparator of a group proposed a candidate.
type Evidence struct {
	Comparator string
	Category   comparator.Category
	Weight     int
	Matched    bool
}

// Group gathers every comparator result for one baseline object, or the
// residual results when Baseline is nil. Results are kept sorted by
// comparator name, at most one per comparator.
//
// A Group is owned by its Set and must not be read while the set is being
// written.
type Group struct {
	baseline model.Object
	results  []*comparator.Result
}

func newGroup(baseline model.Object) *Group {
	return &Group{baseline: baseline}
}

// Baseline returns the baseline object, nil for the residual group.
func (g *Group) Baseline() model.Object {
	return g.baseline
}

// IsResidual reports whether this is the residual group.
func (g *Group) IsResidual() bool {
	return g.baseline == nil
}

// Results returns the group's results ordered by comparator name.
func (g *Group) Results() []*comparator.Result {
	return slices.Clone(g.results)
}

// Result returns the result of the named comparator.
func (g *Group) Result(name string) (*comparator.Result, bool) {
	i, ok := g.find(name)
	if !ok {
		return nil, false
	}
	return g.results[i], true
}

func (g *Group) find(name string) (int, bool) {
	return slices.BinarySearchFunc(g.results, name, func(r *comparator.Result, name string) int {
		return strings.Compare(r.Comparator.Name(), name)
	})
}

// insert adds r in name order. It reports false when the comparator already
// has a result in the group.
func (g *Group) insert(r *comparator.Result) bool {
	i, ok := g.find(r.Comparator.Name())
	if ok {
		return false
	}
	g.results = slices.Insert(g.results, i, r)
	return true
}

// remove drops obj from every result and returns how many results held it.
func (g *Group) remove(obj model.Object) int {
	n := 0
	for _, r := range g.results {
		if r.Remove(obj) {
			n++
		}
	}
	return n
}

// Candidates returns the union of all result candidates ordered by label.
func (g *Group) Candidates() []model.Object {
	seen := make(map[model.Object]struct{})
	var out []model.Object
	for _, r := range g.results {
		for _, c := range r.Candidates() {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	slices.SortFunc(out, byLabel)
	return out
}

// Weighted returns every candidate with its accumulated weight, heaviest
// first and by label within equal weights.
func (g *Group) Weighted() []WeightedCandidate {
	weights := make(map[model.Object]int)
	var order []model.Object
	for _, r := range g.results {
		for _, c := range r.Candidates() {
			if _, ok := weights[c]; !ok {
				order = append(order, c)
			}
			weights[c] += r.Weight
		}
	}

	out := make([]WeightedCandidate, len(order))
	for i, c := range order {
		out[i] = WeightedCandidate{Candidate: c, Weight: weights[c]}
	}
	slices.SortFunc(out, func(a, b WeightedCandidate) int {
		if a.Weight != b.Weight {
			return cmp.Compare(b.Weight, a.Weight)
		}
		return byLabel(a.Candidate, b.Candidate)
	})
	return out
}

// BestMatch returns the candidates holding the highest positive accumulated
// weight, ordered by label. It is empty for the residual group and when no
// weighted comparator proposed anything.
func (g *Group) BestMatch() []model.Object {
	if g.IsResidual() {
		return nil
	}
	weighted := g.Weighted()
	if len(weighted) == 0 || weighted[0].Weight <= 0 {
		return nil
	}
	top := weighted[0].Weight
	var out []model.Object
	for _, wc := range weighted {
		if wc.Weight != top {
			break
		}
		out = append(out, wc.Candidate)
	}
	return out
}

// BestMatchWeight returns the weight of the best matches, 0 when there are none.
func (g *Group) BestMatchWeight() int {
	if g.IsResidual() {
		return 0
	}
	weighted := g.Weighted()
	if len(weighted) == 0 || weighted[0].Weight <= 0 {
		return 0
	}
	return weighted[0].Weight
}

// MaximalWeight returns the sum of the weights of every comparator that
// produced a result in the group, i.e. the weight a perfect match would get.
// Weights are those recorded on the results.
func (g *Group) MaximalWeight() int {
	total := 0
	for _, r := range g.results {
		total += r.Weight
	}
	return total
}

// Confidence returns the best match weight as a percentage of the maximal weight.
func (g *Group) Confidence() float64 {
	maximal := g.MaximalWeight()
	if maximal == 0 {
		return 0
	}
	return float64(g.BestMatchWeight()) / float64(maximal) * 100
}

// Verdict classifies the group.
func (g *Group) Verdict() Verdict {
	if g.IsResidual() {
		return Added
	}
	best := g.BestMatch()
	switch {
	case len(best) == 0:
		return Deleted
	case len(best) > 1:
		return Ambiguous
	}
	if float64(g.BestMatchWeight()) >= float64(g.MaximalWeight())*constants.UnchangedRatio {
		return Unchanged
	}
	return Modified
}

// Evidence reports, for each comparator in the group, whether it proposed candidate.
func (g *Group) Evidence(candidate model.Object) []Evidence {
	out := make([]Evidence, len(g.results))
	for i, r := range g.results {
		out[i] = Evidence{
			Comparator: r.Comparator.Name(),
			Category:   r.Comparator.Category(),
			Weight:     r.Weight,
			Matched:    r.Contains(candidate),
		}
	}
	return out
}

func byLabel(a, b model.Object) int {
	return cmp.Compare(a.Label(), b.Label())
}
