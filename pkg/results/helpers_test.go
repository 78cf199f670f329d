package results_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/model"
	"github.com/agentstation/bimdiff/pkg/model/memory"
)

// stub is a comparator that never runs; tests feed its results by hand.
type stub struct {
	comparator.Base
}

func newStub(t *testing.T, name string, weight int) *stub {
	t.Helper()
	s := &stub{Base: comparator.NewBase(name, "", comparator.CategoryCustom)}
	require.NoError(t, s.SetWeight(weight))
	return s
}

func (s *stub) Compare(model.Object, model.Model) (*comparator.Result, error) { return nil, nil }

func (s *stub) Residuals(model.Model) (*comparator.Result, error) { return nil, nil }

func result(c comparator.Comparator, baseline model.Object, candidates ...model.Object) *comparator.Result {
	r := comparator.NewResult(c, baseline)
	for _, obj := range candidates {
		r.Add(obj)
	}
	return r
}

// objects returns elements labelled from..from+n-1.
func objects(m *memory.Model, from model.Label, n int) []model.Object {
	out := make([]model.Object, n)
	for i := range out {
		out[i] = m.Add(from+model.Label(i), "IfcWall")
	}
	return out
}

func labels(objs []model.Object) []model.Label {
	out := make([]model.Label, len(objs))
	for i, o := range objs {
		out[i] = o.Label()
	}
	return out
}
