package comparator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/geom"
	"github.com/agentstation/bimdiff/pkg/model"
)

func box(x0, y0, z0, x1, y1, z1 float64) geom.Box {
	return geom.NewBox(geom.Vec(x0, y0, z0), geom.Vec(x1, y1, z1))
}

func newSession(id string, baseline, revision model.Model) *comparator.Session {
	return &comparator.Session{ID: id, Baseline: baseline, Revision: revision}
}

func prepare(t *testing.T, c comparator.Comparator, baseline, revision model.Model) {
	t.Helper()
	p, ok := c.(comparator.Preparer)
	require.True(t, ok, "%s does not implement Preparer", c.Name())
	require.NoError(t, p.Prepare(context.Background(), newSession("session", baseline, revision)))
}

func labels(objs []model.Object) []model.Label {
	out := make([]model.Label, len(objs))
	for i, o := range objs {
		out[i] = o.Label()
	}
	return out
}

// compareAll runs c over every baseline object and returns the results by baseline label.
func compareAll(t *testing.T, c comparator.Comparator, baseline, revision model.Model) map[model.Label]*comparator.Result {
	t.Helper()
	out := make(map[model.Label]*comparator.Result)
	for _, obj := range baseline.Objects() {
		res, err := c.Compare(obj, revision)
		require.NoError(t, err)
		if res != nil {
			out[obj.Label()] = res
		}
	}
	return out
}
