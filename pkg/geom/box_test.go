package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/bimdiff/pkg/geom"
)

func unitBox(x, y, z float64) geom.Box {
	return geom.NewBox(geom.Vec(x, y, z), geom.Vec(x+1, y+1, z+1))
}

func TestEmptyAndUnion(t *testing.T) {
	empty := geom.Empty()
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.IsFinite())

	a := unitBox(0, 0, 0)
	b := unitBox(4, -2, 1)

	assert.Equal(t, a, empty.Union(a))
	assert.Equal(t, a, a.Union(empty))

	u := a.Union(b)
	assert.Equal(t, geom.Vec(0, -2, 0), u.Min)
	assert.Equal(t, geom.Vec(5, 1, 2), u.Max)
	assert.Equal(t, 5.0, u.MaxExtent())
	assert.Equal(t, geom.Vec(2.5, -0.5, 1), u.Centre())
}

func TestNewBoxNormalizesCorners(t *testing.T) {
	b := geom.NewBox(geom.Vec(3, 0, 5), geom.Vec(1, 2, 4))
	assert.Equal(t, geom.Vec(1, 0, 4), b.Min)
	assert.Equal(t, geom.Vec(3, 2, 5), b.Max)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, unitBox(0, 0, 0).IsFinite())
	nan := geom.NewBox(geom.Vec(math.NaN(), 0, 0), geom.Vec(1, 1, 1))
	assert.False(t, nan.IsFinite())
	inf := geom.Box{Min: geom.Vec(0, 0, 0), Max: geom.Vec(math.Inf(1), 1, 1)}
	assert.False(t, inf.IsFinite())
}

func TestAlmostEqual(t *testing.T) {
	a := unitBox(0, 0, 0)
	tests := []struct {
		name string
		b    geom.Box
		tol  float64
		want bool
	}{
		{"identical", a, 0, true},
		{"within tolerance", geom.NewBox(geom.Vec(1e-6, 0, 0), geom.Vec(1, 1, 1+1e-6)), 1e-5, true},
		{"min corner off", geom.NewBox(geom.Vec(0.1, 0, 0), geom.Vec(1, 1, 1)), 1e-5, false},
		{"max corner off", geom.NewBox(geom.Vec(0, 0, 0), geom.Vec(1, 1, 1.1)), 1e-5, false},
		{"on the boundary", geom.NewBox(geom.Vec(0, 0, 0), geom.Vec(1.5, 1, 1)), 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.AlmostEqual(tt.b, tt.tol))
			assert.Equal(t, tt.want, tt.b.AlmostEqual(a, tt.tol))
		})
	}
}

func TestSpatialRelations(t *testing.T) {
	a := geom.NewBox(geom.Vec(0, 0, 0), geom.Vec(2, 2, 2))
	inner := geom.NewBox(geom.Vec(0.5, 0.5, 0.5), geom.Vec(1, 1, 1))
	adjacent := geom.NewBox(geom.Vec(2, 0, 0), geom.Vec(3, 2, 2))
	overlapping := geom.NewBox(geom.Vec(1, 1, 1), geom.Vec(3, 3, 3))
	far := geom.NewBox(geom.Vec(10, 10, 10), geom.Vec(11, 11, 11))

	assert.True(t, a.Contains(inner, 0))
	assert.False(t, inner.Contains(a, 0))
	assert.True(t, a.ContainsPoint(geom.Vec(2, 2, 2), 0))

	assert.True(t, a.Touches(adjacent, 1e-9))
	assert.False(t, a.Touches(overlapping, 1e-9))
	assert.False(t, a.Touches(far, 1e-9))

	assert.True(t, a.Intersects(overlapping, 0))
	assert.True(t, a.Intersects(adjacent, 0))
	assert.True(t, a.Disjoint(far, 0))
	assert.False(t, a.Disjoint(far, 100))
}

func TestBorderDirections(t *testing.T) {
	outer := geom.NewBox(geom.Vec(0, 0, 0), geom.Vec(4, 4, 4))

	corner := geom.NewBox(geom.Vec(0, 0, 0), geom.Vec(1, 1, 1))
	assert.ElementsMatch(t, []geom.Direction{geom.West, geom.South, geom.Down}, outer.BorderDirections(corner, 1e-9))

	top := geom.NewBox(geom.Vec(1, 1, 3), geom.Vec(2, 4, 4))
	assert.ElementsMatch(t, []geom.Direction{geom.North, geom.Up}, outer.BorderDirections(top, 1e-9))

	middle := geom.NewBox(geom.Vec(1, 1, 1), geom.Vec(2, 2, 2))
	assert.Empty(t, outer.BorderDirections(middle, 1e-9))
}

func TestExtendsPast(t *testing.T) {
	parent := geom.NewBox(geom.Vec(0, 0, 0), geom.Vec(4, 4, 4))
	child := geom.NewBox(geom.Vec(0, 0, 0), geom.Vec(2, 2, 2))

	assert.True(t, parent.ExtendsPast(child, geom.East, 0))
	assert.True(t, parent.ExtendsPast(child, geom.North, 0))
	assert.True(t, parent.ExtendsPast(child, geom.Up, 0))
	assert.False(t, parent.ExtendsPast(child, geom.West, 0))
	assert.False(t, parent.ExtendsPast(child, geom.South, 0))
	assert.False(t, parent.ExtendsPast(child, geom.Down, 0))
}

func TestDirection(t *testing.T) {
	for _, d := range geom.Directions {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.NotEqual(t, d, d.Opposite())
		assert.NotEqual(t, "unknown", d.String())
	}
	assert.Equal(t, "unknown", geom.Direction(42).String())
}
