package reconciler_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/geom"
	"github.com/agentstation/bimdiff/pkg/model"
	"github.com/agentstation/bimdiff/pkg/model/memory"
)

func box(x0, y0, z0, x1, y1, z1 float64) geom.Box {
	return geom.NewBox(geom.Vec(x0, y0, z0), geom.Vec(x1, y1, z1))
}

func fire(set, rating string) model.PropertySet {
	return model.PropertySet{Name: set, Properties: []model.Property{
		model.SingleValue{Name: "FireRating", Value: model.NewValue(rating)},
	}}
}

// site returns a small building:
//
//	#1 wall    -> #11 unchanged
//	#2 door    -> #12 fire rating changed
//	#3 window     removed
//	              #13 slab added
func site() (*memory.Model, *memory.Model) {
	concrete := model.NamedMaterial{Name: "Concrete"}

	baseline := memory.New("baseline")
	baseline.Add(1, "IfcWall",
		memory.WithGlobalID("w1"), memory.WithName("Wall-01"), memory.WithAttribute("Tag", "T1"),
		memory.WithMaterial(concrete), memory.WithPropertySets(fire("Pset_WallCommon", "EI60")),
		memory.WithBox(box(0, 0, 0, 4, 0.2, 3)))
	baseline.Add(2, "IfcDoor",
		memory.WithGlobalID("d1"), memory.WithName("Door-01"),
		memory.WithPropertySets(fire("Pset_DoorCommon", "EI30")),
		memory.WithBox(box(1, 0, 0, 2, 0.2, 2.1)))
	baseline.Add(3, "IfcWindow",
		memory.WithGlobalID("x1"), memory.WithName("Window-01"),
		memory.WithBox(box(3, 0, 1, 3.5, 0.2, 2)))

	revision := memory.New("revision")
	revision.Add(11, "IfcWall",
		memory.WithGlobalID("w1"), memory.WithName("Wall-01"), memory.WithAttribute("Tag", "T1"),
		memory.WithMaterial(concrete), memory.WithPropertySets(fire("Pset_WallCommon", "EI60")),
		memory.WithBox(box(0, 0, 0, 4, 0.2, 3)))
	revision.Add(12, "IfcDoor",
		memory.WithGlobalID("d1"), memory.WithName("Door-01"),
		memory.WithPropertySets(fire("Pset_DoorCommon", "EI60")),
		memory.WithBox(box(1, 0, 0, 2, 0.2, 2.1)))
	revision.Add(13, "IfcSlab",
		memory.WithGlobalID("s1"), memory.WithName("Slab-01"),
		memory.WithBox(box(0, 0, -0.3, 4, 4, 0)))

	return baseline, revision
}

// builtins returns the six built-in comparators in default order.
func builtins(t *testing.T, baseline, revision *memory.Model) []comparator.Comparator {
	t.Helper()
	p := memory.Providers(baseline, revision)

	guid, err := comparator.NewGUID()
	require.NoError(t, err)
	name, err := comparator.NewName()
	require.NoError(t, err)
	attr, err := comparator.NewAttribute("Tag", p)
	require.NoError(t, err)
	material, err := comparator.NewMaterial(p)
	require.NoError(t, err)
	pset, err := comparator.NewPropertySet(p)
	require.NoError(t, err)
	geometry, err := comparator.NewGeometry(p)
	require.NoError(t, err)

	return []comparator.Comparator{guid, name, attr, material, pset, geometry}
}

// flaky proposes nothing and misbehaves on chosen labels.
type flaky struct {
	comparator.Base
	fail, panics, fatal model.Label
}

func newFlaky(name string) *flaky {
	return &flaky{Base: comparator.NewBase(name, "Misbehaves on purpose", comparator.CategoryCustom)}
}

func (f *flaky) Compare(obj model.Object, _ model.Model) (*comparator.Result, error) {
	switch obj.Label() {
	case f.fail:
		return nil, fmt.Errorf("cannot read %s", obj.Label())
	case f.panics:
		panic("index out of range")
	case f.fatal:
		return nil, errors.NewStateError(f.Name(), "cache corrupted")
	}
	return comparator.NewResult(f, obj), nil
}

func (f *flaky) Residuals(model.Model) (*comparator.Result, error) {
	return nil, nil
}

func labels(objs []model.Object) []model.Label {
	out := make([]model.Label, len(objs))
	for i, o := range objs {
		out[i] = o.Label()
	}
	return out
}

// scripted proposes fixed revision labels per baseline label.
type scripted struct {
	comparator.Base
	proposals map[model.Label][]model.Label
}

func newScripted(name string, proposals map[model.Label][]model.Label) *scripted {
	return &scripted{
		Base:      comparator.NewBase(name, "Proposes fixed candidates", comparator.CategoryCustom),
		proposals: proposals,
	}
}

func (s *scripted) Compare(obj model.Object, revision model.Model) (*comparator.Result, error) {
	want, ok := s.proposals[obj.Label()]
	if !ok {
		return nil, nil
	}
	res := comparator.NewResult(s, obj)
	for _, label := range want {
		for _, candidate := range revision.Objects() {
			if candidate.Label() == label {
				res.Add(candidate)
			}
		}
	}
	return res, nil
}

func (s *scripted) Residuals(model.Model) (*comparator.Result, error) {
	return nil, nil
}

// capped accepts weights up to a limit.
type capped struct {
	*scripted
	limit int
}

func (c *capped) SetWeight(weight int) error {
	if weight > c.limit {
		return fmt.Errorf("weight %d exceeds %d", weight, c.limit)
	}
	return c.scripted.SetWeight(weight)
}
