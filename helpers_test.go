package bimdiff_test

import (
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

// site returns a wall kept as is, a door whose fire rating changed, a
// removed window and an added slab.
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

// bare hides every provider interface of the wrapped model.
type bare struct{ model.Model }

func labels(objs []model.Object) []model.Label {
	out := make([]model.Label, len(objs))
	for i, o := range objs {
		out[i] = o.Label()
	}
	return out
}
