package model

// MaterialKind tags the variants of Material.
type MaterialKind int

// Material kinds.
const (
	SingleMaterial MaterialKind = iota
	ListMaterial
	LayerMaterial
	LayerSetMaterial
	LayerSetUsageMaterial
)

// Material is a material assignment. The set of implementations is closed:
// NamedMaterial, MaterialList, MaterialLayer, MaterialLayerSet and
// MaterialLayerSetUsage.
type Material interface {
	MaterialKind() MaterialKind
	isMaterial()
}

// NamedMaterial is a single material.
type NamedMaterial struct {
	Name string
}

// MaterialList is an unordered collection of materials.
type MaterialList struct {
	Materials []Material
}

// MaterialLayer is one layer of a layer set. Material may be nil.
type MaterialLayer struct {
	Material  *NamedMaterial
	Thickness float64
}

// MaterialLayerSet is a stack of layers.
type MaterialLayerSet struct {
	Name   string
	Layers []MaterialLayer
}

// MaterialLayerSetUsage applies a layer set to an object.
type MaterialLayerSetUsage struct {
	LayerSet MaterialLayerSet
}

func (NamedMaterial) MaterialKind() MaterialKind         { return SingleMaterial }
func (MaterialList) MaterialKind() MaterialKind          { return ListMaterial }
func (MaterialLayer) MaterialKind() MaterialKind         { return LayerMaterial }
func (MaterialLayerSet) MaterialKind() MaterialKind      { return LayerSetMaterial }
func (MaterialLayerSetUsage) MaterialKind() MaterialKind { return LayerSetUsageMaterial }

func (NamedMaterial) isMaterial()         {}
func (MaterialList) isMaterial()          {}
func (MaterialLayer) isMaterial()         {}
func (MaterialLayerSet) isMaterial()      {}
func (MaterialLayerSetUsage) isMaterial() {}
