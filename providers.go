package bimdiff

import (
	"github.com/agentstation/bimdiff/pkg/geom"
	"github.com/agentstation/bimdiff/pkg/model"
)

// providers holds the data sources the built-in comparators read from.
type providers struct {
	geometry   model.GeometryProvider
	shapes     model.ShapeHasher
	properties model.PropertyProvider
	materials  model.MaterialProvider
	attributes model.AttributeReader
}

// detect fills every provider not set explicitly from the interfaces the
// models implement. When both models implement one, lookups try the
// baseline first and fall back to the revision.
func (p providers) detect(baseline, revision model.Model) providers {
	if p.geometry == nil {
		b, _ := baseline.(model.GeometryProvider)
		r, _ := revision.(model.GeometryProvider)
		p.geometry = pickGeometry(b, r)
	}
	if p.shapes == nil {
		b, _ := baseline.(model.ShapeHasher)
		r, _ := revision.(model.ShapeHasher)
		p.shapes = pickShapes(b, r)
	}
	if p.properties == nil {
		b, _ := baseline.(model.PropertyProvider)
		r, _ := revision.(model.PropertyProvider)
		p.properties = pickProperties(b, r)
	}
	if p.materials == nil {
		b, _ := baseline.(model.MaterialProvider)
		r, _ := revision.(model.MaterialProvider)
		p.materials = pickMaterials(b, r)
	}
	if p.attributes == nil {
		b, _ := baseline.(model.AttributeReader)
		r, _ := revision.(model.AttributeReader)
		p.attributes = pickAttributes(b, r)
	}
	return p
}

type geometryPair struct{ baseline, revision model.GeometryProvider }

func pickGeometry(b, r model.GeometryProvider) model.GeometryProvider {
	switch {
	case b == nil:
		return r
	case r == nil:
		return b
	}
	return geometryPair{b, r}
}

func (p geometryPair) BoundingBox(obj model.Object) (geom.Box, bool) {
	if box, ok := p.baseline.BoundingBox(obj); ok {
		return box, true
	}
	return p.revision.BoundingBox(obj)
}

type shapePair struct{ baseline, revision model.ShapeHasher }

func pickShapes(b, r model.ShapeHasher) model.ShapeHasher {
	switch {
	case b == nil:
		return r
	case r == nil:
		return b
	}
	return shapePair{b, r}
}

func (p shapePair) ShapeHash(obj model.Object) (uint64, bool) {
	if h, ok := p.baseline.ShapeHash(obj); ok {
		return h, true
	}
	return p.revision.ShapeHash(obj)
}

type propertyPair struct{ baseline, revision model.PropertyProvider }

func pickProperties(b, r model.PropertyProvider) model.PropertyProvider {
	switch {
	case b == nil:
		return r
	case r == nil:
		return b
	}
	return propertyPair{b, r}
}

func (p propertyPair) PropertySets(obj model.Object) []model.PropertySet {
	if sets := p.baseline.PropertySets(obj); len(sets) > 0 {
		return sets
	}
	return p.revision.PropertySets(obj)
}

type materialPair struct{ baseline, revision model.MaterialProvider }

func pickMaterials(b, r model.MaterialProvider) model.MaterialProvider {
	switch {
	case b == nil:
		return r
	case r == nil:
		return b
	}
	return materialPair{b, r}
}

func (p materialPair) Material(obj model.Object) model.Material {
	if m := p.baseline.Material(obj); m != nil {
		return m
	}
	return p.revision.Material(obj)
}

type attributePair struct{ baseline, revision model.AttributeReader }

func pickAttributes(b, r model.AttributeReader) model.AttributeReader {
	switch {
	case b == nil:
		return r
	case r == nil:
		return b
	}
	return attributePair{b, r}
}

func (p attributePair) HasAttribute(typeName, attribute string) bool {
	return p.baseline.HasAttribute(typeName, attribute) || p.revision.HasAttribute(typeName, attribute)
}

func (p attributePair) Attribute(obj model.Object, attribute string) (model.Value, bool) {
	if v, ok := p.baseline.Attribute(obj, attribute); ok {
		return v, true
	}
	return p.revision.Attribute(obj, attribute)
}
