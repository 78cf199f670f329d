package model

import "github.com/agentstation/bimdiff/pkg/geom"

// GeometryProvider returns world-space bounding boxes.
type GeometryProvider interface {
	// BoundingBox returns the object's box, false if it has no geometry.
	BoundingBox(obj Object) (geom.Box, bool)
}

// ShapeHasher returns a hash of an object's precise shape. Objects with equal
// hashes are taken to have the same shape.
type ShapeHasher interface {
	ShapeHash(obj Object) (uint64, bool)
}

// PropertyProvider returns the property sets attached to an object.
type PropertyProvider interface {
	PropertySets(obj Object) []PropertySet
}

// MaterialProvider returns the material assigned to an object, nil if none.
type MaterialProvider interface {
	Material(obj Object) Material
}

// AttributeReader reads named simple-valued attributes.
type AttributeReader interface {
	// HasAttribute reports whether objects of typeName expose attribute.
	HasAttribute(typeName, attribute string) bool
	// Attribute returns the attribute value of obj.
	Attribute(obj Object, attribute string) (Value, bool)
}
