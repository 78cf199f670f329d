// Package memory provides an in-memory Model that also serves every provider
// interface the comparators consume. It is used by tests and by callers that
// have already extracted their object graph into plain Go values.
//
// A Model is built single-threaded with Add and is safe for concurrent
// readers afterwards.
package memory

import (
	"fmt"
	"maps"
	"slices"

	"github.com/agentstation/bimdiff/pkg/geom"
	"github.com/agentstation/bimdiff/pkg/model"
)

// Element is an object held by a Model. Elements carry their own geometry,
// properties, material and attributes, so any Model can answer provider
// calls for elements of any other Model.
type Element struct {
	label      model.Label
	typeName   string
	kind       model.Kind
	globalID   string
	name       string
	box        *geom.Box
	shapeHash  *uint64
	psets      []model.PropertySet
	material   model.Material
	attributes map[string]model.Value
}

func (e *Element) Label() model.Label { return e.label }
func (e *Element) Type() string       { return e.typeName }
func (e *Element) Kind() model.Kind   { return e.kind }
func (e *Element) GlobalID() string   { return e.globalID }
func (e *Element) Name() string       { return e.name }

// String implements fmt.Stringer.
func (e *Element) String() string {
	return model.Describe(e)
}

// ElementOption configures an Element.
type ElementOption func(*Element)

// WithGlobalID sets the global identifier.
func WithGlobalID(id string) ElementOption {
	return func(e *Element) { e.globalID = id }
}

// WithName sets the name.
func WithName(name string) ElementOption {
	return func(e *Element) { e.name = name }
}

// WithKind sets the broad kind. Elements are instances by default.
func WithKind(kind model.Kind) ElementOption {
	return func(e *Element) { e.kind = kind }
}

// WithBox sets the bounding box.
func WithBox(box geom.Box) ElementOption {
	return func(e *Element) { e.box = &box }
}

// WithShapeHash sets the precise shape hash.
func WithShapeHash(hash uint64) ElementOption {
	return func(e *Element) { e.shapeHash = &hash }
}

// WithPropertySets attaches property sets.
func WithPropertySets(sets ...model.PropertySet) ElementOption {
	return func(e *Element) { e.psets = append(e.psets, sets...) }
}

// WithMaterial assigns a material.
func WithMaterial(m model.Material) ElementOption {
	return func(e *Element) { e.material = m }
}

// WithAttribute sets a named attribute. The element's model then reports
// the attribute as exposed by the element's type.
func WithAttribute(name string, value any) ElementOption {
	return func(e *Element) {
		if e.attributes == nil {
			e.attributes = make(map[string]model.Value)
		}
		v, ok := value.(model.Value)
		if !ok {
			v = model.NewValue(value)
		}
		e.attributes[name] = v
	}
}

// Model is an in-memory object graph.
type Model struct {
	name     string
	units    model.Units
	elements []*Element
	byLabel  map[model.Label]*Element
	schema   map[string]map[string]struct{}
}

// Option configures a Model.
type Option func(*Model)

// WithUnits sets the model's length unit and precision.
func WithUnits(units model.Units) Option {
	return func(m *Model) { m.units = units }
}

// New creates an empty model.
func New(name string, opts ...Option) *Model {
	m := &Model{
		name:    name,
		byLabel: make(map[model.Label]*Element),
		schema:  make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.units = m.units.Normalize()
	return m
}

// Add creates an element. It panics when label is already taken, since
// labels identify elements within a model.
func (m *Model) Add(label model.Label, typeName string, opts ...ElementOption) *Element {
	if _, ok := m.byLabel[label]; ok {
		panic(fmt.Sprintf("memory: duplicate label %s in model %s", label, m.name))
	}
	e := &Element{label: label, typeName: typeName, kind: model.KindInstance}
	for _, opt := range opts {
		opt(e)
	}
	for attr := range e.attributes {
		m.DeclareAttribute(typeName, attr)
	}
	m.elements = append(m.elements, e)
	m.byLabel[label] = e
	return e
}

// DeclareAttribute records that objects of typeName expose attribute even
// when a given element leaves it unset.
func (m *Model) DeclareAttribute(typeName, attribute string) {
	attrs, ok := m.schema[typeName]
	if !ok {
		attrs = make(map[string]struct{})
		m.schema[typeName] = attrs
	}
	attrs[attribute] = struct{}{}
}

// Get returns the element with the given label.
func (m *Model) Get(label model.Label) (*Element, bool) {
	e, ok := m.byLabel[label]
	return e, ok
}

// Len returns the number of elements.
func (m *Model) Len() int {
	return len(m.elements)
}

// Name implements model.Model.
func (m *Model) Name() string {
	return m.name
}

// Units implements model.Model.
func (m *Model) Units() model.Units {
	return m.units
}

// Objects implements model.Model. Objects are returned in insertion order.
func (m *Model) Objects() []model.Object {
	out := make([]model.Object, len(m.elements))
	for i, e := range m.elements {
		out[i] = e
	}
	return out
}

// Types returns the distinct type tags in the model, sorted.
func (m *Model) Types() []string {
	seen := make(map[string]struct{})
	for _, e := range m.elements {
		seen[e.typeName] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// BoundingBox implements model.GeometryProvider.
func (m *Model) BoundingBox(obj model.Object) (geom.Box, bool) {
	e, ok := obj.(*Element)
	if !ok || e.box == nil {
		return geom.Box{}, false
	}
	return *e.box, true
}

// ShapeHash implements model.ShapeHasher.
func (m *Model) ShapeHash(obj model.Object) (uint64, bool) {
	e, ok := obj.(*Element)
	if !ok || e.shapeHash == nil {
		return 0, false
	}
	return *e.shapeHash, true
}

// PropertySets implements model.PropertyProvider.
func (m *Model) PropertySets(obj model.Object) []model.PropertySet {
	if e, ok := obj.(*Element); ok {
		return e.psets
	}
	return nil
}

// Material implements model.MaterialProvider.
func (m *Model) Material(obj model.Object) model.Material {
	if e, ok := obj.(*Element); ok {
		return e.material
	}
	return nil
}

// HasAttribute implements model.AttributeReader.
func (m *Model) HasAttribute(typeName, attribute string) bool {
	_, ok := m.schema[typeName][attribute]
	return ok
}

// Attribute implements model.AttributeReader.
func (m *Model) Attribute(obj model.Object, attribute string) (model.Value, bool) {
	e, ok := obj.(*Element)
	if !ok {
		return model.Value{}, false
	}
	v, ok := e.attributes[attribute]
	return v, ok
}

// Providers returns an element-less model whose attribute schema is the
// union of the given models. It answers provider calls for elements of all of
// them, which is what comparators need when baseline and revision are
// separate Models.
func Providers(models ...*Model) *Model {
	out := New("providers")
	for _, src := range models {
		if src == nil {
			continue
		}
		for typeName, attrs := range src.schema {
			for attr := range attrs {
				out.DeclareAttribute(typeName, attr)
			}
		}
	}
	return out
}
