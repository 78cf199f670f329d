package model

// PropertyKind tags the variants of Property.
type PropertyKind int

// Property kinds.
const (
	SingleKind PropertyKind = iota
	EnumeratedKind
	BoundedKind
	TableKind
	ReferenceKind
	ListKind
)

// String returns the kind name.
func (k PropertyKind) String() string {
	switch k {
	case SingleKind:
		return "single"
	case EnumeratedKind:
		return "enumerated"
	case BoundedKind:
		return "bounded"
	case TableKind:
		return "table"
	case ReferenceKind:
		return "reference"
	case ListKind:
		return "list"
	default:
		return "unknown"
	}
}

// Property is a named property. The set of implementations is closed:
// SingleValue, EnumeratedValue, BoundedValue, TableValue, ReferenceValue
// and ListValue.
type Property interface {
	PropertyName() string
	PropertyKind() PropertyKind
	isProperty()
}

// SingleValue holds one value.
type SingleValue struct {
	Name  string
	Value Value
}

// EnumeratedValue holds the chosen values of an enumeration.
type EnumeratedValue struct {
	Name   string
	Values []Value
}

// BoundedValue holds a lower and upper bound.
type BoundedValue struct {
	Name         string
	Lower, Upper Value
}

// TableValue maps defining values to defined values by position.
type TableValue struct {
	Name     string
	Defining []Value
	Defined  []Value
}

// ReferenceValue references another object by usage name and type.
type ReferenceValue struct {
	Name      string
	Usage     string
	Reference string
}

// ListValue holds an unordered list of values.
type ListValue struct {
	Name   string
	Values []Value
}

func (p SingleValue) PropertyName() string    { return p.Name }
func (p EnumeratedValue) PropertyName() string { return p.Name }
func (p BoundedValue) PropertyName() string    { return p.Name }
func (p TableValue) PropertyName() string      { return p.Name }
func (p ReferenceValue) PropertyName() string  { return p.Name }
func (p ListValue) PropertyName() string       { return p.Name }

func (SingleValue) PropertyKind() PropertyKind     { return SingleKind }
func (EnumeratedValue) PropertyKind() PropertyKind { return EnumeratedKind }
func (BoundedValue) PropertyKind() PropertyKind    { return BoundedKind }
func (TableValue) PropertyKind() PropertyKind      { return TableKind }
func (ReferenceValue) PropertyKind() PropertyKind  { return ReferenceKind }
func (ListValue) PropertyKind() PropertyKind       { return ListKind }

func (SingleValue) isProperty()     {}
func (EnumeratedValue) isProperty() {}
func (BoundedValue) isProperty()    {}
func (TableValue) isProperty()      {}
func (ReferenceValue) isProperty()  {}
func (ListValue) isProperty()       {}

// PropertySet is a named group of properties.
type PropertySet struct {
	Name       string
	Properties []Property
}

// Property returns the property with the given name.
func (s PropertySet) Property(name string) (Property, bool) {
	for _, p := range s.Properties {
		if p.PropertyName() == name {
			return p, true
		}
	}
	return nil, false
}
