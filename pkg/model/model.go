// Package model defines the object graph the reconciler consumes.
//
// The engine never parses domain files or evaluates geometry itself. Callers
// hand it two Models and, per comparator, the provider that can answer the
// question that comparator asks (bounding boxes, property sets, materials or
// named attributes). Objects are opaque handles; identity is interface
// equality, so implementations must be comparable, typically pointers.
package model

import (
	"fmt"

	"github.com/agentstation/bimdiff/pkg/constants"
)

// Label is the stable numeric label of an object within its file.
type Label int64

// String returns the label in #123 form.
func (l Label) String() string {
	return fmt.Sprintf("#%d", l)
}

// Kind is the broad kind of an object.
type Kind int

// Kinds.
const (
	KindOther Kind = iota
	KindInstance
	KindType
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInstance:
		return "instance"
	case KindType:
		return "type"
	default:
		return "other"
	}
}

// Object is an identified object of a model.
type Object interface {
	Label() Label
	// Type returns the object's type tag, e.g. "IfcWall".
	Type() string
	Kind() Kind
	// GlobalID returns the globally unique identifier, empty if absent.
	GlobalID() string
	// Name returns the object name, empty if absent.
	Name() string
}

// Units describes the length unit of a model.
type Units struct {
	// Metre is the length of one metre in model units.
	Metre float64
	// Precision is the geometric tolerance in model units.
	Precision float64
}

// Normalize fills zero or negative fields with defaults.
func (u Units) Normalize() Units {
	if !(u.Metre > 0) {
		u.Metre = constants.DefaultMetre
	}
	if !(u.Precision > 0) {
		u.Precision = constants.DefaultPrecision
	}
	return u
}

// Model is one snapshot of an object graph.
type Model interface {
	Name() string
	// Objects returns every object in a stable order.
	Objects() []Object
	Units() Units
}

// Describe returns a short human-readable description of obj for logs.
func Describe(obj Object) string {
	if obj == nil {
		return "<none>"
	}
	if name := obj.Name(); name != "" {
		return fmt.Sprintf("%s %s %q", obj.Label(), obj.Type(), name)
	}
	return fmt.Sprintf("%s %s", obj.Label(), obj.Type())
}

// Filter returns a view of m holding only the objects keep accepts.
// A nil keep returns m unchanged.
func Filter(m Model, keep func(Object) bool) Model {
	if keep == nil {
		return m
	}
	objects := m.Objects()
	kept := make([]Object, 0, len(objects))
	for _, obj := range objects {
		if keep(obj) {
			kept = append(kept, obj)
		}
	}
	return &filtered{Model: m, objects: kept}
}

type filtered struct {
	Model
	objects []Object
}

func (f *filtered) Objects() []Object {
	return f.objects
}

// Unwrap returns the unfiltered model.
func (f *filtered) Unwrap() Model {
	return f.Model
}
