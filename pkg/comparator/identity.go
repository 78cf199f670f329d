package comparator

import (
	"github.com/agentstation/bimdiff/pkg/model"
)

// NewGUID returns the identity comparator: objects match when their global
// identifiers are equal. Objects without an identifier are not compared,
// but every unclaimed revision object is a residual, so new objects show up
// as added even when no comparator can key them.
func NewGUID(opts ...Option) (*Keyed[string], error) {
	return NewKeyed("guid", "Matches objects with the same global identifier", CategoryIdentity,
		func(obj model.Object) (string, bool, error) {
			id := obj.GlobalID()
			return id, id != "", nil
		}, nil, append([]Option{WithAllResiduals()}, opts...)...)
}

// NewName returns the name comparator: objects match when their names are
// equal. Unnamed objects are not compared.
func NewName(opts ...Option) (*Keyed[string], error) {
	return NewKeyed("name", "Matches objects with the same name", CategoryName,
		func(obj model.Object) (string, bool, error) {
			name := obj.Name()
			return name, name != "", nil
		}, nil, opts...)
}
