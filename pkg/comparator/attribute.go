package comparator

import (
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/model"
)

// NewAttribute returns a comparator matching objects whose named attribute
// has the same value. It applies only to objects whose type the reader
// reports as exposing the attribute with a simple value; values compare by
// their string form.
func NewAttribute(attribute string, reader model.AttributeReader, opts ...Option) (*Keyed[string], error) {
	if attribute == "" {
		return nil, &errors.ValidationError{Field: "attribute", Message: "cannot be empty"}
	}
	if reader == nil {
		return nil, &errors.ValidationError{Field: "reader", Message: "cannot be nil"}
	}

	key := func(obj model.Object) (string, bool, error) {
		if !reader.HasAttribute(obj.Type(), attribute) {
			return "", false, nil
		}
		v, ok := reader.Attribute(obj, attribute)
		if !ok || v.IsNil() || !v.IsSimple() {
			return "", false, nil
		}
		return v.String(), true, nil
	}

	return NewKeyed("attribute:"+attribute, "Matches objects with the same "+attribute+" value", CategoryAttribute,
		key, nil, opts...)
}
