package model

import (
	"fmt"
	"strconv"
)

// Value is a scalar value of an attribute or property.
// Type is the domain type tag of the value, e.g. "IfcLabel", and is informational.
type Value struct {
	Type string
	Data any
}

// NewValue returns an untyped Value.
func NewValue(data any) Value {
	return Value{Data: data}
}

// IsNil reports whether the value is absent.
func (v Value) IsNil() bool {
	return v.Data == nil
}

// IsSimple reports whether the value is a string, boolean or number.
func (v Value) IsSimple() bool {
	switch v.Data.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// String renders the value. Two values are equal for matching purposes when
// their strings are equal.
func (v Value) String() string {
	switch d := v.Data.(type) {
	case nil:
		return ""
	case string:
		return d
	case float64:
		return strconv.FormatFloat(d, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(d), 'g', -1, 32)
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprint(d)
	}
}
