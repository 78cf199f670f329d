package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/errors"
)

// ComparatorSpec describes one comparator of a profile.
type ComparatorSpec struct {
	// Category is a category key such as "identity" or "property-set".
	Category string `yaml:"category"`
	// Name overrides the comparator name.
	Name string `yaml:"name,omitempty"`
	// Weight overrides the category default.
	Weight *int `yaml:"weight,omitempty"`
	// Attribute is required by the attribute category.
	Attribute string `yaml:"attribute,omitempty"`
	// Tolerance overrides the geometric precision of the geometry category.
	Tolerance float64 `yaml:"tolerance,omitempty"`
	// ShapeHash refines geometry matches by shape hash when the models provide one.
	ShapeHash bool `yaml:"shape_hash,omitempty"`
}

// Profile is a named set of comparators.
type Profile struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	TargetTypes []string         `yaml:"target_types,omitempty"`
	Comparators []ComparatorSpec `yaml:"comparators"`
}

// DefaultProfile lists the six built-in comparators with their default
// weights. attribute names the attribute comparator's attribute; empty
// leaves that comparator out.
func DefaultProfile(attribute string) *Profile {
	p := &Profile{
		Name:        "default",
		Description: "All built-in comparators with default weights",
	}
	for _, c := range comparator.Categories {
		spec := ComparatorSpec{Category: c.String()}
		if c == comparator.CategoryAttribute {
			if attribute == "" {
				continue
			}
			spec.Attribute = attribute
		}
		p.Comparators = append(p.Comparators, spec)
	}
	return p
}

// ParseProfile decodes and validates a YAML profile.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	p, err := ParseProfile(data)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = path
		}
		return nil, err
	}
	return p, nil
}

// Marshal encodes the profile as YAML.
func (p *Profile) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// Validate checks that every comparator can be built and that names are unique.
func (p *Profile) Validate() error {
	if len(p.Comparators) == 0 {
		return &errors.ValidationError{Field: "comparators", Message: "profile lists no comparators"}
	}
	seen := make(map[string]int, len(p.Comparators))
	for i, spec := range p.Comparators {
		field := fmt.Sprintf("comparators[%d]", i)
		cat, err := spec.ParsedCategory()
		if err != nil {
			return errors.WrapValidation(field+".category", err)
		}
		if cat == comparator.CategoryCustom {
			return &errors.ValidationError{Field: field + ".category", Value: spec.Category, Message: "custom comparators cannot be built from a profile"}
		}
		if cat == comparator.CategoryAttribute && spec.Attribute == "" {
			return &errors.ValidationError{Field: field + ".attribute", Message: "required by the attribute category"}
		}
		if spec.Weight != nil && *spec.Weight < 0 {
			return &errors.ValidationError{Field: field + ".weight", Value: *spec.Weight, Message: "cannot be negative"}
		}
		if spec.Tolerance < 0 {
			return &errors.ValidationError{Field: field + ".tolerance", Value: spec.Tolerance, Message: "cannot be negative"}
		}
		name := spec.ComparatorName()
		if j, dup := seen[name]; dup {
			return &errors.ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("duplicates comparators[%d]; set a distinct name", j),
			}
		}
		seen[name] = i
	}
	return nil
}

// ParsedCategory parses the category key.
func (s ComparatorSpec) ParsedCategory() (comparator.Category, error) {
	return comparator.ParseCategory(s.Category)
}

// ComparatorName returns the name the built comparator will carry.
func (s ComparatorSpec) ComparatorName() string {
	if s.Name != "" {
		return s.Name
	}
	cat, err := s.ParsedCategory()
	if err != nil {
		return s.Category
	}
	switch cat {
	case comparator.CategoryIdentity:
		return "guid"
	case comparator.CategoryAttribute:
		return "attribute:" + s.Attribute
	}
	return cat.String()
}
