// Package comparator provides the matching strategies of the reconciler.
//
// A comparator looks at one baseline object at a time and proposes every
// revision object that satisfies its predicate. It remembers which revision
// objects it proposed during the session so that, once all baseline objects
// have been compared, it can report the revision objects it never proposed
// (its residuals). Comparators are single-session: a comparator bound to one
// session refuses to prepare for another until Reset is called.
//
// The built-in comparators are:
//
//	identity      exact global identifier          weight 80
//	name          exact name                       weight 10
//	attribute     named simple attribute value     weight 30
//	material      structural material hash         weight 10
//	property-set  structural property set equality weight 60
//	geometry      near-equal bounding boxes        weight 30
package comparator

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/bimdiff/pkg/constants"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/model"
)

// Category is the kind of evidence a comparator produces.
type Category int

// Categories.
const (
	CategoryCustom Category = iota
	CategoryIdentity
	CategoryName
	CategoryAttribute
	CategoryMaterial
	CategoryPropertySet
	CategoryGeometry
)

// Categories lists the built-in categories in their default order.
var Categories = []Category{
	CategoryIdentity,
	CategoryName,
	CategoryAttribute,
	CategoryMaterial,
	CategoryPropertySet,
	CategoryGeometry,
}

// String returns the category key used in configuration.
func (c Category) String() string {
	switch c {
	case CategoryIdentity:
		return "identity"
	case CategoryName:
		return "name"
	case CategoryAttribute:
		return "attribute"
	case CategoryMaterial:
		return "material"
	case CategoryPropertySet:
		return "property-set"
	case CategoryGeometry:
		return "geometry"
	default:
		return "custom"
	}
}

// DisplayName returns the title-cased category name, e.g. "Property Set".
func (c Category) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(c.String(), "-", " "))
}

// DefaultWeight returns the ranking weight comparators of this category start with.
func (c Category) DefaultWeight() int {
	switch c {
	case CategoryIdentity:
		return constants.IdentityWeight
	case CategoryName:
		return constants.NameWeight
	case CategoryAttribute:
		return constants.AttributeWeight
	case CategoryMaterial:
		return constants.MaterialWeight
	case CategoryPropertySet:
		return constants.PropertySetWeight
	case CategoryGeometry:
		return constants.GeometryWeight
	default:
		return constants.CustomWeight
	}
}

// ParseCategory parses a category key. Underscores, spaces and case are ignored,
// and "guid" is accepted for identity.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "identity", "guid", "global-id":
		return CategoryIdentity, nil
	case "name":
		return CategoryName, nil
	case "attribute":
		return CategoryAttribute, nil
	case "material":
		return CategoryMaterial, nil
	case "property-set", "propertyset", "pset":
		return CategoryPropertySet, nil
	case "geometry":
		return CategoryGeometry, nil
	case "custom":
		return CategoryCustom, nil
	}
	return CategoryCustom, &errors.ValidationError{Field: "category", Value: s, Message: "unknown comparator category"}
}

// Comparator is a matching strategy.
type Comparator interface {
	Name() string
	Description() string
	Category() Category

	// Weight is the amount this comparator adds to a candidate's score.
	Weight() int
	SetWeight(weight int) error

	// Compare returns the revision objects matching baseline, or nil when
	// the comparator does not apply to baseline. Every returned candidate is
	// recorded as claimed.
	Compare(baseline model.Object, revision model.Model) (*Result, error)

	// Residuals returns the revision objects the comparator could have
	// proposed but never claimed. The result has no baseline.
	Residuals(revision model.Model) (*Result, error)

	// Differences lists attribute-level differences between two matched
	// objects. None of the built-in comparators support it.
	Differences(baseline, revision model.Object) ([]Difference, error)
}

// Session is one reconciliation run.
type Session struct {
	ID       string
	Baseline model.Model
	Revision model.Model
}

// Preparer is implemented by comparators that build state before comparing.
// The reconciler calls Prepare once per session, single-threaded, before any
// comparator runs.
type Preparer interface {
	Prepare(ctx context.Context, session *Session) error
}

// Resetter is implemented by comparators that can be reused across sessions.
type Resetter interface {
	Reset()
}

// ChangeType is the kind of a Difference.
type ChangeType string

// Change types.
const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeUpdated ChangeType = "updated"
)

// Difference is one attribute-level difference between matched objects.
type Difference struct {
	Path     string
	Baseline any
	Revision any
	Type     ChangeType
}
