package comparator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/model"
)

// NewPropertySet returns a comparator matching objects whose property sets
// are structurally equal. Candidates are found by an order-independent hash
// over all property sets and then confirmed by a full comparison. Both
// objects must be of the same broad kind. Objects without property sets are
// not compared.
func NewPropertySet(provider model.PropertyProvider, opts ...Option) (*Keyed[uint64], error) {
	if provider == nil {
		return nil, &errors.ValidationError{Field: "provider", Message: "cannot be nil"}
	}

	key := func(obj model.Object) (uint64, bool, error) {
		sets := provider.PropertySets(obj)
		if len(sets) == 0 {
			return 0, false, nil
		}
		h, err := PropertySetsHash(sets)
		return h, err == nil, err
	}

	accept := func(baseline, revision model.Object) (bool, error) {
		if baseline.Kind() != revision.Kind() {
			return false, nil
		}
		return EqualPropertySets(provider.PropertySets(baseline), provider.PropertySets(revision))
	}

	return NewKeyed("property-set", "Matches objects with equal property sets", CategoryPropertySet,
		key, accept, opts...)
}

// PropertySetsHash hashes property sets independently of their order.
// Sets that are EqualPropertySets hash equally.
func PropertySetsHash(sets []model.PropertySet) (uint64, error) {
	var h uint64
	for _, set := range sets {
		sh := xxhash.Sum64String("pset\x00" + set.Name)
		for _, p := range set.Properties {
			ph, err := propertyHash(p)
			if err != nil {
				return 0, fmt.Errorf("property set %s: %w", set.Name, err)
			}
			sh += ph
		}
		h += sh
	}
	return h, nil
}

func propertyHash(p model.Property) (uint64, error) {
	if p == nil {
		return 0, fmt.Errorf("nil property")
	}
	h := xxhash.Sum64String(p.PropertyKind().String() + "\x00" + p.PropertyName())

	switch v := p.(type) {
	case model.SingleValue:
		h += valueHash(v.Value)
	case model.EnumeratedValue:
		h += distinctHash(v.Values) + uint64(len(v.Values))
	case model.BoundedValue:
		h += xxhash.Sum64String("lower\x00"+v.Lower.String()) + xxhash.Sum64String("upper\x00"+v.Upper.String())
	case model.TableValue:
		if len(v.Defining) != len(v.Defined) {
			return 0, fmt.Errorf("table %s has %d defining and %d defined values", v.Name, len(v.Defining), len(v.Defined))
		}
		seen := make(map[string]struct{}, len(v.Defining))
		for i, d := range v.Defining {
			key := d.String()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			h += xxhash.Sum64String(key + "\x00" + v.Defined[i].String())
		}
		h += uint64(len(v.Defining))
	case model.ReferenceValue:
		h += xxhash.Sum64String(v.Usage + "\x00" + v.Reference)
	case model.ListValue:
		h += distinctHash(v.Values) + uint64(len(v.Values))
	default:
		return 0, fmt.Errorf("unsupported property %T", p)
	}
	return h, nil
}

func valueHash(v model.Value) uint64 {
	return xxhash.Sum64String(v.String())
}

// distinctHash sums the hashes of the distinct value strings.
func distinctHash(values []model.Value) uint64 {
	seen := make(map[string]struct{}, len(values))
	var h uint64
	for _, v := range values {
		s := v.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		h += xxhash.Sum64String(s)
	}
	return h
}

// EqualPropertySets reports whether two objects' property sets are equal:
// the same number of sets, pairwise equal after sorting by name, each pair
// with the same properties by name and value.
func EqualPropertySets(a, b []model.PropertySet) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	a, b = sortedSets(a), sortedSets(b)
	for i := range a {
		if a[i].Name != b[i].Name || len(a[i].Properties) != len(b[i].Properties) {
			return false, nil
		}
		for _, p := range a[i].Properties {
			q, ok := b[i].Property(p.PropertyName())
			if !ok {
				return false, nil
			}
			eq, err := EqualProperties(p, q)
			if err != nil || !eq {
				return false, err
			}
		}
	}
	return true, nil
}

func sortedSets(sets []model.PropertySet) []model.PropertySet {
	out := slices.Clone(sets)
	slices.SortStableFunc(out, func(x, y model.PropertySet) int {
		return strings.Compare(x.Name, y.Name)
	})
	return out
}

// EqualProperties compares two properties of the same name.
func EqualProperties(p, q model.Property) (bool, error) {
	if p == nil || q == nil {
		return false, fmt.Errorf("nil property")
	}
	if p.PropertyKind() != q.PropertyKind() {
		return false, nil
	}

	switch a := p.(type) {
	case model.SingleValue:
		b := q.(model.SingleValue)
		return a.Value.String() == b.Value.String(), nil
	case model.EnumeratedValue:
		b := q.(model.EnumeratedValue)
		return sameValues(a.Values, b.Values), nil
	case model.BoundedValue:
		b := q.(model.BoundedValue)
		return a.Lower.String() == b.Lower.String() && a.Upper.String() == b.Upper.String(), nil
	case model.TableValue:
		b := q.(model.TableValue)
		return equalTables(a, b)
	case model.ReferenceValue:
		b := q.(model.ReferenceValue)
		return a.Usage == b.Usage && a.Reference == b.Reference, nil
	case model.ListValue:
		b := q.(model.ListValue)
		return sameValues(a.Values, b.Values), nil
	default:
		return false, fmt.Errorf("unsupported property %T", p)
	}
}

// sameValues reports whether both lists have the same length and every value
// of a occurs in b.
func sameValues(a, b []model.Value) bool {
	if len(a) != len(b) {
		return false
	}
	have := make(map[string]struct{}, len(b))
	for _, v := range b {
		have[v.String()] = struct{}{}
	}
	for _, v := range a {
		if _, ok := have[v.String()]; !ok {
			return false
		}
	}
	return true
}

// equalTables matches each defining value of a to the first equal defining
// value of b and compares the defined values at those positions.
func equalTables(a, b model.TableValue) (bool, error) {
	if len(a.Defining) != len(a.Defined) || len(b.Defining) != len(b.Defined) {
		return false, fmt.Errorf("table %s has mismatched defining and defined values", a.Name)
	}
	if len(a.Defining) != len(b.Defining) {
		return false, nil
	}
	for i, d := range a.Defining {
		j := slices.IndexFunc(b.Defining, func(v model.Value) bool { return v.String() == d.String() })
		if j < 0 || a.Defined[i].String() != b.Defined[j].String() {
			return false, nil
		}
	}
	return true, nil
}
