package comparator

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/model"
)

// NewMaterial returns a comparator matching objects whose material
// assignments are structurally equal. Both objects must be of the same broad
// kind. Objects without a material are not compared.
func NewMaterial(provider model.MaterialProvider, opts ...Option) (*Keyed[uint64], error) {
	if provider == nil {
		return nil, &errors.ValidationError{Field: "provider", Message: "cannot be nil"}
	}

	key := func(obj model.Object) (uint64, bool, error) {
		m := provider.Material(obj)
		if m == nil {
			return 0, false, nil
		}
		h, err := MaterialHash(m)
		return h, err == nil, err
	}

	return NewKeyed("material", "Matches objects with the same material assignment", CategoryMaterial,
		key, sameKind, opts...)
}

// MaterialHash hashes a material by structure. Lists and layer sets hash
// independently of member order, and a layer set usage hashes as its layer set.
func MaterialHash(m model.Material) (uint64, error) {
	switch v := m.(type) {
	case model.NamedMaterial:
		return xxhash.Sum64String("material\x00" + v.Name), nil
	case *model.NamedMaterial:
		if v == nil {
			return 0, nil
		}
		return MaterialHash(*v)
	case model.MaterialList:
		h := xxhash.Sum64String("list")
		for _, item := range v.Materials {
			ih, err := MaterialHash(item)
			if err != nil {
				return 0, err
			}
			h += ih
		}
		return h, nil
	case model.MaterialLayer:
		h := xxhash.Sum64String("layer\x00" + strconv.FormatFloat(v.Thickness, 'g', -1, 64))
		if v.Material != nil {
			mh, err := MaterialHash(*v.Material)
			if err != nil {
				return 0, err
			}
			h += mh
		}
		return h, nil
	case model.MaterialLayerSet:
		h := xxhash.Sum64String("layer-set")
		for _, layer := range v.Layers {
			lh, err := MaterialHash(layer)
			if err != nil {
				return 0, err
			}
			h += lh
		}
		return h, nil
	case model.MaterialLayerSetUsage:
		return MaterialHash(v.LayerSet)
	default:
		return 0, fmt.Errorf("unsupported material %T", m)
	}
}

func sameKind(baseline, revision model.Object) (bool, error) {
	return baseline.Kind() == revision.Kind(), nil
}
