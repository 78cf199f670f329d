package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/config"
	"github.com/agentstation/bimdiff/pkg/errors"
)

func TestDefaultProfile(t *testing.T) {
	p := config.DefaultProfile("Tag")
	require.NoError(t, p.Validate())

	var names []string
	for _, spec := range p.Comparators {
		names = append(names, spec.ComparatorName())
	}
	assert.Equal(t, []string{"guid", "name", "attribute:Tag", "material", "property-set", "geometry"}, names)

	assert.Len(t, config.DefaultProfile("").Comparators, len(comparator.Categories)-1)
}

func TestParseProfile(t *testing.T) {
	p, err := config.ParseProfile([]byte(`
name: structural
description: Load-bearing elements only
target_types: ["IfcBeam", "IfcColumn"]
comparators:
  - category: guid
  - category: pset
    weight: 20
  - category: geometry
    tolerance: 0.001
    shape_hash: true
  - category: geometry
    name: geometry:coarse
    tolerance: 0.05
    weight: 5
`))
	require.NoError(t, err)

	assert.Equal(t, "structural", p.Name)
	assert.Equal(t, []string{"IfcBeam", "IfcColumn"}, p.TargetTypes)
	require.Len(t, p.Comparators, 4)

	cat, err := p.Comparators[1].ParsedCategory()
	require.NoError(t, err)
	assert.Equal(t, comparator.CategoryPropertySet, cat)
	require.NotNil(t, p.Comparators[1].Weight)
	assert.Equal(t, 20, *p.Comparators[1].Weight)
	assert.Nil(t, p.Comparators[0].Weight)
	assert.True(t, p.Comparators[2].ShapeHash)
	assert.Equal(t, "geometry:coarse", p.Comparators[3].ComparatorName())

	data, err := p.Marshal()
	require.NoError(t, err)
	again, err := config.ParseProfile(data)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestProfileValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "name: empty\n"},
		{"unknown category", "comparators:\n  - category: colour\n"},
		{"custom", "comparators:\n  - category: custom\n"},
		{"attribute without name", "comparators:\n  - category: attribute\n"},
		{"negative weight", "comparators:\n  - category: name\n    weight: -1\n"},
		{"duplicate", "comparators:\n  - category: geometry\n  - category: geometry\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseProfile([]byte(tt.yaml))
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}

	_, err := config.ParseProfile([]byte("comparators: {"))
	var parseErr *errors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestLoadProfile(t *testing.T) {
	path := writeFile(t, "profile.yaml", "name: ids\ncomparators:\n  - category: identity\n")
	p, err := config.LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "ids", p.Name)

	cfg := config.Default()
	cfg.ProfilePath = path
	selected, err := cfg.Profile()
	require.NoError(t, err)
	assert.Equal(t, p, selected)

	_, err = config.LoadProfile(filepath.Join(t.TempDir(), "none.yaml"))
	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))

	bad := writeFile(t, "bad.yaml", "comparators: {")
	_, err = config.LoadProfile(bad)
	var parseErr *errors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, bad, parseErr.File)
}
