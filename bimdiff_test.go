package bimdiff_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bimdiff"
	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/config"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/logging"
	"github.com/agentstation/bimdiff/pkg/metrics"
	"github.com/agentstation/bimdiff/pkg/model"
	"github.com/agentstation/bimdiff/pkg/model/memory"
	"github.com/agentstation/bimdiff/pkg/results"
)

func TestCompare(t *testing.T) {
	logging.DisableLoggingForTest(t)
	baseline, revision := site()

	d, err := bimdiff.New()
	require.NoError(t, err)
	assert.Equal(t, "default", d.Profile().Name)

	var matched []model.Label
	var deleted, added []model.Object
	d.OnMatched(func(m results.Match) { matched = append(matched, m.Revision.Label()) })
	d.OnDeleted(func(obj model.Object) { deleted = append(deleted, obj) })
	d.OnAdded(func(obj model.Object) { added = append(added, obj) })
	d.OnAmbiguous(func(g *results.Group) { t.Errorf("unexpected ambiguity for %s", g.Baseline().Label()) })

	res, err := d.Compare(context.Background(), baseline, revision)
	require.NoError(t, err)
	assert.Equal(t,
		"Reconciled 3 baseline and 3 revision objects: 1 unchanged, 1 modified, 1 deleted, 0 ambiguous, 1 added; 1 conflicts resolved",
		res.Summary())
	assert.Equal(t, []string{"guid", "name", "attribute:Tag", "material", "property-set", "geometry"}, res.Metadata.Comparators)

	assert.Equal(t, []model.Label{11, 12}, matched)
	assert.Equal(t, []model.Label{3}, labels(deleted))
	assert.Equal(t, []model.Label{13}, labels(added))

	// comparators are rebuilt for every session
	again, err := d.Compare(context.Background(), baseline, revision)
	require.NoError(t, err)
	assert.Equal(t, res.Summary(), again.Summary())
	assert.NotEqual(t, res.SessionID, again.SessionID)
}

func TestCompareProviders(t *testing.T) {
	logging.DisableLoggingForTest(t)
	baseline, revision := site()

	d, err := bimdiff.New()
	require.NoError(t, err)
	_, err = d.Compare(context.Background(), bare{baseline}, bare{revision})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
	assert.Contains(t, err.Error(), "model.AttributeReader")

	p := memory.Providers(baseline, revision)
	d, err = bimdiff.New(
		bimdiff.WithGeometry(p),
		bimdiff.WithProperties(p),
		bimdiff.WithMaterials(p),
		bimdiff.WithAttributes(p),
		bimdiff.WithShapeHasher(p),
	)
	require.NoError(t, err)
	res, err := d.Compare(context.Background(), bare{baseline}, bare{revision})
	require.NoError(t, err)
	assert.Len(t, res.Unchanged(), 1)
	assert.Len(t, res.Modified(), 1)

	_, err = d.Compare(context.Background(), nil, revision)
	assert.True(t, errors.IsValidationError(err))
}

func TestComparatorsFromDefaultProfile(t *testing.T) {
	logging.DisableLoggingForTest(t)
	baseline := memory.New("baseline")
	baseline.Add(1, "IfcBeam", memory.WithAttribute("Tag", "B1"))
	revision := memory.New("revision")
	revision.Add(2, "IfcBeam", memory.WithAttribute("Tag", "B1"))

	d, err := bimdiff.New()
	require.NoError(t, err)
	cs, err := d.Comparators(baseline, revision)
	require.NoError(t, err)
	require.Len(t, cs, len(comparator.Categories))
	for i, c := range cs {
		assert.Equal(t, comparator.Categories[i], c.Category())
		assert.Equal(t, c.Category().DefaultWeight(), c.Weight())
	}

	attr := cs[2]
	assert.Equal(t, "attribute:"+config.DefaultAttribute, attr.Name())
	res, err := attr.Compare(mustGet(t, baseline, 1), revision)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []model.Label{2}, labels(res.Candidates()))
}

func mustGet(t *testing.T, m *memory.Model, label model.Label) model.Object {
	t.Helper()
	e, ok := m.Get(label)
	require.True(t, ok)
	return e
}

func TestCompareProfile(t *testing.T) {
	logging.DisableLoggingForTest(t)

	t.Run("weights and target types", func(t *testing.T) {
		profile, err := config.ParseProfile([]byte(`
name: walls
target_types: [IfcWall, IfcDoor]
comparators:
  - category: guid
    weight: 50
  - category: property-set
    name: psets
`))
		require.NoError(t, err)
		d, err := bimdiff.New(bimdiff.WithProfile(profile))
		require.NoError(t, err)

		baseline, revision := site()
		res, err := d.Compare(context.Background(), baseline, revision)
		require.NoError(t, err)
		assert.Equal(t, []string{"guid", "psets"}, res.Metadata.Comparators)
		assert.Equal(t, 2, res.Metadata.Stats.BaselineObjects)
		assert.Empty(t, res.Deleted())
		assert.Empty(t, res.Added())

		modified := res.Modified()
		require.Len(t, modified, 1)
		assert.Equal(t, 50, modified[0].Weight)
		assert.Equal(t, 110, modified[0].MaximalWeight)
	})

	t.Run("shape hash", func(t *testing.T) {
		profile, err := config.ParseProfile([]byte(`
name: shapes
comparators:
  - category: geometry
    shape_hash: true
`))
		require.NoError(t, err)
		d, err := bimdiff.New(bimdiff.WithProfile(profile))
		require.NoError(t, err)

		baseline := memory.New("baseline")
		baseline.Add(1, "IfcColumn", memory.WithBox(box(0, 0, 0, 1, 1, 3)), memory.WithShapeHash(7))
		baseline.Add(2, "IfcColumn", memory.WithBox(box(2, 0, 0, 3, 1, 3)), memory.WithShapeHash(7))
		revision := memory.New("revision")
		revision.Add(11, "IfcColumn", memory.WithBox(box(0, 0, 0, 1, 1, 3)), memory.WithShapeHash(7))
		revision.Add(12, "IfcColumn", memory.WithBox(box(2, 0, 0, 3, 1, 3)), memory.WithShapeHash(8))

		res, err := d.Compare(context.Background(), baseline, revision)
		require.NoError(t, err)
		assert.Equal(t, []model.Label{2}, labels(res.Deleted()))
		assert.Equal(t, []model.Label{12}, labels(res.Added()))
	})
}

func TestCompareConfig(t *testing.T) {
	logging.DisableLoggingForTest(t)
	cfg := config.Default()
	cfg.Weights[comparator.CategoryPropertySet] = 0
	cfg.Logging.Output = "discard"

	d, err := bimdiff.New(bimdiff.WithConfig(cfg))
	require.NoError(t, err)

	baseline, revision := site()
	res, err := d.Compare(context.Background(), baseline, revision)
	require.NoError(t, err)
	assert.Len(t, res.Unchanged(), 2)
	assert.Empty(t, res.Modified())
}

func TestCompareMetrics(t *testing.T) {
	logging.DisableLoggingForTest(t)
	reg := prometheus.NewRegistry()
	m := metrics.New()
	require.NoError(t, m.Register(reg))

	d, err := bimdiff.New(bimdiff.WithMetrics(m))
	require.NoError(t, err)
	baseline, revision := site()
	_, err = d.Compare(context.Background(), baseline, revision)
	require.NoError(t, err)

	expected := `
# HELP bimdiff_reconcile_sessions_total Reconciliation sessions by outcome.
# TYPE bimdiff_reconcile_sessions_total counter
bimdiff_reconcile_sessions_total{status="success"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "bimdiff_reconcile_sessions_total"))
}

func TestNewOptions(t *testing.T) {
	bad := config.Default()
	bad.Workers = 0

	for name, opt := range map[string]bimdiff.Option{
		"nil config":     bimdiff.WithConfig(nil),
		"invalid config": bimdiff.WithConfig(bad),
		"nil profile":    bimdiff.WithProfile(nil),
		"empty profile":  bimdiff.WithProfile(&config.Profile{Name: "empty"}),
		"nil geometry":   bimdiff.WithGeometry(nil),
		"nil shapes":     bimdiff.WithShapeHasher(nil),
		"nil properties": bimdiff.WithProperties(nil),
		"nil materials":  bimdiff.WithMaterials(nil),
		"nil attributes": bimdiff.WithAttributes(nil),
		"nil metrics":    bimdiff.WithMetrics(nil),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := bimdiff.New(opt)
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}

func TestDifferences(t *testing.T) {
	d, err := bimdiff.New()
	require.NoError(t, err)
	baseline, revision := site()
	_, err = d.Differences(mustGet(t, baseline, 1), mustGet(t, revision, 11))
	assert.True(t, errors.IsNotSupported(err))
}
