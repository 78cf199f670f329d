// Package constants provides shared defaults used throughout bimdiff.
// Comparator weights, worker counts and spatial index tolerances live here so
// the config layer, the comparators and the reconciler agree on them.
package constants

// Weight constants are the default ranking weights per comparator category
const (
	// IdentityWeight is the weight of an exact global identifier match
	IdentityWeight = 80

	// NameWeight is the weight of an exact name match
	NameWeight = 10

	// AttributeWeight is the weight of a matching simple attribute value
	AttributeWeight = 30

	// MaterialWeight is the weight of a structurally equal material assignment
	MaterialWeight = 10

	// PropertySetWeight is the weight of structurally equal property sets
	PropertySetWeight = 60

	// GeometryWeight is the weight of a near-equal bounding volume
	GeometryWeight = 30

	// CustomWeight is the starting weight of caller-defined comparators
	CustomWeight = 10
)

// Concurrency constants
const (
	// DefaultWorkers is the size of the comparator worker pool
	DefaultWorkers = 8

	// MaxWorkers caps the worker pool size accepted from configuration
	MaxWorkers = 256

	// DefaultResolvePasses is how many conflict resolution passes run after comparison
	DefaultResolvePasses = 1

	// MaxResolvePasses caps repeated conflict resolution
	MaxResolvePasses = 64
)

// Spatial constants
const (
	// DefaultMetre is the length of one metre in model units when a model does not say
	DefaultMetre = 1.0

	// DefaultPrecision is the geometric tolerance in model units when a model does not say
	DefaultPrecision = 1e-5

	// UnitTolerance is how far two models' metre lengths may differ and still be compatible
	UnitTolerance = 1e-9

	// OctreePadding is the fraction of a unit added to the world cube edge
	OctreePadding = 0.5
)

// Match thresholds
const (
	// UnchangedRatio is the fraction of the maximal weight a best match must reach to count as unchanged
	UnchangedRatio = 0.99999
)
