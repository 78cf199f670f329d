package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/bimdiff/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Field: "workers", Message: "must be positive"}
		assert.Equal(t, "validation failed for field workers: must be positive", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad weights"}
		assert.Equal(t, "validation failed: bad weights", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("unit mismatch")
	err := pkgerrors.NewConfigError("geometry", "models use different length units", base)

	assert.Equal(t, "configuration error in geometry: models use different length units", err.Error())
	assert.True(t, pkgerrors.IsConfigError(err))
	assert.ErrorIs(t, err, base)
	assert.False(t, pkgerrors.IsInvalidState(err))

	anon := &pkgerrors.ConfigError{Message: "no comparators"}
	assert.Equal(t, "configuration error: no comparators", anon.Error())
}

func TestUnsupportedError(t *testing.T) {
	err := pkgerrors.NewUnsupportedError("differences", "guid")
	assert.Equal(t, "differences is not supported by guid", err.Error())
	assert.True(t, pkgerrors.IsNotSupported(err))

	bare := &pkgerrors.UnsupportedError{Operation: "differences"}
	assert.Equal(t, "differences is not supported", bare.Error())
}

func TestComparatorError(t *testing.T) {
	base := errors.New("malformed property")
	err := pkgerrors.NewComparatorError("property-set", "#12", base)

	assert.Equal(t, "comparator property-set failed on #12: malformed property", err.Error())
	assert.True(t, pkgerrors.IsComparatorFailure(err))
	assert.ErrorIs(t, err, base)

	residual := pkgerrors.NewComparatorError("name", "", base)
	assert.Equal(t, "comparator name failed: malformed property", residual.Error())
}

func TestStateError(t *testing.T) {
	err := pkgerrors.NewStateError("geometry", "spatial index missing")
	assert.Equal(t, "invalid state in geometry: spatial index missing", err.Error())
	assert.True(t, pkgerrors.IsInvalidState(err))
	assert.False(t, pkgerrors.IsComparatorFailure(err))
}

func TestWrapComparator(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapComparator("guid", "#1", nil))

	err := pkgerrors.WrapComparator("guid", "#1", errors.New("boom"))
	require.Error(t, err)
	var cmpErr *pkgerrors.ComparatorError
	require.True(t, errors.As(err, &cmpErr))
	assert.Equal(t, "guid", cmpErr.Comparator)

	fatal := pkgerrors.NewStateError("octree", "not built")
	assert.Same(t, fatal, pkgerrors.WrapComparator("geometry", "#1", fatal))
}

func TestWrapHelpers(t *testing.T) {
	tests := []struct {
		name  string
		wrap  func(error) error
		check func(error) bool
	}{
		{"validation", func(err error) error { return pkgerrors.WrapValidation("field", err) }, pkgerrors.IsValidationError},
		{"config", func(err error) error { return pkgerrors.WrapConfig("profile", err) }, pkgerrors.IsConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.wrap(nil))
			assert.True(t, tt.check(tt.wrap(errors.New("x"))))
		})
	}

	ioErr := pkgerrors.WrapIO("read", "profile.yaml", errors.New("denied"))
	assert.Equal(t, "cannot read profile.yaml: denied", ioErr.Error())

	parseErr := pkgerrors.WrapParse("yaml", "profile.yaml", errors.New("bad indent"))
	assert.Equal(t, "cannot parse yaml file profile.yaml: bad indent", parseErr.Error())
}

func Example() {
	err := pkgerrors.NewUnsupportedError("differences", "")

	if pkgerrors.IsNotSupported(err) {
		fmt.Println("differences are not available")
	}

	// Output: differences are not available
}
