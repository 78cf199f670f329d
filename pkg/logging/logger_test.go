package logging_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bimdiff/pkg/logging"
)

type category string

func (c category) String() string { return string(c) }

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Default().Debug().Msg("debug message")
	logging.Default().Info().Msg("info message")
	logging.Default().Warn().Msg("warning message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warning message")
	assert.NotContains(t, output, "debug message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithSession(ctx, "session-1")
	ctx = logging.WithComparator(ctx, "guid", category("identity"))
	ctx = logging.WithObject(ctx, "#42")

	logging.FromContext(ctx).Info().Msg("compared")

	testLogger.AssertContains(t, `"session_id":"session-1"`)
	testLogger.AssertContains(t, `"comparator":"guid"`)
	testLogger.AssertContains(t, `"category":"identity"`)
	testLogger.AssertContains(t, `"object":"#42"`)
	assert.Equal(t, "session-1", logging.Session(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.Ctx(nil))
	assert.Equal(t, "", logging.Session(context.Background()))
}

func TestWithFieldTypes(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithFields(ctx, map[string]any{
		"workers": 8,
		"ratio":   0.5,
		"strict":  true,
		"error":   errors.New("boom"),
	})

	logging.Ctx(ctx).Warn().Msg("fields")

	testLogger.AssertContains(t, `"workers":8`)
	testLogger.AssertContains(t, `"ratio":0.5`)
	testLogger.AssertContains(t, `"strict":true`)
	testLogger.AssertContains(t, `"error":"boom"`)
}

func TestNewLoggerFromConfig(t *testing.T) {
	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warning alias", "warning", zerolog.WarnLevel},
		{"off", "off", zerolog.Disabled},
		{"garbage", "loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tt.level,
				Format: "json",
				Output: "discard",
			})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestCaptureLoggingForTest(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)
	logging.Default().Error().Str("comparator", "name").Msg("comparator failed")

	captured.AssertContains(t, "comparator failed")
	captured.AssertNotContains(t, "geometry")
	assert.Len(t, captured.Lines(), 1)
	assert.True(t, strings.Contains(captured.Output(), `"level":"error"`))
}

func TestNewLoggerFromConfigFields(t *testing.T) {
	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

	path := filepath.Join(t.TempDir(), "bimdiff.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "info",
		Format: "json",
		Output: path,
		Fields: map[string]any{"project": "tower-b"},
	})
	logger.Info().Msg("session finished")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"project":"tower-b"`)
	assert.Contains(t, string(data), "session finished")
}
