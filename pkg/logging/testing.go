package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger records every event at trace level and above so tests can
// assert on what a session logged. Comparators log from worker goroutines,
// so writes are serialized.
type TestLogger struct {
	*zerolog.Logger
	sink *capture
}

type capture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// NewTestLogger returns a capturing logger. The global level is lowered to
// trace until the test ends.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(level) })

	sink := &capture{}
	logger := zerolog.New(sink).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	return &TestLogger{Logger: &logger, sink: sink}
}

// Output is everything logged so far, one JSON event per line.
func (tl *TestLogger) Output() string {
	tl.sink.mu.Lock()
	defer tl.sink.mu.Unlock()
	return tl.sink.buf.String()
}

// Lines splits Output into events.
func (tl *TestLogger) Lines() []string {
	out := strings.TrimSpace(tl.Output())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Contains reports whether any event contains substr.
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}

// AssertContains fails t unless the output contains substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !tl.Contains(substr) {
		t.Errorf("log output missing %q:\n%s", substr, tl.Output())
	}
}

// AssertNotContains fails t if the output contains substr.
func (tl *TestLogger) AssertNotContains(t testing.TB, substr string) {
	t.Helper()
	if tl.Contains(substr) {
		t.Errorf("log output unexpectedly has %q:\n%s", substr, tl.Output())
	}
}

// NewNopLogger returns a logger that drops everything.
func NewNopLogger() *zerolog.Logger {
	nop := zerolog.Nop()
	return &nop
}

// DisableLoggingForTest silences the default logger until t ends.
func DisableLoggingForTest(t testing.TB) {
	t.Helper()
	swapDefault(t, zerolog.Nop())
}

// CaptureLoggingForTest routes the default logger into a TestLogger until t ends.
func CaptureLoggingForTest(t testing.TB) *TestLogger {
	t.Helper()
	tl := NewTestLogger(t)
	swapDefault(t, *tl.Logger)
	return tl
}

func swapDefault(t testing.TB, logger zerolog.Logger) {
	previous := defaultLogger
	SetDefault(logger)
	t.Cleanup(func() { SetDefault(previous) })
}
