package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger settings. It is embedded in the bimdiff
// configuration under the "logging" key.
type Config struct {
	// Level is trace, debug, info, warn, error, off. Unknown values mean info.
	Level string `mapstructure:"level" yaml:"level"`

	// Format is json, console or auto. Auto picks console on a terminal.
	Format string `mapstructure:"format" yaml:"format"`

	// Output is stderr, stdout, discard or a file path
	Output string `mapstructure:"output" yaml:"output"`

	// TimeFormat for console timestamps: kitchen, rfc3339, rfc3339nano, unix or a Go layout
	TimeFormat string `mapstructure:"time_format" yaml:"time_format"`

	NoColor   bool `mapstructure:"no_color" yaml:"no_color"`
	AddCaller bool `mapstructure:"add_caller" yaml:"add_caller"`

	// Fields are attached to every event, e.g. a project or model name.
	Fields map[string]any `mapstructure:"fields" yaml:"fields"`
}

// DefaultConfig logs info and above to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
		Fields:     make(map[string]any),
	}
}

// NewLoggerFromConfig builds a logger from cfg and sets zerolog's global
// level to match. A nil cfg means DefaultConfig.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	zctx := zerolog.New(cfg.writer()).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		zctx = zctx.Caller()
	}
	for k, v := range cfg.Fields {
		zctx = addField(zctx, k, v)
	}
	return zctx.Logger()
}

func (cfg *Config) writer() io.Writer {
	out := openOutput(cfg.Output)

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if out == os.Stderr && isatty() {
			format = "console"
		}
	}
	if format != "console" && format != "pretty" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: parseTimeFormat(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

// openOutput falls back to stderr when a log file cannot be opened.
func openOutput(name string) io.Writer {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stderr
	}
	return f
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

func parseTimeFormat(s string) string {
	switch strings.ToLower(s) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "unix", "epoch":
		return ""
	}
	if strings.Contains(s, "2006") || strings.Contains(s, "15:04") {
		return s
	}
	return time.Kitchen
}

func addField(zctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return zctx.Str(key, v)
	case int:
		return zctx.Int(key, v)
	case int64:
		return zctx.Int64(key, v)
	case uint64:
		return zctx.Uint64(key, v)
	case float64:
		return zctx.Float64(key, v)
	case bool:
		return zctx.Bool(key, v)
	case time.Time:
		return zctx.Time(key, v)
	case error:
		if key == "error" || key == "err" {
			return zctx.Err(v)
		}
		return zctx.Str(key, v.Error())
	}
	return zctx.Interface(key, value)
}
