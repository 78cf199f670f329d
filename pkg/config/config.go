// Package config loads reconciler settings and comparator profiles.
//
// Settings come from, in order of precedence:
//  1. Environment variables prefixed BIMDIFF_ (BIMDIFF_WORKERS, BIMDIFF_WEIGHTS_IDENTITY, ...)
//  2. .env and .env.local files
//  3. A YAML config file (bimdiff.yaml in . or $HOME, or an explicit path)
//  4. Defaults
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/bimdiff/pkg/comparator"
	"github.com/agentstation/bimdiff/pkg/constants"
	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BIMDIFF"

// DefaultAttribute is the attribute the default profile's attribute comparator reads.
const DefaultAttribute = "Tag"

// Config holds the reconciler settings.
type Config struct {
	// ConfigFile is the config file that was read, empty when none was found.
	ConfigFile string

	Workers       int
	ResolvePasses int

	// TargetTypes are glob or regex patterns restricting the compared object types.
	TargetTypes []string

	// Weights overrides the default weight of built-in categories.
	Weights map[comparator.Category]int

	// Attribute is the attribute read by the default profile's attribute comparator.
	Attribute string

	// GeometryTolerance overrides the models' precision when positive.
	GeometryTolerance float64

	// ProfilePath points to a comparator profile; empty selects DefaultProfile.
	ProfilePath string

	Logging logging.Config
}

type loader struct {
	file     string
	envFiles []string
}

// LoadOption configures Load.
type LoadOption func(*loader)

// WithFile reads the given config file instead of searching for bimdiff.yaml.
func WithFile(path string) LoadOption {
	return func(l *loader) { l.file = path }
}

// WithEnvFiles replaces the .env files loaded before reading the environment.
// Calling it without arguments disables .env loading.
func WithEnvFiles(files ...string) LoadOption {
	return func(l *loader) { l.envFiles = files }
}

// Load reads the configuration and validates it.
func Load(opts ...LoadOption) (*Config, error) {
	l := &loader{envFiles: []string{".env", ".env.local"}}
	for _, opt := range opts {
		opt(l)
	}

	// .env.local overrides .env
	for _, f := range l.envFiles {
		_ = godotenv.Overload(f)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if l.file != "" {
		if _, err := os.Stat(l.file); err != nil {
			return nil, errors.WrapIO("read", l.file, err)
		}
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName("bimdiff")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.WrapParse("yaml", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{
		ConfigFile:        v.ConfigFileUsed(),
		Workers:           v.GetInt("workers"),
		ResolvePasses:     v.GetInt("resolve_passes"),
		TargetTypes:       splitList(v.GetStringSlice("target_types")),
		Weights:           make(map[comparator.Category]int, len(comparator.Categories)),
		Attribute:         v.GetString("attribute"),
		GeometryTolerance: v.GetFloat64("geometry.tolerance"),
		ProfilePath:       v.GetString("profile"),
		Logging: logging.Config{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			Output:     v.GetString("log.output"),
			TimeFormat: v.GetString("log.time_format"),
			NoColor:    v.GetBool("log.no_color"),
			AddCaller:  v.GetBool("log.add_caller"),
			Fields:     v.GetStringMap("log.fields"),
		},
	}
	for _, c := range comparator.Categories {
		cfg.Weights[c] = v.GetInt("weights." + c.String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", constants.DefaultWorkers)
	v.SetDefault("resolve_passes", constants.DefaultResolvePasses)
	v.SetDefault("target_types", []string{})
	v.SetDefault("attribute", DefaultAttribute)
	v.SetDefault("geometry.tolerance", 0.0)
	v.SetDefault("profile", "")
	for _, c := range comparator.Categories {
		v.SetDefault("weights."+c.String(), c.DefaultWeight())
	}

	log := logging.DefaultConfig()
	v.SetDefault("log.level", log.Level)
	v.SetDefault("log.format", log.Format)
	v.SetDefault("log.output", log.Output)
	v.SetDefault("log.time_format", log.TimeFormat)
	v.SetDefault("log.no_color", log.NoColor)
	v.SetDefault("log.add_caller", log.AddCaller)
}

// Default returns the configuration Load produces with no file and no environment.
func Default() *Config {
	cfg := &Config{
		Workers:       constants.DefaultWorkers,
		ResolvePasses: constants.DefaultResolvePasses,
		Weights:       make(map[comparator.Category]int, len(comparator.Categories)),
		Attribute:     DefaultAttribute,
		Logging:       *logging.DefaultConfig(),
	}
	for _, c := range comparator.Categories {
		cfg.Weights[c] = c.DefaultWeight()
	}
	return cfg
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Workers < 1 || c.Workers > constants.MaxWorkers {
		return &errors.ValidationError{
			Field:   "workers",
			Value:   c.Workers,
			Message: fmt.Sprintf("must be between 1 and %d", constants.MaxWorkers),
		}
	}
	if c.ResolvePasses < 1 || c.ResolvePasses > constants.MaxResolvePasses {
		return &errors.ValidationError{
			Field:   "resolve_passes",
			Value:   c.ResolvePasses,
			Message: fmt.Sprintf("must be between 1 and %d", constants.MaxResolvePasses),
		}
	}
	for cat, w := range c.Weights {
		if w < 0 {
			return &errors.ValidationError{Field: "weights." + cat.String(), Value: w, Message: "cannot be negative"}
		}
	}
	if c.GeometryTolerance < 0 {
		return &errors.ValidationError{Field: "geometry.tolerance", Value: c.GeometryTolerance, Message: "cannot be negative"}
	}
	return nil
}

// Profile returns the comparator profile the configuration selects.
func (c *Config) Profile() (*Profile, error) {
	if c.ProfilePath != "" {
		return LoadProfile(c.ProfilePath)
	}
	return DefaultProfile(c.Attribute), nil
}

// splitList accepts both YAML lists and comma separated environment values.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
