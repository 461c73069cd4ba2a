package config

import (
	"errors"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Errors.
var (
	ErrLoadFile = errors.New("config: failed to load config file")
	ErrLoadEnv  = errors.New("config: failed to load environment")
)

// delim separates segments of dotted config keys (e.g. "app.key").
const delim = "."

// Config is a read-only view over layered configuration sources.
// Lookups use dotted keys and never fail: unknown keys resolve to the
// type's zero value. Sources are layered defaults < file < environment,
// later layers overriding earlier ones.
type Config struct {
	k *koanf.Koanf
}

// Option configures loading.
type Option func(*loadOptions)

type loadOptions struct {
	defaults  map[string]any
	filePath  string
	envPrefix string
}

// WithDefaults seeds the configuration with default values.
// Keys are dotted paths, e.g. {"http.trust_proxy": false}.
func WithDefaults(values map[string]any) Option {
	return func(o *loadOptions) {
		o.defaults = values
	}
}

// WithFile loads a YAML configuration file over the defaults.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.filePath = path
	}
}

// WithEnvPrefix loads environment variables with the given prefix over
// all other sources. Variables map to dotted keys by stripping the
// prefix, lowercasing, and treating "__" as the key delimiter:
// PLINTH_HTTP__TRUST_PROXY -> http.trust_proxy.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// New loads configuration from the configured sources.
func New(opts ...Option) (*Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(delim)

	if o.defaults != nil {
		// confmap provider cannot fail on a plain map
		_ = k.Load(confmap.Provider(o.defaults, delim), nil)
	}

	if o.filePath != "" {
		if err := k.Load(file.Provider(o.filePath), yaml.Parser()); err != nil {
			return nil, errors.Join(ErrLoadFile, err)
		}
	}

	if o.envPrefix != "" {
		transform := func(s string) string {
			s = strings.ToLower(strings.TrimPrefix(s, o.envPrefix))
			return strings.ReplaceAll(s, "__", delim)
		}
		if err := k.Load(env.Provider(o.envPrefix, delim, transform), nil); err != nil {
			return nil, errors.Join(ErrLoadEnv, err)
		}
	}

	return &Config{k: k}, nil
}

// FromMap builds a Config directly from a dotted-key map.
// Intended for tests and embedded defaults.
func FromMap(values map[string]any) *Config {
	k := koanf.New(delim)
	_ = k.Load(confmap.Provider(values, delim), nil)
	return &Config{k: k}
}

// Exists reports whether the key is set in any source.
func (c *Config) Exists(key string) bool {
	return c.k.Exists(key)
}

// String returns the string value for key, or "" if unset.
func (c *Config) String(key string) string {
	return c.k.String(key)
}

// Bool returns the bool value for key, or false if unset.
func (c *Config) Bool(key string) bool {
	return c.k.Bool(key)
}

// Int returns the int value for key, or 0 if unset.
func (c *Config) Int(key string) int {
	return c.k.Int(key)
}

// Strings returns the string slice value for key, or nil if unset.
func (c *Config) Strings(key string) []string {
	return c.k.Strings(key)
}
