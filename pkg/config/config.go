package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Well-known configuration file locations, matching the packaged layout of
// the gateway.
const (
	// DefaultDefaultsPath is the distribution-provided defaults file.
	DefaultDefaultsPath = "/etc/wopi/wopiserver.defaults.conf"

	// DefaultConfigPath is the site configuration file.
	DefaultConfigPath = "/etc/wopi/wopiserver.conf"
)

// Load loads the configuration from a single site file, the WOPI_*
// environment and built-in defaults.
//
// A missing file is acceptable - the result is the default configuration
// with any environment overrides applied.
func Load(configPath string) (*Config, error) {
	return LoadWithDefaults("", configPath)
}

// LoadWithDefaults loads the configuration the way the packaged gateway
// does: a distribution defaults file first, then the site file merged over
// it, then environment overrides.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (WOPI_*, e.g. WOPI_GENERAL_LOGLEVEL=Debug)
//  2. Site configuration file
//  3. Defaults configuration file
//  4. Built-in default values
//
// A named defaults file must exist and parse - a broken distribution file
// is fatal. The site file is optional.
//
// Returns the loaded and validated configuration, with the merged raw
// settings attached for round-trip serialization and unknown-key reporting.
func LoadWithDefaults(defaultsPath, configPath string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	setupViper(v)

	if defaultsPath != "" {
		v.SetConfigFile(defaultsPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read defaults file: %w", err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := mergeConfigFile(v, defaultsPath == ""); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Raw = v.AllSettings()

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures environment variable support, the file format and
// registry defaults.
func setupViper(v *viper.Viper) {
	// Environment variables use the WOPI_ prefix and underscores
	// Example: WOPI_SECURITY_USEHTTPS=true
	v.SetEnvPrefix("WOPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The gateway is configured with INI files regardless of extension
	// (.conf in the packaged layout)
	v.SetConfigType("ini")

	// Registry defaults make every documented key present, so environment
	// overrides resolve even without a config file
	for _, key := range Keys() {
		if key.Default != nil {
			v.SetDefault(key.Path(), key.Default)
		}
	}
}

// mergeConfigFile merges the site configuration file if it exists.
func mergeConfigFile(v *viper.Viper, first bool) error {
	read := v.MergeInConfig
	if first {
		read = v.ReadInConfig
	}
	if err := read(); err != nil {
		// A missing site file is acceptable - defaults and environment
		// apply
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
