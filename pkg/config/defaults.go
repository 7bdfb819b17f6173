package config

import (
	"github.com/cloudgateways/wopigate/internal/logger"
	"github.com/cloudgateways/wopigate/pkg/filetype"
)

// ApplyDefaults sets default values for any unspecified configuration
// fields and normalizes values.
//
// This function is called after loading configuration from files and
// environment variables to fill in any missing values with sensible
// defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
//   - Only the selected backend section receives defaults
func ApplyDefaults(cfg *Config) {
	applyGeneralDefaults(&cfg.General)
	applySecurityDefaults(&cfg.Security)
	applyBackendDefaults(cfg)
	applyIODefaults(&cfg.IO)
	applyMonitoringDefaults(&cfg.Monitoring)
}

// applyGeneralDefaults sets general defaults and normalizes the loglevel.
func applyGeneralDefaults(cfg *GeneralConfig) {
	if cfg.StorageType == "" {
		cfg.StorageType = DefaultStorageType
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.NonOfficeTypes == "" {
		cfg.NonOfficeTypes = filetype.DefaultNonOfficeTypes
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	// Normalize the loglevel spelling (debug -> Debug) for consistent
	// internal representation; unknown values are left alone for the
	// validator to report
	if level, ok := logger.ParseLevel(cfg.LogLevel); ok {
		cfg.LogLevel = canonicalLevel(level)
	}
	if cfg.TokenValidity == 0 {
		cfg.TokenValidity = DefaultTokenValidity
	}
}

// canonicalLevel returns the configuration spelling of a level.
func canonicalLevel(level logger.Level) string {
	switch level {
	case logger.LevelDebug:
		return "Debug"
	case logger.LevelInfo:
		return "Info"
	case logger.LevelWarning:
		return "Warning"
	case logger.LevelError:
		return "Error"
	case logger.LevelCritical:
		return "Critical"
	default:
		return DefaultLogLevel
	}
}

// applySecurityDefaults sets shared-secret path defaults.
func applySecurityDefaults(cfg *SecurityConfig) {
	if cfg.WOPISecretFile == "" {
		cfg.WOPISecretFile = DefaultWOPISecretPath
	}
	if cfg.IOPSecretFile == "" {
		cfg.IOPSecretFile = DefaultIOPSecretPath
	}
	// UseHTTPS defaults to false; cert and key stay empty until TLS is
	// enabled
}

// applyBackendDefaults initializes the backend sections.
func applyBackendDefaults(cfg *Config) {
	if cfg.Local == nil {
		cfg.Local = make(map[string]any)
	}
	if cfg.XRoot == nil {
		cfg.XRoot = make(map[string]any)
	}

	// Apply defaults for the local backend (for config file generation);
	// the xroot backend has no sensible site-independent defaults
	if _, ok := cfg.Local["storagehomepath"]; !ok {
		cfg.Local["storagehomepath"] = DefaultLocalStoragePath
	}
}

// applyIODefaults sets I/O tuning defaults.
func applyIODefaults(cfg *IOConfig) {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
}

// applyMonitoringDefaults sets metrics endpoint defaults.
func applyMonitoringDefaults(cfg *MonitoringConfig) {
	// Enabled defaults to false
	if cfg.Port == 0 {
		cfg.Port = DefaultMonitoringPort
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{
		Local: make(map[string]any),
		XRoot: make(map[string]any),
	}
	ApplyDefaults(cfg)
	return cfg
}
