package config

import (
	"strings"
	"time"

	"github.com/cloudgateways/wopigate/pkg/filetype"
)

// Config represents the complete wopigate configuration.
//
// This structure captures all configurable aspects of the WOPI bridge
// including:
//   - Server-wide settings and file-type classification (general)
//   - TLS and shared-secret settings (security)
//   - Storage backend selection and backend-specific sections (local, xroot)
//   - I/O tuning (io)
//   - Metrics endpoint settings (monitoring)
//
// Configuration sources (in order of precedence):
//  1. Environment variables (WOPI_*)
//  2. Site configuration file (INI)
//  3. Defaults configuration file (INI)
//  4. Default values (lowest priority)
//
// Backend Configuration Pattern:
// general.storagetype selects the storage backend; only the section matching
// the selected backend is decoded and validated. The sections stay untyped
// maps here and are decoded with mapstructure on demand (see backends.go).
type Config struct {
	// General contains server-wide settings
	General GeneralConfig `mapstructure:"general"`

	// Security contains TLS and shared-secret settings
	Security SecurityConfig `mapstructure:"security"`

	// Local contains the local storage backend section
	// Only used when general.storagetype = "local"
	Local map[string]any `mapstructure:"local"`

	// XRoot contains the xroot storage backend section
	// Only used when general.storagetype = "xroot"
	XRoot map[string]any `mapstructure:"xroot"`

	// IO contains I/O tuning settings
	IO IOConfig `mapstructure:"io"`

	// Monitoring contains metrics endpoint settings
	Monitoring MonitoringConfig `mapstructure:"monitoring"`

	// Raw holds the merged key/value settings this Config was decoded
	// from, including keys unknown to the registry. Populated by Load;
	// round-trip serialization preserves it.
	Raw map[string]any `mapstructure:"-" json:"-"`
}

// GeneralConfig contains server-wide settings.
type GeneralConfig struct {
	// StorageType selects which storage backend section applies
	// Valid values: local, xroot
	StorageType string `mapstructure:"storagetype" validate:"required,oneof=local xroot"`

	// Port is the TCP port the bridge listens on
	Port int `mapstructure:"port" validate:"required,gte=1,lte=65535"`

	// NonOfficeTypes is a space-separated list of file extensions treated
	// as non-Office documents
	NonOfficeTypes string `mapstructure:"nonofficetypes"`

	// LogLevel is the verbosity: Debug, Info, Warning, Error or Critical
	// (case-insensitive). Debug also enables the framework debug mode.
	LogLevel string `mapstructure:"loglevel" validate:"required"`

	// TokenValidity is the access-token lifetime in seconds
	TokenValidity int `mapstructure:"tokenvalidity" validate:"required,gt=0"`

	// AllowedClients is a space-separated list of hostnames authorized to
	// request access tokens
	AllowedClients string `mapstructure:"allowedclients"`

	// WOPIURL is the externally visible URL of the bridge, advertised to
	// the editing frontend
	WOPIURL string `mapstructure:"wopiurl" validate:"omitempty,url"`

	// DownloadURL is the URL the frontend offers for plain downloads
	DownloadURL string `mapstructure:"downloadurl" validate:"omitempty,url"`
}

// SecurityConfig contains TLS and shared-secret settings.
type SecurityConfig struct {
	// UseHTTPS toggles TLS termination
	UseHTTPS bool `mapstructure:"usehttps"`

	// WOPICert and WOPIKey are the TLS certificate and key paths,
	// required when UseHTTPS is set
	WOPICert string `mapstructure:"wopicert"`
	WOPIKey  string `mapstructure:"wopikey"`

	// WOPISecretFile is the path of the shared secret signing access
	// tokens. Changing it requires a restart.
	WOPISecretFile string `mapstructure:"wopisecretfile" validate:"required"`

	// IOPSecretFile is the path of the shared secret authenticating
	// bridge-to-bridge calls. Changing it requires a restart.
	IOPSecretFile string `mapstructure:"iopsecretfile" validate:"required"`
}

// IOConfig contains I/O tuning settings.
type IOConfig struct {
	// ChunkSize is the I/O chunk size hint in bytes
	ChunkSize int `mapstructure:"chunksize" validate:"omitempty,gt=0"`
}

// MonitoringConfig contains metrics endpoint settings.
type MonitoringConfig struct {
	// Enabled toggles the Prometheus metrics endpoint
	Enabled bool `mapstructure:"enabled"`

	// Port is the metrics endpoint port
	Port int `mapstructure:"port" validate:"omitempty,gte=1,lte=65535"`
}

// TokenTTL returns general.tokenvalidity as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.General.TokenValidity) * time.Second
}

// AllowedClientList returns general.allowedclients split into hostnames.
func (c *Config) AllowedClientList() []string {
	return strings.Fields(c.General.AllowedClients)
}

// Classifier builds the file-type classifier from general.nonofficetypes.
func (c *Config) Classifier() *filetype.Classifier {
	return filetype.New(c.General.NonOfficeTypes)
}

// DebugMode reports whether the Debug loglevel is configured, which also
// enables the framework debug mode of the consuming server.
func (c *Config) DebugMode() bool {
	return strings.EqualFold(c.General.LogLevel, "Debug")
}
