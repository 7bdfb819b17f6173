package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// LocalSettings is the decoded form of the [local] section, used when
// general.storagetype = "local".
type LocalSettings struct {
	// StorageHomePath is the root filesystem path of the backend
	StorageHomePath string `mapstructure:"storagehomepath"`
}

// XRootSettings is the decoded form of the [xroot] section, used when
// general.storagetype = "xroot".
type XRootSettings struct {
	// StorageServer is the URL of the remote storage endpoint
	StorageServer string `mapstructure:"storageserver"`

	// StorageHomePath is the home path prefix on the remote storage
	StorageHomePath string `mapstructure:"storagehomepath"`
}

// LocalSettings decodes the [local] section.
//
// The section is stored as an untyped map so that the file round-trips with
// unknown keys intact; this is where it becomes typed.
func (c *Config) LocalSettings() (LocalSettings, error) {
	var settings LocalSettings
	if err := mapstructure.Decode(c.Local, &settings); err != nil {
		return LocalSettings{}, fmt.Errorf("invalid local backend config: %w", err)
	}
	return settings, nil
}

// XRootSettings decodes the [xroot] section.
func (c *Config) XRootSettings() (XRootSettings, error) {
	var settings XRootSettings
	if err := mapstructure.Decode(c.XRoot, &settings); err != nil {
		return XRootSettings{}, fmt.Errorf("invalid xroot backend config: %w", err)
	}
	return settings, nil
}

// validateBackend checks the section selected by general.storagetype.
//
// Backend sections are configuration only: no driver is instantiated here,
// the consuming server does that with the decoded settings.
func validateBackend(cfg *Config) error {
	switch cfg.General.StorageType {
	case "local":
		settings, err := cfg.LocalSettings()
		if err != nil {
			return err
		}
		if settings.StorageHomePath == "" {
			return fmt.Errorf("local.storagehomepath: required for the local storage backend")
		}
		if !filepath.IsAbs(settings.StorageHomePath) {
			return fmt.Errorf("local.storagehomepath: %q is not an absolute path", settings.StorageHomePath)
		}
		return nil

	case "xroot":
		settings, err := cfg.XRootSettings()
		if err != nil {
			return err
		}
		if settings.StorageServer == "" {
			return fmt.Errorf("xroot.storageserver: required for the xroot storage backend")
		}
		if !strings.Contains(settings.StorageServer, "://") {
			return fmt.Errorf("xroot.storageserver: %q is not a URL", settings.StorageServer)
		}
		return nil

	default:
		// The struct tag on StorageType already restricts the value;
		// this guards against the enum and this switch drifting apart
		return fmt.Errorf("unknown storage backend type: %q", cfg.General.StorageType)
	}
}
