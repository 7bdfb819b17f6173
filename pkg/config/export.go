package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EncodeINI serializes a configuration to INI, the gateway's native format.
//
// When the configuration was produced by Load, the attached raw settings
// are used so that undocumented keys survive the round trip; otherwise the
// typed fields are flattened.
func EncodeINI(cfg *Config) ([]byte, error) {
	settings, err := settingsMap(cfg)
	if err != nil {
		return nil, err
	}
	return iniCodec{}.Encode(settings)
}

// EncodeYAML serializes a configuration to YAML, for consumption by tools
// that do not speak INI.
func EncodeYAML(cfg *Config) ([]byte, error) {
	settings, err := settingsMap(cfg)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize config to YAML: %w", err)
	}
	return out, nil
}

// settingsMap returns the section/key map for serialization.
func settingsMap(cfg *Config) (map[string]any, error) {
	if cfg.Raw != nil {
		return cfg.Raw, nil
	}

	flat, err := flatten(cfg)
	if err != nil {
		return nil, err
	}
	nested := make(map[string]any)
	for path, value := range flat {
		section, key := splitPath(path)
		sectionMap, ok := nested[section].(map[string]any)
		if !ok {
			sectionMap = make(map[string]any)
			nested[section] = sectionMap
		}
		sectionMap[key] = value
	}
	return nested, nil
}

// WriteSampleConfig writes a commented sample configuration to path,
// generated from the key registry with all defaults filled in.
//
// Fails if the file already exists: a sample must never clobber a site
// configuration.
func WriteSampleConfig(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(SampleConfig()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SampleConfig renders the commented sample configuration.
func SampleConfig() string {
	var b strings.Builder
	b.WriteString("; wopigate configuration\n")
	b.WriteString("; generated sample - adjust and move to " + DefaultConfigPath + "\n")

	section := ""
	for _, key := range Keys() {
		if key.Section != section {
			section = key.Section
			fmt.Fprintf(&b, "\n[%s]\n", section)
		}
		fmt.Fprintf(&b, "; %s", key.Description)
		if key.RestartRequired {
			b.WriteString(" (restart required)")
		}
		b.WriteString("\n")

		value := ""
		if key.Default != nil {
			value = formatValue(key.Default)
		}
		if value == "" {
			fmt.Fprintf(&b, ";%s =\n", key.Name)
			continue
		}
		fmt.Fprintf(&b, "%s = %s\n", key.Name, value)
	}
	return b.String()
}
