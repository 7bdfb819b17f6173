package config

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// iniCodec teaches viper the INI format the gateway is configured with.
//
// viper dropped built-in INI support with its pluggable-codec rework, so the
// format is registered explicitly, backed by go-ini. Decode produces one
// nested map per section; Encode is its inverse and preserves every
// key/value pair, documented or not.
type iniCodec struct{}

// Decode parses INI bytes into viper's settings map.
//
// Section names and keys are lowercased (INI files are conventionally
// case-insensitive and viper keys are lowercase). Values are scalars:
// integers and booleans are converted, everything else stays a string.
func (iniCodec) Decode(b []byte, v map[string]any) error {
	f, err := ini.Load(b)
	if err != nil {
		return fmt.Errorf("failed to parse INI data: %w", err)
	}

	for _, section := range f.Sections() {
		target := v
		if section.Name() != ini.DefaultSection {
			sectionMap := make(map[string]any)
			target = sectionMap
			v[strings.ToLower(section.Name())] = sectionMap
		}
		for _, key := range section.Keys() {
			target[strings.ToLower(key.Name())] = convertValue(key.Value())
		}
	}

	return nil
}

// Encode serializes viper's settings map back to INI bytes.
//
// Sections and keys are emitted in sorted order so the output is
// deterministic.
func (iniCodec) Encode(v map[string]any) ([]byte, error) {
	f := ini.Empty()

	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sectionMap, ok := v[name].(map[string]any)
		if !ok {
			// Top-level scalar: goes to the unnamed default section.
			f.Section(ini.DefaultSection).Key(name).SetValue(formatValue(v[name]))
			continue
		}

		section := f.Section(name)
		keys := make([]string, 0, len(sectionMap))
		for k := range sectionMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			section.Key(k).SetValue(formatValue(sectionMap[k]))
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize INI data: %w", err)
	}
	return buf.Bytes(), nil
}

// convertValue turns an INI string value into a typed scalar.
//
// Booleans accept the spellings commonly found in these files (yes/no,
// on/off, true/false); anything numeric becomes an int64. Conversion is
// best-effort: a value that fits neither stays a string and the validator
// reports the mismatch later.
func convertValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	return s
}

// formatValue is the inverse of convertValue.
func formatValue(v any) string {
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", v)
	}
}

// newViper returns a viper instance with the INI codec registered.
func newViper() (*viper.Viper, error) {
	codecs := viper.NewCodecRegistry()
	if err := codecs.RegisterCodec("ini", iniCodec{}); err != nil {
		return nil, fmt.Errorf("failed to register INI codec: %w", err)
	}
	return viper.NewWithOptions(viper.WithCodecRegistry(codecs)), nil
}
