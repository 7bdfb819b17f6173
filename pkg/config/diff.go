package config

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// Change describes one configuration key whose value differs between two
// configurations.
type Change struct {
	// Section and Key locate the changed value.
	Section string
	Key     string

	// Old and New are the values on each side.
	Old any
	New any

	// RestartRequired reports whether the change only takes effect after
	// a process restart. Keys unknown to the registry are conservatively
	// treated as restart-required.
	RestartRequired bool

	// Known reports whether the key is documented in the registry.
	Known bool
}

func (c Change) String() string {
	return fmt.Sprintf("%s.%s: %v -> %v", c.Section, c.Key, c.Old, c.New)
}

// Diff compares two configurations key by key.
//
// Changes are classified against the key registry so that callers can tell
// runtime-refreshable changes from restart-required ones. The result is
// sorted by section and key.
func Diff(oldCfg, newCfg *Config) ([]Change, error) {
	oldFlat, err := flatten(oldCfg)
	if err != nil {
		return nil, err
	}
	newFlat, err := flatten(newCfg)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var changes []Change

	for path, oldValue := range oldFlat {
		seen[path] = true
		newValue, ok := newFlat[path]
		if ok && sameValue(oldValue, newValue) {
			continue
		}
		changes = append(changes, newChange(path, oldValue, newValue))
	}
	for path, newValue := range newFlat {
		if seen[path] {
			continue
		}
		changes = append(changes, newChange(path, nil, newValue))
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Section != changes[j].Section {
			return changes[i].Section < changes[j].Section
		}
		return changes[i].Key < changes[j].Key
	})
	return changes, nil
}

// Partition splits changes into runtime-refreshable and restart-required
// groups.
func Partition(changes []Change) (refreshable, restartRequired []Change) {
	for _, c := range changes {
		if c.RestartRequired {
			restartRequired = append(restartRequired, c)
			continue
		}
		refreshable = append(refreshable, c)
	}
	return refreshable, restartRequired
}

func newChange(path string, oldValue, newValue any) Change {
	section, key := splitPath(path)
	registered, known := Lookup(section, key)
	restart := true
	if known {
		restart = registered.RestartRequired
	}
	return Change{
		Section:         section,
		Key:             key,
		Old:             oldValue,
		New:             newValue,
		RestartRequired: restart,
		Known:           known,
	}
}

// flatten converts a Config into section.key -> value form, using the same
// mapstructure tags the loader decodes with.
//
// Keys the typed struct does not carry (undocumented keys, novel sections)
// exist only in the raw settings and are overlaid afterwards; for keys the
// struct does carry, the struct value wins so that diffs see normalized
// values rather than raw file spellings.
func flatten(cfg *Config) (map[string]any, error) {
	var nested map[string]any
	if err := mapstructure.Decode(cfg, &nested); err != nil {
		return nil, fmt.Errorf("failed to flatten config: %w", err)
	}

	flat := make(map[string]any)
	for section, value := range nested {
		sectionMap, ok := value.(map[string]any)
		if !ok {
			flat[section] = value
			continue
		}
		for key, v := range sectionMap {
			flat[section+"."+key] = v
		}
	}

	for section, value := range cfg.Raw {
		sectionMap, ok := value.(map[string]any)
		if !ok {
			if _, seen := flat[section]; !seen {
				flat[section] = value
			}
			continue
		}
		for key, v := range sectionMap {
			path := section + "." + key
			if _, seen := flat[path]; !seen {
				flat[path] = v
			}
		}
	}
	return flat, nil
}

func splitPath(path string) (section, key string) {
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			return path[:i], path[i+1:]
		}
	}
	return path, ""
}

// sameValue compares two settings values.
//
// The two sides may carry different scalar types for the same key (int64
// from the INI codec vs int from a struct field), so values are compared by
// their canonical string form.
func sameValue(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
