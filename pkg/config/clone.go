package config

// Clone returns a deep copy of the configuration.
//
// The reload manager hands out snapshots; cloning keeps a published
// snapshot immutable while the next refresh is prepared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Local = cloneMap(c.Local)
	clone.XRoot = cloneMap(c.XRoot)
	clone.Raw = cloneMap(c.Raw)
	return &clone
}

// cloneMap copies a settings map, recursing into nested section maps.
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[k] = cloneMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}
