package config

import (
	"sort"
	"strings"
	"testing"
)

func TestKeys_SortedAndComplete(t *testing.T) {
	keys := Keys()
	if len(keys) != len(registry) {
		t.Fatalf("Expected %d keys, got %d", len(registry), len(keys))
	}

	sorted := sort.SliceIsSorted(keys, func(i, j int) bool {
		if keys[i].Section != keys[j].Section {
			return keys[i].Section < keys[j].Section
		}
		return keys[i].Name < keys[j].Name
	})
	if !sorted {
		t.Error("Expected keys sorted by section then name")
	}

	for _, k := range keys {
		if k.Description == "" {
			t.Errorf("Key %s has no description", k.Path())
		}
	}
}

func TestLookup(t *testing.T) {
	key, ok := Lookup("general", "loglevel")
	if !ok {
		t.Fatal("Expected general.loglevel to be documented")
	}
	if key.RestartRequired {
		t.Error("Expected general.loglevel to be runtime-refreshable")
	}
	// The documented enum matches what the validator accepts
	for _, level := range []string{"Debug", "Info", "Warning", "Error", "Critical"} {
		if !strings.Contains(key.Description, level) {
			t.Errorf("Expected loglevel description to name %s, got %q", level, key.Description)
		}
	}

	// Lookups are case-insensitive, like the INI files
	if _, ok := Lookup("General", "LogLevel"); !ok {
		t.Error("Expected case-insensitive lookup to succeed")
	}

	if _, ok := Lookup("general", "nosuchkey"); ok {
		t.Error("Expected lookup of undocumented key to fail")
	}
}

func TestRegistry_RefreshableKeys(t *testing.T) {
	// The refreshable set mirrors what the original gateway re-reads in its
	// periodic refresh; everything else needs a restart
	refreshable := map[string]bool{
		"general.nonofficetypes": true,
		"general.loglevel":       true,
		"general.tokenvalidity":  true,
		"general.allowedclients": true,
		"general.wopiurl":        true,
		"general.downloadurl":    true,
	}

	for _, k := range Keys() {
		want := refreshable[k.Path()]
		if k.RestartRequired == want {
			t.Errorf("Key %s: RestartRequired=%v, expected %v", k.Path(), k.RestartRequired, !want)
		}
	}
}

func TestSectionKeys(t *testing.T) {
	security := SectionKeys("security")
	if len(security) != 5 {
		t.Fatalf("Expected 5 security keys, got %d", len(security))
	}
	for _, k := range security {
		if k.Section != "security" {
			t.Errorf("Unexpected section %q in security keys", k.Section)
		}
	}

	if keys := SectionKeys("nosuchsection"); len(keys) != 0 {
		t.Errorf("Expected no keys for unknown section, got %v", keys)
	}
}

func TestUnknownKeys(t *testing.T) {
	settings := map[string]any{
		"general": map[string]any{
			"loglevel": "Info",
			"typo":     "oops",
		},
		"custom": map[string]any{
			"flag": true,
		},
	}

	unknown := UnknownKeys(settings)
	want := []string{"custom.flag", "general.typo"}
	if len(unknown) != len(want) {
		t.Fatalf("Expected %v, got %v", want, unknown)
	}
	for i := range want {
		if unknown[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, unknown)
			break
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindString: "string",
		KindInt:    "int",
		KindBool:   "bool",
		KindPath:   "path",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("Kind %d: expected %q, got %q", kind, want, kind.String())
		}
	}
}
