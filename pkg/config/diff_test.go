package config

import (
	"testing"
)

func TestDiff_NoChanges(t *testing.T) {
	a := GetDefaultConfig()
	b := GetDefaultConfig()

	changes, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("Expected no changes between identical configs, got %v", changes)
	}
}

func TestDiff_Classification(t *testing.T) {
	a := GetDefaultConfig()
	b := GetDefaultConfig()
	b.General.LogLevel = "Debug"
	b.General.Port = 9980

	changes, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("Expected 2 changes, got %d: %v", len(changes), changes)
	}

	// Sorted by section then key: loglevel before port
	if changes[0].Key != "loglevel" || changes[0].RestartRequired {
		t.Errorf("Expected refreshable loglevel change first, got %+v", changes[0])
	}
	if changes[1].Key != "port" || !changes[1].RestartRequired {
		t.Errorf("Expected restart-required port change second, got %+v", changes[1])
	}

	if changes[0].Old != "Info" || changes[0].New != "Debug" {
		t.Errorf("Unexpected loglevel change values: %+v", changes[0])
	}
}

func TestDiff_BackendSection(t *testing.T) {
	a := GetDefaultConfig()
	b := GetDefaultConfig()
	b.Local["storagehomepath"] = "/srv/wopi"

	changes, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("Expected 1 change, got %d: %v", len(changes), changes)
	}
	c := changes[0]
	if c.Section != "local" || c.Key != "storagehomepath" {
		t.Errorf("Unexpected change location: %+v", c)
	}
	if !c.RestartRequired || !c.Known {
		t.Errorf("Expected known restart-required change, got %+v", c)
	}
}

func TestDiff_UnknownKeyIsRestartRequired(t *testing.T) {
	a := GetDefaultConfig()
	b := GetDefaultConfig()
	b.Local["experimental"] = true

	changes, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("Expected 1 change, got %d: %v", len(changes), changes)
	}
	c := changes[0]
	if c.Known {
		t.Errorf("Expected unknown key, got %+v", c)
	}
	if !c.RestartRequired {
		t.Errorf("Expected unknown key treated as restart-required, got %+v", c)
	}
}

func TestDiff_UndocumentedKeysFromRawSettings(t *testing.T) {
	// Undocumented keys only exist in the raw settings; a change there must
	// still surface, conservatively restart-required
	a := GetDefaultConfig()
	b := GetDefaultConfig()
	a.Raw = map[string]any{
		"general": map[string]any{"customflag": true},
	}
	b.Raw = map[string]any{
		"general": map[string]any{"customflag": false},
		"plugins": map[string]any{"enabled": true},
	}

	changes, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("Expected 2 changes, got %d: %v", len(changes), changes)
	}

	if changes[0].Section != "general" || changes[0].Key != "customflag" {
		t.Errorf("Expected general.customflag change, got %+v", changes[0])
	}
	if changes[0].Old != true || changes[0].New != false {
		t.Errorf("Unexpected customflag change values: %+v", changes[0])
	}
	if changes[1].Section != "plugins" || changes[1].Key != "enabled" {
		t.Errorf("Expected plugins.enabled change, got %+v", changes[1])
	}
	for _, c := range changes {
		if c.Known || !c.RestartRequired {
			t.Errorf("Expected unknown restart-required change, got %+v", c)
		}
	}
}

func TestDiff_RawNeverShadowsTypedFields(t *testing.T) {
	// Raw carries the file spelling, the struct the normalized one; the
	// struct value must win so normalization does not register as a change
	a := GetDefaultConfig()
	b := GetDefaultConfig()
	b.Raw = map[string]any{
		"general": map[string]any{"loglevel": "info"},
	}

	changes, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("Expected no changes, got %v", changes)
	}
}

func TestDiff_EquivalentScalarTypes(t *testing.T) {
	// One side decoded from INI (int64), the other a struct default (int);
	// the same numeric value must not register as a change
	a := GetDefaultConfig()
	b := GetDefaultConfig()
	a.Local["storagehomepath"] = "/srv/wopi"
	b.Local["storagehomepath"] = "/srv/wopi"
	a.XRoot["timeout"] = int64(30)
	b.XRoot["timeout"] = 30

	changes, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("Expected no changes for equivalent values, got %v", changes)
	}
}

func TestPartition(t *testing.T) {
	changes := []Change{
		{Section: "general", Key: "loglevel", RestartRequired: false},
		{Section: "general", Key: "port", RestartRequired: true},
		{Section: "general", Key: "tokenvalidity", RestartRequired: false},
	}

	refreshable, restart := Partition(changes)
	if len(refreshable) != 2 {
		t.Errorf("Expected 2 refreshable changes, got %d", len(refreshable))
	}
	if len(restart) != 1 || restart[0].Key != "port" {
		t.Errorf("Expected port as the restart-required change, got %v", restart)
	}
}

func TestChange_String(t *testing.T) {
	c := Change{Section: "general", Key: "loglevel", Old: "Info", New: "Debug"}
	if got := c.String(); got != "general.loglevel: Info -> Debug" {
		t.Errorf("Unexpected change string: %q", got)
	}
}
