package config

import (
	"testing"
)

func TestLocalSettings_Decode(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Local = map[string]any{
		"storagehomepath": "/srv/wopi",
		"extra":           "ignored",
	}

	settings, err := cfg.LocalSettings()
	if err != nil {
		t.Fatalf("Failed to decode local settings: %v", err)
	}
	if settings.StorageHomePath != "/srv/wopi" {
		t.Errorf("Expected storagehomepath '/srv/wopi', got %q", settings.StorageHomePath)
	}
}

func TestXRootSettings_Decode(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.XRoot = map[string]any{
		"storageserver":   "root://eoshome.example.org",
		"storagehomepath": "/eos/user",
	}

	settings, err := cfg.XRootSettings()
	if err != nil {
		t.Fatalf("Failed to decode xroot settings: %v", err)
	}
	if settings.StorageServer != "root://eoshome.example.org" {
		t.Errorf("Expected storageserver URL, got %q", settings.StorageServer)
	}
	if settings.StorageHomePath != "/eos/user" {
		t.Errorf("Expected storagehomepath '/eos/user', got %q", settings.StorageHomePath)
	}
}

func TestBackendSettings_EmptySection(t *testing.T) {
	cfg := &Config{}

	local, err := cfg.LocalSettings()
	if err != nil {
		t.Fatalf("Failed to decode empty local section: %v", err)
	}
	if local.StorageHomePath != "" {
		t.Errorf("Expected empty storagehomepath, got %q", local.StorageHomePath)
	}

	xroot, err := cfg.XRootSettings()
	if err != nil {
		t.Fatalf("Failed to decode empty xroot section: %v", err)
	}
	if xroot.StorageServer != "" {
		t.Errorf("Expected empty storageserver, got %q", xroot.StorageServer)
	}
}
