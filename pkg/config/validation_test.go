package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_DefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Default config should pass validation: %v", err)
	}
}

func TestValidate_BadStorageType(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.General.StorageType = "s3"
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for storagetype 's3', got nil")
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.General.Port = 70000
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for port 70000, got nil")
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.General.LogLevel = "verbose"
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for loglevel 'verbose', got nil")
	}
}

func TestValidate_BadTokenValidity(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.General.TokenValidity = -1
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for negative tokenvalidity, got nil")
	}
}

func TestValidate_BadWOPIURL(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.General.WOPIURL = "not a url"
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for malformed wopiurl, got nil")
	}
}

func TestValidate_HTTPSNeedsKeyPair(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Security.UseHTTPS = true
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for usehttps without cert and key, got nil")
	}

	cfg.Security.WOPICert = "/etc/wopi/cert.pem"
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for usehttps without key, got nil")
	}

	cfg.Security.WOPIKey = "/etc/wopi/key.pem"
	if err := Validate(cfg); err != nil {
		t.Fatalf("Expected valid config with cert and key, got: %v", err)
	}
}

func TestValidate_MissingSecretPath(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Security.WOPISecretFile = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for empty wopisecretfile, got nil")
	}
}

func TestValidate_LocalBackend(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Local["storagehomepath"] = "relative/path"
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for relative storagehomepath, got nil")
	}

	cfg.Local["storagehomepath"] = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for empty storagehomepath, got nil")
	}
}

func TestValidate_XRootBackend(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.General.StorageType = "xroot"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for missing storageserver, got nil")
	}

	cfg.XRoot["storageserver"] = "eoshome.example.org"
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for storageserver without scheme, got nil")
	}

	cfg.XRoot["storageserver"] = "root://eoshome.example.org"
	if err := Validate(cfg); err != nil {
		t.Fatalf("Expected valid xroot config, got: %v", err)
	}
}

func TestCheckFiles_Secrets(t *testing.T) {
	tmpDir := t.TempDir()
	wopiSecret := filepath.Join(tmpDir, "wopisecret")
	iopSecret := filepath.Join(tmpDir, "iopsecret")

	cfg := GetDefaultConfig()
	cfg.Security.WOPISecretFile = wopiSecret
	cfg.Security.IOPSecretFile = iopSecret

	// Missing file
	if err := CheckFiles(cfg); err == nil {
		t.Fatal("Expected error for missing secret file, got nil")
	}

	// Empty file
	if err := os.WriteFile(wopiSecret, nil, 0600); err != nil {
		t.Fatalf("Failed to write secret file: %v", err)
	}
	if err := os.WriteFile(iopSecret, []byte("iop-secret\n"), 0600); err != nil {
		t.Fatalf("Failed to write secret file: %v", err)
	}
	if err := CheckFiles(cfg); err == nil {
		t.Fatal("Expected error for empty secret file, got nil")
	}

	// Both populated
	if err := os.WriteFile(wopiSecret, []byte("wopi-secret\n"), 0600); err != nil {
		t.Fatalf("Failed to write secret file: %v", err)
	}
	if err := CheckFiles(cfg); err != nil {
		t.Fatalf("Expected check to pass with populated secrets, got: %v", err)
	}

	// A directory is not a secret
	cfg.Security.IOPSecretFile = tmpDir
	if err := CheckFiles(cfg); err == nil {
		t.Fatal("Expected error for directory as secret file, got nil")
	}
}
