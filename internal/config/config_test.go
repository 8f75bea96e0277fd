package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Hostname != "localhost" {
		t.Errorf("Hostname = %q, want localhost", cfg.Hostname)
	}
	if cfg.IdentityPort != DefaultIdentityPort {
		t.Errorf("IdentityPort = %d, want %d", cfg.IdentityPort, DefaultIdentityPort)
	}
	if cfg.AssetPort != DefaultAssetPort {
		t.Errorf("AssetPort = %d, want %d", cfg.AssetPort, DefaultAssetPort)
	}
	if cfg.HRPort != DefaultHRPort {
		t.Errorf("HRPort = %d, want %d", cfg.HRPort, DefaultHRPort)
	}
	if cfg.PageSize != 12 {
		t.Errorf("PageSize = %d, want 12", cfg.PageSize)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want 500ms", cfg.Debounce)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AMS_HOSTNAME", "console.example.com")
	t.Setenv("AMS_ASSET_PORT", "8080")
	t.Setenv("AMS_PAGE_SIZE", "25")
	t.Setenv("AMS_DEBOUNCE", "250ms")
	t.Setenv("AMS_TOKEN", "tok")

	cfg := Load()

	if cfg.Hostname != "console.example.com" {
		t.Errorf("Hostname = %q", cfg.Hostname)
	}
	if cfg.AssetPort != 8080 {
		t.Errorf("AssetPort = %d, want 8080", cfg.AssetPort)
	}
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.PageSize)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", cfg.Debounce)
	}
	if cfg.Token != "tok" {
		t.Errorf("Token = %q, want tok", cfg.Token)
	}
}

func TestLoadIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("AMS_ASSET_PORT", "not-a-port")
	t.Setenv("AMS_PAGE_SIZE", "-3")
	t.Setenv("AMS_DEBOUNCE", "soon")

	cfg := Load()

	if cfg.AssetPort != DefaultAssetPort {
		t.Errorf("AssetPort = %d, want default %d", cfg.AssetPort, DefaultAssetPort)
	}
	if cfg.PageSize != 12 {
		t.Errorf("PageSize = %d, want default 12", cfg.PageSize)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want default 500ms", cfg.Debounce)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ams.yaml")
	data := []byte("hostname: ams.internal\nassetPort: 9090\npageSize: 20\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hostname != "ams.internal" {
		t.Errorf("Hostname = %q", cfg.Hostname)
	}
	if cfg.AssetPort != 9090 {
		t.Errorf("AssetPort = %d", cfg.AssetPort)
	}
	// Values the file does not set keep their defaults.
	if cfg.IdentityPort != DefaultIdentityPort {
		t.Errorf("IdentityPort = %d", cfg.IdentityPort)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestServiceBaseMapsLoopbackToLocalhost(t *testing.T) {
	tests := []struct {
		hostname string
		want     string
	}{
		{"localhost", "http://localhost:5202"},
		{"127.0.0.1", "http://localhost:5202"},
		{"", "http://localhost:5202"},
		{"ams.example.com", "http://ams.example.com:5202"},
	}
	for _, tt := range tests {
		if got := serviceBase(tt.hostname, 5202); got != tt.want {
			t.Errorf("serviceBase(%q) = %q, want %q", tt.hostname, got, tt.want)
		}
	}
}
