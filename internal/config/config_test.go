package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.ClientID != DefaultClientID {
		t.Errorf("ClientID = %q, want %q", cfg.ClientID, DefaultClientID)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_url: https://staging.routinely.app/api/v1\nclient_id: rt-dev\nno_color: true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "https://staging.routinely.app/api/v1" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.ClientID != "rt-dev" {
		t.Errorf("ClientID = %q", cfg.ClientID)
	}
	if !cfg.NoColor {
		t.Error("NoColor = false, want true")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("RT_API_URL", "http://localhost:8080/api/v1")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "http://localhost:8080/api/v1" {
		t.Errorf("APIURL = %q, want env override", cfg.APIURL)
	}
}

func TestDirOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "rt-config")
	t.Setenv("RT_CONFIG_DIR", want)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("Dir() did not create the directory: %v", err)
	}
}
