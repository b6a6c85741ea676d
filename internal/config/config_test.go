// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
api:
  base_url: "https://nova.example.com"
  timeout: "45s"

session:
  path: "/tmp/nova-session.json"

history:
  path: "/tmp/nova-history.db"

logging:
  level: "debug"
  format: "json"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://nova.example.com" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "https://nova.example.com")
	}
	if cfg.API.Timeout != 45*time.Second {
		t.Errorf("API.Timeout = %v, want %v", cfg.API.Timeout, 45*time.Second)
	}
	if cfg.Session.Path != "/tmp/nova-session.json" {
		t.Errorf("Session.Path = %q, want %q", cfg.Session.Path, "/tmp/nova-session.json")
	}
	if cfg.History.Path != "/tmp/nova-history.db" {
		t.Errorf("History.Path = %q, want %q", cfg.History.Path, "/tmp/nova-history.db")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("NOVA_TEST_BASE_URL", "https://expanded.example.com")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := `
api:
  base_url: "${NOVA_TEST_BASE_URL}"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "https://expanded.example.com" {
		t.Errorf("API.BaseURL = %q, want expanded env value", cfg.API.BaseURL)
	}
}

func TestLoad_UnsetEnvVarExpandsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := `
api:
  base_url: "${NOVA_DEFINITELY_UNSET_VAR}"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "" {
		t.Errorf("API.BaseURL = %q, want empty", cfg.API.BaseURL)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := `
api:
  timeout: "not-a-duration"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() error = nil, want duration parse error")
	}
	if !strings.Contains(err.Error(), "api.timeout") {
		t.Errorf("error = %v, want mention of api.timeout", err)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := `
logging:
  level: "verbose"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("Load() error = nil, want validation error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load() error = nil, want read error")
	}
}

func TestLoadOrDefault_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.API.BaseURL != "" {
		t.Errorf("API.BaseURL = %q, want empty default", cfg.API.BaseURL)
	}
}

func TestLoadOrDefault_EnvOverride(t *testing.T) {
	t.Setenv("NOVA_API_URL", "https://override.example.com")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := `
api:
  base_url: "https://file.example.com"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadOrDefault(configPath)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.API.BaseURL != "https://override.example.com" {
		t.Errorf("API.BaseURL = %q, want env override", cfg.API.BaseURL)
	}
}

func TestDefaultPath_NovaConfigWins(t *testing.T) {
	t.Setenv("NOVA_CONFIG", "/etc/nova/special.yaml")
	if got := DefaultPath(); got != "/etc/nova/special.yaml" {
		t.Errorf("DefaultPath() = %q, want NOVA_CONFIG value", got)
	}
}

func TestDefaultPath_XDGConfigHome(t *testing.T) {
	t.Setenv("NOVA_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	want := filepath.Join("/tmp/xdg-test", "nova", "config.yaml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
