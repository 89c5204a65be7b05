package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adlumen/budget-engine/internal/config"
	"github.com/adlumen/budget-engine/pkg/constants"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %s, expected %s", cfg.Address, constants.DefaultServerAddress)
	}
	if cfg.MaxBodyBytes() != constants.DefaultMaxBodyBytes {
		t.Errorf("MaxBodyBytes() = %d, expected %d", cfg.MaxBodyBytes(), constants.DefaultMaxBodyBytes)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %s, expected default", cfg.Address)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `server:
  address: ":9191"
  maxBodySize: 2MB
logging:
  level: debug
  format: console
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != ":9191" {
		t.Errorf("Address = %s, expected :9191", cfg.Address)
	}
	if cfg.MaxBodyBytes() != 2*1024*1024 {
		t.Errorf("MaxBodyBytes() = %d, expected 2 MB", cfg.MaxBodyBytes())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, expected debug", cfg.Logging.Level)
	}
}

// One configuration file drives both the CLI and the server: the server
// reads its blocks from the same file that carries the engine and campaign
// settings.
func TestLoadConfigSharedFile(t *testing.T) {
	content := `engine:
  focus: demo
  timeframe: 28
campaigns:
  Brand Search:
    minBudget: 100
    maxBudget: 450
server:
  address: ":7070"
  maxBodySize: 512KB
`
	path := writeConfigFile(t, content)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != ":7070" {
		t.Errorf("Address = %s, expected :7070", cfg.Address)
	}
	if cfg.MaxBodyBytes() != 512*1024 {
		t.Errorf("MaxBodyBytes() = %d, expected 512 KB", cfg.MaxBodyBytes())
	}

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Engine.Focus != "demo" {
		t.Errorf("Engine.Focus = %s, expected demo", conf.Engine.Focus)
	}
	if conf.Server.Address != ":7070" {
		t.Errorf("Server.Address = %s, expected :7070", conf.Server.Address)
	}
	if _, ok := conf.Campaigns["Brand Search"]; !ok {
		t.Errorf("campaigns block missing Brand Search: %v", conf.Campaigns)
	}
}

func TestLoadConfigInvalidSize(t *testing.T) {
	path := writeConfigFile(t, "server:\n  maxBodySize: huge\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for an unparseable maxBodySize")
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{"Plain bytes", "1024", 1024, false},
		{"Byte suffix", "512B", 512, false},
		{"Kilobytes", "4KB", 4096, false},
		{"Short kilobytes", "4K", 4096, false},
		{"Megabytes", "2MB", 2 * 1024 * 1024, false},
		{"Lowercase suffix", "2mb", 2 * 1024 * 1024, false},
		{"Unknown suffix", "2GB", 0, true},
		{"No digits", "MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseSize(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("parseSize(%q) error = %v", tt.input, err)
				return
			}
			if result != tt.expected {
				t.Errorf("parseSize(%q) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}
