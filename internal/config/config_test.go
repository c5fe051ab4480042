//nolint:testpackage // Testing internal defaults requires same package access
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Service.Port != defaultServicePort {
		t.Errorf("service port = %d, want %d", cfg.Service.Port, defaultServicePort)
	}
	if cfg.Offline.Port != defaultGatewayPort {
		t.Errorf("gateway port = %d, want %d", cfg.Offline.Port, defaultGatewayPort)
	}
	if cfg.Data.CacheTTL != defaultCacheTTL {
		t.Errorf("cache TTL = %s, want %s", cfg.Data.CacheTTL, defaultCacheTTL)
	}
	if len(cfg.Data.Countries) != 5 {
		t.Errorf("countries = %v, want all five supported codes", cfg.Data.Countries)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
service:
  port: 9090
data:
  dir: /var/qivook/data
  cache_ttl: 10m
  countries: [RW, KE]
offline:
  upstream_url: http://app.internal:3000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Service.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Service.Port)
	}
	if cfg.Data.Dir != "/var/qivook/data" {
		t.Errorf("data dir = %q", cfg.Data.Dir)
	}
	if cfg.Data.CacheTTL != 10*time.Minute {
		t.Errorf("cache TTL = %s, want 10m", cfg.Data.CacheTTL)
	}
	if len(cfg.Data.Countries) != 2 {
		t.Errorf("countries = %v, want [RW KE]", cfg.Data.Countries)
	}
	if cfg.Offline.UpstreamURL != "http://app.internal:3000" {
		t.Errorf("upstream = %q", cfg.Offline.UpstreamURL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "service:\n  port: 9090\n")
	t.Setenv("QIVOOK_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Service.Port)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "service: [not a mapping")

	if _, err := Load(path); err == nil {
		t.Fatal("Load() should fail on malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"bad service port", func(c *Config) { c.Service.Port = -1 }, true},
		{"bad gateway port", func(c *Config) { c.Offline.Port = 70000 }, true},
		{"port collision", func(c *Config) { c.Offline.Port = c.Service.Port }, true},
		{"negative ttl", func(c *Config) { c.Data.CacheTTL = -time.Minute }, true},
		{"zero sync interval", func(c *Config) { c.Sync.Interval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
