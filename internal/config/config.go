// Package config loads engine configuration from a YAML file with
// environment variable overrides. A .env file is honoured when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	defaultServiceName     = "qivook-engine"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8080
	defaultGatewayPort     = 8081
	defaultDataDir         = "data"
	defaultCacheTTL        = 5 * time.Minute
	defaultDBPath          = "qivook.db"
	defaultUpstreamURL     = "http://localhost:3000"
	defaultUpstreamTimeout = 30 * time.Second
	defaultCacheRoot       = "offline-cache"
	defaultSyncInterval    = 5 * time.Minute
	defaultSyncRPS         = 5
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
)

// Config holds all configuration for the Qivook engine.
type Config struct {
	Service Service `yaml:"service"`
	Data    Data    `yaml:"data"`
	Offline Offline `yaml:"offline"`
	Logging Logging `yaml:"logging"`
	Sync    Sync    `yaml:"sync"`
}

// Service holds service-level configuration.
type Service struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"QIVOOK_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"   yaml:"debug"`
}

// Data holds document discovery and cache configuration.
type Data struct {
	// Dir is the root directory containing per-country document fragments.
	Dir      string        `env:"QIVOOK_DATA_DIR" yaml:"dir"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// Countries to serve; defaults to all supported codes.
	Countries []string `yaml:"countries"`
}

// Offline holds offline gateway configuration.
type Offline struct {
	Port            int           `env:"QIVOOK_GATEWAY_PORT" yaml:"port"`
	UpstreamURL     string        `env:"QIVOOK_UPSTREAM_URL" yaml:"upstream_url"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
	// CacheRoot is the directory holding the versioned static and dynamic
	// response caches.
	CacheRoot string `env:"QIVOOK_CACHE_ROOT" yaml:"cache_root"`
	// ShellDir holds the application shell assets warmed at startup.
	ShellDir string `yaml:"shell_dir"`
	// DBPath is the sqlite database backing the offline write queue.
	DBPath string `env:"QIVOOK_DB_PATH" yaml:"db_path"`
}

// Logging holds logging configuration.
type Logging struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Sync holds background sync configuration.
type Sync struct {
	Interval time.Duration `yaml:"interval"`
	// RPS bounds outbound POSTs while draining the offline queues.
	RPS int `yaml:"rps"`
}

// Load reads configuration from path. A missing file yields defaults;
// environment variables always win over file values.
func Load(path string) (*Config, error) {
	// .env is optional; later os.Getenv picks its values up.
	_ = godotenv.Load()

	cfg := &Config{}
	raw, err := os.ReadFile(path)
	if err == nil {
		if unmarshalErr := yaml.Unmarshal(raw, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, unmarshalErr)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Service.Port <= 0 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid service port %d", c.Service.Port)
	}
	if c.Offline.Port <= 0 || c.Offline.Port > 65535 {
		return fmt.Errorf("invalid gateway port %d", c.Offline.Port)
	}
	if c.Service.Port == c.Offline.Port {
		return fmt.Errorf("service and gateway ports must differ, both %d", c.Service.Port)
	}
	if c.Data.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative, got %s", c.Data.CacheTTL)
	}
	if c.Sync.Interval <= 0 {
		return fmt.Errorf("sync interval must be positive, got %s", c.Sync.Interval)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QIVOOK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Service.Port = port
		}
	}
	if v := os.Getenv("APP_DEBUG"); v != "" {
		cfg.Service.Debug = v == "true"
	}
	if v := os.Getenv("QIVOOK_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("QIVOOK_GATEWAY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Offline.Port = port
		}
	}
	if v := os.Getenv("QIVOOK_UPSTREAM_URL"); v != "" {
		cfg.Offline.UpstreamURL = v
	}
	if v := os.Getenv("QIVOOK_CACHE_ROOT"); v != "" {
		cfg.Offline.CacheRoot = v
	}
	if v := os.Getenv("QIVOOK_DB_PATH"); v != "" {
		cfg.Offline.DBPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = defaultServiceVersion
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultServicePort
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = defaultDataDir
	}
	if cfg.Data.CacheTTL == 0 {
		cfg.Data.CacheTTL = defaultCacheTTL
	}
	if len(cfg.Data.Countries) == 0 {
		cfg.Data.Countries = []string{"RW", "KE", "UG", "TZ", "ET"}
	}
	if cfg.Offline.Port == 0 {
		cfg.Offline.Port = defaultGatewayPort
	}
	if cfg.Offline.UpstreamURL == "" {
		cfg.Offline.UpstreamURL = defaultUpstreamURL
	}
	if cfg.Offline.UpstreamTimeout == 0 {
		cfg.Offline.UpstreamTimeout = defaultUpstreamTimeout
	}
	if cfg.Offline.CacheRoot == "" {
		cfg.Offline.CacheRoot = defaultCacheRoot
	}
	if cfg.Offline.DBPath == "" {
		cfg.Offline.DBPath = defaultDBPath
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = defaultSyncInterval
	}
	if cfg.Sync.RPS == 0 {
		cfg.Sync.RPS = defaultSyncRPS
	}
}
