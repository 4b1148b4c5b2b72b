// Package file stores tool configuration as TOML under the user's home
// directory (~/.policyctl/config.toml).
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/policyctl/internal/core/domain"
)

// Config is the persisted tool configuration.
type Config struct {
	// Tenant holds the app registration used for Graph access.
	Tenant TenantConfig `toml:"tenant"`
	// RateLimit optionally overrides the Graph client rate limit.
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// TenantConfig identifies the Microsoft Entra app registration.
type TenantConfig struct {
	TenantID     string `toml:"tenant_id"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// RateLimitConfig overrides the Graph request rate.
type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	BurstSize         int     `toml:"burst_size"`
}

// Configured reports whether the tenant section is usable.
func (c *Config) Configured() bool {
	return c.Tenant.TenantID != "" && c.Tenant.ClientID != "" && c.Tenant.ClientSecret != ""
}

// ConfigStore reads and writes the configuration file.
type ConfigStore struct {
	path string
}

// NewConfigStore creates a store at the given path, or the default
// ~/.policyctl/config.toml when path is empty.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".policyctl", "config.toml")
	}
	return &ConfigStore{path: path}, nil
}

// Load reads the configuration. A missing file yields a zero Config, not
// an error; callers gate on Configured.
func (s *ConfigStore) Load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration, creating the directory if needed. The
// file is restricted to the owner because it carries a client secret.
func (s *ConfigStore) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// RequireTenant loads the configuration and fails with ErrNotConfigured
// when the tenant section is incomplete.
func (s *ConfigStore) RequireTenant() (*Config, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}
	if !cfg.Configured() {
		return nil, domain.ErrNotConfigured
	}
	return cfg, nil
}
