package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/policyctl/internal/core/domain"
)

func TestConfigStore_LoadMissingFile(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	cfg, err := store.Load()

	require.NoError(t, err)
	assert.False(t, cfg.Configured())
}

func TestConfigStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	original := &Config{
		Tenant: TenantConfig{
			TenantID:     "tenant-1",
			ClientID:     "client-1",
			ClientSecret: "hunter2",
		},
		RateLimit: RateLimitConfig{RequestsPerSecond: 4, BurstSize: 8},
	}
	require.NoError(t, store.Save(original))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
	assert.True(t, loaded.Configured())
}

func TestConfigStore_SaveCreatesDirectoryAndRestrictsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(&Config{}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_RequireTenant(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	_, err = store.RequireTenant()
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	require.NoError(t, store.Save(&Config{Tenant: TenantConfig{
		TenantID: "t", ClientID: "c", ClientSecret: "s",
	}}))

	cfg, err := store.RequireTenant()
	require.NoError(t, err)
	assert.Equal(t, "t", cfg.Tenant.TenantID)
}

func TestConfig_Configured(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected bool
	}{
		{name: "empty", cfg: Config{}, expected: false},
		{name: "missing secret", cfg: Config{Tenant: TenantConfig{TenantID: "t", ClientID: "c"}}, expected: false},
		{name: "complete", cfg: Config{Tenant: TenantConfig{TenantID: "t", ClientID: "c", ClientSecret: "s"}}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.Configured())
		})
	}
}
