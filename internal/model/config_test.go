package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAppConfig(), cfg)
	assert.Equal(t, 25, cfg.Seed.AnnualItemCount)
	assert.Equal(t, 1000, cfg.AI.DebounceMs)
	assert.True(t, cfg.Seed.DemoOrders)
}

func TestLoadConfig_OverridesAndSanitizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
ai:
  model: claude-test
  debounce_ms: 0
seed:
  annual_item_count: -4
  random_seed: 42
  demo_orders: false
log:
  level: debug
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "claude-test", cfg.AI.Model)
	assert.Equal(t, 512, cfg.AI.MaxTokens)
	assert.Equal(t, 1000, cfg.AI.DebounceMs)
	assert.Equal(t, 25, cfg.Seed.AnnualItemCount)
	assert.EqualValues(t, 42, cfg.Seed.RandomSeed)
	assert.False(t, cfg.Seed.DemoOrders)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.AI.RequestsPerMinute = 5
	cfg.Seed.AnnualItemCount = 40

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.AI.RequestsPerMinute)
	assert.Equal(t, 40, loaded.Seed.AnnualItemCount)
}
