package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides_Storage(t *testing.T) {
	t.Run("BLOODTOOL_STORAGE_DRIVER switches backend", func(t *testing.T) {
		t.Setenv("BLOODTOOL_STORAGE_DRIVER", "sqlite")
		t.Setenv("BLOODTOOL_DB", "/var/lib/bloodtool/plans.db")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
		assert.Equal(t, "/var/lib/bloodtool/plans.db", cfg.Storage.DatabasePath)
	})

	t.Run("unset variables keep loaded values", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Storage.DataFile = "custom.json"
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, "custom.json", cfg.Storage.DataFile)
		assert.Equal(t, "auto", cfg.UI.Theme)
	})

	t.Run("BLOODTOOL_WATCH parses booleans", func(t *testing.T) {
		t.Setenv("BLOODTOOL_WATCH", "false")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.False(t, cfg.Storage.Watch)
	})

	t.Run("invalid boolean is an error", func(t *testing.T) {
		t.Setenv("BLOODTOOL_WATCH", "sometimes")

		cfg := DefaultConfig()
		err := cfg.applyEnvOverrides()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env:")
	})
}

func TestEnvOverrides_Logging(t *testing.T) {
	t.Setenv("BLOODTOOL_DEBUG", "1")
	t.Setenv("BLOODTOOL_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.applyEnvOverrides())

	assert.True(t, cfg.Logging.DebugMode)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format, "unset format keeps default")
}

func TestEnvOverrides_AppliedByLoad(t *testing.T) {
	t.Setenv("BLOODTOOL_THEME", "dark")

	cfg, err := Load(t.TempDir() + "/absent.yaml")
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.UI.Theme)
}
