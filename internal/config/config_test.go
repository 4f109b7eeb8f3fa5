package config

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "bloodtool" {
		t.Errorf("expected Name=bloodtool, got %s", cfg.Name)
	}
	if cfg.Storage.Driver != DriverJSON {
		t.Errorf("expected Driver=json, got %s", cfg.Storage.Driver)
	}
	if cfg.Storage.DataFile != "saved_data.json" {
		t.Errorf("expected DataFile=saved_data.json, got %s", cfg.Storage.DataFile)
	}
	if cfg.Forms.MaxDeliveryDates != 365 {
		t.Errorf("expected MaxDeliveryDates=365, got %d", cfg.Forms.MaxDeliveryDates)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	// Ensure no env vars interfere
	t.Setenv("BLOODTOOL_STORAGE_DRIVER", "")
	t.Setenv("BLOODTOOL_DB", "")
	os.Unsetenv("BLOODTOOL_STORAGE_DRIVER")
	os.Unsetenv("BLOODTOOL_DB")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, DirName, FileName)

	cfg := DefaultConfig()
	cfg.Storage.Driver = DriverSQLite
	cfg.Storage.DatabasePath = "plans.db"
	cfg.Forms.MaxDayRanges = 10

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Storage.Driver != DriverSQLite {
		t.Errorf("expected Driver=sqlite, got %s", loaded.Storage.Driver)
	}
	if loaded.Storage.DatabasePath != "plans.db" {
		t.Errorf("expected DatabasePath=plans.db, got %s", loaded.Storage.DatabasePath)
	}
	if loaded.Forms.MaxDayRanges != 10 {
		t.Errorf("expected MaxDayRanges=10, got %d", loaded.Forms.MaxDayRanges)
	}
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.ExportFile != "user_data.json" {
		t.Errorf("expected default export file, got %s", cfg.Storage.ExportFile)
	}
}

func TestConfig_LoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("ui:\n  theme: dark\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", cfg.UI.Theme)
	}
	if cfg.Storage.DataFile != "saved_data.json" {
		t.Errorf("expected default DataFile to survive partial config, got %s", cfg.Storage.DataFile)
	}
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("storage: [unterminated"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid driver")
	}

	cfg = DefaultConfig()
	cfg.Storage.DataFile = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing data file")
	}

	cfg = DefaultConfig()
	cfg.UI.Theme = "neon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid theme")
	}

	cfg = DefaultConfig()
	cfg.Forms.MaxPlatoons = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative limit")
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("/ws", "data.json"); got != filepath.Join("/ws", "data.json") {
		t.Errorf("unexpected resolved path %s", got)
	}
	abs := filepath.Join(string(filepath.Separator), "tmp", "data.json")
	if got := Resolve("/ws", abs); got != abs {
		t.Errorf("absolute path should be kept, got %s", got)
	}
	if got := Resolve("/ws", ""); got != "" {
		t.Errorf("empty path should stay empty, got %s", got)
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	cfg := LoggingConfig{}
	if cfg.IsCategoryEnabled("store") {
		t.Error("categories should be disabled outside debug mode")
	}

	cfg.DebugMode = true
	if !cfg.IsCategoryEnabled("store") {
		t.Error("categories should default to enabled in debug mode")
	}

	cfg.Categories = map[string]bool{"store": false}
	if cfg.IsCategoryEnabled("store") {
		t.Error("explicitly disabled category should be disabled")
	}
	if !cfg.IsCategoryEnabled("ui") {
		t.Error("unlisted category should be enabled")
	}
}
