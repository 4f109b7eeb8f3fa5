package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DirName is the per-workspace directory holding config, logs and databases.
const DirName = ".bloodtool"

// FileName is the config file inside DirName.
const FileName = "config.yaml"

// Storage drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config holds all bloodtool configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Persistence
	Storage StorageConfig `yaml:"storage"`

	// Form limits
	Forms FormsConfig `yaml:"forms"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and locates the document store.
type StorageConfig struct {
	Driver       string `yaml:"driver" env:"BLOODTOOL_STORAGE_DRIVER"` // json, sqlite
	DataFile     string `yaml:"data_file" env:"BLOODTOOL_DATA_FILE"`
	DatabasePath string `yaml:"database_path" env:"BLOODTOOL_DB"`
	ExportFile   string `yaml:"export_file" env:"BLOODTOOL_EXPORT_FILE"`
	Watch        bool   `yaml:"watch" env:"BLOODTOOL_WATCH"` // reload when the data file changes on disk
}

// FormsConfig bounds the repeated sections of each page.
type FormsConfig struct {
	MaxPlatoons      int `yaml:"max_platoons"`
	MaxTransports    int `yaml:"max_transports"`
	MaxDeliveryDates int `yaml:"max_delivery_dates"`
	MaxDayRanges     int `yaml:"max_day_ranges"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Theme string `yaml:"theme" env:"BLOODTOOL_THEME"` // light, dark, auto
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "bloodtool",
		Version: "1.0.0",

		Storage: StorageConfig{
			Driver:       DriverJSON,
			DataFile:     "saved_data.json",
			DatabasePath: filepath.Join(DirName, "bloodtool.db"),
			ExportFile:   "user_data.json",
			Watch:        true,
		},

		Forms: FormsConfig{
			MaxPlatoons:      50,
			MaxTransports:    20,
			MaxDeliveryDates: 365,
			MaxDayRanges:     52,
		},

		UI: UIConfig{
			Theme: "auto",
		},

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			File:      "bloodtool.log",
			DebugMode: false,
		},
	}
}

// DefaultPath returns the config path for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, DirName, FileName)
}

// Load loads configuration from a YAML file, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ValidDrivers lists the supported storage drivers.
var ValidDrivers = []string{DriverJSON, DriverSQLite}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validDriver := false
	for _, d := range ValidDrivers {
		if c.Storage.Driver == d {
			validDriver = true
			break
		}
	}
	if !validDriver {
		return fmt.Errorf("invalid storage driver: %s (valid: %v)", c.Storage.Driver, ValidDrivers)
	}

	if c.Storage.Driver == DriverJSON && c.Storage.DataFile == "" {
		return fmt.Errorf("storage.data_file is required for the json driver")
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.DatabasePath == "" {
		return fmt.Errorf("storage.database_path is required for the sqlite driver")
	}

	switch c.UI.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid ui.theme: %s (valid: auto, light, dark)", c.UI.Theme)
	}

	if c.Forms.MaxDeliveryDates < 0 || c.Forms.MaxPlatoons < 0 || c.Forms.MaxTransports < 0 || c.Forms.MaxDayRanges < 0 {
		return fmt.Errorf("form limits must not be negative")
	}

	return nil
}

// Resolve returns p made absolute against workspace when it is relative.
func Resolve(workspace, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workspace, p)
}
