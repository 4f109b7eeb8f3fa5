// Package logging provides config-driven categorized logging for bloodtool.
// Logs are written to .bloodtool/logs/ as a single zap stream with one named
// logger per category. When debug_mode is false no logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"bloodtool/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Boot/initialization
	CategoryStore    Category = "store"    // Document persistence
	CategoryConflict Category = "conflict" // Conflict range validation
	CategoryForms    Category = "forms"    // Company and transport records
	CategoryUI       Category = "ui"       // Terminal interface
	CategoryWatcher  Category = "watcher"  // Data file watcher
	CategoryCLI      Category = "cli"      // Non-interactive commands
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	cfg     config.LoggingConfig
	logsDir string
)

// Initialize builds the shared logger from cfg. Should be called once at
// startup with the workspace path.
func Initialize(c config.LoggingConfig, workspace string) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	if !c.DebugMode {
		Replace(zap.NewNop(), c)
		return nil
	}

	dir := filepath.Join(workspace, config.DirName, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	file := c.File
	if file == "" {
		file = "bloodtool.log"
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(parseLevel(c.Level))
	zc.Encoding = "json"
	if c.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zc.OutputPaths = []string{filepath.Join(dir, file)}
	zc.ErrorOutputPaths = []string{"stderr"}

	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	Replace(l, c)
	mu.Lock()
	logsDir = dir
	mu.Unlock()

	Get(CategoryBoot).Info("logging initialized",
		zap.String("workspace", workspace),
		zap.String("logs_dir", dir),
		zap.String("level", c.Level),
		zap.Int("categories", len(c.Categories)))
	return nil
}

// Replace swaps the shared logger and returns a function restoring the
// previous one.
func Replace(l *zap.Logger, c config.LoggingConfig) func() {
	mu.Lock()
	defer mu.Unlock()
	prevBase, prevCfg, prevDir := base, cfg, logsDir
	base, cfg, logsDir = l, c, ""
	return func() {
		mu.Lock()
		defer mu.Unlock()
		base, cfg, logsDir = prevBase, prevCfg, prevDir
	}
}

// Get returns a named logger for the category. Returns a no-op logger if
// debug mode or the category is disabled.
func Get(category Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}
	return base.Named(string(category))
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.DebugMode
}

// LogsDir returns the active log directory, or "" when logging to no file.
func LogsDir() string {
	mu.RLock()
	defer mu.RUnlock()
	return logsDir
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	l := base
	mu.RUnlock()
	_ = l.Sync()
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
