package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"bloodtool/cmd/bloodtool/app"
	"bloodtool/internal/config"
	"bloodtool/internal/logging"
	"bloodtool/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bloodtool",
	Short: "bloodtool - blood logistics planning forms",
	Long: `bloodtool collects medical logistics planning data: the medical
logistics company and its platoons, transportation options with their delivery
schedules, and conflict-likelihood assessments over a simulation horizon.

Run without arguments to start the interactive form interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd == cmd.Root())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Sync()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <workspace>/.bloodtool/config.yaml)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup resolves the workspace, loads configuration and initializes logging.
// The interactive interface owns the terminal, so its logs only go to file.
func setup(interactive bool) error {
	if workspace == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve workspace: %w", err)
		}
		workspace = wd
	}
	abs, err := filepath.Abs(workspace)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace: %w", err)
	}
	workspace = abs

	path := configPath
	if path == "" {
		path = config.DefaultPath(workspace)
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if verbose {
		loaded.Logging.DebugMode = true
		loaded.Logging.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg = loaded

	if err := logging.Initialize(cfg.Logging, workspace); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if interactive || !verbose {
		logger = logging.Get(logging.CategoryCLI)
		return nil
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func openStore() (store.Store, error) {
	s, err := store.Open(workspace, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}
	return s, nil
}

// runInteractive launches the form interface.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}

	opts := app.Options{Workspace: workspace, Config: cfg, Store: s, Document: doc}
	if js, ok := s.(*store.JSONFileStore); ok && cfg.Storage.Watch {
		w, err := store.NewWatcher(js.Path(), 0)
		if err != nil {
			logger.Warn("file watch disabled", zap.Error(err))
		} else if err := w.Start(ctx); err != nil {
			logger.Warn("file watch disabled", zap.Error(err))
		} else {
			defer w.Stop()
			opts.Watcher = w
		}
	}

	logger.Info("starting interface",
		zap.String("workspace", workspace),
		zap.String("driver", cfg.Storage.Driver),
		zap.Int("entries", len(doc.Entries)))

	p := tea.NewProgram(app.New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}
