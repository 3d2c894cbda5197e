// Package cli provides the taskd command-line interface built on cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskd/internal/adapters/driven/config/file"
	"github.com/custodia-labs/taskd/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/taskd/internal/core/domain"
	"github.com/custodia-labs/taskd/internal/core/ports/driving"
	"github.com/custodia-labs/taskd/internal/core/services"
	"github.com/custodia-labs/taskd/internal/logger"
)

// annotationNoSetup marks commands that run without config or storage.
const annotationNoSetup = "taskd/no-setup"

var version = "dev"

// Persistent flags.
var (
	verbose     bool
	configDir   string
	dataDirFlag string
)

// Wired by setup, or injected through SetServices.
var (
	taskService     driving.TaskService
	settingsService driving.SettingsService

	configStore *file.ConfigStore
	storeHandle *sqlite.Handle
	appSettings *domain.AppSettings
	logCloser   io.Closer
	injected    bool
)

var rootCmd = &cobra.Command{
	Use:   "taskd",
	Short: "A small task tracker backed by an embedded SQLite database",
	Long: `taskd keeps a list of tasks in a single SQLite file.

It can be used from the command line, served as a JSON HTTP API,
browsed in a terminal UI, or exposed to AI assistants over MCP.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: func(*cobra.Command, []string) error { return shutdown() },
}

func init() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug traces to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.taskd)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory holding database.db (overrides storage.data_dir)")
}

// Execute runs the root command and releases resources afterwards.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a caller-supplied context.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := shutdown(); err == nil {
		err = cerr
	}
	return err
}

// SetVersion sets the version reported by "taskd version".
func SetVersion(v string) {
	version = v
}

// SetServices injects services and skips the default wiring. Passing a nil
// task service restores the default wiring.
func SetServices(tasks driving.TaskService, settings driving.SettingsService) {
	taskService = tasks
	settingsService = settings
	injected = tasks != nil
	appSettings = nil
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if injected || skipSetup(cmd) {
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("loading .env: %v", err)
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = store
	logger.Debug("config: %s", store.Path())

	svc := services.NewSettingsService(store)
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if dataDirFlag != "" {
		settings.Storage.DataDir = dataDirFlag
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	settingsService = svc
	appSettings = settings

	closer, err := logger.Configure(logger.Options{
		Level:     settings.Log.Level.String(),
		Format:    settings.Log.Format.String(),
		File:      settings.Log.File,
		MaxSizeMB: settings.Log.MaxSizeMB,
		MaxFiles:  settings.Log.MaxFiles,
	})
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	logCloser = closer

	storeHandle = sqlite.NewHandle(settings.Storage.DataDir)
	taskService = services.NewTaskService(storeHandle.TaskStore())
	return nil
}

func skipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoSetup] == "true" || c.Name() == "help" || c.Name() == "completion" {
			return true
		}
	}
	return false
}

// shutdown releases the store and the log file. Safe to call repeatedly.
func shutdown() error {
	var errs []error
	if storeHandle != nil {
		errs = append(errs, storeHandle.Release())
	}
	if logCloser != nil {
		errs = append(errs, logCloser.Close())
		logCloser = nil
	}
	return errors.Join(errs...)
}

// currentSettings returns the loaded settings, falling back to the settings
// service and then to defaults.
func currentSettings() domain.AppSettings {
	if appSettings != nil {
		return *appSettings
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			return *s
		}
	}
	return domain.DefaultAppSettings()
}

func requireTasks() error {
	if taskService == nil {
		return errors.New("task service not configured")
	}
	return nil
}
