package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change taskd settings.

Settings live in config.toml inside the config directory. Environment
variables (TASKD_ADDR, TASKD_DATA_DIR, TASKD_LOG_LEVEL, ...) override
the file for a single run.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Validate and persist one setting.

Examples:
  taskd settings set server.addr :8080
  taskd settings set log.level debug
  taskd settings set server.rate_limit 0`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if dataDirFlag != "" {
		settings.Storage.DataDir = dataDirFlag
	}

	cmd.Println("Storage")
	cmd.Printf("  data_dir:        %s\n", settings.Storage.DataDir)
	cmd.Println()
	cmd.Println("Server")
	cmd.Printf("  addr:            %s\n", settings.Server.Addr)
	cmd.Printf("  request_timeout: %s\n", settings.Server.RequestTimeout)
	if settings.Server.RateLimit > 0 {
		cmd.Printf("  rate_limit:      %g req/s (burst %d)\n", settings.Server.RateLimit, settings.Server.RateBurst)
	} else {
		cmd.Println("  rate_limit:      disabled")
	}
	cmd.Println()
	cmd.Println("Logging")
	cmd.Printf("  level:           %s\n", settings.Log.Level)
	cmd.Printf("  format:          %s\n", settings.Log.Format.Description())
	if settings.Log.File != "" {
		cmd.Printf("  file:            %s (%d MB x %d)\n", settings.Log.File, settings.Log.MaxSizeMB, settings.Log.MaxFiles)
	} else {
		cmd.Println("  file:            stderr")
	}

	if configStore != nil {
		cmd.Println()
		cmd.Printf("Config file: %s\n", configStore.Path())
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}
