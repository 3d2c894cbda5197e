package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskd/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/taskd/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task API over HTTP",
	Long: `Start the JSON HTTP API.

Routes:
  GET    /api/tasks[?completed=true|false]
  POST   /api/tasks
  GET    /api/tasks/{id}
  PUT    /api/tasks/{id}
  PATCH  /api/tasks/{id}
  DELETE /api/tasks/{id}
  GET    /healthz, /readyz

The listen address defaults to server.addr (":3000").
Edits to log.level in the config file apply without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireTasks(); err != nil {
		return err
	}

	settings := currentSettings()
	addr := settings.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	cfg := httpapi.Config{
		RequestTimeout: settings.Server.RequestTimeout,
		RateLimit:      settings.Server.RateLimit,
		RateBurst:      settings.Server.RateBurst,
		Logger:         logger.L(),
	}
	if storeHandle != nil {
		cfg.Ready = storeHandle
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchConfig(ctx)

	srv := httpapi.NewServer(taskService, cfg)
	return srv.Run(ctx, addr)
}

// watchConfig applies log level changes from the config file until ctx ends.
func watchConfig(ctx context.Context) {
	if configStore == nil || settingsService == nil {
		return
	}
	err := configStore.Watch(ctx, func() {
		settings, err := settingsService.Get()
		if err != nil {
			logger.L().Warn("settings reload failed", "error", err)
			return
		}
		if err := logger.SetLevel(settings.Log.Level.String()); err != nil {
			logger.L().Warn("log level not applied", "level", settings.Log.Level, "error", err)
			return
		}
		logger.L().Info("log level applied", "level", settings.Log.Level)
	})
	if err != nil {
		logger.L().Warn("config watch disabled", "error", err)
	}
}
