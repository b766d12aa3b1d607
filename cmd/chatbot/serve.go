// cmd/chatbot/serve.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gear9-chatbot/internal/app"
	"gear9-chatbot/internal/common/config"
	"gear9-chatbot/internal/common/logger"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, and the Zeebe worker when camunda.enabled is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)

			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					log.Warn("Shutdown incomplete", map[string]interface{}{"error": err.Error()})
				}
			}()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if cfg.Camunda.Enabled {
				w, err := a.StartWorker(ctx)
				if err != nil {
					return err
				}
				if w != nil {
					defer w.Close()
				}
			}

			server := a.Server()
			errCh := make(chan error, 1)
			go func() { errCh <- server.Start(cfg.Server.Address) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("Shutdown signal received", nil)
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
			defer cancelShutdown()
			return server.Shutdown(shutdownCtx)
		},
	}
}
