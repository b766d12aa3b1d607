// cmd/chatbot/root.go
package main

import (
	"github.com/spf13/cobra"

	"gear9-chatbot/internal/app"
	"gear9-chatbot/internal/common/config"
	"gear9-chatbot/internal/common/logger"
	"gear9-chatbot/internal/common/observability"
)

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "chatbot",
		Short:         "Gear9 company-information chatbot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a config YAML file (default: configs/config.yaml lookup)")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newAskCommand(opts))
	root.AddCommand(newSubjectsCommand(opts))
	root.AddCommand(newValidateKBCommand())
	return root
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFromFile(o.configPath)
	}
	return config.Load()
}

// newOneShotApp builds an App for commands that answer and exit: logs go
// to stderr at warn level and no prometheus exporter is registered.
func (o *rootOptions) newOneShotApp() (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.NewStructured("warn", "console", "stderr")
	obs := observability.New(cfg.App.Name, log, observability.WithoutMetrics())
	return app.New(cfg, log, app.WithObservability(obs))
}
