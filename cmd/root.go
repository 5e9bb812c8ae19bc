package main

import (
	"github.com/lshigami/Hireboard/config"
	"github.com/lshigami/Hireboard/internal/logger"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hireboard",
		Short:         "Hireboard assessment service",
		Long:          "Serves the test attempt and grading API and manages its database.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())
	cmd.AddCommand(newTokenCommand())
	return cmd
}

// loadConfig reads the config and applies its logging settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	logger.Configure(cfg.Env, cfg.LogLevel)
	return cfg, nil
}
