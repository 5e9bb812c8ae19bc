package main

import (
	"github.com/lshigami/Hireboard/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.NewDatabase(cfg)
			if err != nil {
				return err
			}
			return database.AutoMigrate(db)
		},
	}
}
