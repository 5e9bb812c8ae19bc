package main

import (
	"fmt"
	"time"

	"github.com/lshigami/Hireboard/internal/database"
	"github.com/lshigami/Hireboard/internal/middleware"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/lshigami/Hireboard/internal/seed"
	"github.com/lshigami/Hireboard/internal/service"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data from a YAML file",
		Long: `Load users, jobs, questions, tests and applications from a YAML file.

Prints a development token for every seeded user when JWT_SECRET is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f, err := seed.Load(file)
			if err != nil {
				return err
			}
			db, err := database.NewDatabase(cfg)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}

			questionRepo := repository.NewQuestionRepository(db)
			testRepo := repository.NewTestRepository(db)
			applicationRepo := repository.NewApplicationRepository(db)
			seeder := &seed.Seeder{
				Users:        repository.NewUserRepository(db),
				Jobs:         repository.NewJobRepository(db),
				Applications: applicationRepo,
				Questions:    service.NewQuestionService(questionRepo),
				Tests:        service.NewTestService(testRepo, questionRepo),
				Rounds:       service.NewApplicationService(applicationRepo, testRepo),
			}
			res, err := seeder.Run(cmd.Context(), f)
			if err != nil {
				return err
			}

			if cfg.Auth.JWTSecret == "" {
				return nil
			}
			for key, u := range res.Users {
				tok, err := middleware.SignToken([]byte(cfg.Auth.JWTSecret), u.ID, u.Role, 24*time.Hour)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, id %d): %s\n", key, u.Role, u.ID, tok)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "seed file")
	return cmd
}
