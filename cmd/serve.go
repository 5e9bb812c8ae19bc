package main

import (
	"github.com/lshigami/Hireboard/config"
	_ "github.com/lshigami/Hireboard/docs"
	"github.com/lshigami/Hireboard/internal/controller/candidate"
	"github.com/lshigami/Hireboard/internal/controller/recruiter"
	"github.com/lshigami/Hireboard/internal/database"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/lshigami/Hireboard/internal/selection"
	"github.com/lshigami/Hireboard/internal/server"
	"github.com/lshigami/Hireboard/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func newServeCommand() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			app := fx.New(appOptions(cfg, migrate), fx.NopLogger)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run database migrations before serving")
	return cmd
}

func appOptions(cfg *config.Config, migrate bool) fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg),
		fx.Provide(
			database.NewDatabase,
			server.NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewTestRepository,
			repository.NewTestAttemptRepository,
			repository.NewAnswerRepository,
			repository.NewApplicationRepository,
			repository.NewJobRepository,
			func(questionRepo repository.QuestionRepository) *selection.Selector {
				return selection.New(questionRepo)
			},
		),

		// Services Layer
		fx.Provide(
			service.NewScoreConverterService,
			service.NewGeminiLLMService,
			service.NewQuestionService,
			service.NewTestService,
			service.NewAttemptService,
			service.NewFeedbackService,
			service.NewAnalyticsService,
			service.NewApplicationService,
			service.NewCandidateService,
		),

		// API Controllers Layer
		fx.Provide(
			candidate.NewCandidateAttemptController,
			recruiter.NewRecruiterTestController,
			recruiter.NewRecruiterQuestionController,
			recruiter.NewRecruiterAttemptController,
			recruiter.NewRecruiterAnalyticsController,
			recruiter.NewRecruiterApplicationController,
		),
	}
	if migrate {
		opts = append(opts, fx.Invoke(func(db *gorm.DB) error { return database.AutoMigrate(db) }))
	}
	opts = append(opts, fx.Invoke(server.Start))
	return fx.Options(opts...)
}
