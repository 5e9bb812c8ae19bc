// Package server builds the gin engine and mounts every controller on it.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Hireboard/config"
	"github.com/lshigami/Hireboard/internal/controller/candidate"
	"github.com/lshigami/Hireboard/internal/controller/recruiter"
	"github.com/lshigami/Hireboard/internal/middleware"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// Controllers groups every HTTP controller so fx can inject them in one go.
type Controllers struct {
	fx.In

	CandidateAttempt     *candidate.CandidateAttemptController
	RecruiterTest        *recruiter.RecruiterTestController
	RecruiterQuestion    *recruiter.RecruiterQuestionController
	RecruiterAttempt     *recruiter.RecruiterAttemptController
	RecruiterAnalytics   *recruiter.RecruiterAnalyticsController
	RecruiterApplication *recruiter.RecruiterApplicationController
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	return r
}

// RegisterRoutes mounts candidate routes under /api/v1 and recruiter routes under
// /api/v1/recruiter, both behind the JWT middleware.
func RegisterRoutes(router *gin.Engine, cfg *config.Config, ctrls Controllers) {
	api := router.Group("/api/v1", middleware.AuthMiddleware([]byte(cfg.Auth.JWTSecret)))

	candidateAPI := api.Group("", middleware.RequireCandidate)
	ctrls.CandidateAttempt.RegisterRoutes(candidateAPI)

	recruiterAPI := api.Group("/recruiter", middleware.RequireRecruiter)
	ctrls.RecruiterTest.RegisterRoutes(recruiterAPI)
	ctrls.RecruiterQuestion.RegisterRoutes(recruiterAPI)
	ctrls.RecruiterAttempt.RegisterRoutes(recruiterAPI)
	ctrls.RecruiterAnalytics.RegisterRoutes(recruiterAPI)
	ctrls.RecruiterApplication.RegisterRoutes(recruiterAPI)
}

// Start registers the routes and ties the HTTP server to the fx lifecycle.
func Start(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config, ctrls Controllers) {
	RegisterRoutes(router, cfg, ctrls)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Hireboard API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
