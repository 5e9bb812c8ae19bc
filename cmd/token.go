package main

import (
	"fmt"
	"time"

	"github.com/lshigami/Hireboard/internal/middleware"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var (
		userID uint
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			r := model.Role(role)
			if r != model.RoleCandidate && r != model.RoleRecruiter {
				return fmt.Errorf("role must be %q or %q", model.RoleCandidate, model.RoleRecruiter)
			}
			tok, err := middleware.SignToken([]byte(cfg.Auth.JWTSecret), userID, r, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "user-id", 0, "user id carried by the token")
	cmd.Flags().StringVar(&role, "role", string(model.RoleCandidate), "candidate or recruiter")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
