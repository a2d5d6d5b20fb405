package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eureka-app/eureka-tui/internal/api"
	"github.com/eureka-app/eureka-tui/internal/prefs"
	"github.com/go-playground/validator/v10"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func loginCmd(g *globals) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Long:  `Sign in to the Eureka server. The session cookie is stored in the system keyring.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			logger, closeLog, err := setupLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			if email == "" {
				prompt := promptui.Prompt{
					Label:    "Email",
					Validate: validateEmail,
				}
				if email, err = prompt.Run(); err != nil {
					return fmt.Errorf("prompt failed: %w", err)
				}
			}
			passwordPrompt := promptui.Prompt{
				Label: "Password",
				Mask:  '*',
				Validate: func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				},
			}
			password, err := passwordPrompt.Run()
			if err != nil {
				return fmt.Errorf("prompt failed: %w", err)
			}

			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.Timeout())
			defer cancel()
			if err := client.Login(ctx, strings.TrimSpace(email), password); err != nil {
				if errors.Is(err, api.ErrLoginFailed) {
					return errors.New("invalid email or password")
				}
				return err
			}

			if store, err := openPrefs(cfg); err == nil {
				_ = store.Set(prefs.KeyUser, strings.TrimSpace(email))
				store.Close()
			}

			fmt.Printf("✓ Signed in to %s as %s\n", cfg.Server.BaseURL, strings.TrimSpace(email))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")

	return cmd
}

var validate = validator.New()

func validateEmail(s string) error {
	if err := validate.Var(strings.TrimSpace(s), "required,email"); err != nil {
		return errors.New("enter an email address")
	}
	return nil
}

func logoutCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			logger, closeLog, err := setupLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}
			if err := client.Restore(); err != nil {
				logger.Warn("failed to restore session", "error", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.Timeout())
			defer cancel()
			if err := client.Logout(ctx); err != nil {
				return err
			}

			if store, err := openPrefs(cfg); err == nil {
				_ = store.Delete(prefs.KeyUser)
				store.Close()
			}

			fmt.Println("✓ Signed out")
			return nil
		},
	}
}
