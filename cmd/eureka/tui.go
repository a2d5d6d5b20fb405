package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/app"
	"github.com/eureka-app/eureka-tui/internal/prefs"
	"github.com/eureka-app/eureka-tui/internal/services/network"
)

func runTUI(g *globals) error {
	theme, err := parseTheme(g.theme)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger, closeLog, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openPrefs(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if theme != "" {
		if err := store.Set(prefs.KeyTheme, string(theme)); err != nil {
			logger.Warn("failed to save theme flag", "error", err)
		}
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	if err := client.Restore(); err != nil {
		logger.Warn("failed to restore session", "error", err)
	}
	if !client.HasSession() {
		logger.Info("no saved session, pages may redirect to login")
	}

	user, _, _ := store.Get(prefs.KeyUser)

	var checker *network.StatusChecker
	if cfg.Server.CheckIntervalS > 0 {
		checker = network.NewStatusChecker(client.URL("/"), cfg.Server.Timeout(), logger)
	}

	model, err := app.New(app.Options{
		Config:  cfg,
		Server:  client,
		Prefs:   store,
		Checker: checker,
		User:    user,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting", "server", cfg.Server.BaseURL)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	// Let mirrored desktop notifications finish before exiting.
	if m, ok := final.(app.Model); ok && m.Mirror() != nil {
		m.Mirror().Wait()
	}
	return nil
}
