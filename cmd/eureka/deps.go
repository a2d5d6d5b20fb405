package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/eureka-app/eureka-tui/internal/api"
	"github.com/eureka-app/eureka-tui/internal/config"
	"github.com/eureka-app/eureka-tui/internal/prefs"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
)

// loadConfig layers the command line over the config files.
func loadConfig(g *globals) (*config.Config, error) {
	overrides := map[string]any{}
	if g.server != "" {
		overrides["server.base_url"] = g.server
	}
	return config.Load(g.configPath, overrides)
}

// setupLogger sends slog output to the configured log file. The terminal
// belongs to the TUI, so without a file logs are dropped.
func setupLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	var w io.Writer = io.Discard
	closer := func() {}
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closer, nil
}

func openPrefs(cfg *config.Config) (prefs.Store, error) {
	if cfg.Prefs.Path == ":memory:" {
		return prefs.OpenMemory()
	}
	return prefs.Open(cfg.Prefs.Path)
}

// newClient builds an API client whose session lives in the OS keyring.
func newClient(cfg *config.Config, logger *slog.Logger) (*api.Client, error) {
	sessions := api.NewKeyringStore(cfg.Server.BaseURL)
	return api.NewClient(api.Options{
		BaseURL: cfg.Server.BaseURL,
		Timeout: cfg.Server.Timeout(),
	}, sessions, logger)
}

// parseTheme accepts the --theme flag value. Empty means no override.
func parseTheme(s string) (styles.Theme, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	t, ok := styles.ParseTheme(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return "", fmt.Errorf("unknown theme %q (want dark or light)", s)
	}
	return t, nil
}
