package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory so the developer's own config
// cannot leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "http://localhost:5000", cfg.Server.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout())
	assert.Equal(t, time.Minute, cfg.Server.CheckInterval())

	assert.Equal(t, 100*time.Millisecond, cfg.Toast.RevealDelay())
	assert.Equal(t, 3*time.Second, cfg.Toast.DismissDelay())
	assert.Equal(t, "info", cfg.Toast.DefaultKind)
	assert.False(t, cfg.Toast.AllowMarkup)
	assert.Equal(t, "unicode", cfg.Toast.Icons)
	assert.True(t, cfg.Toast.Animate)

	assert.Equal(t, 5*time.Second, cfg.Flash.Dismiss())
	assert.Equal(t, 500*time.Millisecond, cfg.Flash.Fade())

	assert.Equal(t, 100, cfg.Layout.Breakpoint)
	assert.Equal(t, 28, cfg.Layout.SidebarWidth)
	assert.Equal(t, 6, cfg.Layout.SidebarCollapsedWidth)

	assert.Equal(t, filepath.Join(home, ".eureka", "prefs.db"), cfg.Prefs.Path)
	assert.Equal(t, filepath.Join(home, ".eureka", "eureka.log"), cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Messages.RequestError)
}

func TestLoad_Layering(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".eureka", "config.json"), `{
		"version": 1,
		"server": {"base_url": "https://global.example.com/"},
		"toast": {"dismiss_delay_ms": 4000, "icons": "nerd"}
	}`)
	local := filepath.Join(t.TempDir(), "eureka.json")
	writeFile(t, local, `{"version": 1, "toast": {"dismiss_delay_ms": 5000}}`)
	t.Setenv("EUREKA_TOAST_DEFAULT_KIND", "warning")
	t.Setenv("EUREKA_LAYOUT_BREAKPOINT", "120")

	cfg, err := Load(local, map[string]any{"server.base_url": "https://flag.example.com"})
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example.com", cfg.Server.BaseURL, "flags win")
	assert.Equal(t, 5*time.Second, cfg.Toast.DismissDelay(), "explicit file beats global")
	assert.Equal(t, "nerd", cfg.Toast.Icons, "global still applies")
	assert.Equal(t, "warning", cfg.Toast.DefaultKind, "env applies")
	assert.Equal(t, 120, cfg.Layout.Breakpoint)
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	isolate(t)
	t.Setenv("EUREKA_SERVER_BASE_URL", "https://notes.example.com/")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://notes.example.com", cfg.Server.BaseURL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	writeFile(t, path, `{"server": `)

	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"bad url", "server.base_url", "not a url"},
		{"unknown kind", "toast.default_kind", "loud"},
		{"unknown icon set", "toast.icons", "emoji"},
		{"tiny breakpoint", "layout.breakpoint", 5},
		{"rail wider than sidebar", "layout.sidebar_collapsed_width", 20},
		{"bad log level", "log.level", "trace"},
		{"negative delay", "toast.reveal_delay_ms", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			overrides := map[string]any{tt.key: tt.val}
			if tt.key == "layout.sidebar_collapsed_width" {
				overrides["layout.sidebar_width"] = 12
			}

			_, err := Load("", overrides)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MigratesLegacyFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "legacy.json")
	writeFile(t, path, `{"server": {"url": "https://old.example.com"}, "toast": {"duration_ms": 2500}}`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://old.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, cfg.Toast.DismissDelay())
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "server.base_url", envTransform("EUREKA_SERVER_BASE_URL"))
	assert.Equal(t, "toast.dismiss_delay_ms", envTransform("EUREKA_TOAST_DISMISS_DELAY_MS"))
	assert.Equal(t, "log.level", envTransform("EUREKA_LOG_LEVEL"))
	assert.Equal(t, "version", envTransform("EUREKA_VERSION"))
}
