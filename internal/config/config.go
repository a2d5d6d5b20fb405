// Package config loads the client configuration.
//
// Sources are layered, later ones winning: built-in defaults, the global
// file ~/.eureka/config.json, an explicit file, EUREKA_* environment
// variables, and finally overrides from command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "EUREKA_"

// Config is the full client configuration.
type Config struct {
	Version  int            `koanf:"version"`
	Server   ServerConfig   `koanf:"server"`
	Toast    ToastConfig    `koanf:"toast"`
	Flash    FlashConfig    `koanf:"flash"`
	Layout   LayoutConfig   `koanf:"layout"`
	Prefs    PrefsConfig    `koanf:"prefs"`
	Log      LogConfig      `koanf:"log"`
	Messages MessagesConfig `koanf:"messages"`
}

// ServerConfig locates the Eureka server.
type ServerConfig struct {
	BaseURL        string `koanf:"base_url" validate:"required,url"`
	TimeoutMs      int    `koanf:"timeout_ms" validate:"min=100,max=120000"`
	CheckIntervalS int    `koanf:"check_interval_s" validate:"min=0,max=3600"`
}

// ToastConfig tunes the toast notifier.
type ToastConfig struct {
	RevealDelayMs  int    `koanf:"reveal_delay_ms" validate:"min=0,max=10000"`
	DismissDelayMs int    `koanf:"dismiss_delay_ms" validate:"min=0,max=60000"`
	DefaultKind    string `koanf:"default_kind" validate:"oneof=success error warning info"`
	AllowMarkup    bool   `koanf:"allow_markup"`
	Icons          string `koanf:"icons" validate:"oneof=unicode nerd"`
	Desktop        bool   `koanf:"desktop"`
	Animate        bool   `koanf:"animate"`
}

// FlashConfig times server flash messages.
type FlashConfig struct {
	DismissMs int `koanf:"dismiss_ms" validate:"min=0,max=60000"`
	FadeMs    int `koanf:"fade_ms" validate:"min=0,max=10000"`
}

// LayoutConfig sizes the shell, in columns.
type LayoutConfig struct {
	Breakpoint            int `koanf:"breakpoint" validate:"min=20,max=1000"`
	SidebarWidth          int `koanf:"sidebar_width" validate:"min=10,max=80"`
	SidebarCollapsedWidth int `koanf:"sidebar_collapsed_width" validate:"min=3,max=20,ltfield=SidebarWidth"`
}

// PrefsConfig locates the preferences database.
type PrefsConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// LogConfig controls the log file. The TUI owns the terminal, so logs never
// go to stderr.
type LogConfig struct {
	File  string `koanf:"file"`
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// MessagesConfig holds user-facing texts.
type MessagesConfig struct {
	RequestError string `koanf:"request_error" validate:"required"`
}

// Dir returns the per-user configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".eureka"
	}
	return filepath.Join(home, ".eureka")
}

// GlobalPath returns the path of the per-user config file.
func GlobalPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Defaults returns the built-in settings as flat koanf keys.
func Defaults() map[string]any {
	return map[string]any{
		"version":                        CurrentVersion,
		"server.base_url":                "http://localhost:5000",
		"server.timeout_ms":              10000,
		"server.check_interval_s":        60,
		"toast.reveal_delay_ms":          100,
		"toast.dismiss_delay_ms":         3000,
		"toast.default_kind":             "info",
		"toast.allow_markup":             false,
		"toast.icons":                    "unicode",
		"toast.desktop":                  false,
		"toast.animate":                  true,
		"flash.dismiss_ms":               5000,
		"flash.fade_ms":                  500,
		"layout.breakpoint":              100,
		"layout.sidebar_width":           28,
		"layout.sidebar_collapsed_width": 6,
		"prefs.path":                     "~/.eureka/prefs.db",
		"log.file":                       "~/.eureka/eureka.log",
		"log.level":                      "info",
		"messages.request_error":         "Something went wrong. Please try again.",
	}
}

// Load builds the configuration. path names an extra config file and may be
// empty; a named file that does not exist is an error, a missing global file
// is not. overrides are flat keys such as "server.base_url".
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if global := GlobalPath(); fileExists(global) {
		if err := loadFile(k, global); err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
	}

	if path != "" {
		if !fileExists(path) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		if err := loadFile(k, path); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	for key, value := range overrides {
		k.Set(key, value)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")
	cfg.Toast.DefaultKind = strings.ToLower(strings.TrimSpace(cfg.Toast.DefaultKind))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Prefs.Path = expandHomePath(cfg.Prefs.Path)
	cfg.Log.File = expandHomePath(cfg.Log.File)

	return &cfg, nil
}

// loadFile reads one JSON config file, migrates it to the current version
// and merges it over k.
func loadFile(k *koanf.Koanf, path string) error {
	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), json.Parser()); err != nil {
		return err
	}
	data, err := Migrate(fk.All())
	if err != nil {
		return err
	}
	for key, value := range data {
		k.Set(key, value)
	}
	return nil
}

// envTransform maps EUREKA_SECTION_SOME_KEY to section.some_key.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// Timeout is the request timeout.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// CheckInterval is the reachability poll interval; zero disables polling.
func (s ServerConfig) CheckInterval() time.Duration {
	return time.Duration(s.CheckIntervalS) * time.Second
}

func (t ToastConfig) RevealDelay() time.Duration {
	return time.Duration(t.RevealDelayMs) * time.Millisecond
}

func (t ToastConfig) DismissDelay() time.Duration {
	return time.Duration(t.DismissDelayMs) * time.Millisecond
}

func (f FlashConfig) Dismiss() time.Duration {
	return time.Duration(f.DismissMs) * time.Millisecond
}

func (f FlashConfig) Fade() time.Duration {
	return time.Duration(f.FadeMs) * time.Millisecond
}
