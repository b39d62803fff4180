package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Log levels accepted by log_level.
var logLevels = []interface{}{"debug", "info", "warn", "error"}

// ShellConfig holds shell integration configuration.
type ShellConfig struct {
	CacheTTL    string `mapstructure:"cache_ttl"`
	TodayIcon   string `mapstructure:"today_icon"`
	NoTodayIcon string `mapstructure:"no_today_icon"`
	StreakIcon  string `mapstructure:"streak_icon"`
}

// ThemeConfig selects a color preset and optional overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// Config holds the application configuration.
type Config struct {
	DataDir      string      `mapstructure:"data_dir"`
	KeyFile      string      `mapstructure:"key_file"`
	TemplateFile string      `mapstructure:"template_file"`
	Editor       string      `mapstructure:"editor"`
	LogLevel     string      `mapstructure:"log_level"`
	MaxWidth     int         `mapstructure:"max_width"`
	Theme        ThemeConfig `mapstructure:"theme"`
	Shell        ShellConfig `mapstructure:"shell"`
}

// Paths are the well-known files under the journal root.
type Paths struct {
	Root     string
	Template string
	Index    string
	Key      string
}

// DefaultDataDir returns the default journal root (~/daybook).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "daybook")
	}
	return filepath.Join(home, "daybook")
}

// Paths derives the template, index and key locations from the config.
func (c *Config) Paths() Paths {
	root := expandHome(c.DataDir)
	p := Paths{
		Root:     root,
		Template: filepath.Join(root, "templates", "template.md"),
		Index:    filepath.Join(root, "table_of_contents.md"),
		Key:      filepath.Join(root, "secret.key"),
	}
	if c.KeyFile != "" {
		p.Key = expandHome(c.KeyFile)
	}
	if c.TemplateFile != "" {
		p.Template = expandHome(c.TemplateFile)
	}
	return p
}

// SlogLevel maps LogLevel onto slog. Unknown values mean warn.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.LogLevel, validation.In(logLevels...)),
		validation.Field(&c.MaxWidth, validation.Min(0)),
	)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("key_file", "")
	v.SetDefault("template_file", "")
	v.SetDefault("editor", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("max_width", 100)
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.markdown_style", "")
	v.SetDefault("shell.cache_ttl", "5m")
	v.SetDefault("shell.today_icon", "✓")
	v.SetDefault("shell.no_today_icon", "✗")
	v.SetDefault("shell.streak_icon", "🔥")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "daybook"))
		}
		if dir := os.Getenv("DAYBOOK_DIR"); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: DAYBOOK_EDITOR, DAYBOOK_LOG_LEVEL, etc.
	// The journal root is DAYBOOK_DIR.
	v.SetEnvPrefix("DAYBOOK")
	v.AutomaticEnv()
	if err := v.BindEnv("data_dir", "DAYBOOK_DIR", "DAYBOOK_DATA_DIR"); err != nil {
		return nil, err
	}

	// Read config file. Only a searched-for file may be missing.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
