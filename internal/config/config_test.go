package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("DAYBOOK_DIR", "")
	t.Setenv("DAYBOOK_DATA_DIR", "")
	t.Setenv("DAYBOOK_EDITOR", "")
	t.Setenv("DAYBOOK_LOG_LEVEL", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != DefaultDataDir() {
		t.Errorf("data_dir = %q, want %q", cfg.DataDir, DefaultDataDir())
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log_level = %q, want warn", cfg.LogLevel)
	}
	if cfg.Theme.Preset != "default-dark" {
		t.Errorf("expected preset 'default-dark', got %q", cfg.Theme.Preset)
	}
}

func TestLoadDataDirFromEnv(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	t.Setenv("DAYBOOK_DIR", root)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != root {
		t.Errorf("data_dir = %q, want %q", cfg.DataDir, root)
	}
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
data_dir = "/srv/journal"
editor = "nano"
log_level = "debug"

[theme]
preset = "default-light"
primary = "#FF0000"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != "/srv/journal" {
		t.Errorf("data_dir = %q", cfg.DataDir)
	}
	if cfg.Editor != "nano" {
		t.Errorf("editor = %q", cfg.Editor)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", cfg.SlogLevel())
	}
	if cfg.Theme.Preset != "default-light" || cfg.Theme.Primary != "#FF0000" {
		t.Errorf("theme = %+v", cfg.Theme)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(configPath, []byte(`log_level = "loud"`), 0644)

	if _, err := Load(configPath); err == nil {
		t.Error("expected validation error for unknown log level")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{DataDir: "/journal"}
	p := cfg.Paths()
	if p.Root != "/journal" {
		t.Errorf("root = %q", p.Root)
	}
	if p.Template != filepath.Join("/journal", "templates", "template.md") {
		t.Errorf("template = %q", p.Template)
	}
	if p.Index != filepath.Join("/journal", "table_of_contents.md") {
		t.Errorf("index = %q", p.Index)
	}
	if p.Key != filepath.Join("/journal", "secret.key") {
		t.Errorf("key = %q", p.Key)
	}

	cfg.KeyFile = "/secure/daybook.key"
	if got := cfg.Paths().Key; got != "/secure/daybook.key" {
		t.Errorf("key override = %q", got)
	}
}

func TestPathsExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := &Config{DataDir: "~/journal"}
	if got := cfg.Paths().Root; got != filepath.Join(home, "journal") {
		t.Errorf("root = %q", got)
	}
}

func TestValidate(t *testing.T) {
	if err := (&Config{}).Validate(); err == nil {
		t.Error("expected error for empty data_dir")
	}
	if err := (&Config{DataDir: "/x", LogLevel: "info"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadMalformedSearchedFile(t *testing.T) {
	isolate(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	os.MkdirAll(filepath.Join(xdg, "daybook"), 0o755)
	os.WriteFile(filepath.Join(xdg, "daybook", "config.toml"), []byte("data_dir = [unterminated"), 0o644)

	if _, err := Load(""); err == nil {
		t.Error("expected error for malformed config file")
	}
}
