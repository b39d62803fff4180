package cmd

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/chris-regnier/daybook/internal/cipher"
	"github.com/chris-regnier/daybook/internal/config"
	"github.com/chris-regnier/daybook/internal/editor"
)

const testTemplate = "# {{date}}\n\n## Title:{{title}}"

// stripANSI removes ANSI escape sequences from a string
func stripANSI(s string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(s, "")
}

// setupTestEnv points the command globals at a fresh journal root with a
// template in place. edit stands in for the user's editor; nil leaves the
// file as it is.
func setupTestEnv(t *testing.T, edit func(path string) error) config.Paths {
	t.Helper()
	appConfig = &config.Config{
		DataDir:  t.TempDir(),
		LogLevel: "error",
		Shell: config.ShellConfig{
			CacheTTL:    "5m",
			TodayIcon:   "✓",
			NoTodayIcon: "✗",
			StreakIcon:  "🔥",
		},
	}
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	jsonOutput = false

	if edit == nil {
		edit = func(string) error { return nil }
	}
	launcher = editor.Func(edit)
	t.Cleanup(func() { launcher = nil })

	paths := appConfig.Paths()
	if err := os.MkdirAll(filepath.Dir(paths.Template), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.Template, []byte(testTemplate), 0o644); err != nil {
		t.Fatal(err)
	}
	return paths
}

// decryptEntry reads an entry with the journal's key.
func decryptEntry(t *testing.T, paths config.Paths, file string) string {
	t.Helper()
	c, err := cipher.Load(paths.Key)
	if err != nil {
		t.Fatalf("loading key: %v", err)
	}
	data, state, err := c.ReadFile(file)
	if err != nil {
		t.Fatalf("reading %s: %v", file, err)
	}
	if state != cipher.StateCiphertext {
		t.Fatalf("%s is %v at rest", file, state)
	}
	return string(data)
}
