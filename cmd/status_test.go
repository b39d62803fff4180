package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/daybook/internal/shell"
)

func writeIndex(t *testing.T, path string, dates ...string) {
	t.Helper()
	var b strings.Builder
	for _, d := range dates {
		b.WriteString("- [" + d + "](" + d[:4] + "/" + d[5:7] + "/" + d + ".md)\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStatusDefault(t *testing.T) {
	paths := setupTestEnv(t, nil)
	now := time.Date(2024, 3, 3, 10, 0, 0, 0, time.Local)
	writeIndex(t, paths.Index, "2024-03-01", "2024-03-02", "2024-03-03")

	var buf bytes.Buffer
	if err := statusRun(&buf, now, false, false, ""); err != nil {
		t.Fatalf("statusRun: %v", err)
	}
	if buf.String() != "✓ 3🔥\n" {
		t.Errorf("got %q", buf.String())
	}
	if c := shell.ReadCache(paths.Root); c == nil || c.Streak != 3 {
		t.Errorf("cache = %+v", c)
	}
}

func TestStatusUsesFreshCache(t *testing.T) {
	paths := setupTestEnv(t, nil)
	now := time.Date(2024, 3, 3, 10, 0, 0, 0, time.Local)
	shell.WriteCache(paths.Root, shell.NewCache(shell.Status{Today: true, Streak: 9}, now))
	writeIndex(t, paths.Index, "2024-03-03")

	var buf bytes.Buffer
	statusRun(&buf, now.Add(time.Minute), false, false, "")
	if buf.String() != "✓ 9🔥\n" {
		t.Errorf("expected cached streak, got %q", buf.String())
	}

	buf.Reset()
	statusRun(&buf, now.Add(time.Minute), false, true, "")
	if buf.String() != "✓ 1🔥\n" {
		t.Errorf("expected refreshed streak, got %q", buf.String())
	}
}

func TestStatusEnv(t *testing.T) {
	setupTestEnv(t, nil)
	now := time.Date(2024, 3, 3, 10, 0, 0, 0, time.Local)

	var buf bytes.Buffer
	if err := statusRun(&buf, now, true, false, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`export DAYBOOK_TODAY="✗"`,
		`export DAYBOOK_STREAK="0"`,
		`export DAYBOOK_ENTRIES="0"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in:\n%s", want, out)
		}
	}
}

func TestStatusFormat(t *testing.T) {
	paths := setupTestEnv(t, nil)
	now := time.Date(2024, 3, 3, 10, 0, 0, 0, time.Local)
	writeIndex(t, paths.Index, "2024-03-03")

	var buf bytes.Buffer
	if err := statusRun(&buf, now, false, false, "{{if .HasToday}}done{{end}} {{.Total}}"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "done 1\n" {
		t.Errorf("got %q", buf.String())
	}

	if err := statusRun(&buf, now, false, false, "{{.Nope"); err == nil {
		t.Error("expected error for invalid template")
	}
}

func TestInitShellCommand(t *testing.T) {
	var buf bytes.Buffer
	initShellCmd.SetOut(&buf)
	if err := initShellCmd.RunE(initShellCmd, []string{"zsh"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "add-zsh-hook precmd __daybook_prompt_hook") {
		t.Errorf("unexpected script:\n%s", buf.String())
	}
	if err := initShellCmd.RunE(initShellCmd, []string{"csh"}); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
