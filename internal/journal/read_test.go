package journal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSealed(t *testing.T, env *testEnv, date time.Time, content string) string {
	t.Helper()
	file, dir := env.manager.ResolvePath(date)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := env.cipher.EncryptFile(file); err != nil {
		t.Fatal(err)
	}
	return file
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestReadDoesNotTouchDisk(t *testing.T) {
	env := setupJournal(t, nil)
	file := writeSealed(t, env, fixedNow, "# 2024-03-01\n\n## Title: Quiet")
	before, _ := os.ReadFile(file)

	e, err := env.manager.Read(fixedNow)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if e.Title != "Quiet" || e.Content != "# 2024-03-01\n\n## Title: Quiet" {
		t.Errorf("entry = %+v", e)
	}
	after, _ := os.ReadFile(file)
	if string(before) != string(after) {
		t.Error("Read modified the file")
	}
}

func TestReadMissing(t *testing.T) {
	env := setupJournal(t, nil)
	if _, err := env.manager.Read(day(1999, 1, 1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReindexRebuildsFromTree(t *testing.T) {
	env := setupJournal(t, nil)
	writeSealed(t, env, day(2024, 3, 2), "## Title: Two")
	writeSealed(t, env, day(2023, 1, 15), "no title here")
	writeSealed(t, env, day(2024, 3, 1), "## Title: One")

	// Stray files that are not entries.
	os.WriteFile(filepath.Join(env.root, "notes.md"), []byte("x"), 0o600)
	os.WriteFile(filepath.Join(env.root, "2024", "03", "scratch.md"), []byte("x"), 0o600)
	os.WriteFile(env.paths.Index, []byte("- [2010-01-01](gone.md) - Stale\n"), 0o644)

	n, err := env.manager.Reindex()
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if n != 3 {
		t.Errorf("indexed %d entries, want 3", n)
	}

	want := []string{
		"- [2023-01-15](2023/01/2023-01-15.md)",
		"- [2024-03-01](2024/03/2024-03-01.md) - One",
		"- [2024-03-02](2024/03/2024-03-02.md) - Two",
	}
	got := env.indexLines(t)
	if len(got) != len(want) {
		t.Fatalf("index = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecoverSealsPlaintextEntries(t *testing.T) {
	env := setupJournal(t, nil)
	writeSealed(t, env, day(2024, 3, 2), "sealed")

	file, dir := env.manager.ResolvePath(day(2024, 2, 29))
	os.MkdirAll(dir, 0o700)
	os.WriteFile(file, []byte("left open"), 0o600)

	plain, err := env.manager.Plaintext()
	if err != nil {
		t.Fatalf("Plaintext: %v", err)
	}
	if len(plain) != 1 || plain[0] != file {
		t.Fatalf("plaintext = %v", plain)
	}

	sealed, err := env.manager.Recover()
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if len(sealed) != 1 || sealed[0] != file {
		t.Errorf("sealed = %v", sealed)
	}
	if got := env.decrypted(t, file); got != "left open" {
		t.Errorf("content = %q", got)
	}

	plain, _ = env.manager.Plaintext()
	if len(plain) != 0 {
		t.Errorf("still plaintext: %v", plain)
	}
}

func TestExists(t *testing.T) {
	env := setupJournal(t, nil)
	if env.manager.Exists(fixedNow) {
		t.Error("expected no entry")
	}
	writeSealed(t, env, fixedNow, "x")
	if !env.manager.Exists(fixedNow) {
		t.Error("expected entry")
	}
}

func TestRecoverIndexesTitle(t *testing.T) {
	env := setupJournal(t, nil)
	file, dir := env.manager.ResolvePath(fixedNow)
	os.MkdirAll(dir, 0o700)
	os.WriteFile(file, []byte("DAYBOOK draft\n\n## Title: Before the crash"), 0o600)

	sealed, err := env.manager.Recover()
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if len(sealed) != 1 || sealed[0] != file {
		t.Fatalf("sealed = %v", sealed)
	}
	if got := env.decrypted(t, file); got != "DAYBOOK draft\n\n## Title: Before the crash" {
		t.Errorf("content = %q", got)
	}
	if lines := env.indexLines(t); len(lines) != 1 || lines[0] != "- [2024-03-01](2024/03/2024-03-01.md) - Before the crash" {
		t.Errorf("index = %q", lines)
	}
}
