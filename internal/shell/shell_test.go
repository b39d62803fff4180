package shell

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/daybook/internal/index"
)

func TestComputeStatus(t *testing.T) {
	now := time.Date(2024, 3, 3, 21, 0, 0, 0, time.Local)
	tests := []struct {
		name  string
		dates []string
		want  Status
	}{
		{"empty", nil, Status{}},
		{"today only", []string{"2024-03-03"}, Status{Today: true, Streak: 1, Total: 1}},
		{
			"three day run",
			[]string{"2024-02-20", "2024-03-01", "2024-03-02", "2024-03-03"},
			Status{Today: true, Streak: 3, Total: 4},
		},
		{
			"run across month end",
			[]string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02", "2024-03-03"},
			Status{Today: true, Streak: 5, Total: 5},
		},
		{"no entry today", []string{"2024-03-01", "2024-03-02"}, Status{Today: false, Streak: 0, Total: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []index.Entry
			for _, d := range tt.dates {
				entries = append(entries, index.Entry{Date: d})
			}
			if got := ComputeStatus(entries, now); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCacheRoundTrip(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2024, 3, 3, 9, 0, 0, 0, time.Local)

	if ReadCache(root) != nil {
		t.Fatal("expected nil cache before write")
	}
	c := NewCache(Status{Today: true, Streak: 4, Total: 10}, now)
	if err := WriteCache(root, c); err != nil {
		t.Fatalf("WriteCache: %v", err)
	}

	got := ReadCache(root)
	if got == nil || got.Status != c.Status || got.TodayDate != "2024-03-03" {
		t.Fatalf("got %+v", got)
	}
	info, err := os.Stat(CachePath(root))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v", info.Mode().Perm())
	}

	if err := InvalidateCache(root); err != nil {
		t.Fatal(err)
	}
	if ReadCache(root) != nil {
		t.Error("cache should be gone")
	}
	if err := InvalidateCache(root); err != nil {
		t.Errorf("invalidating a missing cache: %v", err)
	}
}

func TestReadCacheCorrupt(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(CachePath(root), []byte("{not json"), 0o600)
	if ReadCache(root) != nil {
		t.Error("corrupt cache should read as nil")
	}
}

func TestCacheIsFresh(t *testing.T) {
	now := time.Date(2024, 3, 3, 12, 0, 0, 0, time.Local)
	c := NewCache(Status{}, now)

	if !c.IsFresh(5*time.Minute, now.Add(time.Minute)) {
		t.Error("expected fresh within TTL")
	}
	if c.IsFresh(5*time.Minute, now.Add(6*time.Minute)) {
		t.Error("expected stale after TTL")
	}
	if c.IsFresh(48*time.Hour, now.Add(13*time.Hour)) {
		t.Error("expected stale after midnight")
	}
	var nilCache *PromptCache
	if nilCache.IsFresh(time.Hour, now) {
		t.Error("nil cache is never fresh")
	}
}

func TestWriteInit(t *testing.T) {
	for _, sh := range Shells() {
		t.Run(sh, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteInit(&buf, sh); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			if !strings.Contains(out, "daybook status --env") {
				t.Errorf("missing prompt hook:\n%s", out)
			}
			if !strings.Contains(out, "daybook completion "+sh) {
				t.Errorf("missing completion:\n%s", out)
			}
		})
	}

	if err := WriteInit(&bytes.Buffer{}, "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
