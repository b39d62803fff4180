package shell

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/daybook/internal/entry"
	"github.com/chris-regnier/daybook/internal/fsutil"
)

const cacheFileName = ".prompt-cache"

// PromptCache holds cached prompt status data. It records only whether
// entries exist, never their content.
type PromptCache struct {
	Status
	TodayDate string    `json:"today_date"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CachePath returns the full path to the prompt cache file.
func CachePath(root string) string {
	return filepath.Join(root, cacheFileName)
}

// ReadCache reads the prompt cache from disk. Returns nil if the cache
// does not exist or cannot be parsed.
func ReadCache(root string) *PromptCache {
	data, err := os.ReadFile(CachePath(root))
	if err != nil {
		return nil
	}
	var c PromptCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	return &c
}

// WriteCache writes the prompt cache to disk.
func WriteCache(root string, c *PromptCache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFile(CachePath(root), data, 0o600)
}

// NewCache stamps status with the time it was computed.
func NewCache(s Status, now time.Time) *PromptCache {
	return &PromptCache{
		Status:    s,
		TodayDate: now.Format(entry.DateLayout),
		UpdatedAt: now,
	}
}

// IsFresh reports whether the cache is still valid at now. A cache is
// stale once the TTL has elapsed or the date has changed.
func (c *PromptCache) IsFresh(ttl time.Duration, now time.Time) bool {
	if c == nil {
		return false
	}
	if c.TodayDate != now.Format(entry.DateLayout) {
		return false
	}
	return now.Sub(c.UpdatedAt) <= ttl
}

// InvalidateCache removes the prompt cache file.
func InvalidateCache(root string) error {
	if err := os.Remove(CachePath(root)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
