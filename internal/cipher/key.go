package cipher

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/chris-regnier/daybook/internal/fsutil"
)

// GenerateKey returns KeySize bytes from the system CSPRNG.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: generating key: %v", ErrKey, err)
	}
	return key, nil
}

// EnsureKey writes a fresh key to path unless a file is already there.
// It never overwrites an existing key; losing it loses every entry.
func EnsureKey(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("%w: checking key file: %v", ErrKey, err)
	}

	key, err := GenerateKey()
	if err != nil {
		return false, err
	}
	if err := fsutil.WriteFile(path, key, 0o600); err != nil {
		return false, fmt.Errorf("%w: saving key: %v", ErrKey, err)
	}
	return true, nil
}

// Load reads the key at path and returns a Manager for it.
func Load(path string) (*Manager, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading key file: %v", ErrKey, err)
	}
	return NewWithKey(key)
}
