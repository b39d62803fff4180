package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/daybook/internal/cipher"
	"github.com/chris-regnier/daybook/internal/entry"
	"github.com/chris-regnier/daybook/internal/index"
)

// Read decrypts the entry for date in memory. The file on disk is not
// modified.
func (m *Manager) Read(date time.Time) (entry.Entry, error) {
	file, _ := m.ResolvePath(date)
	data, state, err := m.cipher.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entry.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, date.Format(entry.DateLayout))
		}
		return entry.Entry{}, err
	}
	if state == cipher.StatePlaintext {
		m.log.Warn("entry is stored in plaintext", slog.String("path", file))
	}
	content := string(data)
	return entry.Entry{
		Date:    entry.NormalizeDate(date),
		Path:    file,
		Title:   entry.TitleOf(content),
		Content: content,
	}, nil
}

// Entries returns the table of contents in ascending date order.
func (m *Manager) Entries() ([]index.Entry, error) {
	ix, err := index.Load(m.paths.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return ix.Entries(), nil
}

// walkEntries calls fn for every file under the root laid out as
// {YYYY}/{MM}/{YYYY-MM-DD}.md.
func (m *Manager) walkEntries(fn func(path string, date time.Time) error) error {
	err := filepath.WalkDir(m.paths.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable directories
		}
		if d.IsDir() || filepath.Ext(path) != entry.Ext {
			return nil
		}
		date, err := entry.DateFromPath(path)
		if err != nil {
			return nil
		}
		if want, _ := m.ResolvePath(date); want != path {
			return nil
		}
		return fn(path, date)
	})
	if err != nil {
		return fmt.Errorf("%w: scanning entries: %v", ErrStorage, err)
	}
	return nil
}

// Reindex rebuilds the table of contents from the entry files on disk,
// replacing whatever the index held. Entries that cannot be decrypted are
// listed without a title. It returns the number of entries indexed.
func (m *Manager) Reindex() (int, error) {
	ix := index.New()
	err := m.walkEntries(func(path string, date time.Time) error {
		rel, err := filepath.Rel(m.paths.Root, path)
		if err != nil {
			return err
		}
		e := index.Entry{
			Date: date.Format(entry.DateLayout),
			Path: filepath.ToSlash(rel),
		}
		data, _, err := m.cipher.ReadFile(path)
		if err != nil {
			m.log.Warn("reindex: cannot read entry", slog.String("path", path), slog.Any("error", err))
		} else {
			e.Title = entry.TitleOf(string(data))
		}
		ix.Upsert(e)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if err := ix.Save(m.paths.Index); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return ix.Len(), nil
}

// Plaintext lists entry files currently stored unencrypted. Text that
// starts with the ciphertext magic but does not open under the key counts
// as plaintext unless it is a well-formed envelope.
func (m *Manager) Plaintext() ([]string, error) {
	var found []string
	err := m.walkEntries(func(path string, _ time.Time) error {
		state, err := m.cipher.Inspect(path)
		if err != nil {
			m.log.Warn("inspecting entry", slog.String("path", path), slog.Any("error", err))
			return nil
		}
		if state == cipher.StatePlaintext {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

// Recover encrypts every entry left in plaintext, typically by an editor
// session that was killed, records its current title in the table of
// contents and returns the files it sealed.
func (m *Manager) Recover() ([]string, error) {
	paths, err := m.Plaintext()
	if err != nil {
		return nil, err
	}
	var sealed []string
	var errs []error
	for _, p := range paths {
		date, err := entry.DateFromPath(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		title := m.ExtractTitle(p)
		if err := m.cipher.EncryptFile(p); err != nil {
			m.log.Error("sealing entry", slog.String("path", p), slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		m.log.Info("sealed plaintext entry", slog.String("path", p))
		sealed = append(sealed, p)
		if err := m.UpdateIndex(p, date.Format(entry.DateLayout), title); err != nil {
			errs = append(errs, err)
		}
	}
	return sealed, errors.Join(errs...)
}

// Exists reports whether an entry file exists for date.
func (m *Manager) Exists(date time.Time) bool {
	file, _ := m.ResolvePath(date)
	_, err := os.Stat(file)
	return err == nil
}
