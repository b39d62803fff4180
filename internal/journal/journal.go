// Package journal drives the lifecycle of a day's entry: resolve its path,
// materialize it from the template, decrypt it for the editor, re-encrypt
// it and record it in the table of contents.
//
// At rest every entry is ciphertext. Plaintext exists only while an editor
// is working on the file, or after an interrupted edit; the next touch of
// that entry seals it again.
//
// The manager assumes one process per journal root. Nothing serializes two
// invocations editing the same date.
package journal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/daybook/internal/cipher"
	"github.com/chris-regnier/daybook/internal/config"
	"github.com/chris-regnier/daybook/internal/editor"
	"github.com/chris-regnier/daybook/internal/entry"
	"github.com/chris-regnier/daybook/internal/fsutil"
	"github.com/chris-regnier/daybook/internal/index"
	"github.com/chris-regnier/daybook/internal/template"
)

// Sentinel errors for lifecycle operations.
var (
	ErrNotFound = errors.New("entry not found")
	ErrStorage  = errors.New("storage error")
)

// Stage is a point in an entry's lifecycle within one invocation.
type Stage string

const (
	StageResolved     Stage = "resolved"
	StageMaterialized Stage = "materialized"
	StageEditable     Stage = "editable"
	StageIndexed      Stage = "indexed"
)

// Options configures a Manager.
type Options struct {
	Paths  config.Paths
	Cipher *cipher.Manager
	Editor editor.Launcher
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Manager runs entry lifecycle operations against one journal root.
type Manager struct {
	paths  config.Paths
	cipher *cipher.Manager
	editor editor.Launcher
	log    *slog.Logger
	now    func() time.Time
}

// New returns a Manager. Cipher is required; Editor is required only for
// the edit operations.
func New(opts Options) (*Manager, error) {
	if opts.Cipher == nil {
		return nil, fmt.Errorf("journal: cipher manager is required")
	}
	if opts.Paths.Root == "" {
		return nil, fmt.Errorf("journal: root directory is required")
	}
	m := &Manager{
		paths:  opts.Paths,
		cipher: opts.Cipher,
		editor: opts.Editor,
		log:    opts.Logger,
		now:    opts.Now,
	}
	if m.log == nil {
		m.log = slog.New(slog.DiscardHandler)
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m, nil
}

// Paths returns the journal's well-known locations.
func (m *Manager) Paths() config.Paths {
	return m.paths
}

// Today returns the current local date at midnight.
func (m *Manager) Today() time.Time {
	return entry.NormalizeDate(m.now())
}

// ResolvePath returns the entry file for date and its containing directory.
func (m *Manager) ResolvePath(date time.Time) (file string, dir string) {
	return entry.ResolvePath(m.paths.Root, date)
}

func (m *Manager) stage(path string, s Stage) {
	m.log.Debug("entry stage", slog.String("path", path), slog.String("stage", string(s)))
}

// Materialize makes sure the entry for date exists, creating it from the
// template when absent, and leaves it encrypted and indexed. An existing
// entry's content is not changed.
func (m *Manager) Materialize(date time.Time) (string, error) {
	file, dir := m.ResolvePath(date)
	dateStr := date.Format(entry.DateLayout)
	m.stage(file, StageResolved)

	state := m.unseal(file)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", m.fail("creating entry directory", file, err)
	}

	if state == cipher.StateAbsent {
		tmpl, err := template.Load(m.paths.Template)
		if err != nil {
			return "", m.fail("loading template", file, err)
		}
		content := tmpl.Render(dateStr, "")
		if err := fsutil.WriteFile(file, []byte(content), 0o600); err != nil {
			return "", m.fail("creating entry", file, err)
		}
		m.log.Info("created entry", slog.String("path", file))
		state = cipher.StatePlaintext
	}
	m.stage(file, StageMaterialized)

	plain, err := m.needsSeal(file, state)
	if err != nil {
		return "", m.fail("inspecting entry", file, err)
	}
	title := m.titleFor(file, dateStr, plain)

	if plain {
		if err := m.cipher.EncryptFile(file); err != nil {
			return "", m.fail("encrypting entry", file, err)
		}
	}

	if err := m.UpdateIndex(file, dateStr, title); err != nil {
		return "", m.fail("updating index", file, err)
	}
	m.stage(file, StageIndexed)

	return file, nil
}

// EditCycle decrypts the entry at path, hands it to the editor, then
// re-encrypts and indexes it. Decrypt and encrypt failures are logged and
// the cycle continues; an entry that could not be sealed is reported once
// the index is updated.
func (m *Manager) EditCycle(path string) error {
	if m.editor == nil {
		return fmt.Errorf("journal: no editor configured")
	}
	date, err := entry.DateFromPath(path)
	if err != nil {
		return err
	}
	dateStr := date.Format(entry.DateLayout)

	before := m.unseal(path)
	m.stage(path, StageEditable)

	if err := m.editor.Open(path); err != nil {
		m.log.Error("editor failed", slog.String("path", path), slog.Any("error", err))
	}

	plain, err := m.needsSeal(path, before)
	if errors.Is(err, ErrNotFound) {
		m.log.Warn("editor left no file", slog.String("path", path))
		return fmt.Errorf("%w: %s", ErrNotFound, dateStr)
	}
	if err != nil {
		return m.fail("inspecting entry", path, err)
	}

	title := m.titleFor(path, dateStr, plain)

	var sealErr error
	if plain {
		sealErr = m.cipher.EncryptFile(path)
		if sealErr != nil {
			m.log.Error("entry left unencrypted", slog.String("path", path), slog.Any("error", sealErr))
		}
	}

	if err := m.UpdateIndex(path, dateStr, title); err != nil {
		return m.fail("updating index", path, err)
	}
	m.stage(path, StageIndexed)

	if sealErr != nil {
		return fmt.Errorf("%w: %s left unencrypted: %v", ErrStorage, path, sealErr)
	}
	return nil
}

// EditToday materializes today's entry and runs the edit cycle on it.
func (m *Manager) EditToday() error {
	path, err := m.Materialize(m.Today())
	if err != nil {
		return err
	}
	return m.EditCycle(path)
}

// EditDate runs the edit cycle on an existing entry. When the entry does
// not exist it is materialized first if create is set, otherwise
// ErrNotFound is returned and nothing is touched.
func (m *Manager) EditDate(date time.Time, create bool) error {
	file, _ := m.ResolvePath(date)
	if !fsutil.Exists(file) {
		if !create {
			return fmt.Errorf("%w: %s", ErrNotFound, date.Format(entry.DateLayout))
		}
		if _, err := m.Materialize(date); err != nil {
			return err
		}
	}
	return m.EditCycle(file)
}

// ExtractTitle reads the title line from a plaintext entry file. Missing
// or unreadable files yield "".
func (m *Manager) ExtractTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		m.log.Warn("extracting title", slog.String("path", path), slog.Any("error", err))
		return ""
	}
	defer f.Close()
	return entry.ExtractTitle(f)
}

// titleFor reads the title from the plaintext file, or from the sealed
// file in memory. An entry this key cannot open keeps whatever the index
// already records for the date.
func (m *Manager) titleFor(path, dateStr string, plain bool) string {
	if plain {
		return m.ExtractTitle(path)
	}
	if data, _, err := m.cipher.ReadFile(path); err == nil {
		return entry.TitleOf(string(data))
	}
	ix, err := index.Load(m.paths.Index)
	if err != nil {
		return ""
	}
	e, _ := ix.Get(dateStr)
	return e.Title
}

// unseal decrypts path in place if it opens under the key and returns the
// state the file is left in. Failures are logged, never returned.
func (m *Manager) unseal(path string) cipher.State {
	state, err := m.cipher.Inspect(path)
	if err != nil {
		m.log.Error("inspecting entry", slog.String("path", path), slog.Any("error", err))
		return cipher.StateUnknown
	}

	switch state {
	case cipher.StateCiphertext:
		if err := m.cipher.DecryptFile(path); err != nil {
			m.log.Error("decrypting entry", slog.String("path", path), slog.Any("error", err))
			return cipher.StateCiphertext
		}
		return cipher.StatePlaintext
	case cipher.StateForeign:
		m.log.Error("entry does not decrypt with this key, leaving it as is", slog.String("path", path))
	case cipher.StatePlaintext:
		m.log.Warn("entry was left in plaintext, it will be re-encrypted", slog.String("path", path))
	}
	return state
}

// needsSeal reports whether path holds plaintext that must be encrypted.
// before is the state unseal left the file in. A file that opens under the
// key is already sealed. Content known to be plaintext is sealed even when
// it is shaped like an envelope, while a foreign envelope that was never
// opened is left alone so it is not wrapped twice.
func (m *Manager) needsSeal(path string, before cipher.State) (bool, error) {
	state, err := m.cipher.Inspect(path)
	if err != nil {
		return false, err
	}
	switch state {
	case cipher.StateAbsent:
		return false, fmt.Errorf("%w: %s", ErrNotFound, path)
	case cipher.StatePlaintext:
		return true, nil
	case cipher.StateForeign:
		return before == cipher.StatePlaintext || before == cipher.StateAbsent, nil
	}
	m.log.Debug("entry already encrypted", slog.String("path", path))
	return false, nil
}

// UpdateIndex records path under dateStr in the table of contents. The
// index is loaded, merged and rewritten in date order; an existing line
// for the same date is replaced.
func (m *Manager) UpdateIndex(path, dateStr, title string) error {
	rel, err := filepath.Rel(m.paths.Root, path)
	if err != nil {
		return fmt.Errorf("%w: relative path: %v", ErrStorage, err)
	}

	ix, err := index.Load(m.paths.Index)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	ix.Upsert(index.Entry{
		Date:  dateStr,
		Path:  filepath.ToSlash(rel),
		Title: title,
	})
	if err := ix.Save(m.paths.Index); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// fail logs a failed lifecycle step and returns it as an error.
func (m *Manager) fail(step, path string, err error) error {
	m.log.Error(step, slog.String("path", path), slog.Any("error", err))
	return fmt.Errorf("%s %s: %w", step, path, err)
}
