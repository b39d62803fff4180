package cipher

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// State is the at-rest representation of an entry file.
type State int

const (
	StateUnknown State = iota
	StateAbsent
	StatePlaintext
	StateCiphertext
	// StateForeign is a well-formed envelope that does not open under
	// this key: sealed with another key, or corrupted.
	StateForeign
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StatePlaintext:
		return "plaintext"
	case StateCiphertext:
		return "ciphertext"
	case StateForeign:
		return "foreign"
	default:
		return "unknown"
	}
}

// Sniff classifies file content by its envelope shape: magic, version byte
// and room for a nonce and tag. It does not authenticate, so text that
// merely starts with the magic is plaintext but a corrupted ciphertext
// still sniffs as StateCiphertext. Use Manager.Inspect to decide whether a
// file is really sealed.
func Sniff(data []byte) State {
	if isEnvelope(data) {
		return StateCiphertext
	}
	return StatePlaintext
}

// StateOf sniffs the file at path without a key.
func StateOf(path string) (State, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StateAbsent, nil
		}
		return StateUnknown, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	buf := make([]byte, Overhead)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return StateUnknown, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	// Empty files are plaintext: an editor saved nothing yet.
	return Sniff(buf[:n]), nil
}

// Inspect reports the authenticated state of the file at path. Only an
// envelope that opens under this key is StateCiphertext. An envelope that
// does not open is StateForeign, and anything else is StatePlaintext.
func (m *Manager) Inspect(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StateAbsent, nil
		}
		return StateUnknown, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	return m.classify(data), nil
}

func (m *Manager) classify(data []byte) State {
	if !isEnvelope(data) {
		return StatePlaintext
	}
	if _, err := m.Open(data); err != nil {
		return StateForeign
	}
	return StateCiphertext
}
