// Package cipher owns the journal key and the authenticated encryption of
// entry files.
//
// Every ciphertext produced here has the layout
//
//	[Magic: 7 bytes "DAYBOOK"] [Version: 1 byte] [Nonce: 24 bytes] [Ciphertext+Tag: N+16 bytes]
//
// Magic and version are authenticated as additional data, so tampering with
// the header fails decryption just like tampering with the body.
package cipher

import (
	"bytes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/chris-regnier/daybook/internal/fsutil"
)

// KeySize is the length of the journal key in bytes.
const KeySize = chacha20poly1305.KeySize

// Version is the ciphertext format version written after the magic.
const Version byte = 0x01

// Magic prefixes every ciphertext and is what Sniff looks for.
var Magic = []byte("DAYBOOK")

// headerSize is magic plus version byte.
var headerSize = len(Magic) + 1

// Overhead is the total byte overhead added to a plaintext by Seal.
var Overhead = headerSize + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

// Sentinel errors. Callers match them with errors.Is.
var (
	ErrKey        = errors.New("key error")
	ErrDecryption = errors.New("decryption failed")
	ErrIO         = errors.New("i/o error")
)

// Manager encrypts and decrypts whole entry files with a single key.
type Manager struct {
	aead stdcipher.AEAD
}

// NewWithKey builds a Manager around raw key material.
func NewWithKey(key []byte) (*Manager, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrKey, KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: creating XChaCha20-Poly1305 cipher: %v", ErrKey, err)
	}
	return &Manager{aead: aead}, nil
}

// New ensures a key exists at keyPath and returns a Manager using it.
func New(keyPath string) (*Manager, error) {
	if _, err := EnsureKey(keyPath); err != nil {
		return nil, err
	}
	return Load(keyPath)
}

func header() []byte {
	h := make([]byte, 0, headerSize)
	h = append(h, Magic...)
	return append(h, Version)
}

// Seal encrypts plaintext under a fresh random nonce. Sealing the same
// plaintext twice yields different output.
func (m *Manager) Seal(plaintext []byte) ([]byte, error) {
	var nonce [chacha20poly1305.NonceSizeX]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generating random nonce: %w", err)
	}

	aad := header()
	out := make([]byte, 0, len(plaintext)+Overhead)
	out = append(out, aad...)
	out = append(out, nonce[:]...)
	return m.aead.Seal(out, nonce[:], plaintext, aad), nil
}

// Open authenticates and decrypts data produced by Seal. Any failure,
// including data that is not a ciphertext at all, is ErrDecryption.
func (m *Manager) Open(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, Magic) {
		return nil, fmt.Errorf("%w: not a daybook ciphertext", ErrDecryption)
	}
	if len(data) < Overhead {
		return nil, fmt.Errorf("%w: ciphertext truncated (%d bytes)", ErrDecryption, len(data))
	}
	if data[len(Magic)] != Version {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrDecryption, data[len(Magic)])
	}

	aad := data[:headerSize]
	nonce := data[headerSize : headerSize+chacha20poly1305.NonceSizeX]
	body := data[headerSize+chacha20poly1305.NonceSizeX:]

	plaintext, err := m.aead.Open(nil, nonce, body, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return plaintext, nil
}

// EncryptFile replaces the content of path with its ciphertext.
func (m *Manager) EncryptFile(path string) error {
	plaintext, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	sealed, err := m.Seal(plaintext)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFile(path, sealed, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// DecryptFile replaces the ciphertext at path with the recovered plaintext.
// On ErrDecryption the file is left as it was.
func (m *Manager) DecryptFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	plaintext, err := m.Open(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := fsutil.WriteFile(path, plaintext, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// ReadFile returns the plaintext of the entry at path without changing the
// file. Plaintext files (an interrupted edit) are returned as-is, even when
// their text happens to start with the magic. An envelope that does not
// open under this key is ErrDecryption with StateForeign.
func (m *Manager) ReadFile(path string) ([]byte, State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, StateAbsent, err
		}
		return nil, StateUnknown, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	if !isEnvelope(data) {
		return data, StatePlaintext, nil
	}
	plaintext, err := m.Open(data)
	if err != nil {
		return nil, StateForeign, fmt.Errorf("%s: %w", path, err)
	}
	return plaintext, StateCiphertext, nil
}

// isEnvelope is the shape check behind Sniff.
func isEnvelope(data []byte) bool {
	return len(data) >= Overhead &&
		bytes.HasPrefix(data, Magic) &&
		data[len(Magic)] == Version
}
