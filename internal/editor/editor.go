package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultEditor is used when neither config nor environment names one.
const DefaultEditor = "vim"

// Launcher opens a file for interactive editing and blocks until the
// user is done.
type Launcher interface {
	Open(path string) error
}

// Func adapts a function to Launcher.
type Func func(path string) error

// Open calls f(path).
func (f Func) Open(path string) error { return f(path) }

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return DefaultEditor
}

// Command launches an external editor process attached to the terminal.
type Command struct {
	// Cmd is the editor command line, e.g. "vim" or "code --wait".
	Cmd    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Command wired to the process's standard streams.
func New(editorCmd string) *Command {
	return &Command{
		Cmd:    editorCmd,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Open runs the editor with path as its last argument and waits for it to
// exit. The editor's exit status is ignored; only a failure to start it
// is an error.
func (c *Command) Open(path string) error {
	parts := strings.Fields(c.Cmd)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	cmdArgs := append(parts[1:], path)
	cmd := exec.Command(parts[0], cmdArgs...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("launching editor %q: %w", parts[0], err)
	}
	return nil
}
