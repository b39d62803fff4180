// Package index maintains the journal's table of contents: one markdown
// list item per entry date, always written in ascending date order.
package index

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chris-regnier/daybook/internal/entry"
	"github.com/chris-regnier/daybook/internal/fsutil"
)

// linePrefix starts every entry line; other lines are not entries.
const linePrefix = "- ["

// Entry is one line of the table of contents.
type Entry struct {
	Date  string `json:"date"`
	Path  string `json:"path"`
	Title string `json:"title,omitempty"`
}

// Format renders e as "- [{date}]({path})" with an optional " - {title}".
// The result has no trailing newline.
func Format(e Entry) string {
	line := fmt.Sprintf("- [%s](%s)", e.Date, e.Path)
	if e.Title != "" {
		line += " - " + e.Title
	}
	return line
}

// ParseLine parses a line written by Format. Anything else reports false.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, linePrefix) {
		return Entry{}, false
	}
	rest := line[len(linePrefix):]

	end := strings.Index(rest, "](")
	if end < 0 {
		return Entry{}, false
	}
	date := rest[:end]
	if _, err := entry.ParseDate(date); err != nil {
		return Entry{}, false
	}
	rest = rest[end+2:]

	paren := strings.Index(rest, ")")
	if paren < 0 {
		return Entry{}, false
	}
	e := Entry{Date: date, Path: rest[:paren]}
	rest = rest[paren+1:]

	switch {
	case rest == "":
	case strings.HasPrefix(rest, " - "):
		e.Title = strings.TrimSpace(rest[3:])
	default:
		return Entry{}, false
	}
	return e, true
}

// Index is the in-memory table of contents, keyed by date.
type Index struct {
	entries map[string]Entry
}

// New returns an empty index.
func New() *Index {
	return &Index{entries: make(map[string]Entry)}
}

// Parse reads an index, skipping lines that are not entries.
func Parse(r io.Reader) (*Index, error) {
	ix := New()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if e, ok := ParseLine(scanner.Text()); ok {
			ix.entries[e.Date] = e
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	return ix, nil
}

// Load reads the index file at path. A missing file is an empty index.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("opening index: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Upsert inserts e, replacing any existing entry for the same date.
func (ix *Index) Upsert(e Entry) {
	ix.entries[e.Date] = e
}

// Get returns the entry for date.
func (ix *Index) Get(date string) (Entry, bool) {
	e, ok := ix.entries[date]
	return e, ok
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns all entries sorted ascending by date. ISO dates sort
// chronologically as strings.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, 0, len(ix.entries))
	for _, e := range ix.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// WriteTo writes every entry, one newline-terminated line each.
func (ix *Index) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range ix.Entries() {
		n, err := io.WriteString(w, Format(e)+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Save replaces the index file at path with the canonical rendering.
func (ix *Index) Save(path string) error {
	var buf bytes.Buffer
	if _, err := ix.WriteTo(&buf); err != nil {
		return err
	}
	return fsutil.WriteFile(path, buf.Bytes(), 0o644)
}
