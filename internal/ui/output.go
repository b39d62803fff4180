package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chris-regnier/daybook/internal/entry"
	"github.com/chris-regnier/daybook/internal/index"
)

// FormatIndex prints the table of contents, one entry per line.
func FormatIndex(w io.Writer, entries []index.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No journal entries found.")
		return
	}
	for _, e := range entries {
		if e.Title == "" {
			fmt.Fprintln(w, e.Date)
			continue
		}
		fmt.Fprintf(w, "%s  %s\n", e.Date, e.Title)
	}
}

// FormatEntry writes a decrypted entry with a date header. The body is
// rendered as markdown unless raw is set.
func FormatEntry(w io.Writer, e entry.Entry, theme Theme, width int, raw bool) {
	if raw {
		fmt.Fprint(w, e.Content)
		return
	}
	header := e.DateString()
	if e.Title != "" {
		header += "  " + e.Title
	}
	fmt.Fprintln(w, theme.HeaderStyle().Render(header))
	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderMarkdown(e.Content, width, theme.MarkdownStyle))
}

// FormatSealed reports the entries sealed by a recovery sweep.
func FormatSealed(w io.Writer, paths []string, dryRun bool) {
	if len(paths) == 0 {
		fmt.Fprintln(w, "All entries are encrypted.")
		return
	}
	verb := "Sealed"
	if dryRun {
		verb = "Would seal"
	}
	for _, p := range paths {
		fmt.Fprintf(w, "%s %s\n", verb, p)
	}
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// IndexJSON is the JSON representation of a table of contents line.
type IndexJSON struct {
	Date  string `json:"date"`
	Path  string `json:"path"`
	Title string `json:"title,omitempty"`
}

// ToIndexJSON converts index entries for JSON list output. The result is
// never nil so an empty journal encodes as [].
func ToIndexJSON(entries []index.Entry) []IndexJSON {
	out := make([]IndexJSON, len(entries))
	for i, e := range entries {
		out[i] = IndexJSON{Date: e.Date, Path: e.Path, Title: e.Title}
	}
	return out
}
