package entry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date used for file names and index keys.
const DateLayout = "2006-01-02"

// Ext is the file extension of entry files.
const Ext = ".md"

// TitleMarker prefixes the title line inside an entry.
const TitleMarker = "## Title:"

// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Entry is one day's journal file.
type Entry struct {
	Date    time.Time `json:"date"`
	Path    string    `json:"path"`
	Title   string    `json:"title,omitempty"`
	Content string    `json:"content,omitempty"`
}

// DateString returns the entry's ISO date.
func (e Entry) DateString() string {
	return e.Date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as a local calendar date.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q (use YYYY-MM-DD)", ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (use YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return t, nil
}

// NormalizeDate truncates t to midnight local time.
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// ResolvePath maps a date to its entry file and the directory holding it:
// {root}/{YYYY}/{MM}/{YYYY-MM-DD}.md. It does not touch the filesystem.
func ResolvePath(root string, date time.Time) (file string, dir string) {
	dir = filepath.Join(root, date.Format("2006"), date.Format("01"))
	file = filepath.Join(dir, date.Format(DateLayout)+Ext)
	return file, dir
}

// DateFromPath recovers the entry date from a file name like 2024-03-01.md.
func DateFromPath(path string) (time.Time, error) {
	base := strings.TrimSuffix(filepath.Base(path), Ext)
	return ParseDate(base)
}

// ExtractTitle returns the trimmed remainder of the first line starting
// with TitleMarker, or "" when there is none.
func ExtractTitle(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, TitleMarker) {
			return strings.TrimSpace(line[len(TitleMarker):])
		}
	}
	return ""
}

// TitleOf is ExtractTitle over in-memory content.
func TitleOf(content string) string {
	return ExtractTitle(strings.NewReader(content))
}
