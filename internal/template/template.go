package template

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
)

// Substitution tokens recognised in template content.
const (
	DateToken  = "{{date}}"
	TitleToken = "{{title}}"
)

// DefaultContent is written by `daybook setup` when no template exists.
const DefaultContent = `# Journal Entry for {{date}}

## Title: {{title}}

## Highlights
- 

## Notes
- 
`

// Template is the static text new entries are created from.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Content     string `yaml:"-"`
}

// Parse reads template data. A leading YAML front-matter block is
// stripped and decoded into Name and Description; the rest is kept
// byte for byte.
func Parse(data []byte) (Template, error) {
	var t Template
	if !bytes.HasPrefix(data, []byte("---")) {
		t.Content = string(data)
		return t, nil
	}
	rest, err := frontmatter.Parse(bytes.NewReader(data), &t)
	if err != nil {
		return Template{}, fmt.Errorf("parsing template front-matter: %w", err)
	}
	t.Content = string(rest)
	return t, nil
}

// Load reads and parses the template file at path.
func Load(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("reading template: %w", err)
	}
	return Parse(data)
}

// Render substitutes the date and title tokens. Every occurrence is
// replaced; other text, including unknown {{tokens}}, is left alone.
func (t Template) Render(date, title string) string {
	return Render(t.Content, date, title)
}

// Render substitutes the date and title tokens in content.
func Render(content, date, title string) string {
	r := strings.NewReplacer(DateToken, date, TitleToken, title)
	return r.Replace(content)
}
