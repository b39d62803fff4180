package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestTemplateShow(t *testing.T) {
	paths := setupTestEnv(t, nil)
	os.WriteFile(paths.Template, []byte("---\nname: daily\ndescription: One page a day\n---\n# {{date}}\n"), 0o644)

	var buf bytes.Buffer
	if err := templateShowRun(&buf); err != nil {
		t.Fatalf("templateShowRun: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Template: " + paths.Template + "\n",
		"Name: daily\n",
		"Description: One page a day\n",
		"# {{date}}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "---") {
		t.Errorf("front matter should be stripped:\n%s", out)
	}
}

func TestTemplateShowJSON(t *testing.T) {
	paths := setupTestEnv(t, nil)
	jsonOutput = true

	var buf bytes.Buffer
	if err := templateShowRun(&buf); err != nil {
		t.Fatalf("templateShowRun: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got["path"] != paths.Template || got["content"] != testTemplate {
		t.Errorf("got %v", got)
	}
}

func TestTemplateShowMissing(t *testing.T) {
	paths := setupTestEnv(t, nil)
	os.Remove(paths.Template)
	if err := templateShowRun(&bytes.Buffer{}); err == nil {
		t.Error("expected error for missing template")
	}
}

func TestTemplateEdit(t *testing.T) {
	var opened string
	paths := setupTestEnv(t, func(path string) error {
		opened = path
		return nil
	})
	if err := templateEditRun(); err != nil {
		t.Fatal(err)
	}
	if opened != paths.Template {
		t.Errorf("opened %q, want %q", opened, paths.Template)
	}
}
