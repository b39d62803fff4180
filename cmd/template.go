package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chris-regnier/daybook/internal/editor"
	"github.com/chris-regnier/daybook/internal/template"
	"github.com/chris-regnier/daybook/internal/ui"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Inspect or edit the entry template",
	Long: `New entries are created from templates/template.md under the journal
root. {{date}} is replaced with the entry's date and {{title}} with an
empty title. An optional YAML front-matter block (name, description) is
stripped before substitution.`,
}

var templateShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Show the template",
	Example: `  daybook template show --json`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return templateShowRun(cmd.OutOrStdout())
	},
}

var templateEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the template in your editor",
	Long:  "Open the template in your editor. The template is not encrypted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return templateEditRun()
	},
}

type templateJSON struct {
	Path        string `json:"path"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
}

func templateShowRun(w io.Writer) error {
	path := appConfig.Paths().Template
	tmpl, err := template.Load(path)
	if err != nil {
		return fmt.Errorf("%w (run daybook setup to create one)", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, templateJSON{
			Path:        path,
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Content:     tmpl.Content,
		})
	}

	fmt.Fprintf(w, "Template: %s\n", path)
	if tmpl.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", tmpl.Name)
	}
	if tmpl.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", tmpl.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, tmpl.Content)
	return nil
}

func templateEditRun() error {
	path := appConfig.Paths().Template
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	l := launcher
	if l == nil {
		l = editor.New(editor.ResolveEditor(appConfig.Editor))
	}
	return l.Open(path)
}

func init() {
	templateShowCmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateEditCmd)
	rootCmd.AddCommand(templateCmd)
}
