package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chris-regnier/daybook/internal/cipher"
	"github.com/chris-regnier/daybook/internal/fsutil"
	"github.com/chris-regnier/daybook/internal/template"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the journal root, key and default template",
	Long: `Create the journal directory, generate the encryption key and write a
default template. Existing files are left alone, so setup is safe to rerun.

Back up the key: without it no entry can be decrypted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setupRun(cmd.OutOrStdout())
	},
}

func setupRun(w io.Writer) error {
	paths := appConfig.Paths()

	if err := os.MkdirAll(paths.Root, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", paths.Root, err)
	}
	fmt.Fprintf(w, "Journal: %s\n", paths.Root)

	created, err := cipher.EnsureKey(paths.Key)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "Created key %s (back it up)\n", paths.Key)
	} else {
		fmt.Fprintf(w, "Key %s already exists\n", paths.Key)
	}

	if fsutil.Exists(paths.Template) {
		fmt.Fprintf(w, "Template %s already exists\n", paths.Template)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(paths.Template), 0o700); err != nil {
		return fmt.Errorf("creating template directory: %w", err)
	}
	if err := fsutil.WriteFile(paths.Template, []byte(template.DefaultContent), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(w, "Created template %s\n", paths.Template)
	return nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
