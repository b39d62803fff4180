package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/daybook/internal/entry"
	"github.com/chris-regnier/daybook/internal/ui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Pick an entry from the table of contents and edit it",
	Long: `Open an interactive, filterable list of entries. Choosing one runs the
same decrypt, edit and re-encrypt cycle as --date.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return browseRun(os.Stdin, cmd.OutOrStdout())
	},
	PostRunE: invalidateCachePostRun,
}

func browseRun(in io.Reader, out io.Writer) error {
	if !isTerminal(out) {
		return errors.New("browse needs a terminal; use list and --date instead")
	}
	m, err := openJournal()
	if err != nil {
		return err
	}
	entries, err := m.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ui.FormatIndex(out, nil)
		return nil
	}

	picked, ok, err := ui.Pick(in, out, entries, resolvedTheme(), appConfig.MaxWidth)
	if err != nil || !ok {
		return err
	}
	date, err := entry.ParseDate(picked.Date)
	if err != nil {
		return fmt.Errorf("index line for %s: %w", picked.Date, err)
	}
	return m.EditDate(date, false)
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
