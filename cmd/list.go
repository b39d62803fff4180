package cmd

import (
	"bytes"
	"io"

	"github.com/chris-regnier/daybook/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long:  "List the table of contents: every entry's date and title, oldest first.",
	Example: `  daybook list
  daybook list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun(cmd.OutOrStdout())
	},
}

func listRun(w io.Writer) error {
	m, err := openJournal()
	if err != nil {
		return err
	}
	entries, err := m.Entries()
	if err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToIndexJSON(entries))
	}
	var buf bytes.Buffer
	ui.FormatIndex(&buf, entries)
	return ui.Page(w, "", buf.String(), resolvedTheme(), appConfig.MaxWidth)
}

func init() {
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.AddCommand(listCmd)
}
