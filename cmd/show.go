package cmd

import (
	"bytes"
	"io"

	"github.com/chris-regnier/daybook/internal/ui"
	"github.com/spf13/cobra"
)

var (
	showDate string
	showRaw  bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a journal entry",
	Long: `Decrypt an entry in memory and print it. The file on disk stays
encrypted. Defaults to today's entry.`,
	Example: `  daybook show
  daybook show --date 2024-03-01
  daybook show --raw
  daybook show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRun(cmd.OutOrStdout(), showDate, showRaw)
	},
}

func showRun(w io.Writer, date string, raw bool) error {
	d, err := parseDateFlag(date)
	if err != nil {
		return err
	}
	m, err := openJournal()
	if err != nil {
		return err
	}
	if d.IsZero() {
		d = m.Today()
	}
	e, err := m.Read(d)
	if err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, e)
	}

	var buf bytes.Buffer
	ui.FormatEntry(&buf, e, resolvedTheme(), appConfig.MaxWidth, raw)
	if raw {
		_, err := w.Write(buf.Bytes())
		return err
	}
	return ui.Page(w, e.DateString(), buf.String(), resolvedTheme(), appConfig.MaxWidth)
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "entry date (YYYY-MM-DD), default today")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print the markdown source without rendering")
	showCmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.AddCommand(showCmd)
}
