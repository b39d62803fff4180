package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/daybook/internal/ui"
	"github.com/spf13/cobra"
)

var (
	sealDryRun bool
	sealYes    bool
)

var sealCmd = &cobra.Command{
	Use:   "seal",
	Short: "Encrypt entries left in plaintext",
	Long: `Find entries that were left decrypted, for example when an editor
session was killed, and encrypt them again.`,
	Example: `  daybook seal --dry-run
  daybook seal --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sealRun(os.Stdin, cmd.OutOrStdout(), sealDryRun, sealYes)
	},
}

func sealRun(in io.Reader, w io.Writer, dryRun, yes bool) error {
	m, err := openJournal()
	if err != nil {
		return err
	}
	plain, err := m.Plaintext()
	if err != nil {
		return err
	}
	if dryRun || len(plain) == 0 {
		ui.FormatSealed(w, plain, true)
		return nil
	}

	if !yes && isTerminal(w) {
		ok, err := ui.Confirm(in, w, fmt.Sprintf("Encrypt %d plaintext entries?", len(plain)), resolvedTheme())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Nothing sealed.")
			return nil
		}
	}

	sealed, err := m.Recover()
	ui.FormatSealed(w, sealed, false)
	return err
}

func init() {
	sealCmd.Flags().BoolVar(&sealDryRun, "dry-run", false, "only list plaintext entries")
	sealCmd.Flags().BoolVarP(&sealYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(sealCmd)
}
