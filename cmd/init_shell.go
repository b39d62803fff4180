package cmd

import (
	"github.com/chris-regnier/daybook/internal/shell"
	"github.com/spf13/cobra"
)

var initShellCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Output shell integration script",
	Long: `Output shell integration script for eval.

Generates shell-specific initialization code that sets up:
- Shell completions
- Prompt hook exporting DAYBOOK_TODAY, DAYBOOK_STREAK and friends
- daybook_prompt_info helper function

Supported shells: bash, fish, zsh`,
	Example: `  # Add to ~/.bashrc
  eval "$(daybook init bash)"

  # Add to ~/.zshrc
  eval "$(daybook init zsh)"

  # Add to ~/.config/fish/config.fish
  daybook init fish | source`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: shell.Shells(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return shell.WriteInit(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(initShellCmd)
}
