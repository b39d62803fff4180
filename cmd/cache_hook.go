package cmd

import (
	"github.com/chris-regnier/daybook/internal/shell"
	"github.com/spf13/cobra"
)

// invalidateCachePostRun is a PostRunE hook that drops the prompt cache
// after commands that can add entries.
func invalidateCachePostRun(cmd *cobra.Command, args []string) error {
	if appConfig == nil {
		return nil
	}
	// Errors are logged only.
	if err := shell.InvalidateCache(appConfig.Paths().Root); err != nil {
		logger.Debug("invalidating prompt cache", "error", err)
	}
	return nil
}
