package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the table of contents from the entry files",
	Long: `Scan {root}/YYYY/MM/ for entries, decrypt each in memory to read its
title, and rewrite table_of_contents.md from scratch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reindexRun(cmd.OutOrStdout())
	},
	PostRunE: invalidateCachePostRun,
}

func reindexRun(w io.Writer) error {
	m, err := openJournal()
	if err != nil {
		return err
	}
	n, err := m.Reindex()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Indexed %d entries.\n", n)
	return nil
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
