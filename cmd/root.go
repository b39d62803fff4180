package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/chris-regnier/daybook/internal/cipher"
	"github.com/chris-regnier/daybook/internal/config"
	"github.com/chris-regnier/daybook/internal/editor"
	"github.com/chris-regnier/daybook/internal/entry"
	"github.com/chris-regnier/daybook/internal/journal"
	"github.com/chris-regnier/daybook/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile    string
	jsonOutput bool
	entryDate  string
	createFlag bool
	appConfig  *config.Config
	logger     *slog.Logger

	// launcher overrides the configured editor; tests set it.
	launcher editor.Launcher
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "An encrypted daily journal",
	Long: `daybook keeps one markdown entry per day, encrypted at rest.

With no arguments it opens today's entry in your editor, creating it from
the template if needed. The entry is decrypted only while the editor runs.`,
	Example: `  daybook
  daybook --date 2024-03-01
  daybook --date 2024-03-01 --create`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg
		logger = newLogger(os.Stderr, cfg.SlogLevel())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return editRun(entryDate, createFlag)
	},
	PostRunE: invalidateCachePostRun,
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.Flags().StringVar(&entryDate, "date", "", "edit the entry for this date (YYYY-MM-DD)")
	rootCmd.Flags().BoolVar(&createFlag, "create", false, "with --date, create the entry if it does not exist")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openJournal builds the lifecycle manager for the configured root. The
// key is created on first use; a key that exists but cannot be loaded is
// fatal.
func openJournal() (*journal.Manager, error) {
	paths := appConfig.Paths()
	c, err := cipher.New(paths.Key)
	if err != nil {
		return nil, err
	}
	l := launcher
	if l == nil {
		l = editor.New(editor.ResolveEditor(appConfig.Editor))
	}
	return journal.New(journal.Options{
		Paths:  paths,
		Cipher: c,
		Editor: l,
		Logger: logger,
	})
}

// parseDateFlag validates a --date value before anything on disk is
// touched. An empty flag yields the zero time, meaning today.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return entry.ParseDate(s)
}

func editRun(date string, create bool) error {
	target, err := parseDateFlag(date)
	if err != nil {
		return err
	}

	m, err := openJournal()
	if err != nil {
		return err
	}

	if date == "" {
		return m.EditToday()
	}
	if !create && !m.Exists(target) {
		return fmt.Errorf("%w for %s (use --create to start one)", journal.ErrNotFound, date)
	}
	return m.EditDate(target, create)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func resolvedTheme() ui.Theme {
	return ui.ResolveTheme(appConfig.Theme)
}
