package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/chris-regnier/daybook/internal/index"
	"github.com/chris-regnier/daybook/internal/shell"
	"github.com/spf13/cobra"
)

// statusData holds the template data for status formatting.
type statusData struct {
	TodayIcon  string
	Streak     int
	StreakIcon string
	Total      int
	HasToday   bool
}

var (
	statusEnv     bool
	statusRefresh bool
	statusFormat  string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show journal prompt status",
	Long: `Show journal status for shell prompt integration.

Outputs a today indicator and the current streak of consecutive days.
Reads from cache when fresh and from the table of contents when stale.
Entries are never decrypted.

Use --env to output shell environment variable assignments.
Use --refresh to force a cache refresh.
Use --format with a Go template for custom output.`,
	Example: `  daybook status
  daybook status --env
  daybook status --refresh
  daybook status --format "{{.TodayIcon}} {{.Streak}}{{.StreakIcon}}"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusRun(cmd.OutOrStdout(), time.Now(), statusEnv, statusRefresh, statusFormat)
	},
}

func statusRun(w io.Writer, now time.Time, env, refresh bool, format string) error {
	paths := appConfig.Paths()

	ttl, err := time.ParseDuration(appConfig.Shell.CacheTTL)
	if err != nil {
		ttl = 5 * time.Minute
	}

	cache := shell.ReadCache(paths.Root)
	if refresh || !cache.IsFresh(ttl, now) {
		ix, err := index.Load(paths.Index)
		if err != nil {
			return fmt.Errorf("computing status: %w", err)
		}
		cache = shell.NewCache(shell.ComputeStatus(ix.Entries(), now), now)
		if err := shell.WriteCache(paths.Root, cache); err != nil {
			// A prompt must keep working without its cache.
			logger.Warn("could not write prompt cache", "error", err)
		}
	}

	data := buildStatusData(cache)
	switch {
	case env:
		return outputEnv(w, data)
	case format != "":
		return outputTemplate(w, data, format)
	}
	fmt.Fprintf(w, "%s %d%s\n", data.TodayIcon, data.Streak, data.StreakIcon)
	return nil
}

func buildStatusData(cache *shell.PromptCache) statusData {
	icon := appConfig.Shell.NoTodayIcon
	if cache.Today {
		icon = appConfig.Shell.TodayIcon
	}
	return statusData{
		TodayIcon:  icon,
		Streak:     cache.Streak,
		StreakIcon: appConfig.Shell.StreakIcon,
		Total:      cache.Total,
		HasToday:   cache.Today,
	}
}

func outputEnv(w io.Writer, data statusData) error {
	var b strings.Builder
	fmt.Fprintf(&b, "export DAYBOOK_TODAY=%q\n", data.TodayIcon)
	fmt.Fprintf(&b, "export DAYBOOK_STREAK=%q\n", fmt.Sprint(data.Streak))
	fmt.Fprintf(&b, "export DAYBOOK_STREAK_ICON=%q\n", data.StreakIcon)
	fmt.Fprintf(&b, "export DAYBOOK_ENTRIES=%q\n", fmt.Sprint(data.Total))
	_, err := io.WriteString(w, b.String())
	return err
}

func outputTemplate(w io.Writer, data statusData, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return fmt.Errorf("invalid format template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing format template: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func init() {
	statusCmd.Flags().BoolVar(&statusEnv, "env", false, "output shell environment variable assignments")
	statusCmd.Flags().BoolVar(&statusRefresh, "refresh", false, "force cache refresh")
	statusCmd.Flags().StringVar(&statusFormat, "format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
