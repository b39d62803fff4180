package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/daybook/internal/config"
)

// DefaultPreset is used when the config names no preset or an unknown one.
const DefaultPreset = "default-dark"

// Theme holds resolved lipgloss colors for terminal output.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	MarkdownStyle string
}

var presets = map[string]Theme{
	"default-dark": {
		Primary:       lipgloss.Color("15"),
		Secondary:     lipgloss.Color("243"),
		Accent:        lipgloss.Color("33"),
		Muted:         lipgloss.Color("241"),
		Danger:        lipgloss.Color("9"),
		MarkdownStyle: "dark",
	},
	"default-light": {
		Primary:       lipgloss.Color("0"),
		Secondary:     lipgloss.Color("240"),
		Accent:        lipgloss.Color("27"),
		Muted:         lipgloss.Color("245"),
		Danger:        lipgloss.Color("1"),
		MarkdownStyle: "light",
	},
	"dracula": {
		Primary:       lipgloss.Color("#F8F8F2"),
		Secondary:     lipgloss.Color("#6272A4"),
		Accent:        lipgloss.Color("#BD93F9"),
		Muted:         lipgloss.Color("#6272A4"),
		Danger:        lipgloss.Color("#FF5555"),
		MarkdownStyle: "dracula",
	},
	"gruvbox-dark": {
		Primary:       lipgloss.Color("#EBDBB2"),
		Secondary:     lipgloss.Color("#665C54"),
		Accent:        lipgloss.Color("#FABD2F"),
		Muted:         lipgloss.Color("#928374"),
		Danger:        lipgloss.Color("#FB4934"),
		MarkdownStyle: "dark",
	},
	"gruvbox-light": {
		Primary:       lipgloss.Color("#3C3836"),
		Secondary:     lipgloss.Color("#A89984"),
		Accent:        lipgloss.Color("#D79921"),
		Muted:         lipgloss.Color("#928374"),
		Danger:        lipgloss.Color("#CC241D"),
		MarkdownStyle: "light",
	},
}

// ResolveTheme builds a Theme from config, starting with a preset
// and applying any explicit overrides.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets[DefaultPreset]
	}

	override := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	override(&theme.Primary, cfg.Primary)
	override(&theme.Secondary, cfg.Secondary)
	override(&theme.Accent, cfg.Accent)
	override(&theme.Muted, cfg.Muted)
	override(&theme.Danger, cfg.Danger)
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}
	return theme
}

// HeaderStyle is used for the entry date line in show output.
func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
}

// AccentStyle is used for focused or highlighted elements.
func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent)
}

// MutedStyle is used for help and footer text.
func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

// DangerStyle is used for warnings and confirmation prompts.
func (t Theme) DangerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Danger)
}

// NewList creates a list.Model styled from the theme.
func (t Theme) NewList(items []list.Item, width, height int) list.Model {
	l := list.New(items, t.ListDelegate(), width, height)
	l.Styles = t.ListStyles()
	return l
}

// ListDelegate returns a list.DefaultDelegate with item styles derived from the theme.
func (t Theme) ListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Padding(0, 0, 0, 2)
	d.Styles.NormalDesc = d.Styles.NormalTitle.
		Foreground(t.Muted)
	d.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		Foreground(t.Accent).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.
		Foreground(t.Secondary)
	d.Styles.DimmedTitle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Padding(0, 0, 0, 2)
	d.Styles.DimmedDesc = d.Styles.DimmedTitle
	return d
}

// ListStyles returns the chrome around the list.
func (t Theme) ListStyles() list.Styles {
	s := list.DefaultStyles()
	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Padding(0, 1)
	s.FilterPrompt = lipgloss.NewStyle().Foreground(t.Accent)
	s.FilterCursor = lipgloss.NewStyle().Foreground(t.Accent)
	s.PaginationStyle = lipgloss.NewStyle().Foreground(t.Muted)
	s.HelpStyle = lipgloss.NewStyle().Foreground(t.Muted)
	s.ActivePaginationDot = lipgloss.NewStyle().Foreground(t.Accent)
	s.InactivePaginationDot = lipgloss.NewStyle().Foreground(t.Muted)
	s.NoItems = lipgloss.NewStyle().Foreground(t.Muted)
	return s
}
