package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

type pagerModel struct {
	viewport viewport.Model
	title    string
	content  string
	theme    Theme
	ready    bool
	maxWidth int // 0 = no limit
	width    int
	height   int
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := max(msg.Height-m.chromeHeight(), 1)
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth(), h)
			m.ready = true
		} else {
			m.viewport.Width = m.contentWidth()
			m.viewport.Height = h
		}
		m.viewport.SetContent(m.content)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// chromeHeight is the number of rows used by the title and footer.
func (m pagerModel) chromeHeight() int {
	if m.title == "" {
		return 1
	}
	return 2
}

func (m pagerModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

// center indents every line so content of maxWidth sits in the middle of
// the terminal.
func (m pagerModel) center(content string) string {
	if m.maxWidth <= 0 || m.width <= m.maxWidth {
		return content
	}
	pad := strings.Repeat(" ", (m.width-m.maxWidth)/2)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

func (m pagerModel) View() string {
	if !m.ready {
		return m.center("Loading...")
	}
	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.theme.HeaderStyle().Render(m.title))
		b.WriteString("\n")
	}
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	footer := fmt.Sprintf("↑/↓ scroll • q quit • %3.f%%", m.viewport.ScrollPercent()*100)
	b.WriteString(m.theme.MutedStyle().Render(footer))
	return m.center(b.String())
}

// Page writes content to w. When w is a terminal and the content is taller
// than the screen it is shown in a scrollable viewport instead.
func Page(w io.Writer, title, content string, theme Theme, maxWidth int) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := fmt.Fprint(w, content)
		return err
	}

	_, height, err := term.GetSize(int(f.Fd()))
	if err != nil || strings.Count(content, "\n")+1 <= height-2 {
		_, err := fmt.Fprint(w, content)
		return err
	}

	p := tea.NewProgram(pagerModel{
		title:    title,
		content:  content,
		theme:    theme,
		maxWidth: maxWidth,
	}, tea.WithAltScreen(), tea.WithOutput(f))
	_, err = p.Run()
	return err
}
