package ui

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/daybook/internal/index"
)

// dateItem implements list.Item for a table of contents line.
type dateItem struct {
	entry index.Entry
}

func (d dateItem) Title() string { return d.entry.Date }

func (d dateItem) Description() string {
	if d.entry.Title == "" {
		return "(untitled)"
	}
	return d.entry.Title
}

func (d dateItem) FilterValue() string { return d.entry.Date + " " + d.entry.Title }

type pickerModel struct {
	list     list.Model
	selected *index.Entry
	width    int
	maxWidth int
}

// newPickerModel lists entries newest first.
func newPickerModel(entries []index.Entry, theme Theme, maxWidth int) pickerModel {
	items := make([]list.Item, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		items = append(items, dateItem{entry: entries[i]})
	}
	l := theme.NewList(items, 0, 0)
	l.Title = "Journal"
	l.SetStatusBarItemName("entry", "entries")
	return pickerModel{list: l, maxWidth: maxWidth}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(m.contentWidth(), msg.Height)
	case tea.KeyMsg:
		// While the filter input is focused keys belong to it.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(dateItem); ok {
				e := item.entry
				m.selected = &e
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

func (m pickerModel) View() string {
	return m.list.View()
}

// Pick shows entries in a filterable list and returns the one chosen.
// ok is false when the user quits without choosing.
func Pick(in io.Reader, out io.Writer, entries []index.Entry, theme Theme, maxWidth int) (e index.Entry, ok bool, err error) {
	p := tea.NewProgram(newPickerModel(entries, theme, maxWidth),
		tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	result, err := p.Run()
	if err != nil {
		return index.Entry{}, false, err
	}
	pm, _ := result.(pickerModel)
	if pm.selected == nil {
		return index.Entry{}, false, nil
	}
	return *pm.selected, true, nil
}
