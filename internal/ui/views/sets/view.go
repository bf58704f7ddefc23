package sets

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	contractiondto "labortimer/internal/modules/contraction/dto"
	"labortimer/internal/platform/timefmt"
	"labortimer/internal/ui/theme"
)

type SetsPort interface {
	ListSets(ctx context.Context) ([]contractiondto.SetOutput, error)
}

type LoadedMsg struct {
	Sets []contractiondto.SetOutput
	Err  error
}

type setItem struct {
	set contractiondto.SetOutput
}

func (i setItem) Title() string { return i.set.Name }

func (i setItem) Description() string {
	noun := "contractions"
	if i.set.Count == 1 {
		noun = "contraction"
	}
	return fmt.Sprintf("%d %s  ·  %s %s", i.set.Count, noun, timefmt.FormatDate(i.set.CreatedAt), timefmt.FormatTime(i.set.CreatedAt))
}

func (i setItem) FilterValue() string { return i.set.Name }

type Model struct {
	port   SetsPort
	list   list.Model
	count  int
	err    error
	width  int
	height int
}

func New(port SetsPort) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Saved Sets"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	m := Model{port: port, list: l}
	m.Restyle()
	return m
}

func (m *Model) Restyle() {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)
	m.list.SetDelegate(delegate)
	m.list.Styles.Title = theme.Title
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		sets, err := m.port.ListSets(context.Background())
		return LoadedMsg{Sets: sets, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.count = len(msg.Sets)
		items := make([]list.Item, len(msg.Sets))
		for i, s := range msg.Sets {
			items[i] = setItem{set: s}
		}
		return m, m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) Selected() (contractiondto.SetOutput, bool) {
	if item, ok := m.list.SelectedItem().(setItem); ok {
		return item.set, true
	}
	return contractiondto.SetOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Danger.Render("Failed to load saved sets. Please restart the app.") + "\n" +
			theme.Muted.Render(m.err.Error())
	}
	noun := "recordings"
	if m.count == 1 {
		noun = "recording"
	}
	header := theme.Muted.Render(fmt.Sprintf("%d saved %s", m.count, noun))
	if m.count == 0 {
		body := theme.Title.Render("No saved sets") + "\n" +
			theme.Muted.Render("Save your contractions from the History tab to access them here")
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body))
	}
	footer := theme.Muted.Render("enter: load  d: delete  e: export  /: filter")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), footer)
}
