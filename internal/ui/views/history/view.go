package history

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

type HistoryPort interface {
	History(ctx context.Context) ([]contractiondto.ContractionOutput, error)
}

type LoadedMsg struct {
	Contractions []contractiondto.ContractionOutput
	Err          error
}

type contractionItem struct {
	c contractiondto.ContractionOutput
}

func (i contractionItem) Title() string {
	return fmt.Sprintf("#%d  %s", i.c.Index, timefmt.FormatTime(i.c.StartedAt))
}

func (i contractionItem) Description() string {
	duration := timefmt.FormatDuration(i.c.DurationMS) + " duration"
	if i.c.InProgress {
		duration = "in progress"
	}
	if !i.c.HasInterval {
		return duration
	}
	return duration + "   " + timefmt.FormatDuration(i.c.IntervalMS) + " interval"
}

func (i contractionItem) FilterValue() string { return timefmt.FormatTime(i.c.StartedAt) }

type Model struct {
	port   HistoryPort
	list   list.Model
	count  int
	err    error
	width  int
	height int
}

func New(port HistoryPort) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "History"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	m := Model{port: port, list: l}
	m.Restyle()
	return m
}

// Restyle reapplies theme colors after a palette switch.
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
		items, err := m.port.History(context.Background())
		return LoadedMsg{Contractions: items, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.count = len(msg.Contractions)
		items := make([]list.Item, len(msg.Contractions))
		for i, c := range msg.Contractions {
			items[i] = contractionItem{c: c}
		}
		return m, m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) Count() int { return m.count }

func (m Model) View() string {
	if m.err != nil {
		return theme.Danger.Render("History unavailable: " + m.err.Error())
	}
	if m.count == 0 {
		body := theme.Title.Render("No contractions recorded") + "\n" +
			theme.Muted.Render("Press space on the Timer tab to start timing")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	footer := theme.Muted.Render("s: save set  c: clear history")
	m.list.SetSize(m.width, m.height-1)
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), footer)
}
