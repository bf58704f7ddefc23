package timer

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	contractiondto "labortimer/internal/modules/contraction/dto"
	"labortimer/internal/platform/timefmt"
	"labortimer/internal/ui/theme"
)

const tickInterval = 100 * time.Millisecond

type TimerPort interface {
	Status(ctx context.Context) (contractiondto.StatusOutput, error)
	Stats(ctx context.Context) (contractiondto.StatsOutput, error)
}

type LoadedMsg struct {
	Status contractiondto.StatusOutput
	Stats  contractiondto.StatsOutput
	Err    error
}

// TickMsg drives the elapsed counter while a contraction is in progress.
type TickMsg time.Time

type Model struct {
	port    TimerPort
	status  contractiondto.StatusOutput
	stats   contractiondto.StatsOutput
	now     time.Time
	ticking bool
	err     error
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port TimerPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{port: port, spinner: sp, loading: true, now: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads status and statistics from the port.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		status, err := m.port.Status(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		stats, err := m.port.Stats(ctx)
		return LoadedMsg{Status: status, Stats: stats, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.status = msg.Status
		m.stats = msg.Stats
		m.now = time.Now()
		if m.status.Active && !m.ticking {
			m.ticking = true
			return m, tick()
		}

	case TickMsg:
		m.now = time.Time(msg)
		if !m.status.Active {
			m.ticking = false
			return m, nil
		}
		return m, tick()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Elapsed is the running duration of the active contraction in ms.
func (m Model) Elapsed() int64 {
	if !m.status.Active {
		return 0
	}
	elapsed := m.now.UnixMilli() - m.status.StartedAt
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (m Model) Active() bool { return m.status.Active }

func (m Model) View() string {
	if m.loading {
		m.spinner.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading contractions…")
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Contraction Timer") + "\n")
	sb.WriteString(theme.Muted.Render("Track and time your contractions") + "\n\n")
	sb.WriteString(m.renderButton() + "\n\n")
	if m.err != nil {
		sb.WriteString(theme.Danger.Render(m.err.Error()) + "\n\n")
	}
	sb.WriteString(m.renderStats())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, sb.String())
}

func (m Model) renderButton() string {
	color := theme.Green
	label := "START"
	body := label
	if m.status.Active {
		color = theme.Red
		label = "STOP"
		body = label + "\n" + timefmt.FormatDuration(m.Elapsed())
	}
	button := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Bold(true).
		Width(18).
		Padding(1, 0).
		Align(lipgloss.Center).
		Render(body)
	hint := "space: start contraction"
	if m.status.Active {
		hint = "space: stop contraction"
	}
	return lipgloss.JoinVertical(lipgloss.Center, button, theme.Muted.Render(hint))
}

// renderStats shows nothing until at least one contraction completed.
func (m Model) renderStats() string {
	s := m.stats
	if s.Completed == 0 {
		return ""
	}
	var cards []string
	if s.HasInterval {
		cards = append(cards, statCard(s.AvgInterval, "Avg Interval", s.IntervalMet))
	}
	cards = append(cards,
		statCard(s.AvgDuration, "Avg Duration", s.DurationMet),
		statCard(s.TotalSpan, "Total Time", s.SpanMet),
	)
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	return theme.Muted.Render("STATISTICS") + "\n" + row
}

func statCard(value, label string, highlighted bool) string {
	border := theme.Surface1
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if highlighted {
		border = theme.Green
		valueStyle = theme.Good
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(14).
		Align(lipgloss.Center).
		MarginRight(1).
		Render(valueStyle.Render(value) + "\n" + theme.Muted.Render(label))
}
