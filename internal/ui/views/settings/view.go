package settings

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	settingsdto "labortimer/internal/modules/settings/dto"
	"labortimer/internal/ui/theme"
)

type SettingsPort interface {
	GetTheme(ctx context.Context) (settingsdto.ThemeOutput, error)
}

type LoadedMsg struct {
	Theme settingsdto.ThemeOutput
	Err   error
}

// ChooseThemeMsg asks the app to persist and apply a theme mode.
type ChooseThemeMsg struct{ Mode string }

var modeLabels = map[string]string{
	"system": "System: follow the terminal background",
	"light":  "Light",
	"dark":   "Dark",
}

type Model struct {
	port    SettingsPort
	modes   []string
	current string
	cursor  int
	err     error
	width   int
	height  int
}

func New(port SettingsPort) Model {
	return Model{port: port, modes: []string{"system", "light", "dark"}, current: "system"}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.GetTheme(context.Background())
		return LoadedMsg{Theme: out, Err: err}
	}
}

func (m Model) Current() string { return m.current }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		if len(msg.Theme.Modes) > 0 {
			m.modes = msg.Theme.Modes
		}
		m.current = msg.Theme.Mode
		for i, mode := range m.modes {
			if mode == m.current {
				m.cursor = i
			}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.modes)-1 {
				m.cursor++
			}
		case "enter", " ":
			mode := m.modes[m.cursor]
			return m, func() tea.Msg { return ChooseThemeMsg{Mode: mode} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Settings") + "\n\n")
	sb.WriteString(theme.Muted.Render("APPEARANCE") + "\n")
	for i, mode := range m.modes {
		cursor := "  "
		if i == m.cursor {
			cursor = theme.Hot.Render("> ")
		}
		mark := "( )"
		if mode == m.current {
			mark = theme.Good.Render("(•)")
		}
		label := modeLabels[mode]
		if label == "" {
			label = mode
		}
		sb.WriteString(cursor + mark + " " + label + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n" + theme.Danger.Render(m.err.Error()) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓: select  enter: apply"))
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
