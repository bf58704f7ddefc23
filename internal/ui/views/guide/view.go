package guide

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"labortimer/internal/ui/theme"
)

// Content is the how-to-use guide shown on the Guide tab.
const Content = `# How to Use

1. Press space on the Timer tab when a contraction starts
2. Press space again when it ends
3. View your history and statistics below the timer

## The 5-1-1 rule

A statistics card is highlighted once its part of the rule is met:

- **Avg Interval**: contractions about 5 minutes apart or closer
- **Avg Duration**: each lasting 1 minute or longer
- **Total Time**: the pattern has continued for at least 1 hour

## Saved sets

Press s on the History tab to save the current history under a name.
Saved sets can be loaded back, deleted, or exported as markdown from the
Saved Sets tab.

---

Your data is private and stored only on this device. This app is a timing
tool only and does not provide medical advice. Always consult your
healthcare provider.
`

type Model struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func New() Model {
	m := Model{viewport: viewport.New(0, 0)}
	m.Restyle()
	return m
}

// Restyle rebuilds the renderer for the current palette and width.
func (m *Model) Restyle() {
	m.viewport.Style = lipgloss.NewStyle().Foreground(theme.Text)
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(theme.GlamourStyle()),
		glamour.WithWordWrap(m.wrapWidth()),
	)
	if err != nil {
		m.renderer = nil
		m.viewport.SetContent(Content)
		return
	}
	m.renderer = r
	m.viewport.SetContent(m.render())
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if sz, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sz.Width
		m.height = sz.Height
		m.viewport.Width = sz.Width
		m.viewport.Height = sz.Height
		m.Restyle()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m Model) wrapWidth() int {
	if m.width <= 4 {
		return 76
	}
	return m.width - 4
}

func (m Model) render() string {
	if m.renderer == nil {
		return Content
	}
	out, err := m.renderer.Render(Content)
	if err != nil {
		return Content
	}
	return out
}
