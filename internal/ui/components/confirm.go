package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"labortimer/internal/ui/theme"
)

// ConfirmMsg reports the answer to a Confirm dialog. Action and Target echo
// what the dialog was opened with.
type ConfirmMsg struct {
	Action   string
	Target   string
	Accepted bool
}

// Confirm is a yes/no dialog guarding destructive actions.
type Confirm struct {
	title   string
	body    string
	verb    string
	action  string
	target  string
	visible bool
	width   int
}

func NewConfirm() Confirm { return Confirm{} }

func (c Confirm) Visible() bool { return c.visible }

func (c *Confirm) SetWidth(w int) { c.width = w }

// Ask opens the dialog. verb labels the accepting key, e.g. "Clear".
func (c *Confirm) Ask(title, body, verb, action, target string) {
	c.title, c.body, c.verb = title, body, verb
	c.action, c.target = action, target
	c.visible = true
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	var accepted bool
	switch strings.ToLower(key.String()) {
	case "y", "enter":
		accepted = true
	case "n", "esc", "q":
		accepted = false
	default:
		return c, nil
	}
	c.visible = false
	out := ConfirmMsg{Action: c.action, Target: c.target, Accepted: accepted}
	return c, func() tea.Msg { return out }
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(c.title) + "\n\n")
	sb.WriteString(c.body + "\n\n")
	sb.WriteString(theme.Danger.Render("y/enter: "+c.verb) + "   " + theme.Muted.Render("n/esc: Cancel"))

	w := c.width
	if w < 20 {
		w = 56
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Red).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1, 2).
		Width(w - 2).
		Render(sb.String())
}
