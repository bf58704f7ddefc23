package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"labortimer/internal/ui/theme"
)

// PaletteSubmitMsg carries the trimmed command line the user entered.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

type paletteCommand struct {
	name  string
	args  string
	about string
}

// Kept in sync with executePalette in app/model.go.
var paletteCommands = []paletteCommand{
	{"toggle", "", "start or stop a contraction"},
	{"start", "", "begin timing a contraction"},
	{"end", "", "stop the running contraction"},
	{"save", "[name]", "save history as a set"},
	{"clear", "", "clear recorded contractions"},
	{"load", "<set-id>", "replace history with a saved set"},
	{"delete", "<set-id>", "remove a saved set"},
	{"export", "<set-id> [dir]", "write a set to markdown"},
	{"theme", "<system|light|dark>", "change the color theme"},
}

const (
	maxPaletteHints  = 5
	maxPaletteRecall = 20
)

// Palette is a single-line command prompt overlay. Submitted lines are kept
// for recall with up/down.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	recall  []string
	cursor  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "toggle, save Night shift, theme dark…"
	ti.CharLimit = 200
	ti.Prompt = ": "
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the prompt seeded with prefill.
func (p *Palette) Open(prefill string) tea.Cmd {
	p.visible = true
	p.cursor = len(p.recall)
	p.input.SetValue(prefill)
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(line string) {
	if line == "" {
		return
	}
	if n := len(p.recall); n > 0 && p.recall[n-1] == line {
		return
	}
	p.recall = append(p.recall, line)
	if len(p.recall) > maxPaletteRecall {
		p.recall = p.recall[len(p.recall)-maxPaletteRecall:]
	}
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.close()
			p.remember(line)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case "up":
			if p.cursor > 0 {
				p.cursor--
				p.input.SetValue(p.recall[p.cursor])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.cursor < len(p.recall) {
				p.cursor++
				next := ""
				if p.cursor < len(p.recall) {
					next = p.recall[p.cursor]
				}
				p.input.SetValue(next)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// suggestions returns commands whose name starts with the typed word, or the
// exact command once arguments are being typed.
func (p Palette) suggestions() []paletteCommand {
	typed := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	word, _, hasArgs := strings.Cut(typed, " ")
	var out []paletteCommand
	for _, c := range paletteCommands {
		match := strings.HasPrefix(c.name, word)
		if hasArgs {
			match = c.name == word
		}
		if match {
			out = append(out, c)
		}
		if len(out) == maxPaletteHints {
			break
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	lines := []string{theme.Title.Render("Command"), p.input.View()}
	if hints := p.suggestions(); len(hints) > 0 {
		lines = append(lines, "")
		for _, c := range hints {
			usage := strings.TrimSpace(c.name + " " + c.args)
			lines = append(lines, "  "+theme.Hot.Render(usage)+"  "+theme.Muted.Render(c.about))
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Peach).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(w - 2).
		Render(strings.Join(lines, "\n"))
}
