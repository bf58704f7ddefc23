package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	contractiondto "labortimer/internal/modules/contraction/dto"
	settingsdto "labortimer/internal/modules/settings/dto"
	apperrors "labortimer/internal/platform/errors"
	"labortimer/internal/ui/components"
	"labortimer/internal/ui/theme"
	guideview "labortimer/internal/ui/views/guide"
	historyview "labortimer/internal/ui/views/history"
	setsview "labortimer/internal/ui/views/sets"
	settingsview "labortimer/internal/ui/views/settings"
	timerview "labortimer/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type contractionPort interface {
	Toggle(ctx context.Context) (contractiondto.ToggleOutput, error)
	Start(ctx context.Context) (contractiondto.ContractionOutput, error)
	End(ctx context.Context) (contractiondto.ContractionOutput, error)
	Status(ctx context.Context) (contractiondto.StatusOutput, error)
	History(ctx context.Context) ([]contractiondto.ContractionOutput, error)
	Stats(ctx context.Context) (contractiondto.StatsOutput, error)
	Clear(ctx context.Context) error
	SaveSet(ctx context.Context, name string) (contractiondto.SetOutput, error)
	ListSets(ctx context.Context) ([]contractiondto.SetOutput, error)
	LoadSet(ctx context.Context, setID string) (contractiondto.SetOutput, error)
	DeleteSet(ctx context.Context, setID string) error
	ExportSet(ctx context.Context, setID, dir string) (contractiondto.ExportSetOutput, error)
}

type settingsPort interface {
	GetTheme(ctx context.Context) (settingsdto.ThemeOutput, error)
	SetTheme(ctx context.Context, mode string) (settingsdto.ThemeOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabHistory
	tabSets
	tabSettings
	tabGuide
	tabCount
)

var tabLabels = [tabCount]string{
	"Timer", "History", "Saved Sets", "Settings", "Guide",
}

// ─── async messages ───────────────────────────────────────────────────────────

// actionDoneMsg reports a finished mutation. Views are reloaded afterwards
// whether or not it failed, since a failed set write still changes memory.
type actionDoneMsg struct {
	status   string
	err      error
	switchTo *tabID
}

type themeMsg struct {
	mode string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Save    key.Binding
	Clear   key.Binding
	Load    key.Binding
	Delete  key.Binding
	Export  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop contraction")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save set (history)")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear history (history)")),
		Load:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load set (saved sets)")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete set (saved sets)")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export set (saved sets)")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle},
		{k.Save, k.Clear},
		{k.Load, k.Delete, k.Export},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// the command palette and confirmation dialogs. Mutations go through the
// contraction port; rendering is delegated to sub-views.
type Model struct {
	ctx        context.Context
	systemDark bool

	contraction contractionPort
	settings    settingsPort

	timerView    timerview.Model
	historyView  historyview.Model
	setsView     setsview.Model
	settingsView settingsview.Model
	guideView    guideview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	confirm   components.Confirm
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(ctx context.Context, contraction contractionPort, settings settingsPort, systemDark bool) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{
		ctx:          ctx,
		systemDark:   systemDark,
		contraction:  contraction,
		settings:     settings,
		timerView:    timerview.New(contraction),
		historyView:  historyview.New(contraction),
		setsView:     setsview.New(contraction),
		settingsView: settingsview.New(settings),
		guideView:    guideview.New(),
		activeTab:    tabTimer,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		confirm:      components.NewConfirm(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadThemeCmd(),
		m.timerView.Init(),
		m.historyView.Init(),
		m.setsView.Init(),
		m.settingsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Overlays intercept all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}
	if m.confirm.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.confirm.SetWidth(min(m.width-4, 64))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case themeMsg:
		if msg.err != nil {
			m.status = "theme: " + msg.err.Error()
			return m, nil
		}
		m.applyTheme(msg.mode)
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(settingsview.LoadedMsg{Theme: settingsdto.ThemeOutput{Mode: msg.mode}})
		return m, cmd

	case actionDoneMsg:
		if msg.err != nil {
			m.status = describeError(msg.err)
		} else {
			m.status = msg.status
		}
		if msg.switchTo != nil {
			m.activeTab = *msg.switchTo
		}
		return m, m.refreshCmd()

	case settingsview.ChooseThemeMsg:
		return m, m.setThemeCmd(msg.Mode)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case components.ConfirmMsg:
		if !msg.Accepted {
			m.status = "cancelled"
			return m, nil
		}
		return m, m.confirmedCmd(msg.Action, msg.Target)

	// Sub-view results are routed to their owner regardless of the active tab.
	case timerview.LoadedMsg, timerview.TickMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd

	case historyview.LoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case setsview.LoadedMsg:
		if msg.Err != nil {
			m.status = describeError(msg.Err)
		}
		var cmd tea.Cmd
		m.setsView, cmd = m.setsView.Update(msg)
		return m, cmd

	case settingsview.LoadedMsg:
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.activeTab == tabSets && m.setsView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open("")
		}

		switch m.activeTab {
		case tabTimer:
			switch msg.String() {
			case " ", "enter":
				return m, m.toggleCmd()
			}
		case tabHistory:
			switch msg.String() {
			case "s":
				return m, m.palette.Open("save ")
			case "c":
				if m.historyView.Count() == 0 {
					m.status = "history is already empty"
					return m, nil
				}
				m.confirm.Ask("Clear History", "Are you sure you want to clear all recorded contractions?", "Clear", "clear", "")
				return m, nil
			}
		case tabSets:
			set, ok := m.setsView.Selected()
			switch msg.String() {
			case "enter":
				if ok {
					m.confirm.Ask("Load Set", fmt.Sprintf("Load %q? This will replace your current contractions.", set.Name), "Load", "load", set.ID)
				}
				return m, nil
			case "d":
				if ok {
					m.confirm.Ask("Delete Set", fmt.Sprintf("Delete %q? This cannot be undone.", set.Name), "Delete", "delete", set.ID)
				}
				return m, nil
			case "e":
				if ok {
					return m, m.exportCmd(set.ID, "")
				}
				return m, nil
			}
		}
	}

	// Propagate the remaining message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	case tabSets:
		m.setsView, tabCmd = m.setsView.Update(msg)
	case tabSettings:
		m.settingsView, tabCmd = m.settingsView.Update(msg)
	case tabGuide:
		m.guideView, tabCmd = m.guideView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.confirm.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabHistory:
		return m.historyView.View()
	case tabSets:
		return m.setsView.View()
	case tabSettings:
		return m.settingsView.View()
	case tabGuide:
		return m.guideView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "labortimer  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.timerView.Active() {
		left = theme.Danger.Render("● contraction in progress") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "toggle":
		return m, m.toggleCmd()
	case "start":
		return m, m.startCmd()
	case "end":
		return m, m.endCmd()
	case "save":
		return m, m.saveSetCmd(rest)
	case "clear":
		m.confirm.Ask("Clear History", "Are you sure you want to clear all recorded contractions?", "Clear", "clear", "")
		return m, nil
	case "load":
		if len(parts) < 2 {
			m.status = "usage: load <set-id>"
			return m, nil
		}
		m.confirm.Ask("Load Set", fmt.Sprintf("Load %s? This will replace your current contractions.", parts[1]), "Load", "load", parts[1])
		return m, nil
	case "delete":
		if len(parts) < 2 {
			m.status = "usage: delete <set-id>"
			return m, nil
		}
		m.confirm.Ask("Delete Set", fmt.Sprintf("Delete %s? This cannot be undone.", parts[1]), "Delete", "delete", parts[1])
		return m, nil
	case "export":
		if len(parts) < 2 {
			m.status = "usage: export <set-id> [dir]"
			return m, nil
		}
		dir := ""
		if len(parts) >= 3 {
			dir = strings.TrimSpace(strings.TrimPrefix(rest, parts[1]))
		}
		return m, m.exportCmd(parts[1], dir)
	case "theme":
		if len(parts) < 2 {
			m.status = "usage: theme <system|light|dark>"
			return m, nil
		}
		return m, m.setThemeCmd(parts[1])
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
	m.setsView, _ = m.setsView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
	m.guideView, _ = m.guideView.Update(sz)
}

func (m *Model) applyTheme(mode string) {
	theme.Use(resolveDark(mode, m.systemDark))
	m.historyView.Restyle()
	m.setsView.Restyle()
	m.guideView.Restyle()
}

// resolveDark maps a stored theme mode to a palette; "system" follows the
// terminal background.
func resolveDark(mode string, systemDark bool) bool {
	switch mode {
	case "light":
		return false
	case "dark":
		return true
	default:
		return systemDark
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrSetStorage):
		return "saved sets: " + err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return "not found: " + err.Error()
	default:
		return "error: " + err.Error()
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return tea.Batch(
		m.timerView.Refresh(),
		m.historyView.Refresh(),
		m.setsView.Refresh(),
	)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadThemeCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.settings.GetTheme(m.ctx)
		return themeMsg{mode: out.Mode, err: err}
	}
}

func (m Model) setThemeCmd(mode string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.settings.SetTheme(m.ctx, mode)
		return themeMsg{mode: out.Mode, err: err}
	}
}

func (m Model) toggleCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.contraction.Toggle(m.ctx)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		if out.Started {
			return actionDoneMsg{status: fmt.Sprintf("contraction #%d started", out.Contraction.Index)}
		}
		return actionDoneMsg{status: fmt.Sprintf("contraction #%d recorded", out.Contraction.Index)}
	}
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.contraction.Start(m.ctx)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("contraction #%d started", out.Index)}
	}
}

func (m Model) endCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.contraction.End(m.ctx)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("contraction #%d recorded", out.Index)}
	}
}

func (m Model) saveSetCmd(name string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.contraction.SaveSet(m.ctx, name)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("saved %q (%d contractions)", out.Name, out.Count)}
	}
}

func (m Model) exportCmd(setID, dir string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.contraction.ExportSet(m.ctx, setID, dir)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "exported " + out.Path}
	}
}

func (m Model) confirmedCmd(action, target string) tea.Cmd {
	return func() tea.Msg {
		switch action {
		case "clear":
			if err := m.contraction.Clear(m.ctx); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{status: "history cleared"}
		case "load":
			out, err := m.contraction.LoadSet(m.ctx, target)
			if err != nil {
				return actionDoneMsg{err: err}
			}
			home := tabTimer
			return actionDoneMsg{status: fmt.Sprintf("loaded %q", out.Name), switchTo: &home}
		case "delete":
			if err := m.contraction.DeleteSet(m.ctx, target); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{status: "set deleted"}
		}
		return actionDoneMsg{err: fmt.Errorf("%w: unknown action %s", apperrors.ErrInvalidInput, action)}
	}
}
