package app_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	contractiondto "labortimer/internal/modules/contraction/dto"
	settingsdto "labortimer/internal/modules/settings/dto"
	"labortimer/internal/ui/app"
	"labortimer/internal/ui/components"
	"labortimer/internal/ui/theme"
	historyview "labortimer/internal/ui/views/history"
)

type fakeContraction struct {
	toggles int
	cleared int
	saved   []string
	loaded  []string
	active  bool
}

func (f *fakeContraction) Toggle(context.Context) (contractiondto.ToggleOutput, error) {
	f.toggles++
	f.active = !f.active
	return contractiondto.ToggleOutput{Started: f.active, Contraction: contractiondto.ContractionOutput{ID: "c1", Index: 1}}, nil
}

func (f *fakeContraction) Start(context.Context) (contractiondto.ContractionOutput, error) {
	f.active = true
	return contractiondto.ContractionOutput{ID: "c1", Index: 1}, nil
}

func (f *fakeContraction) End(context.Context) (contractiondto.ContractionOutput, error) {
	f.active = false
	return contractiondto.ContractionOutput{ID: "c1", Index: 1}, nil
}

func (f *fakeContraction) Status(context.Context) (contractiondto.StatusOutput, error) {
	return contractiondto.StatusOutput{Active: f.active}, nil
}

func (f *fakeContraction) History(context.Context) ([]contractiondto.ContractionOutput, error) {
	return nil, nil
}

func (f *fakeContraction) Stats(context.Context) (contractiondto.StatsOutput, error) {
	return contractiondto.StatsOutput{}, nil
}

func (f *fakeContraction) Clear(context.Context) error {
	f.cleared++
	return nil
}

func (f *fakeContraction) SaveSet(_ context.Context, name string) (contractiondto.SetOutput, error) {
	f.saved = append(f.saved, name)
	return contractiondto.SetOutput{ID: "s1", Name: name, Count: 3}, nil
}

func (f *fakeContraction) ListSets(context.Context) ([]contractiondto.SetOutput, error) {
	return nil, nil
}

func (f *fakeContraction) LoadSet(_ context.Context, setID string) (contractiondto.SetOutput, error) {
	f.loaded = append(f.loaded, setID)
	return contractiondto.SetOutput{ID: setID, Name: "Night"}, nil
}

func (f *fakeContraction) DeleteSet(context.Context, string) error { return nil }

func (f *fakeContraction) ExportSet(_ context.Context, setID, _ string) (contractiondto.ExportSetOutput, error) {
	return contractiondto.ExportSetOutput{Path: "/tmp/" + setID + ".md"}, nil
}

type fakeSettings struct{ mode string }

func (f *fakeSettings) GetTheme(context.Context) (settingsdto.ThemeOutput, error) {
	return settingsdto.ThemeOutput{Mode: f.mode}, nil
}

func (f *fakeSettings) SetTheme(_ context.Context, mode string) (settingsdto.ThemeOutput, error) {
	f.mode = mode
	return settingsdto.ThemeOutput{Mode: mode}, nil
}

func newModel(c *fakeContraction, s *fakeSettings) app.Model {
	m := app.NewModel(context.Background(), c, s, true)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(app.Model)
}

// step applies msg and, when the update yields a command, feeds its
// result back once.
func step(t *testing.T, m app.Model, msg tea.Msg) app.Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(app.Model)
	if cmd == nil {
		return m
	}
	out := cmd()
	if _, isBatch := out.(tea.BatchMsg); isBatch || out == nil {
		return m
	}
	next, _ = m.Update(out)
	return next.(app.Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSpaceTogglesOnTimerTab(t *testing.T) {
	t.Parallel()
	c := &fakeContraction{}
	m := newModel(c, &fakeSettings{mode: "system"})

	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if c.toggles != 1 {
		t.Fatalf("expected one toggle, got %d", c.toggles)
	}
	if !strings.Contains(m.View(), "contraction #1 started") {
		t.Fatalf("expected start status in view:\n%s", m.View())
	}
}

func TestClearHistoryRequiresConfirmation(t *testing.T) {
	t.Parallel()
	c := &fakeContraction{}
	m := newModel(c, &fakeSettings{mode: "system"})
	m = step(t, m, historyview.LoadedMsg{Contractions: []contractiondto.ContractionOutput{{ID: "c1", Index: 1, StartedAt: 1, EndedAt: 2, DurationMS: 1}}})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = step(t, m, runes("c"))
	if !strings.Contains(m.View(), "Clear History") {
		t.Fatalf("expected confirm dialog:\n%s", m.View())
	}
	m = step(t, m, runes("n"))
	if c.cleared != 0 {
		t.Fatalf("cancel must not clear")
	}

	m = step(t, m, runes("c"))
	next, cmd := m.Update(runes("y"))
	m = next.(app.Model)
	confirmed, ok := cmd().(components.ConfirmMsg)
	if !ok || !confirmed.Accepted {
		t.Fatalf("expected accepted confirm, got %#v", confirmed)
	}
	m = step(t, m, confirmed)
	if c.cleared != 1 {
		t.Fatalf("expected history cleared once, got %d", c.cleared)
	}
	if !strings.Contains(m.View(), "history cleared") {
		t.Fatalf("expected cleared status:\n%s", m.View())
	}
}

func TestPaletteSaveAndUnknownCommand(t *testing.T) {
	t.Parallel()
	c := &fakeContraction{}
	m := newModel(c, &fakeSettings{mode: "system"})

	m = step(t, m, components.PaletteSubmitMsg{Input: "save Night shift"})
	if len(c.saved) != 1 || c.saved[0] != "Night shift" {
		t.Fatalf("unexpected saves: %v", c.saved)
	}
	if !strings.Contains(m.View(), `saved "Night shift" (3 contractions)`) {
		t.Fatalf("expected saved status:\n%s", m.View())
	}

	m = step(t, m, components.PaletteSubmitMsg{Input: "bogus"})
	if !strings.Contains(m.View(), "unknown command: bogus") {
		t.Fatalf("expected unknown command status:\n%s", m.View())
	}
}

func TestPaletteThemeSwitchesPalette(t *testing.T) {
	s := &fakeSettings{mode: "system"}
	m := newModel(&fakeContraction{}, s)

	step(t, m, components.PaletteSubmitMsg{Input: "theme light"})
	if s.mode != "light" || theme.Dark() {
		t.Fatalf("expected light theme, mode=%q dark=%v", s.mode, theme.Dark())
	}
	step(t, m, components.PaletteSubmitMsg{Input: "theme system"})
	if s.mode != "system" || !theme.Dark() {
		t.Fatalf("expected system mode to follow dark terminal, mode=%q dark=%v", s.mode, theme.Dark())
	}
}
