package settings_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	settingsdto "labortimer/internal/modules/settings/dto"
	"labortimer/internal/ui/views/settings"
)

type fakePort struct{ mode string }

func (f fakePort) GetTheme(context.Context) (settingsdto.ThemeOutput, error) {
	return settingsdto.ThemeOutput{Mode: f.mode, Modes: []string{"system", "light", "dark"}}, nil
}

func TestSettingsViewChoosesMode(t *testing.T) {
	t.Parallel()
	m := settings.New(fakePort{mode: "light"})
	m, _ = m.Update(m.Refresh()())
	if m.Current() != "light" {
		t.Fatalf("expected light, got %q", m.Current())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter should choose a mode")
	}
	if got := cmd().(settings.ChooseThemeMsg); got.Mode != "dark" {
		t.Fatalf("expected dark, got %q", got.Mode)
	}
}
