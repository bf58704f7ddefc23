package domain_test

import (
	"errors"
	"testing"

	"labortimer/internal/modules/settings/domain"
	apperrors "labortimer/internal/platform/errors"
)

func TestParseThemeMode(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.ThemeMode{
		"system": domain.ThemeSystem,
		" Light": domain.ThemeLight,
		"DARK":   domain.ThemeDark,
	}
	for raw, want := range cases {
		got, err := domain.ParseThemeMode(raw)
		if err != nil || got != want {
			t.Fatalf("parse %q: got %q, %v", raw, got, err)
		}
	}
	if _, err := domain.ParseThemeMode("sepia"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestThemeModeDark(t *testing.T) {
	t.Parallel()
	if !domain.ThemeSystem.Dark(true) || domain.ThemeSystem.Dark(false) {
		t.Fatalf("system mode should follow the terminal")
	}
	if domain.ThemeLight.Dark(true) || !domain.ThemeDark.Dark(false) {
		t.Fatalf("explicit modes ignore the terminal")
	}
}
