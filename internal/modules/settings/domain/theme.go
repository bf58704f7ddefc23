package domain

import (
	"fmt"
	"strings"

	apperrors "labortimer/internal/platform/errors"
)

type ThemeMode string

const (
	ThemeSystem ThemeMode = "system"
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
)

var ThemeModes = []ThemeMode{ThemeSystem, ThemeLight, ThemeDark}

func ParseThemeMode(raw string) (ThemeMode, error) {
	mode := ThemeMode(strings.ToLower(strings.TrimSpace(raw)))
	if mode.Valid() {
		return mode, nil
	}
	return "", fmt.Errorf("%w: theme mode %q (want system, light or dark)", apperrors.ErrInvalidInput, raw)
}

func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}

// Dark resolves the mode to a palette. systemDark is the terminal's answer
// for ThemeSystem.
func (m ThemeMode) Dark(systemDark bool) bool {
	switch m {
	case ThemeLight:
		return false
	case ThemeDark:
		return true
	default:
		return systemDark
	}
}
