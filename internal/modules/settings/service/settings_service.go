package service

import (
	"context"

	hclog "github.com/hashicorp/go-hclog"

	"labortimer/internal/modules/settings/domain"
	settingsout "labortimer/internal/modules/settings/port/out"
)

type SettingsService struct {
	store  settingsout.ThemeStore
	logger hclog.Logger
}

func NewSettingsService(store settingsout.ThemeStore, logger hclog.Logger) *SettingsService {
	return &SettingsService{store: store, logger: logger}
}

// Theme falls back to ThemeSystem when nothing usable is stored or the
// store cannot be read.
func (s *SettingsService) Theme(ctx context.Context) domain.ThemeMode {
	mode, ok, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("error loading theme preference", "error", err)
		return domain.ThemeSystem
	}
	if !ok {
		return domain.ThemeSystem
	}
	return mode
}

func (s *SettingsService) SetTheme(ctx context.Context, raw string) (domain.ThemeMode, error) {
	mode, err := domain.ParseThemeMode(raw)
	if err != nil {
		return "", err
	}
	if err := s.store.Save(ctx, mode); err != nil {
		return "", err
	}
	return mode, nil
}
