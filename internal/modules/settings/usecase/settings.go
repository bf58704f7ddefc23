package usecase

import (
	"context"

	"labortimer/internal/modules/settings/domain"
	"labortimer/internal/modules/settings/dto"
	settingsin "labortimer/internal/modules/settings/port/in"
	"labortimer/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) GetTheme(ctx context.Context) (dto.ThemeOutput, error) {
	return toThemeOutput(i.svc.Theme(ctx)), nil
}

func (i *Interactor) SetTheme(ctx context.Context, input dto.SetThemeInput) (dto.ThemeOutput, error) {
	mode, err := i.svc.SetTheme(ctx, input.Mode)
	if err != nil {
		return dto.ThemeOutput{}, err
	}
	return toThemeOutput(mode), nil
}

func toThemeOutput(mode domain.ThemeMode) dto.ThemeOutput {
	modes := make([]string, 0, len(domain.ThemeModes))
	for _, m := range domain.ThemeModes {
		modes = append(modes, string(m))
	}
	return dto.ThemeOutput{Mode: string(mode), Modes: modes}
}
