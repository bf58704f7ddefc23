package in

import (
	"context"

	"labortimer/internal/modules/settings/dto"
	settingsin "labortimer/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) GetTheme(ctx context.Context) (dto.ThemeOutput, error) {
	return h.usecase.GetTheme(ctx)
}

func (h CLIHandler) SetTheme(ctx context.Context, mode string) (dto.ThemeOutput, error) {
	return h.usecase.SetTheme(ctx, dto.SetThemeInput{Mode: mode})
}
