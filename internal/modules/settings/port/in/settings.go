package in

import (
	"context"

	"labortimer/internal/modules/settings/dto"
)

type Usecase interface {
	GetTheme(ctx context.Context) (dto.ThemeOutput, error)
	SetTheme(ctx context.Context, input dto.SetThemeInput) (dto.ThemeOutput, error)
}
