package in

import (
	"context"

	"labortimer/internal/modules/contraction/dto"
)

type Usecase interface {
	Load(ctx context.Context) error
	Start(ctx context.Context) (dto.ContractionOutput, error)
	End(ctx context.Context) (dto.ContractionOutput, error)
	Toggle(ctx context.Context) (dto.ToggleOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	History(ctx context.Context) ([]dto.ContractionOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Clear(ctx context.Context) error
	SaveSet(ctx context.Context, input dto.SaveSetInput) (dto.SetOutput, error)
	ListSets(ctx context.Context) ([]dto.SetOutput, error)
	LoadSet(ctx context.Context, setID string) (dto.SetOutput, error)
	DeleteSet(ctx context.Context, setID string) error
	ExportSet(ctx context.Context, input dto.ExportSetInput) (dto.ExportSetOutput, error)
}
