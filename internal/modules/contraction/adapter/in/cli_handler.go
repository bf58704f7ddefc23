package in

import (
	"context"

	"labortimer/internal/modules/contraction/dto"
	contractionin "labortimer/internal/modules/contraction/port/in"
)

type CLIHandler struct {
	usecase contractionin.Usecase
}

func NewCLIHandler(usecase contractionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) error {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) Start(ctx context.Context) (dto.ContractionOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) End(ctx context.Context) (dto.ContractionOutput, error) {
	return h.usecase.End(ctx)
}

func (h CLIHandler) Toggle(ctx context.Context) (dto.ToggleOutput, error) {
	return h.usecase.Toggle(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) History(ctx context.Context) ([]dto.ContractionOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}

func (h CLIHandler) SaveSet(ctx context.Context, name string) (dto.SetOutput, error) {
	return h.usecase.SaveSet(ctx, dto.SaveSetInput{Name: name})
}

func (h CLIHandler) ListSets(ctx context.Context) ([]dto.SetOutput, error) {
	return h.usecase.ListSets(ctx)
}

func (h CLIHandler) LoadSet(ctx context.Context, setID string) (dto.SetOutput, error) {
	return h.usecase.LoadSet(ctx, setID)
}

func (h CLIHandler) DeleteSet(ctx context.Context, setID string) error {
	return h.usecase.DeleteSet(ctx, setID)
}

func (h CLIHandler) ExportSet(ctx context.Context, setID, dir string) (dto.ExportSetOutput, error) {
	return h.usecase.ExportSet(ctx, dto.ExportSetInput{SetID: setID, Dir: dir})
}
