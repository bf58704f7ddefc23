package usecase

import (
	"context"
	"fmt"
	"strings"

	"labortimer/internal/modules/contraction/domain"
	"labortimer/internal/modules/contraction/dto"
	contractionin "labortimer/internal/modules/contraction/port/in"
	contractionout "labortimer/internal/modules/contraction/port/out"
	"labortimer/internal/modules/contraction/service"
	apperrors "labortimer/internal/platform/errors"
	"labortimer/internal/platform/timefmt"
)

type Interactor struct {
	svc       *service.ContractionService
	exporter  contractionout.SetExporter
	exportDir string
}

func NewInteractor(svc *service.ContractionService, exporter contractionout.SetExporter, exportDir string) contractionin.Usecase {
	return &Interactor{svc: svc, exporter: exporter, exportDir: exportDir}
}

func (i *Interactor) Load(ctx context.Context) error {
	return i.svc.Hydrate(ctx)
}

func (i *Interactor) Start(ctx context.Context) (dto.ContractionOutput, error) {
	state, err := i.svc.Dispatch(ctx, domain.StartContraction())
	if err != nil {
		return dto.ContractionOutput{}, err
	}
	return i.activeOutput(state), nil
}

func (i *Interactor) End(ctx context.Context) (dto.ContractionOutput, error) {
	if i.svc.Snapshot().Active == nil {
		return dto.ContractionOutput{}, apperrors.ErrNoActiveContraction
	}
	state, err := i.svc.Dispatch(ctx, domain.EndContraction())
	if err != nil {
		return dto.ContractionOutput{}, err
	}
	return toContractionOutput(state.Contractions, 0), nil
}

func (i *Interactor) Toggle(ctx context.Context) (dto.ToggleOutput, error) {
	if i.svc.Snapshot().Active != nil {
		out, err := i.End(ctx)
		return dto.ToggleOutput{Started: false, Contraction: out}, err
	}
	out, err := i.Start(ctx)
	return dto.ToggleOutput{Started: true, Contraction: out}, err
}

func (i *Interactor) Status(_ context.Context) (dto.StatusOutput, error) {
	state := i.svc.Snapshot()
	out := dto.StatusOutput{Completed: domain.ComputeStats(state.Contractions).Completed}
	if state.Active != nil {
		out.Active = true
		out.ActiveID = state.Active.ID
		out.StartedAt = state.Active.StartTime
		out.ElapsedMS = i.svc.Now() - state.Active.StartTime
		if out.ElapsedMS < 0 {
			out.ElapsedMS = 0
		}
	}
	return out, nil
}

func (i *Interactor) History(_ context.Context) ([]dto.ContractionOutput, error) {
	return toHistoryOutput(i.svc.Snapshot().Contractions), nil
}

func (i *Interactor) Stats(_ context.Context) (dto.StatsOutput, error) {
	return toStatsOutput(domain.ComputeStats(i.svc.Snapshot().Contractions)), nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	_, err := i.svc.ClearHistory(ctx)
	return err
}

func (i *Interactor) SaveSet(ctx context.Context, input dto.SaveSetInput) (dto.SetOutput, error) {
	if err := i.svc.SetsErr(); err != nil {
		return dto.SetOutput{}, err
	}
	name := domain.DefaultSetName(input.Name, len(i.svc.Snapshot().SavedSets))
	state, err := i.svc.Dispatch(ctx, domain.SaveSet(name))
	if err != nil {
		return dto.SetOutput{}, err
	}
	return toSetOutput(state.SavedSets[0]), nil
}

func (i *Interactor) ListSets(_ context.Context) ([]dto.SetOutput, error) {
	if err := i.svc.SetsErr(); err != nil {
		return nil, err
	}
	sets := i.svc.Snapshot().SavedSets
	out := make([]dto.SetOutput, 0, len(sets))
	for _, set := range sets {
		out = append(out, toSetOutput(set))
	}
	return out, nil
}

func (i *Interactor) LoadSet(ctx context.Context, setID string) (dto.SetOutput, error) {
	set, err := i.findSet(setID)
	if err != nil {
		return dto.SetOutput{}, err
	}
	if _, err := i.svc.Dispatch(ctx, domain.LoadSet(set.ID)); err != nil {
		return dto.SetOutput{}, err
	}
	return toSetOutput(set), nil
}

func (i *Interactor) DeleteSet(ctx context.Context, setID string) error {
	set, err := i.findSet(setID)
	if err != nil {
		return err
	}
	_, err = i.svc.Dispatch(ctx, domain.DeleteSet(set.ID))
	return err
}

func (i *Interactor) ExportSet(ctx context.Context, input dto.ExportSetInput) (dto.ExportSetOutput, error) {
	set, err := i.findSet(input.SetID)
	if err != nil {
		return dto.ExportSetOutput{}, err
	}
	dir := strings.TrimSpace(input.Dir)
	if dir == "" {
		dir = i.exportDir
	}
	if dir == "" {
		return dto.ExportSetOutput{}, fmt.Errorf("%w: export directory is required", apperrors.ErrInvalidInput)
	}
	path, err := i.exporter.Export(ctx, set, domain.ComputeStats(set.Contractions), dir)
	if err != nil {
		return dto.ExportSetOutput{}, err
	}
	return dto.ExportSetOutput{Path: path}, nil
}

func (i *Interactor) findSet(setID string) (domain.ContractionSet, error) {
	if err := i.svc.SetsErr(); err != nil {
		return domain.ContractionSet{}, err
	}
	setID = strings.TrimSpace(setID)
	if setID == "" {
		return domain.ContractionSet{}, fmt.Errorf("%w: set id is required", apperrors.ErrInvalidInput)
	}
	set, ok := i.svc.Snapshot().FindSet(setID)
	if !ok {
		return domain.ContractionSet{}, fmt.Errorf("%w: set %s", apperrors.ErrNotFound, setID)
	}
	return set, nil
}

func (i *Interactor) activeOutput(state domain.State) dto.ContractionOutput {
	if state.Active == nil {
		return dto.ContractionOutput{}
	}
	return dto.ContractionOutput{
		ID:         state.Active.ID,
		Index:      len(state.Contractions) + 1,
		StartedAt:  state.Active.StartTime,
		InProgress: true,
	}
}

func toContractionOutput(list []domain.Contraction, idx int) dto.ContractionOutput {
	c := list[idx]
	out := dto.ContractionOutput{
		ID:         c.ID,
		Index:      len(list) - idx,
		StartedAt:  c.StartTime,
		InProgress: !c.Completed(),
		DurationMS: c.Duration(),
	}
	if c.EndTime != nil {
		out.EndedAt = *c.EndTime
	}
	if gap, ok := domain.IntervalFromPrevious(list, idx); ok {
		out.IntervalMS = gap
		out.HasInterval = true
	}
	return out
}

func toHistoryOutput(list []domain.Contraction) []dto.ContractionOutput {
	out := make([]dto.ContractionOutput, 0, len(list))
	for idx := range list {
		out = append(out, toContractionOutput(list, idx))
	}
	return out
}

func toStatsOutput(stats domain.Stats) dto.StatsOutput {
	out := dto.StatsOutput{
		Completed:     stats.Completed,
		AvgDurationMS: int64(stats.AvgDuration),
		HasInterval:   stats.HasInterval && stats.AvgInterval > 0,
		TotalSpanMS:   stats.TotalSpan,
		AvgDuration:   timefmt.FormatDuration(int64(stats.AvgDuration)),
		TotalSpan:     timefmt.FormatDurationHoursMinutes(stats.TotalSpan),
		IntervalMet:   stats.IntervalMet,
		DurationMet:   stats.DurationMet,
		SpanMet:       stats.SpanMet,
	}
	if out.HasInterval {
		out.AvgIntervalMS = int64(stats.AvgInterval)
		out.AvgInterval = timefmt.FormatDuration(out.AvgIntervalMS)
	}
	return out
}

func toSetOutput(set domain.ContractionSet) dto.SetOutput {
	return dto.SetOutput{ID: set.ID, Name: set.Name, Count: len(set.Contractions), CreatedAt: set.CreatedAt}
}
