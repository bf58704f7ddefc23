package service

import (
	"context"
	"reflect"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"labortimer/internal/modules/contraction/domain"
	contractionout "labortimer/internal/modules/contraction/port/out"
	"labortimer/internal/platform/clock"
	"labortimer/internal/platform/id"
)

// ContractionService owns the timer state. Every transition goes through
// Dispatch, which applies the reducer and mirrors the result to storage.
type ContractionService struct {
	mu      sync.Mutex
	state   domain.State
	env     domain.Env
	history contractionout.HistoryStore
	sets    contractionout.SetStore
	active  contractionout.ActiveStore
	logger  hclog.Logger
	// setsErr holds a failed hydration of saved sets. While set, saved sets
	// are never written back so the stored record is not overwritten.
	setsErr error
}

func NewContractionService(clk clock.Clock, idGen id.Generator, history contractionout.HistoryStore, sets contractionout.SetStore, active contractionout.ActiveStore, logger hclog.Logger) *ContractionService {
	return &ContractionService{
		state:   domain.NewState(),
		env:     domain.Env{Clock: clk, IDs: idGen},
		history: history,
		sets:    sets,
		active:  active,
		logger:  logger,
	}
}

// Hydrate reads history, the active record and saved sets from storage.
// A saved-set failure is returned after history hydration completed.
func (s *ContractionService) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.Reduce(s.state, domain.LoadContractions(s.history.Load(ctx)), s.env)
	s.state = domain.Reduce(s.state, domain.RestoreActive(s.active.Load(ctx)), s.env)

	sets, err := s.sets.Load(ctx)
	if err != nil {
		s.setsErr = err
		s.logger.Error("error loading saved sets", "error", err)
		return err
	}
	s.setsErr = nil
	s.state = domain.Reduce(s.state, domain.LoadSets(sets), s.env)
	return nil
}

// SetsErr reports a saved-set hydration failure, if any.
func (s *ContractionService) SetsErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setsErr
}

// Dispatch applies action and persists what changed. Only a saved-set write
// failure is returned; the in-memory transition stands either way.
func (s *ContractionService) Dispatch(ctx context.Context, action domain.Action) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(ctx, action)
}

func (s *ContractionService) dispatchLocked(ctx context.Context, action domain.Action) (domain.State, error) {
	if s.setsErr != nil && touchesSets(action.Kind) {
		return s.state.Clone(), s.setsErr
	}
	prev := s.state
	next := domain.Reduce(prev, action, s.env)
	s.state = next

	if !next.IsLoading && !reflect.DeepEqual(prev.Contractions, next.Contractions) {
		s.history.Save(ctx, next.Contractions)
	}
	if !reflect.DeepEqual(prev.Active, next.Active) {
		s.active.Save(ctx, next.Active)
	}
	var err error
	if !next.IsLoading && !reflect.DeepEqual(prev.SavedSets, next.SavedSets) {
		if err = s.sets.Save(ctx, next.SavedSets); err != nil {
			s.logger.Error("error saving contraction sets", "error", err)
		}
	}
	s.logger.Debug("dispatched", "action", string(action.Kind), "contractions", len(next.Contractions), "active", next.Active != nil)
	return next.Clone(), err
}

// ClearHistory removes the stored history before clearing the state.
func (s *ContractionService) ClearHistory(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear(ctx)
	return s.dispatchLocked(ctx, domain.ClearHistory())
}

func (s *ContractionService) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *ContractionService) Now() int64 {
	return clock.Millis(s.env.Clock)
}

func touchesSets(kind domain.ActionKind) bool {
	switch kind {
	case domain.ActionSaveSet, domain.ActionLoadSet, domain.ActionDeleteSet:
		return true
	}
	return false
}
