package service_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"labortimer/internal/modules/contraction/domain"
	"labortimer/internal/modules/contraction/service"
	apperrors "labortimer/internal/platform/errors"
	"labortimer/internal/platform/logging"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "c" + strconv.Itoa(s.n)
}

type fakeHistory struct {
	stored  []domain.Contraction
	saves   int
	cleared int
}

func (f *fakeHistory) Load(context.Context) []domain.Contraction { return f.stored }
func (f *fakeHistory) Save(_ context.Context, list []domain.Contraction) {
	f.saves++
	f.stored = list
}
func (f *fakeHistory) Clear(context.Context) {
	f.cleared++
	f.stored = nil
}

type fakeSets struct {
	stored  []domain.ContractionSet
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeSets) Load(context.Context) ([]domain.ContractionSet, error) {
	return f.stored, f.loadErr
}
func (f *fakeSets) Save(_ context.Context, sets []domain.ContractionSet) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = sets
	return nil
}

type fakeActive struct {
	stored *domain.Contraction
	saves  int
}

func (f *fakeActive) Load(context.Context) *domain.Contraction { return f.stored }
func (f *fakeActive) Save(_ context.Context, active *domain.Contraction) {
	f.saves++
	f.stored = active
}

type fixture struct {
	clock   *fakeClock
	history *fakeHistory
	sets    *fakeSets
	active  *fakeActive
	svc     *service.ContractionService
}

func newFixture() *fixture {
	f := &fixture{
		clock:   &fakeClock{now: time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)},
		history: &fakeHistory{},
		sets:    &fakeSets{},
		active:  &fakeActive{},
	}
	f.svc = service.NewContractionService(f.clock, &seqID{}, f.history, f.sets, f.active, logging.Discard())
	return f
}

func TestNewServiceIsLoadingUntilHydrated(t *testing.T) {
	t.Parallel()
	f := newFixture()
	if !f.svc.Snapshot().IsLoading {
		t.Fatalf("expected loading state before hydration")
	}
	if err := f.svc.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if f.svc.Snapshot().IsLoading {
		t.Fatalf("expected hydration to finish loading")
	}
	if f.history.saves != 0 || f.sets.saves != 0 {
		t.Fatalf("hydration must not write back to storage")
	}
}

func TestHydrateRestoresStoredState(t *testing.T) {
	t.Parallel()
	f := newFixture()
	endAt := int64(60000)
	f.history.stored = []domain.Contraction{{ID: "a", StartTime: 0, EndTime: &endAt}}
	f.active.stored = &domain.Contraction{ID: "open", StartTime: 120000}
	f.sets.stored = []domain.ContractionSet{{ID: "s1", Name: "one", Contractions: []domain.Contraction{}}}

	if err := f.svc.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	state := f.svc.Snapshot()
	if len(state.Contractions) != 1 || state.Active == nil || state.Active.ID != "open" || len(state.SavedSets) != 1 {
		t.Fatalf("unexpected hydrated state: %+v", state)
	}
}

func TestDispatchMirrorsHistoryAndActive(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	if err := f.svc.Hydrate(ctx); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	if _, err := f.svc.Dispatch(ctx, domain.StartContraction()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if f.active.stored == nil || f.history.saves != 0 {
		t.Fatalf("start should persist only the active record")
	}

	f.clock.Advance(time.Minute)
	state, err := f.svc.Dispatch(ctx, domain.EndContraction())
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if f.active.stored != nil {
		t.Fatalf("active record should be removed after end")
	}
	if f.history.saves != 1 || len(f.history.stored) != 1 || f.history.stored[0].Duration() != 60000 {
		t.Fatalf("history not mirrored: %+v", f.history.stored)
	}
	if state.Contractions[0].Duration() != 60000 {
		t.Fatalf("unexpected returned state: %+v", state)
	}
	if f.sets.saves != 0 {
		t.Fatalf("sets unchanged, must not be saved")
	}
}

func TestDispatchBeforeHydrationDoesNotOverwriteHistory(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.Dispatch(ctx, domain.StartContraction()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.svc.Dispatch(ctx, domain.EndContraction()); err != nil {
		t.Fatalf("end: %v", err)
	}
	if f.history.saves != 0 {
		t.Fatalf("history must not be written while loading")
	}
}

func TestSaveSetFailureIsReturned(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	if err := f.svc.Hydrate(ctx); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	f.sets.saveErr = apperrors.ErrSetStorage
	state, err := f.svc.Dispatch(ctx, domain.SaveSet("x"))
	if !errors.Is(err, apperrors.ErrSetStorage) {
		t.Fatalf("expected set storage error, got %v", err)
	}
	if len(state.SavedSets) != 1 {
		t.Fatalf("in-memory transition should stand, got %+v", state.SavedSets)
	}
}

func TestFailedSetHydrationBlocksSetWrites(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	f.sets.loadErr = apperrors.ErrSetStorage
	if err := f.svc.Hydrate(ctx); !errors.Is(err, apperrors.ErrSetStorage) {
		t.Fatalf("expected hydration error, got %v", err)
	}
	if f.svc.Snapshot().IsLoading {
		t.Fatalf("history hydration should still complete")
	}
	if _, err := f.svc.Dispatch(ctx, domain.SaveSet("x")); !errors.Is(err, apperrors.ErrSetStorage) {
		t.Fatalf("expected blocked set write, got %v", err)
	}
	if f.sets.saves != 0 {
		t.Fatalf("stored sets must not be overwritten")
	}
	if !errors.Is(f.svc.SetsErr(), apperrors.ErrSetStorage) {
		t.Fatalf("expected sets error to be reported")
	}
	if _, err := f.svc.Dispatch(ctx, domain.StartContraction()); err != nil {
		t.Fatalf("timer actions stay available: %v", err)
	}
}

func TestClearHistoryRemovesStoredKey(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	_ = f.svc.Hydrate(ctx)
	_, _ = f.svc.Dispatch(ctx, domain.StartContraction())
	f.clock.Advance(time.Minute)
	_, _ = f.svc.Dispatch(ctx, domain.EndContraction())
	_, _ = f.svc.Dispatch(ctx, domain.StartContraction())

	state, err := f.svc.ClearHistory(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if f.history.cleared != 1 {
		t.Fatalf("expected stored history to be removed")
	}
	if len(state.Contractions) != 0 || state.Active != nil || f.active.stored != nil {
		t.Fatalf("unexpected state after clear: %+v", state)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	_ = f.svc.Hydrate(ctx)
	_, _ = f.svc.Dispatch(ctx, domain.StartContraction())
	_, _ = f.svc.Dispatch(ctx, domain.EndContraction())

	snap := f.svc.Snapshot()
	snap.Contractions[0].ID = "mutated"
	if f.svc.Snapshot().Contractions[0].ID == "mutated" {
		t.Fatalf("snapshot shares memory with the service state")
	}
}
