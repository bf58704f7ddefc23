package out

import (
	"context"

	"labortimer/internal/modules/contraction/domain"
)

// HistoryStore persists the completed history. It is best-effort: failures
// are logged by the implementation and never reach the caller.
type HistoryStore interface {
	Load(ctx context.Context) []domain.Contraction
	Save(ctx context.Context, contractions []domain.Contraction)
	Clear(ctx context.Context)
}

// SetStore persists saved sets. Failures are reported.
type SetStore interface {
	Load(ctx context.Context) ([]domain.ContractionSet, error)
	Save(ctx context.Context, sets []domain.ContractionSet) error
}

// ActiveStore persists the in-progress contraction. Saving nil removes it.
type ActiveStore interface {
	Load(ctx context.Context) *domain.Contraction
	Save(ctx context.Context, active *domain.Contraction)
}

type SetExporter interface {
	Export(ctx context.Context, set domain.ContractionSet, stats domain.Stats, dir string) (string, error)
}
