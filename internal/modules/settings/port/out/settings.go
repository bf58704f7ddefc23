package out

import (
	"context"

	"labortimer/internal/modules/settings/domain"
)

type ThemeStore interface {
	// Load reports false when no valid preference is stored.
	Load(ctx context.Context) (domain.ThemeMode, bool, error)
	Save(ctx context.Context, mode domain.ThemeMode) error
}
