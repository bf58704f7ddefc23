package out

import (
	"context"
	"fmt"

	"labortimer/internal/modules/settings/domain"
	settingsout "labortimer/internal/modules/settings/port/out"
	"labortimer/internal/platform/kvstore"
)

const ThemeKey = "themePreference"

type KVThemeStore struct {
	kv kvstore.Store
}

func NewKVThemeStore(kv kvstore.Store) settingsout.ThemeStore {
	return &KVThemeStore{kv: kv}
}

func (s *KVThemeStore) Load(ctx context.Context) (domain.ThemeMode, bool, error) {
	raw, ok, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		return "", false, fmt.Errorf("load theme preference: %w", err)
	}
	mode := domain.ThemeMode(raw)
	if !ok || !mode.Valid() {
		return "", false, nil
	}
	return mode, true, nil
}

func (s *KVThemeStore) Save(ctx context.Context, mode domain.ThemeMode) error {
	if err := s.kv.Set(ctx, ThemeKey, string(mode)); err != nil {
		return fmt.Errorf("save theme preference: %w", err)
	}
	return nil
}
