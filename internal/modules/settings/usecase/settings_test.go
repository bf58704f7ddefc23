package usecase_test

import (
	"context"
	"errors"
	"testing"

	"labortimer/internal/modules/settings/domain"
	"labortimer/internal/modules/settings/dto"
	"labortimer/internal/modules/settings/service"
	"labortimer/internal/modules/settings/usecase"
	apperrors "labortimer/internal/platform/errors"
	"labortimer/internal/platform/logging"
)

type fakeThemeStore struct {
	mode    domain.ThemeMode
	ok      bool
	loadErr error
}

func (f *fakeThemeStore) Load(context.Context) (domain.ThemeMode, bool, error) {
	return f.mode, f.ok, f.loadErr
}

func (f *fakeThemeStore) Save(_ context.Context, mode domain.ThemeMode) error {
	f.mode, f.ok = mode, true
	return nil
}

func TestThemeDefaultsToSystem(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewSettingsService(&fakeThemeStore{}, logging.Discard()))
	out, err := uc.GetTheme(context.Background())
	if err != nil || out.Mode != "system" || len(out.Modes) != 3 {
		t.Fatalf("unexpected default theme: %+v %v", out, err)
	}

	failing := usecase.NewInteractor(service.NewSettingsService(&fakeThemeStore{loadErr: errors.New("io")}, logging.Discard()))
	if out, _ := failing.GetTheme(context.Background()); out.Mode != "system" {
		t.Fatalf("store failure should fall back to system, got %q", out.Mode)
	}
}

func TestSetThemePersists(t *testing.T) {
	t.Parallel()
	store := &fakeThemeStore{}
	uc := usecase.NewInteractor(service.NewSettingsService(store, logging.Discard()))
	ctx := context.Background()

	out, err := uc.SetTheme(ctx, dto.SetThemeInput{Mode: "Light"})
	if err != nil || out.Mode != "light" {
		t.Fatalf("set theme: %+v %v", out, err)
	}
	if got, _ := uc.GetTheme(ctx); got.Mode != "light" || store.mode != domain.ThemeLight {
		t.Fatalf("theme not persisted: %+v", got)
	}
	if _, err := uc.SetTheme(ctx, dto.SetThemeInput{Mode: "blue"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if store.mode != domain.ThemeLight {
		t.Fatalf("rejected mode must not be stored")
	}
}
