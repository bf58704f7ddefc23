package kvstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"labortimer/internal/platform/kvstore"
)

func openStore(t *testing.T) *kvstore.SQLiteStore {
	t.Helper()
	store, err := kvstore.OpenSQLite(filepath.Join(t.TempDir(), "nested", "kv.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSetGetOverwriteRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := openStore(t)

	if _, ok, err := store.Get(ctx, "contractions"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%t err=%v", ok, err)
	}
	if err := store.Set(ctx, "contractions", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "contractions", `[{"id":"a"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, ok, err := store.Get(ctx, "contractions")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%t err=%v", ok, err)
	}
	if value != `[{"id":"a"}]` {
		t.Fatalf("expected overwritten value, got %s", value)
	}
	if err := store.Remove(ctx, "contractions"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "contractions"); ok {
		t.Fatalf("key should be gone after remove")
	}
	if err := store.Remove(ctx, "contractions"); err != nil {
		t.Fatalf("removing a missing key must not fail: %v", err)
	}
}

func TestReopenKeepsValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")
	first, err := kvstore.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set(ctx, "themePreference", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	second, err := kvstore.OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	value, ok, err := second.Get(ctx, "themePreference")
	if err != nil || !ok || value != "dark" {
		t.Fatalf("expected persisted value, got %q ok=%t err=%v", value, ok, err)
	}
}
