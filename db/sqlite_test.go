package db

import (
	"context"
	"path/filepath"
	"testing"

	"carprice/catalog"
)

func openTestStore(t *testing.T) *CatalogStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadCatalog(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	cat, _ := catalog.New("v1", []string{"Maruti", "Hyundai", "Honda"})
	if err := store.SaveCatalog(ctx, cat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := store.LoadCatalog(ctx, "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Len() != 3 {
		t.Fatalf("expected 3 brands, got %d", loaded.Len())
	}
	if idx, _ := loaded.Index("Honda"); idx != 3 {
		t.Fatalf("expected Honda at 3, got %d", idx)
	}
}

func TestLoadLatestCatalog(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	v1, _ := catalog.New("v1", []string{"Maruti"})
	v2, _ := catalog.New("v2", []string{"Tata", "Maruti"})
	if err := store.SaveCatalog(ctx, v1); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveCatalog(ctx, v2); err != nil {
		t.Fatal(err)
	}

	latest, err := store.LoadCatalog(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest.Version() != "v2" {
		t.Fatalf("expected v2, got %s", latest.Version())
	}
	versions, err := store.Versions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions) != 2 || versions[0] != "v2" {
		t.Fatalf("unexpected versions: %v", versions)
	}
}

func TestSaveCatalogReplacesVersion(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, _ := catalog.New("v1", []string{"Maruti", "Hyundai"})
	second, _ := catalog.New("v1", []string{"Hyundai"})
	store.SaveCatalog(ctx, first)
	if err := store.SaveCatalog(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := store.LoadCatalog(ctx, "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected 1 brand, got %v", loaded.Brands())
	}
}

func TestLoadMissingCatalog(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.LoadCatalog(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty store")
	}
	if _, err := store.LoadCatalog(context.Background(), "v9"); err == nil {
		t.Fatal("expected error for unknown version")
	}
}
