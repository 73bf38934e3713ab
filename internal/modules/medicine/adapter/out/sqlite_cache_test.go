package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	medadapter "medtrack/internal/modules/medicine/adapter/out"
	"medtrack/internal/modules/medicine/domain"
	medout "medtrack/internal/modules/medicine/port/out"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

var testSyncTime = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newCache(t *testing.T) medout.Cache {
	t.Helper()
	cache, err := medadapter.NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), fixedClock{at: testSyncTime})
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return cache
}

func TestReplaceAllAndSearch(t *testing.T) {
	t.Parallel()
	cache := newCache(t)
	ctx := context.Background()

	if at, err := cache.LastSync(ctx); err != nil || !at.IsZero() {
		t.Fatalf("fresh cache should have no sync stamp, got %v (%v)", at, err)
	}

	err := cache.ReplaceAll(ctx, []domain.Medicine{
		{ID: 1, Name: "Amoxicillin", GenericName: "amoxicillin", Active: true,
			OpenFDA: map[string][]string{"route": {"ORAL"}}},
		{ID: 2, Name: "Paracetamol", GenericName: "acetaminophen", Active: true},
		{ID: 3, Name: "Ibuprofen", GenericName: "ibuprofen", Active: false},
	})
	if err != nil {
		t.Fatalf("replace all: %v", err)
	}
	if count, err := cache.Count(ctx); err != nil || count != 3 {
		t.Fatalf("expected 3 cached medicines, got %d (%v)", count, err)
	}
	if at, err := cache.LastSync(ctx); err != nil || !at.Equal(testSyncTime) {
		t.Fatalf("expected sync stamp %v, got %v (%v)", testSyncTime, at, err)
	}

	found, err := cache.Search(ctx, "acetamin", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Paracetamol" {
		t.Fatalf("generic-name search failed: %+v", found)
	}

	found, err = cache.Search(ctx, "AMOX", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != 1 {
		t.Fatalf("case-insensitive name search failed: %+v", found)
	}
	if found[0].OpenFDA["route"][0] != "ORAL" {
		t.Fatalf("openfda payload not round-tripped: %+v", found[0].OpenFDA)
	}
}

func TestReplaceAllDropsStaleRows(t *testing.T) {
	t.Parallel()
	cache := newCache(t)
	ctx := context.Background()

	if err := cache.ReplaceAll(ctx, []domain.Medicine{{ID: 1, Name: "Old"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := cache.ReplaceAll(ctx, []domain.Medicine{{ID: 2, Name: "New"}}); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	found, err := cache.Search(ctx, "Old", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("stale row survived refresh: %+v", found)
	}
	if count, err := cache.Count(ctx); err != nil || count != 1 {
		t.Fatalf("expected 1 row after refresh, got %d (%v)", count, err)
	}
}

func TestSearchEmptyQueryListsAll(t *testing.T) {
	t.Parallel()
	cache := newCache(t)
	ctx := context.Background()

	if err := cache.ReplaceAll(ctx, []domain.Medicine{
		{ID: 1, Name: "B-drug"},
		{ID: 2, Name: "A-drug"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	found, err := cache.Search(ctx, "", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 || found[0].Name != "A-drug" {
		t.Fatalf("expected name-ordered full listing, got %+v", found)
	}
}
