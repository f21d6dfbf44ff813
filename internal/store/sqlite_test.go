package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hyperengineering/statefacts/internal/types"
	_ "modernc.org/sqlite"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteStore_Contract(t *testing.T) {
	testStoreContract(t, func(t *testing.T) Store {
		return newTestSQLiteStore(t)
	})
}

func TestStore_NewSQLiteStore(t *testing.T) {
	db, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "facts.db")

	db, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := &types.FactOverlay{StateCode: "HI", FunFacts: []string{"volcanoes"}}
	if err := db.Put(ctx, doc); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	got, err := db.Get(ctx, "HI")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != doc.ID {
		t.Errorf("ID = %q, want %q", got.ID, doc.ID)
	}
	if len(got.FunFacts) != 1 || got.FunFacts[0] != "volcanoes" {
		t.Errorf("FunFacts = %v, want [volcanoes]", got.FunFacts)
	}
}

func TestSQLiteStore_PutPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLiteStore(t)

	first := &types.FactOverlay{StateCode: "GA", FunFacts: []string{"a"}}
	if err := db.Put(ctx, first); err != nil {
		t.Fatal(err)
	}

	// A fresh document for the same code must not reset the creation time.
	second := &types.FactOverlay{StateCode: "GA", FunFacts: []string{"b"}}
	if err := db.Put(ctx, second); err != nil {
		t.Fatal(err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", second.CreatedAt, first.CreatedAt)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v < %v", second.UpdatedAt, first.UpdatedAt)
	}
}

func TestSQLiteStore_ClosedReturnsError(t *testing.T) {
	db, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := db.Get(context.Background(), "GA"); err == nil {
		t.Error("expected error from closed store")
	}
	if _, err := db.List(context.Background()); err == nil {
		t.Error("expected error from closed store")
	}
}

func TestSQLiteStore_Maintain(t *testing.T) {
	ctx := context.Background()
	db, err := NewSQLiteStore(filepath.Join(t.TempDir(), "facts.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := db.Put(ctx, &types.FactOverlay{StateCode: "OH", FunFacts: []string{"buckeyes"}}); err != nil {
		t.Fatal(err)
	}
	if err := db.Maintain(ctx); err != nil {
		t.Fatalf("Maintain() error = %v", err)
	}

	got, err := db.Get(ctx, "OH")
	if err != nil {
		t.Fatalf("Get() after Maintain error = %v", err)
	}
	if len(got.FunFacts) != 1 {
		t.Errorf("FunFacts = %v", got.FunFacts)
	}
}
