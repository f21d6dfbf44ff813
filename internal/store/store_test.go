package store

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperengineering/statefacts/internal/types"
)

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// testStoreContract exercises the Store behavior every backend must share.
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "GA")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("PutAssignsIdentity", func(t *testing.T) {
		s := newStore(t)
		doc := &types.FactOverlay{StateCode: "GA", FunFacts: []string{"a"}}
		if err := s.Put(ctx, doc); err != nil {
			t.Fatal(err)
		}
		if doc.ID == "" {
			t.Error("expected ID to be set")
		}
		if doc.CreatedAt.IsZero() || doc.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}
	})

	t.Run("PutThenGet", func(t *testing.T) {
		s := newStore(t)
		doc := &types.FactOverlay{StateCode: "GA", FunFacts: []string{"a", "b"}}
		if err := s.Put(ctx, doc); err != nil {
			t.Fatal(err)
		}

		got, err := s.Get(ctx, "GA")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.ID != doc.ID {
			t.Errorf("ID = %q, want %q", got.ID, doc.ID)
		}
		if len(got.FunFacts) != 2 || got.FunFacts[0] != "a" || got.FunFacts[1] != "b" {
			t.Errorf("FunFacts = %v, want [a b]", got.FunFacts)
		}
	})

	t.Run("PutReplacesKeepsID", func(t *testing.T) {
		s := newStore(t)
		first := &types.FactOverlay{StateCode: "GA", FunFacts: []string{"a"}}
		if err := s.Put(ctx, first); err != nil {
			t.Fatal(err)
		}

		second := &types.FactOverlay{StateCode: "GA", FunFacts: []string{"z"}}
		if err := s.Put(ctx, second); err != nil {
			t.Fatal(err)
		}
		if second.ID != first.ID {
			t.Errorf("ID changed on replace: %q -> %q", first.ID, second.ID)
		}

		got, err := s.Get(ctx, "GA")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.FunFacts) != 1 || got.FunFacts[0] != "z" {
			t.Errorf("FunFacts = %v, want [z]", got.FunFacts)
		}

		n, err := s.Count(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("Count() = %d, want 1", n)
		}
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		s := newStore(t)
		if err := s.Put(ctx, &types.FactOverlay{StateCode: "GA", FunFacts: []string{"a"}}); err != nil {
			t.Fatal(err)
		}

		got, err := s.Get(ctx, "GA")
		if err != nil {
			t.Fatal(err)
		}
		got.FunFacts[0] = "mutated"

		again, err := s.Get(ctx, "GA")
		if err != nil {
			t.Fatal(err)
		}
		if again.FunFacts[0] != "a" {
			t.Errorf("store mutated through Get(): %v", again.FunFacts)
		}
	})

	t.Run("NilFactsStoredAsEmpty", func(t *testing.T) {
		s := newStore(t)
		if err := s.Put(ctx, &types.FactOverlay{StateCode: "OH"}); err != nil {
			t.Fatal(err)
		}
		got, err := s.Get(ctx, "OH")
		if err != nil {
			t.Fatal(err)
		}
		if got.FunFacts == nil || len(got.FunFacts) != 0 {
			t.Errorf("FunFacts = %#v, want empty non-nil slice", got.FunFacts)
		}
	})

	t.Run("EmptyStringsPreserved", func(t *testing.T) {
		s := newStore(t)
		if err := s.Put(ctx, &types.FactOverlay{StateCode: "OH", FunFacts: []string{"", "x", ""}}); err != nil {
			t.Fatal(err)
		}
		got, err := s.Get(ctx, "OH")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.FunFacts) != 3 || got.FunFacts[1] != "x" {
			t.Errorf("FunFacts = %q, want [\"\" x \"\"]", got.FunFacts)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		if err := s.Put(ctx, &types.FactOverlay{StateCode: "GA", FunFacts: []string{"a"}}); err != nil {
			t.Fatal(err)
		}
		if err := s.Delete(ctx, "GA"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := s.Get(ctx, "GA"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
		}
		if err := s.Delete(ctx, "GA"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second Delete() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListOrderedByID", func(t *testing.T) {
		s := newStore(t)
		for _, code := range []string{"TX", "AK", "GA"} {
			if err := s.Put(ctx, &types.FactOverlay{StateCode: code, FunFacts: []string{code}}); err != nil {
				t.Fatal(err)
			}
		}

		docs, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(docs) != 3 {
			t.Fatalf("len(List()) = %d, want 3", len(docs))
		}
		for i := 1; i < len(docs); i++ {
			if docs[i-1].ID >= docs[i].ID {
				t.Errorf("List() not ordered by ID at %d: %q >= %q", i, docs[i-1].ID, docs[i].ID)
			}
		}
	})

	t.Run("ListEmpty", func(t *testing.T) {
		s := newStore(t)
		docs, err := s.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(docs) != 0 {
			t.Errorf("len(List()) = %d, want 0", len(docs))
		}
	})
}
