package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperengineering/statefacts/internal/types"
)

// Overlays implements the fun-fact document operations on top of a Store.
//
// Every mutation is a read-modify-write of a single document. Concurrent
// writers to the same state code are not serialized; the last Put wins.
type Overlays struct {
	docs Store
}

// NewOverlays wraps a Store.
func NewOverlays(s Store) *Overlays {
	return &Overlays{docs: s}
}

// Store returns the underlying document store.
func (o *Overlays) Store() Store {
	return o.docs
}

// FindAll returns every overlay.
func (o *Overlays) FindAll(ctx context.Context) ([]types.FactOverlay, error) {
	docs, err := o.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list overlays: %w", err)
	}
	return docs, nil
}

// FindOne returns the overlay for a state code, or ErrNotFound.
func (o *Overlays) FindOne(ctx context.Context, code string) (*types.FactOverlay, error) {
	return o.docs.Get(ctx, code)
}

// UpsertAppend appends facts to the overlay for code, creating the overlay
// when it does not exist yet. Existing facts keep their order.
func (o *Overlays) UpsertAppend(ctx context.Context, code string, facts []string) (*types.FactOverlay, error) {
	doc, err := o.docs.Get(ctx, code)
	if errors.Is(err, ErrNotFound) {
		doc = &types.FactOverlay{StateCode: code, FunFacts: []string{}}
	} else if err != nil {
		return nil, fmt.Errorf("load overlay: %w", err)
	}

	doc.FunFacts = append(doc.FunFacts, facts...)

	if err := o.docs.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("save overlay: %w", err)
	}
	return doc, nil
}

// ReplaceAt replaces the fact at a 1-based index.
// Returns ErrNoFacts when the state has no overlay or an empty one, and
// ErrIndexOutOfRange when index-1 falls outside the fact list.
func (o *Overlays) ReplaceAt(ctx context.Context, code string, index int, fact string) (*types.FactOverlay, error) {
	doc, err := o.docs.Get(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoFacts
	}
	if err != nil {
		return nil, fmt.Errorf("load overlay: %w", err)
	}
	if len(doc.FunFacts) == 0 {
		return nil, ErrNoFacts
	}

	slot := index - 1
	if slot < 0 || slot >= len(doc.FunFacts) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(doc.FunFacts))
	}
	doc.FunFacts[slot] = fact

	if err := o.docs.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("save overlay: %w", err)
	}
	return doc, nil
}

// RemoveNullish removes every empty fact from the overlay for code. A
// missing overlay is not an error; it reports zero matched documents.
func (o *Overlays) RemoveNullish(ctx context.Context, code string) (*types.MutationResult, error) {
	result := &types.MutationResult{Acknowledged: true}

	doc, err := o.docs.Get(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load overlay: %w", err)
	}
	result.MatchedCount = 1

	kept := make([]string, 0, len(doc.FunFacts))
	for _, f := range doc.FunFacts {
		if f != "" {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(doc.FunFacts) {
		return result, nil
	}

	doc.FunFacts = kept
	if err := o.docs.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("save overlay: %w", err)
	}
	result.ModifiedCount = 1
	return result, nil
}
