package store

import (
	"context"

	"github.com/hyperengineering/statefacts/internal/types"
)

// Store is a key-value document store for fact overlays, keyed by state code.
// Implementations must return copies so callers can mutate results freely.
type Store interface {
	// Get returns the overlay for a state code, or ErrNotFound.
	Get(ctx context.Context, code string) (*types.FactOverlay, error)
	// Put creates or replaces the overlay for doc.StateCode. An empty ID and
	// zero CreatedAt are filled in; UpdatedAt is always refreshed.
	Put(ctx context.Context, doc *types.FactOverlay) error
	// Delete removes the overlay for a state code, or returns ErrNotFound.
	Delete(ctx context.Context, code string) error
	// List returns every overlay ordered by document ID.
	List(ctx context.Context) ([]types.FactOverlay, error)
	// Count returns the number of stored overlays.
	Count(ctx context.Context) (int64, error)
	Close() error
}
