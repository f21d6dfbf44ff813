package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hyperengineering/statefacts/internal/types"
	"github.com/oklog/ulid/v2"
)

// MemoryStore is a process-local Store. Contents are lost on exit.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]types.FactOverlay
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]types.FactOverlay)}
}

func cloneOverlay(doc types.FactOverlay) types.FactOverlay {
	facts := make([]string, len(doc.FunFacts))
	copy(facts, doc.FunFacts)
	doc.FunFacts = facts
	return doc
}

// Get returns a copy of the overlay for a state code.
func (m *MemoryStore) Get(ctx context.Context, code string) (*types.FactOverlay, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[code]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneOverlay(doc)
	return &out, nil
}

// Put stores a copy of doc keyed by its state code.
func (m *MemoryStore) Put(ctx context.Context, doc *types.FactOverlay) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := m.docs[doc.StateCode]; ok {
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	}
	if doc.ID == "" {
		doc.ID = ulid.Make().String()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	if doc.FunFacts == nil {
		doc.FunFacts = []string{}
	}

	m.docs[doc.StateCode] = cloneOverlay(*doc)
	return nil
}

// Delete removes the overlay for a state code.
func (m *MemoryStore) Delete(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[code]; !ok {
		return ErrNotFound
	}
	delete(m.docs, code)
	return nil
}

// List returns copies of every overlay ordered by document ID.
func (m *MemoryStore) List(ctx context.Context) ([]types.FactOverlay, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	docs := make([]types.FactOverlay, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, cloneOverlay(doc))
	}
	m.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

// Count returns the number of stored overlays.
func (m *MemoryStore) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.docs)), nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
