package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/poiesic/lore/core"
	"github.com/poiesic/lore/store"
)

// Store is an in-memory KnowledgeStore backed by a map.
// It is the default backend and the one tests use.
type Store struct {
	mu      sync.RWMutex
	entries map[core.EntryKey]*core.KnowledgeEntry
	closed  bool
}

var (
	_ store.KnowledgeStore = (*Store)(nil)
	_ store.Searcher       = (*Store)(nil)
)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		entries: make(map[core.EntryKey]*core.KnowledgeEntry),
	}
}

// clone deep-copies an entry. The metadata map and embedding vector must
// not be shared between the store and callers, or a caller mutating its
// entry after Put (or a Get result) would reach the stored entry.
func clone(entry *core.KnowledgeEntry) *core.KnowledgeEntry {
	copied := *entry
	if entry.Metadata != nil {
		copied.Metadata = make(map[string]string, len(entry.Metadata))
		for k, v := range entry.Metadata {
			copied.Metadata[k] = v
		}
	}
	if entry.Embedding.Vector != nil {
		copied.Embedding.Vector = slices.Clone(entry.Embedding.Vector)
	}
	return &copied
}

// Put stores an entry, replacing any existing entry under the same key.
func (s *Store) Put(ctx context.Context, entry *core.KnowledgeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrStoreClosed
	}

	stored := clone(entry)
	s.entries[stored.Key()] = stored
	return nil
}

// Get retrieves an entry by its composite key.
func (s *Store) Get(ctx context.Context, key core.EntryKey) (*core.KnowledgeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrStoreClosed
	}

	entry, ok := s.entries[key]
	if !ok {
		return nil, store.ErrNotFound
	}

	return clone(entry), nil
}

// Delete removes the entry under the key, reporting whether one existed.
func (s *Store) Delete(ctx context.Context, key core.EntryKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, store.ErrStoreClosed
	}

	_, ok := s.entries[key]
	if !ok {
		return false, nil
	}

	delete(s.entries, key)
	return true, nil
}

// EntriesByTenant retrieves all entries belonging to a tenant.
func (s *Store) EntriesByTenant(ctx context.Context, tenant string) ([]*core.KnowledgeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrStoreClosed
	}

	var results []*core.KnowledgeEntry
	for key, entry := range s.entries {
		if key.Tenant != tenant {
			continue
		}
		results = append(results, clone(entry))
	}
	return results, nil
}

// StatsByTenant computes the aggregate view of a tenant's entries.
func (s *Store) StatsByTenant(ctx context.Context, tenant string) (*core.TenantStats, error) {
	entries, err := s.EntriesByTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return store.ComputeTenantStats(entries), nil
}

// FindSimilar finds a tenant's entries similar to the given vector.
func (s *Store) FindSimilar(ctx context.Context, tenant string, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	entries, err := s.EntriesByTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}

	var results []*core.SearchResult
	for _, entry := range entries {
		if len(entry.Embedding.Vector) == 0 {
			continue
		}
		similarity := store.DotProduct(vector, entry.Embedding.Vector)
		if similarity >= minSimilarity {
			results = append(results, &core.SearchResult{Entry: entry, Score: similarity})
		}
	}

	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// Close marks the store closed. Further operations return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.entries = nil
	return nil
}
