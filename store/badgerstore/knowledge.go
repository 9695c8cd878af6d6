package badgerstore

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/lore/core"
	"github.com/poiesic/lore/store"
)

// Store implements store.KnowledgeStore on top of BadgerDB.
type Store struct {
	backend *Backend
}

var (
	_ store.KnowledgeStore = (*Store)(nil)
	_ store.Searcher       = (*Store)(nil)
)

// Open opens a durable store at the given directory path.
func Open(path string) (*Store, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &Store{backend: backend}, nil
}

// OpenMemory opens an ephemeral in-process BadgerDB store, mainly for tests.
func OpenMemory() (*Store, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return &Store{backend: backend}, nil
}

// Put stores an entry, replacing any existing entry under the same key.
func (s *Store) Put(ctx context.Context, entry *core.KnowledgeEntry) error {
	if s.backend.IsClosed() {
		return store.ErrStoreClosed
	}

	value, err := store.MarshalEntry(entry)
	if err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeEntryKey(entry.Key()), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Get retrieves an entry by its composite key.
func (s *Store) Get(ctx context.Context, key core.EntryKey) (*core.KnowledgeEntry, error) {
	if s.backend.IsClosed() {
		return nil, store.ErrStoreClosed
	}

	var result *core.KnowledgeEntry
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readEntry(tx, makeEntryKey(key))
		if err != nil {
			return err
		}
		if result == nil {
			return store.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// Delete removes the entry under the key, reporting whether one existed.
func (s *Store) Delete(ctx context.Context, key core.EntryKey) (bool, error) {
	if s.backend.IsClosed() {
		return false, store.ErrStoreClosed
	}

	var removed bool
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		storageKey := makeEntryKey(key)

		_, err := tx.Get(storageKey)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(storageKey); err != nil {
			return err
		}
		removed = true
		return tx.Commit()
	}, true)
	return removed, err
}

// EntriesByTenant retrieves all entries belonging to a tenant using a
// prefix scan over the tenant's key range.
func (s *Store) EntriesByTenant(ctx context.Context, tenant string) ([]*core.KnowledgeEntry, error) {
	if s.backend.IsClosed() {
		return nil, store.ErrStoreClosed
	}

	var results []*core.KnowledgeEntry
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeTenantPrefix(tenant)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.KnowledgeEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = store.UnmarshalEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			// The prefix scan is over the rendered composite key, so a tenant
			// name that prefixes another could match a stranger's entries.
			// The stored tenant field is authoritative.
			if entry.Tenant != tenant {
				continue
			}
			results = append(results, entry)
		}
		return nil
	}, false)

	return results, err
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

		// Cosine similarity (dot product for normalized vectors)
		similarity := store.DotProduct(vector, entry.Embedding.Vector)
		if similarity >= minSimilarity {
			results = append(results, &core.SearchResult{
				Entry: entry,
				Score: similarity,
			})
		}
	}

	// Sort by similarity descending
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

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.backend.Close()
}

// readEntry reads an entry from the transaction.
// Returns nil without error when the key does not exist.
func readEntry(tx *badger.Txn, key []byte) (*core.KnowledgeEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.KnowledgeEntry
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		entry, unmarshalErr = store.UnmarshalEntry(val)
		return unmarshalErr
	})
	return entry, err
}
