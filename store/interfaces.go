package store

import (
	"context"
	"slices"

	"github.com/poiesic/lore/core"
)

// KnowledgeStore provides tenant-scoped persistence for knowledge entries.
// Entries are keyed by the (tenant, source, session) triple; writing to an
// existing key replaces the previous entry. Implementations must be
// thread-safe and support concurrent access.
type KnowledgeStore interface {
	// Put stores an entry under its composite key.
	// A second Put with the same key replaces the earlier entry entirely.
	Put(ctx context.Context, entry *core.KnowledgeEntry) error

	// Get retrieves a single entry by its composite key.
	// Returns ErrNotFound if no entry exists under the key.
	Get(ctx context.Context, key core.EntryKey) (*core.KnowledgeEntry, error)

	// Delete removes the entry under the key.
	// Returns true if an entry was removed, false if none existed.
	// Deleting a missing entry is not an error.
	Delete(ctx context.Context, key core.EntryKey) (bool, error)

	// EntriesByTenant retrieves all entries belonging to a tenant.
	// Other tenants' entries are never visible through this call.
	EntriesByTenant(ctx context.Context, tenant string) ([]*core.KnowledgeEntry, error)

	// StatsByTenant computes the aggregate view of a tenant's entries.
	// A tenant with no entries yields zero-valued stats, not an error.
	StatsByTenant(ctx context.Context, tenant string) (*core.TenantStats, error)

	// Close closes the store backend and releases resources.
	Close() error
}

// Searcher finds stored entries similar to a query vector.
// Backends that hold embeddings implement this alongside KnowledgeStore.
type Searcher interface {
	// FindSimilar returns a tenant's entries with similarity >= minSimilarity,
	// up to limit results, ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, tenant string, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)
}

// DotProduct calculates the dot product of two vectors. For unit vectors
// this is the cosine similarity.
func DotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// ComputeTenantStats aggregates entries into a TenantStats value.
// Shared by backends so stats semantics stay identical across them.
func ComputeTenantStats(entries []*core.KnowledgeEntry) *core.TenantStats {
	stats := &core.TenantStats{
		SourceCount: len(entries),
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		stats.TotalWords += entry.WordCount
		stats.TotalChars += entry.CharCount

		typeName := entry.SourceType.String()
		if !seen[typeName] {
			seen[typeName] = true
			stats.SourceTypes = append(stats.SourceTypes, typeName)
		}

		if entry.StoredAt.After(stats.LastUpdated) {
			stats.LastUpdated = entry.StoredAt
		}
	}

	// Stable order regardless of backend iteration order
	slices.Sort(stats.SourceTypes)

	return stats
}
