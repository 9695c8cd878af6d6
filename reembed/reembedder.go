// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/lore/ai"
	"github.com/poiesic/lore/core"
	"github.com/poiesic/lore/store"
)

// Config controls reembedding behavior.
type Config struct {
	// ReportInterval is how often progress is reported (every N entries).
	ReportInterval int

	// MaxRetries is the number of attempts made per entry before giving up.
	MaxRetries int

	// RetryDelay is the base delay between retry attempts.
	RetryDelay time.Duration
}

// DefaultConfig returns the default reembedding configuration.
func DefaultConfig() *Config {
	return &Config{
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     time.Second,
	}
}

// Stats summarizes a completed reembedding run.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Elapsed   time.Duration
}

// Reembedder regenerates embeddings for a tenant's stored entries.
// Used after switching embedding models, when every stored vector must be
// rebuilt from the entry content it was derived from.
type Reembedder struct {
	store    store.KnowledgeStore
	embedder ai.Embedder
	config   *Config
	output   io.Writer
	logger   *slog.Logger
}

// NewReembedder creates a reembedder over the given store and embedder.
// output receives progress reports (typically os.Stderr); pass io.Discard
// to suppress them. A nil config uses DefaultConfig.
func NewReembedder(ks store.KnowledgeStore, embedder ai.Embedder, config *Config, output io.Writer) (*Reembedder, error) {
	if ks == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if output == nil {
		output = io.Discard
	}

	return &Reembedder{
		store:    ks,
		embedder: embedder,
		config:   config,
		output:   output,
		logger:   slog.Default().With("component", "reembedder"),
	}, nil
}

// Run regenerates the embedding of every entry belonging to tenant and
// writes the updated entries back under their original keys. Entries whose
// stored content cannot be decoded are skipped, not failed. Returns stats
// for the run; an entry-level failure after all retries counts in
// Stats.Failed but does not stop the run.
func (r *Reembedder) Run(ctx context.Context, tenant string) (*Stats, error) {
	entries, err := r.store.EntriesByTenant(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	stats := &Stats{Total: len(entries)}
	if len(entries) == 0 {
		r.logger.Info("no entries to reembed", "tenant", tenant)
		return stats, nil
	}

	r.logger.Info("starting reembedding",
		"tenant", tenant,
		"entries", len(entries),
		"model", r.embedder.Model())

	tracker := NewProgressTracker(r.output, len(entries), r.config.ReportInterval)
	tracker.Start()

	for i, entry := range entries {
		select {
		case <-ctx.Done():
			stats.Elapsed = tracker.Elapsed()
			return stats, ctx.Err()
		default:
		}

		if err := r.reembedEntry(ctx, entry); err != nil {
			if err == errUndecodable {
				stats.Skipped++
				r.logger.Warn("skipping entry with undecodable content",
					"key", entry.Key().String())
			} else {
				stats.Failed++
				r.logger.Error("failed to reembed entry",
					"key", entry.Key().String(),
					"error", err)
			}
		} else {
			stats.Succeeded++
		}

		tracker.Update(i + 1)
	}

	tracker.Finish()
	stats.Elapsed = tracker.Elapsed()

	r.logger.Info("reembedding complete",
		"tenant", tenant,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"elapsed", stats.Elapsed)

	return stats, nil
}

var errUndecodable = fmt.Errorf("entry content is not decodable")

// reembedEntry regenerates one entry's embedding and persists it.
func (r *Reembedder) reembedEntry(ctx context.Context, entry *core.KnowledgeEntry) error {
	text, err := core.DecodeContent(entry.Content)
	if err != nil {
		return errUndecodable
	}

	var vector []float32
	err = RetryWithBackoff(ctx, r.logger, func() error {
		var embedErr error
		vector, embedErr = r.embedder.EmbedText(ctx, text)
		return embedErr
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("embedding: %w", err)
	}

	entry.Embedding = core.Embedding{
		Vector:      vector,
		Dimension:   len(vector),
		Model:       r.embedder.Model(),
		GeneratedAt: time.Now(),
	}

	if err := r.store.Put(ctx, entry); err != nil {
		return fmt.Errorf("storing: %w", err)
	}

	return nil
}
