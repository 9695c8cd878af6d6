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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/lore/ai"
	"github.com/poiesic/lore/core"
	"github.com/poiesic/lore/extract"
	"github.com/poiesic/lore/normalize"
	"github.com/poiesic/lore/store"
)

// Processor runs one source through the full pipeline:
// extract, normalize, embed, store.
//
// Process never returns a raw error or panics to its caller; every failure
// mode is converted into a failed ProcessingOutcome at this boundary so the
// retry layer can classify it.
type Processor struct {
	registry *extract.Registry
	embedder ai.Embedder
	store    store.KnowledgeStore
	logger   *slog.Logger
}

// NewProcessor creates a source processor.
func NewProcessor(registry *extract.Registry, embedder ai.Embedder, knowledgeStore store.KnowledgeStore, logger *slog.Logger) (*Processor, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if knowledgeStore == nil {
		return nil, ErrStoreRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		registry: registry,
		embedder: embedder,
		store:    knowledgeStore,
		logger:   logger.With("component", "processor"),
	}, nil
}

// Process runs a validated source through extract, normalize, embed, and
// store, returning a terminal outcome for this attempt. Failures are
// retryable; the retry layer decides whether another attempt happens.
func (p *Processor) Process(ctx context.Context, source *core.Source, tenant, session string) (outcome core.ProcessingOutcome) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic during source processing", "source", source.ID, "panic", r)
			outcome = failedOutcome(source.ID, "", fmt.Sprintf("panic: %v", r))
		}
	}()

	result := p.registry.Extract(ctx, source)
	if !result.Success {
		p.logger.Warn("extraction failed", "source", source.ID, "err", result.Error)
		return failedOutcome(source.ID, result.Method, result.Error)
	}

	doc := normalize.Document(result.Content, source)
	if doc.Content == "" {
		return failedOutcome(source.ID, result.Method, ErrNoContent.Error())
	}

	vector, err := p.embedder.EmbedText(ctx, doc.Content)
	if err != nil {
		p.logger.Warn("embedding failed", "source", source.ID, "err", err)
		return failedOutcome(source.ID, result.Method, err.Error())
	}

	now := time.Now().UTC()
	metadata := make(map[string]string, len(result.Metadata)+2)
	for k, v := range result.Metadata {
		metadata[k] = v
	}
	metadata["extraction_method"] = result.Method
	metadata["fingerprint"] = doc.Fingerprint

	entry := &core.KnowledgeEntry{
		SourceID:   source.ID,
		SourceType: source.Type,
		Content:    core.EncodeContent(doc.Content),
		Embedding: core.Embedding{
			Vector:      vector,
			Dimension:   len(vector),
			Model:       p.embedder.Model(),
			GeneratedAt: now,
		},
		Metadata:  metadata,
		WordCount: doc.WordCount,
		CharCount: doc.CharCount,
		Tenant:    tenant,
		Session:   session,
		StoredAt:  now,
		Status:    core.EntryStatusActive,
	}

	if err := p.store.Put(ctx, entry); err != nil {
		p.logger.Warn("store write failed", "source", source.ID, "err", err)
		return failedOutcome(source.ID, result.Method, err.Error())
	}

	p.logger.Info("source processed",
		"source", source.ID,
		"method", result.Method,
		"words", doc.WordCount,
		"key", entry.Key().String())

	return core.ProcessingOutcome{
		SourceID:         source.ID,
		Status:           core.OutcomeCompleted,
		StoreKey:         entry.Key().String(),
		WordCount:        doc.WordCount,
		CharCount:        doc.CharCount,
		ExtractionMethod: result.Method,
	}
}

// failedOutcome builds a retryable failed outcome for one attempt.
func failedOutcome(sourceID, method, errMsg string) core.ProcessingOutcome {
	return core.ProcessingOutcome{
		SourceID:         sourceID,
		Status:           core.OutcomeFailed,
		ExtractionMethod: method,
		Error:            errMsg,
		RetryAvailable:   true,
	}
}
