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


package lore

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/lore/ai"
	"github.com/poiesic/lore/ai/openai"
	"github.com/poiesic/lore/core"
	"github.com/poiesic/lore/extract"
	"github.com/poiesic/lore/ingestion"
	"github.com/poiesic/lore/store"
	"github.com/poiesic/lore/store/badgerstore"
	"github.com/poiesic/lore/store/memstore"
)

// Service is the top-level entry point: a knowledge store plus the
// ingestion pipeline feeding it.
type Service struct {
	store       store.KnowledgeStore
	registry    *extract.Registry
	embedder    ai.Embedder
	coordinator *ingestion.Coordinator
	logger      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	embedder    ai.Embedder
	aiConfig    *ai.Config
	transcriber extract.Transcriber
	httpClient  *http.Client
	logger      *slog.Logger
	poolSize    int
	maxRetries  int
	retryDelay  time.Duration
	haveRetries bool
}

// WithEmbedder sets the embedder. Default is the deterministic
// fingerprint embedder, which needs no external service.
func WithEmbedder(embedder ai.Embedder) ServiceOption {
	return func(o *serviceOptions) {
		o.embedder = embedder
	}
}

// WithAIConfig wires an OpenAI-compatible embedding service in place of the
// default fingerprint embedder.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithTranscriber sets the transcriber used for media and YouTube sources.
// Without one, those sources fail extraction.
func WithTranscriber(transcriber extract.Transcriber) ServiceOption {
	return func(o *serviceOptions) {
		o.transcriber = transcriber
	}
}

// WithHTTPClient sets the client used for webpage fetches.
func WithHTTPClient(client *http.Client) ServiceOption {
	return func(o *serviceOptions) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithPoolSize sets the coordinator's worker pool size.
func WithPoolSize(size int) ServiceOption {
	return func(o *serviceOptions) {
		o.poolSize = size
	}
}

// WithMaxRetries sets the per-source retry budget: additional attempts
// after the first.
func WithMaxRetries(maxRetries int) ServiceOption {
	return func(o *serviceOptions) {
		o.maxRetries = maxRetries
		o.haveRetries = true
	}
}

// WithRetryDelay sets the base delay before the first retry.
func WithRetryDelay(delay time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.retryDelay = delay
	}
}

// New creates a Service backed by the in-memory store.
func New(opts ...ServiceOption) (*Service, error) {
	return newService(memstore.New(), opts...)
}

// Open creates a Service backed by a durable store at the given path.
func Open(path string, opts ...ServiceOption) (*Service, error) {
	ks, err := badgerstore.Open(path)
	if err != nil {
		return nil, err
	}
	svc, err := newService(ks, opts...)
	if err != nil {
		ks.Close()
		return nil, err
	}
	return svc, nil
}

func newService(ks store.KnowledgeStore, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	embedder := options.embedder
	if embedder == nil && options.aiConfig != nil {
		var err error
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}
	if embedder == nil {
		embedder = ai.NewFingerprintEmbedder()
	}

	registry := extract.NewDefaultRegistry(extract.RegistryConfig{
		Transcriber: options.transcriber,
		HTTPClient:  options.httpClient,
		Logger:      options.logger,
	})

	processor, err := ingestion.NewProcessor(registry, embedder, ks, options.logger)
	if err != nil {
		return nil, err
	}

	var coordinatorOpts []ingestion.Option
	coordinatorOpts = append(coordinatorOpts, ingestion.WithLogger(options.logger))
	if options.poolSize > 0 {
		coordinatorOpts = append(coordinatorOpts, ingestion.WithPoolSize(options.poolSize))
	}
	if options.haveRetries {
		coordinatorOpts = append(coordinatorOpts, ingestion.WithMaxRetries(options.maxRetries))
	}
	if options.retryDelay > 0 {
		coordinatorOpts = append(coordinatorOpts, ingestion.WithRetryDelay(options.retryDelay))
	}

	coordinator, err := ingestion.NewCoordinator(processor, coordinatorOpts...)
	if err != nil {
		return nil, err
	}

	return &Service{
		store:       ks,
		registry:    registry,
		embedder:    embedder,
		coordinator: coordinator,
		logger:      options.logger,
	}, nil
}

// IngestBatch processes an ordered batch of sources for one tenant/session.
// It always returns a result; per-source failures are reported in the
// outcomes, never as an error.
func (s *Service) IngestBatch(ctx context.Context, sources []core.Source, tenant, session string) *core.BatchResult {
	return s.coordinator.ProcessBatch(ctx, sources, tenant, session)
}

// Entry retrieves one stored entry with its content decoded.
func (s *Service) Entry(ctx context.Context, sourceID, tenant, session string) (*core.KnowledgeEntry, error) {
	key := core.EntryKey{Tenant: tenant, SourceID: sourceID, Session: session}
	if err := core.ValidateEntryKey(key); err != nil {
		return nil, err
	}

	entry, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	decoded, err := core.DecodeContent(entry.Content)
	if err != nil {
		return nil, err
	}
	entry.Content = decoded
	return entry, nil
}

// Remove deletes a previously ingested source's entry, reporting whether
// one existed. Removing a source that was never ingested is not an error.
func (s *Service) Remove(ctx context.Context, sourceID, tenant, session string) (bool, error) {
	key := core.EntryKey{Tenant: tenant, SourceID: sourceID, Session: session}
	if err := core.ValidateEntryKey(key); err != nil {
		return false, err
	}
	return s.store.Delete(ctx, key)
}

// Stats returns the aggregate view of one tenant's stored entries.
// It is read-only and never mutates store state.
func (s *Service) Stats(ctx context.Context, tenant string) (*core.TenantStats, error) {
	return s.store.StatsByTenant(ctx, tenant)
}

// Search embeds the query and returns a tenant's most similar entries.
// Available when the backing store supports similarity search.
func (s *Service) Search(ctx context.Context, tenant, query string, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	searcher, ok := s.store.(store.Searcher)
	if !ok {
		return nil, store.ErrSearchUnsupported
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	return searcher.FindSimilar(ctx, tenant, vector, minSimilarity, limit)
}

// Registry exposes the extractor registry so callers can install
// extractors for additional source types.
func (s *Service) Registry() *extract.Registry {
	return s.registry
}

// Store exposes the underlying knowledge store.
func (s *Service) Store() store.KnowledgeStore {
	return s.store
}

// Embedder exposes the embedder the service was configured with.
func (s *Service) Embedder() ai.Embedder {
	return s.embedder
}

// Close releases the coordinator's worker pool and closes the store.
func (s *Service) Close() error {
	s.coordinator.Release()
	return s.store.Close()
}
