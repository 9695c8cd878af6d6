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


package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/poiesic/lore/core"
)

// Extractor turns one source into raw text. Implementations must be
// idempotent and side-effect-free on their input; they report failures
// through the returned Result, never by panicking.
type Extractor interface {
	Extract(ctx context.Context, source *core.Source) Result
}

// Func adapts a plain function to the Extractor interface.
type Func func(ctx context.Context, source *core.Source) Result

// Extract calls the wrapped function.
func (f Func) Extract(ctx context.Context, source *core.Source) Result {
	return f(ctx, source)
}

// Registry dispatches sources to extractors by source type. Adding support
// for a new type is a registration, not a code change in the dispatch path.
// Registry is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	extractors map[core.SourceType]Extractor
	logger     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		extractors: make(map[core.SourceType]Extractor),
		logger:     logger.With("component", "extract-registry"),
	}
}

// RegistryConfig configures the extractors wired by NewDefaultRegistry.
type RegistryConfig struct {
	// Transcriber handles media and YouTube sources. Optional; when nil,
	// those sources fail with ErrNoTranscriber.
	Transcriber Transcriber

	// HTTPClient is used for webpage fetches. Optional; when nil, a client
	// with a bounded timeout is used.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// NewDefaultRegistry creates a registry with the built-in extractors for
// document, media, url, and text sources.
func NewDefaultRegistry(cfg RegistryConfig) *Registry {
	r := NewRegistry(cfg.Logger)
	r.Register(core.SourceTypeText, NewTextExtractor())
	r.Register(core.SourceTypeDocument, NewDocumentExtractor())
	r.Register(core.SourceTypeMedia, NewMediaExtractor(cfg.Transcriber))
	r.Register(core.SourceTypeURL, NewURLExtractor(cfg.HTTPClient, cfg.Transcriber))
	return r
}

// Register installs an extractor for a source type, replacing any previous
// registration for that type.
func (r *Registry) Register(t core.SourceType, e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[t] = e
}

// Extract dispatches the source to the extractor registered for its type.
// Unregistered types yield a typed unsupported-type failure. A panicking
// extractor is converted to a failed Result at this boundary so no failure
// mode escapes as an unhandled fault.
func (r *Registry) Extract(ctx context.Context, source *core.Source) (result Result) {
	r.mu.RLock()
	extractor, ok := r.extractors[source.Type]
	r.mu.RUnlock()

	if !ok {
		return Fail(fmt.Errorf("%w: %s", ErrUnsupportedType, source.Type))
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("extractor panicked", "source", source.ID, "type", source.Type.String(), "panic", rec)
			result = Fail(fmt.Errorf("extractor panic: %v", rec))
		}
	}()

	return extractor.Extract(ctx, source)
}
