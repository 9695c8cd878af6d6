package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/lore/core"
	"github.com/poiesic/lore/extract"
)

// Extractor is a test double for extract.Extractor.
// It allows custom behavior injection via function fields.
type Extractor struct {
	// ExtractFunc is called by Extract if set.
	// If nil, the source content is returned verbatim.
	ExtractFunc func(ctx context.Context, source *core.Source) extract.Result

	calls atomic.Int64
}

// NewExtractor creates a mock extractor with passthrough behavior.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the injected behavior's result, or passes the source
// content through with a "mock" method tag.
func (m *Extractor) Extract(ctx context.Context, source *core.Source) extract.Result {
	m.calls.Add(1)

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, source)
	}
	return extract.Succeed(source.Content, "mock", nil)
}

// CallCount returns the number of Extract invocations.
func (m *Extractor) CallCount() int {
	return int(m.calls.Load())
}
