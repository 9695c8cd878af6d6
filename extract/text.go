package extract

import (
	"context"
	"strconv"
	"strings"

	"github.com/poiesic/lore/core"
)

// MethodDirectText tags content taken verbatim from an inline text source.
const MethodDirectText = "direct_text"

// TextExtractor passes inline text sources through unchanged.
type TextExtractor struct{}

var _ Extractor = (*TextExtractor)(nil)

// NewTextExtractor creates an extractor for inline text sources.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract returns the source content as-is with basic counting metadata.
func (e *TextExtractor) Extract(_ context.Context, source *core.Source) Result {
	content := source.Content
	return Succeed(content, MethodDirectText, map[string]string{
		"word_count": strconv.Itoa(len(strings.Fields(content))),
		"char_count": strconv.Itoa(len(content)),
	})
}
