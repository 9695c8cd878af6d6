package ingestion

import "errors"

var (
	// ErrStoreRequired indicates a nil knowledge store was provided.
	ErrStoreRequired = errors.New("knowledge store is required")

	// ErrEmbedderRequired indicates a nil embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrRegistryRequired indicates a nil extractor registry was provided.
	ErrRegistryRequired = errors.New("extractor registry is required")

	// ErrProcessorRequired indicates a nil processor was provided.
	ErrProcessorRequired = errors.New("processor is required")

	// ErrNoContent indicates extraction produced no usable text.
	ErrNoContent = errors.New("no content extracted")
)
