package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts indicates a non-positive attempt budget.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")

	// ErrStoreRequired indicates a nil knowledge store was provided.
	ErrStoreRequired = errors.New("knowledge store is required")

	// ErrEmbedderRequired indicates a nil embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")
)
