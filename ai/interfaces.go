package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use and must produce
// identical vectors for identical input: the ingestion pipeline fingerprints
// documents and relies on "same fingerprint, same vector" for idempotence.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in input order.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// Model identifies the embedding model, recorded on every stored
	// embedding so entries can be re-embedded after a model change.
	Model() string
}
