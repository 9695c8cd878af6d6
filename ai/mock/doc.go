// Package mock provides test double implementations of the embedding
// interface.
//
// The mock Embedder lets tests run without external AI services while
// keeping deterministic behavior: by default it derives vectors from a text
// hash, and tests can inject custom behavior through function fields.
//
//	mockEmbedder := mock.NewEmbedder()
//	mockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//	count := mockEmbedder.CallCount()
package mock
