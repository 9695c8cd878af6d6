package ai

import (
	"context"
	"math"

	"github.com/poiesic/lore/core"
)

// FingerprintModel identifies vectors produced by the fingerprint embedder.
const FingerprintModel = "fingerprint-embed-v1"

// fingerprintDimension is the fixed vector size of the fingerprint embedder.
const fingerprintDimension = 64

// FingerprintEmbedder derives embedding vectors from the content fingerprint
// rather than calling an external model. Same content, same fingerprint,
// same vector, which makes it the reference implementation of the embedding
// idempotence contract. Vectors carry no semantic meaning; use a real
// embedding service where similarity search matters.
type FingerprintEmbedder struct{}

var _ Embedder = (*FingerprintEmbedder)(nil)

// NewFingerprintEmbedder creates a deterministic hash-derived embedder.
func NewFingerprintEmbedder() *FingerprintEmbedder {
	return &FingerprintEmbedder{}
}

// EmbedText derives a unit vector from the text's content fingerprint.
func (e *FingerprintEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	return expandFingerprint(core.FingerprintContent(text), fingerprintDimension), nil
}

// EmbedTexts derives vectors for each text independently.
func (e *FingerprintEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

// Model returns the fingerprint embedder's model identifier.
func (e *FingerprintEmbedder) Model() string {
	return FingerprintModel
}

// expandFingerprint stretches a hex fingerprint into a normalized vector
// using an LCG seeded from the digest bytes.
func expandFingerprint(fingerprint string, dim int) []float32 {
	var seed uint32
	for i := 0; i < len(fingerprint); i++ {
		seed = seed*31 + uint32(fingerprint[i])
	}

	vector := make([]float32, dim)
	for i := range vector {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	// Normalize to unit length so dot products are cosine similarities
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		norm := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
