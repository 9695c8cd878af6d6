// Package reembed regenerates stored embeddings with a different model.
//
// Embeddings are only comparable within a single model, so switching the
// embedding model invalidates every vector in the store. The Reembedder
// walks a tenant's entries, decodes their stored content, generates fresh
// vectors through the configured embedder, and writes the entries back
// under their original keys. Entry content, metadata, and keys are never
// modified; only the embedding changes.
//
// Transient embedder failures are retried with exponential backoff. An
// entry that still fails after the retry budget is counted and skipped so
// one bad entry cannot abort a long-running pass over a large store.
package reembed
