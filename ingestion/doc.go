// Package ingestion implements the per-source processing pipeline and the
// concurrent multi-source coordinator.
//
// Processor runs one source through extract, normalize, embed, and store,
// converting every failure into a ProcessingOutcome. Coordinator fans out a
// batch of sources over a worker pool with bounded per-source retry, waits
// for all of them, and returns an aggregate BatchResult whose outcome order
// matches the input order.
package ingestion
