// Package memstore provides an in-memory implementation of
// store.KnowledgeStore. It is the default backend when no database path is
// configured and the backend tests run against.
package memstore
