// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package store provides the knowledge-store abstraction layer for lore.
//
// This package defines the KnowledgeStore interface that decouples storage
// implementation from business logic. It allows different storage backends
// (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Key Model
//
// Every entry lives under a composite (tenant, source, session) key.
// All read paths are scoped by tenant: a caller asking for one tenant's
// entries or stats can never observe another tenant's data. Writes to an
// existing key replace the stored entry; there is no merge.
//
// # Backends
//
//   - memstore: in-memory map-backed store, used by default and in tests
//   - badgerstore: BadgerDB-backed durable store
//
// # Usage
//
// Create a store instance:
//
//	ks, err := badgerstore.Open("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ks.Close()
//
// Use in tests with in-memory storage:
//
//	ks := memstore.New()
//	defer ks.Close()
//
// # Thread Safety
//
// All store implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All store methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific
// timeout requirements.
package store
