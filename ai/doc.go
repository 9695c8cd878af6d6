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


// Package ai provides the embedding abstraction used by the ingestion
// pipeline.
//
// The pipeline depends on the Embedder interface only; concrete embedders
// live in sub-packages so the core never couples to a specific service:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// The FingerprintEmbedder in this package is a deterministic hash-derived
// embedder usable without any external service. It exists to make the
// embedding idempotence contract testable: any Embedder implementation must
// return identical vectors for identical input text.
//
// Public constructors of implementation packages return the Embedder
// interface to enforce abstraction; mock constructors return concrete types
// so tests can inject behavior and assert call counts.
package ai
