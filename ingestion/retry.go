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


package ingestion

import "sync"

// RetryState tracks per-source attempt counters across one batch.
// Counters are cleared on success and left in place after exhaustion so
// callers can inspect how many attempts a failed source consumed.
// RetryState is safe for concurrent use.
type RetryState struct {
	mu       sync.Mutex
	attempts map[string]int
}

// NewRetryState creates an empty retry state.
func NewRetryState() *RetryState {
	return &RetryState{
		attempts: make(map[string]int),
	}
}

// Increment records one attempt for a source and returns the new count.
func (rs *RetryState) Increment(sourceID string) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.attempts[sourceID]++
	return rs.attempts[sourceID]
}

// Clear removes a source's counter, typically after a successful attempt.
func (rs *RetryState) Clear(sourceID string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.attempts, sourceID)
}

// Attempts returns the attempts recorded for a source, zero if none.
func (rs *RetryState) Attempts(sourceID string) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.attempts[sourceID]
}
