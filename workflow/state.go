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


package workflow

import "time"

// Status is the lifecycle state of a workflow instance.
type Status string

const (
	// StatusPending means the workflow has not started yet.
	StatusPending Status = "pending"
	// StatusRunning means stages are executing.
	StatusRunning Status = "running"
	// StatusCompleted means every stage finished.
	StatusCompleted Status = "completed"
	// StatusFailed means a stage failed and remaining stages were skipped.
	StatusFailed Status = "failed"
)

// State is the shared mutable state a workflow's stages operate on.
// Stages append to Results and Metadata and advance Progress; they never
// remove what earlier stages wrote, so a failed run still carries the
// partial results of the stages that did complete.
//
// State is owned by a single workflow run and is not safe for concurrent
// mutation; the engine executes stages strictly in sequence.
type State struct {
	SessionID string
	ReportID  string
	UserID    string
	Status    Status
	Progress  int
	Results   map[string]any
	Metadata  map[string]any
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewState creates a pending workflow state for one session.
func NewState(sessionID, reportID, userID string) *State {
	now := time.Now().UTC()
	return &State{
		SessionID: sessionID,
		ReportID:  reportID,
		UserID:    userID,
		Status:    StatusPending,
		Results:   make(map[string]any),
		Metadata:  make(map[string]any),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetProgress advances progress toward 100. Progress is monotonic: a stage
// reporting a lower value than already recorded is ignored, and values are
// clamped to [0, 100].
func (s *State) SetProgress(progress int) {
	if progress > 100 {
		progress = 100
	}
	if progress <= s.Progress {
		return
	}
	s.Progress = progress
	s.touch()
}

// Fail marks the workflow failed with an error message.
func (s *State) Fail(message string) {
	s.Status = StatusFailed
	s.Error = message
	s.touch()
}

// Failed reports whether the workflow has been marked failed.
func (s *State) Failed() bool {
	return s.Status == StatusFailed
}

func (s *State) touch() {
	s.UpdatedAt = time.Now().UTC()
}
