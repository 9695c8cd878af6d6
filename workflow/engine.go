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

import (
	"context"
	"fmt"
	"log/slog"
)

// Stage is one step of a workflow. Run mutates the shared state: it may
// advance progress, write results or metadata, and report failure either by
// returning an error or by calling state.Fail directly.
type Stage struct {
	Name string
	Run  func(ctx context.Context, state *State) error
}

// Engine executes stages in strict sequence over a single State.
//
// The engine is fail-fast: once a stage fails, every later stage is skipped
// and the run finalizes immediately. It never retries a stage; retry, where
// wanted, belongs to an orchestrator layered outside the engine.
type Engine struct {
	stages []Stage
	logger *slog.Logger
}

// NewEngine creates an engine over an ordered stage list.
func NewEngine(logger *slog.Logger, stages ...Stage) (*Engine, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		stages: stages,
		logger: logger.With("component", "workflow"),
	}, nil
}

// Run executes all stages against the state and returns the same state in
// its terminal status. Run never panics or returns an error: a panicking
// stage and a cancelled context both finalize the state as failed. Partial
// results written by completed stages are preserved.
func (e *Engine) Run(ctx context.Context, state *State) *State {
	state.Status = StatusRunning
	state.touch()

	total := len(e.stages)
	for i, stage := range e.stages {
		select {
		case <-ctx.Done():
			state.Fail(ctx.Err().Error())
		default:
			e.runStage(ctx, stage, state)
		}

		if state.Failed() {
			e.logger.Warn("workflow failed",
				"session", state.SessionID,
				"stage", stage.Name,
				"err", state.Error)
			return state
		}

		state.SetProgress((i + 1) * 100 / total)
	}

	state.Status = StatusCompleted
	state.touch()
	e.logger.Info("workflow completed", "session", state.SessionID, "stages", total)
	return state
}

// runStage executes a single stage, converting panics and returned errors
// into a failed state.
func (e *Engine) runStage(ctx context.Context, stage Stage, state *State) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("stage panicked", "stage", stage.Name, "panic", r)
			state.Fail(fmt.Sprintf("stage %s: panic: %v", stage.Name, r))
		}
	}()

	e.logger.Debug("running stage", "stage", stage.Name, "session", state.SessionID)
	if err := stage.Run(ctx, state); err != nil {
		state.Fail(fmt.Sprintf("stage %s: %s", stage.Name, err.Error()))
	}
}
