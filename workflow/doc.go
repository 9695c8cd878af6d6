// Package workflow provides a generic staged workflow engine.
//
// An Engine executes an ordered list of stages over one shared State.
// Execution is strictly sequential and fail-fast: the first stage to fail
// short-circuits the rest, while results already written by earlier stages
// are preserved on the returned state. A Runner layers a registry of named
// agents on top of the engine and keeps each agent's last status queryable.
package workflow
