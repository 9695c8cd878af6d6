package workflow

import "errors"

var (
	// ErrNoStages indicates an engine was created without stages.
	ErrNoStages = errors.New("at least one stage is required")

	// ErrNoAgents indicates a runner sequence was started with no
	// registered agents.
	ErrNoAgents = errors.New("no agents registered")

	// ErrAgentExists indicates a second registration under the same name.
	ErrAgentExists = errors.New("agent already registered")
)
