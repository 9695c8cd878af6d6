package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Agent is a named unit of work runnable as a workflow stage.
type Agent interface {
	Name() string
	Run(ctx context.Context, state *State) error
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc struct {
	AgentName string
	RunFunc   func(ctx context.Context, state *State) error
}

// Name returns the agent's name.
func (a AgentFunc) Name() string { return a.AgentName }

// Run calls the wrapped function.
func (a AgentFunc) Run(ctx context.Context, state *State) error {
	return a.RunFunc(ctx, state)
}

// AgentStatus is the last observed state of one agent in a sequence.
type AgentStatus struct {
	Name      string
	Status    Status
	Progress  int
	Error     string
	UpdatedAt time.Time
}

// Runner keeps a registry of named agents and runs them in registration
// order as a sequential workflow. Each agent's last status stays queryable
// after the run, so callers can see how far a failed sequence got.
// Runner is safe for concurrent status queries during a run.
type Runner struct {
	mu       sync.RWMutex
	agents   []Agent
	statuses map[string]AgentStatus
	logger   *slog.Logger
}

// NewRunner creates an empty agent runner.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		statuses: make(map[string]AgentStatus),
		logger:   logger.With("component", "runner"),
	}
}

// Register adds an agent to the sequence. Names must be unique.
func (r *Runner) Register(agent Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.statuses[agent.Name()]; exists {
		return ErrAgentExists
	}

	r.agents = append(r.agents, agent)
	r.statuses[agent.Name()] = AgentStatus{
		Name:      agent.Name(),
		Status:    StatusPending,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

// AgentStatus returns the last observed status of a named agent.
func (r *Runner) AgentStatus(name string) (AgentStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, ok := r.statuses[name]
	return status, ok
}

// AgentNames returns the registered agent names in registration order.
func (r *Runner) AgentNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.agents))
	for i, agent := range r.agents {
		names[i] = agent.Name()
	}
	return names
}

// RunSequence runs all registered agents in order over the state, with the
// engine's fail-fast rules. Agents after a failed one stay pending.
func (r *Runner) RunSequence(ctx context.Context, state *State) (*State, error) {
	r.mu.RLock()
	agents := make([]Agent, len(r.agents))
	copy(agents, r.agents)
	r.mu.RUnlock()

	if len(agents) == 0 {
		return nil, ErrNoAgents
	}

	stages := make([]Stage, len(agents))
	for i, agent := range agents {
		agent := agent
		stages[i] = Stage{
			Name: agent.Name(),
			Run: func(ctx context.Context, st *State) error {
				r.setStatus(agent.Name(), StatusRunning, st.Progress, "")
				err := agent.Run(ctx, st)
				switch {
				case err != nil:
					r.setStatus(agent.Name(), StatusFailed, st.Progress, err.Error())
				case st.Failed():
					r.setStatus(agent.Name(), StatusFailed, st.Progress, st.Error)
				default:
					r.setStatus(agent.Name(), StatusCompleted, st.Progress, "")
				}
				return err
			},
		}
	}

	engine, err := NewEngine(r.logger, stages...)
	if err != nil {
		return nil, err
	}

	return engine.Run(ctx, state), nil
}

func (r *Runner) setStatus(name string, status Status, progress int, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[name] = AgentStatus{
		Name:      name,
		Status:    status,
		Progress:  progress,
		Error:     errMsg,
		UpdatedAt: time.Now().UTC(),
	}
}
