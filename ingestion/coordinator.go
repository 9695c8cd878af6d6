package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/lore/core"
)

const (
	// defaultMaxRetries bounds additional attempts after the first,
	// so a permanently failing source is attempted maxRetries+1 times total.
	defaultMaxRetries = 2

	// defaultRetryDelay is the base delay before the first retry.
	// The delay doubles on each subsequent retry.
	defaultRetryDelay = 1 * time.Second
)

// Coordinator fans out a batch of independent sources to the processor
// concurrently, applying bounded retry per source. One source's failure
// never aborts its siblings or the batch call.
type Coordinator struct {
	processor  *Processor
	pool       *ants.Pool
	retryState *RetryState
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(c *Coordinator) error {
		if size < 1 {
			size = 1
		}

		if c.pool != nil {
			c.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		c.pool = pool
		return nil
	}
}

// WithMaxRetries sets the retry budget: additional attempts after the first.
// Negative values are treated as zero (single attempt, no retry).
func WithMaxRetries(maxRetries int) Option {
	return func(c *Coordinator) error {
		if maxRetries < 0 {
			maxRetries = 0
		}
		c.maxRetries = maxRetries
		return nil
	}
}

// WithRetryDelay sets the base delay before the first retry.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Coordinator) error {
		if delay < 0 {
			delay = 0
		}
		c.retryDelay = delay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCoordinator creates a multi-source coordinator around a processor.
func NewCoordinator(processor *Processor, opts ...Option) (*Coordinator, error) {
	if processor == nil {
		return nil, ErrProcessorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		processor:  processor,
		pool:       pool,
		retryState: NewRetryState(),
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(c); optErr != nil {
			c.Release()
			return nil, optErr
		}
	}

	c.logger = c.logger.With("component", "coordinator")

	return c, nil
}

// RetryState exposes the per-source attempt counters for inspection.
func (c *Coordinator) RetryState() *RetryState {
	return c.retryState
}

// ProcessBatch processes all sources concurrently and waits for every one
// to finish. The returned result is always non-nil: per-source failures,
// including panics escaping a task, are captured as failed outcomes.
// Outcomes[i] corresponds to sources[i].
func (c *Coordinator) ProcessBatch(ctx context.Context, sources []core.Source, tenant, session string) *core.BatchResult {
	c.logger.Info("processing batch", "sources", len(sources), "tenant", tenant, "session", session)

	outcomes := make([]core.ProcessingOutcome, len(sources))
	var wg sync.WaitGroup

	for i := range sources {
		source := sources[i]

		// Bad descriptors are rejected before pipeline entry and never
		// consume retry budget.
		if err := core.ValidateSource(&source); err != nil {
			outcomes[i] = core.ProcessingOutcome{
				SourceID:       source.ID,
				Status:         core.OutcomeFailed,
				Error:          err.Error(),
				RetryAvailable: false,
			}
			continue
		}

		wg.Add(1)
		index := i
		err := c.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("panic in source task", "source", source.ID, "panic", r)
					outcomes[index] = core.ProcessingOutcome{
						SourceID:       source.ID,
						Status:         core.OutcomeFailed,
						Error:          fmt.Sprintf("panic: %v", r),
						RetryAvailable: false,
					}
				}
			}()
			outcomes[index] = c.processWithRetry(ctx, &source, tenant, session)
		})
		if err != nil {
			wg.Done()
			outcomes[i] = core.ProcessingOutcome{
				SourceID:       source.ID,
				Status:         core.OutcomeFailed,
				Error:          err.Error(),
				RetryAvailable: true,
			}
		}
	}

	wg.Wait()

	result := &core.BatchResult{
		ProcessedCount: len(sources),
		Outcomes:       outcomes,
		CompletedAt:    time.Now().UTC(),
	}
	for _, outcome := range outcomes {
		if outcome.Completed() {
			result.SuccessfulCount++
		} else {
			result.FailedCount++
		}
	}

	c.logger.Info("batch complete",
		"processed", result.ProcessedCount,
		"successful", result.SuccessfulCount,
		"failed", result.FailedCount)

	return result
}

// processWithRetry attempts a source up to maxRetries+1 times total.
// The attempt counter is cleared on success and left in place after
// exhaustion. Retry delays grow exponentially from the base delay and
// respect context cancellation.
func (c *Coordinator) processWithRetry(ctx context.Context, source *core.Source, tenant, session string) core.ProcessingOutcome {
	maxAttempts := c.maxRetries + 1

	var outcome core.ProcessingOutcome
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		c.retryState.Increment(source.ID)

		outcome = c.processor.Process(ctx, source, tenant, session)
		if outcome.Completed() {
			if attempt > 1 {
				c.logger.Debug("source succeeded after retry", "source", source.ID, "attempt", attempt)
			}
			c.retryState.Clear(source.ID)
			return outcome
		}

		if !outcome.RetryAvailable || attempt == maxAttempts {
			break
		}

		c.logger.Debug("source failed, will retry",
			"source", source.ID,
			"attempt", attempt,
			"maxAttempts", maxAttempts,
			"err", outcome.Error)

		// Exponential backoff: retryDelay * 2^(attempt-1)
		delay := c.retryDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			outcome.Error = ctx.Err().Error()
			outcome.RetryAvailable = false
			return outcome
		case <-timer.C:
		}
	}

	outcome.RetryAvailable = false
	return outcome
}

// Release releases the worker pool.
// The coordinator should not be used after calling Release.
func (c *Coordinator) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}
