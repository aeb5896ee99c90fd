package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/KingCobra-dev/goprompt-sub000/internal/gateway"
)

// Command is one optimistic social mutation. Apply runs synchronously before
// the durable write so the session reflects the assumed outcome with zero
// latency; Commit reconciles with the gateway's authoritative verdict;
// Rollback restores the pre-mutation state when the write fails.
type Command struct {
	// Key identifies the (entity, action-kind) pair the command targets,
	// e.g. "heart:<promptID>". Responses are discarded when a newer command
	// for the same key has been issued since.
	Key      string
	Apply    func()
	Do       func(ctx context.Context) (gateway.ToggleAction, error)
	Commit   func(gateway.ToggleAction)
	Rollback func()
}

// Runner executes Commands and guards against out-of-order network
// reconciliation: each key carries a monotonically increasing token, and a
// response is applied only when its token is still the latest issued for
// that key.
type Runner struct {
	mu     sync.Mutex
	tokens map[string]uint64
	log    *zap.Logger
}

// NewRunner creates a Runner
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{tokens: make(map[string]uint64), log: log}
}

// Run executes the command lifecycle: apply optimistically, perform the
// durable write, then commit or roll back. A stale response (the key's
// token moved on while the write was in flight) is discarded entirely —
// the newer command owns the state now.
func (r *Runner) Run(ctx context.Context, cmd Command) error {
	r.mu.Lock()
	r.tokens[cmd.Key]++
	token := r.tokens[cmd.Key]
	r.mu.Unlock()

	cmd.Apply()

	action, err := cmd.Do(ctx)

	r.mu.Lock()
	current := r.tokens[cmd.Key]
	r.mu.Unlock()

	if err != nil {
		if token == current {
			cmd.Rollback()
		} else {
			r.log.Debug("discarding stale failure", zap.String("key", cmd.Key))
		}
		return err
	}

	if token != current {
		r.log.Debug("discarding stale response", zap.String("key", cmd.Key))
		return nil
	}

	if cmd.Commit != nil {
		cmd.Commit(action)
	}
	return nil
}
