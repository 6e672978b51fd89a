package csswatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// entryResolver maps a changed path to the compilation entry file.
type entryResolver interface {
	Resolve(changedPath string) (string, error)
}

// compileRunner executes one compile attempt for an entry file.
type compileRunner interface {
	Invoke(ctx context.Context, entry string) Attempt
}

// Coordinator serializes compile attempts behind a non-reentrant guard.
// A change event arriving while a compile is in flight is dropped, not
// queued, which bounds concurrent compiler subprocesses to exactly one and
// avoids output-file write races when several files change within one
// debounce window.
type Coordinator struct {
	resolver entryResolver
	invoker  compileRunner
	stderr   io.Writer
	busy     atomic.Bool
}

// NewCoordinator wires a resolver and invoker behind the guard. Resolution
// failures are reported on stderr.
func NewCoordinator(resolver entryResolver, invoker compileRunner, stderr io.Writer) *Coordinator {
	return &Coordinator{
		resolver: resolver,
		invoker:  invoker,
		stderr:   stderr,
	}
}

// Trigger runs one compile for a change to changedPath (empty for the
// initial, unhinted attempt). It returns false when the attempt was dropped
// because another compile was in flight. The guard is cleared on every
// outcome, including resolution failure, so the coordinator stays
// triggerable afterwards.
func (c *Coordinator) Trigger(ctx context.Context, changedPath string) (Attempt, bool) {
	if !c.busy.CompareAndSwap(false, true) {
		return Attempt{}, false
	}
	defer c.busy.Store(false)

	start := time.Now()
	entry, err := c.resolver.Resolve(changedPath)
	if err != nil {
		if errors.Is(err, ErrNoEntry) {
			fmt.Fprintf(c.stderr, "%v\n", err)
		} else {
			fmt.Fprintf(c.stderr, "resolving entry file: %v\n", err)
		}
		return Attempt{Duration: time.Since(start), Outcome: OutcomeNoEntry}, true
	}

	return c.invoker.Invoke(ctx, entry), true
}
