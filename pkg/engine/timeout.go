package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chazu/linework/pkg/graph"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when evaluation runs past the engine's limit.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned to a caller whose evaluation finished
	// after a newer one had started.
	ErrSuperseded = errors.New("evaluation superseded by a newer request")
)

// evalResult carries one evaluation back from its goroutine.
type evalResult struct {
	graph  *graph.SceneGraph
	errors []EvalError
	err    error
}

func (e *Engine) timeout() time.Duration {
	if e.Timeout <= 0 {
		return EvalTimeout
	}
	return e.Timeout
}

// begin starts a new generation and returns its number.
func (e *Engine) begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

func (e *Engine) isCurrent(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}

// await blocks until ch delivers or ctx ends. The evaluating goroutine is
// not interrupted when ctx ends; ch must be buffered so its late send does
// not block forever.
func (e *Engine) await(ctx context.Context, ch <-chan evalResult, gen uint64) (*graph.SceneGraph, []EvalError, error) {
	select {
	case res := <-ch:
		if !e.isCurrent(gen) {
			return nil, nil, ErrSuperseded
		}
		return res.graph, res.errors, res.err

	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout())
		}
		return nil, nil, ctx.Err()
	}
}
