// Package engine evaluates scene descriptions written in a small Lisp
// dialect. Each evaluation runs in a fresh zygomys sandbox and yields a
// graph.SceneGraph.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/linework/pkg/graph"
)

// EvalError is a problem in user source: a parse error, a runtime error or
// a blocking validation finding. Line is 0 when unknown.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// EvalWarning is advisory; the scene still renders.
type EvalWarning struct {
	Line    int
	Col     int
	Message string
	NodeID  graph.NodeID
}

// EvalResult is what Check returns.
type EvalResult struct {
	Graph    *graph.SceneGraph
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine evaluates scene source. Concurrent calls are allowed, but only
// the most recently started one gets its result; earlier ones fail with
// ErrSuperseded.
type Engine struct {
	// Timeout bounds a single evaluation. Zero means EvalTimeout.
	Timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

func NewEngine() *Engine {
	return &Engine{Timeout: EvalTimeout}
}

// Evaluate is EvaluateContext with a background context.
func (e *Engine) Evaluate(source string) (*graph.SceneGraph, []EvalError, error) {
	return e.EvaluateContext(context.Background(), source)
}

// EvaluateContext evaluates source into a new graph.
//
// Problems in the source come back as EvalErrors with a nil graph. The
// error result is reserved for timeouts, cancellation, supersession and
// interpreter panics.
func (e *Engine) EvaluateContext(ctx context.Context, source string) (*graph.SceneGraph, []EvalError, error) {
	gen := e.begin()
	ctx, cancel := context.WithTimeout(ctx, e.timeout())
	defer cancel()

	ch := make(chan evalResult, 1)
	go func() {
		var res evalResult
		defer func() {
			if r := recover(); r != nil {
				res = evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
			ch <- res
		}()
		res.graph, res.errors = run(source)
	}()
	return e.await(ctx, ch, gen)
}

// Check evaluates source and validates the resulting graph. Blocking
// findings are appended to Errors.
func (e *Engine) Check(ctx context.Context, source string) (EvalResult, error) {
	g, errs, err := e.EvaluateContext(ctx, source)
	if err != nil {
		return EvalResult{}, err
	}
	res := EvalResult{Graph: g, Errors: errs}
	if g == nil {
		return res, nil
	}

	v := graph.ValidateAll(g)
	for _, f := range v.Errors {
		res.Errors = append(res.Errors, EvalError{Message: f.Error()})
	}
	for _, f := range v.Warnings {
		res.Warnings = append(res.Warnings, EvalWarning{Message: f.Message, NodeID: f.NodeID})
	}
	return res, nil
}

// run evaluates source in a sandbox with no filesystem or system access.
func run(source string) (*graph.SceneGraph, []EvalError) {
	g := graph.New()
	if strings.TrimSpace(source) == "" {
		return g, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, g)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err)
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err)
	}
	return g, nil
}

// lineRef finds "Error on line N: msg" or a leading "line N: msg".
var lineRef = regexp.MustCompile(`(?i)(?:^|on )line (\d+):\s*(.*)`)

// parseZygomysError turns an interpreter error into an EvalError, keeping
// the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	m := lineRef.FindStringSubmatch(msg)
	if m == nil {
		return []EvalError{{Message: strings.TrimSpace(msg)}}
	}
	line, _ := strconv.Atoi(m[1])
	return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
}
