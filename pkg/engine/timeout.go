package engine

import (
	"time"

	"github.com/chazu/medial/pkg/scene"
	"github.com/pkg/errors"
)

// EvalTimeout is the default limit on one evaluation.
const EvalTimeout = 5 * time.Second

// Fatal evaluation outcomes.
var (
	ErrSuperseded = errors.New("evaluation superseded by newer request")
	ErrTimeout    = errors.New("evaluation timed out")
)

type outcome struct {
	graph *scene.Graph
	errs  []EvalError
	err   error
}

// begin starts a new generation and returns its number.
func (e *Engine) begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

// latest reports whether gen is still the newest generation.
func (e *Engine) latest(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}

// await blocks until done delivers or the engine timeout expires. A
// result that arrives after a newer Evaluate call began is dropped. An
// abandoned evaluation keeps running; done must be buffered so it can
// finish without a reader.
func (e *Engine) await(done <-chan outcome, gen uint64) (*scene.Graph, []EvalError, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil, nil, errors.Wrapf(ErrTimeout, "after %s", e.timeout)
	case o := <-done:
		if !e.latest(gen) {
			return nil, nil, ErrSuperseded
		}
		return o.graph, o.errs, o.err
	}
}
