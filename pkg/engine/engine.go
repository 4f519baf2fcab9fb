// Package engine provides the shape-script evaluation engine. It wraps
// zygomys in a sandboxed environment and produces a scene.Graph from user
// source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/medial/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultShapeName names the root registered for a script that ends in a
// solid expression without calling shape.
const DefaultShapeName = "shape"

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code, or a blocking
// validation finding.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides EvalTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger used for evaluation summaries.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine wraps the zygomys interpreter for shape-script evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration
	log        *zap.Logger
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: EvalTimeout, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate takes shape-script source and produces a new scene graph.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns graph + nil errors + nil error
//   - On parse/eval/validation failure: returns nil graph + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*scene.Graph, []EvalError, error) {
	gen := e.begin()
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: errors.Errorf("panic during evaluation: %v", r)}
			}
		}()
		g, errs, err := e.evaluate(source)
		done <- outcome{graph: g, errs: errs, err: err}
	}()
	return e.await(done, gen)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*scene.Graph, []EvalError, error) {
	// Empty source is a valid program that produces an empty graph.
	if strings.TrimSpace(source) == "" {
		return scene.New(), nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	b := newBuilder()
	registerBuiltins(env, b)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}

	last, err := env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	// A script that builds a solid but never names it still yields one shape.
	if len(b.g.Roots) == 0 {
		if ref, ok := last.(*sexpNodeRef); ok {
			if _, err := b.shape(DefaultShapeName, ref.id); err != nil {
				return nil, []EvalError{{Message: err.Error()}}, nil
			}
		}
	}

	if blocking := scene.Blocking(scene.Validate(b.g)); len(blocking) > 0 {
		evalErrs := make([]EvalError, len(blocking))
		for i, f := range blocking {
			evalErrs[i] = EvalError{Message: f.Error()}
		}
		return nil, evalErrs, nil
	}

	e.log.Debug("evaluated shape script",
		zap.Int("nodes", b.g.NodeCount()),
		zap.Int("shapes", len(b.g.Roots)),
	)
	return b.g, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
