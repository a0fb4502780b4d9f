// Package engine evaluates building scripts. A script is a zygomys Lisp
// program that declares buildings with the `building` builtin; evaluating
// it yields one plan.Plan per declaration. Every evaluation runs in a fresh
// sandbox so scripts cannot touch the filesystem and results are
// deterministic.
package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/envelope/pkg/plan"
)

// Fatal evaluation errors.
var (
	ErrTimeout    = errors.New("evaluation timed out")
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code, or a building that
// fails validation.
type EvalError struct {
	Line     int
	Col      int
	Message  string
	Building string // set for validation errors
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning represents a non-fatal warning about an evaluated building.
type EvalWarning struct {
	Line     int
	Col      int
	Message  string
	Building string
}

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: EvalTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs a building script and returns the plans it declares, in
// declaration order.
//
// Return semantics:
//   - On success: returns plans (empty, non-nil for an empty script) + nil errors + nil error
//   - On parse/eval/validation failure: returns nil plans + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) ([]plan.Plan, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		plans, evalErrs, err := e.evaluate(source)
		ch <- evalResult{plans: plans, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) ([]plan.Plan, []EvalError, error) {
	// Empty source is a valid program that declares nothing.
	if strings.TrimSpace(source) == "" {
		return []plan.Plan{}, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	c := newCollector()
	registerBuiltins(env, c)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	if evalErrs := validatePlans(c.plans); len(evalErrs) > 0 {
		return nil, evalErrs, nil
	}
	if c.plans == nil {
		return []plan.Plan{}, nil, nil
	}
	return c.plans, nil, nil
}

// validatePlans reports the blocking validation findings of every plan.
func validatePlans(plans []plan.Plan) []EvalError {
	var errs []EvalError
	for _, p := range plans {
		for _, f := range plan.Validate(p).Errors {
			errs = append(errs, EvalError{
				Message:  fmt.Sprintf("building %q: %s: %s", p.Name, f.Field, f.Message),
				Building: p.Name,
			})
		}
	}
	return errs
}

// Warnings returns the advisory validation findings of plans.
func Warnings(plans []plan.Plan) []EvalWarning {
	var out []EvalWarning
	for _, p := range plans {
		for _, f := range plan.Validate(p).Warnings {
			msg := f.Message
			if f.Field != "" {
				msg = f.Field + ": " + msg
			}
			out = append(out, EvalWarning{Message: msg, Building: p.Name})
		}
	}
	return out
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
	return []EvalError{{
		Message: strings.TrimSpace(msg),
	}}
}
