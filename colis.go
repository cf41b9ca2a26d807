// Package colis is the top-level entry point: an Engine wraps the
// symbolic interpreter core together with its two external
// collaborators (a utility interpreter and a constraint backend),
// configured via functional options the way the teacher's api.go builds
// a Runner from runnerOption values.
package colis

import (
	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/constraint"
	"github.com/colisc/colis/internal/constraint/memsolver"
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/interp"
	"github.com/colisc/colis/internal/state"
	"github.com/colisc/colis/internal/utility"
	"github.com/colisc/colis/internal/utility/builtin"

	"github.com/colisc/colis/driver"
)

// defaultLoopLimit bounds IWhile iteration when no Option overrides it.
const defaultLoopLimit = 1000

// Engine evaluates Language programs, either symbolically (the full
// set-lifted core) or concretely (the same core specialised to a
// singleton state). Build one with New; its fields are unexported,
// configured only through Option and read-only afterwards, mirroring
// the teacher's Runner.
type Engine struct {
	loopLimit int
	utility   utility.Interpreter
	backend   constraint.Backend
	cwd       string
}

// New builds an Engine. Unset options fall back to defaults: a loop
// limit of 1000, the standard builtin utility table over an in-memory
// constraint backend, and a "/" working directory.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		loopLimit: defaultLoopLimit,
		cwd:       "/",
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.backend == nil {
		e.backend = memsolver.New()
	}
	if e.utility == nil {
		t := utility.NewTable()
		builtin.Register(t, e.backend)
		e.utility = t
	}
	return e, nil
}

// Option configures an Engine, applied in New.
type Option func(*Engine) error

// WithLoopLimit overrides the default bound on IWhile iteration.
func WithLoopLimit(n int) Option {
	return func(e *Engine) error {
		e.loopLimit = n
		return nil
	}
}

// WithUtilityInterpreter replaces the default builtin utility table.
func WithUtilityInterpreter(u utility.Interpreter) Option {
	return func(e *Engine) error {
		e.utility = u
		return nil
	}
}

// WithConstraintBackend replaces the default in-memory constraint
// backend. When no WithUtilityInterpreter is given, New wires the default
// builtin table against this backend after all options are applied, so
// the order of the two options does not matter.
func WithConstraintBackend(b constraint.Backend) Option {
	return func(e *Engine) error {
		e.backend = b
		return nil
	}
}

// WithFileSystem sets the engine's initial working directory.
func WithFileSystem(cwd string) Option {
	return func(e *Engine) error {
		e.cwd = cwd
		return nil
	}
}

// initialState builds the single starting state every run begins from:
// a fresh symbolic filesystem root with no constraints yet accumulated,
// and empty stdin/stdout.
func (e *Engine) initialState() state.State {
	root := e.backend.Fresh()
	return state.State{
		FS: state.Filesystem{
			Root:        root,
			Clause:      e.backend.Empty(),
			Cwd:         memsolver.NewPath(e.cwd),
			InitialRoot: root,
		},
		Stdin:  state.NewStdin(),
		Stdout: state.NewStdout(),
	}
}

// RunSymbolic runs prog through the full set-lifted interpreter,
// returning the three-way success/failure/engine-failure population
// (spec.md §4.5).
func (e *Engine) RunSymbolic(prog ast.Program) driver.Result {
	ev := interp.NewEvaluator(e.loopLimit, e.utility)
	return driver.Run(ev, e.initialState(), prog)
}

// ConcreteResult is the outcome of a single-state run (spec.md §1's
// concrete interpreter): which bucket the run landed in and its $?.
type ConcreteResult struct {
	Bucket interp.Bucket
	Result bool
}

// RunConcrete runs prog through the same evaluation rules specialised
// to one starting state (spec.md §4.6). It panics if the run branches
// into more than one state (see interp.Evaluator.EvalConcrete).
func (e *Engine) RunConcrete(prog ast.Program) ConcreteResult {
	ev := interp.NewEvaluator(e.loopLimit, e.utility)
	ctx := context.New()
	for _, fn := range prog.Functions {
		ctx = ctx.WithFunc(fn.Ident, fn.Body)
	}
	bucket, _, finalCtx := ev.EvalConcrete(context.Input{}, ctx, e.initialState(), prog.Instruction)
	return ConcreteResult{Bucket: bucket, Result: finalCtx.Result}
}
