// Package driver implements the program driver (spec.md §4.5): running a
// whole Program through the symbolic interpreter and folding its
// terminal states into the three-way population a caller actually
// cares about — normal success, normal failure, and engine failure.
package driver

import (
	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/interp"
	"github.com/colisc/colis/internal/outcome"
	"github.com/colisc/colis/internal/state"
)

// Result is the three-way population a Program run produces
// (spec.md §4.5). A program-scope Exit or Return is folded in by its
// carried result: invariant #4 notes a top-level IReturn "surfaces as a
// Failure-free Exit-like termination with the return's result", so this
// driver merges Normal, Exit, and Return before splitting by Result,
// rather than reading spec.md §4.5's prose (which names only Normal's
// two Result values) as excluding program-scope Exit/Return from the
// success/failure split entirely — see DESIGN.md for the reasoning.
type Result struct {
	Success StateSet
	Failed  StateSet
	Engine  StateSet
}

// StateSet is an alias kept local to this package's exported surface so
// callers don't need to import internal/outcome directly just to read a
// Result.
type StateSet = outcome.StateSet

// Run evaluates prog's top-level instruction against a single initial
// (state, context) pair under ev, binding every function definition into
// the initial context first.
func Run(ev *interp.Evaluator, initial state.State, prog ast.Program) Result {
	ctx := context.New()
	for _, fn := range prog.Functions {
		ctx = ctx.WithFunc(fn.Ident, fn.Body)
	}
	inp := context.Input{}

	out := ev.Eval(inp, ctx, initial, prog.Instruction)
	terminal := out.Normal.Union(out.Exit).Union(out.Return)

	return Result{
		Success: terminal.Filter(func(s outcome.SymbolicState) bool { return s.Ctx.Result }),
		Failed:  terminal.Filter(func(s outcome.SymbolicState) bool { return !s.Ctx.Result }),
		Engine:  out.Failure,
	}
}
