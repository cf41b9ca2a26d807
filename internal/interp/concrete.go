package interp

import (
	"fmt"

	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/state"
)

// Bucket names which of the four outcome populations a concrete run
// landed in.
type Bucket int

const (
	Normal Bucket = iota
	Exit
	Return
	Failure
)

func (b Bucket) String() string {
	switch b {
	case Normal:
		return "normal"
	case Exit:
		return "exit"
	case Return:
		return "return"
	default:
		return "failure"
	}
}

// EvalConcrete runs ins against a single (state, context) pair and
// unwraps the result. Per spec.md §1, the concrete interpreter "collapses
// state sets to singletons" rather than introducing a second set of
// evaluation rules: this is the same Eval family run with a one-element
// input. That collapse is only actually a singleton if every wired
// utility stays deterministic on a concrete filesystem; the builtin
// table's existence-querying utilities (test -e/-d/-f, cat/ls on an
// argument path) branch into a holds/does-not-hold pair even when the
// filesystem is concrete, since the backend genuinely doesn't know which
// holds. Rather than silently picking one of the two (which would make
// EvalConcrete's result depend on unspecified map-iteration order),
// EvalConcrete asserts the singleton contract and panics loudly if the
// wired utility interpreter violates it.
func (e *Evaluator) EvalConcrete(inp context.Input, ctx context.Context, sta state.State, ins ast.Instruction) (Bucket, state.State, context.Context) {
	out := e.Eval(inp, ctx, sta, ins)

	total := out.Normal.Len() + out.Exit.Len() + out.Return.Len() + out.Failure.Len()
	if total != 1 {
		panic(fmt.Sprintf("interp: concrete evaluation produced %d states, want exactly 1 — the wired utility interpreter branched on a concrete state", total))
	}

	switch {
	case !out.Normal.IsEmpty():
		s := out.Normal.Elements()[0]
		return Normal, s.State, s.Ctx
	case !out.Exit.IsEmpty():
		s := out.Exit.Elements()[0]
		return Exit, s.State, s.Ctx
	case !out.Return.IsEmpty():
		s := out.Return.Elements()[0]
		return Return, s.State, s.Ctx
	default:
		s := out.Failure.Elements()[0]
		return Failure, s.State, s.Ctx
	}
}
