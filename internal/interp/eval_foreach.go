package interp

import (
	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/outcome"
	"github.com/colisc/colis/internal/state"
)

// foreachCarry is one in-flight branch of a foreach loop: the
// (state, context) pair plus the candidate foreach-result recorded so
// far.
type foreachCarry struct {
	State  state.State
	Ctx    context.Context
	Result bool
}

// evalForeach implements IForeach (spec.md §4.2). The list expression is
// evaluated once; each resulting argument list then drives a sequential,
// iterative (not recursive) fold over its elements — trampolined the way
// kont's evalFrames iterates a frame chain instead of recursing, so a
// long argument list does not grow the host stack. At each step the
// in-flight branch set can itself fan out, since the body may produce
// more than one Normal state.
func (e *Evaluator) evalForeach(inp context.Input, ctx context.Context, sta state.State, ins ast.IForeach) outcome.Outcome {
	lists := e.EvalList(inp, ctx, sta, ins.List)

	var out outcome.Outcome
	var normal []outcome.SymbolicState
	for _, l := range lists {
		if !l.Ok {
			out.Failure = out.Failure.Insert(single(l.State, ctx))
			continue
		}

		current := []foreachCarry{{State: l.State, Ctx: ctx, Result: true}}
		for _, item := range l.Args {
			if len(current) == 0 {
				break
			}
			var next []foreachCarry
			for _, c := range current {
				iterCtx := c.Ctx.WithVar(ins.Ident, item)
				body := e.Eval(inp, iterCtx, c.State, ins.Body)
				for _, s := range body.Normal.Elements() {
					next = append(next, foreachCarry{State: s.State, Ctx: s.Ctx, Result: s.Ctx.Result})
				}
				out.Exit = out.Exit.Union(body.Exit)
				out.Return = out.Return.Union(body.Return)
				out.Failure = out.Failure.Union(body.Failure)
			}
			current = next
		}
		for _, c := range current {
			normal = append(normal, single(c.State, c.Ctx.WithResult(c.Result)))
		}
	}
	out.Normal = outcome.NewStateSet(normal...)
	return outcome.MaybeExit(out, inp.Strict(), resultOf)
}
