package interp

import (
	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/outcome"
	"github.com/colisc/colis/internal/state"
)

// whileBranch is one in-flight iteration of a while loop: the carried
// (state, context), how many times its body has already run, and the
// result ($?) the loop would report if it exited on this iteration's
// condition (spec.md §4.2 — the false-branch exits with last_result
// unchanged, i.e. the previous body iteration's result, or true if the
// body never ran).
type whileBranch struct {
	State      state.State
	Ctx        context.Context
	Count      int
	LastResult bool
}

// evalWhile implements IWhile (spec.md §4.2, §9): iteratively, not
// recursively, so the host stack does not grow with iteration count.
// Each branch is checked against the configured loop limit before its
// condition is evaluated again; a branch that has already run Body
// LoopLimit times is classified Failure without evaluating Cond once
// more (bounding guarantees termination of symbolic evaluation — a
// bound hit is an engine limitation, not a program failure, but it is
// still reported as Failure per spec.md §7). A false condition ends
// that branch as Normal, reporting last_result (the previous body
// iteration's result, or true if Body never ran) rather than the
// condition's own necessarily-false result; a true condition runs Body
// and the resulting Normal states continue the loop at Count+1, each
// carrying its own Ctx.Result forward as the new last_result.
func (e *Evaluator) evalWhile(inp context.Input, ctx context.Context, sta state.State, ins ast.IWhile) outcome.Outcome {
	limit := *e.Config.LoopLimit

	current := []whileBranch{{State: sta, Ctx: ctx, LastResult: true}}
	var out outcome.Outcome
	var normal []outcome.SymbolicState

	for len(current) > 0 {
		var next []whileBranch
		for _, br := range current {
			if br.Count >= limit {
				out.Failure = out.Failure.Insert(single(br.State, br.Ctx))
				continue
			}

			cond := e.Eval(inp.WithUnderCondition(true), br.Ctx, br.State, ins.Cond)
			out.Exit = out.Exit.Union(cond.Exit)
			out.Return = out.Return.Union(cond.Return)
			out.Failure = out.Failure.Union(cond.Failure)

			for _, s := range cond.Normal.Filter(resultFalse).Elements() {
				normal = append(normal, single(s.State, s.Ctx.WithResult(br.LastResult)))
			}
			for _, s := range cond.Normal.Filter(resultTrue).Elements() {
				body := e.Eval(inp, s.Ctx, s.State, ins.Body)
				out.Exit = out.Exit.Union(body.Exit)
				out.Return = out.Return.Union(body.Return)
				out.Failure = out.Failure.Union(body.Failure)
				for _, bs := range body.Normal.Elements() {
					next = append(next, whileBranch{State: bs.State, Ctx: bs.Ctx, Count: br.Count + 1, LastResult: bs.Ctx.Result})
				}
			}
		}
		current = next
	}

	out.Normal = outcome.NewStateSet(normal...)
	return outcome.MaybeExit(out, inp.Strict(), resultOf)
}
