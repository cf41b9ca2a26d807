package interp

import (
	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/outcome"
	"github.com/colisc/colis/internal/state"
)

// evalPipe implements IPipe (spec.md §4.2): i1 runs against a forked
// state whose stdout starts empty. Every non-Failure outcome of i1 (its
// Normal, Exit, and Return buckets alike) feeds i2 on a state whose
// stdin is i1's stdout piped across and whose stdout is restored to the
// caller's pre-pipe stdout; the branch's own pre-pipe stdin is
// remembered and restored once i2 completes. The pipeline's resulting
// bucket and result are i2's.
func (e *Evaluator) evalPipe(inp context.Input, ctx context.Context, sta state.State, ins ast.IPipe) outcome.Outcome {
	forked := sta.WithStdout(state.NewStdout())
	left := e.Eval(inp, ctx, forked, ins.Left)

	var out outcome.Outcome
	for _, s := range nonFailureElements(left) {
		remembered := s.State.Stdin
		piped := s.State.WithStdin(s.State.Stdout.PipeToStdin()).WithStdout(sta.Stdout)

		right := e.Eval(inp, s.Ctx, piped, ins.Right)
		restore := func(rs outcome.SymbolicState) outcome.SymbolicState {
			return rs.WithState(rs.State.WithStdin(remembered))
		}
		out = out.Union(outcome.Outcome{
			Normal:  right.Normal.Map(restore),
			Exit:    right.Exit.Map(restore),
			Return:  right.Return.Map(restore),
			Failure: right.Failure.Map(restore),
		})
	}
	out.Failure = out.Failure.Union(left.Failure)
	return out
}

// evalCallUtility implements ICallUtility: its argument list is
// evaluated first (a failed evaluation is Failure, per spec.md §4.1's
// "argument-evaluation failure of utility/function calls produce
// Failure"); successful argument lists are handed to the external
// Utility collaborator, whose (state, bool) results become Normal
// states after maybe-exit.
func (e *Evaluator) evalCallUtility(inp context.Input, ctx context.Context, sta state.State, ins ast.ICallUtility) outcome.Outcome {
	lists := e.EvalList(inp, ctx, sta, ins.Args)

	var out outcome.Outcome
	var normal []outcome.SymbolicState
	for _, l := range lists {
		if !l.Ok {
			out.Failure = out.Failure.Insert(single(l.State, ctx))
			continue
		}
		for _, r := range e.Utility.Interpret(l.State, ins.Ident, l.Args) {
			normal = append(normal, single(r.State, ctx.WithResult(r.Ok)))
		}
	}
	out.Normal = outcome.NewStateSet(normal...)
	return outcome.MaybeExit(out, inp.Strict(), resultOf)
}

// evalCallFunction implements ICallFunction: argument evaluation
// failures are Failure; calling an undefined function sets result=false
// (spec.md §4.2). A defined function's body runs with argument0 set to
// the function's own name and arguments replaced; its Return bucket is
// caught and folded into Normal (function-return absorption, invariant
// #4), its Exit and Failure propagate untouched, and in every resulting
// Normal/converted-Return state the caller's var_env and arguments are
// restored — per spec.md §3's ownership rule, contexts produced inside a
// function call do not escape to the caller except via the caller's
// result field, so a callee's own variable assignments and argument
// rebinding are both local to the call.
func (e *Evaluator) evalCallFunction(inp context.Input, ctx context.Context, sta state.State, ins ast.ICallFunction) outcome.Outcome {
	lists := e.EvalList(inp, ctx, sta, ins.Args)

	var out outcome.Outcome
	var normal []outcome.SymbolicState
	for _, l := range lists {
		if !l.Ok {
			out.Failure = out.Failure.Insert(single(l.State, ctx))
			continue
		}
		bodyIns, ok := ctx.LookupFunc(ins.Ident)
		if !ok {
			normal = append(normal, single(l.State, ctx.WithResult(false)))
			continue
		}
		calleeCtx := ctx.WithArgs(l.Args)
		calleeInp := inp.WithArgument0(string(ins.Ident))
		bodyOut := e.Eval(calleeInp, calleeCtx, l.State, bodyIns)

		restoreCaller := func(s outcome.SymbolicState) outcome.SymbolicState {
			return s.WithCtx(s.Ctx.WithArgs(ctx.Args).WithVars(ctx.Vars))
		}
		normal = append(normal, bodyOut.Normal.Map(restoreCaller).Elements()...)
		normal = append(normal, bodyOut.Return.Map(restoreCaller).Elements()...)
		out.Exit = out.Exit.Union(bodyOut.Exit)
		out.Failure = out.Failure.Union(bodyOut.Failure)
	}
	out.Normal = outcome.NewStateSet(normal...)
	return outcome.MaybeExit(out, inp.Strict(), resultOf)
}
