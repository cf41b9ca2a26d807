package interp

import (
	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/outcome"
	"github.com/colisc/colis/internal/state"
)

// nonFailureElements returns the Normal, Exit, and Return elements of an
// Outcome, used wherever the spec absorbs every non-Failure behaviour
// uniformly (ISubshell, SSubshell).
func nonFailureElements(o outcome.Outcome) []outcome.SymbolicState {
	out := make([]outcome.SymbolicState, 0, o.Normal.Len()+o.Exit.Len()+o.Return.Len())
	out = append(out, o.Normal.Elements()...)
	out = append(out, o.Exit.Elements()...)
	out = append(out, o.Return.Elements()...)
	return out
}

// evalSubshell implements ISubshell: i runs in a context-isolated scope
// (spec.md §4.2). Mutations to var_env, arguments, and func_env never
// escape (invariant #3, context locality); filesystem, stdin, and
// stdout do escape, since subshell isolation is contextual, not
// filesystem-level. Exit and Return inside the subshell are absorbed
// into Normal, carrying only the result and the updated state
// (spec.md §9's Open Question, resolved identically for Return as for
// Exit). Failure escapes as Failure.
func (e *Evaluator) evalSubshell(inp context.Input, ctx context.Context, sta state.State, ins ast.ISubshell) outcome.Outcome {
	inner := e.Eval(inp, ctx, sta, ins.Inner)

	var normal []outcome.SymbolicState
	for _, s := range nonFailureElements(inner) {
		normal = append(normal, single(s.State, ctx.WithResult(s.Ctx.Result)))
	}

	var failure []outcome.SymbolicState
	for _, s := range inner.Failure.Elements() {
		failure = append(failure, single(s.State, ctx))
	}

	out := outcome.Outcome{
		Normal:  outcome.NewStateSet(normal...),
		Failure: outcome.NewStateSet(failure...),
	}
	return outcome.MaybeExit(out, inp.Strict(), resultOf)
}

// evalNot implements INot: evaluates i with under_condition forced true,
// then flips result on Normal and Return, propagating Exit and Failure
// unchanged (spec.md §4.2).
func (e *Evaluator) evalNot(inp context.Input, ctx context.Context, sta state.State, ins ast.INot) outcome.Outcome {
	inner := e.Eval(inp.WithUnderCondition(true), ctx, sta, ins.Inner)
	flip := func(s outcome.SymbolicState) outcome.SymbolicState {
		return s.WithCtx(s.Ctx.WithResult(!s.Ctx.Result))
	}
	return outcome.Outcome{
		Normal:  inner.Normal.Map(flip),
		Exit:    inner.Exit,
		Return:  inner.Return.Map(flip),
		Failure: inner.Failure,
	}
}

// evalNoOutput implements INoOutput: i runs normally, but every
// non-Failure resulting state has its stdout restored to the caller's
// pre-instruction stdout (spec.md §4.2).
func (e *Evaluator) evalNoOutput(inp context.Input, ctx context.Context, sta state.State, ins ast.INoOutput) outcome.Outcome {
	inner := e.Eval(inp, ctx, sta, ins.Inner)
	restore := func(s outcome.SymbolicState) outcome.SymbolicState {
		return s.WithState(s.State.WithStdout(sta.Stdout))
	}
	return outcome.Outcome{
		Normal:  inner.Normal.Map(restore),
		Exit:    inner.Exit.Map(restore),
		Return:  inner.Return.Map(restore),
		Failure: inner.Failure,
	}
}

// evalIf implements IIf: i1 evaluates under_condition=true; its Normal
// bucket is partitioned by result into the then/else branches
// (spec.md §4.2). Exit/Return/Failure of i1 propagate.
func (e *Evaluator) evalIf(inp context.Input, ctx context.Context, sta state.State, ins ast.IIf) outcome.Outcome {
	cond := e.Eval(inp.WithUnderCondition(true), ctx, sta, ins.Cond)

	thenOut := e.evalEach(inp, cond.Normal.Filter(resultTrue).Elements(), ins.Then)
	elseOut := e.evalEach(inp, cond.Normal.Filter(resultFalse).Elements(), ins.Else)
	branches := thenOut.Union(elseOut)

	return outcome.Outcome{
		Normal:  branches.Normal,
		Exit:    cond.Exit.Union(branches.Exit),
		Return:  cond.Return.Union(branches.Return),
		Failure: cond.Failure.Union(branches.Failure),
	}
}
