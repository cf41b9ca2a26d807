// Package interp is the symbolic interpreter core (spec.md §4.2-§4.4): a
// mutual recursion over instructions, string expressions, and list
// expressions, lifted to operate on sets of symbolic states. It is a
// pure evaluator: no instruction suspends, nothing is mutated in place,
// and every terminating behaviour is realised as an Outcome bucket
// rather than a host-language exception (spec.md §5, §7), generalizing
// the control-flow switch in mvdan.cc/sh/v3/interp's Runner.cmd (see
// DESIGN.md) from a single mutated Runner into pure, set-lifted
// evaluation.
package interp

import (
	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/outcome"
	"github.com/colisc/colis/internal/state"
	"github.com/colisc/colis/internal/utility"
)

// Config is the interpreter's construction-time configuration
// (spec.md §3). LoopLimit must be non-nil for symbolic evaluation of
// IWhile; a nil LoopLimit is a caller contract violation, not a
// program-dependent condition. NewEvaluator always sets it, so an
// Evaluator built through NewEvaluator never has a nil LoopLimit.
type Config struct {
	LoopLimit *int
}

// Evaluator is the symbolic interpreter core: the evaluation relation of
// spec.md §4.2-§4.4 closed over a Config and a Utility collaborator.
type Evaluator struct {
	Config  Config
	Utility utility.Interpreter
}

// NewEvaluator builds an Evaluator. loopLimit must be non-negative;
// symbolic evaluation of IWhile requires it (spec.md §3).
func NewEvaluator(loopLimit int, util utility.Interpreter) *Evaluator {
	l := loopLimit
	return &Evaluator{Config: Config{LoopLimit: &l}, Utility: util}
}

func resultOf(s outcome.SymbolicState) bool {
	return s.Ctx.Result
}

func resultTrue(s outcome.SymbolicState) bool  { return s.Ctx.Result }
func resultFalse(s outcome.SymbolicState) bool { return !s.Ctx.Result }

func single(sta state.State, ctx context.Context) outcome.SymbolicState {
	return outcome.SymbolicState{State: sta, Ctx: ctx, Data: outcome.Unit{}}
}

// evalEach evaluates ins independently over every (state, context) pair
// carried by states, unioning the resulting outcomes. This is the
// set-lifted evaluation relation eval' of spec.md §4.2: "each input
// symbolic-state contributes its outcome and the union is returned."
func (e *Evaluator) evalEach(inp context.Input, states []outcome.SymbolicState, ins ast.Instruction) outcome.Outcome {
	var out outcome.Outcome
	for _, s := range states {
		out = out.Union(e.Eval(inp, s.Ctx, s.State, ins))
	}
	return out
}

func exitReturnValue(code ast.ReturnCode, ctx context.Context) bool {
	switch code {
	case ast.RSuccess:
		return true
	case ast.RFailure:
		return false
	default:
		return ctx.Result
	}
}

// Eval is the big-step instruction-evaluation relation over a single
// (state, context) pair: eval(cnf, inp, ctx, sta, ins) -> Outcome
// (spec.md §4.2).
func (e *Evaluator) Eval(inp context.Input, ctx context.Context, sta state.State, ins ast.Instruction) outcome.Outcome {
	switch v := ins.(type) {

	case ast.INoop:
		return outcome.NormalOnly(single(sta, ctx))

	case ast.IExit:
		b := exitReturnValue(v.Code, ctx)
		return outcome.ExitOnly(single(sta, ctx.WithResult(b)))

	case ast.IReturn:
		b := exitReturnValue(v.Code, ctx)
		return outcome.ReturnOnly(single(sta, ctx.WithResult(b)))

	case ast.IShift:
		return e.evalShift(inp, ctx, sta, v)

	case ast.IAssignment:
		return e.evalAssignment(inp, ctx, sta, v)

	case ast.ISequence:
		first := e.Eval(inp, ctx, sta, v.First)
		second := e.evalEach(inp, first.Normal.Elements(), v.Second)
		return outcome.Outcome{
			Normal:  second.Normal,
			Exit:    first.Exit.Union(second.Exit),
			Return:  first.Return.Union(second.Return),
			Failure: first.Failure.Union(second.Failure),
		}

	case ast.ISubshell:
		return e.evalSubshell(inp, ctx, sta, v)

	case ast.INot:
		return e.evalNot(inp, ctx, sta, v)

	case ast.INoOutput:
		return e.evalNoOutput(inp, ctx, sta, v)

	case ast.IIf:
		return e.evalIf(inp, ctx, sta, v)

	case ast.IPipe:
		return e.evalPipe(inp, ctx, sta, v)

	case ast.ICallUtility:
		return e.evalCallUtility(inp, ctx, sta, v)

	case ast.ICallFunction:
		return e.evalCallFunction(inp, ctx, sta, v)

	case ast.IForeach:
		return e.evalForeach(inp, ctx, sta, v)

	case ast.IWhile:
		return e.evalWhile(inp, ctx, sta, v)
	}
	panic("interp: unhandled instruction type")
}

func (e *Evaluator) evalShift(inp context.Input, ctx context.Context, sta state.State, ins ast.IShift) outcome.Outcome {
	n := ins.N
	if n <= 0 {
		n = 1
	}
	var newCtx context.Context
	if len(ctx.Args) >= n {
		newCtx = ctx.WithArgs(ctx.Args[n:]).WithResult(true)
	} else {
		newCtx = ctx.WithResult(false)
	}
	out := outcome.NormalOnly(single(sta, newCtx))
	return outcome.MaybeExit(out, inp.Strict(), resultOf)
}

func (e *Evaluator) evalAssignment(inp context.Input, ctx context.Context, sta state.State, ins ast.IAssignment) outcome.Outcome {
	maskedInp := inp.WithUnderCondition(true)
	results := e.EvalStr(ctx.Result, maskedInp, ctx, sta, ins.Expr)
	var out outcome.Outcome
	var normal []outcome.SymbolicState
	for _, r := range results {
		if !r.Ok {
			out.Failure = out.Failure.Insert(single(r.State, ctx))
			continue
		}
		newCtx := ctx.WithVar(ins.Ident, r.Str).WithResult(r.B)
		normal = append(normal, single(r.State, newCtx))
	}
	out.Normal = outcome.NewStateSet(normal...)
	return outcome.MaybeExit(out, inp.Strict(), resultOf)
}
