package interp

import (
	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/state"
)

// StrResult is one branch of string-expression evaluation: a resulting
// state, whether evaluation succeeded, the produced string, and the
// result ($?) that evaluating the expression carries forward
// (spec.md §4.3 — only SSubshell ever changes it; every other case
// passes its caller-supplied b through unchanged).
type StrResult struct {
	State state.State
	Ok    bool
	Str   string
	B     bool
}

// EvalStr evaluates a string expression over a single (state, context)
// pair (spec.md §4.3). b is the result value to carry through for cases
// that don't themselves produce one (SLiteral, SVariable, SArgument);
// SConcat threads each side's own b into the next; SSubshell discards b
// and substitutes the subshell's own result instead.
func (e *Evaluator) EvalStr(b bool, inp context.Input, ctx context.Context, sta state.State, se ast.StringExpr) []StrResult {
	switch v := se.(type) {

	case ast.SLiteral:
		return []StrResult{{State: sta, Ok: true, Str: v.Value, B: b}}

	case ast.SVariable:
		return []StrResult{{State: sta, Ok: true, Str: ctx.Vars.Get(v.Ident), B: b}}

	case ast.SArgument:
		return []StrResult{{State: sta, Ok: true, Str: context.ArgumentValue(inp, ctx, v.N), B: b}}

	case ast.SSubshell:
		// spec.md §4.3: the subshell runs with isolated context and empty
		// stdout; the caller only ever sees the serialised stdout as the
		// produced string, and its own stdout is restored unchanged
		// afterward — same pattern as IPipe's own fork/restore.
		forked := sta.WithStdout(state.NewStdout())
		inner := e.Eval(inp, ctx, forked, v.Inner)
		var out []StrResult
		for _, s := range nonFailureElements(inner) {
			out = append(out, StrResult{State: s.State.WithStdout(sta.Stdout), Ok: true, Str: s.State.Stdout.String(), B: s.Ctx.Result})
		}
		for _, s := range inner.Failure.Elements() {
			out = append(out, StrResult{State: s.State.WithStdout(sta.Stdout), Ok: false})
		}
		return out

	case ast.SConcat:
		var out []StrResult
		for _, l := range e.EvalStr(b, inp, ctx, sta, v.Left) {
			if !l.Ok {
				out = append(out, l)
				continue
			}
			for _, r := range e.EvalStr(l.B, inp, ctx, l.State, v.Right) {
				if !r.Ok {
					out = append(out, r)
					continue
				}
				out = append(out, StrResult{State: r.State, Ok: true, Str: l.Str + r.Str, B: r.B})
			}
		}
		return out
	}
	panic("interp: unhandled string expression type")
}
