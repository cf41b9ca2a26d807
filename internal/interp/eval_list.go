package interp

import (
	"strings"

	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/state"
)

// ListResult is one branch of list-expression evaluation: a resulting
// state, whether every item evaluated successfully, and the flattened
// argument list (spec.md §4.4).
type ListResult struct {
	State state.State
	Ok    bool
	Args  []string
}

// EvalList evaluates a list expression over a single (state, context)
// pair (spec.md §4.4). Each item is evaluated left to right; a
// DontSplit item contributes its string verbatim as one argument, a
// Split item is broken on whitespace into zero or more arguments
// (POSIX field splitting). Any item's evaluation branching (via a
// nested SSubshell) fans the whole list out, matching the cross-product
// folds used elsewhere in this package (evalForeach, evalCallFunction).
// A failing item collapses the branch to Ok=false; later items are not
// evaluated on that branch.
func (e *Evaluator) EvalList(inp context.Input, ctx context.Context, sta state.State, le ast.ListExpr) []ListResult {
	current := []ListResult{{State: sta, Ok: true}}
	for _, item := range le {
		var next []ListResult
		for _, c := range current {
			if !c.Ok {
				next = append(next, c)
				continue
			}
			for _, r := range e.EvalStr(ctx.Result, inp, ctx, c.State, item.Expr) {
				if !r.Ok {
					next = append(next, ListResult{State: r.State, Ok: false})
					continue
				}
				var parts []string
				if item.Split == ast.Split {
					parts = strings.Fields(r.Str)
				} else {
					parts = []string{r.Str}
				}
				args := make([]string, 0, len(c.Args)+len(parts))
				args = append(args, c.Args...)
				args = append(args, parts...)
				next = append(next, ListResult{State: r.State, Ok: true, Args: args})
			}
		}
		current = next
	}
	return current
}
