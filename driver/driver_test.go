package driver

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/constraint/memsolver"
	"github.com/colisc/colis/internal/interp"
	"github.com/colisc/colis/internal/state"
	"github.com/colisc/colis/internal/utility"
	"github.com/colisc/colis/internal/utility/builtin"
)

func newEvaluator(loopLimit int) (*interp.Evaluator, state.State) {
	backend := memsolver.New()
	t := utility.NewTable()
	builtin.Register(t, backend)
	ev := interp.NewEvaluator(loopLimit, t)
	root := backend.Fresh()
	sta := state.State{
		FS: state.Filesystem{
			Root:        root,
			Clause:      backend.Empty(),
			Cwd:         memsolver.NewPath("/"),
			InitialRoot: root,
		},
		Stdin:  state.NewStdin(),
		Stdout: state.NewStdout(),
	}
	return ev, sta
}

func lit(s string) ast.StringExpr { return ast.SLiteral{Value: s} }

func listOf(items ...string) ast.ListExpr {
	le := make(ast.ListExpr, len(items))
	for i, s := range items {
		le[i] = ast.ListItem{Expr: lit(s), Split: ast.Split}
	}
	return le
}

// S1: x := "a"; echo $x -> success set has one state whose stdout is "a".
func TestScenarioS1AssignmentThenEcho(t *testing.T) {
	ev, sta := newEvaluator(10)
	prog := ast.Program{
		Instruction: ast.ISequence{
			First:  ast.IAssignment{Ident: "x", Expr: lit("a")},
			Second: ast.ICallUtility{Ident: "echo", Args: ast.ListExpr{{Expr: ast.SVariable{Ident: "x"}, Split: ast.Split}}},
		},
	}
	res := Run(ev, sta, prog)

	qt.Assert(t, qt.Equals(res.Success.Len(), 1))
	qt.Assert(t, qt.Equals(res.Failed.Len(), 0))
	qt.Assert(t, qt.Equals(res.Engine.Len(), 0))
	qt.Assert(t, qt.Equals(res.Success.Elements()[0].State.Stdout.String(), "a"))
}

// S2: if true; then exit 0; fi; echo "unreached" -> Exit bucket has one
// state, Normal is empty, stdout is empty.
func TestScenarioS2ExitInsideIf(t *testing.T) {
	ev, sta := newEvaluator(10)
	prog := ast.Program{
		Instruction: ast.ISequence{
			First: ast.IIf{
				Cond: ast.ICallUtility{Ident: "true", Args: nil},
				Then: ast.IExit{Code: ast.RSuccess},
				Else: ast.INoop{},
			},
			Second: ast.ICallUtility{Ident: "echo", Args: listOf("unreached")},
		},
	}
	res := Run(ev, sta, prog)

	qt.Assert(t, qt.Equals(res.Success.Len(), 1))
	qt.Assert(t, qt.Equals(res.Failed.Len(), 0))
	qt.Assert(t, qt.Equals(res.Success.Elements()[0].State.Stdout.String(), ""))
}

// S3: false && echo hi, modelled as IIf(false, echo hi, noop) -> "hi"
// never appears in any resulting stdout.
func TestScenarioS3ShortCircuitAnd(t *testing.T) {
	ev, sta := newEvaluator(10)
	prog := ast.Program{
		Instruction: ast.IIf{
			Cond: ast.ICallUtility{Ident: "false", Args: nil},
			Then: ast.ICallUtility{Ident: "echo", Args: listOf("hi")},
			Else: ast.INoop{},
		},
	}
	res := Run(ev, sta, prog)

	for _, s := range res.Success.Elements() {
		qt.Assert(t, qt.Not(qt.StringContains(s.State.Stdout.String(), "hi")))
	}
	for _, s := range res.Failed.Elements() {
		qt.Assert(t, qt.Not(qt.StringContains(s.State.Stdout.String(), "hi")))
	}
}

// S4: while true; do :; done with loop_limit = 3 -> Normal/Exit/Return
// empty, Failure non-empty (bound hit).
func TestScenarioS4LoopLimitHit(t *testing.T) {
	ev, sta := newEvaluator(3)
	prog := ast.Program{
		Instruction: ast.IWhile{
			Cond: ast.ICallUtility{Ident: "true", Args: nil},
			Body: ast.INoop{},
		},
	}
	res := Run(ev, sta, prog)

	qt.Assert(t, qt.Equals(res.Success.Len(), 0))
	qt.Assert(t, qt.Equals(res.Failed.Len(), 0))
	qt.Assert(t, qt.Not(qt.Equals(res.Engine.Len(), 0)))
}

// S5 (function-return absorption): f() { return 0; }; f -> the call
// completes Normal with result=true at the caller, per invariant #4.
func TestScenarioS5FunctionReturnAbsorption(t *testing.T) {
	ev, sta := newEvaluator(10)
	prog := ast.Program{
		Functions: []ast.FunctionDef{
			{Ident: "f", Body: ast.IReturn{Code: ast.RSuccess}},
		},
		Instruction: ast.ISequence{
			First:  ast.ICallFunction{Ident: "f", Args: nil},
			Second: ast.ICallUtility{Ident: "echo", Args: listOf("after")},
		},
	}
	res := Run(ev, sta, prog)

	qt.Assert(t, qt.Equals(res.Success.Len(), 1))
	qt.Assert(t, qt.Equals(res.Success.Elements()[0].State.Stdout.String(), "after"))
}

// S6: y := $(exit 1); echo $y -> the subshell's Exit is absorbed into
// Normal with result=false; y becomes ""; the overall result tracks the
// subshell's result (false), and strict mode reclassifies the assignment
// to Exit, so echo $y does not run.
func TestScenarioS6SubshellExitAbsorption(t *testing.T) {
	ev, sta := newEvaluator(10)
	prog := ast.Program{
		Instruction: ast.ISequence{
			First:  ast.IAssignment{Ident: "y", Expr: ast.SSubshell{Inner: ast.IExit{Code: ast.RFailure}}},
			Second: ast.ICallUtility{Ident: "echo", Args: ast.ListExpr{{Expr: ast.SVariable{Ident: "y"}, Split: ast.Split}}},
		},
	}
	res := Run(ev, sta, prog)

	// Only the inner string-expression evaluation is masked
	// (under_condition=true), so the subshell's own Exit doesn't escape
	// as Exit; the assignment instruction itself still runs under the
	// caller's strict top-level mode, so its maybe-exit reclassifies the
	// resulting result=false Normal state to Exit before "echo $y" ever
	// runs.
	qt.Assert(t, qt.Equals(res.Failed.Len(), 1))
	qt.Assert(t, qt.Equals(res.Success.Len(), 0))
	qt.Assert(t, qt.Equals(res.Engine.Len(), 0))
	qt.Assert(t, qt.Equals(res.Failed.Elements()[0].State.Stdout.String(), ""))
}
