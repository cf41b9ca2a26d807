package langsrc

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/colisc/colis/internal/ast"
)

func TestParseAssignmentThenCall(t *testing.T) {
	prog, err := Parse(`x := a; echo $x`)
	qt.Assert(t, qt.IsNil(err))

	seq, ok := prog.Instruction.(ast.ISequence)
	qt.Assert(t, qt.Equals(ok, true))

	assign, ok := seq.First.(ast.IAssignment)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(assign.Ident, ast.Ident("x")))
	qt.Assert(t, qt.Equals(assign.Expr, ast.StringExpr(ast.SLiteral{Value: "a"})))

	call, ok := seq.Second.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(call.Ident, ast.Ident("echo")))
	qt.Assert(t, qt.Equals(len(call.Args), 1))
	qt.Assert(t, qt.Equals(call.Args[0].Expr, ast.StringExpr(ast.SVariable{Ident: "x"})))
}

func TestParseFunctionDeclAndCall(t *testing.T) {
	prog, err := Parse(`
		function f {
			return success
		}
		f
	`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(prog.Functions), 1))
	qt.Assert(t, qt.Equals(prog.Functions[0].Ident, ast.Ident("f")))
	qt.Assert(t, qt.Equals(prog.Functions[0].Body, ast.Instruction(ast.IReturn{Code: ast.RSuccess})))

	call, ok := prog.Instruction.(ast.ICallFunction)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(call.Ident, ast.Ident("f")))
}

func TestParseIfElse(t *testing.T) {
	prog, err := Parse(`if true; then echo yes; else echo no; fi`)
	qt.Assert(t, qt.IsNil(err))

	ifIns, ok := prog.Instruction.(ast.IIf)
	qt.Assert(t, qt.Equals(ok, true))

	cond, ok := ifIns.Cond.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(cond.Ident, ast.Ident("true")))

	then, ok := ifIns.Then.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(then.Args[0].Expr, ast.StringExpr(ast.SLiteral{Value: "yes"})))

	els, ok := ifIns.Else.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(els.Args[0].Expr, ast.StringExpr(ast.SLiteral{Value: "no"})))
}

func TestParseWhileLoop(t *testing.T) {
	prog, err := Parse(`while true; do : ; done`)
	qt.Assert(t, qt.IsNil(err))

	w, ok := prog.Instruction.(ast.IWhile)
	qt.Assert(t, qt.Equals(ok, true))

	cond, ok := w.Cond.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(cond.Ident, ast.Ident("true")))

	body, ok := w.Body.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(body.Ident, ast.Ident(":")))
}

func TestParseForeach(t *testing.T) {
	prog, err := Parse(`for x in a b c; do echo $x; done`)
	qt.Assert(t, qt.IsNil(err))

	f, ok := prog.Instruction.(ast.IForeach)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(f.Ident, ast.Ident("x")))
	qt.Assert(t, qt.Equals(len(f.List), 3))
}

func TestParseSubshellSubstitution(t *testing.T) {
	prog, err := Parse(`y := $(exit failure); echo $y`)
	qt.Assert(t, qt.IsNil(err))

	seq, ok := prog.Instruction.(ast.ISequence)
	qt.Assert(t, qt.Equals(ok, true))

	assign, ok := seq.First.(ast.IAssignment)
	qt.Assert(t, qt.Equals(ok, true))

	sub, ok := assign.Expr.(ast.SSubshell)
	qt.Assert(t, qt.Equals(ok, true))

	exit, ok := sub.Inner.(ast.IExit)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(exit.Code, ast.RFailure))
}

func TestParseDoubleQuotedStringDoesNotSplit(t *testing.T) {
	prog, err := Parse(`echo "a b"`)
	qt.Assert(t, qt.IsNil(err))

	call, ok := prog.Instruction.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(len(call.Args), 1))
	qt.Assert(t, qt.Equals(call.Args[0].Split, ast.DontSplit))
	qt.Assert(t, qt.Equals(call.Args[0].Expr, ast.StringExpr(ast.SLiteral{Value: "a b"})))
}

func TestParseNegationAndNoOutput(t *testing.T) {
	prog, err := Parse(`! false > /dev/null`)
	qt.Assert(t, qt.IsNil(err))

	not, ok := prog.Instruction.(ast.INot)
	qt.Assert(t, qt.Equals(ok, true))

	no, ok := not.Inner.(ast.INoOutput)
	qt.Assert(t, qt.Equals(ok, true))

	call, ok := no.Inner.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(call.Ident, ast.Ident("false")))
}
