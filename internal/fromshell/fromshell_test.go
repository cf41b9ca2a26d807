package fromshell

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"mvdan.cc/sh/v3/syntax"

	"github.com/colisc/colis/internal/ast"
)

func parseShell(t *testing.T, src string) *syntax.File {
	t.Helper()
	f, err := syntax.NewParser().Parse(strings.NewReader(src), "test.sh")
	qt.Assert(t, qt.IsNil(err))
	return f
}

func TestTranslateAssignmentAndCall(t *testing.T) {
	f := parseShell(t, `x=a; echo "$x"`)
	prog, err := Translate(f)
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
	qt.Assert(t, qt.Equals(call.Args[0].Split, ast.DontSplit))
	qt.Assert(t, qt.Equals(call.Args[0].Expr, ast.StringExpr(ast.SVariable{Ident: "x"})))
}

func TestTranslateFunctionDecl(t *testing.T) {
	// "return" has no dedicated syntax.Command shape in POSIX shell — it
	// is an ordinary CallExpr like any other builtin — so it translates
	// to ICallUtility, not ast.IReturn; only native Language source
	// (internal/langsrc) can produce ast.IReturn directly.
	f := parseShell(t, "f() { return 0; }\nf\n")
	prog, err := Translate(f)
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.Equals(len(prog.Functions), 1))
	qt.Assert(t, qt.Equals(prog.Functions[0].Ident, ast.Ident("f")))

	body, ok := prog.Functions[0].Body.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(body.Ident, ast.Ident("return")))

	call, ok := prog.Instruction.(ast.ICallFunction)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(call.Ident, ast.Ident("f")))
}

func TestTranslateAndOrToIf(t *testing.T) {
	f := parseShell(t, "true && echo yes")
	prog, err := Translate(f)
	qt.Assert(t, qt.IsNil(err))

	ifIns, ok := prog.Instruction.(ast.IIf)
	qt.Assert(t, qt.Equals(ok, true))
	_, ok = ifIns.Else.(ast.INoop)
	qt.Assert(t, qt.Equals(ok, true))

	cond, ok := ifIns.Cond.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(cond.Ident, ast.Ident("true")))
}

func TestTranslateIfElif(t *testing.T) {
	f := parseShell(t, "if true; then echo a; elif false; then echo b; else echo c; fi")
	prog, err := Translate(f)
	qt.Assert(t, qt.IsNil(err))

	outer, ok := prog.Instruction.(ast.IIf)
	qt.Assert(t, qt.Equals(ok, true))

	inner, ok := outer.Else.(ast.IIf)
	qt.Assert(t, qt.Equals(ok, true))

	cond, ok := inner.Cond.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(cond.Ident, ast.Ident("false")))
}

func TestTranslatePipe(t *testing.T) {
	f := parseShell(t, "echo a | cat")
	prog, err := Translate(f)
	qt.Assert(t, qt.IsNil(err))

	pipe, ok := prog.Instruction.(ast.IPipe)
	qt.Assert(t, qt.Equals(ok, true))

	left, ok := pipe.Left.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(left.Ident, ast.Ident("echo")))

	right, ok := pipe.Right.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(right.Ident, ast.Ident("cat")))
}

func TestTranslateForLoop(t *testing.T) {
	f := parseShell(t, "for x in a b c; do echo $x; done")
	prog, err := Translate(f)
	qt.Assert(t, qt.IsNil(err))

	fe, ok := prog.Instruction.(ast.IForeach)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(fe.Ident, ast.Ident("x")))
	qt.Assert(t, qt.Equals(len(fe.List), 3))
}

func TestTranslateRejectsBackgroundJobs(t *testing.T) {
	f := parseShell(t, "sleep 1 &")
	_, err := Translate(f)
	qt.Assert(t, qt.Not(qt.IsNil(err)))
}

func TestTranslateRejectsArraySubscript(t *testing.T) {
	f := parseShell(t, "a[0]=x")
	_, err := Translate(f)
	qt.Assert(t, qt.Not(qt.IsNil(err)))
}

func TestTranslateNoOutputRedirect(t *testing.T) {
	f := parseShell(t, "echo hi > /dev/null")
	prog, err := Translate(f)
	qt.Assert(t, qt.IsNil(err))

	_, ok := prog.Instruction.(ast.INoOutput)
	qt.Assert(t, qt.Equals(ok, true))
}

func TestTranslateRejectsOtherRedirect(t *testing.T) {
	f := parseShell(t, "echo hi > out.txt")
	_, err := Translate(f)
	qt.Assert(t, qt.Not(qt.IsNil(err)))
}

func TestTranslateCommandSubstitution(t *testing.T) {
	f := parseShell(t, `y=$(exit 1); echo "$y"`)
	prog, err := Translate(f)
	qt.Assert(t, qt.IsNil(err))

	seq, ok := prog.Instruction.(ast.ISequence)
	qt.Assert(t, qt.Equals(ok, true))

	assign, ok := seq.First.(ast.IAssignment)
	qt.Assert(t, qt.Equals(ok, true))

	sub, ok := assign.Expr.(ast.SSubshell)
	qt.Assert(t, qt.Equals(ok, true))

	call, ok := sub.Inner.(ast.ICallUtility)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.Equals(call.Ident, ast.Ident("exit")))
}
