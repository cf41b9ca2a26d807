// Package ast defines the closed grammar of the Language: a small
// imperative shell-like command language used to model Debian maintainer
// scripts. Parsing and pretty-printing are external collaborators; this
// package only defines the tree shapes the interpreter consumes.
package ast

// Ident is a Language identifier. Equality is by bytes.
type Ident string

// ReturnCode is the literal operand of "exit" and "return".
type ReturnCode int

const (
	RPrevious ReturnCode = iota // $?
	RSuccess
	RFailure
)

func (c ReturnCode) String() string {
	switch c {
	case RSuccess:
		return "success"
	case RFailure:
		return "failure"
	default:
		return "previous"
	}
}

// Instruction is the tagged variant of statements in the Language.
// Concrete types below implement it by an unexported marker method, the
// same closed-sum-type shape mvdan.cc/sh/v3/syntax uses for its Command
// and Node interfaces.
type Instruction interface {
	instruction()
}

// IExit is "exit <code>": terminates the whole program.
type IExit struct {
	Code ReturnCode
}

// IReturn is "return <code>": terminates the current function body.
type IReturn struct {
	Code ReturnCode
}

// IShift is "shift [n]". N == 0 means "not given", defaulting to 1.
type IShift struct {
	N int
}

// IAssignment is "id := e".
type IAssignment struct {
	Ident Ident
	Expr  StringExpr
}

// ISequence is "i1; i2".
type ISequence struct {
	First, Second Instruction
}

// ISubshell is "( i )": runs i in a context-isolated subshell.
type ISubshell struct {
	Inner Instruction
}

// INot is "! i".
type INot struct {
	Inner Instruction
}

// INoOutput is "i > /dev/null"-like no-output wrapper: i runs, but its
// effect on stdout is discarded.
type INoOutput struct {
	Inner Instruction
}

// IIf is "if i1; then i2; else i3; fi".
type IIf struct {
	Cond, Then, Else Instruction
}

// IPipe is "i1 | i2".
type IPipe struct {
	Left, Right Instruction
}

// ICallUtility is a call to an external builtin, e.g. "mkdir -p foo".
type ICallUtility struct {
	Ident Ident
	Args  ListExpr
}

// ICallFunction is a call to a Language-defined function.
type ICallFunction struct {
	Ident Ident
	Args  ListExpr
}

// IForeach is "for id in le; do i; done".
type IForeach struct {
	Ident Ident
	List  ListExpr
	Body  Instruction
}

// IWhile is "while cond; do body; done".
type IWhile struct {
	Cond, Body Instruction
}

func (IExit) instruction()         {}
func (IReturn) instruction()       {}
func (IShift) instruction()        {}
func (IAssignment) instruction()   {}
func (ISequence) instruction()     {}
func (ISubshell) instruction()     {}
func (INot) instruction()          {}
func (INoOutput) instruction()     {}
func (IIf) instruction()           {}
func (IPipe) instruction()         {}
func (ICallUtility) instruction()  {}
func (ICallFunction) instruction() {}
func (IForeach) instruction()      {}
func (IWhile) instruction()        {}

// INoop is the empty instruction, used to model e.g. a missing "else"
// branch (spec.md S3: "false && echo hi" as IIf(cond, then, INoop)).
type INoop struct{}

func (INoop) instruction() {}

// StringExpr is the tagged variant of string expressions.
type StringExpr interface {
	stringExpr()
}

// SLiteral is a literal string.
type SLiteral struct {
	Value string
}

// SVariable reads a variable, defaulting to "" when unset.
type SVariable struct {
	Ident Ident
}

// SArgument reads a positional argument: n=0 is argument0 (the callee
// name), n>0 is the n'th element of the current arguments list.
type SArgument struct {
	N int
}

// SSubshell is "$( i )": runs i in an isolated subshell and substitutes
// its serialized stdout.
type SSubshell struct {
	Inner Instruction
}

// SConcat is string concatenation of two expressions.
type SConcat struct {
	Left, Right StringExpr
}

func (SLiteral) stringExpr()  {}
func (SVariable) stringExpr() {}
func (SArgument) stringExpr() {}
func (SSubshell) stringExpr() {}
func (SConcat) stringExpr()   {}

// SplitFlag tags a list element for field splitting.
type SplitFlag int

const (
	Split SplitFlag = iota
	DontSplit
)

// ListItem is a single (expression, splitting-flag) pair.
type ListItem struct {
	Expr  StringExpr
	Split SplitFlag
}

// ListExpr is an ordered sequence of list items.
type ListExpr []ListItem

// FunctionDef binds an identifier to a function body.
type FunctionDef struct {
	Ident Ident
	Body  Instruction
}

// Program is a full compilation unit: function definitions plus a
// top-level instruction.
type Program struct {
	Functions   []FunctionDef
	Instruction Instruction
}
