// Package utility declares the external utility-interpreter collaborator
// (spec.md §6.2): the interface through which the symbolic interpreter
// delegates ICallUtility to builtin command implementations. The
// interpreter core treats it as a black box, per spec.md §1.
package utility

import (
	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/state"
)

// Result is one (state, boolean-result) pair produced by interpreting a
// utility call.
type Result struct {
	State state.State
	Ok    bool
}

// Interpreter is the external collaborator signature: (state, name,
// args) -> set of (state, bool). Implementations must satisfy the
// invariant in spec.md §6.2: starting from an empty-stdout state and
// appending to an arbitrary-stdout state must commute via
// state.ConcatStdout.
type Interpreter interface {
	Interpret(sta state.State, name ast.Ident, args []string) []Result
}

// Func is a single builtin's implementation.
type Func func(sta state.State, args []string) []Result

// Table is an Interpreter built from a name -> Func mapping, grounded on
// the teacher's builtin/*.go pattern of independently testable builtin
// functions registered into a runner.
type Table struct {
	fns map[ast.Ident]Func
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{fns: map[ast.Ident]Func{}}
}

// Register adds or replaces the implementation for name.
func (t *Table) Register(name ast.Ident, fn Func) {
	t.fns[name] = fn
}

var _ Interpreter = (*Table)(nil)

// Interpret looks up name and runs it. An unregistered utility is
// modelled as "command not found": the state is unchanged and the
// result is false, matching ordinary shell behaviour for a missing
// command.
func (t *Table) Interpret(sta state.State, name ast.Ident, args []string) []Result {
	fn, ok := t.fns[name]
	if !ok {
		return []Result{{State: sta, Ok: false}}
	}
	return fn(sta, args)
}
