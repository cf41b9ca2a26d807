// Package context defines the evaluation Context: the variable
// environment, function table, positional arguments, and previous
// result ($?) threaded through instruction evaluation (spec.md §2.3,
// §3). It is immutable; every mutator returns a new Context.
package context

import (
	"sort"
	"strconv"
	"strings"

	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/state"
)

// Context is (var-env, func-env, arguments, result).
type Context struct {
	Vars    state.Env
	funcs   map[ast.Ident]ast.Instruction
	Args    []string
	Result  bool
}

// New returns a fresh context: an empty variable environment defaulting
// to "", no functions, no arguments, and Result=true (the identity value
// IForeach and IWhile start their fold from).
func New() Context {
	return Context{Vars: state.NewEnv(""), Result: true}
}

// WithVar returns a copy of c with id bound to v in the variable
// environment.
func (c Context) WithVar(id ast.Ident, v string) Context {
	c.Vars = c.Vars.Set(id, v)
	return c
}

// WithResult returns a copy of c with Result replaced.
func (c Context) WithResult(b bool) Context {
	c.Result = b
	return c
}

// WithArgs returns a copy of c with its positional arguments replaced.
func (c Context) WithArgs(args []string) Context {
	cp := make([]string, len(args))
	copy(cp, args)
	c.Args = cp
	return c
}

// WithVars returns a copy of c with its variable environment replaced.
func (c Context) WithVars(v state.Env) Context {
	c.Vars = v
	return c
}

// WithFunc returns a copy of c with id bound to body in the function
// table.
func (c Context) WithFunc(id ast.Ident, body ast.Instruction) Context {
	next := make(map[ast.Ident]ast.Instruction, len(c.funcs)+1)
	for k, v := range c.funcs {
		next[k] = v
	}
	next[id] = body
	c.funcs = next
	return c
}

// LookupFunc returns the body bound to id, if any.
func (c Context) LookupFunc(id ast.Ident) (ast.Instruction, bool) {
	body, ok := c.funcs[id]
	return body, ok
}

// Argument returns the n'th positional argument (n>=1), or "" if out of
// range. n==0 (argument0, the callee name) is not part of Context; it
// lives in the per-call Input (spec.md §3) and is resolved by the
// caller.
func (c Context) Argument(n int) string {
	if n < 1 || n > len(c.Args) {
		return ""
	}
	return c.Args[n-1]
}

// Key returns a deterministic hash key for structural-equality set
// membership.
func (c Context) Key() string {
	var b strings.Builder
	b.WriteString(c.Vars.Key())
	b.WriteString("||args:")
	b.WriteString(strings.Join(c.Args, "\x00"))
	b.WriteString("||result:")
	b.WriteString(strconv.FormatBool(c.Result))
	b.WriteString("||funcs:")
	keys := make([]string, 0, len(c.funcs))
	for k := range c.funcs {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(';')
	}
	return b.String()
}

// Input is the per-call ancillary evaluation input: whether evaluation
// is under_condition, and the current argument0 (spec.md §3).
type Input struct {
	UnderCondition bool
	Argument0      string
}

// Strict reports whether strict mode holds: exactly when not
// under_condition (spec.md §4.1).
func (i Input) Strict() bool {
	return !i.UnderCondition
}

// WithUnderCondition returns a copy of i with UnderCondition set to b.
// Callers pass true when entering the condition sub-instruction of
// If/While/Not and the left-hand of Not (spec.md §4.1).
func (i Input) WithUnderCondition(b bool) Input {
	i.UnderCondition = b
	return i
}

// WithArgument0 returns a copy of i with Argument0 replaced, used by
// ICallFunction (spec.md §4.2).
func (i Input) WithArgument0(name string) Input {
	i.Argument0 = name
	return i
}

// ArgumentValue resolves SArgument(n) per spec.md §4.3: n==0 is
// inp.Argument0; n>0 is the n'th positional argument or "" if out of
// range.
func ArgumentValue(inp Input, ctx Context, n int) string {
	if n == 0 {
		return inp.Argument0
	}
	return ctx.Argument(n)
}
