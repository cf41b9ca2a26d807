package state

import (
	"github.com/colisc/colis/internal/constraint"
)

// Filesystem is the opaque symbolic filesystem handle: a root variable,
// an accumulated satisfiable constraint clause, and the current working
// path (spec.md §3). It is copied on branch and never mutated in place.
type Filesystem struct {
	Root        constraint.Variable
	Clause      constraint.Clause
	Cwd         constraint.Path
	InitialRoot constraint.Variable // nil if none
}

// WithClause returns a copy of fs with its clause replaced.
func (fs Filesystem) WithClause(c constraint.Clause) Filesystem {
	fs.Clause = c
	return fs
}

// WithCwd returns a copy of fs with its working path replaced.
func (fs Filesystem) WithCwd(p constraint.Path) Filesystem {
	fs.Cwd = p
	return fs
}

// Key returns a deterministic hash key for structural-equality set
// membership.
func (fs Filesystem) Key() string {
	key := fs.Root.Key() + "|" + fs.Clause.Key() + "|" + fs.Cwd.Key()
	if fs.InitialRoot != nil {
		key += "|" + fs.InitialRoot.Key()
	}
	return key
}

// State is (filesystem, stdin, stdout) (spec.md §3). Branched by the
// interpreter; never mutated in place.
type State struct {
	FS     Filesystem
	Stdin  Stdin
	Stdout Stdout
}

// WithFS returns a copy of sta with its filesystem replaced.
func (sta State) WithFS(fs Filesystem) State {
	sta.FS = fs
	return sta
}

// WithStdin returns a copy of sta with its stdin replaced.
func (sta State) WithStdin(in Stdin) State {
	sta.Stdin = in
	return sta
}

// WithStdout returns a copy of sta with its stdout replaced.
func (sta State) WithStdout(out Stdout) State {
	sta.Stdout = out
	return sta
}

// Key returns a deterministic hash key for structural-equality set
// membership.
func (sta State) Key() string {
	return sta.FS.Key() + "||" + sta.Stdin.Key() + "||" + sta.Stdout.Key()
}
