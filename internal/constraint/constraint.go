// Package constraint declares the opaque interface to the symbolic
// filesystem constraint backend (a tree-automaton feature-constraint
// solver in the full system). The solver's internals are out of scope
// here (spec.md §1); the interpreter only threads these opaque values
// through builtin utility calls and never inspects them.
package constraint

// Variable names a symbolic filesystem root or a fresh symbolic value
// minted during constraint construction.
type Variable interface {
	// Key returns a string uniquely identifying this variable, used for
	// structural-equality hashing of symbolic states that embed it.
	Key() string
}

// Feature is an opaque constraint feature (e.g. "is a directory",
// "contains file foo"). The backend interprets these; the interpreter
// treats them as inert payloads attached to clauses by utility calls.
type Feature interface {
	Key() string
}

// Path is an opaque filesystem path value understood by the backend.
type Path interface {
	Key() string
	String() string
}

// Clause is an opaque, always-satisfiable accumulated constraint over
// filesystem variables and features. Backend implementations are
// responsible for only ever producing satisfiable clauses (spec.md §6.2
// invariant on the utility interpreter).
type Clause interface {
	Key() string
}

// Backend mints fresh variables and tests satisfiability. A backend must
// be reentrant within a single interpreter run (spec.md §5).
type Backend interface {
	// Empty returns the trivially satisfiable empty clause.
	Empty() Clause

	// Fresh mints a new, backend-unique variable.
	Fresh() Variable

	// Sat reports whether clause is satisfiable. A faithful backend
	// never returns false here for a clause it produced itself; this
	// exists so callers can assert the invariant in tests.
	Sat(c Clause) bool
}
