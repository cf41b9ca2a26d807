// Package memsolver provides a trivial, always-satisfiable in-memory
// implementation of constraint.Backend. It exists so the interpreter is
// runnable end to end without the out-of-scope tree-automaton solver:
// every clause it builds is satisfiable by construction, matching the
// spec's required invariant, without attempting to model real filesystem
// feature constraints.
package memsolver

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/colisc/colis/internal/constraint"
)

// Backend mints variables from an atomic counter and accumulates clause
// fragments as plain strings, joined for hashing purposes only.
type Backend struct {
	counter atomic.Uint64
}

// New returns a ready-to-use Backend.
func New() *Backend {
	return &Backend{}
}

var _ constraint.Backend = (*Backend)(nil)

type variable struct{ id uint64 }

func (v variable) Key() string { return "var:" + strconv.FormatUint(v.id, 10) }

type path struct{ p string }

func (p path) Key() string    { return "path:" + p.p }
func (p path) String() string { return p.p }

// NewPath wraps a concrete path string as an opaque constraint.Path.
func NewPath(p string) constraint.Path { return path{p: p} }

type feature struct{ key string }

func (f feature) Key() string { return "feature:" + f.key }

// NewFeature wraps a label as an opaque constraint.Feature, e.g. the
// fact that a particular path is a directory after a mkdir call.
func NewFeature(label string) constraint.Feature { return feature{key: label} }

type clause struct {
	fragments []string
}

func (c clause) Key() string {
	return "clause:" + strings.Join(c.fragments, "&")
}

// And returns a new clause extending c with an additional fragment
// describing a feature applied to a variable. Always satisfiable: this
// backend never rejects a conjunction.
func And(c constraint.Clause, v constraint.Variable, f constraint.Feature) constraint.Clause {
	mc, _ := c.(clause)
	frag := fmt.Sprintf("%s:%s", v.Key(), f.Key())
	next := make([]string, len(mc.fragments), len(mc.fragments)+1)
	copy(next, mc.fragments)
	next = append(next, frag)
	return clause{fragments: next}
}

func (b *Backend) Empty() constraint.Clause {
	return clause{}
}

func (b *Backend) Fresh() constraint.Variable {
	id := b.counter.Add(1)
	return variable{id: id}
}

func (b *Backend) Sat(c constraint.Clause) bool {
	return true
}
