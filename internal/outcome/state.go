// Package outcome implements the symbolic-state set type and the
// four-way Outcome partition that every instruction evaluation produces
// (spec.md §2.4-§2.5, §4.1).
package outcome

import (
	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/state"
)

// Data is the per-scope ancillary payload carried by a SymbolicState.
// Per spec.md §9, rather than a single type-parameterised Outcome, this
// is modelled as a small closed sum of concrete specialisations: Unit,
// Bool and StdinPayload. The interpreter attaches Unit everywhere;
// IForeach, IWhile and IPipe keep their carried last_result or
// remembered stdin in their own loop-local values instead of in Data.
type Data interface {
	data()
}

// Unit is the payload for instructions that need no ancillary data.
type Unit struct{}

func (Unit) data() {}

// Bool carries a last_result value. The interpreter does not attach it.
type Bool bool

func (Bool) data() {}

// StdinPayload carries a remembered caller stdin. The interpreter does
// not attach it; IPipe restores the caller's stdin from a local value.
type StdinPayload state.Stdin

func (StdinPayload) data() {}

func dataKey(d Data) string {
	switch v := d.(type) {
	case Unit:
		return "u"
	case Bool:
		if v {
			return "b:1"
		}
		return "b:0"
	case StdinPayload:
		return "s:" + state.Stdin(v).Key()
	default:
		return "?"
	}
}

// SymbolicState is (state, context, ancillary data). Identity for set
// membership is by the full tuple (spec.md §3).
type SymbolicState struct {
	State state.State
	Ctx   context.Context
	Data  Data
}

// WithState returns a copy of s with its state replaced.
func (s SymbolicState) WithState(sta state.State) SymbolicState {
	s.State = sta
	return s
}

// WithCtx returns a copy of s with its context replaced.
func (s SymbolicState) WithCtx(ctx context.Context) SymbolicState {
	s.Ctx = ctx
	return s
}

// WithData returns a copy of s with its ancillary payload replaced.
func (s SymbolicState) WithData(d Data) SymbolicState {
	s.Data = d
	return s
}

// Key returns a deterministic hash key for structural-equality set
// membership.
func (s SymbolicState) Key() string {
	return s.State.Key() + "##" + s.Ctx.Key() + "##" + dataKey(s.Data)
}

// StateSet is a persistent, hash-consistent immutable set of
// SymbolicStates, keyed by structural equality (spec.md §9). Every
// mutator returns a new StateSet; the receiver is left unmodified.
type StateSet struct {
	byKey map[string]SymbolicState
}

// NewStateSet builds a StateSet from the given states, collapsing
// duplicates by structural equality.
func NewStateSet(states ...SymbolicState) StateSet {
	s := StateSet{}
	for _, st := range states {
		s = s.Insert(st)
	}
	return s
}

// IsEmpty reports whether the set has no elements.
func (s StateSet) IsEmpty() bool {
	return len(s.byKey) == 0
}

// Len returns the number of elements.
func (s StateSet) Len() int {
	return len(s.byKey)
}

// Insert returns a new StateSet containing st in addition to s's
// elements.
func (s StateSet) Insert(st SymbolicState) StateSet {
	next := make(map[string]SymbolicState, len(s.byKey)+1)
	for k, v := range s.byKey {
		next[k] = v
	}
	next[st.Key()] = st
	return StateSet{byKey: next}
}

// Union returns the set union of s and o.
func (s StateSet) Union(o StateSet) StateSet {
	if len(o.byKey) == 0 {
		return s
	}
	if len(s.byKey) == 0 {
		return o
	}
	next := make(map[string]SymbolicState, len(s.byKey)+len(o.byKey))
	for k, v := range s.byKey {
		next[k] = v
	}
	for k, v := range o.byKey {
		next[k] = v
	}
	return StateSet{byKey: next}
}

// Elements returns the set's elements. Iteration order is unspecified
// and immaterial (spec.md §4.2: "order of iteration is immaterial").
func (s StateSet) Elements() []SymbolicState {
	out := make([]SymbolicState, 0, len(s.byKey))
	for _, v := range s.byKey {
		out = append(out, v)
	}
	return out
}

// Map applies f to every element, returning the resulting set
// (duplicates produced by f collapse, as with any StateSet mutation).
func (s StateSet) Map(f func(SymbolicState) SymbolicState) StateSet {
	next := StateSet{}
	for _, st := range s.Elements() {
		next = next.Insert(f(st))
	}
	return next
}

// Filter returns the subset of s for which pred holds.
func (s StateSet) Filter(pred func(SymbolicState) bool) StateSet {
	next := StateSet{}
	for _, st := range s.Elements() {
		if pred(st) {
			next = next.Insert(st)
		}
	}
	return next
}
