package outcome

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/colisc/colis/internal/context"
	"github.com/colisc/colis/internal/state"
)

func freshSymbolicState(result bool) SymbolicState {
	ctx := context.New().WithResult(result)
	return SymbolicState{State: state.State{Stdin: state.NewStdin(), Stdout: state.NewStdout()}, Ctx: ctx, Data: Unit{}}
}

func TestStateSetInsertDedups(t *testing.T) {
	s := freshSymbolicState(true)
	set := NewStateSet(s, s)
	qt.Assert(t, qt.Equals(set.Len(), 1))
}

func TestStateSetUnionDedups(t *testing.T) {
	a := NewStateSet(freshSymbolicState(true))
	b := NewStateSet(freshSymbolicState(true), freshSymbolicState(false))
	union := a.Union(b)
	qt.Assert(t, qt.Equals(union.Len(), 2))
}

func TestStateSetUnionWithEmptyReturnsOther(t *testing.T) {
	a := NewStateSet(freshSymbolicState(true))
	qt.Assert(t, qt.Equals(a.Union(StateSet{}).Len(), 1))
	qt.Assert(t, qt.Equals(StateSet{}.Union(a).Len(), 1))
}

func TestStateSetFilter(t *testing.T) {
	set := NewStateSet(freshSymbolicState(true), freshSymbolicState(false))
	trueOnly := set.Filter(func(s SymbolicState) bool { return s.Ctx.Result })
	qt.Assert(t, qt.Equals(trueOnly.Len(), 1))
}

func TestMaybeExitNonStrictLeavesNormalAlone(t *testing.T) {
	o := Outcome{Normal: NewStateSet(freshSymbolicState(false))}
	got := MaybeExit(o, false, func(s SymbolicState) bool { return s.Ctx.Result })
	qt.Assert(t, qt.Equals(got.Normal.Len(), 1))
	qt.Assert(t, qt.Equals(got.Exit.Len(), 0))
}

func TestMaybeExitStrictReclassifiesFalseResults(t *testing.T) {
	o := Outcome{Normal: NewStateSet(freshSymbolicState(true), freshSymbolicState(false))}
	got := MaybeExit(o, true, func(s SymbolicState) bool { return s.Ctx.Result })
	qt.Assert(t, qt.Equals(got.Normal.Len(), 1))
	qt.Assert(t, qt.Equals(got.Exit.Len(), 1))
	qt.Assert(t, qt.Equals(got.Normal.Elements()[0].Ctx.Result, true))
	qt.Assert(t, qt.Equals(got.Exit.Elements()[0].Ctx.Result, false))
}

func TestMaybeExitLeavesExitReturnFailureAlone(t *testing.T) {
	o := Outcome{
		Normal:  NewStateSet(freshSymbolicState(false)),
		Exit:    NewStateSet(freshSymbolicState(true)),
		Return:  NewStateSet(freshSymbolicState(true)),
		Failure: NewStateSet(freshSymbolicState(false)),
	}
	got := MaybeExit(o, true, func(s SymbolicState) bool { return s.Ctx.Result })
	qt.Assert(t, qt.Equals(got.Exit.Len(), 2)) // original exit + reclassified normal
	qt.Assert(t, qt.Equals(got.Return.Len(), 1))
	qt.Assert(t, qt.Equals(got.Failure.Len(), 1))
}
