package colis

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/colisc/colis/internal/interp"
	"github.com/colisc/colis/internal/langsrc"
)

func TestEngineRunSymbolicEchoesAssignedVariable(t *testing.T) {
	prog, err := langsrc.Parse(`x := a; echo $x`)
	qt.Assert(t, qt.IsNil(err))

	e, err := New()
	qt.Assert(t, qt.IsNil(err))

	res := e.RunSymbolic(prog)
	qt.Assert(t, qt.Equals(res.Success.Len(), 1))
	qt.Assert(t, qt.Equals(res.Success.Elements()[0].State.Stdout.String(), "a"))
}

func TestEngineRunConcreteReportsBucket(t *testing.T) {
	prog, err := langsrc.Parse(`exit success`)
	qt.Assert(t, qt.IsNil(err))

	e, err := New()
	qt.Assert(t, qt.IsNil(err))

	got := e.RunConcrete(prog)
	qt.Assert(t, qt.Equals(got.Bucket, interp.Exit))
	qt.Assert(t, qt.Equals(got.Result, true))
}

func TestWithLoopLimitBoundsWhile(t *testing.T) {
	prog, err := langsrc.Parse(`while true; do : ; done`)
	qt.Assert(t, qt.IsNil(err))

	e, err := New(WithLoopLimit(2))
	qt.Assert(t, qt.IsNil(err))

	res := e.RunSymbolic(prog)
	qt.Assert(t, qt.Equals(res.Success.Len(), 0))
	qt.Assert(t, qt.Equals(res.Failed.Len(), 0))
	qt.Assert(t, qt.Not(qt.Equals(res.Engine.Len(), 0)))
}
