package state

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestStdoutAppendAndString(t *testing.T) {
	out := NewStdout()
	qt.Assert(t, qt.Equals(out.IsEmpty(), true))

	out = out.AppendString("a")
	qt.Assert(t, qt.Equals(out.String(), "a"))

	out = out.AppendString("b").AppendNewline()
	qt.Assert(t, qt.Equals(out.String(), "ab"))

	out = out.AppendString("c")
	qt.Assert(t, qt.Equals(out.String(), "ab\nc"))
}

func TestStdoutAppendEmptyStringIsNoop(t *testing.T) {
	out := NewStdout().AppendString("x")
	same := out.AppendString("")
	qt.Assert(t, qt.Equals(same.Key(), out.Key()))
}

func TestStdoutPipeToStdin(t *testing.T) {
	out := NewStdout().AppendString("a").AppendNewline().AppendString("b").AppendNewline().AppendString("c")
	in := out.PipeToStdin()
	qt.Assert(t, qt.DeepEquals(in.Lines(), []string{"a", "b", "c"}))
}

func TestConcatStdoutJoinsPartialLines(t *testing.T) {
	a := NewStdout().AppendString("a").AppendNewline().AppendString("b")
	b := NewStdout().AppendString("c").AppendNewline().AppendString("d")
	got := ConcatStdout(a, b)
	qt.Assert(t, qt.Equals(got.String(), "a\nbc\nd"))
}

func TestConcatStdoutWithEmptyB(t *testing.T) {
	a := NewStdout().AppendString("a").AppendNewline().AppendString("b")
	got := ConcatStdout(a, NewStdout())
	qt.Assert(t, qt.Equals(got.String(), a.String()))
}

func TestStdoutKeyDistinguishesPartialFromComplete(t *testing.T) {
	partial := NewStdout().AppendString("a")
	complete := NewStdout().AppendString("a").AppendNewline()
	qt.Assert(t, qt.Not(qt.Equals(partial.Key(), complete.Key())))
}
