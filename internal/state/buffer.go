// Package state implements the immutable buffer, environment,
// filesystem-handle, and symbolic-state types threaded through
// evaluation (spec.md §2.1-§2.4, §6.4).
package state

import "strings"

// Stdin is an immutable ordered sequence of lines.
type Stdin struct {
	lines []string
}

// NewStdin builds a Stdin from a sequence of lines.
func NewStdin(lines ...string) Stdin {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return Stdin{lines: cp}
}

// Lines returns the underlying line sequence. Callers must not mutate
// the returned slice.
func (s Stdin) Lines() []string {
	return s.lines
}

// Key returns a deterministic hash key for structural-equality set
// membership.
func (s Stdin) Key() string {
	return strings.Join(s.lines, "\x00")
}

// Stdout is the current partial line plus the history of completed
// lines, newest-first. It is empty iff current == "" and history is
// empty.
type Stdout struct {
	current string
	history []string // newest-first
}

// NewStdout returns the empty stdout buffer.
func NewStdout() Stdout {
	return Stdout{}
}

// IsEmpty reports whether the buffer has never been written to.
func (s Stdout) IsEmpty() bool {
	return s.current == "" && len(s.history) == 0
}

// AppendString appends str to the current (incomplete) line.
func (s Stdout) AppendString(str string) Stdout {
	if str == "" {
		return s
	}
	return Stdout{current: s.current + str, history: s.history}
}

// AppendNewline completes the current line, pushing it onto history and
// resetting current to "".
func (s Stdout) AppendNewline() Stdout {
	history := make([]string, 0, len(s.history)+1)
	history = append(history, s.current)
	history = append(history, s.history...)
	return Stdout{current: "", history: history}
}

// chron returns completed lines in chronological (oldest-first) order.
func (s Stdout) chron() []string {
	out := make([]string, len(s.history))
	for i, h := range s.history {
		out[len(s.history)-1-i] = h
	}
	return out
}

func fromChron(chron []string, current string) Stdout {
	history := make([]string, len(chron))
	for i, h := range chron {
		history[len(chron)-1-i] = h
	}
	return Stdout{current: current, history: history}
}

// String serialises the buffer to its POSIX-style text: completed lines
// in order with trailing empty lines dropped, joined by newlines, with
// the current partial line appended without a trailing newline.
func (s Stdout) String() string {
	lines := s.chron()
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	joined := strings.Join(lines, "\n")
	switch {
	case s.current == "":
		return joined
	case len(lines) == 0:
		return s.current
	default:
		return joined + "\n" + s.current
	}
}

// PipeToStdin realises "pipe-to-stdin": the reverse of [current] ++
// history yields the stdin line sequence, i.e. completed lines in
// chronological order followed by the still-open current line.
func (s Stdout) PipeToStdin() Stdin {
	seq := make([]string, 0, len(s.history)+1)
	seq = append(seq, s.current)
	seq = append(seq, s.history...)
	out := make([]string, len(seq))
	for i, v := range seq {
		out[len(seq)-1-i] = v
	}
	return NewStdin(out...)
}

// ConcatStdout concatenates two buffers under the invariant that b was
// built starting from an empty buffer (spec.md §6.2's utility interface
// invariant): a's trailing partial line is joined with b's leading
// partial line, the rest is appended in order.
func ConcatStdout(a, b Stdout) Stdout {
	achron := a.chron()
	bchron := b.chron()
	if len(bchron) == 0 {
		return fromChron(achron, a.current+b.current)
	}
	merged := make([]string, 0, len(achron)+len(bchron))
	merged = append(merged, achron...)
	merged = append(merged, a.current+bchron[0])
	merged = append(merged, bchron[1:]...)
	return fromChron(merged, b.current)
}

// Key returns a deterministic hash key for structural-equality set
// membership.
func (s Stdout) Key() string {
	return s.current + "\x01" + strings.Join(s.history, "\x00")
}
