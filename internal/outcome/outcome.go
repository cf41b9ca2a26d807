package outcome

// Outcome is the four-way disjoint partition of symbolic states reached
// by evaluating one instruction, tagged by terminating behaviour
// (spec.md §2.5, §4.1):
//
//   - Normal: instruction completed, execution continues at the caller.
//   - Exit: the program terminates.
//   - Return: the current function body terminates.
//   - Failure: unrecoverable engine failure for this branch.
type Outcome struct {
	Normal, Exit, Return, Failure StateSet
}

// Empty is the outcome with all four buckets empty.
func Empty() Outcome {
	return Outcome{}
}

// Union returns the bucket-wise union of o and o2.
func (o Outcome) Union(o2 Outcome) Outcome {
	return Outcome{
		Normal:  o.Normal.Union(o2.Normal),
		Exit:    o.Exit.Union(o2.Exit),
		Return:  o.Return.Union(o2.Return),
		Failure: o.Failure.Union(o2.Failure),
	}
}

// NormalOnly builds an Outcome whose sole non-empty bucket is Normal.
func NormalOnly(states ...SymbolicState) Outcome {
	return Outcome{Normal: NewStateSet(states...)}
}

// ExitOnly builds an Outcome whose sole non-empty bucket is Exit.
func ExitOnly(states ...SymbolicState) Outcome {
	return Outcome{Exit: NewStateSet(states...)}
}

// ReturnOnly builds an Outcome whose sole non-empty bucket is Return.
func ReturnOnly(states ...SymbolicState) Outcome {
	return Outcome{Return: NewStateSet(states...)}
}

// FailureOnly builds an Outcome whose sole non-empty bucket is Failure.
func FailureOnly(states ...SymbolicState) Outcome {
	return Outcome{Failure: NewStateSet(states...)}
}

// MaybeExit reclassifies each Normal state whose Result is false from
// Normal to Exit when strict holds (spec.md §4.1's "maybe-exit"). States
// with Result true, and all Exit/Return/Failure states, are left
// untouched.
func MaybeExit(o Outcome, strict bool, resultOf func(SymbolicState) bool) Outcome {
	if !strict {
		return o
	}
	stay := o.Normal.Filter(func(s SymbolicState) bool { return resultOf(s) })
	exit := o.Normal.Filter(func(s SymbolicState) bool { return !resultOf(s) })
	return Outcome{
		Normal:  stay,
		Exit:    o.Exit.Union(exit),
		Return:  o.Return,
		Failure: o.Failure,
	}
}
