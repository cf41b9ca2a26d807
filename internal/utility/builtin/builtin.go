// Package builtin provides concrete utility implementations grounded on
// the teacher's builtin/*.go (Mkdir, Cat, Rm, Ls, Date, Sleep), adapted
// to the set-returning utility.Func signature required by spec.md §6.2.
//
// Because the core's filesystem is a purely symbolic, opaque
// constraint-backed handle (spec.md §6.3), these builtins do not touch
// any real storage. Utilities that in a real shell would depend on
// filesystem content (test -d, cat <file>) instead branch: one state
// where the backend asserts the queried feature holds, one where it
// does not, exercising exactly the "utility calls return sets of
// resulting states" contract spec.md §1 calls out as unique to this
// collaborator.
package builtin

import (
	"strings"

	"github.com/colisc/colis/internal/constraint"
	"github.com/colisc/colis/internal/constraint/memsolver"
	"github.com/colisc/colis/internal/state"
	"github.com/colisc/colis/internal/utility"
)

// fixedDate is the value Date reports. A purely symbolic filesystem has
// no clock to consult; rather than minting a fresh unconstrained string
// (which the constraint.Backend interface has no way to express, only
// fresh *variables*), Date reports a fixed value, documented here as a
// known approximation of the teacher's real time.Now()-backed Date.
const fixedDate = "Thu Jan  1 00:00:00 UTC 1970"

// Register installs the standard builtin table. backend is handed to the
// filesystem builtins (mkdir, rm, test, cat, ls) but none of them calls
// it: they extend the state's clause with memsolver.And, using features
// built by memsolver.NewFeature on the state's root variable. Utility
// names mirror common Debian
// maintainer-script commands, kept intentionally small per spec.md §1
// ("individual utility implementations ... not separately specified").
func Register(t *utility.Table, backend constraint.Backend) {
	t.Register("true", True)
	t.Register(":", True)
	t.Register("false", False)
	t.Register("echo", Echo)
	t.Register("mkdir", Mkdir(backend))
	t.Register("rm", Rm(backend))
	t.Register("test", Test(backend))
	t.Register("cat", Cat(backend))
	t.Register("date", Date)
	t.Register("sleep", Sleep)
	t.Register("ls", Ls(backend))
}

// Date always reports fixedDate, since the symbolic model has no clock
// (grounded on the teacher's builtin/date.go, which calls time.Now()).
func Date(sta state.State, args []string) []utility.Result {
	out := sta.Stdout.AppendString(fixedDate).AppendNewline()
	return []utility.Result{{State: sta.WithStdout(out), Ok: true}}
}

// Sleep always succeeds immediately without touching the state: a
// symbolic run has no wall clock to advance (grounded on the teacher's
// builtin/sleep.go, which calls time.Sleep for real).
func Sleep(sta state.State, args []string) []utility.Result {
	return []utility.Result{{State: sta, Ok: true}}
}

// Ls asserts that its (single, optional) argument path is a directory,
// branching into a holds/does-not-hold pair exactly like Test's -d —
// directory contents are unknown to the symbolic filesystem, so no
// entry names can be produced (grounded on the teacher's builtin/ls.go,
// which lists real fs.ReadDir entries).
func Ls(backend constraint.Backend) utility.Func {
	return func(sta state.State, args []string) []utility.Result {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		label := "dir:" + dir
		holds := sta.FS.WithClause(memsolver.And(sta.FS.Clause, sta.FS.Root, memsolver.NewFeature(label)))
		absent := sta.FS.WithClause(memsolver.And(sta.FS.Clause, sta.FS.Root, memsolver.NewFeature("not-"+label)))
		return []utility.Result{
			{State: sta.WithFS(holds), Ok: true},
			{State: sta.WithFS(absent), Ok: false},
		}
	}
}

// True always succeeds without touching the state.
func True(sta state.State, args []string) []utility.Result {
	return []utility.Result{{State: sta, Ok: true}}
}

// False always fails without touching the state.
func False(sta state.State, args []string) []utility.Result {
	return []utility.Result{{State: sta, Ok: false}}
}

// Echo appends its arguments, space-joined and newline-terminated, to
// stdout.
func Echo(sta state.State, args []string) []utility.Result {
	out := sta.Stdout.AppendString(strings.Join(args, " ")).AppendNewline()
	return []utility.Result{{State: sta.WithStdout(out), Ok: true}}
}

// Mkdir asserts that every argument path is a directory in the
// filesystem's constraint clause. Symbolic mkdir is treated as always
// succeeding, matching the always-satisfiable backend contract.
func Mkdir(backend constraint.Backend) utility.Func {
	return func(sta state.State, args []string) []utility.Result {
		fs := sta.FS
		for _, p := range args {
			if p == "-p" {
				continue
			}
			fs = fs.WithClause(memsolver.And(fs.Clause, fs.Root, memsolver.NewFeature("dir:"+p)))
		}
		return []utility.Result{{State: sta.WithFS(fs), Ok: true}}
	}
}

// Rm asserts that every argument path is removed from the filesystem's
// constraint clause. Symbolic rm always succeeds.
func Rm(backend constraint.Backend) utility.Func {
	return func(sta state.State, args []string) []utility.Result {
		fs := sta.FS
		for _, p := range args {
			if p == "-f" || p == "-r" || p == "-rf" {
				continue
			}
			fs = fs.WithClause(memsolver.And(fs.Clause, fs.Root, memsolver.NewFeature("removed:"+p)))
		}
		return []utility.Result{{State: sta.WithFS(fs), Ok: true}}
	}
}

// Test implements a minimal subset of the POSIX test(1) utility: -e/-d/
// -f existence-shaped predicates, and -z/-n string predicates. Existence
// predicates are genuinely unknown to a purely symbolic filesystem, so
// they branch into a holds/does-not-hold pair of resulting states.
func Test(backend constraint.Backend) utility.Func {
	return func(sta state.State, args []string) []utility.Result {
		if len(args) == 0 {
			return []utility.Result{{State: sta, Ok: false}}
		}
		switch args[0] {
		case "-z":
			return []utility.Result{{State: sta, Ok: len(args) < 2 || args[1] == ""}}
		case "-n":
			return []utility.Result{{State: sta, Ok: len(args) >= 2 && args[1] != ""}}
		case "-e", "-d", "-f":
			if len(args) < 2 {
				return []utility.Result{{State: sta, Ok: false}}
			}
			label := args[0][1:] + ":" + args[1]
			holds := sta.FS.WithClause(memsolver.And(sta.FS.Clause, sta.FS.Root, memsolver.NewFeature(label)))
			absent := sta.FS.WithClause(memsolver.And(sta.FS.Clause, sta.FS.Root, memsolver.NewFeature("not-"+label)))
			return []utility.Result{
				{State: sta.WithFS(holds), Ok: true},
				{State: sta.WithFS(absent), Ok: false},
			}
		default:
			if len(args) == 3 && args[1] == "=" {
				return []utility.Result{{State: sta, Ok: args[0] == args[2]}}
			}
			return []utility.Result{{State: sta, Ok: false}}
		}
	}
}

// Cat with no arguments copies stdin verbatim to stdout. With arguments,
// file content is unknown to the symbolic filesystem, so it branches
// into an exists-with-empty-content success and a does-not-exist
// failure, rather than fabricating file contents.
func Cat(backend constraint.Backend) utility.Func {
	return func(sta state.State, args []string) []utility.Result {
		if len(args) == 0 {
			out := sta.Stdout
			for _, line := range sta.Stdin.Lines() {
				out = out.AppendString(line).AppendNewline()
			}
			return []utility.Result{{State: sta.WithStdout(out), Ok: true}}
		}
		var results []utility.Result
		fs := sta.FS
		for _, p := range args {
			label := "file:" + p
			holds := fs.WithClause(memsolver.And(fs.Clause, fs.Root, memsolver.NewFeature(label)))
			absent := fs.WithClause(memsolver.And(fs.Clause, fs.Root, memsolver.NewFeature("not-"+label)))
			results = append(results,
				utility.Result{State: sta.WithFS(holds), Ok: true},
				utility.Result{State: sta.WithFS(absent), Ok: false},
			)
		}
		return results
	}
}
