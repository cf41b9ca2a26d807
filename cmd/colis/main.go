// Command colis runs Language programs through the engine, either
// concretely (a single execution trace) or symbolically (every reachable
// outcome bucket), per spec.md §6.5's minimal CLI contract.
package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"mvdan.cc/sh/v3/syntax"

	"github.com/spf13/cobra"

	"github.com/colisc/colis"
	"github.com/colisc/colis/internal/ast"
	"github.com/colisc/colis/internal/fromshell"
	"github.com/colisc/colis/internal/interp"
	"github.com/colisc/colis/internal/langsrc"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "colis",
		Short: "A symbolic execution engine for the Language",
	}

	var shell, interactive bool
	var loopLimit int

	run := &cobra.Command{
		Use:   "run <path>",
		Short: "Run a program concretely and report its exit status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConcrete(args[0], shell, interactive, loopLimit)
		},
	}
	run.Flags().BoolVar(&shell, "shell", false, "parse the input as POSIX shell instead of native Language source")
	run.Flags().BoolVar(&interactive, "interactive", false, "prompt for confirmation before running against a TTY")
	run.Flags().IntVar(&loopLimit, "loop-limit", 1000, "bound on while-loop iterations")

	var symShell bool
	var symLoopLimit int
	runSymbolic := &cobra.Command{
		Use:   "run-symbolic <path>",
		Short: "Run a program symbolically and report one representative state per outcome bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSymbolicCmd(args[0], symShell, symLoopLimit)
		},
	}
	runSymbolic.Flags().BoolVar(&symShell, "shell", false, "parse the input as POSIX shell instead of native Language source")
	runSymbolic.Flags().IntVar(&symLoopLimit, "loop-limit", 1000, "bound on while-loop iterations")

	root.AddCommand(run, runSymbolic)
	return root
}

func loadProgram(path string, shell bool) (ast.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return ast.Program{}, err
	}
	defer f.Close()

	if shell {
		file, err := syntax.NewParser().Parse(f, path)
		if err != nil {
			return ast.Program{}, fmt.Errorf("parsing shell source: %w", err)
		}
		return fromshell.Translate(file)
	}

	buf, err := bufferAll(f)
	if err != nil {
		return ast.Program{}, err
	}
	return langsrc.Parse(buf)
}

func bufferAll(f *os.File) (string, error) {
	r := bufio.NewReader(f)
	var b []byte
	chunk := make([]byte, 4096)
	for {
		n, err := r.Read(chunk)
		b = append(b, chunk[:n]...)
		if err != nil {
			break
		}
	}
	return string(b), nil
}

func runConcrete(path string, shell, interactive bool, loopLimit int) error {
	if interactive && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "about to run %s — press Enter to continue\n", path)
		bufio.NewReader(os.Stdin).ReadString('\n')
	}

	prog, err := loadProgram(path, shell)
	if err != nil {
		return err
	}

	e, err := colis.New(colis.WithLoopLimit(loopLimit))
	if err != nil {
		return err
	}
	result := e.RunConcrete(prog)

	switch result.Bucket {
	case interp.Failure:
		fmt.Fprintln(os.Stderr, "engine failure")
		os.Exit(2)
	case interp.Exit, interp.Return, interp.Normal:
		if !result.Result {
			os.Exit(1)
		}
	}
	return nil
}

func runSymbolicCmd(path string, shell bool, loopLimit int) error {
	prog, err := loadProgram(path, shell)
	if err != nil {
		return err
	}

	e, err := colis.New(colis.WithLoopLimit(loopLimit))
	if err != nil {
		return err
	}
	res := e.RunSymbolic(prog)

	fmt.Printf("success states: %d\n", res.Success.Len())
	fmt.Printf("failure states: %d\n", res.Failed.Len())
	fmt.Printf("engine-failure states: %d\n", res.Engine.Len())

	if res.Success.Len() > 0 {
		s := res.Success.Elements()[0]
		fmt.Printf("representative success stdout: %q\n", s.State.Stdout.String())
	}
	if res.Failed.Len() > 0 {
		s := res.Failed.Elements()[0]
		fmt.Printf("representative failure stdout: %q\n", s.State.Stdout.String())
	}
	if res.Engine.Len() > 0 {
		s := res.Engine.Elements()[0]
		fmt.Printf("representative engine-failure stdout: %q\n", s.State.Stdout.String())
	}
	return nil
}
