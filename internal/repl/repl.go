// Package repl implements a bare read-eval-print loop over the shared
// pipeline, grounded on the teacher's builtins_term.go isatty-gated prompt.
// Line editing and history are explicitly out of scope (spec.md §1's
// Non-goals); this is a plain bufio.Scanner loop.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mattn/go-isatty"

	"github.com/glint-lang/glint/internal/eval"
	"github.com/glint-lang/glint/internal/parser"
	"github.com/glint-lang/glint/internal/value"
)

// Run drives one REPL session, reading from in and writing to out/errOut.
// fd is the file descriptor backing in, used only to decide whether to print
// a prompt (a pipe/redirect gets none).
func Run(in io.Reader, out, errOut io.Writer, fd uintptr) {
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	ev := eval.New()
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "glint> ")
		}
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		prog, errs := parser.ParseProgram(line)
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(errOut, e.Error())
			}
			continue
		}
		v, err := ev.RunProgram(prog)
		if err != nil {
			fmt.Fprintln(errOut, err.Error())
			continue
		}
		if _, isNil := v.(value.Nil); !isNil {
			fmt.Fprintln(out, v.Display())
		}
	}
}
