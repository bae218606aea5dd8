// Package cli is the command dispatcher cmd/glint's main calls into,
// grounded on the teacher's pkg/cli.entry.go: a small set of os.Args-driven
// subcommands rather than a flag-package tree, matching how the teacher
// dispatches `run`/`test`/`-c`/`-r`/`build` by hand.
package cli

import (
	"fmt"
	"os"

	"github.com/glint-lang/glint/internal/config"
	"github.com/glint-lang/glint/internal/pipeline"
	"github.com/glint-lang/glint/internal/repl"
	"github.com/glint-lang/glint/internal/transpiler"
)

const usage = `glint - a statically-styled, expression-oriented scripting language

Usage:
  glint run <file>        run a program with the tree-walking interpreter
  glint transpile <file>  lower a program to Rust source on stdout
  glint ast <file>        print the parsed AST statement count (debug aid)
  glint repl              start an interactive session
  glint version           print the version string
`

// Main is cmd/glint's entire logic, returning the process exit code.
func Main(args []string) int {
	if len(args) < 2 {
		repl.Run(os.Stdin, os.Stdout, os.Stderr, os.Stdin.Fd())
		return 0
	}
	switch args[1] {
	case "run":
		return runCmd(args[2:])
	case "transpile":
		return transpileCmd(args[2:])
	case "ast":
		return astCmd(args[2:])
	case "repl":
		repl.Run(os.Stdin, os.Stdout, os.Stderr, os.Stdin.Fd())
		return 0
	case "version", "-v", "--version":
		fmt.Println(config.Version)
		return 0
	case "-h", "--help", "help":
		fmt.Print(usage)
		return 0
	}
	fmt.Fprint(os.Stderr, usage)
	return 2
}

func readSource(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glint: %v\n", err)
		return "", false
	}
	return string(data), true
}

func runCmd(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: glint run <file>")
		return 2
	}
	src, ok := readSource(args[0])
	if !ok {
		return 1
	}
	ctx := &pipeline.PipelineContext{FilePath: args[0], Source: src}
	evalProc := &pipeline.EvalProcessor{}
	ctx = pipeline.New(pipeline.ParseProcessor{}, evalProc).Run(ctx)
	if len(ctx.Errors) > 0 {
		for _, e := range ctx.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return 1
	}
	if evalProc.Result != nil {
		fmt.Println(evalProc.Result.Display())
	}
	return 0
}

func transpileCmd(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: glint transpile <file>")
		return 2
	}
	src, ok := readSource(args[0])
	if !ok {
		return 1
	}
	ctx := &pipeline.PipelineContext{FilePath: args[0], Source: src}
	ctx = pipeline.New(pipeline.ParseProcessor{}, pipeline.TranspileProcessor{}).Run(ctx)
	if len(ctx.Errors) > 0 {
		for _, e := range ctx.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return 1
	}
	fmt.Print(transpiler.Format(ctx.Output))
	return 0
}

func astCmd(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: glint ast <file>")
		return 2
	}
	src, ok := readSource(args[0])
	if !ok {
		return 1
	}
	ctx := &pipeline.PipelineContext{FilePath: args[0], Source: src}
	ctx = pipeline.New(pipeline.ParseProcessor{}).Run(ctx)
	if len(ctx.Errors) > 0 {
		for _, e := range ctx.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return 1
	}
	fmt.Printf("%d top-level statement(s)\n", len(ctx.Program.Statements))
	return 0
}
