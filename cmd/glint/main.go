// Command glint is the CLI entry point: run/transpile/repl over one shared
// pipeline, grounded on the teacher's cmd/funxy/main.go.
package main

import (
	"os"

	"github.com/glint-lang/glint/pkg/cli"
)

func main() {
	os.Exit(cli.Main(os.Args))
}
