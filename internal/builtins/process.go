package builtins

import (
	"bytes"
	"os"
	"os/exec"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerProcess wires process exit/spawn builtins — spec.md §6 names
// these only by intent; grounded on the teacher's builtins_process.go
// (process_exit, process_run over os/exec).
func registerProcess(r *Registry) {
	r.register("process_exit", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		code := int64(0)
		if len(args) > 0 {
			if c, err := wantInt("process_exit", args, 0); err == nil {
				code = c
			}
		}
		os.Exit(int(code))
		return value.Nil{}, nil
	})

	r.register("process_run", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		name, err := wantString("process_run", args, 0)
		if err != nil {
			return nil, err
		}
		var cmdArgs []string
		if len(args) > 1 {
			arr, aerr := wantArray("process_run", args, 1)
			if aerr != nil {
				return nil, aerr
			}
			for _, e := range arr.Elems {
				s, ok := e.(value.Str)
				if !ok {
					return nil, diagnostics.Typef("process_run: argument list must be strings")
				}
				cmdArgs = append(cmdArgs, string(s))
			}
		}
		cmd := exec.Command(name, cmdArgs...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		runErr := cmd.Run()
		exitCode := 0
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else if runErr != nil {
			return value.Result("Err", value.Str(runErr.Error())), nil
		}
		obj := value.NewObject().
			Set("stdout", value.Str(stdout.String())).
			Set("stderr", value.Str(stderr.String())).
			Set("exit_code", value.Int(int64(exitCode)))
		return value.Result("Ok", obj), nil
	})
}
