package builtins

import (
	"fmt"
	"os"
	"strings"

	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/value"
)

// registerIO wires println/print/dbg (spec.md §4.G). The active path
// always mirrors to both stdout and the shared output buffer; spec.md §9
// notes a deprecated legacy path that skips the buffer exists in the
// original source and should not be reachable here.
func registerIO(r *Registry) {
	r.register("println", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		line := formatArgs(args) + "\n"
		fmt.Print(line)
		r.out.Write(line)
		return value.Nil{}, nil
	})
	r.register("print", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		s := formatArgs(args)
		fmt.Print(s)
		r.out.Write(s)
		return value.Nil{}, nil
	})
	r.register("dbg", func(args []value.Value, call CallFn) (value.Value, *diagnostics.Error) {
		if len(args) == 0 {
			return value.Nil{}, nil
		}
		line := debugDisplay(args[0]) + "\n"
		fmt.Fprint(os.Stderr, line)
		r.out.Write(line)
		return args[0], nil
	})
}

func formatArgs(args []value.Value) string {
	if len(args) == 0 {
		return ""
	}
	first, isStr := args[0].(value.Str)
	if isStr && strings.Contains(string(first), "{") {
		return substitutePlaceholders(string(first), args[1:])
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = rawDisplay(a)
	}
	return strings.Join(parts, " ")
}

// substitutePlaceholders fills `{}` positionally and renders `{:?}` via the
// debug/display rules (spec.md §4.G). Extra placeholders are left as-is;
// extra args are appended space-joined.
func substitutePlaceholders(format string, args []value.Value) string {
	var sb strings.Builder
	argIdx := 0
	i := 0
	for i < len(format) {
		if format[i] == '{' && i+1 < len(format) {
			if format[i+1] == '}' {
				if argIdx < len(args) {
					sb.WriteString(rawDisplay(args[argIdx]))
					argIdx++
				} else {
					sb.WriteString("{}")
				}
				i += 2
				continue
			}
			if strings.HasPrefix(format[i:], "{:?}") {
				if argIdx < len(args) {
					sb.WriteString(debugDisplay(args[argIdx]))
					argIdx++
				} else {
					sb.WriteString("{:?}")
				}
				i += 4
				continue
			}
		}
		sb.WriteByte(format[i])
		i++
	}
	for ; argIdx < len(args); argIdx++ {
		sb.WriteByte(' ')
		sb.WriteString(rawDisplay(args[argIdx]))
	}
	return sb.String()
}

// rawDisplay renders a Value the way println would: unquoted strings, same
// as Display otherwise (spec.md §3.1's Display always quotes strings, but
// println's top-level argument is conventionally unquoted in this family of
// interpreters, matching the teacher's builtins_io.go Inspect-vs-print
// distinction).
func rawDisplay(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return string(s)
	}
	return v.Display()
}

func debugDisplay(v value.Value) string {
	return v.Display()
}
