package pipeline

import (
	"github.com/glint-lang/glint/internal/diagnostics"
	"github.com/glint-lang/glint/internal/eval"
	"github.com/glint-lang/glint/internal/parser"
	"github.com/glint-lang/glint/internal/transpiler"
	"github.com/glint-lang/glint/internal/value"
)

func diagnosticsTypeError(msg string) *diagnostics.Error {
	return diagnostics.New(diagnostics.KindTypeError, diagnostics.Span{}, msg)
}

// ParseProcessor turns ctx.Source into ctx.Program, appending any syntax
// errors to ctx.Errors (spec.md §3.2). The lexer is not a separate stage:
// parser.ParseProgram drives its own lexer.Lexer internally, the same way
// the teacher's own parser owns tokenization behind ParseProgram.
type ParseProcessor struct{}

func (ParseProcessor) Process(ctx *PipelineContext) *PipelineContext {
	prog, errs := parser.ParseProgram(ctx.Source)
	ctx.Program = prog
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}

// EvalProcessor drives the tree-walking interpreter (component F) over
// ctx.Program, stopping before running anything if ParseProcessor already
// collected errors. The resulting Value, if any, is stashed on the context
// via Result so callers (REPL/CLI) can print it.
type EvalProcessor struct {
	Result value.Value
}

func (e *EvalProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if len(ctx.Errors) > 0 || ctx.Program == nil {
		return ctx
	}
	v, err := eval.New().RunProgram(ctx.Program)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	e.Result = v
	return ctx
}

// TranspileProcessor implements the second back end (component H): lowers
// ctx.Program to Rust source text, stashed in ctx.Output.
type TranspileProcessor struct{}

func (TranspileProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if len(ctx.Errors) > 0 || ctx.Program == nil {
		return ctx
	}
	out, err := transpiler.Transpile(ctx.Program)
	if err != nil {
		ctx.Errors = append(ctx.Errors, diagnosticsTypeError(err.Error()))
		return ctx
	}
	ctx.Output = out
	return ctx
}
