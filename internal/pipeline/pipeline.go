// Package pipeline wires the lex -> parse -> run/transpile stages into a
// small processor chain, grounded on the teacher's internal/pipeline
// Pipeline/Processor split (its PipelineContext threads Source/FilePath
// through a TokenStream -> Program -> (Value | Rust source) sequence; the
// teacher's own PipelineContext/Processor definitions were not present in
// the retrieved pack, so the fields below are inferred from how
// internal/parser's ParserProcessor.Process(ctx) consumes and populates one:
// ctx.TokenStream in, ctx.Program/ctx.Errors out, ctx.FilePath stamped onto
// every collected diagnostic).
package pipeline

import (
	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/diagnostics"
)

// PipelineContext threads state between Processor stages. A stage reads the
// fields its predecessor filled in and writes the ones it owns; Errors
// accumulates rather than resets so later stages (e.g. evaluation) can
// report runtime errors alongside earlier parse errors.
type PipelineContext struct {
	FilePath string
	Source   string

	Program *ast.Program
	Errors  []*diagnostics.Error

	Output string // transpiled Rust source, set by the transpile stage
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline runs an ordered sequence of Processors over one PipelineContext.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, continuing on error so later stages
// (e.g. a REPL's diagnostic reporter) see every collected Error, not just
// the first stage's.
func (p *Pipeline) Run(initial *PipelineContext) *PipelineContext {
	ctx := initial
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}
