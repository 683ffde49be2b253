package pipeline

import (
	"log/slog"

	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/modules"
)

// PipelineContext carries one compilation through the processing stages.
type PipelineContext struct {
	// FilePath is the entry module, absolute or relative to Root.
	FilePath string
	Root     string
	Host     modules.Host
	// Ext is the extension appended to extensionless import specifiers.
	Ext    string
	Logger *slog.Logger

	Registry *modules.Registry
	Module   *modules.Module

	// Errors holds the error that stopped the pipeline. Compilation aborts
	// on the first error, so it has at most one entry.
	Errors []error
}

// NewPipelineContext creates a context for compiling the entry file at path
// from the local file system.
func NewPipelineContext(root, path string) *PipelineContext {
	return &PipelineContext{
		FilePath: path,
		Root:     root,
		Host:     modules.OSHost{},
		Ext:      modules.DefaultExt,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// Failed reports whether a stage recorded an error.
func (ctx *PipelineContext) Failed() bool { return len(ctx.Errors) > 0 }

// Diagnostic returns the recorded error as a diagnostic, if it is one.
func (ctx *PipelineContext) Diagnostic() (*diagnostics.DiagnosticError, bool) {
	if !ctx.Failed() {
		return nil, false
	}
	return diagnostics.AsDiagnostic(ctx.Errors[0])
}

func (ctx *PipelineContext) logger() *slog.Logger {
	if ctx.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return ctx.Logger
}

func (ctx *PipelineContext) fail(err error) *PipelineContext {
	ctx.Errors = append(ctx.Errors, err)
	return ctx
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline, stopping after the first stage that fails.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Failed() {
			break
		}
	}
	return ctx
}

// Default returns the parse and analysis stages.
func Default() *Pipeline {
	return New(&ParserProcessor{}, &SemanticAnalyzerProcessor{})
}
