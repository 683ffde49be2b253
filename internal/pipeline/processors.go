package pipeline

import (
	"errors"

	"github.com/funvibe/tsfront/internal/analyzer"
	"github.com/funvibe/tsfront/internal/modules"
)

// ParserProcessor parses the entry module and everything it imports into a
// fresh registry.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Host == nil {
		return ctx.fail(errors.New("pipeline: no source host configured"))
	}
	reg := modules.NewRegistry(ctx.Host, ctx.Root)
	if ctx.Ext != "" {
		reg.Ext = ctx.Ext
	}
	reg.Logger = ctx.logger()
	ctx.Registry = reg

	m, err := reg.Load(ctx.FilePath)
	if err != nil {
		return ctx.fail(err)
	}
	ctx.Module = m
	reg.Logger.Debug("parsed", "entry", m.RelPath, "modules", len(reg.Modules()))
	return ctx
}

// SemanticAnalyzerProcessor type-checks the parsed modules.
type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Module == nil || ctx.Registry == nil {
		return ctx.fail(errors.New("pipeline: analysis requires a parsed entry module"))
	}
	a := analyzer.New(ctx.Registry)
	a.Logger = ctx.logger()
	if err := a.Analyze(ctx.Module); err != nil {
		return ctx.fail(err)
	}
	a.Logger.Debug("analyzed", "entry", ctx.Module.RelPath, "modules", len(ctx.Registry.Ordered()))
	return ctx
}
