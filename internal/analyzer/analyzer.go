package analyzer

import (
	"fmt"
	"log/slog"

	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/modules"
	"github.com/funvibe/tsfront/internal/symbols"
	"github.com/funvibe/tsfront/internal/token"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// Analyzer type-checks the modules of one registry. The first error aborts
// the whole compilation.
type Analyzer struct {
	registry *modules.Registry
	global   *symbols.Scope
	Logger   *slog.Logger
}

// New creates an Analyzer whose global scope holds the builtins.
func New(registry *modules.Registry) *Analyzer {
	return &Analyzer{
		registry: registry,
		global:   NewBuiltinScope(),
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// Global returns the builtin scope shared by all modules.
func (a *Analyzer) Global() *symbols.Scope { return a.global }

// Analyze checks entry and every module it imports, dependencies first.
func (a *Analyzer) Analyze(entry *modules.Module) (err error) {
	defer diagnostics.Recover(&err)
	a.analyzeModule(entry)
	return nil
}

// analyzeModule is memoized: a module already analyzed, or being analyzed
// further up an import cycle, is returned as is.
func (a *Analyzer) analyzeModule(m *modules.Module) {
	if m.Analyzed || m.Analyzing {
		return
	}
	if m.Program == nil {
		panic(fmt.Sprintf("module %s was not parsed", m.RelPath))
	}
	m.Analyzing = true
	m.Scope = symbols.NewEnclosedScope(a.global, symbols.ScopeModule)
	a.Logger.Debug("analyzing module", "path", m.RelPath)

	w := &walker{
		analyzer:   a,
		module:     m,
		file:       m.Source,
		scope:      m.Scope,
		namespaces: make(map[string]*modules.Module),
	}
	w.analyzeStatementList(m.Program.Statements)
	a.registry.Finish(m)
}

// walker analyzes one module.
type walker struct {
	analyzer *Analyzer
	module   *modules.Module
	file     *diagnostics.SourceFile
	scope    *symbols.Scope

	// tables holds the declaration tables of the statement lists being
	// analyzed, innermost last.
	tables []*declTable
	// namespaces maps `import * as ns` bindings to their modules for
	// qualified type references.
	namespaces map[string]*modules.Module
}

// flags carry transient intent down the walk.
type flags uint8

const (
	flagMutating flags = 1 << iota // the expression is an assignment target
	flagExported                   // the declaration is exported
)

func (f flags) has(x flags) bool { return f&x != 0 }

func (w *walker) fail(code diagnostics.ErrorCode, span token.Span, format string, args ...any) {
	panic(diagnostics.Errorf(code, w.file, span, format, args...))
}

// internalError reports an AST shape the walker does not handle.
func (w *walker) internalError(n ast.Node) {
	panic(fmt.Sprintf("analyzer: unhandled node %T", n))
}

func (w *walker) checkAssignable(target, source typesystem.Type, span token.Span) {
	if !typesystem.IsAssignable(target, source) {
		w.fail(diagnostics.ErrT001, span, "Type '%s' is not assignable to type '%s'", typeName(source), typeName(target))
	}
}

// withScope runs fn with s as the current scope.
func (w *walker) withScope(s *symbols.Scope, fn func()) {
	saved := w.scope
	w.scope = s
	defer func() { w.scope = saved }()
	fn()
}

func (w *walker) declare(ref *typesystem.Reference, span token.Span) {
	if err := w.scope.Declare(ref); err != nil {
		w.fail(diagnostics.ErrB001, span, "%s", err.Error())
	}
}

func (w *walker) declareType(name string, t typesystem.Type, span token.Span) {
	if err := w.scope.DeclareType(name, t); err != nil {
		w.fail(diagnostics.ErrB001, span, "%s", err.Error())
	}
}

func (w *walker) atModuleLevel() bool {
	return w.scope == w.module.Scope
}

func typeName(t typesystem.Type) string {
	if t == nil {
		return "unknown"
	}
	return t.String()
}

func (w *walker) logger() *slog.Logger { return w.analyzer.Logger }
