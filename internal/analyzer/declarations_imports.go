package analyzer

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/token"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// analyzeImport analyzes the imported module first, then binds the named
// or namespace imports in the module scope.
func (w *walker) analyzeImport(n *ast.ImportDeclaration) {
	refFlags := typesystem.FlagConstant | typesystem.FlagImported
	if n.TypeOnly {
		refFlags |= typesystem.FlagTypeOnly
	}

	if n.ResolvedPath == "" {
		// Package imports are opaque: a namespace maps every member to
		// unknown and named bindings are unknown.
		if n.Namespace != nil {
			opaque := &typesystem.Mapped{Key: typesystem.String, Value: typesystem.Unknown}
			w.declare(typesystem.NewReference(n.Namespace.Value, opaque, refFlags), n.Namespace.Span)
		}
		for _, s := range n.Specifiers {
			w.declare(typesystem.NewReference(s.Local.Value, typesystem.Unknown, refFlags), s.Local.Span)
			w.declareType(s.Local.Value, typesystem.Unknown, s.Local.Span)
		}
		return
	}

	dep, ok := w.analyzer.registry.Module(n.ResolvedPath)
	if !ok {
		w.fail(diagnostics.ErrB003, n.Source.Span, "Cannot find module '%s'", n.Source.Value)
	}
	w.analyzer.analyzeModule(dep)

	if n.Namespace != nil {
		w.declare(typesystem.NewReference(n.Namespace.Value, dep.Namespace(), refFlags), n.Namespace.Span)
		w.namespaces[n.Namespace.Value] = dep
	}

	for _, s := range n.Specifiers {
		name, local := s.Imported.Value, s.Local.Value
		ref := dep.Export(name)
		t, hasType := dep.ExportedType(name)

		if ref == nil && !hasType && dep.Analyzing {
			// The dependency is further up an import cycle and has not
			// reached its exports yet.
			w.logger().Debug("import from module in cycle", "module", dep.RelPath, "name", name)
			w.declare(typesystem.NewReference(local, typesystem.Unknown, refFlags), s.Local.Span)
			continue
		}
		if ref == nil && !hasType {
			w.fail(diagnostics.ErrB004, s.Span, "Module '%s' has no exported member '%s'", n.Source.Value, name)
		}

		if ref != nil {
			c := ref.Clone(local)
			c.Flags = ref.Flags&^typesystem.FlagExported | refFlags
			c.Freeze()
			w.declare(c, s.Local.Span)
		}
		if hasType {
			w.declareType(local, t, s.Local.Span)
			if ref == nil {
				s.IsType = true
			}
		}
	}
}

// analyzeExportList handles `export { a as b }`.
func (w *walker) analyzeExportList(n *ast.ExportDeclaration) {
	for _, s := range n.Specifiers {
		local, exported := s.Local.Value, s.Exported.Value
		ref, hasValue := w.scope.LookupVariable(local)
		t, hasType := w.scope.LookupType(local)
		if !hasValue && !hasType {
			w.fail(diagnostics.ErrB002, s.Local.Span, "Cannot find name '%s'", local)
		}
		if hasValue {
			c := ref.Clone(exported)
			c.Flags &^= typesystem.FlagExported
			w.exportValue(c, s.Exported.Span)
		}
		if hasType {
			w.exportType(exported, t, s.Exported.Span)
		}
	}
}

func (w *walker) exportValue(ref *typesystem.Reference, span token.Span) {
	w.requireModuleLevel(span)
	if !w.module.AddExport(ref) {
		w.fail(diagnostics.ErrB001, span, "Duplicate export '%s'", ref.Name)
	}
}

func (w *walker) exportType(name string, t typesystem.Type, span token.Span) {
	w.requireModuleLevel(span)
	if !w.module.AddExportedType(name, t) {
		w.fail(diagnostics.ErrB001, span, "Duplicate export '%s'", name)
	}
}

func (w *walker) requireModuleLevel(span token.Span) {
	if !w.atModuleLevel() {
		w.fail(diagnostics.ErrP003, span, "Exports are only allowed at module level")
	}
}
