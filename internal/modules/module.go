package modules

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/symbols"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// Module is one source file of the compilation.
type Module struct {
	Path    string // cleaned file path as read from the Host
	RelPath string // path relative to the registry root, used in diagnostics
	Source  *diagnostics.SourceFile
	Program *ast.Program
	Alias   string

	// Scope is created on first analysis and memoized so cyclic imports see
	// the same, possibly partially populated, scope.
	Scope *symbols.Scope
	// Order is the position in dependency-first analysis order, -1 until
	// analysis finishes.
	Order int

	Exports       []*typesystem.Reference
	ExportedTypes []typesystem.NamedType

	Analyzing bool
	Analyzed  bool
}

// Export returns the exported value named name.
func (m *Module) Export(name string) *typesystem.Reference {
	for _, r := range m.Exports {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// ExportedType returns the exported type named name.
func (m *Module) ExportedType(name string) (typesystem.Type, bool) {
	for _, nt := range m.ExportedTypes {
		if nt.Name == name {
			return nt.Type, true
		}
	}
	return nil, false
}

// AddExport appends a value export. It reports false when the name is
// already exported.
func (m *Module) AddExport(ref *typesystem.Reference) bool {
	if m.Export(ref.Name) != nil {
		return false
	}
	ref.Set(typesystem.FlagExported)
	m.Exports = append(m.Exports, ref)
	return true
}

// AddExportedType appends a type export. It reports false when the name is
// already exported.
func (m *Module) AddExportedType(name string, t typesystem.Type) bool {
	if _, ok := m.ExportedType(name); ok {
		return false
	}
	m.ExportedTypes = append(m.ExportedTypes, typesystem.NamedType{Name: name, Type: t})
	return true
}

// Namespace builds the object type bound by `import * as ns`.
func (m *Module) Namespace() *typesystem.Object {
	ns := typesystem.NewObject("")
	for _, r := range m.Exports {
		c := r.Clone(r.Name)
		c.Flags = typesystem.FlagConstant
		ns.AddMember(c)
	}
	return ns
}
