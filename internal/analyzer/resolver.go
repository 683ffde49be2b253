package analyzer

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/symbols"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// declState is the lifecycle of one block-level declaration.
type declState int

const (
	declRegistered declState = iota // placeholder type visible in scope
	declResolving                   // definition being built
	declResolved                    // definition complete
)

// declRecord tracks a function, interface or type alias declared directly
// in one statement list. Enums are resolved at registration.
type declRecord struct {
	node     ast.Statement
	name     string
	state    declState
	exported bool
	scope    *symbols.Scope

	placeholder typesystem.Type
}

// declTable is the arena of records for one statement list. Records are
// addressed by index; byName and byType serve forward lookups.
type declTable struct {
	records []declRecord
	byName  map[string]int
	byType  map[typesystem.Type]int
}

func newDeclTable() *declTable {
	return &declTable{
		byName: make(map[string]int),
		byType: make(map[typesystem.Type]int),
	}
}

func (t *declTable) add(r declRecord) int {
	idx := len(t.records)
	t.records = append(t.records, r)
	t.byName[r.name] = idx
	t.byType[r.placeholder] = idx
	return idx
}

// analyzeStatementList runs both binding phases over stmts in the current
// scope, walks the executable statements, then analyzes the bodies of
// function declarations made in the list.
func (w *walker) analyzeStatementList(stmts []ast.Statement) {
	table := newDeclTable()
	w.tables = append(w.tables, table)
	defer func() { w.tables = w.tables[:len(w.tables)-1] }()

	if w.atModuleLevel() {
		for _, s := range stmts {
			if imp, ok := s.(*ast.ImportDeclaration); ok {
				w.analyzeImport(imp)
			}
		}
	}

	for _, s := range stmts {
		w.register(table, s, false)
	}
	for i := range table.records {
		w.resolveRecord(table, i)
	}

	for _, s := range stmts {
		w.analyzeStatement(s, 0)
	}

	for _, p := range w.scope.TakePending() {
		w.analyzeFunctionBody(p.Decl, p.Type)
	}
}

// register is phase 1: it declares placeholders for the declarations of
// one statement.
func (w *walker) register(table *declTable, s ast.Statement, exported bool) {
	switch s := s.(type) {
	case *ast.ExportDeclaration:
		if s.Declaration != nil {
			w.register(table, s.Declaration, true)
		}

	case *ast.FunctionDeclaration:
		fn := &typesystem.Function{Name: s.Name.Value, Return: typesystem.Unknown}
		ref := typesystem.NewReference(s.Name.Value, fn, typesystem.FlagConstant)
		w.declare(ref, s.Name.Span)
		table.add(declRecord{node: s, name: s.Name.Value, exported: exported, scope: w.scope, placeholder: fn})
		if exported {
			w.exportValue(ref, s.Name.Span)
		}

	case *ast.InterfaceDeclaration:
		obj := typesystem.NewObject(s.Name.Value)
		w.declareType(s.Name.Value, obj, s.Name.Span)
		table.add(declRecord{node: s, name: s.Name.Value, exported: exported, scope: w.scope, placeholder: obj})
		if exported {
			w.exportType(s.Name.Value, obj, s.Name.Span)
		}

	case *ast.TypeAliasDeclaration:
		alias := &typesystem.Alias{Name: s.Name.Value}
		for _, tp := range s.TypeParams {
			alias.Params = append(alias.Params, &typesystem.TypeParam{Name: tp.Name.Value, Constraint: typesystem.Unknown})
		}
		w.declareType(s.Name.Value, alias, s.Name.Span)
		table.add(declRecord{node: s, name: s.Name.Value, exported: exported, scope: w.scope, placeholder: alias})
		if exported {
			w.exportType(s.Name.Value, alias, s.Name.Span)
		}

	case *ast.EnumDeclaration:
		w.registerEnum(s, exported)
	}
}

// resolveRecord is phase 2 for one record. It is idempotent; a record
// requested while it is being resolved keeps its placeholder.
func (w *walker) resolveRecord(table *declTable, idx int) {
	rec := &table.records[idx]
	if rec.state != declRegistered {
		return
	}
	rec.state = declResolving
	node, scope := rec.node, rec.scope

	w.withScope(scope, func() {
		switch n := node.(type) {
		case *ast.FunctionDeclaration:
			fn := rec.placeholder.(*typesystem.Function)
			w.resolveFunctionSignature(n, fn)
			scope.Defer(n, fn)
		case *ast.InterfaceDeclaration:
			w.resolveInterface(n, rec.placeholder.(*typesystem.Object))
		case *ast.TypeAliasDeclaration:
			w.resolveTypeAlias(n, rec.placeholder.(*typesystem.Alias))
		default:
			w.internalError(node)
		}
	})
	table.records[idx].state = declResolved
}

// ensureResolved resolves the declaration behind a placeholder type on
// demand, searching the enclosing statement lists innermost first.
func (w *walker) ensureResolved(t typesystem.Type) {
	for i := len(w.tables) - 1; i >= 0; i-- {
		table := w.tables[i]
		if idx, ok := table.byType[t]; ok {
			w.resolveRecord(table, idx)
			return
		}
	}
}
