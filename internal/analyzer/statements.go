package analyzer

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/symbols"
	"github.com/funvibe/tsfront/internal/token"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// analyzeStatement is the executable walk over one statement. Declarations
// handled by register only need their export side effects here.
func (w *walker) analyzeStatement(s ast.Statement, f flags) {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		w.analyzeVariableDeclaration(n, f)

	case *ast.FunctionDeclaration, *ast.InterfaceDeclaration, *ast.TypeAliasDeclaration, *ast.EnumDeclaration:
		// Bound by register and resolve.

	case *ast.ImportDeclaration:
		if !w.atModuleLevel() {
			w.fail(diagnostics.ErrP003, n.Span, "Import declarations are only allowed at module level")
		}

	case *ast.ExportDeclaration:
		if !w.atModuleLevel() {
			w.fail(diagnostics.ErrP003, n.Span, "Exports are only allowed at module level")
		}
		if n.Declaration != nil {
			w.analyzeStatement(n.Declaration, f|flagExported)
			return
		}
		w.analyzeExportList(n)

	case *ast.ReturnStatement:
		w.analyzeReturn(n)

	case *ast.IfStatement:
		w.analyzeExpression(n.Condition, nil, 0)
		w.analyzeNested(n.Consequence, symbols.NewEnclosedScope(w.scope, symbols.ScopeBlock))
		if n.Alternative != nil {
			w.analyzeNested(n.Alternative, symbols.NewEnclosedScope(w.scope, symbols.ScopeBlock))
		}

	case *ast.ForStatement:
		loop := symbols.NewLoopScope(w.scope)
		w.withScope(loop, func() {
			if n.Init != nil {
				w.analyzeStatement(n.Init, 0)
			}
			if n.Condition != nil {
				w.analyzeExpression(n.Condition, nil, 0)
			}
			if n.Update != nil {
				w.analyzeExpression(n.Update, nil, 0)
			}
			w.analyzeNested(n.Body, symbols.NewEnclosedScope(loop, symbols.ScopeBlock))
		})

	case *ast.ForInStatement:
		w.analyzeForIn(n)

	case *ast.WhileStatement:
		w.analyzeExpression(n.Condition, nil, 0)
		w.analyzeNested(n.Body, symbols.NewLoopScope(w.scope))

	case *ast.DoWhileStatement:
		w.analyzeNested(n.Body, symbols.NewLoopScope(w.scope))
		w.analyzeExpression(n.Condition, nil, 0)

	case *ast.BreakStatement:
		if n.Label != nil {
			if found, _ := w.scope.LookupLabel(n.Label.Value); !found {
				w.fail(diagnostics.ErrB006, n.Label.Span, "Undefined label '%s'", n.Label.Value)
			}
			return
		}
		if !w.scope.InBreakable() {
			w.fail(diagnostics.ErrB006, n.Span, "A 'break' statement can only be used within an enclosing iteration or switch statement")
		}

	case *ast.ContinueStatement:
		if n.Label != nil {
			found, loop := w.scope.LookupLabel(n.Label.Value)
			if !found {
				w.fail(diagnostics.ErrB006, n.Label.Span, "Undefined label '%s'", n.Label.Value)
			}
			if !loop {
				w.fail(diagnostics.ErrB006, n.Label.Span, "A 'continue' statement can only jump to a label of an enclosing iteration statement")
			}
			return
		}
		if !w.scope.InLoop() {
			w.fail(diagnostics.ErrB006, n.Span, "A 'continue' statement can only be used within an enclosing iteration statement")
		}

	case *ast.LabeledStatement:
		if found, _ := w.scope.LookupLabel(n.Label.Value); found {
			w.fail(diagnostics.ErrB001, n.Label.Span, "Duplicate label '%s'", n.Label.Value)
		}
		w.scope.PushLabel(n.Label.Value, isLoop(n.Body))
		defer w.scope.PopLabel()
		w.analyzeStatement(n.Body, 0)

	case *ast.BlockStatement:
		w.withScope(symbols.NewEnclosedScope(w.scope, symbols.ScopeBlock), func() {
			w.analyzeStatementList(n.Statements)
		})

	case *ast.ThrowStatement:
		w.analyzeExpression(n.Value, nil, 0)
		if info := w.scope.Function(); info != nil {
			info.Throws = true
		}

	case *ast.TryStatement:
		w.analyzeStatement(n.Block, 0)
		if n.Handler != nil {
			handler := symbols.NewEnclosedScope(w.scope, symbols.ScopeBlock)
			w.withScope(handler, func() {
				if n.Param != nil {
					var t typesystem.Type = typesystem.Unknown
					if n.ParamType != nil {
						t = w.buildType(n.ParamType)
					}
					w.declare(typesystem.NewReference(n.Param.Value, t, 0), n.Param.Span)
				}
				w.analyzeStatementList(n.Handler.Statements)
			})
		}
		if n.Finalizer != nil {
			w.analyzeStatement(n.Finalizer, 0)
		}

	case *ast.SwitchStatement:
		disc := w.analyzeExpression(n.Discriminant, nil, 0)
		w.withScope(symbols.NewSwitchScope(w.scope), func() {
			for _, c := range n.Cases {
				if c.Test != nil {
					w.analyzeExpression(c.Test, disc, 0)
				}
				w.analyzeStatementList(c.Body)
			}
		})

	case *ast.EmptyStatement:

	case *ast.ExpressionStatement:
		w.analyzeExpression(n.Expression, nil, 0)

	default:
		w.internalError(s)
	}
}

// analyzeNested runs a branch or loop body in scope. A block body shares
// that scope rather than opening another one.
func (w *walker) analyzeNested(s ast.Statement, scope *symbols.Scope) {
	w.withScope(scope, func() {
		if block, ok := s.(*ast.BlockStatement); ok {
			w.analyzeStatementList(block.Statements)
			return
		}
		w.analyzeStatementList([]ast.Statement{s})
	})
}

func isLoop(s ast.Statement) bool {
	switch s.(type) {
	case *ast.ForStatement, *ast.ForInStatement, *ast.WhileStatement, *ast.DoWhileStatement:
		return true
	}
	return false
}

func (w *walker) analyzeVariableDeclaration(n *ast.VariableDeclaration, f flags) {
	var refFlags typesystem.RefFlag
	if n.Kind == token.CONST {
		refFlags |= typesystem.FlagConstant
	}
	for _, d := range n.Declarations {
		var declared typesystem.Type
		if d.Type != nil {
			declared = w.buildType(d.Type)
		}

		var ref *typesystem.Reference
		switch {
		case d.Value != nil:
			vt := w.analyzeExpression(d.Value, declared, 0)
			if declared != nil {
				w.checkAssignable(declared, vt, d.Value.GetSpan())
				ref = typesystem.NewReference(d.Name.Value, declared, refFlags)
			} else if k := typesystem.KindOf(vt); (k == typesystem.KindNull || k == typesystem.KindUndefined) && n.Kind != token.CONST {
				// `let x = null` takes the type of its first assignment.
				ref = typesystem.NewInferredReference(d.Name.Value, refFlags)
			} else {
				ref = typesystem.NewReference(d.Name.Value, vt, refFlags)
			}
		case declared != nil:
			ref = typesystem.NewReference(d.Name.Value, declared, refFlags)
		default:
			ref = typesystem.NewInferredReference(d.Name.Value, refFlags)
		}

		w.declare(ref, d.Name.Span)
		if f.has(flagExported) {
			w.exportValue(ref, d.Name.Span)
		}
	}
}

// analyzeForIn covers for-in (string keys) and for-of (elements).
func (w *walker) analyzeForIn(n *ast.ForInStatement) {
	right := w.analyzeExpression(n.Right, nil, 0)
	var elem typesystem.Type = typesystem.String
	if n.Of {
		elem = w.iterationType(right, n.Right.GetSpan())
	}

	loop := symbols.NewLoopScope(w.scope)
	w.withScope(loop, func() {
		if n.Decl != nil {
			var refFlags typesystem.RefFlag
			if n.Decl.Kind == token.CONST {
				refFlags = typesystem.FlagConstant
			}
			for _, d := range n.Decl.Declarations {
				t := elem
				if d.Type != nil {
					t = w.buildType(d.Type)
					w.checkAssignable(t, elem, d.Name.Span)
				}
				w.declare(typesystem.NewReference(d.Name.Value, t, refFlags), d.Name.Span)
			}
		} else {
			target := w.analyzeExpression(n.Target, nil, flagMutating)
			w.assignTo(n.Target, target, elem, n.Target.GetSpan())
		}
		w.analyzeNested(n.Body, symbols.NewEnclosedScope(loop, symbols.ScopeBlock))
	})
}

func (w *walker) iterationType(t typesystem.Type, span token.Span) typesystem.Type {
	switch r := typesystem.Resolve(t).(type) {
	case *typesystem.Array:
		return r.Element
	case *typesystem.Union:
		var elems []typesystem.Type
		for _, m := range r.Members {
			elems = append(elems, w.iterationType(m, span))
		}
		return typesystem.NewUnion(elems...)
	}
	switch typesystem.KindOf(t) {
	case typesystem.KindString:
		return typesystem.String
	case typesystem.KindUnknown:
		return typesystem.Unknown
	}
	w.fail(diagnostics.ErrT001, span, "Type '%s' is not an array type", typeName(t))
	return nil
}
