package analyzer

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/symbols"
	"github.com/funvibe/tsfront/internal/token"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// registerEnum declares and fully resolves an enum. Members may refer to
// earlier members by name; a member without initializer follows a numeric
// predecessor.
func (w *walker) registerEnum(n *ast.EnumDeclaration, exported bool) {
	name := n.Name.Value
	enum := typesystem.NewEnum(name)
	w.declareType(name, enum, n.Name.Span)
	ref := typesystem.NewReference(name, enum, typesystem.FlagConstant)
	w.declare(ref, n.Name.Span)

	scope := symbols.NewEnclosedScope(w.scope, symbols.ScopeEnum)
	var content typesystem.Type
	var prev any = -1.0

	w.withScope(scope, func() {
		for _, m := range n.Members {
			var value any
			if m.Value != nil {
				value = w.enumValue(enum, m.Value)
			} else if next, ok := prev.(float64); ok {
				value = next + 1
			} else {
				w.fail(diagnostics.ErrT009, m.Span, "Enum member '%s' must have an initializer", m.Name.Value)
			}

			var kind typesystem.Type = typesystem.Number
			if _, ok := value.(string); ok {
				kind = typesystem.String
			}
			if content != nil && kind != content {
				w.fail(diagnostics.ErrT009, m.Span, "Enums can only have numeric or string values")
			}
			content = kind
			prev = value

			member := enum.AddMember(m.Name.Value, value)
			if err := scope.DeclareLocal(typesystem.NewReference(m.Name.Value, member, typesystem.FlagConstant)); err != nil {
				w.fail(diagnostics.ErrB001, m.Name.Span, "%s", err.Error())
			}
		}
	})
	if content != nil {
		enum.Content = content
	}

	if exported {
		w.exportValue(ref, n.Name.Span)
		w.exportType(name, enum, n.Name.Span)
	}
}

// enumValue evaluates a constant member initializer. Non-constant numeric
// expressions are accepted with an unknown value.
func (w *walker) enumValue(enum *typesystem.Enum, e ast.Expression) any {
	switch e := e.(type) {
	case *ast.NumberLiteral:
		return e.Value
	case *ast.StringLiteral:
		return e.Value
	case *ast.TemplateLiteral:
		if len(e.Expressions) == 0 {
			return e.Quasis[0]
		}
	case *ast.ParenthesizedExpression:
		return w.enumValue(enum, e.Expression)
	case *ast.PrefixExpression:
		if e.Operator == token.MINUS || e.Operator == token.PLUS {
			if v, ok := w.enumValue(enum, e.Operand).(float64); ok {
				if e.Operator == token.MINUS {
					return -v
				}
				return v
			}
		}
	case *ast.Identifier:
		if m := enum.Member(e.Value); m != nil {
			return m.Value
		}
	case *ast.MemberExpression:
		if id, ok := e.Object.(*ast.Identifier); ok && id.Value == enum.Name {
			if m := enum.Member(e.Property.Value); m != nil {
				return m.Value
			}
		}
	}

	switch t := typesystem.Resolve(w.analyzeExpression(e, nil, 0)).(type) {
	case *typesystem.EnumMember:
		return t.Value
	default:
		if t.Kind() == typesystem.KindString {
			w.fail(diagnostics.ErrT009, e.GetSpan(), "Enum initializer must be a constant string")
		}
		if t.Kind() != typesystem.KindNumber && t.Kind() != typesystem.KindUnknown {
			w.fail(diagnostics.ErrT009, e.GetSpan(), "Enums can only have numeric or string values")
		}
	}
	return nil
}

// resolveInterface fills the placeholder object with heritage members
// followed by the interface's own members. Later members overwrite
// earlier ones of the same name.
func (w *walker) resolveInterface(n *ast.InterfaceDeclaration, obj *typesystem.Object) {
	if len(n.TypeParams) > 0 {
		w.fail(diagnostics.ErrP003, n.TypeParams[0].Span, "Generic interfaces are not supported; use a generic type alias")
	}
	for _, ext := range n.Extends {
		base := w.buildType(ext)
		w.ensureResolved(base)
		parent, ok := typesystem.Resolve(base).(*typesystem.Object)
		if !ok {
			w.fail(diagnostics.ErrT004, ext.Span, "An interface can only extend an object type, got '%s'", typeName(base))
		}
		if parent == obj {
			w.fail(diagnostics.ErrT004, ext.Span, "Interface '%s' recursively extends itself", obj.Name)
		}
		for _, m := range parent.Members {
			obj.AddMember(m)
		}
	}
	for _, m := range n.Members {
		obj.AddMember(w.buildMember(m))
	}
}

// resolveTypeAlias builds the right-hand side with the alias's own type
// parameters in scope.
func (w *walker) resolveTypeAlias(n *ast.TypeAliasDeclaration, alias *typesystem.Alias) {
	w.withTypeBindings(func(s *symbols.Scope) {
		for i, d := range n.TypeParams {
			s.SetType(d.Name.Value, alias.Params[i])
		}
		for i, d := range n.TypeParams {
			if d.Constraint != nil {
				alias.Params[i].Constraint = w.buildType(d.Constraint)
			}
		}
		target := w.buildType(n.Type)
		if target == alias {
			w.fail(diagnostics.ErrT004, n.Type.GetSpan(), "Type alias '%s' circularly references itself", alias.Name)
		}
		alias.Aliased = target
	})
}
