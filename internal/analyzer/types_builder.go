package analyzer

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/symbols"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// buildType converts a type annotation into a Type in the current scope.
func (w *walker) buildType(node ast.Type) typesystem.Type {
	switch n := node.(type) {
	case nil:
		return typesystem.Unknown

	case *ast.KeywordType:
		return keywordType(n.Name)

	case *ast.TypeReference:
		return w.buildTypeReference(n)

	case *ast.ArrayType:
		return typesystem.NewArray(w.buildType(n.Element))

	case *ast.UnionType:
		members := make([]typesystem.Type, len(n.Types))
		for i, t := range n.Types {
			members[i] = w.buildType(t)
		}
		return typesystem.NewUnion(members...)

	case *ast.FunctionType:
		fn := &typesystem.Function{}
		w.withTypeParams(n.TypeParams, func(params []*typesystem.TypeParam) {
			fn.TypeParams = params
			fn.Params = w.buildParams(n.Params)
			fn.Return = w.buildType(n.ReturnType)
		})
		return fn

	case *ast.TypeLiteral:
		if n.Index != nil {
			if len(n.Members) > 0 {
				w.fail(diagnostics.ErrP003, n.Index.Span, "Index signatures cannot be combined with other members")
			}
			return &typesystem.Mapped{Key: w.buildType(n.Index.KeyType), Value: w.buildType(n.Index.Value)}
		}
		obj := typesystem.NewObject("")
		for _, m := range n.Members {
			obj.AddMember(w.buildMember(m))
		}
		return obj

	case *ast.MappedType:
		key := &typesystem.TypeParam{Name: n.Param.Value, Constraint: w.buildType(n.Constraint)}
		var value typesystem.Type
		w.withTypeBindings(func(s *symbols.Scope) {
			s.SetType(key.Name, key)
			value = w.buildType(n.Value)
		})
		return &typesystem.Mapped{Key: key, Value: value}

	case *ast.KeyofType:
		w.buildType(n.Type)
		return typesystem.String

	case *ast.LiteralType:
		switch n.Value.(type) {
		case *ast.StringLiteral, *ast.TemplateLiteral:
			return typesystem.String
		case *ast.NumberLiteral:
			return typesystem.Number
		case *ast.BooleanLiteral:
			return typesystem.Boolean
		}
		w.internalError(n.Value)

	case *ast.ParenthesizedType:
		return w.buildType(n.Type)
	}
	w.internalError(node)
	return nil
}

func keywordType(name string) typesystem.Type {
	switch name {
	case "number":
		return typesystem.Number
	case "string":
		return typesystem.String
	case "boolean":
		return typesystem.Boolean
	case "void":
		return typesystem.Void
	case "never":
		return typesystem.Never
	case "null":
		return typesystem.Null
	case "undefined":
		return typesystem.Undefined
	}
	// any, unknown and object are not distinguished.
	return typesystem.Unknown
}

func (w *walker) buildTypeReference(n *ast.TypeReference) typesystem.Type {
	var t typesystem.Type
	if n.Qualifier != nil {
		t = w.lookupQualifiedType(n)
	} else {
		found, ok := w.scope.LookupType(n.Name.Value)
		if !ok {
			w.fail(diagnostics.ErrB005, n.Name.Span, "Cannot find type '%s'", n.Name.Value)
		}
		t = found
	}

	args := make([]typesystem.Type, len(n.Args))
	for i, a := range n.Args {
		args[i] = w.buildType(a)
	}

	alias, ok := t.(*typesystem.Alias)
	if !ok {
		if len(args) > 0 {
			w.fail(diagnostics.ErrT010, n.Span, "%s", (&typesystem.NotGenericError{Name: n.Name.Value}).Error())
		}
		return t
	}
	w.ensureResolved(alias)
	if len(alias.Params) == 0 && len(args) == 0 {
		return alias
	}
	if err := typesystem.CheckArity(alias, args); err != nil {
		w.fail(diagnostics.ErrT010, n.Span, "%s", err.Error())
	}
	return typesystem.Instantiate(alias, args)
}

// lookupQualifiedType resolves ns.T through a namespace import, or E.M to
// an enum member type.
func (w *walker) lookupQualifiedType(n *ast.TypeReference) typesystem.Type {
	q := n.Qualifier.Value
	if dep, ok := w.namespaces[q]; ok {
		if t, ok := dep.ExportedType(n.Name.Value); ok {
			return t
		}
		w.fail(diagnostics.ErrB005, n.Name.Span, "Cannot find type '%s.%s'", q, n.Name.Value)
	}
	if t, ok := w.scope.LookupType(q); ok {
		if enum, ok := t.(*typesystem.Enum); ok {
			if m := enum.Member(n.Name.Value); m != nil {
				return m
			}
		}
	}
	w.fail(diagnostics.ErrB005, n.Span, "Cannot find type '%s.%s'", q, n.Name.Value)
	return nil
}

func (w *walker) buildMember(m *ast.PropertySignature) *typesystem.Reference {
	var flags typesystem.RefFlag
	if m.Optional {
		flags |= typesystem.FlagOptional
	}
	return typesystem.NewReference(m.Name.Value, w.buildType(m.Type), flags)
}

// buildParams converts a parameter list. Unannotated parameters are unknown
// unless a default value gives them a type.
func (w *walker) buildParams(params []*ast.Parameter) []typesystem.Param {
	out := make([]typesystem.Param, len(params))
	seenOptional := false
	for i, p := range params {
		if p.IsRequired() && seenOptional {
			w.fail(diagnostics.ErrT006, p.Span, "A required parameter cannot follow an optional parameter")
		}
		if !p.IsRequired() {
			seenOptional = true
		}
		var t typesystem.Type
		switch {
		case p.Type != nil:
			t = w.buildType(p.Type)
		case p.Default != nil:
			t = literalType(p.Default)
		case p.Rest:
			t = typesystem.NewArray(typesystem.Unknown)
		default:
			t = typesystem.Unknown
		}
		out[i] = typesystem.Param{
			Name:     p.Name.Value,
			Type:     t,
			Optional: p.Optional || p.Default != nil,
			Rest:     p.Rest,
		}
	}
	return out
}

// literalType returns the primitive type of a literal expression, unknown
// otherwise.
func literalType(e ast.Expression) typesystem.Type {
	switch e.(type) {
	case *ast.NumberLiteral:
		return typesystem.Number
	case *ast.StringLiteral, *ast.TemplateLiteral:
		return typesystem.String
	case *ast.BooleanLiteral:
		return typesystem.Boolean
	}
	return typesystem.Unknown
}

// withTypeParams binds a generic parameter list in a transient scope for
// the duration of fn.
func (w *walker) withTypeParams(decls []*ast.TypeParameter, fn func([]*typesystem.TypeParam)) {
	if len(decls) == 0 {
		fn(nil)
		return
	}
	w.withTypeBindings(func(s *symbols.Scope) {
		params := w.bindTypeParams(s, decls)
		fn(params)
	})
}

func (w *walker) bindTypeParams(s *symbols.Scope, decls []*ast.TypeParameter) []*typesystem.TypeParam {
	params := make([]*typesystem.TypeParam, len(decls))
	for i, d := range decls {
		params[i] = &typesystem.TypeParam{Name: d.Name.Value, Constraint: typesystem.Unknown}
		s.SetType(d.Name.Value, params[i])
	}
	// Constraints may mention any parameter of the list.
	for i, d := range decls {
		if d.Constraint != nil {
			params[i].Constraint = w.buildType(d.Constraint)
		}
	}
	return params
}

// withTypeBindings runs fn in a fresh block scope used only for type names.
func (w *walker) withTypeBindings(fn func(*symbols.Scope)) {
	s := symbols.NewEnclosedScope(w.scope, symbols.ScopeBlock)
	w.withScope(s, func() { fn(s) })
}
