package analyzer

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/token"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// contentType maps an enum member to its enum's content type and a type
// parameter to its constraint.
func contentType(t typesystem.Type) typesystem.Type {
	switch r := typesystem.Resolve(t).(type) {
	case *typesystem.EnumMember:
		return r.Owner.Content
	case *typesystem.TypeParam:
		if r.Constraint == nil {
			return typesystem.Unknown
		}
		return contentType(r.Constraint)
	}
	return t
}

func operandKind(t typesystem.Type) typesystem.Kind {
	return typesystem.KindOf(contentType(t))
}

// arithmeticOperand reports whether t may appear in an arithmetic,
// relational or bitwise expression.
func arithmeticOperand(t typesystem.Type) bool {
	if u, ok := typesystem.Resolve(t).(*typesystem.Union); ok {
		for _, m := range u.Members {
			if !arithmeticOperand(m) {
				return false
			}
		}
		return true
	}
	switch operandKind(t) {
	case typesystem.KindNumber, typesystem.KindString, typesystem.KindUnknown, typesystem.KindNever:
		return true
	}
	return false
}

// largerTag returns the operand whose kind tag is larger, left on a tie.
func largerTag(left, right typesystem.Type) typesystem.Type {
	if typesystem.KindOf(right) > typesystem.KindOf(left) {
		return right
	}
	return left
}

// joinTypes unions types, dropping members equivalent to one already
// present.
func joinTypes(types ...typesystem.Type) typesystem.Type {
	var members []typesystem.Type
outer:
	for _, t := range types {
		for _, m := range members {
			if typesystem.IsAssignable(m, t) && typesystem.IsAssignable(t, m) {
				continue outer
			}
		}
		members = append(members, t)
	}
	if len(members) == 0 {
		return typesystem.Unknown
	}
	return typesystem.NewUnion(members...)
}

func (w *walker) analyzeMember(n *ast.MemberExpression, f flags) typesystem.Type {
	base := w.analyzeExpression(n.Object, nil, 0)
	ref := w.memberOf(base, n.Property.Value, n.Property.Span)
	if f.has(flagMutating) && ref.IsConstant() {
		w.fail(diagnostics.ErrT007, n.Property.Span, "Cannot assign to '%s' because it is a read-only property", ref.Name)
	}
	return ref.Type
}

// memberOf looks up property name on a value of type base.
func (w *walker) memberOf(base typesystem.Type, name string, span token.Span) *typesystem.Reference {
	missing := func() {
		w.fail(diagnostics.ErrT004, span, "Property '%s' does not exist on type '%s'", name, typeName(base))
	}

	switch t := typesystem.Resolve(base).(type) {
	case *typesystem.Object:
		w.ensureResolved(t)
		if m := t.Member(name); m != nil {
			return m
		}
		missing()

	case *typesystem.Class:
		if m := t.Member(name); m != nil {
			return m
		}
		missing()

	case *typesystem.Enum:
		if m := t.Member(name); m != nil {
			return typesystem.NewReference(name, m, typesystem.FlagConstant)
		}
		missing()

	case *typesystem.EnumMember:
		return w.memberOf(t.Owner.Content, name, span)

	case *typesystem.Array:
		if mt, ok := arrayMember(t, name); ok {
			return typesystem.NewReference(name, mt, memberFlags(name))
		}
		missing()

	case *typesystem.Mapped:
		return typesystem.NewReference(name, t.Value, 0)

	case *typesystem.TypeParam:
		if t.Constraint == nil || typesystem.KindOf(t.Constraint) == typesystem.KindUnknown {
			w.fail(diagnostics.ErrT004, span, "Property '%s' does not exist on type '%s'", name, t.Name)
		}
		return w.memberOf(t.Constraint, name, span)

	case *typesystem.Union:
		var types []typesystem.Type
		var refFlags typesystem.RefFlag
		for _, m := range t.Members {
			switch typesystem.KindOf(m) {
			case typesystem.KindNull, typesystem.KindUndefined:
				continue
			}
			ref := w.memberOf(m, name, span)
			types = append(types, ref.Type)
			refFlags |= ref.Flags & typesystem.FlagConstant
		}
		if len(types) == 0 {
			missing()
		}
		return typesystem.NewReference(name, typesystem.NewUnion(types...), refFlags)

	case *typesystem.Primitive:
		var mt typesystem.Type
		var ok bool
		switch t.Kind() {
		case typesystem.KindUnknown:
			w.fail(diagnostics.ErrT004, span, "Object is of type 'unknown'")
		case typesystem.KindString:
			mt, ok = stringMember(name)
		case typesystem.KindNumber:
			mt, ok = numberMember(name)
		default:
			w.fail(diagnostics.ErrT004, span, "Type '%s' is not an object", typeName(base))
		}
		if !ok {
			missing()
		}
		return typesystem.NewReference(name, mt, typesystem.FlagConstant)
	}
	w.fail(diagnostics.ErrT004, span, "Type '%s' is not an object", typeName(base))
	return nil
}

// memberFlags marks builtin array methods read-only; length stays
// writable.
func memberFlags(name string) typesystem.RefFlag {
	if name == "length" {
		return 0
	}
	return typesystem.FlagConstant
}

func (w *walker) analyzeIndex(n *ast.IndexExpression, f flags) typesystem.Type {
	base := w.analyzeExpression(n.Object, nil, 0)
	index := w.analyzeExpression(n.Index, nil, 0)
	return w.indexOf(base, index, n, f)
}

func (w *walker) indexOf(base, index typesystem.Type, n *ast.IndexExpression, f flags) typesystem.Type {
	span := n.Index.GetSpan()
	switch t := typesystem.Resolve(base).(type) {
	case *typesystem.Array:
		switch operandKind(index) {
		case typesystem.KindNumber, typesystem.KindUnknown:
			return t.Element
		}
		w.fail(diagnostics.ErrT001, span, "Type '%s' cannot be used as an index type", typeName(index))

	case *typesystem.Mapped:
		return t.Value

	case *typesystem.Object, *typesystem.Class:
		if lit, ok := n.Index.(*ast.StringLiteral); ok {
			ref := w.memberOf(t, lit.Value, span)
			if f.has(flagMutating) && ref.IsConstant() {
				w.fail(diagnostics.ErrT007, span, "Cannot assign to '%s' because it is a read-only property", ref.Name)
			}
			return ref.Type
		}
		return typesystem.Unknown

	case *typesystem.Enum:
		return typesystem.String

	case *typesystem.TypeParam:
		return w.indexOf(contentType(t), index, n, f)

	case *typesystem.Union:
		var types []typesystem.Type
		for _, m := range t.Members {
			switch typesystem.KindOf(m) {
			case typesystem.KindNull, typesystem.KindUndefined:
				continue
			}
			types = append(types, w.indexOf(m, index, n, f))
		}
		return joinTypes(types...)
	}

	switch typesystem.KindOf(base) {
	case typesystem.KindString:
		if f.has(flagMutating) {
			w.fail(diagnostics.ErrT007, n.Span, "Index signature in type 'string' only permits reading")
		}
		return typesystem.String
	case typesystem.KindUnknown:
		w.fail(diagnostics.ErrT004, n.Object.GetSpan(), "Object is of type 'unknown'")
	}
	w.fail(diagnostics.ErrT004, n.Object.GetSpan(), "Type '%s' has no index signature", typeName(base))
	return nil
}
