package analyzer

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// analyzeArrayLiteral checks every element against the expected element
// type at the element's own position.
func (w *walker) analyzeArrayLiteral(n *ast.ArrayLiteral, expected typesystem.Type) typesystem.Type {
	var elemExpected typesystem.Type
	if arr := contextualArray(expected); arr != nil {
		elemExpected = arr.Element
	}

	var elems []typesystem.Type
	for _, e := range n.Elements {
		var t typesystem.Type
		if s, ok := e.(*ast.SpreadElement); ok {
			t = w.iterationType(w.analyzeExpression(s.Argument, expected, 0), s.Argument.GetSpan())
		} else {
			t = w.analyzeExpression(e, elemExpected, 0)
		}
		if elemExpected != nil {
			w.checkAssignable(elemExpected, t, e.GetSpan())
		}
		elems = append(elems, t)
	}

	if elemExpected != nil {
		return typesystem.NewArray(elemExpected)
	}
	return typesystem.NewArray(joinTypes(elems...))
}

// analyzeObjectLiteral builds an insertion-ordered object type. Property
// values are checked against the expected member types in place.
func (w *walker) analyzeObjectLiteral(n *ast.ObjectLiteral, expected typesystem.Type) typesystem.Type {
	target := contextualObject(expected)
	mapped, _ := typesystem.Resolve(expected).(*typesystem.Mapped)

	obj := typesystem.NewObject("")
	for _, p := range n.Properties {
		if p.Spread {
			w.spreadInto(obj, p)
			continue
		}

		var exp typesystem.Type
		switch {
		case target != nil:
			if m := target.Member(p.Key); m != nil {
				exp = m.Type
			}
		case mapped != nil:
			exp = mapped.Value
		}

		t := w.analyzeExpression(p.Value, exp, 0)
		if exp != nil {
			w.checkAssignable(exp, t, p.Value.GetSpan())
		}
		obj.AddMember(typesystem.NewReference(p.Key, t, 0))
	}
	return obj
}

func (w *walker) spreadInto(obj *typesystem.Object, p *ast.Property) {
	t := w.analyzeExpression(p.Value, nil, 0)
	switch r := typesystem.Resolve(t).(type) {
	case *typesystem.Object:
		for _, m := range r.Members {
			obj.AddMember(m.Clone(m.Name))
		}
		return
	case *typesystem.Class:
		for _, m := range r.Members {
			obj.AddMember(m.Clone(m.Name))
		}
		return
	case *typesystem.Mapped:
		return
	}
	if typesystem.KindOf(t) == typesystem.KindUnknown {
		return
	}
	w.fail(diagnostics.ErrT004, p.Value.GetSpan(), "Spread types may only be created from object types")
}

// contextualArray returns the array type the context expects, looking
// through a union with exactly one array member.
func contextualArray(expected typesystem.Type) *typesystem.Array {
	switch r := typesystem.Resolve(expected).(type) {
	case *typesystem.Array:
		return r
	case *typesystem.Union:
		var found *typesystem.Array
		for _, m := range r.Members {
			if a, ok := typesystem.Resolve(m).(*typesystem.Array); ok {
				if found != nil {
					return nil
				}
				found = a
			}
		}
		return found
	}
	return nil
}

// contextualObject is the object counterpart of contextualArray.
func contextualObject(expected typesystem.Type) *typesystem.Object {
	switch r := typesystem.Resolve(expected).(type) {
	case *typesystem.Object:
		return r
	case *typesystem.Union:
		var found *typesystem.Object
		for _, m := range r.Members {
			if o, ok := typesystem.Resolve(m).(*typesystem.Object); ok {
				if found != nil {
					return nil
				}
				found = o
			}
		}
		return found
	}
	return nil
}
