package analyzer

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/token"
	"github.com/funvibe/tsfront/internal/typesystem"
)

func (w *walker) analyzeCall(n *ast.CallExpression) typesystem.Type {
	callee := w.analyzeExpression(n.Callee, nil, 0)
	switch t := typesystem.Resolve(contentOrSelf(callee)).(type) {
	case *typesystem.Function:
		sig := w.instantiate(t, n.TypeArgs, n.Span)
		w.checkArguments(sig, n.Arguments, n.Span)
		if sig.Return == nil {
			return typesystem.Unknown
		}
		return sig.Return

	case *typesystem.Class:
		// Host error classes may be called without new.
		w.checkArguments(t.Constructor, n.Arguments, n.Span)
		return t
	}

	if typesystem.KindOf(callee) == typesystem.KindUnknown {
		w.analyzeArgumentsLoosely(n.Arguments)
		return typesystem.Unknown
	}
	w.fail(diagnostics.ErrT003, n.Callee.GetSpan(), "This expression is not callable. Type '%s' has no call signatures", typeName(callee))
	return nil
}

func (w *walker) analyzeNew(n *ast.NewExpression) typesystem.Type {
	callee := w.analyzeExpression(n.Callee, nil, 0)
	if class, ok := typesystem.Resolve(callee).(*typesystem.Class); ok {
		if len(n.TypeArgs) > 0 {
			w.fail(diagnostics.ErrT010, n.Span, "Expected 0 type arguments, but got %d", len(n.TypeArgs))
		}
		w.checkArguments(class.Constructor, n.Arguments, n.Span)
		return class
	}
	if typesystem.KindOf(callee) == typesystem.KindUnknown {
		w.analyzeArgumentsLoosely(n.Arguments)
		return typesystem.Unknown
	}
	w.fail(diagnostics.ErrT003, n.Callee.GetSpan(), "This expression is not constructable. Type '%s' has no construct signatures", typeName(callee))
	return nil
}

// contentOrSelf unwraps a type parameter to its constraint.
func contentOrSelf(t typesystem.Type) typesystem.Type {
	if p, ok := typesystem.Resolve(t).(*typesystem.TypeParam); ok && p.Constraint != nil {
		return p.Constraint
	}
	return t
}

// instantiate specializes a generic signature. Type parameters without an
// explicit argument take their constraint.
func (w *walker) instantiate(fn *typesystem.Function, typeArgs []ast.Type, span token.Span) *typesystem.Function {
	if len(typeArgs) > 0 && len(typeArgs) != len(fn.TypeParams) {
		w.fail(diagnostics.ErrT010, span, "Expected %d type arguments, but got %d", len(fn.TypeParams), len(typeArgs))
	}
	if len(fn.TypeParams) == 0 {
		return fn
	}
	args := make([]typesystem.Type, len(typeArgs))
	for i, a := range typeArgs {
		args[i] = w.buildType(a)
		if c := fn.TypeParams[i].Constraint; c != nil && !typesystem.IsAssignable(c, args[i]) {
			w.fail(diagnostics.ErrT001, a.GetSpan(), "Type '%s' does not satisfy the constraint '%s'", typeName(args[i]), typeName(c))
		}
	}
	inst, ok := typesystem.Substitute(fn, typesystem.Bind(fn.TypeParams, args)).(*typesystem.Function)
	if !ok {
		w.internalError(nil)
	}
	c := *inst
	c.TypeParams = nil
	return &c
}

// checkArguments validates the argument count, then each argument against
// the parameter receiving it. A spread argument disables the count check.
func (w *walker) checkArguments(sig *typesystem.Function, args []ast.Expression, span token.Span) {
	spread := false
	for _, a := range args {
		if _, ok := a.(*ast.SpreadElement); ok {
			spread = true
		}
	}
	if !spread {
		w.checkArity(sig, len(args), span)
	}

	for i, a := range args {
		if s, ok := a.(*ast.SpreadElement); ok {
			t := w.analyzeExpression(s.Argument, nil, 0)
			w.iterationType(t, s.Argument.GetSpan())
			continue
		}
		pt, ok := sig.ParamAt(i)
		if !ok {
			w.analyzeExpression(a, nil, 0)
			continue
		}
		at := w.analyzeExpression(a, pt, 0)
		if !typesystem.IsAssignable(pt, at) {
			w.fail(diagnostics.ErrT001, a.GetSpan(), "Argument of type '%s' is not assignable to parameter of type '%s'", typeName(at), typeName(pt))
		}
	}
}

func (w *walker) checkArity(sig *typesystem.Function, got int, span token.Span) {
	lo, hi := sig.MinArgs(), sig.MaxArgs()
	if got >= lo && (hi < 0 || got <= hi) {
		return
	}
	switch {
	case hi < 0:
		w.fail(diagnostics.ErrT002, span, "Expected at least %d arguments, but got %d", lo, got)
	case lo == hi:
		w.fail(diagnostics.ErrT002, span, "Expected %d arguments, but got %d", lo, got)
	default:
		w.fail(diagnostics.ErrT002, span, "Expected %d-%d arguments, but got %d", lo, hi, got)
	}
}

func (w *walker) analyzeArgumentsLoosely(args []ast.Expression) {
	for _, a := range args {
		w.analyzeExpression(a, nil, 0)
	}
}
