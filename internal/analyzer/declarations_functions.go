package analyzer

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/symbols"
	"github.com/funvibe/tsfront/internal/token"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// resolveFunctionSignature fills a function placeholder with its
// parameter and return types. An unannotated return stays unknown until
// the body is analyzed.
func (w *walker) resolveFunctionSignature(n *ast.FunctionDeclaration, fn *typesystem.Function) {
	w.withTypeParams(n.TypeParams, func(params []*typesystem.TypeParam) {
		fn.TypeParams = params
		fn.Params = w.buildParams(n.Params)
		if n.ReturnType != nil {
			fn.Return = w.buildType(n.ReturnType)
		}
	})
}

func (w *walker) analyzeFunctionBody(n *ast.FunctionDeclaration, fn *typesystem.Function) {
	w.analyzeFunction(fn, n.Params, n.Body, nil, n.ReturnType != nil, nil)
}

// analyzeFunctionLiteral types a function or arrow expression. Parameters
// without annotation take their types from expected when it is a function.
func (w *walker) analyzeFunctionLiteral(n *ast.FunctionLiteral, expected typesystem.Type) typesystem.Type {
	fn := &typesystem.Function{Return: typesystem.Unknown}
	if n.Name != nil {
		fn.Name = n.Name.Value
	}
	contextual, _ := typesystem.Resolve(expected).(*typesystem.Function)

	w.withTypeParams(n.TypeParams, func(params []*typesystem.TypeParam) {
		fn.TypeParams = params
		fn.Params = w.buildParams(n.Params)
		if contextual != nil {
			for i, p := range n.Params {
				if p.Type != nil || p.Default != nil || p.Rest {
					continue
				}
				if t, ok := contextual.ParamAt(i); ok {
					fn.Params[i].Type = t
				}
			}
		}
		if n.ReturnType != nil {
			fn.Return = w.buildType(n.ReturnType)
		}
	})
	w.analyzeFunction(fn, n.Params, n.Body, n.ExprBody, n.ReturnType != nil, n.Name)
	return fn
}

// analyzeFunction checks a body in a fresh function scope and settles the
// return type: never when the body throws, void when nothing was returned.
func (w *walker) analyzeFunction(fn *typesystem.Function, params []*ast.Parameter, body *ast.BlockStatement,
	exprBody ast.Expression, explicit bool, self *ast.Identifier) {
	info := &symbols.FunctionInfo{Type: fn, Explicit: explicit}
	scope := symbols.NewFunctionScope(w.scope, info)
	for _, tp := range fn.TypeParams {
		scope.SetType(tp.Name, tp)
	}
	selfName := ""
	if self != nil {
		selfName = self.Value
		_ = scope.DeclareLocal(typesystem.NewReference(selfName, fn, typesystem.FlagConstant))
	}

	w.withScope(scope, func() {
		for i, p := range params {
			pt := fn.Params[i].Type
			if p.Default != nil {
				dt := w.analyzeExpression(p.Default, pt, 0)
				w.checkAssignable(pt, dt, p.Default.GetSpan())
			}
			ref := typesystem.NewReference(p.Name.Value, pt, 0)
			if p.Name.Value == selfName {
				// A parameter shadows the function's own name.
				_ = scope.DeclareLocal(ref)
				continue
			}
			w.declare(ref, p.Name.Span)
		}

		if exprBody != nil {
			w.recordReturn(info, exprBody, exprBody.GetSpan())
			return
		}
		w.analyzeStatementList(body.Statements)
	})

	switch {
	case info.Throws && !explicit:
		fn.Return = typesystem.Never
		fn.Throwing = true
	case info.Throws:
		fn.Throwing = true
	case !explicit && !info.Returned:
		fn.Return = typesystem.Void
	}
}

func (w *walker) analyzeReturn(n *ast.ReturnStatement) {
	info := w.scope.Function()
	if info == nil {
		w.fail(diagnostics.ErrT005, n.Span, "A 'return' statement can only be used within a function body")
	}
	w.recordReturn(info, n.Value, n.Span)
}

// recordReturn checks a returned value. With an annotated return type the
// value is analyzed against it; otherwise the first return fixes the type
// and later ones must agree on the kind.
func (w *walker) recordReturn(info *symbols.FunctionInfo, value ast.Expression, span token.Span) {
	fn := info.Type
	if info.Explicit {
		info.Returned = true
		if value == nil {
			w.checkAssignable(fn.Return, typesystem.Undefined, span)
			return
		}
		t := w.analyzeExpression(value, fn.Return, 0)
		w.checkAssignable(fn.Return, t, value.GetSpan())
		return
	}

	var t typesystem.Type = typesystem.Undefined
	if value != nil {
		t = w.analyzeExpression(value, nil, 0)
		span = value.GetSpan()
	}
	if !info.Returned {
		info.Returned = true
		fn.Return = t
		return
	}
	prev, got := typesystem.KindOf(fn.Return), typesystem.KindOf(t)
	if prev == typesystem.KindUnknown || got == typesystem.KindUnknown {
		return
	}
	if prev != got {
		w.fail(diagnostics.ErrT001, span, "Type '%s' is not assignable to type '%s'", typeName(t), typeName(fn.Return))
	}
}
