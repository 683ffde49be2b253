package analyzer

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/token"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// analyzeExpression returns the type of e. expected, when non-nil, is the
// type the context requires; literals use it to check their parts in
// place.
func (w *walker) analyzeExpression(e ast.Expression, expected typesystem.Type, f flags) typesystem.Type {
	switch n := e.(type) {
	case *ast.Identifier:
		return w.analyzeIdentifier(n, f)

	case *ast.NumberLiteral:
		return typesystem.Number

	case *ast.StringLiteral:
		return typesystem.String

	case *ast.TemplateLiteral:
		for _, x := range n.Expressions {
			w.analyzeExpression(x, nil, 0)
		}
		return typesystem.String

	case *ast.BooleanLiteral:
		return typesystem.Boolean

	case *ast.NullLiteral:
		return typesystem.Null

	case *ast.UndefinedLiteral:
		return typesystem.Undefined

	case *ast.ArrayLiteral:
		return w.analyzeArrayLiteral(n, expected)

	case *ast.ObjectLiteral:
		return w.analyzeObjectLiteral(n, expected)

	case *ast.SpreadElement:
		return w.analyzeExpression(n.Argument, nil, 0)

	case *ast.FunctionLiteral:
		return w.analyzeFunctionLiteral(n, expected)

	case *ast.MemberExpression:
		return w.analyzeMember(n, f)

	case *ast.IndexExpression:
		return w.analyzeIndex(n, f)

	case *ast.CallExpression:
		return w.analyzeCall(n)

	case *ast.NewExpression:
		return w.analyzeNew(n)

	case *ast.PrefixExpression:
		return w.analyzePrefix(n)

	case *ast.PostfixExpression:
		return w.analyzeUpdate(n.Operator, n.Operand)

	case *ast.InfixExpression:
		left := w.analyzeExpression(n.Left, nil, 0)
		right := w.analyzeExpression(n.Right, nil, 0)
		return w.binaryResult(n.Operator, left, right, n.Span)

	case *ast.AsExpression:
		source := w.analyzeExpression(n.Expression, nil, 0)
		target := w.buildType(n.Type)
		if !typesystem.IsAssignable(target, source) && !typesystem.IsAssignable(source, target) {
			w.fail(diagnostics.ErrT001, n.Span, "Conversion of type '%s' to type '%s' may be a mistake", typeName(source), typeName(target))
		}
		return target

	case *ast.ConditionalExpression:
		w.analyzeExpression(n.Test, nil, 0)
		consequent := w.analyzeExpression(n.Consequent, expected, 0)
		alternate := w.analyzeExpression(n.Alternate, expected, 0)
		return joinTypes(consequent, alternate)

	case *ast.AssignmentExpression:
		return w.analyzeAssignment(n)

	case *ast.SequenceExpression:
		var last typesystem.Type = typesystem.Undefined
		for _, x := range n.Expressions {
			last = w.analyzeExpression(x, nil, 0)
		}
		return last

	case *ast.ParenthesizedExpression:
		return w.analyzeExpression(n.Expression, expected, f)
	}
	w.internalError(e)
	return nil
}

func (w *walker) analyzeIdentifier(n *ast.Identifier, f flags) typesystem.Type {
	ref, ok := w.scope.LookupVariable(n.Value)
	if !ok {
		if _, isType := w.scope.LookupType(n.Value); isType {
			w.fail(diagnostics.ErrB002, n.Span, "'%s' only refers to a type, but is being used as a value here", n.Value)
		}
		w.fail(diagnostics.ErrB002, n.Span, "Cannot find name '%s'", n.Value)
	}
	if ref.Has(typesystem.FlagTypeOnly) {
		w.fail(diagnostics.ErrB002, n.Span, "'%s' cannot be used as a value because it was imported using 'import type'", n.Value)
	}
	if f.has(flagMutating) {
		switch {
		case ref.Has(typesystem.FlagImported):
			w.fail(diagnostics.ErrT007, n.Span, "Cannot assign to '%s' because it is an import", n.Value)
		case ref.IsConstant():
			w.fail(diagnostics.ErrT007, n.Span, "Cannot assign to '%s' because it is a constant", n.Value)
		}
	}
	return ref.Type
}

func (w *walker) analyzeAssignment(n *ast.AssignmentExpression) typesystem.Type {
	target := w.analyzeExpression(n.Target, nil, flagMutating)
	if n.Operator == token.ASSIGN {
		expected := target
		if w.inferredTarget(n.Target) != nil {
			expected = nil
		}
		value := w.analyzeExpression(n.Value, expected, 0)
		w.assignTo(n.Target, target, value, n.Value.GetSpan())
		return value
	}

	base, ok := n.Operator.CompoundBase()
	if !ok {
		w.internalError(n)
	}
	value := w.analyzeExpression(n.Value, nil, 0)
	result := w.binaryResult(base, target, value, n.Span)
	w.assignTo(n.Target, target, result, n.Span)
	return result
}

// inferredTarget returns the binding behind target when it is a variable
// whose type is still to be fixed by its first assignment.
func (w *walker) inferredTarget(target ast.Expression) *typesystem.Reference {
	for {
		p, ok := target.(*ast.ParenthesizedExpression)
		if !ok {
			break
		}
		target = p.Expression
	}
	id, ok := target.(*ast.Identifier)
	if !ok {
		return nil
	}
	ref, ok := w.scope.LookupVariable(id.Value)
	if !ok || ref.IsFrozen() {
		return nil
	}
	return ref
}

// assignTo stores value into target: an inferred variable takes its type,
// everything else must accept it.
func (w *walker) assignTo(target ast.Expression, targetType, value typesystem.Type, span token.Span) {
	if ref := w.inferredTarget(target); ref != nil {
		ref.Infer(value)
		return
	}
	w.checkAssignable(targetType, value, span)
}

func (w *walker) analyzePrefix(n *ast.PrefixExpression) typesystem.Type {
	switch n.Operator {
	case token.INCREMENT, token.DECREMENT:
		return w.analyzeUpdate(n.Operator, n.Operand)
	case token.BANG:
		w.analyzeExpression(n.Operand, nil, 0)
		return typesystem.Boolean
	case token.TYPEOF:
		w.analyzeExpression(n.Operand, nil, 0)
		return typesystem.String
	case token.VOID:
		w.analyzeExpression(n.Operand, nil, 0)
		return typesystem.Undefined
	case token.DELETE:
		w.analyzeExpression(n.Operand, nil, 0)
		return typesystem.Boolean
	case token.MINUS, token.TILDE, token.PLUS:
		t := w.analyzeExpression(n.Operand, nil, 0)
		k := operandKind(t)
		ok := k == typesystem.KindNumber || k == typesystem.KindUnknown || k == typesystem.KindNever
		if n.Operator == token.PLUS && k == typesystem.KindString {
			ok = true
		}
		if !ok {
			w.fail(diagnostics.ErrT008, n.Span, "Operator '%s' cannot be applied to type '%s'", n.Operator, typeName(t))
		}
		return typesystem.Number
	}
	w.internalError(n)
	return nil
}

// analyzeUpdate types ++ and --, which need a mutable numeric operand.
func (w *walker) analyzeUpdate(op token.Kind, operand ast.Expression) typesystem.Type {
	t := w.analyzeExpression(operand, nil, flagMutating)
	if ref := w.inferredTarget(operand); ref != nil {
		ref.Infer(typesystem.Number)
		return typesystem.Number
	}
	switch operandKind(t) {
	case typesystem.KindNumber, typesystem.KindUnknown:
		return typesystem.Number
	}
	w.fail(diagnostics.ErrT008, operand.GetSpan(), "Operator '%s' cannot be applied to type '%s'", op, typeName(t))
	return nil
}

// binaryResult applies the operator typing rules. Comparisons yield
// boolean; other operators yield the operand with the larger kind tag.
func (w *walker) binaryResult(op token.Kind, left, right typesystem.Type, span token.Span) typesystem.Type {
	switch op {
	case token.AND, token.OR, token.NULLISH:
		return largerTag(left, right)
	case token.EQ, token.NOT_EQ, token.STRICT_EQ, token.STRICT_NOT_EQ, token.IN, token.INSTANCEOF:
		return typesystem.Boolean
	}
	if !arithmeticOperand(left) || !arithmeticOperand(right) {
		w.fail(diagnostics.ErrT008, span, "Operator '%s' cannot be applied to types '%s' and '%s'", op, typeName(left), typeName(right))
	}
	if op.IsCompare() {
		return typesystem.Boolean
	}
	return largerTag(contentType(left), contentType(right))
}
