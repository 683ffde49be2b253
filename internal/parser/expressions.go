package parser

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/token"
)

// parseExpression parses a comma sequence.
func (p *Parser) parseExpression() ast.Expression {
	first := p.parseAssignment()
	if !p.is(token.COMMA) {
		return first
	}
	seq := &ast.SequenceExpression{Expressions: []ast.Expression{first}}
	for p.is(token.COMMA) {
		p.next()
		seq.Expressions = append(seq.Expressions, p.parseAssignment())
	}
	seq.Span = p.span(first.GetSpan().Start)
	return seq
}

// parseAssignment parses arrow functions, conditionals and right-associative
// assignments.
func (p *Parser) parseAssignment() ast.Expression {
	if arrow := p.tryArrowFunction(); arrow != nil {
		return arrow
	}

	start := p.cur.Start
	left := p.parseConditional()
	if !p.cur.Kind.IsAssign() {
		return left
	}
	if !isAssignmentTarget(left) {
		p.fail(diagnostics.ErrP001, left.GetSpan(), "Invalid left-hand side in assignment")
	}
	op := p.cur.Kind
	p.next()
	value := p.parseAssignment()
	return &ast.AssignmentExpression{Span: p.span(start), Operator: op, Target: left, Value: value}
}

func isAssignmentTarget(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.IndexExpression:
		return true
	case *ast.ParenthesizedExpression:
		return isAssignmentTarget(e.Expression)
	}
	return false
}

func (p *Parser) parseConditional() ast.Expression {
	start := p.cur.Start
	test := p.parseBinary(token.LOWEST)
	if !p.is(token.QUESTION) {
		return test
	}
	p.next()
	outer := p.noIn
	p.noIn = false
	cons := p.parseAssignment()
	p.noIn = outer
	p.expect(token.COLON)
	alt := p.parseAssignment()
	return &ast.ConditionalExpression{Span: p.span(start), Test: test, Consequent: cons, Alternate: alt}
}

// parseBinary is precedence climbing over the token precedence table.
// `**` is right-associative; `as` binds at relational level.
func (p *Parser) parseBinary(minPrec int) ast.Expression {
	start := p.cur.Start
	left := p.parseUnary()
	for {
		if p.isContextual("as") && !p.cur.NewlineBefore && token.PrecRelational > minPrec {
			p.next()
			typ := p.parseType()
			left = &ast.AsExpression{Span: p.span(start), Expression: left, Type: typ}
			continue
		}
		op := p.cur.Kind
		prec := op.Precedence()
		if prec == 0 || prec <= minPrec || (op == token.IN && p.noIn) {
			return left
		}
		p.next()
		var right ast.Expression
		if op == token.POWER {
			right = p.parseBinary(prec - 1)
		} else {
			right = p.parseBinary(prec)
		}
		left = &ast.InfixExpression{Span: p.span(start), Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Expression {
	if p.cur.Kind.IsPrefix() {
		start := p.cur.Start
		op := p.cur.Kind
		p.next()
		operand := p.parseUnary()
		if (op == token.INCREMENT || op == token.DECREMENT) && !isAssignmentTarget(operand) {
			p.fail(diagnostics.ErrP001, operand.GetSpan(), "Invalid operand for prefix '%s'", op)
		}
		return &ast.PrefixExpression{Span: p.span(start), Operator: op, Operand: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	start := p.cur.Start
	expr := p.parseCallOrMember()
	if p.cur.Kind.IsPostfix() && !p.cur.NewlineBefore {
		if !isAssignmentTarget(expr) {
			p.fail(diagnostics.ErrP001, expr.GetSpan(), "Invalid operand for postfix '%s'", p.cur.Kind)
		}
		op := p.cur.Kind
		p.next()
		return &ast.PostfixExpression{Span: p.span(start), Operator: op, Operand: expr}
	}
	return expr
}

// parseCallOrMember parses a primary expression followed by any chain of
// member accesses, index accesses and calls.
func (p *Parser) parseCallOrMember() ast.Expression {
	start := p.cur.Start
	var expr ast.Expression
	if p.is(token.NEW) {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimary()
	}
	return p.parseChain(start, expr, true)
}

func (p *Parser) parseChain(start int, expr ast.Expression, allowCalls bool) ast.Expression {
	for {
		switch {
		case p.is(token.DOT):
			p.next()
			prop := p.parsePropertyName()
			expr = &ast.MemberExpression{Span: p.span(start), Object: expr, Property: prop}
		case p.is(token.LBRACKET):
			p.next()
			index := p.parseExpression()
			p.expect(token.RBRACKET)
			expr = &ast.IndexExpression{Span: p.span(start), Object: expr, Index: index}
		case allowCalls && p.is(token.LPAREN):
			args := p.parseArguments()
			expr = &ast.CallExpression{Span: p.span(start), Callee: expr, Arguments: args}
		case allowCalls && p.is(token.LT):
			var typeArgs []ast.Type
			ok := p.try(func() bool {
				typeArgs = p.parseTypeArguments()
				return p.is(token.LPAREN)
			})
			if !ok {
				return expr
			}
			args := p.parseArguments()
			expr = &ast.CallExpression{Span: p.span(start), Callee: expr, TypeArgs: typeArgs, Arguments: args}
		case p.cur.Kind.IsTemplate():
			p.unsupported(p.cur.Span(), "Tagged templates")
		default:
			return expr
		}
	}
}

func (p *Parser) parseNewExpression() ast.Expression {
	start := p.cur.Start
	p.expect(token.NEW)
	calleeStart := p.cur.Start
	var callee ast.Expression
	if p.is(token.NEW) {
		callee = p.parseNewExpression()
	} else {
		callee = p.parsePrimary()
	}
	callee = p.parseChain(calleeStart, callee, false)

	ne := &ast.NewExpression{Callee: callee}
	if p.is(token.LT) {
		ne.TypeArgs = p.parseTypeArguments()
	}
	if p.is(token.LPAREN) {
		ne.Arguments = p.parseArguments()
	}
	ne.Span = p.span(start)
	return ne
}

func (p *Parser) parseArguments() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	for !p.is(token.RPAREN) {
		args = append(args, p.parseSpreadOrAssignment())
		if !p.is(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	p.next()
	return args
}

func (p *Parser) parseSpreadOrAssignment() ast.Expression {
	if !p.is(token.ELLIPSIS) {
		return p.parseAssignment()
	}
	start := p.cur.Start
	p.next()
	arg := p.parseAssignment()
	return &ast.SpreadElement{Span: p.span(start), Argument: arg}
}
