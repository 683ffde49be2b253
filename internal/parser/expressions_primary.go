package parser

import (
	"strconv"

	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/token"
)

func (p *Parser) parsePrimary() ast.Expression {
	start := p.cur.Start
	switch p.cur.Kind {
	case token.IDENT:
		return p.parseIdentifier()
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.STRING:
		sl := &ast.StringLiteral{Span: p.cur.Span(), Value: p.cur.Value}
		p.next()
		return sl
	case token.TEMPLATE, token.TEMPLATE_HEAD:
		return p.parseTemplateLiteral()
	case token.TRUE, token.FALSE:
		bl := &ast.BooleanLiteral{Span: p.cur.Span(), Value: p.is(token.TRUE)}
		p.next()
		return bl
	case token.NULL:
		p.next()
		return &ast.NullLiteral{Span: p.span(start)}
	case token.UNDEFINED:
		p.next()
		return &ast.UndefinedLiteral{Span: p.span(start)}
	case token.LPAREN:
		p.next()
		outer := p.noIn
		p.noIn = false
		inner := p.parseExpression()
		p.noIn = outer
		p.expect(token.RPAREN)
		return &ast.ParenthesizedExpression{Span: p.span(start), Expression: inner}
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.FUNCTION:
		p.next()
		if p.is(token.ASTERISK) {
			p.unsupported(p.cur.Span(), "Generator functions")
		}
		var name *ast.Identifier
		if p.is(token.IDENT) {
			name = p.parseIdentifier()
		}
		return p.parseFunctionRest(start, name)
	case token.SLASH, token.SLASH_ASSIGN:
		p.unsupported(p.cur.Span(), "Regular expression literals")
	}
	p.unexpected("expression")
	return nil
}

func (p *Parser) parseNumberLiteral() *ast.NumberLiteral {
	v, err := strconv.ParseFloat(p.cur.Value, 64)
	if err != nil {
		p.fail(diagnostics.ErrL003, p.cur.Span(), "Malformed number '%s'", p.cur.Raw)
	}
	nl := &ast.NumberLiteral{Span: p.cur.Span(), Value: v, Raw: p.cur.Raw}
	p.next()
	return nl
}

func (p *Parser) parseTemplateLiteral() *ast.TemplateLiteral {
	start := p.cur.Start
	tl := &ast.TemplateLiteral{Quasis: []string{p.cur.Value}}
	if p.is(token.TEMPLATE) {
		p.next()
		tl.Span = p.span(start)
		return tl
	}
	for {
		p.next()
		outer := p.noIn
		p.noIn = false
		tl.Expressions = append(tl.Expressions, p.parseExpression())
		p.noIn = outer
		if !p.is(token.RBRACE) {
			p.unexpected("'}'")
		}
		p.cur = p.lx.NextTemplateToken()
		tl.Quasis = append(tl.Quasis, p.cur.Value)
		if p.is(token.TEMPLATE_TAIL) {
			break
		}
	}
	p.next()
	tl.Span = p.span(start)
	return tl
}

func (p *Parser) parseArrayLiteral() *ast.ArrayLiteral {
	start := p.cur.Start
	p.expect(token.LBRACKET)
	al := &ast.ArrayLiteral{}
	for !p.is(token.RBRACKET) {
		if p.is(token.COMMA) {
			p.unsupported(p.cur.Span(), "Array holes")
		}
		al.Elements = append(al.Elements, p.parseSpreadOrAssignment())
		if !p.is(token.RBRACKET) {
			p.expect(token.COMMA)
		}
	}
	p.next()
	al.Span = p.span(start)
	return al
}

func (p *Parser) parseObjectLiteral() *ast.ObjectLiteral {
	start := p.cur.Start
	p.expect(token.LBRACE)
	ol := &ast.ObjectLiteral{}
	for !p.is(token.RBRACE) {
		ol.Properties = append(ol.Properties, p.parseProperty())
		if !p.is(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.next()
	ol.Span = p.span(start)
	return ol
}

func (p *Parser) parseProperty() *ast.Property {
	start := p.cur.Start
	prop := &ast.Property{}
	if p.is(token.ELLIPSIS) {
		p.next()
		prop.Spread = true
		prop.Value = p.parseAssignment()
		prop.Span = p.span(start)
		return prop
	}

	keyIsIdent := p.is(token.IDENT)
	prop.KeySpan = p.cur.Span()
	switch {
	case p.is(token.STRING):
		prop.Key = p.cur.Value
		prop.Quoted = true
	case p.is(token.NUMBER):
		v, err := strconv.ParseFloat(p.cur.Value, 64)
		if err != nil {
			p.fail(diagnostics.ErrL003, p.cur.Span(), "Malformed number '%s'", p.cur.Raw)
		}
		prop.Key = strconv.FormatFloat(v, 'f', -1, 64)
	case p.is(token.IDENT), p.cur.Kind.IsKeyword():
		prop.Key = p.cur.Raw
	case p.is(token.LBRACKET):
		p.unsupported(p.cur.Span(), "Computed property names")
	default:
		p.unexpected("property name")
	}
	p.next()

	switch {
	case p.is(token.COLON):
		p.next()
		prop.Value = p.parseAssignment()
	case p.is(token.LPAREN), p.is(token.LT):
		prop.Method = true
		prop.Value = p.parseFunctionRest(start, &ast.Identifier{Span: prop.KeySpan, Value: prop.Key})
	default:
		if !keyIsIdent {
			p.unexpected("':'")
		}
		if p.is(token.ASSIGN) {
			p.unsupported(p.cur.Span(), "Shorthand property initializers")
		}
		prop.Shorthand = true
		prop.Value = &ast.Identifier{Span: prop.KeySpan, Value: prop.Key}
	}
	prop.Span = p.span(start)
	return prop
}

// parseFunctionRest parses `<T>(params): R { body }` of a function
// expression or method.
func (p *Parser) parseFunctionRest(start int, name *ast.Identifier) *ast.FunctionLiteral {
	fl := &ast.FunctionLiteral{Name: name}
	fl.TypeParams = p.parseTypeParametersOpt()
	fl.Params = p.parseParameterList()
	if p.is(token.COLON) {
		p.next()
		fl.ReturnType = p.parseReturnType()
	}
	fl.Body = p.parseBlockStatement()
	fl.Span = p.span(start)
	return fl
}

// tryArrowFunction returns nil when the upcoming tokens do not start an
// arrow function. Parenthesized heads are parsed speculatively.
func (p *Parser) tryArrowFunction() ast.Expression {
	start := p.cur.Start
	var fl *ast.FunctionLiteral

	switch p.cur.Kind {
	case token.IDENT:
		next := p.peek()
		if next.Kind != token.ARROW || next.NewlineBefore {
			return nil
		}
		name := p.parseIdentifier()
		fl = &ast.FunctionLiteral{Arrow: true, Params: []*ast.Parameter{{Span: name.Span, Name: name}}}
	case token.LPAREN, token.LT:
		ok := p.try(func() bool {
			fl = &ast.FunctionLiteral{Arrow: true}
			fl.TypeParams = p.parseTypeParametersOpt()
			fl.Params = p.parseParameterList()
			if p.is(token.COLON) {
				p.next()
				fl.ReturnType = p.parseReturnType()
			}
			return p.is(token.ARROW) && !p.cur.NewlineBefore
		})
		if !ok {
			return nil
		}
	default:
		return nil
	}

	p.expect(token.ARROW)
	if p.is(token.LBRACE) {
		fl.Body = p.parseBlockStatement()
	} else {
		outer := p.noIn
		p.noIn = false
		fl.ExprBody = p.parseAssignment()
		p.noIn = outer
	}
	fl.Span = p.span(start)
	return fl
}
