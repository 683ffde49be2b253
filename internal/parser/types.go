package parser

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/token"
)

var keywordTypes = map[string]bool{
	"number":  true,
	"string":  true,
	"boolean": true,
	"never":   true,
	"unknown": true,
	"any":     true,
	"object":  true,
}

// parseType parses a union of postfix types: A | B[] | C.
func (p *Parser) parseType() ast.Type {
	start := p.cur.Start
	if p.is(token.PIPE) {
		p.next()
	}
	first := p.parsePostfixType()
	if !p.is(token.PIPE) {
		return first
	}
	ut := &ast.UnionType{Types: []ast.Type{first}}
	for p.is(token.PIPE) {
		p.next()
		ut.Types = append(ut.Types, p.parsePostfixType())
	}
	ut.Span = p.span(start)
	return ut
}

func (p *Parser) parseReturnType() ast.Type {
	return p.parseType()
}

func (p *Parser) parsePostfixType() ast.Type {
	start := p.cur.Start
	if p.isContextual("keyof") {
		p.next()
		inner := p.parsePostfixType()
		return &ast.KeyofType{Span: p.span(start), Type: inner}
	}
	t := p.parsePrimaryType()
	for p.is(token.LBRACKET) && !p.cur.NewlineBefore && p.peek().Kind == token.RBRACKET {
		p.next()
		p.next()
		t = &ast.ArrayType{Span: p.span(start), Element: t}
	}
	return t
}

func (p *Parser) parsePrimaryType() ast.Type {
	start := p.cur.Start
	switch p.cur.Kind {
	case token.IDENT:
		if keywordTypes[p.cur.Value] {
			kt := &ast.KeywordType{Span: p.cur.Span(), Name: p.cur.Value}
			p.next()
			return kt
		}
		return p.parseTypeReference()
	case token.VOID, token.NULL, token.UNDEFINED:
		kt := &ast.KeywordType{Span: p.cur.Span(), Name: p.cur.Raw}
		p.next()
		return kt
	case token.STRING, token.TRUE, token.FALSE:
		lit := p.parsePrimary()
		return &ast.LiteralType{Span: p.span(start), Value: lit}
	case token.NUMBER:
		lit := p.parseNumberLiteral()
		return &ast.LiteralType{Span: p.span(start), Value: lit}
	case token.MINUS:
		p.next()
		if !p.is(token.NUMBER) {
			p.unexpected("number")
		}
		lit := p.parseNumberLiteral()
		neg := &ast.PrefixExpression{Span: p.span(start), Operator: token.MINUS, Operand: lit}
		return &ast.LiteralType{Span: p.span(start), Value: neg}
	case token.LT:
		return p.parseFunctionType()
	case token.LPAREN:
		var ft ast.Type
		if p.try(func() bool {
			ft = p.parseFunctionType()
			return true
		}) {
			return ft
		}
		p.next()
		inner := p.parseType()
		p.expect(token.RPAREN)
		return &ast.ParenthesizedType{Span: p.span(start), Type: inner}
	case token.LBRACE:
		if mt := p.tryMappedType(); mt != nil {
			return mt
		}
		members, index := p.parseTypeMembers()
		return &ast.TypeLiteral{Span: p.span(start), Members: members, Index: index}
	case token.TYPEOF:
		p.unsupported(p.cur.Span(), "Type queries")
	}
	p.unexpected("type")
	return nil
}

func (p *Parser) parseTypeReference() *ast.TypeReference {
	start := p.cur.Start
	tr := &ast.TypeReference{Name: p.parseIdentifier()}
	if p.is(token.DOT) {
		p.next()
		tr.Qualifier = tr.Name
		tr.Name = p.parseIdentifier()
	}
	if p.is(token.LT) && !p.cur.NewlineBefore {
		tr.Args = p.parseTypeArguments()
	}
	tr.Span = p.span(start)
	return tr
}

// parseTypeArguments parses `<A, B>`. A closing '>>' is split so nested
// argument lists close one level at a time.
func (p *Parser) parseTypeArguments() []ast.Type {
	p.expect(token.LT)
	var args []ast.Type
	for {
		args = append(args, p.parseType())
		if !p.is(token.COMMA) {
			break
		}
		p.next()
	}
	p.cur = p.lx.SplitGreater()
	p.expect(token.GT)
	return args
}

// parseTypeParametersOpt parses an optional `<T extends C = D, U>` list.
func (p *Parser) parseTypeParametersOpt() []*ast.TypeParameter {
	if !p.is(token.LT) {
		return nil
	}
	p.next()
	var params []*ast.TypeParameter
	for !p.is(token.GT) {
		start := p.cur.Start
		tp := &ast.TypeParameter{Name: p.parseIdentifier()}
		if p.is(token.EXTENDS) {
			p.next()
			tp.Constraint = p.parseType()
		}
		if p.is(token.ASSIGN) {
			p.next()
			tp.Default = p.parseType()
		}
		tp.Span = p.span(start)
		params = append(params, tp)
		p.cur = p.lx.SplitGreater()
		if !p.is(token.GT) {
			p.expect(token.COMMA)
		}
	}
	p.next()
	return params
}

// parseFunctionType parses `<T>(a: A, b?: B) => R`.
func (p *Parser) parseFunctionType() *ast.FunctionType {
	start := p.cur.Start
	ft := &ast.FunctionType{}
	ft.TypeParams = p.parseTypeParametersOpt()
	ft.Params = p.parseParameterList()
	p.expect(token.ARROW)
	ft.ReturnType = p.parseType()
	ft.Span = p.span(start)
	return ft
}

// tryMappedType recognizes `{ [K in C]?: V }`.
func (p *Parser) tryMappedType() *ast.MappedType {
	start := p.cur.Start
	var mt *ast.MappedType
	ok := p.try(func() bool {
		p.expect(token.LBRACE)
		if p.isContextual("readonly") {
			p.next()
		}
		if !p.is(token.LBRACKET) {
			return false
		}
		p.next()
		param := p.parseIdentifier()
		if !p.is(token.IN) {
			return false
		}
		p.next()
		mt = &ast.MappedType{Param: param, Constraint: p.parseType()}
		return true
	})
	if !ok {
		return nil
	}
	p.expect(token.RBRACKET)
	if p.is(token.QUESTION) {
		mt.Optional = true
		p.next()
	}
	p.expect(token.COLON)
	mt.Value = p.parseType()
	if p.is(token.SEMICOLON) || p.is(token.COMMA) {
		p.next()
	}
	p.expect(token.RBRACE)
	mt.Span = p.span(start)
	return mt
}

// parseTypeMembers parses the braces of an interface body or type literal.
// Members are separated by ';', ',' or a line break.
func (p *Parser) parseTypeMembers() ([]*ast.PropertySignature, *ast.IndexSignature) {
	p.expect(token.LBRACE)
	var members []*ast.PropertySignature
	var index *ast.IndexSignature
	for !p.is(token.RBRACE) {
		start := p.cur.Start
		if p.isContextual("readonly") {
			if next := p.peek(); next.Kind == token.IDENT || next.Kind == token.LBRACKET || next.Kind.IsKeyword() {
				p.next()
			}
		}

		if p.is(token.LBRACKET) {
			p.next()
			is := &ast.IndexSignature{KeyName: p.parseIdentifier()}
			p.expect(token.COLON)
			is.KeyType = p.parseType()
			p.expect(token.RBRACKET)
			p.expect(token.COLON)
			is.Value = p.parseType()
			is.Span = p.span(start)
			index = is
		} else {
			ps := &ast.PropertySignature{}
			if p.is(token.STRING) {
				ps.Name = &ast.Identifier{Span: p.cur.Span(), Value: p.cur.Value}
				p.next()
			} else {
				ps.Name = p.parsePropertyName()
			}
			if p.is(token.QUESTION) {
				ps.Optional = true
				p.next()
			}
			if p.is(token.LPAREN) || p.is(token.LT) {
				ps.Method = true
				ftStart := p.cur.Start
				ft := &ast.FunctionType{}
				ft.TypeParams = p.parseTypeParametersOpt()
				ft.Params = p.parseParameterList()
				if p.is(token.COLON) {
					p.next()
					ft.ReturnType = p.parseType()
				}
				ft.Span = p.span(ftStart)
				ps.Type = ft
			} else {
				p.expect(token.COLON)
				ps.Type = p.parseType()
			}
			ps.Span = p.span(start)
			members = append(members, ps)
		}

		switch {
		case p.is(token.SEMICOLON), p.is(token.COMMA):
			p.next()
		case p.is(token.RBRACE), p.cur.NewlineBefore:
		default:
			p.unexpected("';'")
		}
	}
	p.next()
	return members, index
}
