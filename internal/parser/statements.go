package parser

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.CONST:
		if p.peek().Kind == token.ENUM {
			p.next()
			return p.parseEnumDeclaration()
		}
		return p.parseVariableStatement()
	case token.LET, token.VAR:
		return p.parseVariableStatement()
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.BREAK, token.CONTINUE:
		return p.parseJumpStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON:
		s := &ast.EmptyStatement{Span: p.cur.Span()}
		p.next()
		return s
	case token.IMPORT:
		return p.parseImportDeclaration()
	case token.EXPORT:
		return p.parseExportDeclaration()
	case token.ENUM:
		return p.parseEnumDeclaration()
	case token.INTERFACE:
		return p.parseInterfaceDeclaration()
	case token.IDENT:
		next := p.peek()
		if p.cur.Value == "type" && next.Kind == token.IDENT && !next.NewlineBefore {
			return p.parseTypeAliasDeclaration()
		}
		if next.Kind == token.COLON {
			return p.parseLabeledStatement()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	start := p.cur.Start
	expr := p.parseExpression()
	p.consumeSemicolon()
	return &ast.ExpressionStatement{Span: token.Span{Start: start, End: expr.GetSpan().End}, Expression: expr}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	start := p.cur.Start
	p.expect(token.LBRACE)
	block := &ast.BlockStatement{}
	for !p.is(token.RBRACE) {
		if p.is(token.EOF) {
			p.unexpected("'}'")
		}
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.next()
	block.Span = p.span(start)
	return block
}

// parseVariableStatement parses `const a = 1, b = 2;`.
func (p *Parser) parseVariableStatement() *ast.VariableDeclaration {
	decl := p.parseVariableDeclarationList(false)
	p.consumeSemicolon()
	return decl
}

// parseVariableDeclarationList parses the declaration without the trailing
// semicolon. In a for-statement head the const-initializer check is left to
// the caller, since for-in/for-of bindings have no initializer.
func (p *Parser) parseVariableDeclarationList(forHead bool) *ast.VariableDeclaration {
	start := p.cur.Start
	decl := &ast.VariableDeclaration{Kind: p.cur.Kind}
	p.next()

	for {
		if p.is(token.LBRACE) || p.is(token.LBRACKET) {
			p.unsupported(p.cur.Span(), "Destructuring patterns")
		}
		d := &ast.VariableDeclarator{Name: p.parseIdentifier()}
		if p.is(token.COLON) {
			p.next()
			d.Type = p.parseType()
		}
		if p.is(token.ASSIGN) {
			p.next()
			d.Value = p.parseAssignment()
		} else if decl.Kind == token.CONST && !forHead {
			p.fail(diagnostics.ErrP002, d.Name.Span, "'const' declarations must be initialized")
		}
		d.Span = p.span(d.Name.Span.Start)
		decl.Declarations = append(decl.Declarations, d)

		if !p.is(token.COMMA) {
			break
		}
		p.next()
	}
	decl.Span = p.span(start)
	return decl
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	start := p.cur.Start
	p.next()
	rs := &ast.ReturnStatement{}
	if !p.is(token.SEMICOLON) && !p.is(token.RBRACE) && !p.is(token.EOF) && !p.cur.NewlineBefore {
		rs.Value = p.parseExpression()
	}
	rs.Span = p.span(start)
	p.consumeSemicolon()
	return rs
}

func (p *Parser) parseParenCondition() ast.Expression {
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	return cond
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	start := p.cur.Start
	p.next()
	is := &ast.IfStatement{Condition: p.parseParenCondition()}
	is.Consequence = p.parseStatement()
	if p.is(token.ELSE) {
		p.next()
		is.Alternative = p.parseStatement()
	}
	is.Span = p.span(start)
	return is
}

func (p *Parser) parseForStatement() ast.Statement {
	start := p.cur.Start
	p.next()
	p.expect(token.LPAREN)

	var init ast.Statement
	if !p.is(token.SEMICOLON) {
		outer := p.noIn
		p.noIn = true
		if p.is(token.CONST) || p.is(token.LET) || p.is(token.VAR) {
			decl := p.parseVariableDeclarationList(true)
			p.noIn = outer
			if p.is(token.IN) || p.isContextual("of") {
				if len(decl.Declarations) != 1 || decl.Declarations[0].Value != nil {
					p.fail(diagnostics.ErrP001, decl.Span, "Only a single variable without initializer is allowed in a for-%s head", p.cur.Raw)
				}
				return p.parseForInRest(start, decl, nil)
			}
			for _, d := range decl.Declarations {
				if decl.Kind == token.CONST && d.Value == nil {
					p.fail(diagnostics.ErrP002, d.Name.Span, "'const' declarations must be initialized")
				}
			}
			init = decl
		} else {
			expr := p.parseExpression()
			p.noIn = outer
			if p.is(token.IN) || p.isContextual("of") {
				return p.parseForInRest(start, nil, expr)
			}
			init = &ast.ExpressionStatement{Span: expr.GetSpan(), Expression: expr}
		}
	}
	p.expect(token.SEMICOLON)

	fs := &ast.ForStatement{Init: init}
	if !p.is(token.SEMICOLON) {
		fs.Condition = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	if !p.is(token.RPAREN) {
		fs.Update = p.parseExpression()
	}
	p.expect(token.RPAREN)
	fs.Body = p.parseStatement()
	fs.Span = p.span(start)
	return fs
}

func (p *Parser) parseForInRest(start int, decl *ast.VariableDeclaration, target ast.Expression) *ast.ForInStatement {
	fs := &ast.ForInStatement{Decl: decl, Target: target, Of: p.isContextual("of")}
	p.next()
	if fs.Of {
		fs.Right = p.parseAssignment()
	} else {
		fs.Right = p.parseExpression()
	}
	p.expect(token.RPAREN)
	fs.Body = p.parseStatement()
	fs.Span = p.span(start)
	return fs
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	start := p.cur.Start
	p.next()
	ws := &ast.WhileStatement{Condition: p.parseParenCondition()}
	ws.Body = p.parseStatement()
	ws.Span = p.span(start)
	return ws
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	start := p.cur.Start
	p.next()
	ds := &ast.DoWhileStatement{Body: p.parseStatement()}
	p.expect(token.WHILE)
	ds.Condition = p.parseParenCondition()
	ds.Span = p.span(start)
	if p.is(token.SEMICOLON) {
		p.next()
	}
	return ds
}

func (p *Parser) parseJumpStatement() ast.Statement {
	start := p.cur.Start
	isBreak := p.is(token.BREAK)
	p.next()
	var label *ast.Identifier
	if p.is(token.IDENT) && !p.cur.NewlineBefore {
		label = p.parseIdentifier()
	}
	span := p.span(start)
	p.consumeSemicolon()
	if isBreak {
		return &ast.BreakStatement{Span: span, Label: label}
	}
	return &ast.ContinueStatement{Span: span, Label: label}
}

func (p *Parser) parseLabeledStatement() *ast.LabeledStatement {
	start := p.cur.Start
	label := p.parseIdentifier()
	p.expect(token.COLON)
	ls := &ast.LabeledStatement{Label: label, Body: p.parseStatement()}
	ls.Span = p.span(start)
	return ls
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	start := p.cur.Start
	p.next()
	if p.cur.NewlineBefore {
		p.fail(diagnostics.ErrP001, p.cur.Span(), "Line break not permitted after 'throw'")
	}
	ts := &ast.ThrowStatement{Value: p.parseExpression()}
	ts.Span = p.span(start)
	p.consumeSemicolon()
	return ts
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	start := p.cur.Start
	p.next()
	ts := &ast.TryStatement{Block: p.parseBlockStatement()}
	if p.is(token.CATCH) {
		p.next()
		if p.is(token.LPAREN) {
			p.next()
			ts.Param = p.parseIdentifier()
			if p.is(token.COLON) {
				p.next()
				ts.ParamType = p.parseType()
			}
			p.expect(token.RPAREN)
		}
		ts.Handler = p.parseBlockStatement()
	}
	if p.is(token.FINALLY) {
		p.next()
		ts.Finalizer = p.parseBlockStatement()
	}
	if ts.Handler == nil && ts.Finalizer == nil {
		p.unexpected("'catch' or 'finally'")
	}
	ts.Span = p.span(start)
	return ts
}

func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	start := p.cur.Start
	p.next()
	ss := &ast.SwitchStatement{Discriminant: p.parseParenCondition()}
	p.expect(token.LBRACE)
	seenDefault := false
	for !p.is(token.RBRACE) {
		caseStart := p.cur.Start
		sc := &ast.SwitchCase{}
		switch p.cur.Kind {
		case token.CASE:
			p.next()
			sc.Test = p.parseExpression()
		case token.DEFAULT:
			if seenDefault {
				p.fail(diagnostics.ErrP001, p.cur.Span(), "A 'default' clause cannot appear more than once in a 'switch' statement")
			}
			seenDefault = true
			p.next()
		default:
			p.unexpected("'case' or 'default'")
		}
		p.expect(token.COLON)
		for !p.is(token.CASE) && !p.is(token.DEFAULT) && !p.is(token.RBRACE) {
			if p.is(token.EOF) {
				p.unexpected("'}'")
			}
			sc.Body = append(sc.Body, p.parseStatement())
		}
		sc.Span = p.span(caseStart)
		ss.Cases = append(ss.Cases, sc)
	}
	p.next()
	ss.Span = p.span(start)
	return ss
}
