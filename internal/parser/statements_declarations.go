package parser

import (
	"errors"
	"strings"

	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/token"
)

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	start := p.cur.Start
	p.expect(token.FUNCTION)
	if p.is(token.ASTERISK) {
		p.unsupported(p.cur.Span(), "Generator functions")
	}
	fd := &ast.FunctionDeclaration{Name: p.parseIdentifier()}
	fd.TypeParams = p.parseTypeParametersOpt()
	fd.Params = p.parseParameterList()
	if p.is(token.COLON) {
		p.next()
		fd.ReturnType = p.parseReturnType()
	}
	fd.Body = p.parseBlockStatement()
	fd.Span = p.span(start)
	return fd
}

// parseParameterList parses `(a, b?: T, c = 1, ...rest: U[])`.
func (p *Parser) parseParameterList() []*ast.Parameter {
	p.expect(token.LPAREN)
	var params []*ast.Parameter
	for !p.is(token.RPAREN) {
		param := p.parseParameter()
		params = append(params, param)
		if param.Rest && !p.is(token.RPAREN) {
			p.fail(diagnostics.ErrP001, param.Span, "A rest parameter must be last in a parameter list")
		}
		if !p.is(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	p.next()
	return params
}

func (p *Parser) parseParameter() *ast.Parameter {
	start := p.cur.Start
	param := &ast.Parameter{}
	if p.is(token.ELLIPSIS) {
		param.Rest = true
		p.next()
	}
	if p.is(token.LBRACE) || p.is(token.LBRACKET) {
		p.unsupported(p.cur.Span(), "Destructuring patterns")
	}
	param.Name = p.parseIdentifier()
	if p.is(token.QUESTION) {
		param.Optional = true
		p.next()
	}
	if p.is(token.COLON) {
		p.next()
		param.Type = p.parseType()
	}
	if p.is(token.ASSIGN) {
		p.next()
		param.Default = p.parseAssignment()
	}
	param.Span = p.span(start)
	return param
}

func (p *Parser) parseImportDeclaration() *ast.ImportDeclaration {
	start := p.cur.Start
	p.expect(token.IMPORT)
	id := &ast.ImportDeclaration{}

	if p.isContextual("type") && p.peek().Kind == token.LBRACE {
		id.TypeOnly = true
		p.next()
	}

	switch {
	case p.is(token.STRING):
		// side-effect import: import "./x";
	case p.is(token.LBRACE):
		p.next()
		for !p.is(token.RBRACE) {
			specStart := p.cur.Start
			spec := &ast.ImportSpecifier{Imported: p.parsePropertyName()}
			spec.Local = spec.Imported
			if p.isContextual("as") {
				p.next()
				spec.Local = p.parseIdentifier()
			}
			spec.IsType = id.TypeOnly
			spec.Span = p.span(specStart)
			id.Specifiers = append(id.Specifiers, spec)
			if !p.is(token.RBRACE) {
				p.expect(token.COMMA)
			}
		}
		p.next()
		p.expectContextual("from")
	case p.is(token.ASTERISK):
		p.next()
		p.expectContextual("as")
		id.Namespace = p.parseIdentifier()
		p.expectContextual("from")
	case p.is(token.IDENT):
		p.unsupported(p.cur.Span(), "Default imports")
	default:
		p.unexpected("import clause")
	}

	if !p.is(token.STRING) {
		p.unexpected("module specifier")
	}
	id.Source = &ast.StringLiteral{Span: p.cur.Span(), Value: p.cur.Value}
	p.next()
	id.Span = p.span(start)
	p.consumeSemicolon()

	id.ResolvedPath = p.resolveImport(id.Source)
	return id
}

// resolveImport hands relative specifiers to the Importer, which parses the
// target module (recursively) into the shared registry.
func (p *Parser) resolveImport(src *ast.StringLiteral) string {
	if !strings.HasPrefix(src.Value, ".") || p.opts.Importer == nil {
		return ""
	}
	resolved, err := p.opts.Importer.Import(p.opts.Path, src.Value)
	if err != nil {
		var de *diagnostics.DiagnosticError
		if errors.As(err, &de) {
			panic(de)
		}
		p.fail(diagnostics.ErrB003, src.Span, "Cannot find module '%s'", src.Value)
	}
	return resolved
}

func (p *Parser) parseExportDeclaration() *ast.ExportDeclaration {
	start := p.cur.Start
	p.expect(token.EXPORT)
	ed := &ast.ExportDeclaration{}

	switch {
	case p.is(token.DEFAULT):
		p.unsupported(p.cur.Span(), "Default exports")
	case p.is(token.ASTERISK):
		p.unsupported(p.cur.Span(), "Re-exports")
	case p.is(token.LBRACE):
		p.next()
		for !p.is(token.RBRACE) {
			specStart := p.cur.Start
			spec := &ast.ExportSpecifier{Local: p.parseIdentifier()}
			spec.Exported = spec.Local
			if p.isContextual("as") {
				p.next()
				spec.Exported = p.parsePropertyName()
			}
			spec.Span = p.span(specStart)
			ed.Specifiers = append(ed.Specifiers, spec)
			if !p.is(token.RBRACE) {
				p.expect(token.COMMA)
			}
		}
		p.next()
		if p.isContextual("from") {
			p.unsupported(p.cur.Span(), "Re-exports")
		}
		ed.Span = p.span(start)
		p.consumeSemicolon()
		return ed
	case p.is(token.CONST), p.is(token.LET), p.is(token.VAR), p.is(token.FUNCTION),
		p.is(token.ENUM), p.is(token.INTERFACE), p.isContextual("type"):
		ed.Declaration = p.parseStatement()
	default:
		p.unexpected("declaration")
	}
	ed.Span = p.span(start)
	return ed
}

func (p *Parser) parseTypeAliasDeclaration() *ast.TypeAliasDeclaration {
	start := p.cur.Start
	p.expectContextual("type")
	ta := &ast.TypeAliasDeclaration{Name: p.parseIdentifier()}
	ta.TypeParams = p.parseTypeParametersOpt()
	p.expect(token.ASSIGN)
	ta.Type = p.parseType()
	ta.Span = p.span(start)
	p.consumeSemicolon()
	return ta
}

func (p *Parser) parseInterfaceDeclaration() *ast.InterfaceDeclaration {
	start := p.cur.Start
	p.expect(token.INTERFACE)
	id := &ast.InterfaceDeclaration{Name: p.parseIdentifier()}
	id.TypeParams = p.parseTypeParametersOpt()
	if p.is(token.EXTENDS) {
		p.next()
		for {
			ref, ok := p.parsePrimaryType().(*ast.TypeReference)
			if !ok {
				p.fail(diagnostics.ErrP001, token.Span{Start: p.prevEnd, End: p.prevEnd}, "An interface can only extend a named type")
			}
			id.Extends = append(id.Extends, ref)
			if !p.is(token.COMMA) {
				break
			}
			p.next()
		}
	}
	members, index := p.parseTypeMembers()
	if index != nil {
		p.unsupported(index.Span, "Index signatures in interfaces")
	}
	id.Members = members
	id.Span = p.span(start)
	return id
}

func (p *Parser) parseEnumDeclaration() *ast.EnumDeclaration {
	start := p.cur.Start
	p.expect(token.ENUM)
	ed := &ast.EnumDeclaration{Name: p.parseIdentifier()}
	p.expect(token.LBRACE)
	for !p.is(token.RBRACE) {
		memberStart := p.cur.Start
		m := &ast.EnumMember{}
		if p.is(token.STRING) {
			m.Name = &ast.Identifier{Span: p.cur.Span(), Value: p.cur.Value}
			p.next()
		} else {
			m.Name = p.parsePropertyName()
		}
		if p.is(token.ASSIGN) {
			p.next()
			m.Value = p.parseAssignment()
		}
		m.Span = p.span(memberStart)
		ed.Members = append(ed.Members, m)
		if !p.is(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.next()
	ed.Span = p.span(start)
	return ed
}
