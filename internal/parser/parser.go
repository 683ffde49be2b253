package parser

import (
	"fmt"
	"strings"

	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/lexer"
	"github.com/funvibe/tsfront/internal/token"
)

// Importer resolves and parses the module named by an import specifier.
// Implementations register the target before parsing it, so re-entrant
// requests for a module already being parsed return immediately.
type Importer interface {
	Import(importerPath, specifier string) (resolvedPath string, err error)
}

type Options struct {
	// Path identifies the file being parsed to the Importer.
	Path     string
	Importer Importer
}

type Parser struct {
	lx   *lexer.Lexer
	file *diagnostics.SourceFile
	opts Options

	cur     token.Token
	prevEnd int  // end offset of the last consumed token
	noIn    bool // `in` is not a binary operator (for-statement heads)
}

// state is a parser snapshot used for speculative parsing.
type state struct {
	lx      lexer.State
	cur     token.Token
	prevEnd int
	noIn    bool
}

func New(file *diagnostics.SourceFile, opts Options) *Parser {
	p := &Parser{lx: lexer.New(file), file: file, opts: opts}
	p.cur = p.lx.NextToken()
	return p
}

// ParseProgram parses the whole file. Parsing stops at the first error.
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer diagnostics.Recover(&err)

	prog = &ast.Program{File: p.file.Path}
	for p.cur.Kind != token.EOF {
		prog.Statements = append(prog.Statements, p.parseStatement())
	}
	prog.Span = token.Span{Start: 0, End: p.file.Len()}
	return prog, nil
}

// ParseSource is a convenience wrapper for parsing a standalone source text.
func ParseSource(path, source string) (*ast.Program, error) {
	return New(diagnostics.NewSourceFile(path, source), Options{Path: path}).ParseProgram()
}

func (p *Parser) next() {
	p.prevEnd = p.cur.End
	p.cur = p.lx.NextToken()
}

func (p *Parser) save() state {
	return state{lx: p.lx.Save(), cur: p.cur, prevEnd: p.prevEnd, noIn: p.noIn}
}

func (p *Parser) restore(s state) {
	p.lx.Restore(s.lx)
	p.cur = s.cur
	p.prevEnd = s.prevEnd
	p.noIn = s.noIn
}

// peek returns the token after the current one without consuming anything.
func (p *Parser) peek() token.Token {
	s := p.save()
	p.next()
	t := p.cur
	p.restore(s)
	return t
}

// try runs fn speculatively. On a syntax error the parser state is rolled
// back and false is returned.
func (p *Parser) try(fn func() bool) (ok bool) {
	s := p.save()
	defer func() {
		if r := recover(); r != nil {
			if _, isDiag := r.(*diagnostics.DiagnosticError); !isDiag {
				panic(r)
			}
			ok = false
		}
		if !ok {
			p.restore(s)
		}
	}()
	return fn()
}

func (p *Parser) is(k token.Kind) bool { return p.cur.Kind == k }

// isContextual reports whether the current token is the identifier word,
// used for contextual keywords such as `type`, `as`, `of` and `from`.
func (p *Parser) isContextual(word string) bool {
	return p.cur.Kind == token.IDENT && p.cur.Value == word
}

func (p *Parser) span(start int) token.Span {
	return token.Span{Start: start, End: p.prevEnd}
}

func (p *Parser) fail(code diagnostics.ErrorCode, span token.Span, format string, args ...any) {
	panic(diagnostics.Errorf(code, p.file, span, format, args...))
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of file"
	}
	return "'" + t.Raw + "'"
}

func (p *Parser) unexpected(expected string) {
	if expected == "" {
		p.fail(diagnostics.ErrP001, p.cur.Span(), "Unexpected token %s", describe(p.cur))
	}
	p.fail(diagnostics.ErrP001, p.cur.Span(), "Unexpected token %s, expected %s", describe(p.cur), expected)
}

// expect consumes a token of kind k or fails naming its label.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.cur.Kind != k {
		p.unexpected(fmt.Sprintf("'%s'", k))
	}
	t := p.cur
	p.next()
	return t
}

func (p *Parser) expectContextual(word string) {
	if !p.isContextual(word) {
		p.unexpected(fmt.Sprintf("'%s'", word))
	}
	p.next()
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	if p.cur.Kind != token.IDENT {
		p.unexpected("identifier")
	}
	id := &ast.Identifier{Span: p.cur.Span(), Value: p.cur.Value}
	p.next()
	return id
}

// parsePropertyName accepts identifiers and reserved words, as allowed after
// '.' and as object keys.
func (p *Parser) parsePropertyName() *ast.Identifier {
	if p.cur.Kind != token.IDENT && !p.cur.Kind.IsKeyword() {
		p.unexpected("property name")
	}
	id := &ast.Identifier{Span: p.cur.Span(), Value: p.cur.Raw}
	p.next()
	return id
}

// consumeSemicolon implements automatic semicolon insertion: an explicit ';'
// is consumed, and one may be omitted before '}', end of file, or a token on
// a new line.
func (p *Parser) consumeSemicolon() {
	switch {
	case p.is(token.SEMICOLON):
		p.next()
	case p.is(token.RBRACE), p.is(token.EOF), p.cur.NewlineBefore:
	default:
		p.unexpected("';'")
	}
}

func (p *Parser) unsupported(span token.Span, what string) {
	p.fail(diagnostics.ErrP003, span, "%s %s not supported", what, verbFor(what))
}

func verbFor(what string) string {
	if strings.HasSuffix(what, "s") {
		return "are"
	}
	return "is"
}
