package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf16"

	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/token"
)

const eof = -1

// Lexer is a pull-based scanner. It holds only the read position and the
// most recently scanned token; tokens are produced on demand.
type Lexer struct {
	file  *diagnostics.SourceFile
	src   []uint16
	pos   int
	Token token.Token
}

// State is a saved cursor, used by the parser to backtrack.
type State struct {
	pos int
	tok token.Token
}

func New(file *diagnostics.SourceFile) *Lexer {
	return &Lexer{file: file, src: file.Text}
}

func (l *Lexer) File() *diagnostics.SourceFile { return l.file }

func (l *Lexer) Save() State { return State{pos: l.pos, tok: l.Token} }

func (l *Lexer) Restore(s State) {
	l.pos = s.pos
	l.Token = s.tok
}

func (l *Lexer) peekAt(offset int) rune {
	i := l.pos + offset
	if i >= len(l.src) {
		return eof
	}
	return rune(l.src[i])
}

func (l *Lexer) ch() rune { return l.peekAt(0) }

func (l *Lexer) fail(code diagnostics.ErrorCode, start int, format string, args ...any) {
	panic(diagnostics.Errorf(code, l.file, token.Span{Start: start, End: l.pos}, format, args...))
}

// NextToken skips whitespace and comments and scans the next token.
func (l *Lexer) NextToken() token.Token {
	newline := l.skipWhitespace()
	start := l.pos
	tok := token.Token{Start: start, NewlineBefore: newline}

	c := l.ch()
	switch {
	case c == eof:
		tok.Kind = token.EOF
	case isIdentStart(c):
		for isIdentPart(l.ch()) {
			l.pos++
		}
		tok.Value = l.text(start, l.pos)
		tok.Kind = token.LookupIdent(tok.Value)
	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		tok.Kind = token.NUMBER
		tok.Value = l.readNumber()
	case c == '"' || c == '\'':
		tok.Kind = token.STRING
		tok.Value = l.readString(c)
	case c == '`':
		l.pos++
		tok.Kind, tok.Value = l.readTemplate(start, token.TEMPLATE, token.TEMPLATE_HEAD)
	default:
		tok.Kind = l.readOperator()
	}

	tok.End = l.pos
	tok.Raw = l.text(start, l.pos)
	l.Token = tok
	return tok
}

// NextTemplateToken continues a template literal after the '}' closing a
// substitution. The current token must be that '}'.
func (l *Lexer) NextTemplateToken() token.Token {
	start := l.Token.Start
	l.pos = l.Token.End
	kind, value := l.readTemplate(start, token.TEMPLATE_TAIL, token.TEMPLATE_MIDDLE)
	tok := token.Token{Kind: kind, Value: value, Start: start, End: l.pos, Raw: l.text(start, l.pos)}
	l.Token = tok
	return tok
}

// SplitGreater narrows a token starting with '>' (such as '>>' closing two
// type argument lists) to a single '>'.
func (l *Lexer) SplitGreater() token.Token {
	switch l.Token.Kind {
	case token.SHR, token.USHR, token.GT_EQ, token.SHR_ASSIGN:
		l.pos = l.Token.Start + 1
		l.Token.Kind = token.GT
		l.Token.End = l.pos
		l.Token.Raw = ">"
		l.Token.Value = ""
	}
	return l.Token
}

func (l *Lexer) text(start, end int) string {
	return string(utf16.Decode(l.src[start:end]))
}

func (l *Lexer) skipWhitespace() bool {
	newline := false
	for {
		c := l.ch()
		switch {
		case c == '\n':
			newline = true
			l.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f' || c == 0xA0 || c == 0xFEFF:
			l.pos++
		case c == '/' && l.peekAt(1) == '/':
			for l.ch() != '\n' && l.ch() != eof {
				l.pos++
			}
		case c == '/' && l.peekAt(1) == '*':
			start := l.pos
			l.pos += 2
			for {
				if l.ch() == eof {
					l.fail(diagnostics.ErrL001, start, "Unterminated comment")
				}
				if l.ch() == '*' && l.peekAt(1) == '/' {
					l.pos += 2
					break
				}
				if l.ch() == '\n' {
					newline = true
				}
				l.pos++
			}
		default:
			return newline
		}
	}
}

func (l *Lexer) readNumber() string {
	start := l.pos
	if l.ch() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.pos += 2
		digits := l.pos
		for isHexDigit(l.ch()) {
			l.pos++
		}
		if l.pos == digits {
			l.fail(diagnostics.ErrL003, start, "Hexadecimal digit expected")
		}
		n, err := strconv.ParseUint(l.text(digits, l.pos), 16, 64)
		if err != nil {
			l.fail(diagnostics.ErrL003, start, "Malformed number '%s'", l.text(start, l.pos))
		}
		l.checkNumberEnd(start)
		return strconv.FormatUint(n, 10)
	}

	seenDot := false
	for {
		c := l.ch()
		if isDigit(c) {
			l.pos++
			continue
		}
		if c == '.' {
			if seenDot {
				l.pos++
				l.fail(diagnostics.ErrL003, start, "Malformed number '%s': more than one decimal point", l.text(start, l.pos))
			}
			seenDot = true
			l.pos++
			continue
		}
		break
	}
	if c := l.ch(); c == 'e' || c == 'E' {
		l.pos++
		if l.ch() == '+' || l.ch() == '-' {
			l.pos++
		}
		if !isDigit(l.ch()) {
			l.fail(diagnostics.ErrL003, start, "Malformed number '%s': exponent expected", l.text(start, l.pos))
		}
		for isDigit(l.ch()) {
			l.pos++
		}
	}
	l.checkNumberEnd(start)
	return l.text(start, l.pos)
}

func (l *Lexer) checkNumberEnd(start int) {
	if isIdentStart(l.ch()) {
		l.pos++
		l.fail(diagnostics.ErrL003, start, "Malformed number '%s'", l.text(start, l.pos))
	}
}

func (l *Lexer) readString(quote rune) string {
	start := l.pos
	l.pos++
	var out []uint16
	for {
		c := l.ch()
		switch c {
		case eof, '\n', '\r':
			l.fail(diagnostics.ErrL001, start, "Unterminated string literal")
		case quote:
			l.pos++
			return string(utf16.Decode(out))
		case '\\':
			out = l.readEscape(out)
		default:
			out = append(out, uint16(c))
			l.pos++
		}
	}
}

// readTemplate scans template characters up to the closing backtick
// (returning endKind) or a substitution start (returning substKind).
func (l *Lexer) readTemplate(start int, endKind, substKind token.Kind) (token.Kind, string) {
	var out []uint16
	for {
		c := l.ch()
		switch {
		case c == eof:
			l.fail(diagnostics.ErrL001, start, "Unterminated template literal")
		case c == '`':
			l.pos++
			return endKind, string(utf16.Decode(out))
		case c == '$' && l.peekAt(1) == '{':
			l.pos += 2
			return substKind, string(utf16.Decode(out))
		case c == '\\':
			out = l.readEscape(out)
		case c == '\r':
			// template values normalize line endings
			l.pos++
			if l.ch() == '\n' {
				l.pos++
			}
			out = append(out, '\n')
		default:
			out = append(out, uint16(c))
			l.pos++
		}
	}
}

func (l *Lexer) readEscape(out []uint16) []uint16 {
	start := l.pos
	l.pos++ // backslash
	c := l.ch()
	l.pos++
	switch c {
	case eof:
		l.fail(diagnostics.ErrL001, start, "Unterminated string literal")
	case 'n':
		return append(out, '\n')
	case 't':
		return append(out, '\t')
	case 'r':
		return append(out, '\r')
	case 'b':
		return append(out, '\b')
	case 'f':
		return append(out, '\f')
	case 'v':
		return append(out, '\v')
	case '0':
		return append(out, 0)
	case '\r':
		if l.ch() == '\n' {
			l.pos++
		}
		return out
	case '\n':
		return out
	case 'x':
		return append(out, uint16(l.readHex(start, 2)))
	case 'u':
		if l.ch() == '{' {
			l.pos++
			digits := l.pos
			for isHexDigit(l.ch()) {
				l.pos++
			}
			if l.ch() != '}' || l.pos == digits {
				l.fail(diagnostics.ErrL001, start, "Invalid Unicode escape sequence")
			}
			n, err := strconv.ParseUint(l.text(digits, l.pos), 16, 32)
			l.pos++
			if err != nil || n > 0x10FFFF {
				l.fail(diagnostics.ErrL001, start, "Invalid Unicode escape sequence")
			}
			return append(out, utf16.Encode([]rune{rune(n)})...)
		}
		return append(out, uint16(l.readHex(start, 4)))
	}
	return append(out, uint16(c))
}

func (l *Lexer) readHex(start, n int) uint64 {
	digits := l.pos
	for i := 0; i < n; i++ {
		if !isHexDigit(l.ch()) {
			l.fail(diagnostics.ErrL001, start, "Hexadecimal digit expected")
		}
		l.pos++
	}
	v, _ := strconv.ParseUint(l.text(digits, l.pos), 16, 32)
	return v
}

// readOperator resolves punctuation by greedy longest match.
func (l *Lexer) readOperator() token.Kind {
	c := l.ch()
	next := l.peekAt(1)
	third := l.peekAt(2)
	take := func(n int, k token.Kind) token.Kind {
		l.pos += n
		return k
	}

	switch c {
	case '(':
		return take(1, token.LPAREN)
	case ')':
		return take(1, token.RPAREN)
	case '{':
		return take(1, token.LBRACE)
	case '}':
		return take(1, token.RBRACE)
	case '[':
		return take(1, token.LBRACKET)
	case ']':
		return take(1, token.RBRACKET)
	case ';':
		return take(1, token.SEMICOLON)
	case ',':
		return take(1, token.COMMA)
	case ':':
		return take(1, token.COLON)
	case '~':
		return take(1, token.TILDE)
	case '.':
		if next == '.' && third == '.' {
			return take(3, token.ELLIPSIS)
		}
		return take(1, token.DOT)
	case '?':
		if next == '?' {
			return take(2, token.NULLISH)
		}
		return take(1, token.QUESTION)
	case '=':
		if next == '=' && third == '=' {
			return take(3, token.STRICT_EQ)
		}
		if next == '=' {
			return take(2, token.EQ)
		}
		if next == '>' {
			return take(2, token.ARROW)
		}
		return take(1, token.ASSIGN)
	case '!':
		if next == '=' && third == '=' {
			return take(3, token.STRICT_NOT_EQ)
		}
		if next == '=' {
			return take(2, token.NOT_EQ)
		}
		return take(1, token.BANG)
	case '+':
		if next == '+' {
			return take(2, token.INCREMENT)
		}
		if next == '=' {
			return take(2, token.PLUS_ASSIGN)
		}
		return take(1, token.PLUS)
	case '-':
		if next == '-' {
			return take(2, token.DECREMENT)
		}
		if next == '=' {
			return take(2, token.MINUS_ASSIGN)
		}
		return take(1, token.MINUS)
	case '*':
		if next == '*' && third == '=' {
			return take(3, token.POWER_ASSIGN)
		}
		if next == '*' {
			return take(2, token.POWER)
		}
		if next == '=' {
			return take(2, token.ASTERISK_ASSIGN)
		}
		return take(1, token.ASTERISK)
	case '/':
		if next == '=' {
			return take(2, token.SLASH_ASSIGN)
		}
		return take(1, token.SLASH)
	case '%':
		if next == '=' {
			return take(2, token.PERCENT_ASSIGN)
		}
		return take(1, token.PERCENT)
	case '&':
		if next == '&' {
			return take(2, token.AND)
		}
		if next == '=' {
			return take(2, token.AMPERSAND_ASSIGN)
		}
		return take(1, token.AMPERSAND)
	case '|':
		if next == '|' {
			return take(2, token.OR)
		}
		if next == '=' {
			return take(2, token.PIPE_ASSIGN)
		}
		return take(1, token.PIPE)
	case '^':
		if next == '=' {
			return take(2, token.CARET_ASSIGN)
		}
		return take(1, token.CARET)
	case '<':
		if next == '<' && third == '=' {
			return take(3, token.SHL_ASSIGN)
		}
		if next == '<' {
			return take(2, token.SHL)
		}
		if next == '=' {
			return take(2, token.LT_EQ)
		}
		return take(1, token.LT)
	case '>':
		if next == '>' && third == '>' {
			return take(3, token.USHR)
		}
		if next == '>' && third == '=' {
			return take(3, token.SHR_ASSIGN)
		}
		if next == '>' {
			return take(2, token.SHR)
		}
		if next == '=' {
			return take(2, token.GT_EQ)
		}
		return take(1, token.GT)
	}

	start := l.pos
	l.pos++
	if utf16.IsSurrogate(c) && l.pos < len(l.src) {
		l.pos++
	}
	l.fail(diagnostics.ErrL002, start, "Unsupported character %s", quoteChar(l.text(start, l.pos)))
	return token.ILLEGAL
}

func quoteChar(s string) string {
	return fmt.Sprintf("%q", s)
}

func isIdentStart(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
