package diagnostics

import (
	"errors"
	"fmt"

	"github.com/funvibe/tsfront/internal/token"
)

type ErrorCode string

const (
	// Lexical
	ErrL001 ErrorCode = "L001" // unterminated string, template or comment
	ErrL002 ErrorCode = "L002" // unsupported character
	ErrL003 ErrorCode = "L003" // malformed number

	// Syntactic
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // missing initializer
	ErrP003 ErrorCode = "P003" // unsupported syntax

	// Binding
	ErrB001 ErrorCode = "B001" // duplicate identifier
	ErrB002 ErrorCode = "B002" // name not found
	ErrB003 ErrorCode = "B003" // module not found
	ErrB004 ErrorCode = "B004" // missing export
	ErrB005 ErrorCode = "B005" // type not found
	ErrB006 ErrorCode = "B006" // label not found / illegal jump

	// Type
	ErrT001 ErrorCode = "T001" // not assignable
	ErrT002 ErrorCode = "T002" // wrong arity
	ErrT003 ErrorCode = "T003" // not callable / not constructible
	ErrT004 ErrorCode = "T004" // not an object / missing property
	ErrT005 ErrorCode = "T005" // illegal return
	ErrT006 ErrorCode = "T006" // required parameter after optional
	ErrT007 ErrorCode = "T007" // assignment to constant
	ErrT008 ErrorCode = "T008" // invalid operands
	ErrT009 ErrorCode = "T009" // enum value kind
	ErrT010 ErrorCode = "T010" // generic arity
)

type Category int

const (
	Lexical Category = iota
	Syntactic
	Binding
	Type
	UnsupportedFeature
)

func (c Category) String() string {
	switch c {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntax"
	case Binding:
		return "binding"
	case Type:
		return "type"
	case UnsupportedFeature:
		return "unsupported"
	}
	return "unknown"
}

func (c ErrorCode) Category() Category {
	if c == ErrL002 || c == ErrP003 {
		return UnsupportedFeature
	}
	if len(c) == 0 {
		return Type
	}
	switch c[0] {
	case 'L':
		return Lexical
	case 'P':
		return Syntactic
	case 'B':
		return Binding
	}
	return Type
}

// DiagnosticError is the single error produced by a failed compilation.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	File    string // path relative to the project root
	Span    token.Span
	Line    int
	Column  int
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s. %s:%d:%d", e.Message, e.File, e.Line, e.Column)
}

func (e *DiagnosticError) Category() Category { return e.Code.Category() }

// NewError builds a diagnostic positioned at the start of span in file.
func NewError(code ErrorCode, file *SourceFile, span token.Span, msg string) *DiagnosticError {
	e := &DiagnosticError{Code: code, Message: msg, Span: span}
	if file != nil {
		e.File = file.Path
		e.Line, e.Column = file.Position(span.Start)
	}
	return e
}

func Errorf(code ErrorCode, file *SourceFile, span token.Span, format string, args ...any) *DiagnosticError {
	return NewError(code, file, span, fmt.Sprintf(format, args...))
}

// AsDiagnostic unwraps err into a *DiagnosticError.
func AsDiagnostic(err error) (*DiagnosticError, bool) {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Recover converts a panicking *DiagnosticError into a returned error.
// Other panics are re-raised.
//
//	defer diagnostics.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if de, ok := r.(*DiagnosticError); ok {
		*errp = de
		return
	}
	panic(r)
}
