package symbols

import (
	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/typesystem"
)

type ScopeType int

const (
	ScopeGlobal   ScopeType = iota // Builtins; the root of every chain
	ScopeModule                    // Top level of one source file
	ScopeFunction                  // Function body, including parameters
	ScopeBlock                     // Block, loop body, branch, catch clause
	ScopeEnum                      // Enum body
)

func (t ScopeType) String() string {
	switch t {
	case ScopeGlobal:
		return "global"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeEnum:
		return "enum"
	}
	return "invalid"
}

// FunctionInfo tracks the function whose body a scope belongs to.
type FunctionInfo struct {
	Type *typesystem.Function
	// Explicit is set when the return type was annotated.
	Explicit bool
	Returned bool
	Throws   bool
}

// PendingFunction is a function declaration whose body is analyzed after
// the enclosing statement list has been walked.
type PendingFunction struct {
	Decl *ast.FunctionDeclaration
	Type *typesystem.Function
}

type label struct {
	name string
	loop bool
}

// Scope is one node of the lexical scope chain. The global scope has a nil
// outer scope.
type Scope struct {
	store     map[string]*typesystem.Reference
	types     map[string]typesystem.Type
	outer     *Scope
	scopeType ScopeType

	// Pending function bodies declared directly in this scope.
	Pending []PendingFunction

	labels   []label
	loop     bool
	breakers bool
	function *FunctionInfo
}

func NewGlobalScope() *Scope {
	return newScope(nil, ScopeGlobal)
}

// NewEnclosedScope creates a child of outer. outer must not be nil.
func NewEnclosedScope(outer *Scope, scopeType ScopeType) *Scope {
	return newScope(outer, scopeType)
}

// NewFunctionScope creates the body scope of a function.
func NewFunctionScope(outer *Scope, info *FunctionInfo) *Scope {
	s := newScope(outer, ScopeFunction)
	s.function = info
	return s
}

// NewLoopScope creates the body scope of a loop; break and continue are
// valid inside it.
func NewLoopScope(outer *Scope) *Scope {
	s := newScope(outer, ScopeBlock)
	s.loop = true
	s.breakers = true
	return s
}

// NewSwitchScope creates the scope of a switch body; break is valid inside
// it.
func NewSwitchScope(outer *Scope) *Scope {
	s := newScope(outer, ScopeBlock)
	s.breakers = true
	return s
}

func newScope(outer *Scope, scopeType ScopeType) *Scope {
	return &Scope{
		store:     make(map[string]*typesystem.Reference),
		types:     make(map[string]typesystem.Type),
		outer:     outer,
		scopeType: scopeType,
	}
}

// Outer returns the enclosing scope, nil for the global scope.
func (s *Scope) Outer() *Scope { return s.outer }

func (s *Scope) Type() ScopeType { return s.scopeType }

func (s *Scope) IsGlobalScope() bool { return s.outer == nil }

func (s *Scope) IsFunctionScope() bool { return s.scopeType == ScopeFunction }

// ModuleScope returns the nearest module scope, or nil when s is the global
// scope.
func (s *Scope) ModuleScope() *Scope {
	for cur := s; cur != nil; cur = cur.outer {
		if cur.scopeType == ScopeModule {
			return cur
		}
	}
	return nil
}

// Defer queues a function body for analysis after the current statement
// list.
func (s *Scope) Defer(decl *ast.FunctionDeclaration, fn *typesystem.Function) {
	s.Pending = append(s.Pending, PendingFunction{Decl: decl, Type: fn})
}

// TakePending returns and clears the pending function bodies.
func (s *Scope) TakePending() []PendingFunction {
	p := s.Pending
	s.Pending = nil
	return p
}
