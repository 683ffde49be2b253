package symbols

import (
	"fmt"
	"sort"

	"github.com/funvibe/tsfront/internal/typesystem"
)

// DuplicateError reports a name declared twice in one module's reachable
// chain.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("Duplicate identifier '%s'", e.Name)
}

// Declare binds ref in s. A name visible anywhere between s and the module
// scope is a duplicate; builtins in the global scope may be shadowed.
func (s *Scope) Declare(ref *typesystem.Reference) error {
	if s.isDeclaredInModule(ref.Name, false) {
		return &DuplicateError{Name: ref.Name}
	}
	s.store[ref.Name] = ref
	return nil
}

// DeclareLocal binds ref checking only s for duplicates. Enum members use
// it so they may repeat names of the enclosing module.
func (s *Scope) DeclareLocal(ref *typesystem.Reference) error {
	if _, ok := s.store[ref.Name]; ok {
		return &DuplicateError{Name: ref.Name}
	}
	s.store[ref.Name] = ref
	return nil
}

// DeclareType binds a type name in s with the same duplicate rule as
// Declare. Types and values live in separate namespaces.
func (s *Scope) DeclareType(name string, t typesystem.Type) error {
	if s.isDeclaredInModule(name, true) {
		return &DuplicateError{Name: name}
	}
	s.types[name] = t
	return nil
}

// SetType rebinds a type name in s without the duplicate check. It is used
// to replace a placeholder with its resolved definition.
func (s *Scope) SetType(name string, t typesystem.Type) {
	s.types[name] = t
}

func (s *Scope) isDeclaredInModule(name string, isType bool) bool {
	for cur := s; cur != nil && cur.scopeType != ScopeGlobal; cur = cur.outer {
		var ok bool
		if isType {
			_, ok = cur.types[name]
		} else {
			_, ok = cur.store[name]
		}
		if ok {
			return true
		}
	}
	return false
}

// LookupVariable returns the nearest binding of name.
func (s *Scope) LookupVariable(name string) (*typesystem.Reference, bool) {
	ref, _, ok := s.FindWithScope(name)
	return ref, ok
}

// FindWithScope returns the binding of name and the scope declaring it.
func (s *Scope) FindWithScope(name string) (*typesystem.Reference, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if ref, ok := cur.store[name]; ok {
			return ref, cur, true
		}
	}
	return nil, nil, false
}

// LookupType returns the nearest type bound to name.
func (s *Scope) LookupType(name string) (typesystem.Type, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if t, ok := cur.types[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// IsDefinedLocally checks the value namespace of s only.
func (s *Scope) IsDefinedLocally(name string) bool {
	_, ok := s.store[name]
	return ok
}

// LocalNames returns the value names declared directly in s, sorted.
func (s *Scope) LocalNames() []string {
	names := make([]string, 0, len(s.store))
	for name := range s.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
