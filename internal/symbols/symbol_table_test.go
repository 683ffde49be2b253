package symbols

import (
	"errors"
	"testing"

	"github.com/funvibe/tsfront/internal/typesystem"
)

func ref(name string) *typesystem.Reference {
	return typesystem.NewReference(name, typesystem.Number, 0)
}

func TestLookupWalksToRoot(t *testing.T) {
	global := NewGlobalScope()
	if global.Outer() != nil || !global.IsGlobalScope() {
		t.Fatal("global scope must have no outer scope")
	}
	if err := global.Declare(ref("path")); err != nil {
		t.Fatal(err)
	}
	module := NewEnclosedScope(global, ScopeModule)
	block := NewEnclosedScope(NewFunctionScope(module, &FunctionInfo{}), ScopeBlock)

	r, ok := block.LookupVariable("path")
	if !ok || r.Name != "path" {
		t.Fatalf("LookupVariable(path) = %v, %v", r, ok)
	}
	if _, ok := block.LookupVariable("missing"); ok {
		t.Error("LookupVariable(missing) should fail")
	}
	if block.ModuleScope() != module {
		t.Error("ModuleScope should return the module scope")
	}
	if global.ModuleScope() != nil {
		t.Error("global scope has no module scope")
	}
}

func TestDuplicateAcrossChain(t *testing.T) {
	global := NewGlobalScope()
	_ = global.Declare(ref("Error"))
	module := NewEnclosedScope(global, ScopeModule)

	if err := module.Declare(ref("Error")); err != nil {
		t.Errorf("shadowing a builtin should be allowed: %v", err)
	}
	if err := module.Declare(ref("x")); err != nil {
		t.Fatal(err)
	}

	inner := NewEnclosedScope(module, ScopeBlock)
	err := inner.Declare(ref("x"))
	var dup *DuplicateError
	if !errors.As(err, &dup) || dup.Name != "x" {
		t.Fatalf("expected duplicate error for x, got %v", err)
	}
	if err.Error() != "Duplicate identifier 'x'" {
		t.Errorf("unexpected message %q", err.Error())
	}

	if err := inner.DeclareType("x", typesystem.String); err != nil {
		t.Errorf("types and values are separate namespaces: %v", err)
	}
	if err := module.DeclareType("x", typesystem.String); err == nil {
		t.Error("expected duplicate type error")
	}
}

func TestSiblingScopesAreIndependent(t *testing.T) {
	module := NewEnclosedScope(NewGlobalScope(), ScopeModule)
	a := NewEnclosedScope(module, ScopeBlock)
	b := NewEnclosedScope(module, ScopeBlock)
	if err := a.Declare(ref("i")); err != nil {
		t.Fatal(err)
	}
	if err := b.Declare(ref("i")); err != nil {
		t.Errorf("sibling blocks may reuse names: %v", err)
	}
}

func TestLabelsStopAtFunctions(t *testing.T) {
	module := NewEnclosedScope(NewGlobalScope(), ScopeModule)
	loop := NewLoopScope(module)
	loop.PushLabel("outer", true)

	inner := NewEnclosedScope(loop, ScopeBlock)
	if found, isLoop := inner.LookupLabel("outer"); !found || !isLoop {
		t.Errorf("LookupLabel(outer) = %v, %v", found, isLoop)
	}
	if !inner.InLoop() || !inner.InBreakable() {
		t.Error("block inside a loop should allow break and continue")
	}

	fn := NewFunctionScope(inner, &FunctionInfo{})
	if found, _ := fn.LookupLabel("outer"); found {
		t.Error("labels must not be visible across a function boundary")
	}
	if fn.InLoop() || fn.InBreakable() {
		t.Error("loops must not be visible across a function boundary")
	}

	loop.PopLabel()
	if found, _ := inner.LookupLabel("outer"); found {
		t.Error("popped label should be gone")
	}

	sw := NewSwitchScope(module)
	if sw.InLoop() || !sw.InBreakable() {
		t.Error("switch allows break but not continue")
	}
}

func TestFunctionInfo(t *testing.T) {
	module := NewEnclosedScope(NewGlobalScope(), ScopeModule)
	if module.Function() != nil {
		t.Error("module level has no function")
	}
	info := &FunctionInfo{Type: &typesystem.Function{Name: "f"}}
	body := NewEnclosedScope(NewFunctionScope(module, info), ScopeBlock)
	if body.Function() != info {
		t.Error("Function should return the enclosing function")
	}
}

func TestPendingFunctions(t *testing.T) {
	s := NewEnclosedScope(NewGlobalScope(), ScopeModule)
	s.Defer(nil, &typesystem.Function{Name: "f"})
	s.Defer(nil, &typesystem.Function{Name: "g"})
	p := s.TakePending()
	if len(p) != 2 || p[0].Type.Name != "f" || p[1].Type.Name != "g" {
		t.Errorf("TakePending = %v", p)
	}
	if len(s.Pending) != 0 {
		t.Error("TakePending should clear the list")
	}
}
