package analyzer

import (
	"testing"

	"github.com/funvibe/tsfront/internal/diagnostics"
)

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
		msg   string
	}{
		{"type used as value", "interface I { n: number }\nconst x = I;", diagnostics.ErrB002,
			"'I' only refers to a type, but is being used as a value here"},
		{"unknown name", "const x = y;", diagnostics.ErrB002, "Cannot find name 'y'"},
		{"unknown type", "const x: Missing = 1;", diagnostics.ErrB005, "Cannot find type 'Missing'"},
		{"unknown qualified type", "enum E { A }\nconst x: E.B = E.A;", diagnostics.ErrB005, "Cannot find type 'E.B'"},
		{"break outside loop", "break;", diagnostics.ErrB006,
			"A 'break' statement can only be used within an enclosing iteration or switch statement"},
		{"continue in switch", "switch (1) { case 1: continue; }", diagnostics.ErrB006,
			"A 'continue' statement can only be used within an enclosing iteration statement"},
		{"undefined label", "while (true) { break nope; }", diagnostics.ErrB006, "Undefined label 'nope'"},
		{"continue to block label", "block: { continue block; }", diagnostics.ErrB006,
			"A 'continue' statement can only jump to a label of an enclosing iteration statement"},
		{"duplicate label", "a: for (;;) { a: for (;;) {} }", diagnostics.ErrB001, "Duplicate label 'a'"},
		{"duplicate parameter", "function f(a: number, a: string) {}", diagnostics.ErrB001, "Duplicate identifier 'a'"},
		{"duplicate type", "type T = number;\ninterface T { n: number }", diagnostics.ErrB001, "Duplicate identifier 'T'"},
		{"duplicate enum member", "enum E { A, A }", diagnostics.ErrB001, "Duplicate identifier 'A'"},

		{"call on number", "const n = 1;\nn();", diagnostics.ErrT003,
			"This expression is not callable. Type 'number' has no call signatures"},
		{"new on string", "const s = \"x\";\nnew s();", diagnostics.ErrT003,
			"This expression is not constructable. Type 'string' has no construct signatures"},

		{"member of unknown", "const u = JSON.parse(\"1\");\nu.x;", diagnostics.ErrT004, "Object is of type 'unknown'"},
		{"missing member", "const o = { a: 1 };\no.b;", diagnostics.ErrT004, "Property 'b' does not exist"},
		{"member of boolean", "const b = true;\nb.x;", diagnostics.ErrT004, "Type 'boolean' is not an object"},
		{"index on boolean", "const b = true;\nb[0];", diagnostics.ErrT004, "Type 'boolean' has no index signature"},
		{"spread of number", "const s = { ...1 };", diagnostics.ErrT004, "Spread types may only be created from object types"},
		{"circular alias", "type A = A;", diagnostics.ErrT004, "Type alias 'A' circularly references itself"},
		{"interface extends primitive", "type N = number;\ninterface I extends N { }", diagnostics.ErrT004,
			"An interface can only extend an object type"},
		{"unconstrained type parameter member", "function f<T>(x: T) { return x.length; }", diagnostics.ErrT004,
			"Property 'length' does not exist on type 'T'"},

		{"return at module level", "return 1;", diagnostics.ErrT005,
			"A 'return' statement can only be used within a function body"},
		{"required after optional", "function f(a?: number, b: number) {}", diagnostics.ErrT006,
			"A required parameter cannot follow an optional parameter"},

		{"assign constant", "const c = 1;\nc = 2;", diagnostics.ErrT007, "Cannot assign to 'c' because it is a constant"},
		{"increment constant", "const c = 1;\nc++;", diagnostics.ErrT007, "Cannot assign to 'c' because it is a constant"},
		{"assign array method", "const a = [1];\na.push = a.push;", diagnostics.ErrT007,
			"Cannot assign to 'push' because it is a read-only property"},
		{"assign enum member", "enum E { A }\nE.A = 1;", diagnostics.ErrT007,
			"Cannot assign to 'A' because it is a read-only property"},
		{"assign string index", "let s = \"ab\";\ns[0] = \"c\";", diagnostics.ErrT007,
			"Index signature in type 'string' only permits reading"},

		{"negate string", "const x = -\"a\";", diagnostics.ErrT008, "Operator '-' cannot be applied to type 'string'"},
		{"multiply boolean", "const y = true * 2;", diagnostics.ErrT008,
			"cannot be applied to types 'boolean' and 'number'"},
		{"increment string", "let s = \"a\";\ns++;", diagnostics.ErrT008, "cannot be applied to type 'string'"},

		{"enum without initializer", "enum E { A = \"a\", B }", diagnostics.ErrT009, "Enum member 'B' must have an initializer"},

		{"non-generic with arguments", "interface P { x: number }\nconst p: P<number> = { x: 1 };", diagnostics.ErrT010,
			"Type 'P' is not generic"},
		{"generic without arguments", "type Box<T> = { v: T };\nconst b: Box = { v: 1 };", diagnostics.ErrT010,
			"Generic type 'Box' requires 1 type argument(s), got 0"},

		{"generic interface", "interface Box<T> { v: T }", diagnostics.ErrP003,
			"Generic interfaces are not supported; use a generic type alias"},
		{"nested export", "function f() { export const a = 1; }", diagnostics.ErrP003,
			"Exports are only allowed at module level"},

		{"iterate number", "for (const x of 1) {}", diagnostics.ErrT001, "Type 'number' is not an array type"},
		{"string index into array", "const a = [1];\nconst b = a[\"x\"];", diagnostics.ErrT001,
			"Type 'string' cannot be used as an index type"},
		{"constraint violation", "function f<T extends string>(x: T) {}\nf<number>(1);", diagnostics.ErrT001,
			"Type 'number' does not satisfy the constraint 'string'"},
		{"default value type", "function f(a: number = \"x\") {}", diagnostics.ErrT001,
			"Type 'string' is not assignable to type 'number'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerErrorContains(t, tt.input, tt.code, tt.msg)
		})
	}
}

func TestMissingModule(t *testing.T) {
	_, err := analyzeSource(`import { x } from "./nowhere";`)
	de, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if de.Code != diagnostics.ErrB003 {
		t.Errorf("code = %s, want %s: %s", de.Code, diagnostics.ErrB003, de.Error())
	}
}
