package parser

import (
	"testing"

	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/token"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := ParseSource("main.ts", input)
	if err != nil {
		t.Fatalf("unexpected error: %v\ninput:\n%s", err, input)
	}
	return prog
}

func expectError(t *testing.T, input string, code diagnostics.ErrorCode, want string) {
	t.Helper()
	_, err := ParseSource("main.ts", input)
	if err == nil {
		t.Fatalf("expected %s error for %q, got none", code, input)
	}
	de, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Errorf("expected code %s, got %s (%v)", code, de.Code, de)
	}
	if want != "" && de.Error() != want {
		t.Errorf("wrong message\n got: %s\nwant: %s", de.Error(), want)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostics.ErrorCode
		want  string
	}{
		{"const x;", diagnostics.ErrP002, "'const' declarations must be initialized. main.ts:1:7"},
		{"for (const x;;) {}", diagnostics.ErrP002, "'const' declarations must be initialized. main.ts:1:12"},
		{"1 = 2;", diagnostics.ErrP001, "Invalid left-hand side in assignment. main.ts:1:1"},
		{"a + b += 1;", diagnostics.ErrP001, "Invalid left-hand side in assignment. main.ts:1:1"},
		{"let a = 1 let b = 2;", diagnostics.ErrP001, "Unexpected token 'let', expected ';'. main.ts:1:11"},
		{"try {}", diagnostics.ErrP001, "Unexpected token end of file, expected 'catch' or 'finally'. main.ts:1:7"},
		{"for (let a = 1 of xs) {}", diagnostics.ErrP001, "Only a single variable without initializer is allowed in a for-of head. main.ts:1:6"},
		{"throw\nx;", diagnostics.ErrP001, "Line break not permitted after 'throw'. main.ts:2:1"},
		{"switch (x) { default: break; default: }", diagnostics.ErrP001, "A 'default' clause cannot appear more than once in a 'switch' statement. main.ts:1:30"},
		{"function f(...a, b) {}", diagnostics.ErrP001, "A rest parameter must be last in a parameter list. main.ts:1:12"},
		{"5++;", diagnostics.ErrP001, "Invalid operand for postfix '++'. main.ts:1:1"},
		{"interface I extends { } {}", diagnostics.ErrP001, ""},

		{"let { a } = o;", diagnostics.ErrP003, "Destructuring patterns are not supported. main.ts:1:5"},
		{"function* g() {}", diagnostics.ErrP003, "Generator functions are not supported. main.ts:1:9"},
		{`import d from "./x";`, diagnostics.ErrP003, "Default imports are not supported. main.ts:1:8"},
		{"export default 1;", diagnostics.ErrP003, "Default exports are not supported. main.ts:1:8"},
		{`export * from "./x";`, diagnostics.ErrP003, "Re-exports are not supported. main.ts:1:8"},
		{"const r = /ab/;", diagnostics.ErrP003, "Regular expression literals are not supported. main.ts:1:11"},
		{"tag`x`;", diagnostics.ErrP003, "Tagged templates are not supported. main.ts:1:4"},
		{"const o = { [k]: 1 };", diagnostics.ErrP003, "Computed property names are not supported. main.ts:1:13"},
		{"const a = [1, , 2];", diagnostics.ErrP003, "Array holes are not supported. main.ts:1:15"},
		{"interface I { [k: string]: number }", diagnostics.ErrP003, "Index signatures in interfaces are not supported. main.ts:1:15"},
		{"type T = typeof x;", diagnostics.ErrP003, "Type queries are not supported. main.ts:1:10"},

		{`const s = "abc;`, diagnostics.ErrL001, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectError(t, tt.input, tt.code, tt.want)
		})
	}
}

func TestAutomaticSemicolonInsertion(t *testing.T) {
	prog := parse(t, "let a = 1\nlet b = 2\na\n++b")
	if len(prog.Statements) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(prog.Statements))
	}
	es, ok := prog.Statements[3].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected expression statement, got %T", prog.Statements[3])
	}
	if pe, ok := es.Expression.(*ast.PrefixExpression); !ok || pe.Operator != token.INCREMENT {
		t.Errorf("expected prefix ++, got %T", es.Expression)
	}

	prog = parse(t, "function f() { return\n1 }")
	body := prog.Statements[0].(*ast.FunctionDeclaration).Body
	if len(body.Statements) != 2 {
		t.Fatalf("expected 2 statements in body, got %d", len(body.Statements))
	}
	if rs := body.Statements[0].(*ast.ReturnStatement); rs.Value != nil {
		t.Errorf("return followed by a line break must have no value")
	}
}

func TestTrailingCommas(t *testing.T) {
	prog := parse(t, "const a = [1, 2,]; const o = { a: 1, }; f(1, 2,); enum E { A, B, }\nfunction g(a, b,) {}")
	arr := prog.Statements[0].(*ast.VariableDeclaration).Declarations[0].Value.(*ast.ArrayLiteral)
	if len(arr.Elements) != 2 {
		t.Errorf("array: expected 2 elements, got %d", len(arr.Elements))
	}
	obj := prog.Statements[1].(*ast.VariableDeclaration).Declarations[0].Value.(*ast.ObjectLiteral)
	if len(obj.Properties) != 1 {
		t.Errorf("object: expected 1 property, got %d", len(obj.Properties))
	}
	call := prog.Statements[2].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	if len(call.Arguments) != 2 {
		t.Errorf("call: expected 2 arguments, got %d", len(call.Arguments))
	}
	enum := prog.Statements[3].(*ast.EnumDeclaration)
	if len(enum.Members) != 2 {
		t.Errorf("enum: expected 2 members, got %d", len(enum.Members))
	}
	fn := prog.Statements[4].(*ast.FunctionDeclaration)
	if len(fn.Params) != 2 {
		t.Errorf("function: expected 2 params, got %d", len(fn.Params))
	}
}

func TestEnumMemberSpans(t *testing.T) {
	prog := parse(t, "enum Color { Red, Green = 2 }")
	enum := prog.Statements[0].(*ast.EnumDeclaration)
	want := []token.Span{{Start: 13, End: 16}, {Start: 18, End: 27}}
	for i, m := range enum.Members {
		if m.Span != want[i] {
			t.Errorf("member %s: span %+v, want %+v", m.Name.Value, m.Span, want[i])
		}
	}
	if enum.Members[0].Value != nil {
		t.Errorf("Red should have no initializer")
	}

	prog = parse(t, "const enum E { A }")
	if _, ok := prog.Statements[0].(*ast.EnumDeclaration); !ok {
		t.Errorf("const enum: expected enum declaration, got %T", prog.Statements[0])
	}
}

func TestVariableDeclarations(t *testing.T) {
	prog := parse(t, "let x; var y: number, z = 1;")
	x := prog.Statements[0].(*ast.VariableDeclaration)
	if x.Kind != token.LET || x.Declarations[0].Value != nil || x.Declarations[0].Type != nil {
		t.Errorf("let x: unexpected declaration %+v", x.Declarations[0])
	}
	yz := prog.Statements[1].(*ast.VariableDeclaration)
	if yz.Kind != token.VAR || len(yz.Declarations) != 2 {
		t.Fatalf("expected two var declarators")
	}
	if kt, ok := yz.Declarations[0].Type.(*ast.KeywordType); !ok || kt.Name != "number" {
		t.Errorf("y: expected number annotation, got %T", yz.Declarations[0].Type)
	}
}

func TestArrowFunctions(t *testing.T) {
	prog := parse(t, `
const f = x => x + 1;
const g = (a: number, b?: string): number => a;
const h = <T>(v: T) => { return v; };
const k = (a);
`)
	arrow := func(i int) *ast.FunctionLiteral {
		t.Helper()
		fl, ok := prog.Statements[i].(*ast.VariableDeclaration).Declarations[0].Value.(*ast.FunctionLiteral)
		if !ok || !fl.Arrow {
			t.Fatalf("statement %d: expected arrow function", i)
		}
		return fl
	}

	f := arrow(0)
	if len(f.Params) != 1 || f.Params[0].Name.Value != "x" || f.ExprBody == nil {
		t.Errorf("x => x + 1 parsed incorrectly")
	}
	g := arrow(1)
	if len(g.Params) != 2 || !g.Params[1].Optional || g.ReturnType == nil {
		t.Errorf("typed arrow parsed incorrectly")
	}
	h := arrow(2)
	if len(h.TypeParams) != 1 || h.Body == nil {
		t.Errorf("generic arrow parsed incorrectly")
	}
	if _, ok := prog.Statements[3].(*ast.VariableDeclaration).Declarations[0].Value.(*ast.ParenthesizedExpression); !ok {
		t.Errorf("(a) should stay a parenthesized expression")
	}
}

func TestTypeArgumentsVersusComparison(t *testing.T) {
	prog := parse(t, "f<number>(x); a < b > c; let m: Map<string, Array<number>> = x;")

	call := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	if len(call.TypeArgs) != 1 {
		t.Errorf("expected one type argument, got %d", len(call.TypeArgs))
	}

	cmp := prog.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.InfixExpression)
	if cmp.Operator != token.GT {
		t.Errorf("expected outer '>', got %s", cmp.Operator)
	}
	if inner, ok := cmp.Left.(*ast.InfixExpression); !ok || inner.Operator != token.LT {
		t.Errorf("expected (a < b) > c")
	}

	ref := prog.Statements[2].(*ast.VariableDeclaration).Declarations[0].Type.(*ast.TypeReference)
	if ref.Name.Value != "Map" || len(ref.Args) != 2 {
		t.Fatalf("expected Map with two arguments")
	}
	if inner := ref.Args[1].(*ast.TypeReference); inner.Name.Value != "Array" || len(inner.Args) != 1 {
		t.Errorf("nested type arguments parsed incorrectly")
	}
}

func TestNewExpressions(t *testing.T) {
	prog := parse(t, "new Foo; new Foo(); new a.b.C(1);")
	for i := 0; i < 2; i++ {
		ne := prog.Statements[i].(*ast.ExpressionStatement).Expression.(*ast.NewExpression)
		if ne.Arguments != nil {
			t.Errorf("statement %d: expected nil arguments, got %v", i, ne.Arguments)
		}
	}
	ne := prog.Statements[2].(*ast.ExpressionStatement).Expression.(*ast.NewExpression)
	if _, ok := ne.Callee.(*ast.MemberExpression); !ok || len(ne.Arguments) != 1 {
		t.Errorf("new a.b.C(1) parsed incorrectly")
	}
}

func TestLabelsAndLoops(t *testing.T) {
	prog := parse(t, `
outer: for (;;) { break outer; }
for (k in o) {}
for (const v of xs) continue;
for (let i = ("a" in o) ? 1 : 0; i < 1; i++) {}
`)
	ls := prog.Statements[0].(*ast.LabeledStatement)
	if ls.Label.Value != "outer" {
		t.Errorf("label: got %s", ls.Label.Value)
	}
	brk := ls.Body.(*ast.ForStatement).Body.(*ast.BlockStatement).Statements[0].(*ast.BreakStatement)
	if brk.Label == nil || brk.Label.Value != "outer" {
		t.Errorf("break label not recorded")
	}

	forIn := prog.Statements[1].(*ast.ForInStatement)
	if forIn.Of || forIn.Decl != nil || forIn.Target == nil {
		t.Errorf("for-in with expression target parsed incorrectly")
	}
	forOf := prog.Statements[2].(*ast.ForInStatement)
	if !forOf.Of || forOf.Decl == nil || forOf.Decl.Kind != token.CONST {
		t.Errorf("for-of with const binding parsed incorrectly")
	}
	if _, ok := prog.Statements[3].(*ast.ForStatement); !ok {
		t.Errorf("expected a plain for statement, got %T", prog.Statements[3])
	}
}

func TestTypes(t *testing.T) {
	prog := parse(t, `type U = string | number[] | (() => void) | "s" | -1 | { a: number; b?: string } | keyof T;`)
	alias := prog.Statements[0].(*ast.TypeAliasDeclaration)
	union, ok := alias.Type.(*ast.UnionType)
	if !ok {
		t.Fatalf("expected union, got %T", alias.Type)
	}
	kinds := []string{"*ast.KeywordType", "*ast.ArrayType", "*ast.ParenthesizedType", "*ast.LiteralType", "*ast.LiteralType", "*ast.TypeLiteral", "*ast.KeyofType"}
	if len(union.Types) != len(kinds) {
		t.Fatalf("expected %d members, got %d", len(kinds), len(union.Types))
	}
	for i, typ := range union.Types {
		if got := typeName(typ); got != kinds[i] {
			t.Errorf("member %d: got %s, want %s", i, got, kinds[i])
		}
	}
	lit := union.Types[5].(*ast.TypeLiteral)
	if len(lit.Members) != 2 || !lit.Members[1].Optional {
		t.Errorf("type literal members parsed incorrectly")
	}
}

func typeName(typ ast.Type) string {
	switch typ.(type) {
	case *ast.KeywordType:
		return "*ast.KeywordType"
	case *ast.ArrayType:
		return "*ast.ArrayType"
	case *ast.ParenthesizedType:
		return "*ast.ParenthesizedType"
	case *ast.LiteralType:
		return "*ast.LiteralType"
	case *ast.TypeLiteral:
		return "*ast.TypeLiteral"
	case *ast.KeyofType:
		return "*ast.KeyofType"
	}
	return "other"
}

func TestTemplateLiteral(t *testing.T) {
	prog := parse(t, "const s = `a${b}c${d + 1}`;")
	tl := prog.Statements[0].(*ast.VariableDeclaration).Declarations[0].Value.(*ast.TemplateLiteral)
	if len(tl.Quasis) != 3 || tl.Quasis[0] != "a" || tl.Quasis[1] != "c" || tl.Quasis[2] != "" {
		t.Errorf("quasis: got %q", tl.Quasis)
	}
	if len(tl.Expressions) != 2 {
		t.Errorf("expected 2 expressions, got %d", len(tl.Expressions))
	}
}

func TestProgramRecordsFile(t *testing.T) {
	prog, err := ParseSource("src/app.ts", "let a = 1;")
	if err != nil {
		t.Fatal(err)
	}
	if prog.File != "src/app.ts" {
		t.Errorf("File: got %q", prog.File)
	}
}
