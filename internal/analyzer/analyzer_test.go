package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/modules"
	"github.com/funvibe/tsfront/internal/typesystem"
)

// analyzeSource parses and analyzes input as the entry module main.ts.
func analyzeSource(input string) (*modules.Module, error) {
	return analyzeHost(modules.MapHost{"/src/main.ts": input}, "main.ts")
}

// analyzeArchive analyzes a txtar archive of modules starting at entry.
func analyzeArchive(t *testing.T, archive, entry string) (*modules.Module, error) {
	t.Helper()
	host, err := modules.ParseTxtarHost([]byte(archive), "/src")
	if err != nil {
		t.Fatal(err)
	}
	return analyzeHost(host, entry)
}

func analyzeHost(host modules.Host, entry string) (*modules.Module, error) {
	reg := modules.NewRegistry(host, "/src")
	m, err := reg.Load(entry)
	if err != nil {
		return nil, err
	}
	return m, New(reg).Analyze(m)
}

// expectAnalyzerError asserts that analysis fails with the given code.
func expectAnalyzerError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	_, err := analyzeSource(input)
	if err == nil {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	de, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if de.Code != code {
		t.Fatalf("expected error %s, got %s: %s\ninput: %s", code, de.Code, de.Error(), input)
	}
	return de
}

// expectAnalyzerErrorContains asserts an error with the given code whose
// message contains substr.
func expectAnalyzerErrorContains(t *testing.T, input string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	de := expectAnalyzerError(t, input, code)
	if !strings.Contains(de.Error(), substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, de.Error())
	}
}

// expectAnalyzerMessage asserts the complete formatted diagnostic.
func expectAnalyzerMessage(t *testing.T, input string, code diagnostics.ErrorCode, want string) {
	t.Helper()
	de := expectAnalyzerError(t, input, code)
	if got := de.Error(); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func expectNoAnalyzerErrors(t *testing.T, input string) *modules.Module {
	t.Helper()
	m, err := analyzeSource(input)
	if err != nil {
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", err, input)
	}
	return m
}

func lookup(t *testing.T, m *modules.Module, name string) typesystem.Type {
	t.Helper()
	ref, ok := m.Scope.LookupVariable(name)
	if !ok {
		t.Fatalf("%s is not declared", name)
	}
	return ref.Type
}

func TestDuplicateConstReportsSecondDeclaration(t *testing.T) {
	expectAnalyzerMessage(t, "const a = 1;\nconst a = 2;", diagnostics.ErrB001,
		"Duplicate identifier 'a'. main.ts:2:7")
}

func TestSecondReturnMismatch(t *testing.T) {
	expectAnalyzerMessage(t, `function f() { return 1; return "s"; }`, diagnostics.ErrT001,
		"Type 'string' is not assignable to type 'number'. main.ts:1:33")
}

func TestThrowingFunctionReturnsNever(t *testing.T) {
	m := expectNoAnalyzerErrors(t, `
function fail(msg: string) {
  const n: number = 1;
  throw new Error(msg);
}
`)
	fn, ok := lookup(t, m, "fail").(*typesystem.Function)
	if !ok {
		t.Fatal("fail should be a function")
	}
	if fn.Return != typesystem.Never || !fn.Throwing {
		t.Errorf("return = %s, throwing = %v", fn.Return, fn.Throwing)
	}
}

func TestThrowingFunctionKeepsExplicitReturnType(t *testing.T) {
	m := expectNoAnalyzerErrors(t, `
function fail(msg: string): number {
  throw new Error(msg);
}
const n: number = fail("x");
`)
	fn, ok := lookup(t, m, "fail").(*typesystem.Function)
	if !ok {
		t.Fatal("fail should be a function")
	}
	if fn.Return != typesystem.Number || !fn.Throwing {
		t.Errorf("return = %s, throwing = %v", fn.Return, fn.Throwing)
	}
}

func TestMutuallyRecursiveFunctions(t *testing.T) {
	expectNoAnalyzerErrors(t, `
function isEven(n: number): boolean {
  return n === 0 ? true : isOdd(n - 1);
}
function isOdd(n: number): boolean {
  return n === 0 ? false : isEven(n - 1);
}
const r: boolean = isEven(10);
`)
}

func TestArrayElementErrorPosition(t *testing.T) {
	expectAnalyzerMessage(t, `const arr: number[] = [1, 2, "x"];`, diagnostics.ErrT001,
		"Type 'string' is not assignable to type 'number'. main.ts:1:30")
}

func TestMixedEnumValues(t *testing.T) {
	expectAnalyzerMessage(t, "enum E {\n  A = 1,\n  B = \"b\",\n}", diagnostics.ErrT009,
		"Enums can only have numeric or string values. main.ts:3:3")
}

func TestMissingExportNamesModule(t *testing.T) {
	_, err := analyzeArchive(t, `
-- main.ts --
import { missing } from "./m";
-- m.ts --
export const x = 1;
`, "main.ts")
	de, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if de.Code != diagnostics.ErrB004 {
		t.Errorf("code = %s", de.Code)
	}
	if got := de.Error(); got != "Module './m' has no exported member 'missing'. main.ts:1:10" {
		t.Errorf("message = %q", got)
	}
}

func TestInferredReturnTypes(t *testing.T) {
	m := expectNoAnalyzerErrors(t, `
function one() { return 1; }
function nothing() { const x = 1; }
const half = (n: number) => n / 2;
`)
	tests := []struct {
		name string
		want typesystem.Type
	}{
		{"one", typesystem.Number},
		{"nothing", typesystem.Void},
		{"half", typesystem.Number},
	}
	for _, tt := range tests {
		fn := lookup(t, m, tt.name).(*typesystem.Function)
		if fn.Return != tt.want {
			t.Errorf("%s returns %s, want %s", tt.name, fn.Return, tt.want)
		}
	}
}

func TestLetInfersFromFirstAssignment(t *testing.T) {
	m := expectNoAnalyzerErrors(t, `
let x;
x = "hello";
`)
	if got := lookup(t, m, "x"); got != typesystem.String {
		t.Errorf("x = %s", got)
	}
	expectAnalyzerErrorContains(t, "let x;\nx = 1;\nx = \"s\";", diagnostics.ErrT001,
		"Type 'string' is not assignable to type 'number'")
}

func TestBinaryOperatorTyping(t *testing.T) {
	m := expectNoAnalyzerErrors(t, `
const a = 1 + 2;
const b = 1 + "x";
const c = 1 < 2;
const d = "a" === "b";
const e = 3 & 1;
`)
	tests := map[string]typesystem.Type{
		"a": typesystem.Number,
		"b": typesystem.String,
		"c": typesystem.Boolean,
		"d": typesystem.Boolean,
		"e": typesystem.Number,
	}
	for name, want := range tests {
		if got := lookup(t, m, name); got != want {
			t.Errorf("%s = %s, want %s", name, got, want)
		}
	}
}

func TestInterfaceObjectLiterals(t *testing.T) {
	expectNoAnalyzerErrors(t, `
interface Point { x: number; y: number; label?: string }
const p: Point = { x: 1, y: 2 };
const q: Point = { x: 1, y: 2, label: "origin" };
function norm(pt: Point): number { return pt.x * pt.x + pt.y * pt.y; }
norm({ x: 3, y: 4 });
`)
	expectAnalyzerMessage(t, "interface Point { x: number; y: number }\nconst p: Point = { x: 1, y: \"2\" };",
		diagnostics.ErrT001, "Type 'string' is not assignable to type 'number'. main.ts:2:29")
	expectAnalyzerErrorContains(t, "interface Point { x: number; y: number }\nconst p: Point = { x: 1 };",
		diagnostics.ErrT001, "is not assignable to type 'Point'")
	expectAnalyzerErrorContains(t, "interface Point { x: number }\nconst p: Point = { x: 1, z: 2 };",
		diagnostics.ErrT001, "is not assignable to type 'Point'")
}

func TestExcessPropertyInPlaceOfOptionalMember(t *testing.T) {
	expectAnalyzerErrorContains(t, "interface P { a: number; b?: number }\nconst p: P = { a: 1, c: 2 };",
		diagnostics.ErrT001, "is not assignable to type 'P'")
	expectAnalyzerErrorContains(t, "interface P { a: number; b?: number }\nconst q = { a: 1, c: 2 };\nconst p: P = q;",
		diagnostics.ErrT001, "is not assignable to type 'P'")
	expectNoAnalyzerErrors(t, "interface P { a: number; b?: number }\nconst q = { a: 1, b: 2 };\nconst p: P = q;")
}

func TestInterfaceHeritage(t *testing.T) {
	expectNoAnalyzerErrors(t, `
interface Named { name: string }
interface Person extends Named { age: number }
const p: Person = { name: "ada", age: 36 };
const n: string = p.name;
`)
	expectNoAnalyzerErrors(t, `
interface Person extends Named { age: number }
interface Named { name: string }
const p: Person = { name: "ada", age: 36 };
`)
}

func TestReturnAgainstDeclaredType(t *testing.T) {
	expectNoAnalyzerErrors(t, `
interface Box { value: number }
function make(): Box { return { value: 1 }; }
function done(): void { return; }
`)
	expectAnalyzerMessage(t, "interface Box { value: number }\nfunction make(): Box { return { value: \"x\" }; }",
		diagnostics.ErrT001, "Type 'string' is not assignable to type 'number'. main.ts:2:40")
}

func TestEnums(t *testing.T) {
	m := expectNoAnalyzerErrors(t, `
enum Direction { Up, Down = 5, Left, Right = Left + 1 }
enum Color { Red = "red", Green = "green" }
const d: Direction = Direction.Up;
const c: string = Color.Red;
const n: number = Direction.Down + 1;
`)
	enum := lookup(t, m, "Direction").(*typesystem.Enum)
	want := []float64{0, 5, 6}
	for i, w := range want {
		if got := enum.Members[i].Value; got != w {
			t.Errorf("member %d = %v, want %v", i, got, w)
		}
	}
	if lookup(t, m, "Color").(*typesystem.Enum).Content != typesystem.String {
		t.Error("Color should be a string enum")
	}
	expectAnalyzerErrorContains(t, `enum E { A = "a", B }`, diagnostics.ErrT009,
		"Enum member 'B' must have an initializer")
}

func TestGenericAliases(t *testing.T) {
	expectNoAnalyzerErrors(t, `
type Pair<A, B> = { first: A; second: B };
const p: Pair<number, string> = { first: 1, second: "two" };
const scores: Record<string, number> = { ada: 1, bob: 2 };
const total: number = scores["ada"] + scores.bob;
type List<T> = T[];
const xs: List<string> = ["a", "b"];
`)
	expectAnalyzerErrorContains(t, "type Pair<A, B> = { first: A; second: B };\nconst p: Pair<number> = { first: 1, second: 2 };",
		diagnostics.ErrT010, "Generic type 'Pair' requires 2 type argument(s), got 1")
	expectAnalyzerErrorContains(t, "type Pair<A, B> = { first: A; second: B };\nconst p: Pair<number, number> = { first: 1, second: \"x\" };",
		diagnostics.ErrT001, "Type 'string' is not assignable to type 'number'")
}

func TestRecursiveTypeAlias(t *testing.T) {
	expectNoAnalyzerErrors(t, `
type Node = { value: number; next: Node | null };
const tail: Node = { value: 2, next: null };
const head: Node = { value: 1, next: tail };
`)
}

func TestCallArity(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"function f(a: number) {}\nf();", "Expected 1 arguments, but got 0"},
		{"function f(a: number, b?: number) {}\nf(1, 2, 3);", "Expected 1-2 arguments, but got 3"},
		{"function f(a: number, ...rest: number[]) {}\nf();", "Expected at least 1 arguments, but got 0"},
	}
	for _, tt := range tests {
		expectAnalyzerErrorContains(t, tt.input, diagnostics.ErrT002, tt.msg)
	}
	expectNoAnalyzerErrors(t, `
function sum(...xs: number[]): number { return 0; }
sum();
sum(1, 2, 3);
const parts = ["a", "b"];
path.join(...parts);
`)
}

func TestArgumentTypes(t *testing.T) {
	expectAnalyzerMessage(t, "function f(a: number) {}\nf(\"x\");", diagnostics.ErrT001,
		"Argument of type 'string' is not assignable to parameter of type 'number'. main.ts:2:3")
}

func TestCallbackParametersAreContextual(t *testing.T) {
	expectNoAnalyzerErrors(t, `
function apply(f: (n: number) => number, v: number): number { return f(v); }
const r = apply((n) => n * 2, 3);
const names: string[] = ["a"];
names.forEach((s) => s.toUpperCase());
`)
	expectAnalyzerErrorContains(t, `
function apply(f: (n: number) => number, v: number): number { return f(v); }
apply((n) => n.toUpperCase(), 3);
`, diagnostics.ErrT004, "Property 'toUpperCase' does not exist on type 'number'")
}

func TestGenericFunctions(t *testing.T) {
	expectNoAnalyzerErrors(t, `
function first<T>(xs: T[]): T { return xs[0]; }
const a = first<number>([1, 2]);
const n: number = a;
const keys: string[] = Object.keys({ a: 1 });
`)
	expectAnalyzerErrorContains(t, `
function first<T>(xs: T[]): T { return xs[0]; }
first<number>(["x"]);
`, diagnostics.ErrT001, "Type 'string' is not assignable to type 'number'")
	expectAnalyzerErrorContains(t, `
function first<T>(xs: T[]): T { return xs[0]; }
first<number, string>([1]);
`, diagnostics.ErrT010, "Expected 1 type arguments, but got 2")
}

func TestBuiltins(t *testing.T) {
	expectNoAnalyzerErrors(t, `
const ext: string = path.extname("a.ts");
const rel: string = path.relative("/a", "/a/b");
const err = new Error("boom");
const msg: string = err.message;
const s = new SyntaxError();
console.log("x", 1, true);
const data = JSON.parse("{}");
const text: string = JSON.stringify(data);
const n: number = parseInt("42");
`)
}

func TestBlockScopesAndShadowing(t *testing.T) {
	expectNoAnalyzerErrors(t, `
if (true) { const a = 1; } else { const a = "x"; }
for (let i = 0; i < 3; i++) { const b = i; }
for (let i = 0; i < 3; i++) {}
`)
	expectAnalyzerErrorContains(t, "const a = 1;\nif (true) { const a = 2; }", diagnostics.ErrB001,
		"Duplicate identifier 'a'")
	expectAnalyzerErrorContains(t, "{ const a = 1; }\na;", diagnostics.ErrB002, "Cannot find name 'a'")
}

func TestNestedFunctionDeclarations(t *testing.T) {
	expectNoAnalyzerErrors(t, `
function outer(): number {
  return inner() + 1;
  function inner(): number { return helper(); }
  function helper() { return 41; }
}
`)
}

func TestLoopsAndLabels(t *testing.T) {
	expectNoAnalyzerErrors(t, `
const xs = [1, 2, 3];
let total = 0;
outer: for (const x of xs) {
  for (const k in { a: 1 }) {
    if (k === "a") continue outer;
    if (x > 2) break outer;
  }
  total += x;
}
while (total > 0) { total--; if (total === 1) break; }
do { total++; } while (total < 3);
switch (total) {
  case 1:
    break;
  default:
    total = 0;
}
block: { break block; }
for (const ch of "abc") { const c: string = ch; }
`)
}

func TestTryCatch(t *testing.T) {
	expectNoAnalyzerErrors(t, `
try {
  throw new TypeError("bad");
} catch (e) {
  const x = e;
} finally {
  console.log("done");
}
`)
}

func TestMemberAccessOnUnionAndNull(t *testing.T) {
	expectNoAnalyzerErrors(t, `
interface A { kind: string; a: number }
interface B { kind: string; b: number }
function kindOf(v: A | B | null): string { return v.kind; }
`)
	expectAnalyzerErrorContains(t, `
interface A { kind: string; a: number }
interface B { kind: string; b: number }
function f(v: A | B): number { return v.a; }
`, diagnostics.ErrT004, "Property 'a' does not exist on type 'B'")
}

func TestAsExpressions(t *testing.T) {
	expectNoAnalyzerErrors(t, `
const data = JSON.parse("[]") as string[];
const first: string = data[0];
`)
	expectAnalyzerErrorContains(t, `const n = "x" as number;`, diagnostics.ErrT001,
		"Conversion of type 'string' to type 'number' may be a mistake")
}

func TestTemplateAndStringMembers(t *testing.T) {
	m := expectNoAnalyzerErrors(t, "const name = \"ada\";\nconst s = `hi ${name.toUpperCase()}`;\nconst n = s.length;\nconst parts = s.split(\" \");")
	if got := lookup(t, m, "parts"); got.String() != "string[]" {
		t.Errorf("parts = %s", got)
	}
}

func TestBuiltinsCanBeShadowed(t *testing.T) {
	expectNoAnalyzerErrors(t, `const path = "x"; const p: string = path;`)
}
