package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/modules"
	"github.com/funvibe/tsfront/internal/typesystem"
)

func expectArchiveError(t *testing.T, archive string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	_, err := analyzeArchive(t, archive, "main.ts")
	de, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if de.Code != code || !strings.Contains(de.Error(), substr) {
		t.Errorf("got %s %q, want %s containing %q", de.Code, de.Error(), code, substr)
	}
}

func TestNamedImports(t *testing.T) {
	m, err := analyzeArchive(t, `
-- main.ts --
import { add, Point, origin as zero } from "./geometry";
const p: Point = { x: add(1, 2), y: zero.y };
-- geometry.ts --
export interface Point { x: number; y: number }
export function add(a: number, b: number): number { return a + b; }
export const origin: Point = { x: 0, y: 0 };
`, "main.ts")
	if err != nil {
		t.Fatal(err)
	}
	imp := m.Program.Statements[0].(*ast.ImportDeclaration)
	if !imp.Specifiers[1].IsType || imp.Specifiers[0].IsType {
		t.Error("only Point should be marked as a type import")
	}
	zero, ok := m.Scope.LookupVariable("zero")
	if !ok || !zero.IsConstant() || !zero.Has(typesystem.FlagImported) {
		t.Errorf("zero should be a constant import, got %+v", zero)
	}
}

func TestAnalysisOrderIsDependenciesFirst(t *testing.T) {
	host, err := modules.ParseTxtarHost([]byte(`
-- main.ts --
import { a } from "./a";
import { b } from "./b";
-- a.ts --
import { b } from "./b";
export const a = b + 1;
-- b.ts --
export const b = 1;
`), "/src")
	if err != nil {
		t.Fatal(err)
	}
	reg := modules.NewRegistry(host, "/src")
	m, err := reg.Load("main.ts")
	if err != nil {
		t.Fatal(err)
	}
	if err := New(reg).Analyze(m); err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, mod := range reg.Ordered() {
		order = append(order, mod.RelPath)
	}
	if got := strings.Join(order, ","); got != "b.ts,a.ts,main.ts" {
		t.Errorf("order = %s", got)
	}
}

func TestNamespaceImport(t *testing.T) {
	_, err := analyzeArchive(t, `
-- main.ts --
import * as util from "./util";
const s: string = util.greet("ada");
const c: util.Config = { verbose: util.DEFAULT };
-- util.ts --
export interface Config { verbose: boolean }
export const DEFAULT = false;
export function greet(name: string): string { return "hi " + name; }
`, "main.ts")
	if err != nil {
		t.Fatal(err)
	}
}

func TestImportedBindingsAreReadOnly(t *testing.T) {
	expectArchiveError(t, `
-- main.ts --
import { count } from "./state";
count = 2;
-- state.ts --
export let count = 1;
`, diagnostics.ErrT007, "Cannot assign to 'count' because it is an import")
}

func TestTypeOnlyImport(t *testing.T) {
	_, err := analyzeArchive(t, `
-- main.ts --
import type { Shape } from "./shapes";
const s: Shape = { sides: 3 };
-- shapes.ts --
export type Shape = { sides: number };
`, "main.ts")
	if err != nil {
		t.Fatal(err)
	}
	expectArchiveError(t, `
-- main.ts --
import type { area } from "./shapes";
area();
-- shapes.ts --
export function area(): number { return 0; }
`, diagnostics.ErrB002, "imported using 'import type'")
}

func TestExportLists(t *testing.T) {
	_, err := analyzeArchive(t, `
-- main.ts --
import { total, Unit } from "./lib";
const u: Unit = Unit.Metre;
const t: number = total;
-- lib.ts --
const sum = 3;
enum Units { Metre, Foot }
export { sum as total, Units as Unit };
`, "main.ts")
	if err != nil {
		t.Fatal(err)
	}
	expectArchiveError(t, `
-- main.ts --
import { x } from "./lib";
-- lib.ts --
export { nope };
`, diagnostics.ErrB002, "Cannot find name 'nope'")
	expectArchiveError(t, `
-- main.ts --
import { x } from "./lib";
-- lib.ts --
export const x = 1;
const y = 2;
export { y as x };
`, diagnostics.ErrB001, "Duplicate export 'x'")
}

func TestModuleExportsSurface(t *testing.T) {
	m, err := analyzeArchive(t, `
-- main.ts --
export const a = 1;
export function f(): string { return ""; }
export type T = number;
export interface I { n: number }
export enum E { X }
`, "main.ts")
	if err != nil {
		t.Fatal(err)
	}
	var values, types []string
	for _, ref := range m.Exports {
		values = append(values, ref.Name)
	}
	for _, nt := range m.ExportedTypes {
		types = append(types, nt.Name)
	}
	// Functions, types and enums are exported when registered, variables
	// during the walk.
	if got := strings.Join(values, ","); got != "f,E,a" {
		t.Errorf("exported values = %s", got)
	}
	if got := strings.Join(types, ","); got != "T,I,E" {
		t.Errorf("exported types = %s", got)
	}
}

func TestCyclicImportsTerminate(t *testing.T) {
	_, err := analyzeArchive(t, `
-- main.ts --
import { ping } from "./a";
ping(3);
-- a.ts --
import { pong } from "./b";
export function ping(n: number): number { return n > 0 ? pong(n - 1) : 0; }
-- b.ts --
import { ping } from "./a";
export function pong(n: number): number { return ping(n); }
`, "main.ts")
	if err != nil {
		t.Fatal(err)
	}
}

func TestPackageImportsAreOpaque(t *testing.T) {
	expectNoAnalyzerErrors(t, `
import * as fs from "fs";
import { readFileSync } from "fs";
const a = fs.readFileSync("x");
const b = readFileSync("y");
`)
}

func TestImportInsideBlockIsRejected(t *testing.T) {
	expectAnalyzerErrorContains(t, `{ import * as fs from "fs"; }`, diagnostics.ErrP003,
		"Import declarations are only allowed at module level")
}
