package parser

import (
	"fmt"
	"path"
	"testing"

	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/diagnostics"
)

// mapImporter parses modules from an in-memory file set, registering each
// target before parsing it the way the module registry does.
type mapImporter struct {
	files  map[string]string
	parsed map[string]*ast.Program
	order  []string
	calls  int
}

func newMapImporter(files map[string]string) *mapImporter {
	return &mapImporter{files: files, parsed: map[string]*ast.Program{}}
}

func (m *mapImporter) Import(importerPath, specifier string) (string, error) {
	m.calls++
	target := path.Join(path.Dir(importerPath), specifier) + ".ts"
	src, ok := m.files[target]
	if !ok {
		return "", fmt.Errorf("no such file %s", target)
	}
	if _, seen := m.parsed[target]; seen {
		return target, nil
	}
	m.parsed[target] = nil
	prog, err := New(diagnostics.NewSourceFile(target, src), Options{Path: target, Importer: m}).ParseProgram()
	if err != nil {
		return "", err
	}
	m.parsed[target] = prog
	m.order = append(m.order, target)
	return target, nil
}

func parseEntry(imp *mapImporter, entry string) (*ast.Program, error) {
	imp.parsed[entry] = nil
	return New(diagnostics.NewSourceFile(entry, imp.files[entry]), Options{Path: entry, Importer: imp}).ParseProgram()
}

func TestImportsAreParsedRecursively(t *testing.T) {
	imp := newMapImporter(map[string]string{
		"main.ts":   `import { a } from "./lib/a";`,
		"lib/a.ts":  `import { b } from "./b"; import { main } from "../main"; export const a = b;`,
		"lib/b.ts":  `export const b = 1;`,
		"unused.ts": `export const u = 0;`,
	})

	prog, err := parseEntry(imp, "main.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl := prog.Statements[0].(*ast.ImportDeclaration)
	if decl.ResolvedPath != "lib/a.ts" {
		t.Errorf("ResolvedPath: got %q", decl.ResolvedPath)
	}
	if got := fmt.Sprint(imp.order); got != "[lib/b.ts lib/a.ts]" {
		t.Errorf("parse completion order: got %s", got)
	}
	if _, ok := imp.parsed["unused.ts"]; ok {
		t.Errorf("unreferenced module was parsed")
	}
}

func TestMissingImportReportsModuleNotFound(t *testing.T) {
	imp := newMapImporter(map[string]string{
		"main.ts": `import { x } from "./nope";`,
	})
	_, err := parseEntry(imp, "main.ts")
	de, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected diagnostic, got %v", err)
	}
	if de.Code != diagnostics.ErrB003 {
		t.Errorf("expected B003, got %s", de.Code)
	}
	if want := "Cannot find module './nope'. main.ts:1:19"; de.Error() != want {
		t.Errorf("got %q, want %q", de.Error(), want)
	}
}

func TestErrorsInImportedModulesKeepTheirFile(t *testing.T) {
	imp := newMapImporter(map[string]string{
		"main.ts": `import * as a from "./a";`,
		"a.ts":    `const = 1;`,
	})
	_, err := parseEntry(imp, "main.ts")
	de, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected diagnostic, got %v", err)
	}
	if de.Code != diagnostics.ErrP001 || de.File != "a.ts" || de.Line != 1 || de.Column != 7 {
		t.Errorf("unexpected diagnostic %s: %v", de.Code, de)
	}
}

func TestPackageImportsSkipTheImporter(t *testing.T) {
	imp := newMapImporter(map[string]string{
		"main.ts":  `import * as fs from "fs"; import type { T } from "./types"; import "./side";`,
		"types.ts": `export type T = number;`,
		"side.ts":  ``,
	})
	prog, err := parseEntry(imp, "main.ts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ns := prog.Statements[0].(*ast.ImportDeclaration); ns.ResolvedPath != "" || ns.Namespace.Value != "fs" {
		t.Errorf("package import parsed incorrectly")
	}
	typeOnly := prog.Statements[1].(*ast.ImportDeclaration)
	if !typeOnly.TypeOnly || !typeOnly.Specifiers[0].IsType {
		t.Errorf("import type not recorded")
	}
	if imp.calls != 2 {
		t.Errorf("expected 2 importer calls, got %d", imp.calls)
	}
}
