package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// writeProject materializes a txtar archive into a temporary directory.
func writeProject(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(dir, f.Name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o644))
	}
	return dir
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCheckConfiguredEntries(t *testing.T) {
	dir := writeProject(t, `
-- tsfront.yaml --
root: .
entries: ["src/main.ts"]
color: never
-- src/main.ts --
import { twice } from "./lib";
const n: number = twice(21);
-- src/lib.ts --
export function twice(x: number): number { return x * 2; }
`)

	code, stdout, stderr := runCLI("-config", filepath.Join(dir, "tsfront.yaml"))
	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "ok src/main.ts (2 modules)\n", stdout)
}

func TestReportsFirstDiagnostic(t *testing.T) {
	dir := writeProject(t, `
-- main.ts --
const x;
-- other.ts --
let fine = 1;
`)

	code, stdout, stderr := runCLI("-root", dir, "-color", "never")
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr, "P002 'const' declarations must be initialized. main.ts:1:7\n")
	assert.Contains(t, stderr, "FAIL 1 of 2 entries failed")
	assert.Equal(t, "ok other.ts (1 modules)\n", stdout)
}

func TestExplicitEntryAndFormatting(t *testing.T) {
	dir := writeProject(t, `
-- a.ts --
function add(a, b) { return a + b }
-- b.ts --
this is not checked
`)

	code, stdout, stderr := runCLI("-root", dir, "-color", "never", "-fmt", filepath.Join(dir, "a.ts"))
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "ok a.ts (1 modules)\nfunction add(a, b) {\n    return a + b;\n}\n", stdout)
}

func TestUsageErrors(t *testing.T) {
	code, _, stderr := runCLI("-color", "purple", "-root", t.TempDir())
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "-color must be one of")

	code, _, _ = runCLI("-no-such-flag")
	assert.Equal(t, exitUsage, code)

	code, _, stderr = runCLI("-root", t.TempDir(), "-color", "never")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "no entry modules found")

	code, _, _ = runCLI("-h")
	assert.Equal(t, exitOK, code)
}

func TestStyledDiagnostics(t *testing.T) {
	dir := writeProject(t, `
-- main.ts --
let a: number = "s";
`)
	code, _, stderr := runCLI("-root", dir, "-color", "always")
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr, "\x1b[")
	assert.Contains(t, stderr, "main.ts:1:")
}
