package parser

import (
	"testing"

	"github.com/funvibe/tsfront/internal/diagnostics"
)

// FuzzParseSource checks that arbitrary input either parses or fails with a
// positioned diagnostic. Any other panic escapes Recover and fails the run.
func FuzzParseSource(f *testing.F) {
	f.Add("function add(a, b) { return a + b; }")
	f.Add("const x: number[] = [1, 2, 3];")
	f.Add("let s = `a${1 + 2}b`;")
	f.Add("enum E { A = 1, B = \"b\" }")
	f.Add("interface P extends Q { x?: number; f(a: string): void }")
	f.Add("type R<T> = { [K in keyof T]: T[K] };")
	f.Add("outer: for (let i = 0; i < 3; i++) { continue outer; }")
	f.Add("import { a } from \"pkg\"; export { a };")
	f.Add("const f = <T,>(x: T): T => x;")
	f.Add("\"unterminated")

	f.Fuzz(func(t *testing.T, src string) {
		if len(src) > 4096 {
			return
		}
		prog, err := ParseSource("main.ts", src)
		if err == nil {
			if prog == nil {
				t.Fatal("nil program without error")
			}
			return
		}
		de, ok := diagnostics.AsDiagnostic(err)
		if !ok {
			t.Fatalf("non-diagnostic error %T: %v", err, err)
		}
		if de.File != "main.ts" {
			t.Errorf("diagnostic file = %q", de.File)
		}
		if de.Line < 1 || de.Column < 1 {
			t.Errorf("diagnostic position %d:%d for %q", de.Line, de.Column, src)
		}
	})
}
