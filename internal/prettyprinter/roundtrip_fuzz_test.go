package prettyprinter

import (
	"testing"

	"github.com/funvibe/tsfront/internal/parser"
)

// FuzzRoundTrip checks that printed code parses again and prints identically.
func FuzzRoundTrip(f *testing.F) {
	f.Add("function add(a, b) { return a + b; }")
	f.Add("const n = -(-a) + +(+b) - typeof c + (a, b);")
	f.Add(`const o = { a: 1, "b-c": 2, d, ...rest };`)
	f.Add("if (a) b(); else if (c) { d(); } else e();")
	f.Add("switch (x) { case 1: case 2: y(); break; default: z(); }")
	f.Add("try { f(); } catch (e: unknown) { throw e; } finally { g(); }")
	f.Add(`type F = ((a: number) => void) | null | "lit" | -1 | (string | number)[];`)
	f.Add("let s = `a${b}c`;")
	f.Add("outer: while (true) { do { break outer; } while (false); }")

	f.Fuzz(func(t *testing.T, src string) {
		if len(src) > 2048 {
			return
		}
		prog, err := parser.ParseSource("main.ts", src)
		if err != nil {
			return
		}
		first := Print(prog)

		reparsed, err := parser.ParseSource("main.ts", first)
		if err != nil {
			t.Fatalf("printed code does not parse: %v\ninput:\n%s\nprinted:\n%s", err, src, first)
		}
		if second := Print(reparsed); second != first {
			t.Fatalf("printing is not stable\nfirst:\n%s\nsecond:\n%s", first, second)
		}
	})
}
