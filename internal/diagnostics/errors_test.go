package diagnostics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/funvibe/tsfront/internal/token"
)

func TestPosition(t *testing.T) {
	f := NewSourceFile("a.ts", "ab\r\ncd\n\ne😀f")
	tests := []struct {
		offset       int
		line, column int
	}{
		{0, 1, 1},
		{2, 1, 3},  // \r
		{4, 2, 1},  // c
		{7, 3, 1},  // empty line
		{8, 4, 1},  // e
		{11, 4, 4}, // f, after a surrogate pair
		{-3, 1, 1},
		{100, 4, 5},
	}
	for _, tt := range tests {
		line, col := f.Position(tt.offset)
		if line != tt.line || col != tt.column {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.column)
		}
	}
	if got := f.Slice(8, 11); got != "e😀" {
		t.Errorf("Slice = %q", got)
	}
}

func TestErrorFormat(t *testing.T) {
	f := NewSourceFile("src/main.ts", "let a = 1;\nconst b;")
	err := Errorf(ErrP002, f, token.Span{Start: 17, End: 18}, "'%s' declarations must be initialized", "const")

	want := "'const' declarations must be initialized. src/main.ts:2:7"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if err.Category() != Syntactic {
		t.Errorf("category = %s", err.Category())
	}
}

func TestCategories(t *testing.T) {
	tests := map[ErrorCode]Category{
		ErrL001: Lexical,
		ErrL002: UnsupportedFeature,
		ErrP001: Syntactic,
		ErrP003: UnsupportedFeature,
		ErrB004: Binding,
		ErrT008: Type,
	}
	for code, want := range tests {
		if got := code.Category(); got != want {
			t.Errorf("%s: got %s, want %s", code, got, want)
		}
	}
}

func TestRecover(t *testing.T) {
	parse := func() (err error) {
		defer Recover(&err)
		panic(NewError(ErrB002, NewSourceFile("m.ts", "x"), token.Span{}, "Cannot find name 'x'"))
	}
	err := parse()
	de, ok := AsDiagnostic(fmt.Errorf("wrapped: %w", err))
	if !ok || de.Code != ErrB002 {
		t.Fatalf("AsDiagnostic(%v) = %v, %v", err, de, ok)
	}

	defer func() {
		if r := recover(); r == nil || r.(error).Error() != "boom" {
			t.Errorf("expected the foreign panic to propagate, got %v", r)
		}
	}()
	func() (err error) {
		defer Recover(&err)
		panic(errors.New("boom"))
	}()
}
