package diagnostics

import (
	"sort"
	"unicode/utf16"
)

// SourceFile is one source text indexed by UTF-16 code units, the unit all
// token offsets are expressed in.
type SourceFile struct {
	Path       string // relative path used in messages
	Text       []uint16
	lineStarts []int
}

func NewSourceFile(path, text string) *SourceFile {
	f := &SourceFile{Path: path, Text: utf16.Encode([]rune(text))}
	f.lineStarts = append(f.lineStarts, 0)
	for i, c := range f.Text {
		// "\r\n" ends one line; the \n carries the break.
		if c == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Position returns the 1-based line and column of offset.
func (f *SourceFile) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Text) {
		offset = len(f.Text)
	}
	idx := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > offset }) - 1
	return idx + 1, offset - f.lineStarts[idx] + 1
}

// Slice returns the source text between two code unit offsets.
func (f *SourceFile) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(f.Text) {
		end = len(f.Text)
	}
	if start >= end {
		return ""
	}
	return string(utf16.Decode(f.Text[start:end]))
}

func (f *SourceFile) Len() int { return len(f.Text) }
