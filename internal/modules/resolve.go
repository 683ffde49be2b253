package modules

import (
	"errors"
	"path/filepath"
	"strings"
)

// DefaultExt is appended to import specifiers without an extension.
const DefaultExt = ".ts"

var ErrNotRelative = errors.New("only relative module specifiers are resolved")

// IsRelative reports whether specifier names a file relative to the
// importing module.
func IsRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// ResolveImport maps a relative specifier to a file path next to fromFile.
// ext is appended when the specifier has no extension.
func ResolveImport(fromFile, specifier, ext string) (string, error) {
	if !IsRelative(specifier) {
		return "", ErrNotRelative
	}
	if ext == "" {
		ext = DefaultExt
	}
	resolved := filepath.Join(filepath.Dir(fromFile), filepath.FromSlash(specifier))
	if filepath.Ext(resolved) == "" {
		resolved += ext
	}
	return resolved, nil
}
