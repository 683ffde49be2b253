package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher applies the entry and exclude patterns of a configuration.
// Paths are slash-separated and relative to the project root; '*' stops at
// '/', '**' does not.
type Matcher struct {
	ext     string
	entries []glob.Glob
	exclude []glob.Glob
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Matcher compiles the configured patterns.
func (c *Config) Matcher() (*Matcher, error) {
	entries, err := compileAll(c.Entries)
	if err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}
	exclude, err := compileAll(c.Exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	return &Matcher{ext: c.Ext, entries: entries, exclude: exclude}, nil
}

// Excluded reports whether rel matches an exclude pattern.
func (m *Matcher) Excluded(rel string) bool {
	return matchAny(m.exclude, filepath.ToSlash(rel))
}

// ExcludedDir reports whether the directory rel, and so everything below
// it, is skipped.
func (m *Matcher) ExcludedDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	return matchAny(m.exclude, rel) || matchAny(m.exclude, rel+"/")
}

// IsSource reports whether rel is a source file that is not excluded.
func (m *Matcher) IsSource(rel string) bool {
	return strings.HasSuffix(rel, m.ext) && !m.Excluded(rel)
}

// IsEntry reports whether rel is an entry module.
func (m *Matcher) IsEntry(rel string) bool {
	rel = filepath.ToSlash(rel)
	return m.IsSource(rel) && matchAny(m.entries, rel)
}

// EntryFiles walks Root and returns the root-relative, slash-separated
// paths of all entry modules in lexical order.
func (c *Config) EntryFiles() ([]string, error) {
	m, err := c.Matcher()
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(c.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(c.Root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel != "." && m.ExcludedDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if m.IsEntry(rel) {
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", c.Root, err)
	}
	return files, nil
}
