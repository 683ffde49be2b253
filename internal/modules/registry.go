package modules

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/funvibe/tsfront/internal/diagnostics"
	"github.com/funvibe/tsfront/internal/parser"
)

// Registry holds every module of one compilation, keyed by path. It is the
// parser's Importer: a module is registered before its body is parsed, so
// cyclic and diamond import graphs terminate.
type Registry struct {
	Host   Host
	Root   string
	Ext    string
	Seq    *Sequence
	Logger *slog.Logger

	modules  map[string]*Module
	ordered  []*Module
	analyzed int
}

// NewRegistry creates a registry reading through host. Relative paths in
// diagnostics are computed against root.
func NewRegistry(host Host, root string) *Registry {
	return &Registry{
		Host:    host,
		Root:    filepath.Clean(root),
		Ext:     DefaultExt,
		Seq:     &Sequence{},
		Logger:  slog.New(slog.DiscardHandler),
		modules: make(map[string]*Module),
	}
}

// Load parses the entry module at path and, recursively, everything it
// imports.
func (r *Registry) Load(path string) (*Module, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Root, path)
	}
	path = filepath.Clean(path)
	if !r.Host.Exists(path) {
		return nil, fmt.Errorf("cannot find entry module %s", r.rel(path))
	}
	if err := r.parse(path); err != nil {
		return nil, err
	}
	return r.modules[path], nil
}

// Import implements parser.Importer.
func (r *Registry) Import(importerPath, specifier string) (string, error) {
	resolved, err := ResolveImport(importerPath, specifier, r.Ext)
	if err != nil {
		return "", err
	}
	if _, ok := r.modules[resolved]; ok {
		return resolved, nil
	}
	if !r.Host.Exists(resolved) {
		return "", fmt.Errorf("module %s does not exist", r.rel(resolved))
	}
	if err := r.parse(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

func (r *Registry) parse(path string) error {
	if _, ok := r.modules[path]; ok {
		return nil
	}
	text, err := r.Host.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", r.rel(path), err)
	}
	m := &Module{
		Path:    path,
		RelPath: r.rel(path),
		Alias:   r.Seq.Alias(path),
		Order:   -1,
	}
	m.Source = diagnostics.NewSourceFile(m.RelPath, text)
	r.modules[path] = m
	r.ordered = append(r.ordered, m)
	r.Logger.Debug("module registered", "path", m.RelPath, "alias", m.Alias)

	prog, err := parser.New(m.Source, parser.Options{Path: path, Importer: r}).ParseProgram()
	if err != nil {
		return err
	}
	m.Program = prog
	r.Logger.Debug("module parsed", "path", m.RelPath, "statements", len(prog.Statements))
	return nil
}

func (r *Registry) rel(path string) string {
	if rel, err := filepath.Rel(r.Root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

// Module returns the registered module at path.
func (r *Registry) Module(path string) (*Module, bool) {
	m, ok := r.modules[filepath.Clean(path)]
	return m, ok
}

// Modules returns the modules in registration order.
func (r *Registry) Modules() []*Module {
	return r.ordered
}

// Finish assigns m the next position in analysis order.
func (r *Registry) Finish(m *Module) {
	m.Order = r.analyzed
	m.Analyzed = true
	m.Analyzing = false
	r.analyzed++
	r.Logger.Debug("module analyzed", "path", m.RelPath, "order", m.Order)
}

// Ordered returns analyzed modules, dependencies first.
func (r *Registry) Ordered() []*Module {
	var out []*Module
	for _, m := range r.ordered {
		if m.Order >= 0 {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

var _ parser.Importer = (*Registry)(nil)
