package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/funvibe/tsfront/internal/config"
	"github.com/funvibe/tsfront/internal/pipeline"
	"github.com/funvibe/tsfront/internal/prettyprinter"
	"github.com/funvibe/tsfront/internal/watcher"
)

const usage = `Usage: tsfront [flags] [entry.ts ...]

Type-checks each entry module and everything it imports. Without entry
arguments the entries are taken from tsfront.yaml / tsfront.toml, found by
searching upward from the project root.

Flags:
`

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

type options struct {
	configPath string
	root       string
	color      string
	watch      bool
	format     bool
	verbose    bool
	entries    []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("tsfront", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "configuration file (default: search for tsfront.yaml or tsfront.toml)")
	fs.StringVar(&opts.root, "root", "", "project root; diagnostics report paths relative to it")
	fs.StringVar(&opts.color, "color", "", "styled diagnostics: auto, always or never")
	fs.BoolVar(&opts.watch, "watch", false, "recompile when source files change")
	fs.BoolVar(&opts.format, "fmt", false, "print each successfully checked entry module in canonical form")
	fs.BoolVar(&opts.verbose, "v", false, "log debug events")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.entries = fs.Args()
	return opts, nil
}

// loadConfig finds and loads the configuration, then applies flag
// overrides. The returned root is absolute.
func loadConfig(opts *options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		start := opts.root
		if start == "" {
			start = "."
		}
		found, err := config.Find(start)
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.root != "" {
		cfg.Root = opts.root
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	cfg.Root = root

	if opts.color != "" {
		switch opts.color {
		case config.ColorAuto, config.ColorAlways, config.ColorNever:
			cfg.Color = opts.color
		default:
			return nil, fmt.Errorf("-color must be one of auto, always, never (got %q)", opts.color)
		}
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

type driver struct {
	cfg    *config.Config
	opts   *options
	logger *slog.Logger
	report *reporter
}

// entryFiles returns the entries named on the command line, made absolute,
// or else the configured entries under the root.
func (d *driver) entryFiles() ([]string, error) {
	if len(d.opts.entries) == 0 {
		return d.cfg.EntryFiles()
	}
	files := make([]string, 0, len(d.opts.entries))
	for _, e := range d.opts.entries {
		abs, err := filepath.Abs(e)
		if err != nil {
			return nil, err
		}
		files = append(files, abs)
	}
	return files, nil
}

// compile checks every entry and returns the number that failed.
func (d *driver) compile() (failed int, err error) {
	entries, err := d.entryFiles()
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, errors.New("no entry modules found")
	}

	for _, entry := range entries {
		ctx := pipeline.NewPipelineContext(d.cfg.Root, entry)
		ctx.Ext = d.cfg.Ext
		ctx.Logger = d.logger
		ctx = pipeline.Default().Run(ctx)

		if ctx.Failed() {
			failed++
			d.report.Failure(ctx.Errors[0])
			continue
		}
		d.report.Success(ctx.Module.RelPath, len(ctx.Registry.Ordered()))
		if d.opts.format {
			d.report.Source(prettyprinter.Print(ctx.Module.Program))
		}
	}
	d.report.Summary(len(entries), failed)
	return failed, nil
}

func (d *driver) watch(ctx context.Context) error {
	m, err := d.cfg.Matcher()
	if err != nil {
		return err
	}
	w, err := watcher.New(d.cfg.Root, m, d.cfg.Watch.Debounce, func(paths []string) {
		d.logger.Info("recompiling", "changed", paths)
		if _, err := d.compile(); err != nil {
			d.logger.Error("compile failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()
	w.Logger = d.logger

	d.logger.Info("watching", "root", d.cfg.Root)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitUsage
	}

	d := &driver{
		cfg:    cfg,
		opts:   opts,
		logger: cfg.NewLogger(stderr),
		report: newReporter(stdout, stderr, cfg.Color),
	}
	d.logger.Debug("configuration", "root", cfg.Root, "dir", cfg.Dir, "entries", cfg.Entries)

	failed, err := d.compile()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitUsage
	}

	if opts.watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := d.watch(ctx); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return exitFailed
		}
		return exitOK
	}

	if failed > 0 {
		return exitFailed
	}
	return exitOK
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
