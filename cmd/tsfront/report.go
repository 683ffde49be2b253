package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/funvibe/tsfront/internal/config"
	"github.com/funvibe/tsfront/internal/diagnostics"
)

// reporter prints compilation results. Diagnostics go to errOut, progress
// and formatted sources to out.
type reporter struct {
	out    io.Writer
	errOut io.Writer
	styled bool

	codeStyle lipgloss.Style
	locStyle  lipgloss.Style
	okStyle   lipgloss.Style
	failStyle lipgloss.Style
}

func newReporter(out, errOut io.Writer, colorMode string) *reporter {
	r := &reporter{out: out, errOut: errOut, styled: useColor(colorMode, errOut)}

	renderer := lipgloss.NewRenderer(errOut)
	if r.styled {
		renderer.SetColorProfile(termenv.ANSI256)
	}
	r.codeStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#F87171"))
	r.locStyle = renderer.NewStyle().Foreground(lipgloss.Color("#64748B"))
	r.okStyle = renderer.NewStyle().Foreground(lipgloss.Color("#10B981"))
	r.failStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#F87171"))
	return r
}

// useColor resolves a color mode against the output stream.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *reporter) render(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}

// Failure prints the error that stopped one compilation.
func (r *reporter) Failure(err error) {
	de, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		fmt.Fprintf(r.errOut, "%s %s\n", r.render(r.failStyle, "error:"), err)
		return
	}
	loc := fmt.Sprintf("%s:%d:%d", de.File, de.Line, de.Column)
	fmt.Fprintf(r.errOut, "%s %s. %s\n", r.render(r.codeStyle, string(de.Code)), de.Message, r.render(r.locStyle, loc))
}

func (r *reporter) Success(entry string, modules int) {
	fmt.Fprintf(r.out, "%s %s (%d modules)\n", r.render(r.okStyle, "ok"), entry, modules)
}

func (r *reporter) Source(text string) {
	fmt.Fprint(r.out, text)
}

func (r *reporter) Summary(total, failed int) {
	if failed == 0 {
		return
	}
	fmt.Fprintf(r.errOut, "%s %d of %d entries failed\n", r.render(r.failStyle, "FAIL"), failed, total)
}
