// Package diagfmt renders diagnostics and token dumps for the CLI.
// It is the only layer that knows about colors and output formats; the
// diag package stays pure data.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"strhash/internal/diag"
	"strhash/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	posColor  = color.New(color.Bold)
)

// Pretty renders every diagnostic in the bag. Call bag.Sort() first for a
// deterministic order. Per diagnostic:
//
//	<path>:<line>:<col>: <SEV> [<CODE>]: <message>
//
// followed by the offending line with a ^~~~ underline and any notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := d.Severity.String()
	if opts.Color {
		sev = sevSprint(d.Severity, sev)
	}

	f := fs.Get(d.Primary.File)
	if f == nil {
		// No source position, e.g. the file itself failed to load.
		fmt.Fprintf(w, "%s [%s]: %s\n", sev, d.Code.ID(), d.Message)
		return
	}
	start, end := fs.Resolve(d.Primary)

	pos := fmt.Sprintf("%s:%d:%d:", f.Path, start.Line, start.Col)
	if opts.Color {
		pos = posColor.Sprint(pos)
	}
	fmt.Fprintf(w, "%s %s [%s]: %s\n", pos, sev, d.Code.ID(), d.Message)

	writeContext(w, f, start, end, opts)

	for _, n := range d.Notes {
		nStart, _ := fs.Resolve(n.Span)
		nf := fs.Get(n.Span.File)
		fmt.Fprintf(w, "  %s:%d:%d: note: %s\n", nf.Path, nStart.Line, nStart.Col, n.Msg)
	}
	for _, fx := range d.Fixes {
		fmt.Fprintf(w, "  fix: %s\n", fx.Title)
	}
}

// writeContext prints the primary line with a caret underline, plus up to
// opts.Context preceding lines.
func writeContext(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts) {
	first := int(start.Line) - opts.Context
	if first < 1 {
		first = 1
	}
	for ln := uint32(first); ln <= start.Line; ln++ {
		line := f.GetLine(ln)
		fmt.Fprintf(w, "  %4d | %s\n", ln, line)
	}

	line := f.GetLine(start.Line)
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	} else if l := len(line) - int(start.Col) + 1; l > width {
		// Span runs past the line; underline to its end.
		width = l
	}
	underline := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		underline = errColor.Sprint(underline)
	}
	fmt.Fprintf(w, "       | %s%s\n", strings.Repeat(" ", int(start.Col)-1), underline)
}

func sevSprint(s diag.Severity, text string) string {
	switch s {
	case diag.SevError:
		return errColor.Sprint(text)
	case diag.SevWarning:
		return warnColor.Sprint(text)
	default:
		return infoColor.Sprint(text)
	}
}
