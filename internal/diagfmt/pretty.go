package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cfront/internal/diag"
	"cfront/internal/source"
)

type palette struct {
	err, warn, info, code, caret, gutter, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		caret:  color.New(color.FgGreen, color.Bold),
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.caret, p.gutter, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes the diagnostics of bag in bag order (call bag.Sort first).
// Each one is printed as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline of the span, then the
// notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		path, start, end := locate(d.Primary, fs, opts.PathMode, opts.BaseDir)
		header := fmt.Sprintf("%s:%d:%d: %s %s: %s\n",
			path, start.Line, start.Col,
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message)
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		if err := writeExcerpt(w, fs, d.Primary, start, end, pal); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			npath, nstart, nend := locate(n.Span, fs, opts.PathMode, opts.BaseDir)
			line := fmt.Sprintf("  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), npath, nstart.Line, nstart.Col, n.Msg)
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
			if err := writeExcerpt(w, fs, n.Span, nstart, nend, pal); err != nil {
				return err
			}
		}
	}
	return nil
}

func locate(sp source.Span, fs *source.FileSet, mode PathMode, baseDir string) (string, source.LineCol, source.LineCol) {
	if fs == nil {
		return "?", source.LineCol{}, source.LineCol{}
	}
	f := fs.Get(sp.File)
	if f == nil {
		return "?", source.LineCol{}, source.LineCol{}
	}
	start, end := fs.Resolve(sp)
	return formatPath(f, mode, baseDir), start, end
}

// writeExcerpt prints the first line of the span with an underline. Tabs
// in the prefix are kept so the caret lines up under the source text.
func writeExcerpt(w io.Writer, fs *source.FileSet, sp source.Span, start, end source.LineCol, pal palette) error {
	if fs == nil || start.Line == 0 {
		return nil
	}
	f := fs.Get(sp.File)
	if f == nil {
		return nil
	}
	text := f.GetLine(start.Line)
	if text == "" {
		return nil
	}
	num := strconv.FormatUint(uint64(start.Line), 10)
	pad := strings.Repeat(" ", len(num))

	col := int(start.Col) - 1
	col = min(max(col, 0), len(text))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	width = max(min(width, len(text)-col), 1)

	var indent strings.Builder
	for _, r := range text[:col] {
		if r == '\t' {
			indent.WriteByte('\t')
			continue
		}
		indent.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	under := "^"
	if width > 1 {
		marked := text[col:min(col+width, len(text))]
		under += strings.Repeat("~", max(runewidth.StringWidth(marked)-1, 0))
	}

	_, err := fmt.Fprintf(w, "%s %s %s\n%s %s %s%s\n",
		pal.gutter.Sprint(num), pal.gutter.Sprint("|"), text,
		pad, pal.gutter.Sprint("|"), indent.String(), pal.caret.Sprint(under))
	return err
}
