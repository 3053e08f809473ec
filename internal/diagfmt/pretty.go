package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lilit/internal/diag"
	"lilit/internal/source"
)

type palette struct {
	err, warn, info, note, path, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter, p.caret} {
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

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s\n", //nolint:errcheck
			pal.path.Sprintf("%s:%d:%d", formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col),
			pal.severity(d.Severity).Sprintf("%s %s:", d.Severity.Label(), d.Code.ID()),
			d.Message)
		writeSnippet(w, fs, d.Primary, pal, opts.Width)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s: %s\n", //nolint:errcheck
				pal.note.Sprint("note:"),
				pal.path.Sprintf("%s:%d:%d", formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col),
				n.Msg)
			writeSnippet(w, fs, n.Span, pal, opts.Width)
		}
	}
}

// writeSnippet печатает первую строку span и подчёркивание под ней.
// Ширина считается по runewidth, табы в отступе сохраняются.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, pal palette, width uint8) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	line := f.Line(start.Line)
	if line == "" && sp.Empty() {
		return
	}

	col := min(int(start.Col)-1, len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(line))
	}
	endCol = max(endCol, col)

	shown := line
	if width > 0 && runewidth.StringWidth(shown) > int(width) {
		shown = runewidth.Truncate(shown, int(width), "…")
	}

	num := strconv.FormatUint(uint64(start.Line), 10)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), shown) //nolint:errcheck

	var indent strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			indent.WriteByte('\t')
			continue
		}
		indent.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	underline := max(runewidth.StringWidth(line[col:endCol]), 1)
	marker := "^" + strings.Repeat("~", underline-1)
	fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gutter.Sprint("|"), indent.String(), pal.caret.Sprint(marker)) //nolint:errcheck
}
