package diag

import (
	"fmt"
	"sort"
	"strings"

	"lilit/internal/source"
)

type goldenLine struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders one line per diagnostic:
//
//	error SEM3003 main.lil:4:3 unresolved identifier "a"
//
// Lines are sorted by path, position, severity, code and message so the
// output is stable across parallel runs. Notes become "note" lines when
// includeNotes is set.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]goldenLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if l, ok := goldenAt(fs, d.Primary); ok {
			l.Severity = severityLabel(d.Severity)
			l.Code = d.Code.ID()
			l.Message = sanitizeMessage(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := goldenAt(fs, n.Span); ok {
				l.Severity = "note"
				l.Code = d.Code.ID()
				l.Message = sanitizeMessage(n.Msg)
				lines = append(lines, l)
			}
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s %s:%d:%d %s", l.Severity, l.Code, l.Path, l.Line, l.Column, l.Message)
	}
	return sb.String()
}

func goldenAt(fs *source.FileSet, span source.Span) (goldenLine, bool) {
	if int(span.File) >= fs.Len() {
		return goldenLine{}, false
	}
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return goldenLine{
		Path:   strings.TrimPrefix(f.FormatPath("relative", fs.BaseDir()), "./"),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
