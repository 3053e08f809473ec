package diagfmt

import (
	"encoding/json"
	"io"

	"lilit/internal/diag"
	"lilit/internal/source"
)

// LocationJSON: байтовый диапазон и, по запросу, line/col (1-based).
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document printed by `lilit check --format=json`.
// Count is the number of listed items; Errors and Warnings count the whole bag.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Truncated   bool             `json:"truncated,omitempty"`
}

type locator struct {
	fs        *source.FileSet
	mode      PathMode
	positions bool
}

func (l locator) at(span source.Span) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(l.fs, span.File, l.mode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if !l.positions {
		return loc
	}
	start, end := l.fs.Resolve(span)
	loc.StartLine, loc.StartCol = start.Line, start.Col
	loc.EndLine, loc.EndCol = end.Line, end.Col
	return loc
}

// BuildDiagnosticsOutput converts the bag without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	loc := locator{fs: fs, mode: opts.PathMode, positions: opts.IncludePositions}
	items := bag.Items()
	out := DiagnosticsOutput{
		Errors:   bag.Count(diag.SevError),
		Warnings: bag.Count(diag.SevWarning),
	}
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
		out.Truncated = true
	}
	out.Diagnostics = make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: loc.at(d.Primary),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: note.Msg, Location: loc.at(note.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics as one indented document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
