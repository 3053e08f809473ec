package diagfmt

import (
	"fmt"

	"lilit/internal/source"
)

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to start and end positions and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	return f.FormatPath(mode.mode(), fs.BaseDir())
}
