package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.End <= s.Start }

// String prints file:start-end; used in test failures and trace details.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover extends s to include other. Spans of another file leave s unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}

// Contains reports whether other lies inside s in the same file.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Before: s заканчивается не позже начала other в том же файле.
func (s Span) Before(other Span) bool {
	return s.File == other.File && s.End <= other.Start
}
