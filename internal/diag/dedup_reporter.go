package diag

import "lilit/internal/source"

// DedupReporter drops a report identical to an earlier one: same code,
// severity, primary span and message. Notes are not compared.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

type dedupKey struct {
	code Code
	sev  Severity
	at   source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, sev: sev, at: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed returns how many duplicates were dropped.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
