package trace

import (
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// Span tracks one begin/end pair. A span from a disabled tracer is inert.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

// Begin emits a SpanBegin event. parent is the parent span ID (0 if root).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Level().Allows(KindSpanBegin, scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:   t,
		id:       globalSpans.Add(1),
		parentID: parent,
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Seq:      globalSeq.Add(1),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits SpanEnd with the collected extras and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	dur := time.Since(s.started)
	ev := s.event(KindSpanEnd, time.Now(), detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return dur
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits a single instant event.
func Point(t Tracer, scope Scope, name string, parent uint64, detail string) {
	emitInstant(t, KindPoint, scope, name, parent, detail)
}

// Error emits a KindError event: a failed phase or a recovered panic.
func Error(t Tracer, scope Scope, name string, parent uint64, detail string) {
	emitInstant(t, KindError, scope, name, parent, detail)
}

func emitInstant(t Tracer, kind Kind, scope Scope, name string, parent uint64, detail string) {
	if t == nil || !t.Level().Allows(kind, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      globalSeq.Add(1),
		Kind:     kind,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
