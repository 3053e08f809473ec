package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in a fixed-size buffer.
type RingTracer struct {
	sink
	mu    sync.RWMutex
	buf   []Event
	next  int // slot for the next event
	count int // min(total emitted, len(buf))
}

func NewRingTracer(capacity int, level Level, session string) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{sink: newSink(level, session), buf: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	stored, ok := t.accept(ev)
	if !ok {
		return
	}
	t.mu.Lock()
	t.buf[t.next] = stored
	t.next = (t.next + 1) % len(t.buf)
	t.count = min(t.count+1, len(t.buf))
	t.mu.Unlock()
}

// Snapshot returns the buffered events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Event, 0, t.count)
	first := (t.next - t.count + len(t.buf)) % len(t.buf)
	for i := range t.count {
		out = append(out, t.buf[(first+i)%len(t.buf)])
	}
	return out
}

// Dump writes Snapshot in the given format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format, t.start)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
