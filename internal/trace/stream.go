package trace

import (
	"io"
	"sync"
)

// StreamTracer formats and writes each event as it arrives.
type StreamTracer struct {
	sink
	mu     sync.Mutex
	w      io.Writer
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format, session string) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{sink: newSink(level, session), w: w, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	stored, ok := t.accept(ev)
	if !ok {
		return
	}
	line := FormatEvent(&stored, t.format, t.start)
	t.mu.Lock()
	defer t.mu.Unlock()
	// ошибки записи трассы не должны ронять проверку
	_, _ = t.w.Write(line) //nolint:errcheck
}

// Flush forwards to the writer when it buffers (bufio.Writer and friends).
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes, then closes the writer if it is an io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
