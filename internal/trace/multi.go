package trace

import "errors"

// MultiTracer forwards every event to each child; children filter on their own level.
type MultiTracer struct {
	level    Level
	children []Tracer
}

func NewMultiTracer(level Level, children ...Tracer) *MultiTracer {
	return &MultiTracer{level: level, children: children}
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, c := range t.children {
		c.Emit(ev)
	}
}

func (t *MultiTracer) each(fn func(Tracer) error) error {
	errs := make([]error, 0, len(t.children))
	for _, c := range t.children {
		errs = append(errs, fn(c))
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Flush() error  { return t.each(Tracer.Flush) }
func (t *MultiTracer) Close() error  { return t.each(Tracer.Close) }
func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }

// Ring returns the first in-memory child, used for the dump on panic.
func (t *MultiTracer) Ring() (*RingTracer, bool) {
	for _, c := range t.children {
		if r, ok := c.(*RingTracer); ok {
			return r, true
		}
	}
	return nil, false
}
