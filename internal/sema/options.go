package sema

import (
	"lilit/internal/diag"
	"lilit/internal/trace"
)

// Options configure a resolution run.
type Options struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// Parent is the trace span the per-unit spans hang off.
	Parent uint64
	// Jobs limits ResolveParallel; <= 0 means no limit.
	Jobs int
}

func (o Options) reporter() diag.Reporter {
	if o.Reporter == nil {
		return diag.NopReporter{}
	}
	return o.Reporter
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}
