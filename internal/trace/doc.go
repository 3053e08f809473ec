// Package trace provides a tracing subsystem for the lilit front end.
//
// Tracing follows a check run through its phases: the driver span, one span
// per pass (load, parse, index, resolve), one span per file and, at debug
// level, point events emitted by the resolver for individual nodes.
//
// Levels: off, error (failed phases and panics only), phase, detail, debug.
// Error events pass every level except off.
//
// # Usage
//
//	lilit check --trace=- --trace-level=phase src/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: circular buffer, dumped on failure
//   - MultiTracer: fan-out to several tracers
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
