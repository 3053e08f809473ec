package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lilit/internal/trace"
)

var (
	traceCleanup func()
	activeTracer trace.Tracer = trace.Nop
)

// traceFlags - значения --trace* флагов корневой команды.
type traceFlags struct {
	output, level, mode, format string
	ringSize                    int
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var (
		tf   traceFlags
		errs [5]error
	)
	tf.output, errs[0] = pf.GetString("trace")
	tf.level, errs[1] = pf.GetString("trace-level")
	tf.mode, errs[2] = pf.GetString("trace-mode")
	tf.format, errs[3] = pf.GetString("trace-format")
	tf.ringSize, errs[4] = pf.GetInt("trace-ring-size")
	for _, err := range errs {
		if err != nil {
			return tf, fmt.Errorf("failed to read trace flags: %w", err)
		}
	}
	return tf, nil
}

func (tf traceFlags) config() (trace.Config, error) {
	cfg := trace.Config{OutputPath: tf.output, RingSize: tf.ringSize}
	var err error
	if cfg.Level, err = trace.ParseLevel(tf.level); err != nil {
		return cfg, err
	}
	// --trace без уровня включает фазы
	if cfg.Level == trace.LevelOff && tf.output != "" {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(tf.mode); err != nil {
		return cfg, err
	}
	cfg.Format, err = trace.ParseFormat(tf.format)
	return cfg, err
}

// setupTracing builds the tracer from the flags and attaches it to the
// command context. The returned cleanup flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := tf.config()
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
	if !tracer.Enabled() {
		return func() {}, nil
	}
	return func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}

func runTraceCleanup() {
	if cleanup := traceCleanup; cleanup != nil {
		traceCleanup = nil
		cleanup()
	}
}

// ringOf returns the in-memory ring behind t, if any.
func ringOf(t trace.Tracer) (*trace.RingTracer, bool) {
	switch tt := t.(type) {
	case *trace.RingTracer:
		return tt, true
	case *trace.MultiTracer:
		return tt.Ring()
	}
	return nil, false
}

// dumpTraceOnPanic отмечает панику в трассе, печатает ring-буфер в stderr и паникует дальше.
// Вызывается через defer в командах, которые гоняют резолвер.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	trace.Error(activeTracer, trace.ScopeDriver, "panic", 0, fmt.Sprint(r))
	if ring, ok := ringOf(activeTracer); ok {
		fmt.Fprintln(os.Stderr, "== trace (last events) ==")
		if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
			fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
		}
	}
	panic(r)
}
