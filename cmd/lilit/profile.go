package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lilit/internal/prof"
)

// setupProfiling reads the profiling flags of cmd and starts the profilers.
// The returned session is nil-safe to Stop.
func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Flags()
	var (
		cfg prof.Config
		err error
	)
	if cfg.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil, nil
	}
	return prof.Start(cfg)
}

func addProfilingFlags(cmd *cobra.Command) {
	cmd.Flags().String("cpu-profile", "", "write a CPU profile to this path")
	cmd.Flags().String("mem-profile", "", "write a heap profile to this path")
	cmd.Flags().String("runtime-trace", "", "write a Go runtime trace to this path")
}
