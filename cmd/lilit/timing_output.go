package main

import (
	"io"

	"lilit/internal/observ"
)

func printPhaseTimings(out io.Writer, timer *observ.Timer) error {
	if out == nil || timer == nil {
		return nil
	}
	_, err := timer.WriteTo(out)
	return err
}
