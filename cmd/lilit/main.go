package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lilit/internal/version"
)

// errReported означает, что диагностики уже напечатаны; main просто выходит с кодом 1.
var errReported = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:   "lilit",
	Short: "Lilit language front end",
	Long:  `Lilit resolves names, types and literals of .lil programs and exports the result for the code generator`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runTraceCleanup()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// main registers subcommands and persistent flags, then executes the root command.
// Any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer size for --trace-mode ring|both")

	err := rootCmd.Execute()
	if err != nil {
		// PersistentPostRun не вызывается при ошибке
		runTraceCleanup()
		if !errors.Is(err, errReported) {
			rootCmd.PrintErrln("error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the stream the output goes to.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := parseAutoSwitch("color", colorFlag)
	if err != nil {
		return false, err
	}
	return mode.enabled(f), nil
}
