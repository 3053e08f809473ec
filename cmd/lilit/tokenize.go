package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lilit/internal/diag"
	"lilit/internal/diagfmt"
	"lilit/internal/driver"
	"lilit/internal/source"
	"lilit/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.lil|directory>...",
	Short: "Tokenize lilit source files",
	Long:  `Tokenize breaks down lilit source files into their constituent tokens`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	// Один файл: без errgroup и заголовков
	if len(args) == 1 {
		if st, statErr := os.Stat(args[0]); statErr == nil && !st.IsDir() {
			fs, result, err := driver.Tokenize(args[0], maxDiagnostics)
			if err != nil {
				return fmt.Errorf("tokenization failed: %w", err)
			}
			if err := printLexDiagnostics(cmd, result.Bag, fs); err != nil {
				return err
			}
			return writeTokens(format, result.Tokens, fs)
		}
	}

	files, err := driver.CollectFiles(args)
	if err != nil {
		return err
	}
	fs, results, err := driver.TokenizeFiles(cmd.Context(), files, maxDiagnostics, jobs)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	failed := false
	for idx, r := range results {
		if err := printLexDiagnostics(cmd, r.Bag, fs); err != nil {
			return err
		}
		failed = failed || r.Bag.HasErrors()
		if !quiet && format == "pretty" {
			fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
		}
		if err := writeTokens(format, r.Tokens, fs); err != nil {
			return err
		}
		if !quiet && format == "pretty" && idx < len(results)-1 {
			fmt.Fprintln(os.Stdout)
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func printLexDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag.Len() == 0 && bag.Dropped() == 0 {
		return nil
	}
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: colored})
	return nil
}

func writeTokens(format string, tokens []token.Token, fs *source.FileSet) error {
	if format == "json" {
		return diagfmt.FormatTokensJSON(os.Stdout, tokens, fs)
	}
	return diagfmt.FormatTokensPretty(os.Stdout, tokens, fs)
}
