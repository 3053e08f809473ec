package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lilit/internal/diagfmt"
	"lilit/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.lil|directory>...",
	Short: "Parse lilit sources and print their syntax trees",
	Long:  `Parse reads a lilit source file or all *.lil files in a directory and prints their syntax trees`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	res, err := driver.Check(cmd.Context(), args, driver.Options{
		MaxDiagnostics: maxDiagnostics,
		NoPrelude:      true,
		ParseOnly:      true,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if res.Bag.Len() > 0 {
		colored, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: colored})
	}

	switch format {
	case "pretty":
		if err := printTrees(res, quiet, false); err != nil {
			return err
		}
	case "json":
		for _, uid := range res.UserUnits() {
			if err := diagfmt.TreeJSON(os.Stdout, res.Builder, uid, res.FileSet, nil); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if res.Bag.HasErrors() {
		return errReported
	}
	return nil
}
