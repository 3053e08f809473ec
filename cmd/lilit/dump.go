package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lilit/internal/export"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <program.lri>",
	Short: "Print a resolved program written by check --emit",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().String("format", "yaml", "output format (yaml|json)")
}

func runDump(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	prog, err := export.Read(args[0])
	if err != nil {
		return err
	}
	return writeProgram(os.Stdout, prog, format)
}

func writeProgram(out io.Writer, prog *export.Program, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(prog); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(prog)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
