package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lilit/internal/diag"
	"lilit/internal/diagfmt"
	"lilit/internal/driver"
	"lilit/internal/export"
	"lilit/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.lil|directory]...",
	Short: "Resolve names, types and literals of a lilit program",
	Long: `Check loads the given files and directories (or the sources listed in lilit.toml),
builds the symbol index, resolves every method body and reports diagnostics.
With --emit the resolved program is written for the code generator.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|short)")
	checkCmd.Flags().String("emit", "", "write the resolved program (.lri) to this path")
	checkCmd.Flags().Bool("emit-tree", false, "print the annotated syntax tree of every user file")
	checkCmd.Flags().Bool("parallel", false, "resolve method bodies of different files concurrently")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("no-prelude", false, "do not load the built-in prelude")
	checkCmd.Flags().Bool("self-check", false, "verify resolver invariants after the run (debug)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	addProfilingFlags(checkCmd)
}

type checkFlags struct {
	format    string
	emit      string
	emitTree  bool
	withNotes bool
	fullPath  bool
	ui        autoSwitch
	quiet     bool
	timings   bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, driver.Options, error) {
	var (
		f    checkFlags
		opts driver.Options
		err  error
	)
	flags := cmd.Flags()
	if f.format, err = flags.GetString("format"); err != nil {
		return f, opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "json", "short":
	default:
		return f, opts, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.emit, err = flags.GetString("emit"); err != nil {
		return f, opts, fmt.Errorf("failed to get emit flag: %w", err)
	}
	if f.emitTree, err = flags.GetBool("emit-tree"); err != nil {
		return f, opts, fmt.Errorf("failed to get emit-tree flag: %w", err)
	}
	if f.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return f, opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return f, opts, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return f, opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = parseAutoSwitch("ui", uiFlag); err != nil {
		return f, opts, err
	}
	if f.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return f, opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if f.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, opts, fmt.Errorf("failed to get timings flag: %w", err)
	}

	if opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return f, opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.Parallel, err = flags.GetBool("parallel"); err != nil {
		return f, opts, fmt.Errorf("failed to get parallel flag: %w", err)
	}
	if opts.Jobs, err = flags.GetInt("jobs"); err != nil {
		return f, opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.NoPrelude, err = flags.GetBool("no-prelude"); err != nil {
		return f, opts, fmt.Errorf("failed to get no-prelude flag: %w", err)
	}
	if opts.SelfCheck, err = flags.GetBool("self-check"); err != nil {
		return f, opts, fmt.Errorf("failed to get self-check flag: %w", err)
	}
	return f, opts, nil
}

// runCheck executes "check": it resolves the inputs, runs the driver, prints the
// diagnostics and, when there are no errors, the requested artefacts.
func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	f, opts, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	inputs, err := resolveInputs(cmd, args)
	if err != nil {
		return err
	}
	applyManifest(cmd, inputs.manifest, &opts)
	if f.emit == "" && inputs.manifest != nil {
		f.emit = inputs.manifest.ExportPath()
	}
	if !f.quiet && f.format == "pretty" {
		printManifestInfo(os.Stderr, inputs.manifest)
	}
	if f.timings {
		opts.Timer = observ.NewTimer()
	}

	session, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	var res *driver.Result
	if f.format == "pretty" && shouldUseTUI(f.ui) {
		files, collectErr := driver.CollectFiles(inputs.paths)
		if collectErr != nil {
			return collectErr
		}
		res, err = runCheckWithUI(cmd.Context(), "check", files, inputs.paths, opts)
	} else {
		res, err = driver.Check(cmd.Context(), inputs.paths, opts)
	}
	if stopErr := session.Stop(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "profiling: %v\n", stopErr)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if err := printDiagnostics(cmd, res, f); err != nil {
		return err
	}
	if f.timings {
		if err := printPhaseTimings(os.Stderr, opts.Timer); err != nil {
			return err
		}
	}
	if res.Bag.HasErrors() {
		return errReported
	}

	if f.emitTree {
		if err := printTrees(res, f.quiet, true); err != nil {
			return err
		}
	}
	if f.emit != "" {
		prog, err := res.Export()
		if err != nil {
			return err
		}
		if err := export.Write(f.emit, prog); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		if !f.quiet {
			fmt.Fprintf(os.Stderr, "wrote %s (%d classes, %d methods, %d instances)\n",
				f.emit, len(prog.Classes), len(prog.Methods), len(prog.Instances))
		}
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, res *driver.Result, f checkFlags) error {
	pathMode := diagfmt.PathModeAuto
	if f.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch f.format {
	case "pretty":
		colored, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stdout, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     colored,
			PathMode:  pathMode,
			ShowNotes: f.withNotes,
		})
		if !f.quiet && res.Bag.Len() > 0 {
			fmt.Fprintf(os.Stdout, "%d errors, %d warnings\n",
				res.Bag.Count(diag.SevError), res.Bag.Count(diag.SevWarning))
		}
	case "short":
		output := diag.FormatGoldenDiagnostics(res.Bag.Items(), res.FileSet, f.withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     f.withNotes,
		}
		if err := diagfmt.JSON(os.Stdout, res.Bag, res.FileSet, opts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}
	return nil
}

// printTrees печатает дерево каждого пользовательского юнита; resolved добавляет аннотации резолвера.
func printTrees(res *driver.Result, quiet, resolved bool) error {
	units := res.UserUnits()
	for idx, uid := range units {
		if !quiet {
			u := res.Builder.Units.Get(uid)
			file := res.FileSet.Get(u.File)
			fmt.Fprintf(os.Stdout, "== %s ==\n", file.FormatPath("auto", res.FileSet.BaseDir()))
		}
		sem := res.Sema
		if !resolved {
			sem = nil
		}
		if err := diagfmt.Tree(os.Stdout, res.Builder, uid, res.FileSet, sem); err != nil {
			return err
		}
		if !quiet && idx < len(units)-1 {
			fmt.Fprintln(os.Stdout)
		}
	}
	return nil
}
