package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lilit/internal/diag"
	"lilit/internal/diagfmt"
	"lilit/internal/driver"
	"lilit/internal/project"
	"lilit/internal/source"
)

const noManifestMessage = "no lilit.toml found\nplease specify sources explicitly, e.g.:\n  lilit check path/to/src"

// checkInputs - что проверять и с какими настройками проекта.
type checkInputs struct {
	paths    []string
	manifest *project.Manifest
}

// resolveInputs: явные аргументы важнее манифеста; без аргументов ищем lilit.toml вверх от cwd.
// An invalid manifest is reported as a PRJ diagnostic and yields errReported.
func resolveInputs(cmd *cobra.Command, args []string) (checkInputs, error) {
	if len(args) > 0 {
		return checkInputs{paths: args}, nil
	}
	m, ok, err := project.LoadFromDir(".")
	if err != nil {
		if ok && errors.Is(err, project.ErrInvalidManifest) {
			if reportErr := reportManifestError(cmd, err); reportErr != nil {
				return checkInputs{}, reportErr
			}
			return checkInputs{}, errReported
		}
		return checkInputs{}, err
	}
	if !ok {
		return checkInputs{}, errors.New(noManifestMessage)
	}
	return checkInputs{paths: m.SourcePaths(), manifest: m}, nil
}

func reportManifestError(cmd *cobra.Command, err error) error {
	path, _, findErr := project.FindManifest(".")
	if findErr != nil {
		return findErr
	}
	fs, bag := manifestDiagnostic(path, err)
	colored, colorErr := useColor(cmd, os.Stdout)
	if colorErr != nil {
		return colorErr
	}
	diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{Color: colored})
	return nil
}

// manifestDiagnostic оборачивает ошибку загрузки манифеста в PRJ5001.
func manifestDiagnostic(path string, err error) (*source.FileSet, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, nil)
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.ProjManifestInvalid, source.Span{File: id}, err.Error()))
	return fs, bag
}

// applyManifest заполняет опции из [build]; флаги, заданные явно, важнее.
func applyManifest(cmd *cobra.Command, m *project.Manifest, opts *driver.Options) {
	if m == nil {
		return
	}
	flags := cmd.Flags()
	build := m.Config.Build
	if !flags.Changed("jobs") && build.Jobs > 0 {
		opts.Jobs = build.Jobs
	}
	if !flags.Changed("parallel") && build.Parallel {
		opts.Parallel = true
	}
	if !flags.Changed("no-prelude") && !m.PreludeEnabled() {
		opts.NoPrelude = true
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && build.MaxDiagnostics > 0 {
		opts.MaxDiagnostics = build.MaxDiagnostics
	}
	opts.BaseDir = m.Root
}

func printManifestInfo(out io.Writer, m *project.Manifest) {
	if m == nil {
		return
	}
	fmt.Fprintf(out, "project %s (%s)\n", m.Config.Package.Name, m.Path)
}
