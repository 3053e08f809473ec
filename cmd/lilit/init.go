package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lilit/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new lilit project",
	Long: `Initialize a new lilit project by creating a project manifest (lilit.toml)
and an entry point (src/main.lil). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	arg := "."
	if len(args) == 1 {
		arg = args[0]
	}
	return initProject(cmd.OutOrStdout(), arg)
}

// initProject creates lilit.toml and src/main.lil under target; an existing
// manifest is an error, an existing main.lil is kept.
func initProject(out io.Writer, arg string) error {
	target, err := filepath.Abs(arg)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	if outer, ok, err := project.FindManifest(filepath.Dir(target)); err == nil && ok {
		fmt.Fprintf(out, "note: %s is inside project %s\n", target, filepath.Dir(outer))
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "lilit-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := project.Write(manifestPath, project.DefaultConfig(name)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	srcDir := filepath.Join(target, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", srcDir, err)
	}
	mainPath := filepath.Join(srcDir, "main.lil")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainLil), 0o600); err != nil {
			return fmt.Errorf("failed to write main.lil: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(out, "Initialized lilit project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintf(out, "  - src/main.lil\n")
	} else {
		fmt.Fprintf(out, "  - src/main.lil (existing)\n")
	}
	return nil
}

const defaultMainLil = `// lilit hello world

class Greeter(greeting: String)
  def greet: Void
    println(greeting)
  end
end

def main: Void
  g = Greeter("Hello, lilit!")
  println(g.greeting)
end
`
