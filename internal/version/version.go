package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// Version information for the lilit CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with major/minor/patch in different colours.
// Нестандартная версия выводится как есть.
func Colored(enabled bool) string {
	for _, c := range []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." + versionMinorColor.Sprint(parts[1]) + "." + versionPatchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Info is the multi-line text printed by `lilit version`.
func Info(colored bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "lilit %s\n", Colored(colored))
	if GitCommit != "" {
		fmt.Fprintf(&sb, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, "built:  %s\n", BuildDate)
	}
	fmt.Fprintf(&sb, "go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return sb.String()
}
