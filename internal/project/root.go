package project

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the project manifest file name.
const ManifestName = "lilit.toml"

// FindManifest returns the nearest lilit.toml in startDir or one of its parents.
// ok is false when the walk reaches the filesystem root without a match.
func FindManifest(startDir string) (path string, ok bool, err error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", false, fmt.Errorf("resolve %q: %w", startDir, err)
	}
	for prev := ""; dir != prev; prev, dir = dir, filepath.Dir(dir) {
		candidate := filepath.Join(dir, ManifestName)
		_, statErr := os.Stat(candidate)
		switch {
		case statErr == nil:
			return candidate, true, nil
		case !errors.Is(statErr, os.ErrNotExist):
			return "", false, fmt.Errorf("stat %q: %w", candidate, statErr)
		}
	}
	return "", false, nil
}
