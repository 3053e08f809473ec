package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of lilit source files.
const SourceExt = ".lil"

// listSourceFiles возвращает отсортированный список всех *.lil файлов в директории
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CollectFiles expands paths (files or directories) into a deduplicated list
// of source files. Directories are walked recursively and sorted; explicit
// files keep their position.
func CollectFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if _, dup := seen[clean]; dup {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		files, err := listSourceFiles(p)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", p, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}
