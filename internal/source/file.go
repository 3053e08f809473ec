package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
)

type (
	// FileID indexes FileSet.files; IDs are dense and start at 0.
	FileID    uint32
	FileFlags uint8
)

const (
	FileVirtual FileFlags = 1 << iota // from memory: prelude, tests, stdin
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded source with its line index and content hash.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

func (f *File) IsVirtual() bool { return f.Flags&FileVirtual != 0 }

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Line returns line n (1-based) without its newline; out-of-range gives "".
func (f *File) Line(n uint32) string {
	lines := len(f.LineIdx) + 1
	if n == 0 || int(n) > lines {
		return ""
	}
	i := int(n) - 1
	start, end := 0, len(f.Content)
	if i > 0 {
		start = int(f.LineIdx[i-1]) + 1
	}
	if i < len(f.LineIdx) {
		end = int(f.LineIdx[i])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders Path for output: "absolute", "relative" (to baseDir) or
// "basename". Virtual files and unknown modes keep Path.
func (f *File) FormatPath(mode, baseDir string) string {
	if mode == "basename" {
		return filepath.Base(f.Path)
	}
	if f.IsVirtual() || (mode != "absolute" && mode != "relative") {
		return f.Path
	}
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return f.Path
	}
	if mode == "absolute" {
		return filepath.ToSlash(abs)
	}
	if baseDir == "" {
		return f.Path
	}
	if rel, err := filepath.Rel(baseDir, abs); err == nil {
		return filepath.ToSlash(rel)
	}
	return f.Path
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число переводов строки строго до off
	line, _ := slices.BinarySearch(lineIdx, off)
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	return LineCol{Line: mustU32(line + 1), Col: off - lineStart + 1}
}

// normalize strips a UTF-8 BOM and folds CRLF to LF; lone CR stays.
func normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, []byte{0xEF, 0xBB, 0xBF}); ok {
		content, flags = rest, flags|FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content, flags = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), flags|FileNormalizedCRLF
	}
	return content, flags
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, mustU32(i))
		}
	}
	return out
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("source: %d does not fit uint32: %w", n, err))
	}
	return v
}
