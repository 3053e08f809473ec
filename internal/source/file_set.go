package source

import (
	"crypto/sha256"
	"fmt"
	"os"
)

// FileSet owns every source file of a compilation session.
// FileIDs are dense and start at 0.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> latest id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0, 8),
		index: make(map[string]FileID),
	}
}

// SetBaseDir задаёт директорию, относительно которой печатаются пути.
func (fs *FileSet) SetBaseDir(dir string) {
	fs.baseDir = dir
}

// BaseDir returns the configured base directory or the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores already normalized content and returns a fresh FileID.
// Adding the same path twice creates a new version; GetByPath returns the latest.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	id := FileID(mustU32(len(fs.files)))
	clean := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    clean,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[clean] = id
	return id
}

// AddVirtual adds an in-memory file (prelude, tests, stdin).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads a file from disk, strips a UTF-8 BOM, folds CRLF and calls Add.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	content, flags := normalize(content)
	return fs.Add(path, content, flags), nil
}

// Get returns the file for id. Unknown ids panic.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		panic(fmt.Errorf("source: unknown file id %d", id))
	}
	return &fs.files[id]
}

// Len returns the number of registered files.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Files returns the files ordered by id. The slice must not be modified.
func (fs *FileSet) Files() []File {
	return fs.files
}

// GetByPath возвращает последнюю версию файла по пути.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.index[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Resolve converts a span into 1-based line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Text returns the source bytes covered by span as a string.
func (fs *FileSet) Text(span Span) string {
	f := fs.Get(span.File)
	end := min(int(span.End), len(f.Content))
	start := min(int(span.Start), end)
	return string(f.Content[start:end])
}
