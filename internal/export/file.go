package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrSchema is returned by Read for files written by another schema version.
var ErrSchema = errors.New("export: schema version mismatch")

// Write stores p at path. Пишем во временный файл рядом и атомарно переименовываем.
func Write(path string, p *Program) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	f, err := os.CreateTemp(dir, ".lri-*")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(p); err != nil {
		_ = f.Close()
		return fmt.Errorf("export: encode: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Read loads a program written by Write.
func Read(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var p Program
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("export: decode %s: %w", path, err)
	}
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %s has %d, want %d", ErrSchema, path, p.Schema, SchemaVersion)
	}
	return &p, nil
}
