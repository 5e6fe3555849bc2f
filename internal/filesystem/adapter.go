package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Adapter defines the file-system surface the service depends on, kept as
// an interface so tests can substitute a failing or in-memory
// implementation.
type Adapter interface {
	ReadFileBytes(path string) ([]byte, error)
	WriteFileBytesAtomic(path string, content []byte, perm os.FileMode) error
	FileSize(path string) (int64, error)
}

// DefaultAdapter is the standard implementation backed by the os package.
type DefaultAdapter struct{}

// NewDefaultAdapter creates a new DefaultAdapter.
func NewDefaultAdapter() *DefaultAdapter {
	return &DefaultAdapter{}
}

var _ Adapter = (*DefaultAdapter)(nil)

// ReadFileBytes reads the entire file into memory.
func (fs *DefaultAdapter) ReadFileBytes(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s: %w", path, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied reading file: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read file: %s: %w", path, err)
	}
	return content, nil
}

// WriteFileBytesAtomic writes content via a temp file in the same
// directory followed by a rename, so a crash mid-write never leaves a
// half-written target, then applies the final permissions.
func (fs *DefaultAdapter) WriteFileBytesAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	// Harmless after a successful rename; cleans up on every error path.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary file %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tmp.Name(), path, err)
	}
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("file written to %s, but failed to set permissions to %o: %w", path, perm, err)
	}
	return nil
}

// FileSize returns the size of the file in bytes.
func (fs *DefaultAdapter) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("file not found: %s: %w", path, err)
		}
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// IsValidUTF8 reports whether content is valid UTF-8. The editor refuses
// to touch files it would garble.
func IsValidUTF8(content []byte) bool {
	return utf8.Valid(content)
}
