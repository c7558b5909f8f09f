package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store persists uploaded application documents in a local directory.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the upload directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the reader's content under "<prefix><sanitized name>" and
// returns the stored file name.
func (s *Store) Save(prefix, name string, r io.Reader) (string, error) {
	fileName := prefix + SanitizeFileName(name)
	target := filepath.Join(s.dir, fileName)

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", fileName, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write %s: %w", fileName, err)
	}
	return fileName, nil
}

// SanitizeFileName replaces path separator characters so a client-supplied
// name cannot escape the upload directory.
func SanitizeFileName(name string) string {
	if name == "" {
		name = "file"
	}
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ReplaceAll(name, "\\", "_")
}
