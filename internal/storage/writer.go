package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write persists the payload at path, creating missing parent directories.
// Existing files are never the target here: revisions get fresh names, so
// this only ever creates.
func (s *FileStore) Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}
