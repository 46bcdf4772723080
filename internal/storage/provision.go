package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fieldworks/reportvault/internal/domain/artifact"
)

// FileStore implements the filesystem side of the save pipeline: directory
// provisioning, sequence and revision scanning, and artifact writes.
type FileStore struct{}

// NewFileStore creates a new FileStore.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// EnsureProjectDirs creates baseDir/<sanitized project number> and one
// subdirectory per known category. Idempotent across repeated calls.
func (s *FileStore) EnsureProjectDirs(baseDir, projectNumber string) (string, error) {
	projectRoot := filepath.Join(baseDir, artifact.Sanitize(projectNumber))
	if err := os.MkdirAll(projectRoot, 0o755); err != nil {
		return "", fmt.Errorf("creating project directory: %w", err)
	}

	for _, c := range artifact.Categories() {
		if err := os.MkdirAll(filepath.Join(projectRoot, c.Folder()), 0o755); err != nil {
			return "", fmt.Errorf("creating %s directory: %w", c, err)
		}
	}

	return projectRoot, nil
}
