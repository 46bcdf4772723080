package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_WriteCreatesParents(t *testing.T) {
	files := NewFileStore()
	path := filepath.Join(t.TempDir(), "02-2025-0007", "Density", "report.pdf")

	require.NoError(t, files.Write(path, []byte("%PDF-1.4")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.4"), data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestFileStore_WriteReportsFailure(t *testing.T) {
	files := NewFileStore()

	// A regular file where a parent directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := files.Write(filepath.Join(blocker, "sub", "report.pdf"), []byte("x"))
	require.Error(t, err)
}
