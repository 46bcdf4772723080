package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldworks/reportvault/internal/domain/artifact"
)

func TestFileStore_EnsureProjectDirs(t *testing.T) {
	base := t.TempDir()
	files := NewFileStore()

	root, err := files.EnsureProjectDirs(base, "02-2025-0007")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "02-2025-0007"), root)

	for _, c := range artifact.Categories() {
		info, err := os.Stat(filepath.Join(root, c.Folder()))
		require.NoError(t, err, "category %s folder missing", c)
		require.True(t, info.IsDir())
	}
}

func TestFileStore_EnsureProjectDirsIdempotent(t *testing.T) {
	base := t.TempDir()
	files := NewFileStore()

	first, err := files.EnsureProjectDirs(base, "02-2025-0007")
	require.NoError(t, err)

	// An existing file inside the tree survives re-provisioning
	keep := filepath.Join(first, artifact.CategoryDensity.Folder(), "keep.pdf")
	require.NoError(t, os.WriteFile(keep, []byte("x"), 0o644))

	second, err := files.EnsureProjectDirs(base, "02-2025-0007")
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, err = os.Stat(keep)
	require.NoError(t, err)
}

func TestFileStore_EnsureProjectDirsSanitizes(t *testing.T) {
	base := t.TempDir()
	files := NewFileStore()

	root, err := files.EnsureProjectDirs(base, `02/2025:0007?`)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "02-2025-0007-"), root)
}
