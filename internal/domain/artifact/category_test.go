package artifact_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldworks/reportvault/internal/domain/artifact"
)

func TestCategories_MappingsAreComplete(t *testing.T) {
	seenFolders := map[string]bool{}
	for _, c := range artifact.Categories() {
		require.True(t, c.Valid())
		require.NotEmpty(t, c.Folder(), "category %s has no folder", c)
		require.NotEmpty(t, c.Label(), "category %s has no label", c)

		// Labels are filename tokens: no underscores, or the parser breaks
		require.NotContains(t, c.Label(), "_", "category %s", c)

		require.False(t, seenFolders[c.Folder()], "folder %s mapped twice", c.Folder())
		seenFolders[c.Folder()] = true
	}
}

func TestCategory_FolderIsLegalPathComponent(t *testing.T) {
	for _, c := range artifact.Categories() {
		require.Equal(t, c.Folder(), artifact.Sanitize(c.Folder()), "category %s", c)
		require.False(t, strings.ContainsAny(c.Folder(), `\/`), "category %s", c)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := artifact.ParseCategory("density")
	require.NoError(t, err)
	require.Equal(t, artifact.CategoryDensity, c)

	c, err = artifact.ParseCategory("compressive-strength")
	require.NoError(t, err)
	require.Equal(t, artifact.CategoryCompressiveStrength, c)

	_, err = artifact.ParseCategory("Density")
	require.ErrorIs(t, err, artifact.ErrInvalidInput)

	_, err = artifact.ParseCategory("")
	require.ErrorIs(t, err, artifact.ErrInvalidInput)
}
