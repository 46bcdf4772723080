package artifact_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fieldworks/reportvault/internal/domain/artifact"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestFileName_Canonical(t *testing.T) {
	name := artifact.FileName("MAK-2025-0007", artifact.CategoryDensity, 1, mustDate(t, "2025-03-14"), 0)
	require.Equal(t, "MAK-2025-0007_Density_01_Field_20250314.pdf", name)
}

func TestFileName_Revision(t *testing.T) {
	date := mustDate(t, "2025-03-14")
	rev1 := artifact.FileName("MAK-2025-0007", artifact.CategoryDensity, 1, date, 1)
	require.Equal(t, "MAK-2025-0007_Density_01_Field_20250314_REV1.pdf", rev1)

	rev2 := artifact.FileName("MAK-2025-0007", artifact.CategoryDensity, 1, date, 2)
	require.Equal(t, "MAK-2025-0007_Density_01_Field_20250314_REV2.pdf", rev2)
}

func TestFileName_SanitizesNumber(t *testing.T) {
	name := artifact.FileName(`02/2025:0007`, artifact.CategoryProctor, 3, mustDate(t, "2025-01-02"), 0)
	require.Equal(t, "02-2025-0007_Proctor_03_Field_20250102.pdf", name)
}

// Round-trip law: ParseSequence inverts FileName for every category.
func TestParseSequence_RoundTrip(t *testing.T) {
	date := mustDate(t, "2025-03-14")
	for _, c := range artifact.Categories() {
		for _, seq := range []int{1, 9, 42, 120} {
			name := artifact.FileName("02-2025-0007", c, seq, date, 0)
			got, ok := artifact.ParseSequence(name, c)
			require.True(t, ok, "category %s seq %d: %s", c, seq, name)
			require.Equal(t, seq, got)
		}
	}
}

func TestParseSequence_ExcludesRevisions(t *testing.T) {
	date := mustDate(t, "2025-03-14")
	name := artifact.FileName("02-2025-0007", artifact.CategoryDensity, 4, date, 2)
	_, ok := artifact.ParseSequence(name, artifact.CategoryDensity)
	require.False(t, ok, "revision file must not feed the sequence counter")
}

func TestParseSequence_RejectsForeignNames(t *testing.T) {
	for _, name := range []string{
		"notes.txt",
		"02-2025-0007_Density_01_Field_20250314.txt",
		"02-2025-0007_Proctor_01_Field_20250314.pdf", // other category
		"02-2025-0007_Density_1_Field_20250314.pdf",  // unpadded sequence
		"02-2025-0007_Density_01_Field_2025031.pdf",  // short date
		"_Density_01_Field_20250314.pdf",             // empty identifier
	} {
		_, ok := artifact.ParseSequence(name, artifact.CategoryDensity)
		require.False(t, ok, "input %q", name)
	}
}

func TestParseName_Components(t *testing.T) {
	date := mustDate(t, "2024-12-31")
	name := artifact.FileName("02-2024-0412", artifact.CategoryCompressiveStrength, 17, date, 3)

	parsed, ok := artifact.ParseName(name, artifact.CategoryCompressiveStrength)
	require.True(t, ok)
	require.Equal(t, 17, parsed.Sequence)
	require.Equal(t, 3, parsed.Revision)
	require.Equal(t, date.Format("20060102"), parsed.Date.Format("20060102"))
}

func TestParseRevision(t *testing.T) {
	base := "02-2025-0007_Density_01_Field_20250314"

	rev, ok := artifact.ParseRevision(base+"_REV1.pdf", base)
	require.True(t, ok)
	require.Equal(t, 1, rev)

	rev, ok = artifact.ParseRevision(base+"_REV12.pdf", base)
	require.True(t, ok)
	require.Equal(t, 12, rev)

	// The canonical file itself is not a revision
	_, ok = artifact.ParseRevision(base+".pdf", base)
	require.False(t, ok)

	// A different base's revision does not match
	_, ok = artifact.ParseRevision("02-2025-0008_Density_01_Field_20250314_REV1.pdf", base)
	require.False(t, ok)

	_, ok = artifact.ParseRevision(base+"_REV0.pdf", base)
	require.False(t, ok)
}

func TestSanitize(t *testing.T) {
	require.Equal(t, "a-b-c-d-e-f-g-h-i-j", artifact.Sanitize(`a\b/c:d*e?f"g<h>i|j`))
	require.Equal(t, "plain-name", artifact.Sanitize("plain-name"))
}

// Idempotence: sanitize(sanitize(x)) == sanitize(x).
func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		`02/2025:0007`,
		`a\b*c?d`,
		"already-clean",
		"",
	}
	for _, in := range inputs {
		once := artifact.Sanitize(in)
		require.Equal(t, once, artifact.Sanitize(once), "input %q", in)
	}
}

func TestFileName_SequencePadding(t *testing.T) {
	date := mustDate(t, "2025-03-14")
	for seq, want := range map[int]string{
		1:   "01",
		10:  "10",
		120: "120",
	} {
		name := artifact.FileName("02-2025-0007", artifact.CategoryAsphalt, seq, date, 0)
		require.Contains(t, name, fmt.Sprintf("_Asphalt_%s_Field_", want))
	}
}
