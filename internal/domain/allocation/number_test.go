package allocation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldworks/reportvault/internal/domain/allocation"
)

func TestNumber_String(t *testing.T) {
	num := allocation.Number{Prefix: "02", Year: 2025, Sequence: 7}
	require.Equal(t, "02-2025-0007", num.String())

	num = allocation.Number{Prefix: "MAK", Year: 2025, Sequence: 1201}
	require.Equal(t, "MAK-2025-1201", num.String())
}

func TestParseNumber_RoundTrip(t *testing.T) {
	for _, num := range []allocation.Number{
		{Prefix: "02", Year: 2025, Sequence: 7},
		{Prefix: "MAK", Year: 2024, Sequence: 1201},
		{Prefix: "A-B", Year: 2023, Sequence: 42},
	} {
		parsed, err := allocation.ParseNumber(num.String())
		require.NoError(t, err)
		require.Equal(t, num, parsed)
	}
}

func TestParseNumber_Invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"02-2025",
		"2025-0007",
		"02-20xx-0007",
		"02-2025-00ab",
		"02-2025-0000",
		"-2025-0007",
	} {
		_, err := allocation.ParseNumber(s)
		require.ErrorIs(t, err, allocation.ErrInvalidNumber, "input %q", s)
	}
}
