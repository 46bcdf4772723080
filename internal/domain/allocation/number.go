package allocation

import (
	"fmt"
	"strconv"
	"strings"
)

// ScopeKey identifies one counter: project numbers are partitioned per
// tenant and per calendar year.
type ScopeKey struct {
	TenantID string
	Year     int
}

// Number is a formatted project identifier, e.g. "02-2025-0007".
// Immutable once allocated; uniqueness follows from counter uniqueness.
type Number struct {
	Prefix   string
	Year     int
	Sequence int
}

func (n Number) String() string {
	return fmt.Sprintf("%s-%d-%04d", n.Prefix, n.Year, n.Sequence)
}

// ParseNumber inverts Number.String. The prefix may itself contain dashes,
// so the year and sequence are taken from the last two segments.
func ParseNumber(s string) (Number, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return Number{}, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	year, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || year < 1000 || year > 9999 {
		return Number{}, fmt.Errorf("%w: bad year in %q", ErrInvalidNumber, s)
	}

	seq, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || seq < 1 {
		return Number{}, fmt.Errorf("%w: bad sequence in %q", ErrInvalidNumber, s)
	}

	prefix := strings.Join(parts[:len(parts)-2], "-")
	if prefix == "" {
		return Number{}, fmt.Errorf("%w: empty prefix in %q", ErrInvalidNumber, s)
	}

	return Number{Prefix: prefix, Year: year, Sequence: seq}, nil
}
