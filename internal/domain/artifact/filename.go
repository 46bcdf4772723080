package artifact

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Ext is the artifact file extension.
const Ext = ".pdf"

const dateLayout = "20060102"

var reservedChars = strings.NewReplacer(
	`\`, "-",
	`/`, "-",
	`:`, "-",
	`*`, "-",
	`?`, "-",
	`"`, "-",
	`<`, "-",
	`>`, "-",
	`|`, "-",
)

// Sanitize replaces filesystem-reserved characters with "-" so the result
// is a legal path component on every target platform. Idempotent.
func Sanitize(s string) string {
	return reservedChars.Replace(s)
}

// FileName builds the canonical artifact filename:
//
//	<number>_<label>_<sequence %02d>_Field_<YYYYMMDD>[_REV<revision>].pdf
//
// The format is a stable contract: ParseName depends on it to recover the
// sequence, so any change here is breaking and must be versioned.
func FileName(number string, c Category, sequence int, date time.Time, revision int) string {
	var b strings.Builder
	b.WriteString(Sanitize(number))
	b.WriteByte('_')
	b.WriteString(c.Label())
	b.WriteByte('_')
	fmt.Fprintf(&b, "%02d", sequence)
	b.WriteString("_Field_")
	b.WriteString(date.Format(dateLayout))
	if revision > 0 {
		fmt.Fprintf(&b, "_REV%d", revision)
	}
	b.WriteString(Ext)
	return b.String()
}

// ParsedName holds the components recovered from an artifact filename.
type ParsedName struct {
	Sequence int
	Date     time.Time
	Revision int // 0 for a canonical (non-revision) file
}

var namePatterns = map[Category]*regexp.Regexp{}

func init() {
	for _, c := range Categories() {
		namePatterns[c] = regexp.MustCompile(
			`^.+_` + regexp.QuoteMeta(c.Label()) + `_(\d{2,})_Field_(\d{8})(?:_REV(\d+))?` + regexp.QuoteMeta(Ext) + `$`)
	}
}

// ParseName inverts FileName for the given category. Returns false for
// names that do not match the canonical format.
func ParseName(name string, c Category) (ParsedName, bool) {
	re, ok := namePatterns[c]
	if !ok {
		return ParsedName{}, false
	}
	m := re.FindStringSubmatch(name)
	if m == nil {
		return ParsedName{}, false
	}

	seq, err := strconv.Atoi(m[1])
	if err != nil {
		return ParsedName{}, false
	}
	date, err := time.Parse(dateLayout, m[2])
	if err != nil {
		return ParsedName{}, false
	}

	parsed := ParsedName{Sequence: seq, Date: date}
	if m[3] != "" {
		rev, err := strconv.Atoi(m[3])
		if err != nil {
			return ParsedName{}, false
		}
		parsed.Revision = rev
	}
	return parsed, true
}

// ParseSequence extracts the sequence from a canonical filename. Revision
// files are rejected so revision saves never perturb the primary counter.
func ParseSequence(name string, c Category) (int, bool) {
	parsed, ok := ParseName(name, c)
	if !ok || parsed.Revision != 0 {
		return 0, false
	}
	return parsed.Sequence, true
}

// ParseRevision extracts the revision from a sibling of the canonical file
// named base+Ext. Returns false for the canonical file itself and for
// unrelated names.
func ParseRevision(name, base string) (int, bool) {
	rest, ok := strings.CutPrefix(name, base+"_REV")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, Ext)
	if !ok {
		return 0, false
	}
	rev, err := strconv.Atoi(rest)
	if err != nil || rev < 1 {
		return 0, false
	}
	return rev, true
}
