package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fieldworks/reportvault/internal/domain/artifact"
)

// NextSequence returns the next non-revision sequence for a category by
// scanning its folder: max embedded sequence + 1, or 1 with no matches.
// Revision-suffixed files never participate.
//
// The scan is not transactional: two true-concurrent first saves into the
// same (project, category) can observe the same maximum. Saves for one
// project/category originate from a single technician's session, so the
// window is accepted rather than closed.
func (s *FileStore) NextSequence(projectRoot string, c artifact.Category) (int, error) {
	names, err := listFiles(filepath.Join(projectRoot, c.Folder()))
	if err != nil {
		return 0, err
	}

	max := 0
	for _, name := range names {
		if seq, ok := artifact.ParseSequence(name, c); ok && seq > max {
			max = seq
		}
	}
	return max + 1, nil
}

// SequenceForDate returns the highest canonical sequence whose embedded
// date equals date: the existing file for a logical (project, category,
// date) key, if any. Several matches can exist in hand-copied legacy
// trees; the highest sequence wins as the revision base.
func (s *FileStore) SequenceForDate(projectRoot string, c artifact.Category, date time.Time) (int, bool, error) {
	names, err := listFiles(filepath.Join(projectRoot, c.Folder()))
	if err != nil {
		return 0, false, err
	}

	best, found := 0, false
	for _, name := range names {
		parsed, ok := artifact.ParseName(name, c)
		if !ok || parsed.Revision != 0 {
			continue
		}
		if !sameDay(parsed.Date, date) {
			continue
		}
		if parsed.Sequence > best {
			best, found = parsed.Sequence, true
		}
	}
	return best, found, nil
}

// IsRevision reports whether the canonical file at targetPath already
// exists, making the next save of that logical artifact a revision.
func (s *FileStore) IsRevision(targetPath string) bool {
	info, err := os.Stat(targetPath)
	return err == nil && !info.IsDir()
}

// NextRevision returns the next revision number for the canonical file at
// targetPath: max over its _REV<n> siblings + 1, or 1 with none. Revisions
// strictly increase and are never reused.
func (s *FileStore) NextRevision(targetPath string) (int, error) {
	names, err := listFiles(filepath.Dir(targetPath))
	if err != nil {
		return 0, err
	}

	base := strings.TrimSuffix(filepath.Base(targetPath), artifact.Ext)
	max := 0
	for _, name := range names {
		if rev, ok := artifact.ParseRevision(name, base); ok && rev > max {
			max = rev
		}
	}
	return max + 1, nil
}

// listFiles returns the plain-file names in dir. A missing directory is an
// empty listing, not an error.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
