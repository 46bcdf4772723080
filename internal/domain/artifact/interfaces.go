package artifact

import (
	"context"
	"time"
)

// PathResolver resolves the effective storage root for a tenant.
type PathResolver interface {
	Resolve(ctx context.Context, tenantID string) (string, error)
}

// Provisioner creates the per-project folder structure.
type Provisioner interface {
	EnsureProjectDirs(baseDir, projectNumber string) (string, error)
}

// Sequencer computes sequence and revision numbers from the files already
// on disk.
type Sequencer interface {
	NextSequence(projectRoot string, c Category) (int, error)
	SequenceForDate(projectRoot string, c Category, date time.Time) (int, bool, error)
	IsRevision(targetPath string) bool
	NextRevision(targetPath string) (int, error)
}

// Writer persists artifact bytes.
type Writer interface {
	Write(path string, data []byte) error
}

// SaveLog records save outcomes, best-effort.
type SaveLog interface {
	Append(ctx context.Context, tenantID string, entry *SaveLogEntry) error
	List(ctx context.Context, tenantID string, opts ListSavesOptions) ([]SaveLogEntry, error)
}
