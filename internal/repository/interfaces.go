package repository

import (
	"context"

	"github.com/fieldworks/reportvault/internal/domain/allocation"
	"github.com/fieldworks/reportvault/internal/domain/artifact"
)

// CounterRepository manages per-(tenant, year) sequence counters
type CounterRepository interface {
	AllocateNext(ctx context.Context, key allocation.ScopeKey, start int) (int, error)
	Current(ctx context.Context, key allocation.ScopeKey) (int, error)
}

// SettingsRepository manages tenant and instance settings
type SettingsRepository interface {
	StoragePath(ctx context.Context, tenantID string) (string, bool, error)
	NumberPrefix(ctx context.Context, tenantID string) (string, bool, error)
	LegacySharedPath(ctx context.Context) (string, bool, error)
	SetStoragePath(ctx context.Context, tenantID, path string) error
	SetNumberPrefix(ctx context.Context, tenantID, prefix string) error
	SetLegacySharedPath(ctx context.Context, path string) error
}

// SaveLogRepository manages the save audit trail
type SaveLogRepository interface {
	Append(ctx context.Context, tenantID string, entry *artifact.SaveLogEntry) error
	List(ctx context.Context, tenantID string, opts artifact.ListSavesOptions) ([]artifact.SaveLogEntry, error)
}
