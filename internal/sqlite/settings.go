package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fieldworks/reportvault/internal/repository"
)

const legacySharedPathKey = "legacy_shared_path"

// SettingsRepository implements repository.SettingsRepository for SQLite
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// StoragePath returns the tenant's configured storage path, if set
func (r *SettingsRepository) StoragePath(ctx context.Context, tenantID string) (string, bool, error) {
	return r.tenantColumn(ctx, tenantID, "storage_path")
}

// NumberPrefix returns the tenant's configured number prefix, if set
func (r *SettingsRepository) NumberPrefix(ctx context.Context, tenantID string) (string, bool, error) {
	return r.tenantColumn(ctx, tenantID, "number_prefix")
}

func (r *SettingsRepository) tenantColumn(ctx context.Context, tenantID, column string) (string, bool, error) {
	// column is one of two fixed names, never caller input
	query := fmt.Sprintf(`SELECT %s FROM tenant_settings WHERE tenant_id = ?`, column)

	var value sql.NullString
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read tenant settings: %w", err)
	}
	if !value.Valid || value.String == "" {
		return "", false, nil
	}
	return value.String, true, nil
}

// SetStoragePath sets the tenant's storage path
func (r *SettingsRepository) SetStoragePath(ctx context.Context, tenantID, path string) error {
	return r.upsertTenant(ctx, tenantID, "storage_path", path)
}

// SetNumberPrefix sets the tenant's number prefix
func (r *SettingsRepository) SetNumberPrefix(ctx context.Context, tenantID, prefix string) error {
	return r.upsertTenant(ctx, tenantID, "number_prefix", prefix)
}

func (r *SettingsRepository) upsertTenant(ctx context.Context, tenantID, column, value string) error {
	if tenantID == "" {
		return repository.ErrInvalidInput
	}
	query := fmt.Sprintf(`
		INSERT INTO tenant_settings (tenant_id, %[1]s, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(tenant_id) DO UPDATE SET
			%[1]s = excluded.%[1]s,
			updated_at = excluded.updated_at
	`, column)

	if _, err := r.db.ExecContext(ctx, query, tenantID, value, time.Now()); err != nil {
		return fmt.Errorf("failed to update tenant settings: %w", err)
	}
	return nil
}

// LegacySharedPath returns the instance-wide legacy shared path, if set
func (r *SettingsRepository) LegacySharedPath(ctx context.Context) (string, bool, error) {
	query := `SELECT value FROM instance_settings WHERE key = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, legacySharedPathKey).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read instance settings: %w", err)
	}
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// SetLegacySharedPath sets the instance-wide legacy shared path
func (r *SettingsRepository) SetLegacySharedPath(ctx context.Context, path string) error {
	query := `
		INSERT INTO instance_settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, legacySharedPathKey, path, time.Now()); err != nil {
		return fmt.Errorf("failed to update instance settings: %w", err)
	}
	return nil
}
