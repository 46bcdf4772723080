package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fieldworks/reportvault/internal/domain/artifact"
)

// SaveLogRepository implements repository.SaveLogRepository for SQLite
type SaveLogRepository struct {
	db *DB
}

// NewSaveLogRepository creates a new SaveLogRepository
func NewSaveLogRepository(db *DB) *SaveLogRepository {
	return &SaveLogRepository{db: db}
}

// Append inserts a new save log entry
func (r *SaveLogRepository) Append(ctx context.Context, tenantID string, entry *artifact.SaveLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO save_log (
			id, tenant_id, project_number, category, sequence, revision,
			file_name, path, persisted, persist_error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		tenantID,
		entry.ProjectNumber,
		entry.Category,
		entry.Sequence,
		entry.Revision,
		entry.FileName,
		entry.Path,
		entry.Persisted,
		entry.PersistError,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append save log: %w", err)
	}

	entry.TenantID = tenantID
	entry.CreatedAt = createdAt

	return nil
}

// List returns save log entries matching the given filters, newest first
func (r *SaveLogRepository) List(ctx context.Context, tenantID string, opts artifact.ListSavesOptions) ([]artifact.SaveLogEntry, error) {
	query := `
		SELECT
			id, tenant_id, project_number, category, sequence, revision,
			file_name, path, persisted, persist_error, created_at
		FROM save_log
		WHERE tenant_id = ?
	`

	args := []interface{}{tenantID}

	if opts.ProjectNumber != "" {
		query += " AND project_number = ?"
		args = append(args, opts.ProjectNumber)
	}
	if opts.Category != nil {
		query += " AND category = ?"
		args = append(args, *opts.Category)
	}
	if opts.PersistedOnly {
		query += " AND persisted = 1"
	}

	query += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list save log: %w", err)
	}
	defer rows.Close()

	var entries []artifact.SaveLogEntry
	for rows.Next() {
		var entry artifact.SaveLogEntry
		var persistError sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.TenantID,
			&entry.ProjectNumber,
			&entry.Category,
			&entry.Sequence,
			&entry.Revision,
			&entry.FileName,
			&entry.Path,
			&entry.Persisted,
			&persistError,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan save log entry: %w", err)
		}
		if persistError.Valid {
			entry.PersistError = persistError.String
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating save log rows: %w", err)
	}

	return entries, nil
}
