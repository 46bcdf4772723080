package artifact

import "time"

// SaveRequest describes one report save.
type SaveRequest struct {
	ProjectNumber string    `validate:"required"`
	Category      Category  `validate:"required"`
	ReferenceDate time.Time `validate:"required"`
	Data          []byte    `validate:"required"`
	// ForceRevision requests a revision even when the caller is unsure the
	// canonical file exists; with none on disk it degrades to a first save.
	ForceRevision bool
}

// SaveResult reports the outcome of a save. A result with Persisted=false
// still carries the computed name and sequence: the rendered report is
// always returned to its requester, only the on-disk status varies.
type SaveResult struct {
	SaveID       string    `json:"save_id"`
	Path         string    `json:"path,omitempty"`
	FileName     string    `json:"file_name,omitempty"`
	Sequence     int       `json:"sequence"`
	Revision     int       `json:"revision,omitempty"`
	Persisted    bool      `json:"persisted"`
	PersistError string    `json:"persist_error,omitempty"`
	SavedAt      time.Time `json:"saved_at"`
}

// SaveLogEntry is one row of the save audit trail.
type SaveLogEntry struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	ProjectNumber string    `json:"project_number"`
	Category      Category  `json:"category"`
	Sequence      int       `json:"sequence"`
	Revision      int       `json:"revision"`
	FileName      string    `json:"file_name"`
	Path          string    `json:"path"`
	Persisted     bool      `json:"persisted"`
	PersistError  string    `json:"persist_error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListSavesOptions filters the save log.
type ListSavesOptions struct {
	ProjectNumber string
	Category      *Category
	PersistedOnly bool
	Limit         int
	Offset        int
}
