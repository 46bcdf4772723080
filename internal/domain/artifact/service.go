package artifact

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service orchestrates the save pipeline: resolve base path, provision
// directories, compute sequence or revision, synthesize the filename, write.
type Service struct {
	resolver PathResolver
	dirs     Provisioner
	seq      Sequencer
	writer   Writer
	saves    SaveLog
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a new artifact service. saves may be nil, in which
// case no audit trail is kept.
func NewService(resolver PathResolver, dirs Provisioner, seq Sequencer, writer Writer, saves SaveLog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		resolver: resolver,
		dirs:     dirs,
		seq:      seq,
		writer:   writer,
		saves:    saves,
		validate: validator.New(),
		logger:   logger,
	}
}

// Save persists one rendered report. Failure handling is asymmetric on
// purpose: an unresolvable base path or invalid input fails the call, but
// every failure past resolution is recovered into the result so the report
// still reaches its requester.
func (s *Service) Save(ctx context.Context, tenantID string, req SaveRequest) (*SaveResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	baseDir, err := s.resolver.Resolve(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("resolving storage root: %w", err)
	}

	res := &SaveResult{
		SaveID:  uuid.NewString(),
		SavedAt: time.Now(),
	}

	projectRoot, err := s.dirs.EnsureProjectDirs(baseDir, req.ProjectNumber)
	if err != nil {
		return s.unpersisted(ctx, tenantID, req, res, fmt.Errorf("provisioning directories: %w", err)), nil
	}

	sequence, revision, err := s.place(projectRoot, req)
	if err != nil {
		return s.unpersisted(ctx, tenantID, req, res, err), nil
	}

	res.Sequence = sequence
	res.Revision = revision
	res.FileName = FileName(req.ProjectNumber, req.Category, sequence, req.ReferenceDate, revision)
	res.Path = filepath.Join(projectRoot, req.Category.Folder(), res.FileName)

	if err := s.writer.Write(res.Path, req.Data); err != nil {
		return s.unpersisted(ctx, tenantID, req, res, err), nil
	}

	res.Persisted = true
	s.logger.Info("saved artifact",
		"tenant_id", tenantID,
		"project", req.ProjectNumber,
		"category", req.Category,
		"file", res.FileName,
		"revision", revision)
	s.appendLog(ctx, tenantID, req, res)
	return res, nil
}

// History lists the save audit trail for a tenant.
func (s *Service) History(ctx context.Context, tenantID string, opts ListSavesOptions) ([]SaveLogEntry, error) {
	if s.saves == nil {
		return nil, nil
	}
	return s.saves.List(ctx, tenantID, opts)
}

// place decides where the save lands. A canonical file already present for
// the same (project, category, date) key makes this a revision save; the
// primary sequence is never perturbed by revisions.
func (s *Service) place(projectRoot string, req SaveRequest) (sequence, revision int, err error) {
	existing, found, err := s.seq.SequenceForDate(projectRoot, req.Category, req.ReferenceDate)
	if err != nil {
		return 0, 0, fmt.Errorf("scanning for existing artifact: %w", err)
	}

	if found {
		canonical := filepath.Join(projectRoot, req.Category.Folder(),
			FileName(req.ProjectNumber, req.Category, existing, req.ReferenceDate, 0))
		rev, err := s.seq.NextRevision(canonical)
		if err != nil {
			return 0, 0, fmt.Errorf("resolving revision: %w", err)
		}
		return existing, rev, nil
	}

	// ForceRevision with no canonical on disk degrades to a first save.
	seq, err := s.seq.NextSequence(projectRoot, req.Category)
	if err != nil {
		return 0, 0, fmt.Errorf("resolving sequence: %w", err)
	}

	// The scan above and this write are not one atomic step; if the target
	// landed on disk in between, fall back to a revision save rather than
	// overwrite it.
	canonical := filepath.Join(projectRoot, req.Category.Folder(),
		FileName(req.ProjectNumber, req.Category, seq, req.ReferenceDate, 0))
	if s.seq.IsRevision(canonical) {
		rev, err := s.seq.NextRevision(canonical)
		if err != nil {
			return 0, 0, fmt.Errorf("resolving revision: %w", err)
		}
		return seq, rev, nil
	}
	return seq, 0, nil
}

func (s *Service) validateRequest(req SaveRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !req.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}
	return nil
}

func (s *Service) unpersisted(ctx context.Context, tenantID string, req SaveRequest, res *SaveResult, cause error) *SaveResult {
	res.Persisted = false
	res.PersistError = cause.Error()
	s.logger.Warn("artifact not persisted",
		"tenant_id", tenantID,
		"project", req.ProjectNumber,
		"category", req.Category,
		"error", cause)
	s.appendLog(ctx, tenantID, req, res)
	return res
}

func (s *Service) appendLog(ctx context.Context, tenantID string, req SaveRequest, res *SaveResult) {
	if s.saves == nil {
		return
	}
	entry := &SaveLogEntry{
		ID:            res.SaveID,
		ProjectNumber: req.ProjectNumber,
		Category:      req.Category,
		Sequence:      res.Sequence,
		Revision:      res.Revision,
		FileName:      res.FileName,
		Path:          res.Path,
		Persisted:     res.Persisted,
		PersistError:  res.PersistError,
		CreatedAt:     res.SavedAt,
	}
	if err := s.saves.Append(ctx, tenantID, entry); err != nil {
		s.logger.Warn("save log append failed", "tenant_id", tenantID, "error", err)
	}
}
