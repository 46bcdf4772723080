package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/fieldworks/reportvault/internal/domain/artifact"
)

// SettingsSource supplies the configured storage paths. Absent values are
// (value, ok) style, not errors.
type SettingsSource interface {
	StoragePath(ctx context.Context, tenantID string) (string, bool, error)
	LegacySharedPath(ctx context.Context) (string, bool, error)
}

// Resolver picks the effective storage root for a tenant from an ordered
// candidate chain: tenant-configured path, legacy shared path, process-wide
// default, last-resort directory created on demand. First valid wins.
type Resolver struct {
	settings    SettingsSource
	defaultRoot string
	fallbackDir string
	logger      *slog.Logger
}

// NewResolver creates a new Resolver. defaultRoot may be empty; fallbackDir
// is resolved against the working directory and created if missing.
func NewResolver(settings SettingsSource, defaultRoot, fallbackDir string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		settings:    settings,
		defaultRoot: defaultRoot,
		fallbackDir: fallbackDir,
		logger:      logger,
	}
}

type candidate struct {
	name    string
	provide func(ctx context.Context) (string, bool, error)
	create  bool
}

// Resolve returns the first candidate that validates. A configured but
// invalid candidate logs a warning and falls through; it never hard-fails
// the operation. With every candidate exhausted the accumulated failures
// come back wrapped in artifact.ErrNoBasePath.
func (r *Resolver) Resolve(ctx context.Context, tenantID string) (string, error) {
	candidates := []candidate{
		{
			name: "tenant storage path",
			provide: func(ctx context.Context) (string, bool, error) {
				if r.settings == nil {
					return "", false, nil
				}
				return r.settings.StoragePath(ctx, tenantID)
			},
		},
		{
			name: "legacy shared path",
			provide: func(ctx context.Context) (string, bool, error) {
				if r.settings == nil {
					return "", false, nil
				}
				return r.settings.LegacySharedPath(ctx)
			},
		},
		{
			name: "default root",
			provide: func(ctx context.Context) (string, bool, error) {
				return r.defaultRoot, r.defaultRoot != "", nil
			},
		},
		{
			name: "fallback dir",
			provide: func(ctx context.Context) (string, bool, error) {
				if r.fallbackDir == "" {
					return "", false, nil
				}
				abs, err := filepath.Abs(r.fallbackDir)
				if err != nil {
					return "", false, err
				}
				return abs, true, nil
			},
			create: true,
		},
	}

	var failures *multierror.Error
	for _, c := range candidates {
		path, ok, err := c.provide(ctx)
		if err != nil {
			r.logger.Warn("storage candidate unavailable",
				"candidate", c.name, "tenant_id", tenantID, "error", err)
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		if !ok {
			continue
		}

		if c.create {
			if err := os.MkdirAll(path, 0o755); err != nil {
				r.logger.Warn("storage candidate could not be created",
					"candidate", c.name, "path", path, "error", err)
				failures = multierror.Append(failures, fmt.Errorf("%s %q: %w", c.name, path, err))
				continue
			}
		}

		if err := validateDir(path); err != nil {
			r.logger.Warn("storage candidate failed validation",
				"candidate", c.name, "path", path, "error", err)
			failures = multierror.Append(failures, fmt.Errorf("%s %q: %w", c.name, path, err))
			continue
		}

		r.logger.Debug("resolved storage root",
			"candidate", c.name, "path", path, "tenant_id", tenantID)
		return path, nil
	}

	if err := failures.ErrorOrNil(); err != nil {
		return "", fmt.Errorf("%w: %w", artifact.ErrNoBasePath, err)
	}
	return "", artifact.ErrNoBasePath
}

// validateDir checks that path exists, is a directory, and is writable.
// Writability is probed with a throwaway file, never assumed from mode bits.
func validateDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}

	probe, err := os.CreateTemp(path, ".reportvault-probe-*")
	if err != nil {
		return fmt.Errorf("write probe: %w", err)
	}
	name := probe.Name()
	probe.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("removing write probe: %w", err)
	}
	return nil
}
