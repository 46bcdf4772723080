package allocation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

// Config holds the allocation policy knobs.
type Config struct {
	// BaseYear anchors the start value for a new counter.
	BaseYear int
	// YearBlock is the value range reserved per year past BaseYear.
	YearBlock int
	// DefaultPrefix is used when a tenant has no configured prefix.
	DefaultPrefix string
	// MaxAttempts bounds retries against an unreachable counter store.
	MaxAttempts int
	// RetryDelay is the pause between store attempts.
	RetryDelay time.Duration
}

// Service allocates project numbers.
type Service struct {
	counters CounterStore
	settings SettingsReader
	probe    NumberProbe
	cfg      Config
	logger   *slog.Logger

	// Clock is replaceable for tests; it defaults to the wall clock.
	Clock clock.Clock
}

// NewService creates a new allocation service. probe may be nil, in which
// case the post-allocation duplicate check is skipped.
func NewService(counters CounterStore, settings SettingsReader, probe NumberProbe, cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 100 * time.Millisecond
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		counters: counters,
		settings: settings,
		probe:    probe,
		cfg:      cfg,
		logger:   logger,
		Clock:    clock.New(),
	}
}

// Allocate issues the next project number for the tenant in the current year.
func (s *Service) Allocate(ctx context.Context, tenantID string) (Number, error) {
	return s.AllocateForYear(ctx, tenantID, s.Clock.Now().Year())
}

// AllocateForYear issues the next project number for an explicit year.
// Allocation failures block the caller entirely: no number, no project.
func (s *Service) AllocateForYear(ctx context.Context, tenantID string, year int) (Number, error) {
	prefix, err := s.prefixFor(ctx, tenantID)
	if err != nil {
		return Number{}, err
	}

	num, err := s.allocateOnce(ctx, tenantID, year, prefix)
	if err != nil {
		return Number{}, err
	}

	taken, err := s.numberTaken(ctx, num)
	if err != nil {
		return Number{}, err
	}
	if !taken {
		return num, nil
	}

	// A duplicate despite atomic allocation should not happen; retry once
	// before giving up.
	s.logger.Warn("allocated project number already exists, retrying",
		"tenant_id", tenantID, "number", num.String())

	num, err = s.allocateOnce(ctx, tenantID, year, prefix)
	if err != nil {
		return Number{}, err
	}
	taken, err = s.numberTaken(ctx, num)
	if err != nil {
		return Number{}, err
	}
	if taken {
		return Number{}, fmt.Errorf("%w: %s", ErrNumberCollision, num.String())
	}
	return num, nil
}

// StartValue is the first sequence issued for a brand-new scope.
func (s *Service) StartValue(year int) int {
	return (year-s.cfg.BaseYear)*s.cfg.YearBlock + 1
}

func (s *Service) allocateOnce(ctx context.Context, tenantID string, year int, prefix string) (Number, error) {
	key := ScopeKey{TenantID: tenantID, Year: year}
	seq, err := s.allocateWithRetry(ctx, key, s.StartValue(year))
	if err != nil {
		return Number{}, err
	}

	num := Number{Prefix: prefix, Year: year, Sequence: seq}
	s.logger.Debug("allocated project number",
		"tenant_id", tenantID, "year", year, "sequence", seq)
	return num, nil
}

func (s *Service) allocateWithRetry(ctx context.Context, key ScopeKey, start int) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		seq, err := s.counters.AllocateNext(ctx, key, start)
		if err == nil {
			return seq, nil
		}
		lastErr = err

		// Context cancellation is terminal, not a store outage.
		if ctx.Err() != nil {
			return 0, fmt.Errorf("allocating sequence: %w", ctx.Err())
		}
		if attempt == s.cfg.MaxAttempts {
			break
		}

		s.logger.Warn("counter store attempt failed",
			"tenant_id", key.TenantID, "year", key.Year,
			"attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("allocating sequence: %w", ctx.Err())
		case <-s.Clock.After(s.cfg.RetryDelay):
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, lastErr)
}

func (s *Service) prefixFor(ctx context.Context, tenantID string) (string, error) {
	if s.settings == nil {
		return s.cfg.DefaultPrefix, nil
	}
	prefix, ok, err := s.settings.NumberPrefix(ctx, tenantID)
	if err != nil {
		return "", fmt.Errorf("reading number prefix: %w", err)
	}
	if !ok || prefix == "" {
		return s.cfg.DefaultPrefix, nil
	}
	return prefix, nil
}

func (s *Service) numberTaken(ctx context.Context, num Number) (bool, error) {
	if s.probe == nil {
		return false, nil
	}
	taken, err := s.probe.Exists(ctx, num.String())
	if err != nil {
		return false, fmt.Errorf("probing project number: %w", err)
	}
	return taken, nil
}
