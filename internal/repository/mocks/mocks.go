package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fieldworks/reportvault/internal/domain/allocation"
	"github.com/fieldworks/reportvault/internal/domain/artifact"
)

// CounterRepository is a mock for repository.CounterRepository.
type CounterRepository struct {
	mock.Mock
}

func (m *CounterRepository) AllocateNext(ctx context.Context, key allocation.ScopeKey, start int) (int, error) {
	args := m.Called(ctx, key, start)
	return args.Int(0), args.Error(1)
}

func (m *CounterRepository) Current(ctx context.Context, key allocation.ScopeKey) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

// SettingsRepository is a mock for repository.SettingsRepository.
type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) StoragePath(ctx context.Context, tenantID string) (string, bool, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *SettingsRepository) NumberPrefix(ctx context.Context, tenantID string) (string, bool, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *SettingsRepository) LegacySharedPath(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *SettingsRepository) SetStoragePath(ctx context.Context, tenantID, path string) error {
	args := m.Called(ctx, tenantID, path)
	return args.Error(0)
}

func (m *SettingsRepository) SetNumberPrefix(ctx context.Context, tenantID, prefix string) error {
	args := m.Called(ctx, tenantID, prefix)
	return args.Error(0)
}

func (m *SettingsRepository) SetLegacySharedPath(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// SaveLogRepository is a mock for repository.SaveLogRepository.
type SaveLogRepository struct {
	mock.Mock
}

func (m *SaveLogRepository) Append(ctx context.Context, tenantID string, entry *artifact.SaveLogEntry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *SaveLogRepository) List(ctx context.Context, tenantID string, opts artifact.ListSavesOptions) ([]artifact.SaveLogEntry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]artifact.SaveLogEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// NumberProbe is a mock for allocation.NumberProbe.
type NumberProbe struct {
	mock.Mock
}

func (m *NumberProbe) Exists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}
