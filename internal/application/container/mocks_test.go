package container

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/domain/partner"
	"github.com/importdesk/backend/internal/domain/period"
	"github.com/importdesk/backend/internal/domain/shared"
)

// MockPeriodRepository is a mock implementation of period.Repository
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*period.FinancialPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*period.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindByYearMonth(ctx context.Context, year int, month time.Month) (*period.FinancialPeriod, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*period.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindOrCreate(ctx context.Context, year int, month time.Month) (*period.FinancialPeriod, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*period.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindAll(ctx context.Context, filter shared.Filter) ([]period.FinancialPeriod, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]period.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) Save(ctx context.Context, p *period.FinancialPeriod) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPeriodRepository) SaveWithLock(ctx context.Context, p *period.FinancialPeriod) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPeriodRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockContainerRepository is a mock implementation of container.Repository
type MockContainerRepository struct {
	mock.Mock
}

func (m *MockContainerRepository) FindByID(ctx context.Context, id uuid.UUID) (*container.Container, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*container.Container), args.Error(1)
}

func (m *MockContainerRepository) FindByNumber(ctx context.Context, number string) (*container.Container, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*container.Container), args.Error(1)
}

func (m *MockContainerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]container.Container, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]container.Container), args.Error(1)
}

func (m *MockContainerRepository) FindByStatus(ctx context.Context, status container.ContainerStatus, filter shared.Filter) ([]container.Container, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]container.Container), args.Error(1)
}

func (m *MockContainerRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]container.Container, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]container.Container), args.Error(1)
}

func (m *MockContainerRepository) Save(ctx context.Context, c *container.Container) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContainerRepository) SaveWithLock(ctx context.Context, c *container.Container) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContainerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContainerRepository) CountNegativeProfit(ctx context.Context, periodID uuid.UUID) (int64, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContainerRepository) CountUnconfirmedCorrections(ctx context.Context, periodID uuid.UUID) (int64, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvestorRepository is a mock implementation of partner.InvestorRepository
type MockInvestorRepository struct {
	mock.Mock
}

func (m *MockInvestorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Investor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Investor), args.Error(1)
}

func (m *MockInvestorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Investor, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Investor), args.Error(1)
}

func (m *MockInvestorRepository) Save(ctx context.Context, i *partner.Investor) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockInvestorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockNumberService is a mock implementation of shared.DocumentNumberService
type MockNumberService struct {
	mock.Mock
}

func (m *MockNumberService) NextDocumentNumber(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

// MockAuditRecorder is a mock implementation of shared.AuditRecorder
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, entry *shared.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
