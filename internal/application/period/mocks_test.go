package period

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/domain/inventory"
	"github.com/importdesk/backend/internal/domain/period"
	"github.com/importdesk/backend/internal/domain/sales"
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

// MockSaleRepository is a mock implementation of sales.Repository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByNumber(ctx context.Context, number string) (*sales.Sale, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, clientID, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByPeriod(ctx context.Context, periodID uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, periodID, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByStatus(ctx context.Context, status sales.SaleStatus, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, s *sales.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, s *sales.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) CountWithDebt(ctx context.Context, periodID uuid.UUID) (int64, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) CountOutstanding(ctx context.Context, periodID uuid.UUID) (int64, error) {
	args := m.Called(ctx, periodID)
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

// MockCountRepository is a mock implementation of inventory.Repository
type MockCountRepository struct {
	mock.Mock
}

func (m *MockCountRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.CountSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.CountSession), args.Error(1)
}

func (m *MockCountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.CountSession, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.CountSession), args.Error(1)
}

func (m *MockCountRepository) FindByStatus(ctx context.Context, status inventory.SessionStatus, filter shared.Filter) ([]inventory.CountSession, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]inventory.CountSession), args.Error(1)
}

func (m *MockCountRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCountRepository) Save(ctx context.Context, s *inventory.CountSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockCountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCountRepository) CountByStatus(ctx context.Context, status inventory.SessionStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCountRepository) CountByStatusInRange(ctx context.Context, status inventory.SessionStatus, from, to time.Time) (int64, error) {
	args := m.Called(ctx, status, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditRecorder is a mock implementation of shared.AuditRecorder
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, entry *shared.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
