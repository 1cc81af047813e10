package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/partner"
	"github.com/importdesk/backend/internal/domain/shared"
)

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByCode(ctx context.Context, code string) (*partner.Client, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindDebtors(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, c *partner.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) SaveWithLock(ctx context.Context, c *partner.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
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

type clientFixture struct {
	clients *MockClientRepository
	audit   *MockAuditRecorder
	service *ClientService
}

func newClientFixture() *clientFixture {
	f := &clientFixture{
		clients: new(MockClientRepository),
		audit:   new(MockAuditRecorder),
	}
	f.service = NewClientService(&appshared.NoOpTransactionScope{
		ClientRepo: f.clients,
		AuditSink:  f.audit,
	})
	return f
}

func staff() appshared.Actor {
	return appshared.Actor{UserID: uuid.New(), Role: appshared.RoleStaff}
}

func admin() appshared.Actor {
	return appshared.Actor{UserID: uuid.New(), Role: appshared.RoleAdmin}
}

func TestClientService_Create(t *testing.T) {
	t.Run("registers with upper-cased code", func(t *testing.T) {
		f := newClientFixture()
		f.clients.On("FindByCode", mock.Anything, "acme").Return(nil, shared.ErrNotFound)
		f.clients.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.audit.On("Record", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.Create(context.Background(), CreateClientRequest{
			Code: "acme",
			Name: "Acme Trading",
		}, staff())

		require.NoError(t, err)
		assert.Equal(t, "ACME", resp.Code)
		assert.Equal(t, "active", resp.Status)
		assert.True(t, resp.OutstandingDebtUSD.IsZero())
	})

	t.Run("rejects a duplicate code", func(t *testing.T) {
		f := newClientFixture()
		existing, err := partner.NewClient("ACME", "Acme Trading")
		require.NoError(t, err)
		f.clients.On("FindByCode", mock.Anything, "ACME").Return(existing, nil)

		_, err = f.service.Create(context.Background(), CreateClientRequest{Code: "ACME", Name: "Other"}, staff())

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_CODE", domainErr.Code)
		f.clients.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestClientService_SetCreditLimit(t *testing.T) {
	t.Run("requires a privileged actor", func(t *testing.T) {
		f := newClientFixture()

		_, err := f.service.SetCreditLimit(context.Background(), uuid.New(), SetCreditLimitRequest{
			CreditLimitUSD: decimal.NewFromInt(500),
		}, staff())

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("sets the ceiling", func(t *testing.T) {
		f := newClientFixture()
		client, err := partner.NewClient("ACME", "Acme Trading")
		require.NoError(t, err)
		f.clients.On("FindByID", mock.Anything, client.ID).Return(client, nil)
		f.clients.On("SaveWithLock", mock.Anything, client).Return(nil)
		f.audit.On("Record", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.SetCreditLimit(context.Background(), client.ID, SetCreditLimitRequest{
			CreditLimitUSD: decimal.NewFromInt(500),
		}, admin())

		require.NoError(t, err)
		assert.True(t, resp.CreditLimitUSD.Equal(decimal.NewFromInt(500)))
	})
}

func TestClientService_Deactivate(t *testing.T) {
	f := newClientFixture()
	client, err := partner.NewClient("ACME", "Acme Trading")
	require.NoError(t, err)
	require.NoError(t, client.IncreaseDebt(decimal.NewFromInt(100)))
	f.clients.On("FindByID", mock.Anything, client.ID).Return(client, nil)

	_, err = f.service.Deactivate(context.Background(), client.ID, staff())

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CLIENT_HAS_DEBT", domainErr.Code)
	f.clients.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}
