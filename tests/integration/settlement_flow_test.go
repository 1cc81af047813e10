package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	containerapp "github.com/importdesk/backend/internal/application/container"
	inventoryapp "github.com/importdesk/backend/internal/application/inventory"
	partnerapp "github.com/importdesk/backend/internal/application/partner"
	periodapp "github.com/importdesk/backend/internal/application/period"
	salesapp "github.com/importdesk/backend/internal/application/sales"
	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/persistence"
)

// services bundles everything the settlement flow touches, all sharing
// one transaction scope against the test database.
type services struct {
	periods     *periodapp.Service
	containers  *containerapp.Service
	expenses    *containerapp.ExpenseService
	settlements *containerapp.SettlementService
	sales       *salesapp.Service
	counts      *inventoryapp.CountService
	clients     *partnerapp.ClientService
	investors   *partnerapp.InvestorService
}

func newServices(tdb *TestDB) *services {
	scope := persistence.NewGormTransactionScope(tdb.DB)
	return &services{
		periods:     periodapp.NewService(scope),
		containers:  containerapp.NewService(scope),
		expenses:    containerapp.NewExpenseService(scope),
		settlements: containerapp.NewSettlementService(scope),
		sales:       salesapp.NewService(scope),
		counts:      inventoryapp.NewCountService(scope, 6),
		clients:     partnerapp.NewClientService(scope),
		investors:   partnerapp.NewInvestorService(scope),
	}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %v", err)
	return domainErr.Code
}

// TestSettlementFlow walks a full container through its financial life:
// purchase, expenses, investment, a cash sale, payout settlement, a
// clean inventory count and finally the period lock.
func TestSettlementFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc := newServices(tdb)
	ctx := context.Background()
	admin := appshared.Actor{UserID: uuid.New(), Role: appshared.RoleAdmin}

	// Partners
	client, err := svc.clients.Create(ctx, partnerapp.CreateClientRequest{
		Code: "CL-001",
		Name: "Bazaar Trading LLC",
	}, admin)
	require.NoError(t, err)

	investor, err := svc.investors.Create(ctx, partnerapp.CreateInvestorRequest{
		Name: "Aziz Karimov",
	}, admin)
	require.NoError(t, err)

	// Container: 7200 CNY at 7.2 buys 100 units, so the frozen unit
	// cost is 10 USD.
	cont, err := svc.containers.Create(ctx, containerapp.CreateContainerRequest{}, admin)
	require.NoError(t, err)
	assert.NotEmpty(t, cont.Number)

	cont, err = svc.containers.SetPurchase(ctx, cont.ID, containerapp.SetPurchaseRequest{
		TotalCNY:     decimal.NewFromInt(7200),
		ExchangeRate: decimal.NewFromFloat(7.2),
	}, admin)
	require.NoError(t, err)
	assert.True(t, cont.TotalPurchaseUSD.Equal(decimal.NewFromInt(1000)),
		"expected 1000 USD purchase, got %s", cont.TotalPurchaseUSD)

	productID := uuid.New()
	cont, err = svc.containers.AddItem(ctx, cont.ID, containerapp.AddItemRequest{
		ProductID:   productID,
		ProductName: "Ceramic Tiles 60x60",
		ProductCode: "TIL-6060",
		Quantity:    decimal.NewFromInt(100),
	}, admin)
	require.NoError(t, err)
	require.Len(t, cont.Items, 1)
	assert.True(t, cont.Items[0].CostPerUnitUSD.Equal(decimal.NewFromInt(10)))

	cont, err = svc.containers.MarkArrived(ctx, cont.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, "ARRIVED", cont.Status)

	// Cost ledger and capital
	cont, err = svc.expenses.AddExpense(ctx, cont.ID, containerapp.AddExpenseRequest{
		Category:  "freight",
		AmountUSD: decimal.NewFromInt(200),
	}, admin)
	require.NoError(t, err)
	assert.True(t, cont.TotalExpensesUSD.Equal(decimal.NewFromInt(200)))

	cont, err = svc.settlements.AddInvestment(ctx, cont.ID, containerapp.AddInvestmentRequest{
		InvestorID: investor.ID,
		AmountUSD:  decimal.NewFromInt(600),
	}, admin)
	require.NoError(t, err)
	require.Len(t, cont.Investments, 1)
	assert.True(t, cont.Investments[0].PercentageShare.Equal(decimal.NewFromInt(100)),
		"sole investor holds the full share")

	// Cash sale: 10 units at 15 USD, fully paid at the counter
	unitPrice := decimal.NewFromInt(15)
	sale, err := svc.sales.CreateSale(ctx, salesapp.CreateSaleRequest{
		ClientID:   client.ID,
		Mode:       "CASH",
		PaidNowUSD: decimal.NewFromInt(150),
		Lines: []salesapp.SaleLineRequest{{
			ContainerID:  cont.ID,
			ProductID:    productID,
			Quantity:     decimal.NewFromInt(10),
			UnitPriceUSD: &unitPrice,
		}},
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", sale.Status)
	assert.True(t, sale.TotalAmountUSD.Equal(decimal.NewFromInt(150)))
	assert.True(t, sale.DebtAmountUSD.IsZero())
	assert.True(t, sale.RealizedMarginUSD.Equal(decimal.NewFromInt(50)))

	// Stock dropped on the container and margin landed on its profit
	cont, err = svc.containers.Get(ctx, cont.ID)
	require.NoError(t, err)
	assert.True(t, cont.Items[0].Quantity.Equal(decimal.NewFromInt(90)))
	assert.True(t, cont.NetProfitUSD.Equal(decimal.NewFromInt(50)))

	// Settlement: the payable pool is purchase + expenses
	payables, err := svc.settlements.Payables(ctx, cont.ID)
	require.NoError(t, err)
	require.Len(t, payables, 1)
	assert.True(t, payables[0].PayablePoolUSD.Equal(decimal.NewFromInt(1200)))
	assert.True(t, payables[0].ShareUSD.Equal(decimal.NewFromInt(1200)))
	assert.True(t, payables[0].AvailableUSD.Equal(decimal.NewFromInt(1200)))

	cont, err = svc.settlements.RecordPayout(ctx, cont.ID, containerapp.RecordPayoutRequest{
		InvestorID: investor.ID,
		AmountUSD:  decimal.NewFromInt(500),
		Note:       "first tranche",
	}, admin)
	require.NoError(t, err)
	require.Len(t, cont.Payouts, 1)

	payables, err = svc.settlements.Payables(ctx, cont.ID)
	require.NoError(t, err)
	assert.True(t, payables[0].PaidOutUSD.Equal(decimal.NewFromInt(500)))
	assert.True(t, payables[0].AvailableUSD.Equal(decimal.NewFromInt(700)))

	// Paying out beyond the remaining balance is rejected atomically
	_, err = svc.settlements.RecordPayout(ctx, cont.ID, containerapp.RecordPayoutRequest{
		InvestorID: investor.ID,
		AmountUSD:  decimal.NewFromInt(800),
	}, admin)
	require.Error(t, err)
	assert.Equal(t, "OVERPAY", domainCode(t, err))

	cont, err = svc.containers.Get(ctx, cont.ID)
	require.NoError(t, err)
	assert.Len(t, cont.Payouts, 1, "rejected payout must not be written")

	// Clean inventory count: 90 units on hand matches the system
	session, err := svc.counts.Submit(ctx, inventoryapp.SubmitCountRequest{
		Lines: []inventoryapp.CountLineRequest{{
			ContainerID:    cont.ID,
			ProductID:      productID,
			ActualQuantity: decimal.NewFromInt(90),
		}},
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", session.Status)
	require.NotNil(t, session.Code)

	session, err = svc.counts.Confirm(ctx, session.ID, inventoryapp.ConfirmCountRequest{
		Code: *session.Code,
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", session.Status)

	// Period gate: checklist is clear, the period locks, writes bounce,
	// unlock reopens.
	current, err := svc.periods.Current(ctx)
	require.NoError(t, err)

	locked, err := svc.periods.Lock(ctx, current.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, "LOCKED", locked.Status)

	_, err = svc.sales.CreateSale(ctx, salesapp.CreateSaleRequest{
		ClientID:   client.ID,
		Mode:       "CASH",
		PaidNowUSD: decimal.NewFromInt(15),
		Lines: []salesapp.SaleLineRequest{{
			ContainerID:  cont.ID,
			ProductID:    productID,
			Quantity:     decimal.NewFromInt(1),
			UnitPriceUSD: &unitPrice,
		}},
	}, admin)
	require.Error(t, err)
	assert.Equal(t, "PERIOD_LOCKED", domainCode(t, err))

	reopened, err := svc.periods.Unlock(ctx, current.ID, "late supplier invoice", admin)
	require.NoError(t, err)
	assert.Equal(t, "OPEN", reopened.Status)

	_, err = svc.sales.CreateSale(ctx, salesapp.CreateSaleRequest{
		ClientID:   client.ID,
		Mode:       "CASH",
		PaidNowUSD: decimal.NewFromInt(15),
		Lines: []salesapp.SaleLineRequest{{
			ContainerID:  cont.ID,
			ProductID:    productID,
			Quantity:     decimal.NewFromInt(1),
			UnitPriceUSD: &unitPrice,
		}},
	}, admin)
	require.NoError(t, err, "sales resume once the period is reopened")
}

// TestPeriodLockChecklist verifies that a period with open debt cannot
// be locked and that the blocker names the debt.
func TestPeriodLockChecklist(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	svc := newServices(tdb)
	ctx := context.Background()
	admin := appshared.Actor{UserID: uuid.New(), Role: appshared.RoleAdmin}

	client, err := svc.clients.Create(ctx, partnerapp.CreateClientRequest{
		Code: "CL-002",
		Name: "Silk Road Imports",
	}, admin)
	require.NoError(t, err)

	cont, err := svc.containers.Create(ctx, containerapp.CreateContainerRequest{}, admin)
	require.NoError(t, err)
	cont, err = svc.containers.SetPurchase(ctx, cont.ID, containerapp.SetPurchaseRequest{
		TotalCNY:     decimal.NewFromInt(720),
		ExchangeRate: decimal.NewFromFloat(7.2),
	}, admin)
	require.NoError(t, err)
	productID := uuid.New()
	cont, err = svc.containers.AddItem(ctx, cont.ID, containerapp.AddItemRequest{
		ProductID:   productID,
		ProductName: "Porcelain Cups",
		Quantity:    decimal.NewFromInt(10),
	}, admin)
	require.NoError(t, err)
	_, err = svc.containers.MarkArrived(ctx, cont.ID, admin)
	require.NoError(t, err)

	// Debt sale: nothing paid upfront
	price := decimal.NewFromInt(20)
	due := time.Now().AddDate(0, 1, 0)
	sale, err := svc.sales.CreateSale(ctx, salesapp.CreateSaleRequest{
		ClientID:   client.ID,
		Mode:       "DEBT",
		DueDate:    &due,
		PaidNowUSD: decimal.Zero,
		Lines: []salesapp.SaleLineRequest{{
			ContainerID:  cont.ID,
			ProductID:    productID,
			Quantity:     decimal.NewFromInt(5),
			UnitPriceUSD: &price,
		}},
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, "DEBT", sale.Status)

	current, err := svc.periods.Current(ctx)
	require.NoError(t, err)

	_, err = svc.periods.Lock(ctx, current.ID, admin)
	require.Error(t, err)
	assert.Equal(t, "CLOSURE_BLOCKED", domainCode(t, err))
	assert.Contains(t, err.Error(), "outstanding debt")

	// Settle the debt, confirm a clean count, lock passes
	_, err = svc.sales.AddPayment(ctx, sale.ID, salesapp.AddPaymentRequest{
		AmountUSD: decimal.NewFromInt(100),
		Method:    "cash",
	}, admin)
	require.NoError(t, err)

	session, err := svc.counts.Submit(ctx, inventoryapp.SubmitCountRequest{
		Lines: []inventoryapp.CountLineRequest{{
			ContainerID:    cont.ID,
			ProductID:      productID,
			ActualQuantity: decimal.NewFromInt(5),
		}},
	}, admin)
	require.NoError(t, err)
	require.NotNil(t, session.Code)
	_, err = svc.counts.Confirm(ctx, session.ID, inventoryapp.ConfirmCountRequest{Code: *session.Code}, admin)
	require.NoError(t, err)

	locked, err := svc.periods.Lock(ctx, current.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, "LOCKED", locked.Status)
}
