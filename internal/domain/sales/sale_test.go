package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/importdesk/backend/internal/domain/shared"
)

func TestComputeStatus(t *testing.T) {
	d := decimal.NewFromInt

	tests := []struct {
		name          string
		total         decimal.Decimal
		paid          decimal.Decimal
		debt          decimal.Decimal
		returnedFully bool
		want          SaleStatus
	}{
		{"unpaid sale is debt", d(100), d(0), d(100), false, SaleStatusDebt},
		{"partial payment", d(100), d(40), d(60), false, SaleStatusPartiallyPaid},
		{"zero debt completes", d(100), d(100), d(0), false, SaleStatusCompleted},
		{"negative debt completes", d(100), d(100), d(-1), false, SaleStatusCompleted},
		{"full return wins over payment state", d(0), d(0), d(0), true, SaleStatusReturned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(tt.total, tt.paid, tt.debt, tt.returnedFully))
		})
	}
}

// cashSale builds a finalized sale of 10 units at 10 USD (cost 6),
// paid up front by the given amount.
func cashSale(t *testing.T, paidNow decimal.Decimal) *Sale {
	s, err := NewSale("INV-000001", uuid.New(), "Bazaar Trading LLC", SaleModeCash, uuid.New(), time.Now(), nil)
	require.NoError(t, err)
	_, err = s.AddLine(uuid.New(), uuid.New(), "Ceramic tiles", decimal.NewFromInt(10), decimal.NewFromInt(6), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, s.Finalize(paidNow, time.Now()))
	return s
}

func TestSaleMode(t *testing.T) {
	assert.True(t, SaleModeCash.IsValid())
	assert.True(t, SaleModeDebt.IsValid())
	assert.True(t, SaleModeConsignment.IsValid())
	assert.False(t, SaleMode("WHOLESALE").IsValid())

	assert.Equal(t, "CASH", SaleModeCash.String())
	assert.Equal(t, "DEBT", SaleModeDebt.String())

	s := cashSale(t, decimal.NewFromInt(100))
	event := NewSaleCreatedEvent(s)
	assert.Equal(t, "CASH", event.Mode)
}

func TestNewSale(t *testing.T) {
	t.Run("deferred modes require a due date", func(t *testing.T) {
		_, err := NewSale("INV-1", uuid.New(), "Client", SaleModeDebt, uuid.New(), time.Now(), nil)
		assert.Error(t, err)
		_, err = NewSale("INV-1", uuid.New(), "Client", SaleModeConsignment, uuid.New(), time.Now(), nil)
		assert.Error(t, err)

		due := time.Now().AddDate(0, 1, 0)
		_, err = NewSale("INV-1", uuid.New(), "Client", SaleModeDebt, uuid.New(), time.Now(), &due)
		assert.NoError(t, err)
	})

	t.Run("cash mode needs no due date", func(t *testing.T) {
		_, err := NewSale("INV-1", uuid.New(), "Client", SaleModeCash, uuid.New(), time.Now(), nil)
		assert.NoError(t, err)
	})

	t.Run("finalize rejects an empty sale", func(t *testing.T) {
		s, err := NewSale("INV-1", uuid.New(), "Client", SaleModeCash, uuid.New(), time.Now(), nil)
		require.NoError(t, err)
		assert.Error(t, s.Finalize(decimal.Zero, time.Now()))
	})
}

func TestSale_Totals(t *testing.T) {
	t.Run("partial upfront payment", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(40))

		assert.True(t, s.TotalAmountUSD.Equal(decimal.NewFromInt(100)))
		assert.True(t, s.PaidAmountUSD.Equal(decimal.NewFromInt(40)))
		assert.True(t, s.DebtAmountUSD.Equal(decimal.NewFromInt(60)))
		assert.Equal(t, SaleStatusPartiallyPaid, s.Status)
	})

	t.Run("full payment completes immediately", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(100))
		assert.Equal(t, SaleStatusCompleted, s.Status)
	})

	t.Run("upfront payment cannot exceed total", func(t *testing.T) {
		s, err := NewSale("INV-1", uuid.New(), "Client", SaleModeCash, uuid.New(), time.Now(), nil)
		require.NoError(t, err)
		_, err = s.AddLine(uuid.New(), uuid.New(), "Tiles", decimal.NewFromInt(10), decimal.NewFromInt(6), decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.Error(t, s.Finalize(decimal.NewFromInt(101), time.Now()))
	})
}

func TestSale_AddPayment(t *testing.T) {
	t.Run("payment caps at outstanding debt", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(40))

		payment, err := s.AddPayment(decimal.NewFromInt(70), "cash", time.Now())
		require.NoError(t, err)

		assert.True(t, payment.AmountUSD.Equal(decimal.NewFromInt(60)), "payment caps at the 60 debt, got %s", payment.AmountUSD)
		assert.True(t, s.PaidAmountUSD.Equal(decimal.NewFromInt(100)))
		assert.True(t, s.DebtAmountUSD.IsZero())
		assert.Equal(t, SaleStatusCompleted, s.Status)
	})

	t.Run("no outstanding debt rejects payment", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(100))
		_, err := s.AddPayment(decimal.NewFromInt(10), "cash", time.Now())
		assert.ErrorIs(t, err, shared.ErrNoDebt)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(40))
		_, err := s.AddPayment(decimal.Zero, "cash", time.Now())
		assert.Error(t, err)
	})
}

func TestSale_ApplyReturn(t *testing.T) {
	t.Run("return reduces total, debt, then paid", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(40))

		ret, err := s.ApplyReturn("RET-000001", []ReturnLine{{SaleItemID: s.Items[0].ID, Quantity: decimal.NewFromInt(3)}}, time.Now())
		require.NoError(t, err)

		assert.True(t, ret.TotalUSD.Equal(decimal.NewFromInt(30)))
		assert.True(t, s.TotalAmountUSD.Equal(decimal.NewFromInt(70)))
		assert.True(t, s.PaidAmountUSD.Equal(decimal.NewFromInt(40)))
		assert.True(t, s.DebtAmountUSD.Equal(decimal.NewFromInt(30)))
	})

	t.Run("large return caps paid at new total", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(40))

		_, err := s.ApplyReturn("RET-000001", []ReturnLine{{SaleItemID: s.Items[0].ID, Quantity: decimal.NewFromInt(8)}}, time.Now())
		require.NoError(t, err)

		assert.True(t, s.TotalAmountUSD.Equal(decimal.NewFromInt(20)))
		assert.True(t, s.PaidAmountUSD.Equal(decimal.NewFromInt(20)), "paid caps at new total, got %s", s.PaidAmountUSD)
		assert.True(t, s.DebtAmountUSD.IsZero())
	})

	t.Run("full return flips status", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(100))

		_, err := s.ApplyReturn("RET-000001", []ReturnLine{{SaleItemID: s.Items[0].ID, Quantity: decimal.NewFromInt(10)}}, time.Now())
		require.NoError(t, err)

		assert.True(t, s.FullyReturned)
		assert.Equal(t, SaleStatusReturned, s.Status)

		_, err = s.ApplyReturn("RET-000002", []ReturnLine{{SaleItemID: s.Items[0].ID, Quantity: decimal.NewFromInt(1)}}, time.Now())
		assert.Error(t, err)
	})

	t.Run("over-return rejected before any change", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(40))

		_, err := s.ApplyReturn("RET-000001", []ReturnLine{{SaleItemID: s.Items[0].ID, Quantity: decimal.NewFromInt(11)}}, time.Now())
		require.Error(t, err)
		assert.True(t, s.Items[0].ReturnedQuantity.IsZero())
		assert.True(t, s.TotalAmountUSD.Equal(decimal.NewFromInt(100)))
	})
}

func TestSale_ApplyExchange(t *testing.T) {
	t.Run("nets the return and add legs", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(100))

		ret, added, err := s.ApplyExchange("RET-000001",
			[]ReturnLine{{SaleItemID: s.Items[0].ID, Quantity: decimal.NewFromInt(4)}},
			[]ExchangeAddLine{{
				ContainerID: uuid.New(),
				ProductID:   uuid.New(),
				ProductName: "Porcelain tiles",
				Quantity:    decimal.NewFromInt(2),
				CostPerUnit: decimal.NewFromInt(15),
				SalePrice:   decimal.NewFromInt(25),
			}},
			time.Now())
		require.NoError(t, err)
		require.Len(t, added, 1)

		// 100 - 40 returned + 50 added
		assert.True(t, ret.TotalUSD.Equal(decimal.NewFromInt(40)))
		assert.True(t, s.TotalAmountUSD.Equal(decimal.NewFromInt(110)))
		assert.True(t, s.PaidAmountUSD.Equal(decimal.NewFromInt(100)))
		assert.True(t, s.DebtAmountUSD.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, SaleStatusPartiallyPaid, s.Status)
	})

	t.Run("requires an add leg", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(100))
		_, _, err := s.ApplyExchange("RET-000001", []ReturnLine{{SaleItemID: s.Items[0].ID, Quantity: decimal.NewFromInt(1)}}, nil, time.Now())
		assert.Error(t, err)
	})
}

func TestSale_RealizedMargin(t *testing.T) {
	t.Run("margin follows net quantity at frozen prices", func(t *testing.T) {
		s := cashSale(t, decimal.NewFromInt(100))
		// 10 units at (10 - 6)
		assert.True(t, s.RealizedMargin().Equal(decimal.NewFromInt(40)))

		_, err := s.ApplyReturn("RET-000001", []ReturnLine{{SaleItemID: s.Items[0].ID, Quantity: decimal.NewFromInt(5)}}, time.Now())
		require.NoError(t, err)
		assert.True(t, s.RealizedMargin().Equal(decimal.NewFromInt(20)))
	})
}
