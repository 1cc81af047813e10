package container

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/importdesk/backend/internal/domain/shared"
)

func TestContainer_AddExpense(t *testing.T) {
	t.Run("books expense and updates totals", func(t *testing.T) {
		c := arrivedContainer(t, uuid.New())
		periodID := uuid.New()

		expense, err := c.AddExpense(periodID, "customs", "import duty", decimal.NewFromInt(150), time.Now())
		require.NoError(t, err)
		assert.Equal(t, periodID, expense.PeriodID)
		assert.True(t, c.TotalExpensesUSD.Equal(decimal.NewFromInt(150)))
	})

	t.Run("rejects non-positive amount and empty category", func(t *testing.T) {
		c := arrivedContainer(t, uuid.New())
		_, err := c.AddExpense(uuid.New(), "customs", "", decimal.Zero, time.Now())
		assert.Error(t, err)
		_, err = c.AddExpense(uuid.New(), "", "", decimal.NewFromInt(10), time.Now())
		assert.Error(t, err)
	})
}

func TestContainer_ExpenseCorrections(t *testing.T) {
	addFreight := func(t *testing.T) (*Container, uuid.UUID) {
		c := arrivedContainer(t, uuid.New())
		expense, err := c.AddExpense(uuid.New(), "freight", "", decimal.NewFromInt(200), time.Now())
		require.NoError(t, err)
		return c, expense.ID
	}

	t.Run("unconfirmed correction counts immediately", func(t *testing.T) {
		c, expenseID := addFreight(t)

		corr, err := c.AddExpenseCorrection(expenseID, uuid.New(), decimal.NewFromInt(-50), "double-billed leg")
		require.NoError(t, err)
		assert.False(t, corr.Confirmed)

		assert.True(t, c.TotalExpensesUSD.Equal(decimal.NewFromInt(150)),
			"delta applies before confirmation, got %s", c.TotalExpensesUSD)
		// (1000 + 150) / 100
		assert.True(t, c.Items[0].CostPerUnitUSD.Equal(decimal.RequireFromString("11.5")))
		assert.Equal(t, 1, c.UnconfirmedCorrectionCount())
	})

	t.Run("confirmation flips the flag without touching totals", func(t *testing.T) {
		c, expenseID := addFreight(t)
		corr, err := c.AddExpenseCorrection(expenseID, uuid.New(), decimal.NewFromInt(25), "missed surcharge")
		require.NoError(t, err)

		before := c.TotalExpensesUSD
		reviewer := uuid.New()
		require.NoError(t, c.ConfirmCorrection(corr.ID, reviewer))

		confirmed := c.Expenses[0].Corrections[0]
		assert.True(t, confirmed.Confirmed)
		assert.NotNil(t, confirmed.ConfirmedAt)
		assert.True(t, c.TotalExpensesUSD.Equal(before))
		assert.Equal(t, 0, c.UnconfirmedCorrectionCount())
	})

	t.Run("confirming twice is a no-op", func(t *testing.T) {
		c, expenseID := addFreight(t)
		corr, err := c.AddExpenseCorrection(expenseID, uuid.New(), decimal.NewFromInt(25), "missed surcharge")
		require.NoError(t, err)

		require.NoError(t, c.ConfirmCorrection(corr.ID, uuid.New()))
		firstConfirmedAt := *c.Expenses[0].Corrections[0].ConfirmedAt
		require.NoError(t, c.ConfirmCorrection(corr.ID, uuid.New()))

		assert.Equal(t, firstConfirmedAt, *c.Expenses[0].Corrections[0].ConfirmedAt)
		assert.True(t, c.TotalExpensesUSD.Equal(decimal.NewFromInt(225)))
	})

	t.Run("rejects corrections that turn an expense negative", func(t *testing.T) {
		c, expenseID := addFreight(t)
		_, err := c.AddExpenseCorrection(expenseID, uuid.New(), decimal.NewFromInt(-250), "bad entry")
		assert.Error(t, err)
	})

	t.Run("rejects zero delta and missing reason", func(t *testing.T) {
		c, expenseID := addFreight(t)
		_, err := c.AddExpenseCorrection(expenseID, uuid.New(), decimal.Zero, "nothing")
		assert.Error(t, err)
		_, err = c.AddExpenseCorrection(expenseID, uuid.New(), decimal.NewFromInt(10), "")
		assert.Error(t, err)
	})

	t.Run("unknown expense or correction", func(t *testing.T) {
		c, _ := addFreight(t)
		_, err := c.AddExpenseCorrection(uuid.New(), uuid.New(), decimal.NewFromInt(10), "typo")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, c.ConfirmCorrection(uuid.New(), uuid.New()), shared.ErrNotFound)
	})
}
