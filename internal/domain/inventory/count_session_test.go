package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanLine(qty int64) CountLine {
	return CountLine{
		ContainerID:    uuid.New(),
		ProductID:      uuid.New(),
		ProductName:    "Ceramic tiles",
		SystemQuantity: decimal.NewFromInt(qty),
		ActualQuantity: decimal.NewFromInt(qty),
	}
}

func TestNewCountSession(t *testing.T) {
	counter := uuid.New()

	t.Run("clean count is pending", func(t *testing.T) {
		s, err := NewCountSession(counter, []CountLine{cleanLine(50), cleanLine(30)})
		require.NoError(t, err)

		assert.Equal(t, SessionStatusPending, s.Status)
		assert.Equal(t, 0, s.DifferenceCount())
		assert.Nil(t, s.Code)
	})

	t.Run("any difference makes a discrepancy", func(t *testing.T) {
		line := cleanLine(50)
		line.ActualQuantity = decimal.NewFromInt(48)

		s, err := NewCountSession(counter, []CountLine{cleanLine(30), line})
		require.NoError(t, err)

		assert.Equal(t, SessionStatusDiscrepancy, s.Status)
		assert.Equal(t, 1, s.DifferenceCount())
		assert.True(t, s.Items[1].Difference.Equal(decimal.NewFromInt(-2)))
	})

	t.Run("snapshot lines are frozen with the submitted quantities", func(t *testing.T) {
		line := cleanLine(50)
		s, err := NewCountSession(counter, []CountLine{line})
		require.NoError(t, err)

		assert.True(t, s.Items[0].SystemQuantity.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, line.ContainerID, s.Items[0].ContainerID)
	})

	t.Run("rejects empty counts, duplicates and negative quantities", func(t *testing.T) {
		_, err := NewCountSession(counter, nil)
		assert.Error(t, err)

		dup := cleanLine(10)
		_, err = NewCountSession(counter, []CountLine{dup, dup})
		assert.Error(t, err)

		neg := cleanLine(10)
		neg.ActualQuantity = decimal.NewFromInt(-1)
		_, err = NewCountSession(counter, []CountLine{neg})
		assert.Error(t, err)
	})
}

func TestCountSession_Codes(t *testing.T) {
	counter := uuid.New()

	t.Run("pending session takes a code once", func(t *testing.T) {
		s, err := NewCountSession(counter, []CountLine{cleanLine(50)})
		require.NoError(t, err)

		require.NoError(t, s.AssignCode("4821"))
		assert.Equal(t, "4821", *s.Code)
		assert.Error(t, s.AssignCode("9999"))
	})

	t.Run("discrepancy session never gets a code", func(t *testing.T) {
		line := cleanLine(50)
		line.ActualQuantity = decimal.NewFromInt(51)
		s, err := NewCountSession(counter, []CountLine{line})
		require.NoError(t, err)

		assert.Error(t, s.AssignCode("4821"))
		assert.Nil(t, s.Code)
	})
}

func TestCountSession_Confirm(t *testing.T) {
	counter := uuid.New()
	confirmer := uuid.New()

	pendingSession := func(t *testing.T) *CountSession {
		s, err := NewCountSession(counter, []CountLine{cleanLine(50)})
		require.NoError(t, err)
		require.NoError(t, s.AssignCode("4821"))
		return s
	}

	t.Run("matching code confirms", func(t *testing.T) {
		s := pendingSession(t)
		require.NoError(t, s.Confirm("4821", confirmer))

		assert.Equal(t, SessionStatusConfirmed, s.Status)
		assert.Equal(t, confirmer, *s.ConfirmedBy)
		assert.NotNil(t, s.ConfirmedAt)
	})

	t.Run("wrong code changes nothing", func(t *testing.T) {
		s := pendingSession(t)
		assert.Error(t, s.Confirm("0000", confirmer))
		assert.Equal(t, SessionStatusPending, s.Status)
	})

	t.Run("confirmed session rejects a second redemption", func(t *testing.T) {
		s := pendingSession(t)
		require.NoError(t, s.Confirm("4821", confirmer))
		assert.Error(t, s.Confirm("4821", confirmer))
	})

	t.Run("discrepancy session cannot confirm", func(t *testing.T) {
		line := cleanLine(50)
		line.ActualQuantity = decimal.NewFromInt(49)
		s, err := NewCountSession(counter, []CountLine{line})
		require.NoError(t, err)

		assert.Error(t, s.Confirm("4821", confirmer))
	})
}

func TestCountSession_Resolve(t *testing.T) {
	counter := uuid.New()
	confirmer := uuid.New()

	discrepantSession := func(t *testing.T) *CountSession {
		line := cleanLine(50)
		line.ActualQuantity = decimal.NewFromInt(47)
		s, err := NewCountSession(counter, []CountLine{line})
		require.NoError(t, err)
		require.Equal(t, SessionStatusDiscrepancy, s.Status)
		return s
	}

	t.Run("discrepancy reopens as pending without a code", func(t *testing.T) {
		s := discrepantSession(t)
		require.NoError(t, s.Resolve())

		assert.Equal(t, SessionStatusPending, s.Status)
		assert.Nil(t, s.Code)
		// Snapshot stays frozen
		assert.Equal(t, 1, s.DifferenceCount())
	})

	t.Run("resolved session takes a fresh code and confirms", func(t *testing.T) {
		s := discrepantSession(t)
		require.NoError(t, s.Resolve())
		require.NoError(t, s.AssignCode("7731"))
		require.NoError(t, s.Confirm("7731", confirmer))

		assert.Equal(t, SessionStatusConfirmed, s.Status)
	})

	t.Run("pending session cannot resolve", func(t *testing.T) {
		s, err := NewCountSession(counter, []CountLine{cleanLine(10)})
		require.NoError(t, err)
		assert.Error(t, s.Resolve())
	})

	t.Run("confirmed session cannot resolve", func(t *testing.T) {
		s, err := NewCountSession(counter, []CountLine{cleanLine(10)})
		require.NoError(t, err)
		require.NoError(t, s.AssignCode("2204"))
		require.NoError(t, s.Confirm("2204", confirmer))
		assert.Error(t, s.Resolve())
	})
}
