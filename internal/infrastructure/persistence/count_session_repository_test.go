package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/importdesk/backend/internal/domain/inventory"
	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/persistence/models"
)

// newSQLiteDB opens an in-memory database with the count session schema
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CountSessionModel{}, &models.CountSessionItemModel{}))
	return db
}

// cleanSession builds a single-line count with no difference, counted
// at the given instant
func cleanSession(t *testing.T, countedAt time.Time) *inventory.CountSession {
	t.Helper()
	s, err := inventory.NewCountSession(uuid.New(), []inventory.CountLine{{
		ContainerID:    uuid.New(),
		ProductID:      uuid.New(),
		ProductName:    "Olive oil 1L",
		SystemQuantity: decimal.NewFromInt(40),
		ActualQuantity: decimal.NewFromInt(40),
	}})
	require.NoError(t, err)
	s.CountedAt = countedAt
	return s
}

func TestGormCountSessionRepository_RoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormCountSessionRepository(db)
	ctx := context.Background()

	s := cleanSession(t, time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC))
	require.NoError(t, s.AssignCode("123456"))
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, inventory.SessionStatusPending, got.Status)
	require.NotNil(t, got.Code)
	assert.Equal(t, "123456", *got.Code)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Difference.IsZero())

	inUse, err := repo.CodeInUse(ctx, "123456")
	require.NoError(t, err)
	assert.True(t, inUse)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCountSessionRepository_CountByStatusInRange(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormCountSessionRepository(db)
	ctx := context.Background()

	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	april := march.AddDate(0, 1, 0)

	confirmed := func(countedAt time.Time, code string) {
		s := cleanSession(t, countedAt)
		require.NoError(t, s.AssignCode(code))
		require.NoError(t, s.Confirm(code, uuid.New()))
		require.NoError(t, repo.Save(ctx, s))
	}
	confirmed(march.AddDate(0, 0, 14), "111111")
	confirmed(april.AddDate(0, 0, 2), "222222")

	pending := cleanSession(t, april.AddDate(0, 0, 3))
	require.NoError(t, pending.AssignCode("333333"))
	require.NoError(t, repo.Save(ctx, pending))

	// The April confirmation is invisible to the March window
	n, err := repo.CountByStatusInRange(ctx, inventory.SessionStatusConfirmed, march, april)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// April sees its own confirmation but not March's
	n, err = repo.CountByStatusInRange(ctx, inventory.SessionStatusConfirmed, april, april.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// The pending April session never leaks into the March window
	n, err = repo.CountByStatusInRange(ctx, inventory.SessionStatusPending, march, april)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// The unscoped counter still spans everything
	n, err = repo.CountByStatus(ctx, inventory.SessionStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
