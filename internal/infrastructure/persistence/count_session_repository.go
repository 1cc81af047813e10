package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/importdesk/backend/internal/domain/inventory"
	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/persistence/models"
)

// GormCountSessionRepository implements inventory.Repository using GORM
type GormCountSessionRepository struct {
	db *gorm.DB
}

// NewGormCountSessionRepository creates a new GormCountSessionRepository
func NewGormCountSessionRepository(db *gorm.DB) *GormCountSessionRepository {
	return &GormCountSessionRepository{db: db}
}

// FindByID finds a session by ID with its lines loaded
func (r *GormCountSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.CountSession, error) {
	var model models.CountSessionModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds sessions matching the filter, newest first
func (r *GormCountSessionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.CountSession, error) {
	var sessionModels []models.CountSessionModel
	query := r.applyFilter(r.db.WithContext(ctx).Preload("Items").Model(&models.CountSessionModel{}), filter)

	if err := query.Find(&sessionModels).Error; err != nil {
		return nil, err
	}

	sessions := make([]inventory.CountSession, len(sessionModels))
	for i, model := range sessionModels {
		sessions[i] = *model.ToDomain()
	}
	return sessions, nil
}

// FindByStatus finds sessions in the given status
func (r *GormCountSessionRepository) FindByStatus(ctx context.Context, status inventory.SessionStatus, filter shared.Filter) ([]inventory.CountSession, error) {
	var sessionModels []models.CountSessionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Preload("Items").Model(&models.CountSessionModel{}).Where("status = ?", status),
		filter,
	)

	if err := query.Find(&sessionModels).Error; err != nil {
		return nil, err
	}

	sessions := make([]inventory.CountSession, len(sessionModels))
	for i, model := range sessionModels {
		sessions[i] = *model.ToDomain()
	}
	return sessions, nil
}

// CodeInUse reports whether a confirmation code is already held by a
// PENDING or CONFIRMED session
func (r *GormCountSessionRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CountSessionModel{}).
		Where("code = ? AND status IN ?", code,
			[]inventory.SessionStatus{inventory.SessionStatusPending, inventory.SessionStatusConfirmed}).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a session. Lines are immutable snapshots, so
// they only insert; the root row carries the status transition.
func (r *GormCountSessionRepository) Save(ctx context.Context, s *inventory.CountSession) error {
	model := models.CountSessionModelFromDomain(s)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		for i := range model.Items {
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts sessions matching the filter
func (r *GormCountSessionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CountSessionModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts sessions per status across all periods
func (r *GormCountSessionRepository) CountByStatus(ctx context.Context, status inventory.SessionStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CountSessionModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatusInRange counts sessions per status whose count was taken
// within [from, to), used by the period closure checklist
func (r *GormCountSessionRepository) CountByStatusInRange(ctx context.Context, status inventory.SessionStatus, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CountSessionModel{}).
		Where("status = ? AND counted_at >= ? AND counted_at < ?", status, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCountSessionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, CountSessionSortFields, "")
		if sortField != "" {
			query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
		} else {
			query = query.Order("counted_at DESC")
		}
	} else {
		query = query.Order("counted_at DESC")
	}

	return query
}

func (r *GormCountSessionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

// Ensure GormCountSessionRepository implements inventory.Repository
var _ inventory.Repository = (*GormCountSessionRepository)(nil)
