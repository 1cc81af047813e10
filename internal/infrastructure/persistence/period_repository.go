package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/importdesk/backend/internal/domain/period"
	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/persistence/models"
)

// GormPeriodRepository implements period.Repository using GORM
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewGormPeriodRepository creates a new GormPeriodRepository
func NewGormPeriodRepository(db *gorm.DB) *GormPeriodRepository {
	return &GormPeriodRepository{db: db}
}

// FindByID finds a period by its ID
func (r *GormPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*period.FinancialPeriod, error) {
	var model models.FinancialPeriodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByYearMonth finds the period owning (year, month)
func (r *GormPeriodRepository) FindByYearMonth(ctx context.Context, year int, month time.Month) (*period.FinancialPeriod, error) {
	var model models.FinancialPeriodModel
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, int(month)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOrCreate returns the period owning (year, month), creating it as
// OPEN if absent. The insert ignores a conflicting concurrent create
// and re-reads, so two racing gates converge on the same row.
func (r *GormPeriodRepository) FindOrCreate(ctx context.Context, year int, month time.Month) (*period.FinancialPeriod, error) {
	existing, err := r.FindByYearMonth(ctx, year, month)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	p, err := period.NewFinancialPeriod(year, month)
	if err != nil {
		return nil, err
	}
	model := models.FinancialPeriodModelFromDomain(p)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "year"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		return nil, err
	}
	return r.FindByYearMonth(ctx, year, month)
}

// FindAll finds all periods matching the filter, newest first
func (r *GormPeriodRepository) FindAll(ctx context.Context, filter shared.Filter) ([]period.FinancialPeriod, error) {
	var periodModels []models.FinancialPeriodModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FinancialPeriodModel{}), filter)

	if err := query.Find(&periodModels).Error; err != nil {
		return nil, err
	}

	periods := make([]period.FinancialPeriod, len(periodModels))
	for i, model := range periodModels {
		periods[i] = *model.ToDomain()
	}
	return periods, nil
}

// Save creates or updates a period
func (r *GormPeriodRepository) Save(ctx context.Context, p *period.FinancialPeriod) error {
	model := models.FinancialPeriodModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a period with optimistic locking. The version is
// advanced here because the lock and unlock transitions do not bump it
// on the aggregate.
func (r *GormPeriodRepository) SaveWithLock(ctx context.Context, p *period.FinancialPeriod) error {
	currentVersion := p.Version
	p.Version++
	model := models.FinancialPeriodModelFromDomain(p)

	result := r.db.WithContext(ctx).
		Model(&models.FinancialPeriodModel{}).
		Where("id = ? AND version = ?", p.ID, currentVersion).
		Updates(map[string]interface{}{
			"status":        model.Status,
			"locked_at":     model.LockedAt,
			"locked_by":     model.LockedBy,
			"unlocked_at":   model.UnlockedAt,
			"unlocked_by":   model.UnlockedBy,
			"unlock_reason": model.UnlockReason,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		p.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		p.Version = currentVersion
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The period has been modified by another transaction")
	}
	return nil
}

// Count counts periods matching the filter
func (r *GormPeriodRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.FinancialPeriodModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPeriodRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, PeriodSortFields, "")
		if sortField != "" {
			query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
		} else {
			query = query.Order("year DESC, month DESC")
		}
	} else {
		query = query.Order("year DESC, month DESC")
	}

	return query
}

func (r *GormPeriodRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "year":
			query = query.Where("year = ?", value)
		}
	}
	return query
}

// Ensure GormPeriodRepository implements period.Repository
var _ period.Repository = (*GormPeriodRepository)(nil)
