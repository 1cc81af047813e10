package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/importdesk/backend/internal/domain/partner"
	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/persistence/models"
)

// GormInvestorRepository implements partner.InvestorRepository using GORM
type GormInvestorRepository struct {
	db *gorm.DB
}

// NewGormInvestorRepository creates a new GormInvestorRepository
func NewGormInvestorRepository(db *gorm.DB) *GormInvestorRepository {
	return &GormInvestorRepository{db: db}
}

// FindByID finds an investor by its ID
func (r *GormInvestorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Investor, error) {
	var model models.InvestorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all investors matching the filter
func (r *GormInvestorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Investor, error) {
	var investorModels []models.InvestorModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvestorModel{}), filter)

	if err := query.Find(&investorModels).Error; err != nil {
		return nil, err
	}

	investors := make([]partner.Investor, len(investorModels))
	for i, model := range investorModels {
		investors[i] = *model.ToDomain()
	}
	return investors, nil
}

// Save creates or updates an investor
func (r *GormInvestorRepository) Save(ctx context.Context, i *partner.Investor) error {
	model := models.InvestorModelFromDomain(i)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count counts investors matching the filter
func (r *GormInvestorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.InvestorModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInvestorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, InvestorSortFields, "")
		if sortField != "" {
			query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
		} else {
			query = query.Order("name ASC")
		}
	} else {
		query = query.Order("name ASC")
	}

	return query
}

func (r *GormInvestorRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	return query
}

// Ensure GormInvestorRepository implements partner.InvestorRepository
var _ partner.InvestorRepository = (*GormInvestorRepository)(nil)
